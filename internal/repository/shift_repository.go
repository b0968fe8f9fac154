package repository

import (
	"context"
	"errors"

	"werkshift/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShiftRepository struct {
	db *gorm.DB
}

var _ ShiftRepositoryInterface = (*ShiftRepository)(nil)

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// Create adds a new shift. Associations are never written through here.
func (r *ShiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(shift).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ErrMakerNotFound
	}
	return storeErr(err)
}

func (r *ShiftRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Shift{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

// expanded preloads everything a shift listing shows.
func (r *ShiftRepository) expanded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Maker").
		Preload("Positions.Position").
		Preload("Assignments.Werker")
}

// GetByID retrieves a shift with its maker, positions and assignments.
// A missing shift yields nil, nil.
func (r *ShiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	var shift model.Shift
	err := r.expanded(ctx).Where("id = ?", id).First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &shift, nil
}

// List returns shifts newest scheduled first.
func (r *ShiftRepository) List(ctx context.Context, limit, offset int) ([]model.Shift, error) {
	var shifts []model.Shift
	result := r.expanded(ctx).
		Order("scheduled_at DESC").
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&shifts)
	if result.Error != nil {
		return nil, storeErr(result.Error)
	}
	return shifts, nil
}

// Update overwrites the mutable columns of an existing shift.
func (r *ShiftRepository) Update(ctx context.Context, shift *model.Shift) error {
	result := r.db.WithContext(ctx).
		Model(&model.Shift{ID: shift.ID}).
		Select("name", "scheduled_at", "duration_minutes", "lat", "long", "description", "payment_type").
		Updates(shift)
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrShiftNotFound
	}
	return nil
}

// Delete removes a shift by its ID and reports how many rows went away.
// Junction rows and assignments go with it through ON DELETE CASCADE.
func (r *ShiftRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Shift{}, "id = ?", id)
	if result.Error != nil {
		return 0, storeErr(result.Error)
	}
	return result.RowsAffected, nil
}

// AttachPosition links a position to a shift. With refresh an existing pair
// gets its payment amount overwritten, otherwise it is rejected.
func (r *ShiftRepository) AttachPosition(ctx context.Context, sp *model.ShiftPosition, refresh bool) error {
	q := r.db.WithContext(ctx).Omit(clause.Associations)
	if refresh {
		q = q.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shift_id"}, {Name: "position_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payment_amount"}),
		})
	}
	err := q.Create(sp).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateAttachment
	}
	return storeErr(err)
}

func (r *ShiftRepository) GetPosition(ctx context.Context, shiftID, positionID uuid.UUID) (*model.ShiftPosition, error) {
	var sp model.ShiftPosition
	err := r.db.WithContext(ctx).
		Preload("Position").
		Where("shift_id = ? AND position_id = ?", shiftID, positionID).
		First(&sp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &sp, nil
}

func (r *ShiftRepository) MarkPositionFilled(ctx context.Context, shiftID, positionID uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&model.ShiftPosition{}).
		Where("shift_id = ? AND position_id = ?", shiftID, positionID).
		Update("filled", true).Error
	return storeErr(err)
}

// SearchPositions finds shift positions for a catalog position, optionally
// narrowed to an exact payment amount.
func (r *ShiftRepository) SearchPositions(ctx context.Context, positionID uuid.UUID, amount decimal.NullDecimal) ([]model.ShiftPosition, error) {
	var rows []model.ShiftPosition
	q := r.db.WithContext(ctx).
		Preload("Shift").
		Preload("Position").
		Where("position_id = ?", positionID)
	if amount.Valid {
		q = q.Where("payment_amount = ?", amount.Decimal)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	return rows, nil
}
