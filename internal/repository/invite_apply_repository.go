package repository

import (
	"context"
	"errors"

	"werkshift/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InviteApplyRepository struct {
	db *gorm.DB
}

var _ InviteApplyRepositoryInterface = (*InviteApplyRepository)(nil)

func NewInviteApplyRepository(db *gorm.DB) *InviteApplyRepository {
	return &InviteApplyRepository{db: db}
}

func (r *InviteApplyRepository) CreateIfAbsent(ctx context.Context, ia *model.InviteApply) (bool, error) {
	result := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shift_id"}, {Name: "werker_id"}, {Name: "position_id"}},
			DoNothing: true,
		}).
		Create(ia)
	if result.Error != nil {
		return false, storeErr(result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *InviteApplyRepository) FindOne(ctx context.Context, shiftID, werkerID, positionID uuid.UUID) (*model.InviteApply, error) {
	var ia model.InviteApply
	err := r.db.WithContext(ctx).
		Where("shift_id = ? AND werker_id = ? AND position_id = ?", shiftID, werkerID, positionID).
		First(&ia).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &ia, nil
}

func (r *InviteApplyRepository) Find(ctx context.Context, filter InviteApplyFilter) ([]model.InviteApply, error) {
	q := r.db.WithContext(ctx).Preload("Werker").Preload("Position")
	if filter.ShiftID != nil {
		q = q.Where("shift_id = ?", *filter.ShiftID)
	}
	if filter.WerkerID != nil {
		q = q.Where("werker_id = ?", *filter.WerkerID)
	}
	if filter.PositionID != nil {
		q = q.Where("position_id = ?", *filter.PositionID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var rows []model.InviteApply
	if err := q.Order("created_at").Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	return rows, nil
}

// TransitionStatus is a conditional update: rows that left the from status
// in the meantime are not touched and not returned.
func (r *InviteApplyRepository) TransitionStatus(ctx context.Context, ids []uuid.UUID, from, to model.AssignmentStatus) ([]model.InviteApply, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var updated []model.InviteApply
	err := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id IN ? AND status = ?", ids, from).
		Update("status", to).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return updated, nil
}
