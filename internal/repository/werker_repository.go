package repository

import (
	"context"
	"errors"

	"werkshift/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WerkerRepository struct {
	db *gorm.DB
}

var _ WerkerRepositoryInterface = (*WerkerRepository)(nil)

func NewWerkerRepository(db *gorm.DB) *WerkerRepository {
	return &WerkerRepository{db: db}
}

func (r *WerkerRepository) Create(ctx context.Context, werker *model.Werker) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(werker).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	return storeErr(err)
}

func (r *WerkerRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Werker{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

// GetByID retrieves a werker with certifications and skills, or nil, nil.
func (r *WerkerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Werker, error) {
	var werker model.Werker
	err := r.db.WithContext(ctx).
		Preload("Certifications.Certification").
		Preload("Positions.Position").
		Where("id = ?", id).
		First(&werker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &werker, nil
}

func (r *WerkerRepository) Update(ctx context.Context, werker *model.Werker) error {
	result := r.db.WithContext(ctx).
		Model(&model.Werker{ID: werker.ID}).
		Select("name_first", "name_last", "email", "url_photo", "bio", "phone", "last_minute", "lat", "long").
		Updates(werker)
	if result.Error != nil {
		return storeErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWerkerNotFound
	}
	return nil
}

func (r *WerkerRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Werker{}, "id = ?", id)
	if result.Error != nil {
		return 0, storeErr(result.Error)
	}
	return result.RowsAffected, nil
}

// AttachCertification links a certification to a werker. With refresh an
// existing pair gets its photo url overwritten, otherwise it is rejected.
func (r *WerkerRepository) AttachCertification(ctx context.Context, wc *model.WerkerCertification, refresh bool) error {
	q := r.db.WithContext(ctx).Omit(clause.Associations)
	if refresh {
		q = q.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "werker_id"}, {Name: "certification_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"url_photo"}),
		})
	}
	err := q.Create(wc).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateAttachment
	}
	return storeErr(err)
}

// AttachPosition declares a skill. The pair carries no attributes, so refresh
// just makes a repeated declaration a no-op.
func (r *WerkerRepository) AttachPosition(ctx context.Context, wp *model.WerkerPosition, refresh bool) error {
	q := r.db.WithContext(ctx).Omit(clause.Associations)
	if refresh {
		q = q.Clauses(clause.OnConflict{DoNothing: true})
	}
	err := q.Create(wp).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateAttachment
	}
	return storeErr(err)
}

// FindByPosition returns werkers who declared the given position.
func (r *WerkerRepository) FindByPosition(ctx context.Context, positionID uuid.UUID) ([]model.Werker, error) {
	var werkers []model.Werker
	err := r.db.WithContext(ctx).
		Preload("Positions.Position").
		Joins("JOIN werker_positions ON werker_positions.werker_id = werkers.id").
		Where("werker_positions.position_id = ?", positionID).
		Order("werkers.name_last").
		Find(&werkers).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return werkers, nil
}
