package repository

import (
	"context"
	"errors"

	"werkshift/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MakerRepository struct {
	db *gorm.DB
}

var _ MakerRepositoryInterface = (*MakerRepository)(nil)

func NewMakerRepository(db *gorm.DB) *MakerRepository {
	return &MakerRepository{db: db}
}

func (r *MakerRepository) Create(ctx context.Context, maker *model.Maker) error {
	err := r.db.WithContext(ctx).Create(maker).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	return storeErr(err)
}

func (r *MakerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Maker, error) {
	var maker model.Maker
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&maker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &maker, nil
}
