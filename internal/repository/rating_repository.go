package repository

import (
	"context"
	"database/sql"
	"errors"

	"werkshift/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingRepository struct {
	db *gorm.DB
}

var _ RatingRepositoryInterface = (*RatingRepository)(nil)

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Create(ctx context.Context, rating *model.Rating) error {
	err := r.db.WithContext(ctx).Create(rating).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateRating
	}
	return storeErr(err)
}

// AverageForWerker returns nil when the werker has no ratings yet.
func (r *RatingRepository) AverageForWerker(ctx context.Context, werkerID uuid.UUID) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&model.Rating{}).
		Select("AVG(score)").
		Where("werker_id = ?", werkerID).
		Row().
		Scan(&avg)
	if err != nil {
		return nil, storeErr(err)
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}
