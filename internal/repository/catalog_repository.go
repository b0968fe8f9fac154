package repository

import (
	"context"
	"errors"

	"werkshift/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository struct {
	db *gorm.DB
}

var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// slugConflict resolves a catalog insert against the unique slug. The
// DO UPDATE branch keeps RETURNING populated for an existing row, so the
// caller always receives the canonical id. A blank description never
// overwrites a stored one.
func slugConflict(table string) clause.OnConflict {
	return clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"description": gorm.Expr("COALESCE(NULLIF(EXCLUDED.description, ''), " + table + ".description)"),
		}),
	}
}

// UpsertPosition inserts the position or resolves it to the existing row with
// the same slug. On return position holds the stored row.
func (r *CatalogRepository) UpsertPosition(ctx context.Context, position *model.Position) error {
	position.ID = uuid.Nil
	position.Name = model.NormalizeCatalogName(position.Name)
	position.Slug = model.CatalogSlug(position.Name)

	err := r.db.WithContext(ctx).
		Clauses(slugConflict("positions"), clause.Returning{}).
		Create(position).Error
	return storeErr(err)
}

// UpsertCertification behaves like UpsertPosition for certifications.
func (r *CatalogRepository) UpsertCertification(ctx context.Context, certification *model.Certification) error {
	certification.ID = uuid.Nil
	certification.Name = model.NormalizeCatalogName(certification.Name)
	certification.Slug = model.CatalogSlug(certification.Name)

	err := r.db.WithContext(ctx).
		Clauses(slugConflict("certifications"), clause.Returning{}).
		Create(certification).Error
	return storeErr(err)
}

func (r *CatalogRepository) GetPositionByID(ctx context.Context, id uuid.UUID) (*model.Position, error) {
	var position model.Position
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&position).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &position, nil
}

func (r *CatalogRepository) FindPositionBySlug(ctx context.Context, slug string) (*model.Position, error) {
	var position model.Position
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&position).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &position, nil
}

func (r *CatalogRepository) FindCertificationBySlug(ctx context.Context, slug string) (*model.Certification, error) {
	var certification model.Certification
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&certification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &certification, nil
}
