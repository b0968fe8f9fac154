package service

import (
	"context"
	"fmt"

	"werkshift/internal/metrics"
	"werkshift/internal/model"
	"werkshift/internal/repository"

	"go.uber.org/zap"
)

// CatalogService resolves position and certification names to their
// canonical catalog rows, creating them on first reference.
type CatalogService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewCatalogService(store repository.Store, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// ResolvePosition returns the position named name. A non-empty description
// replaces the stored one; the row identity never changes.
func (s *CatalogService) ResolvePosition(ctx context.Context, name, description string) (*model.Position, error) {
	if model.CatalogSlug(name) == "" {
		return nil, fmt.Errorf("%w: position name is empty", ErrInvalidInput)
	}

	position := &model.Position{Name: name, Description: description}
	err := s.store.Catalog().UpsertPosition(ctx, position)
	metrics.RecordCatalogResolution("position", err)
	if err != nil {
		s.logger.Error("failed to resolve position", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to resolve position %q: %w", name, err)
	}

	s.logger.Debug("resolved position", zap.String("slug", position.Slug), zap.String("position_id", position.ID.String()))
	return position, nil
}

func (s *CatalogService) ResolveCertification(ctx context.Context, name, description string) (*model.Certification, error) {
	if model.CatalogSlug(name) == "" {
		return nil, fmt.Errorf("%w: certification name is empty", ErrInvalidInput)
	}

	certification := &model.Certification{Name: name, Description: description}
	err := s.store.Catalog().UpsertCertification(ctx, certification)
	metrics.RecordCatalogResolution("certification", err)
	if err != nil {
		s.logger.Error("failed to resolve certification", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to resolve certification %q: %w", name, err)
	}

	s.logger.Debug("resolved certification", zap.String("slug", certification.Slug), zap.String("certification_id", certification.ID.String()))
	return certification, nil
}
