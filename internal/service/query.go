package service

import (
	"context"
	"fmt"
	"math"

	"werkshift/internal/model"
	"werkshift/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ShiftPageSize is the number of shifts per ListShifts page.
const ShiftPageSize = 10

// Profile is a werker with the aggregates shown on their profile.
// AverageRating is nil until the werker has been rated.
type Profile struct {
	model.Werker
	AverageRating *float64
}

// QueryService holds the read paths. Single-row lookups return nil, nil
// when nothing matches.
type QueryService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewQueryService(store repository.Store, logger *zap.Logger) *QueryService {
	return &QueryService{store: store, logger: logger}
}

// ListShifts returns page (zero based) of shifts, newest scheduled first,
// with maker, positions and assignments expanded. A page past the end is
// empty.
func (s *QueryService) ListShifts(ctx context.Context, page int) ([]model.Shift, error) {
	if page < 0 {
		return nil, ErrInvalidPage
	}
	if page > math.MaxInt/ShiftPageSize {
		return []model.Shift{}, nil
	}
	shifts, err := s.store.Shifts().List(ctx, ShiftPageSize, page*ShiftPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	if shifts == nil {
		shifts = []model.Shift{}
	}
	return shifts, nil
}

func (s *QueryService) GetShift(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	return s.store.Shifts().GetByID(ctx, id)
}

func (s *QueryService) GetMaker(ctx context.Context, id uuid.UUID) (*model.Maker, error) {
	return s.store.Makers().GetByID(ctx, id)
}

func (s *QueryService) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	werker, err := s.store.Werkers().GetByID(ctx, id)
	if err != nil || werker == nil {
		return nil, err
	}
	avg, err := s.store.Ratings().AverageForWerker(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile{Werker: *werker, AverageRating: avg}, nil
}

// SearchShiftPositions returns the shift positions offering positionID,
// narrowed to an exact payment amount when amount is valid.
func (s *QueryService) SearchShiftPositions(ctx context.Context, positionID uuid.UUID, amount decimal.NullDecimal) ([]model.ShiftPosition, error) {
	rows, err := s.store.Shifts().SearchPositions(ctx, positionID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to search shift positions: %w", err)
	}
	if rows == nil {
		rows = []model.ShiftPosition{}
	}
	return rows, nil
}

func (s *QueryService) SearchWerkersByPosition(ctx context.Context, positionID uuid.UUID) ([]model.Werker, error) {
	werkers, err := s.store.Werkers().FindByPosition(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to search werkers: %w", err)
	}
	if werkers == nil {
		werkers = []model.Werker{}
	}
	return werkers, nil
}

// ListAssignments returns every assignment on the shift, oldest first.
func (s *QueryService) ListAssignments(ctx context.Context, shiftID uuid.UUID) ([]model.InviteApply, error) {
	rows, err := s.store.InviteApplies().Find(ctx, repository.InviteApplyFilter{ShiftID: &shiftID})
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	if rows == nil {
		rows = []model.InviteApply{}
	}
	return rows, nil
}

// GetPosition returns the catalog position with the id.
func (s *QueryService) GetPosition(ctx context.Context, id uuid.UUID) (*model.Position, error) {
	return s.store.Catalog().GetPositionByID(ctx, id)
}

// LookupPosition finds a catalog position by name without creating it.
func (s *QueryService) LookupPosition(ctx context.Context, name string) (*model.Position, error) {
	slug := model.CatalogSlug(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: position name is empty", ErrInvalidInput)
	}
	return s.store.Catalog().FindPositionBySlug(ctx, slug)
}

// LookupCertification finds a catalog certification by name without
// creating it.
func (s *QueryService) LookupCertification(ctx context.Context, name string) (*model.Certification, error) {
	slug := model.CatalogSlug(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: certification name is empty", ErrInvalidInput)
	}
	return s.store.Catalog().FindCertificationBySlug(ctx, slug)
}
