package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"werkshift/internal/model"
	"werkshift/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PositionInput names a position offered on a shift. PaymentAmount is
// optional; an invalid NullDecimal is stored as NULL.
type PositionInput struct {
	Position      string `validate:"required"`
	PaymentAmount decimal.NullDecimal
	Description   string
}

type CreateShiftInput struct {
	MakerID         uuid.UUID `validate:"required"`
	Name            string    `validate:"required,max=255"`
	TimeDate        time.Time `validate:"required"`
	DurationMinutes int       `validate:"gt=0"`
	Lat             float64   `validate:"gte=-90,lte=90"`
	Long            float64   `validate:"gte=-180,lte=180"`
	Description     string
	PaymentType     string
	Positions       []PositionInput `validate:"dive"`
}

// UpdateShiftInput replaces the shift's own columns. Positions are managed
// with AddPositions.
type UpdateShiftInput struct {
	Name            string    `validate:"required,max=255"`
	TimeDate        time.Time `validate:"required"`
	DurationMinutes int       `validate:"gt=0"`
	Lat             float64   `validate:"gte=-90,lte=90"`
	Long            float64   `validate:"gte=-180,lte=180"`
	Description     string
	PaymentType     string
}

// ShiftResult is the shift as stored after the bulk operation settled,
// plus one outcome per requested position. Shift is nil when nothing was
// kept.
type ShiftResult struct {
	Shift    *model.Shift
	Outcomes []AttachOutcome
}

// ShiftService assembles shifts from their fields and positions.
type ShiftService struct {
	store    repository.Store
	catalog  *CatalogService
	attacher *AttachmentService
	bulk     bulkRunner
	logger   *zap.Logger
}

func NewShiftService(store repository.Store, catalog *CatalogService, attacher *AttachmentService, policy BulkPolicy, logger *zap.Logger) *ShiftService {
	return &ShiftService{
		store:    store,
		catalog:  catalog,
		attacher: attacher,
		bulk:     bulkRunner{store: store, policy: policy, logger: logger},
		logger:   logger,
	}
}

func (s *ShiftService) positionItems(shiftID *uuid.UUID, positions []PositionInput, mode AttachMode) []bulkItem {
	items := make([]bulkItem, len(positions))
	for i, in := range positions {
		items[i] = bulkItem{
			kind:  "position",
			index: i,
			name:  in.Position,
			resolve: func(ctx context.Context) (uuid.UUID, error) {
				position, err := s.catalog.ResolvePosition(ctx, in.Position, in.Description)
				if err != nil {
					return uuid.Nil, err
				}
				return position.ID, nil
			},
			attach: func(ctx context.Context, st repository.Store, positionID uuid.UUID) error {
				position := &model.Position{ID: positionID, Name: model.NormalizeCatalogName(in.Position), Slug: model.CatalogSlug(in.Position)}
				_, err := s.attacher.in(st).AttachShiftPosition(ctx, *shiftID, position, in.PaymentAmount, mode)
				return err
			},
		}
	}
	return items
}

// CreateShift creates the shift and attaches its positions. Under the
// atomic policy a failed position leaves no shift behind; under best effort
// the shift and every successful position are kept and the error wraps
// ErrPartialAttachment.
func (s *ShiftService) CreateShift(ctx context.Context, in CreateShiftInput) (*ShiftResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	for _, p := range in.Positions {
		if err := validateAmount(p.PaymentAmount); err != nil {
			return nil, err
		}
	}

	shift := &model.Shift{
		MakerID:         in.MakerID,
		Name:            in.Name,
		ScheduledAt:     in.TimeDate,
		DurationMinutes: in.DurationMinutes,
		Lat:             in.Lat,
		Long:            in.Long,
		Description:     in.Description,
		PaymentType:     in.PaymentType,
	}
	create := func(ctx context.Context, st repository.Store) error {
		if err := st.Shifts().Create(ctx, shift); err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}
		return nil
	}

	outcomes, err := s.bulk.run(ctx, "create_shift", create, s.positionItems(&shift.ID, in.Positions, AttachReject))
	result := &ShiftResult{Outcomes: outcomes}
	if err != nil && !errors.Is(err, ErrPartialAttachment) {
		return result, err
	}

	stored, getErr := s.store.Shifts().GetByID(ctx, shift.ID)
	if getErr != nil {
		return result, errors.Join(err, getErr)
	}
	result.Shift = stored

	s.logger.Info("shift created",
		zap.String("shift_id", shift.ID.String()),
		zap.String("maker_id", in.MakerID.String()),
		zap.Int("positions", len(in.Positions)),
	)
	return result, err
}

// AddPositions attaches more positions to an existing shift. With
// AttachRefresh an already offered position gets its payment amount
// replaced.
func (s *ShiftService) AddPositions(ctx context.Context, shiftID uuid.UUID, positions []PositionInput, mode AttachMode) (*ShiftResult, error) {
	for _, p := range positions {
		if err := validateInput(p); err != nil {
			return nil, err
		}
		if err := validateAmount(p.PaymentAmount); err != nil {
			return nil, err
		}
	}

	exists, err := s.store.Shifts().Exists(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrShiftNotFound
	}

	outcomes, err := s.bulk.run(ctx, "add_positions", nil, s.positionItems(&shiftID, positions, mode))
	result := &ShiftResult{Outcomes: outcomes}

	stored, getErr := s.store.Shifts().GetByID(ctx, shiftID)
	if getErr != nil {
		return result, errors.Join(err, getErr)
	}
	result.Shift = stored
	return result, err
}

// RequireOwner returns repository.ErrShiftNotFound or ErrNotShiftOwner
// unless makerID posted the shift.
func (s *ShiftService) RequireOwner(ctx context.Context, shiftID, makerID uuid.UUID) error {
	shift, err := s.store.Shifts().GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if shift == nil {
		return repository.ErrShiftNotFound
	}
	if shift.MakerID != makerID {
		return ErrNotShiftOwner
	}
	return nil
}

func (s *ShiftService) UpdateShift(ctx context.Context, shiftID uuid.UUID, in UpdateShiftInput) (*model.Shift, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	shift := &model.Shift{
		ID:              shiftID,
		Name:            in.Name,
		ScheduledAt:     in.TimeDate,
		DurationMinutes: in.DurationMinutes,
		Lat:             in.Lat,
		Long:            in.Long,
		Description:     in.Description,
		PaymentType:     in.PaymentType,
	}
	if err := s.store.Shifts().Update(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}
	return s.store.Shifts().GetByID(ctx, shiftID)
}

// DeleteShift hard-deletes the shift with its positions and assignments
// and returns the number of shifts removed, 0 or 1.
func (s *ShiftService) DeleteShift(ctx context.Context, shiftID uuid.UUID) (int64, error) {
	n, err := s.store.Shifts().Delete(ctx, shiftID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete shift: %w", err)
	}
	if n > 0 {
		s.logger.Info("shift deleted", zap.String("shift_id", shiftID.String()))
	}
	return n, nil
}
