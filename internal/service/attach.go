package service

import (
	"context"
	"errors"
	"fmt"

	"werkshift/internal/metrics"
	"werkshift/internal/model"
	"werkshift/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AttachMode decides what happens when the (owner, catalog row) pair is
// already linked.
type AttachMode int

const (
	// AttachReject fails with repository.ErrDuplicateAttachment.
	AttachReject AttachMode = iota
	// AttachRefresh overwrites the relation attributes of the existing row.
	AttachRefresh
)

func ParseAttachMode(s string) (AttachMode, error) {
	switch s {
	case "", "reject":
		return AttachReject, nil
	case "refresh":
		return AttachRefresh, nil
	}
	return AttachReject, fmt.Errorf("%w: unknown attach mode %q", ErrInvalidInput, s)
}

func (m AttachMode) String() string {
	if m == AttachRefresh {
		return "refresh"
	}
	return "reject"
}

// AttachmentService links resolved catalog rows to shifts and werkers.
type AttachmentService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewAttachmentService(store repository.Store, logger *zap.Logger) *AttachmentService {
	return &AttachmentService{store: store, logger: logger}
}

// in returns a copy bound to st, typically a transaction.
func (s *AttachmentService) in(st repository.Store) *AttachmentService {
	return &AttachmentService{store: st, logger: s.logger}
}

// AttachShiftPosition offers position on the shift at the given rate. New
// rows always start unfilled.
func (s *AttachmentService) AttachShiftPosition(ctx context.Context, shiftID uuid.UUID, position *model.Position, amount decimal.NullDecimal, mode AttachMode) (*model.ShiftPosition, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	sp := &model.ShiftPosition{
		ShiftID:       shiftID,
		PositionID:    position.ID,
		PaymentAmount: amount,
	}
	err := s.store.Shifts().AttachPosition(ctx, sp, mode == AttachRefresh)
	metrics.RecordAttachment("shift_position", err)
	if err != nil {
		err = s.ownerMissing(ctx, err, s.store.Shifts().Exists, shiftID, repository.ErrShiftNotFound)
		s.logger.Debug("shift position not attached",
			zap.String("shift_id", shiftID.String()),
			zap.String("position", position.Slug),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to attach position %q: %w", position.Name, err)
	}

	sp.Position = *position
	return sp, nil
}

// AttachWerkerCertification records that the werker holds the
// certification. urlPhoto is the picture of the werker's own certificate and
// may be nil.
func (s *AttachmentService) AttachWerkerCertification(ctx context.Context, werkerID uuid.UUID, certification *model.Certification, urlPhoto *string, mode AttachMode) (*model.WerkerCertification, error) {
	wc := &model.WerkerCertification{
		WerkerID:        werkerID,
		CertificationID: certification.ID,
		URLPhoto:        urlPhoto,
	}
	err := s.store.Werkers().AttachCertification(ctx, wc, mode == AttachRefresh)
	metrics.RecordAttachment("werker_certification", err)
	if err != nil {
		err = s.ownerMissing(ctx, err, s.store.Werkers().Exists, werkerID, repository.ErrWerkerNotFound)
		return nil, fmt.Errorf("failed to attach certification %q: %w", certification.Name, err)
	}

	wc.Certification = *certification
	return wc, nil
}

// AttachWerkerPosition declares a skill. Refreshing an existing skill is a
// no-op since the relation carries no attributes.
func (s *AttachmentService) AttachWerkerPosition(ctx context.Context, werkerID uuid.UUID, position *model.Position, mode AttachMode) (*model.WerkerPosition, error) {
	wp := &model.WerkerPosition{WerkerID: werkerID, PositionID: position.ID}
	err := s.store.Werkers().AttachPosition(ctx, wp, mode == AttachRefresh)
	metrics.RecordAttachment("werker_position", err)
	if err != nil {
		err = s.ownerMissing(ctx, err, s.store.Werkers().Exists, werkerID, repository.ErrWerkerNotFound)
		return nil, fmt.Errorf("failed to attach position %q: %w", position.Name, err)
	}

	wp.Position = *position
	return wp, nil
}

// ownerMissing relabels a missing reference as notFound when the owning row
// is confirmed absent. Otherwise the catalog row is the one missing and err
// is returned unchanged. A failed lookup also leaves err unchanged, since an
// aborted transaction cannot answer it.
func (s *AttachmentService) ownerMissing(ctx context.Context, err error, exists func(context.Context, uuid.UUID) (bool, error), ownerID uuid.UUID, notFound error) error {
	if !errors.Is(err, repository.ErrMissingReference) {
		return err
	}
	found, lookupErr := exists(ctx, ownerID)
	if lookupErr != nil || found {
		return err
	}
	return fmt.Errorf("%w: %w", notFound, err)
}
