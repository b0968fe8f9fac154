package service

import (
	"context"
	"fmt"
	"time"

	"werkshift/internal/metrics"
	"werkshift/internal/model"
	"werkshift/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InviteInput describes an invitation. Status may be left empty; the only
// accepted initial status is Pending. Type defaults to Invite.
type InviteInput struct {
	WerkerID   uuid.UUID              `validate:"required"`
	PositionID uuid.UUID              `validate:"required"`
	Status     model.AssignmentStatus `validate:"omitempty,oneof=Pending Accepted Declined"`
	Expiration *time.Time
	Type       model.AssignmentType `validate:"omitempty,oneof=Invite Apply"`
}

// AssignmentService owns every status change of InviteApply rows.
//
// Pending is the only initial status. Accepted and Declined are terminal:
// no operation moves a row out of them. There is at most one row per
// (shift, werker, position); inviting and applying share one entry point
// that creates the row when it is missing and otherwise reuses it.
type AssignmentService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewAssignmentService(store repository.Store, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{store: store, logger: logger}
}

// open returns the Pending row for the triple, creating it when absent.
// An existing Pending row is returned unchanged, including its type.
func (s *AssignmentService) open(ctx context.Context, shiftID, werkerID, positionID uuid.UUID, typ model.AssignmentType, expiration *time.Time) (*model.InviteApply, error) {
	exists, err := s.store.Shifts().Exists(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrShiftNotFound
	}
	exists, err = s.store.Werkers().Exists(ctx, werkerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrWerkerNotFound
	}
	sp, err := s.store.Shifts().GetPosition(ctx, shiftID, positionID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, ErrPositionNotOnShift
	}

	row := &model.InviteApply{
		ShiftID:    shiftID,
		WerkerID:   werkerID,
		PositionID: positionID,
		Status:     model.StatusPending,
		Type:       typ,
		Expiration: expiration,
	}
	created, err := s.store.InviteApplies().CreateIfAbsent(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("failed to open assignment: %w", err)
	}

	current, err := s.store.InviteApplies().FindOne(ctx, shiftID, werkerID, positionID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		// deleted concurrently with its shift or werker
		return nil, repository.ErrShiftNotFound
	}
	if current.Status.Terminal() {
		return nil, fmt.Errorf("%w: assignment is already %s", ErrInvalidTransition, current.Status)
	}

	if created {
		metrics.RecordTransition(string(model.StatusPending), 1)
		s.logger.Info("assignment opened",
			zap.String("shift_id", shiftID.String()),
			zap.String("werker_id", werkerID.String()),
			zap.String("position_id", positionID.String()),
			zap.String("type", string(typ)),
		)
	}
	return current, nil
}

// InviteWerker opens a Pending assignment for the werker on one of the
// shift's positions.
func (s *AssignmentService) InviteWerker(ctx context.Context, shiftID uuid.UUID, in InviteInput) (*model.InviteApply, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Status != "" && in.Status != model.StatusPending {
		return nil, fmt.Errorf("%w: assignments start as %s, not %s", ErrInvalidTransition, model.StatusPending, in.Status)
	}
	typ := in.Type
	if typ == "" {
		typ = model.TypeInvite
	}
	return s.open(ctx, shiftID, in.WerkerID, in.PositionID, typ, in.Expiration)
}

// ApplyForShift puts the werker's assignment on the shift into Pending and
// returns how many of the werker's rows on the shift are Pending for the
// call.
//
// With a position it opens that assignment, creating it if needed. Without
// one it affirms the werker's existing rows: Pending rows are counted, no
// rows yields 0 and rows that are all terminal yield ErrInvalidTransition.
func (s *AssignmentService) ApplyForShift(ctx context.Context, shiftID, werkerID uuid.UUID, positionID *uuid.UUID) (int64, error) {
	if positionID != nil {
		if _, err := s.open(ctx, shiftID, werkerID, *positionID, model.TypeApply, nil); err != nil {
			return 0, err
		}
		return 1, nil
	}

	rows, err := s.store.InviteApplies().Find(ctx, repository.InviteApplyFilter{ShiftID: &shiftID, WerkerID: &werkerID})
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	var pending int64
	for _, row := range rows {
		if row.Status == model.StatusPending {
			pending++
		}
	}
	if pending == 0 {
		return 0, fmt.Errorf("%w: every assignment on the shift is final", ErrInvalidTransition)
	}
	return pending, nil
}

// AcceptShift moves the werker's Pending rows on the shift to Accepted and
// marks the matching shift positions filled. positionID narrows the match
// to one position.
func (s *AssignmentService) AcceptShift(ctx context.Context, shiftID, werkerID uuid.UUID, positionID *uuid.UUID) (int64, error) {
	return s.transition(ctx, shiftID, werkerID, positionID, model.StatusAccepted)
}

// DeclineShift moves the werker's Pending rows on the shift to Declined.
func (s *AssignmentService) DeclineShift(ctx context.Context, shiftID, werkerID uuid.UUID, positionID *uuid.UUID) (int64, error) {
	return s.transition(ctx, shiftID, werkerID, positionID, model.StatusDeclined)
}

// transition returns the number of rows moved. No matching rows is not an
// error; matching rows that are all terminal are.
func (s *AssignmentService) transition(ctx context.Context, shiftID, werkerID uuid.UUID, positionID *uuid.UUID, to model.AssignmentStatus) (int64, error) {
	var moved []model.InviteApply
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		rows, err := tx.InviteApplies().Find(ctx, repository.InviteApplyFilter{
			ShiftID:    &shiftID,
			WerkerID:   &werkerID,
			PositionID: positionID,
		})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		var ids []uuid.UUID
		for _, row := range rows {
			if row.Status == model.StatusPending {
				ids = append(ids, row.ID)
			}
		}
		if len(ids) == 0 {
			return fmt.Errorf("%w: cannot move a final assignment to %s", ErrInvalidTransition, to)
		}

		moved, err = tx.InviteApplies().TransitionStatus(ctx, ids, model.StatusPending, to)
		if err != nil {
			return err
		}
		if len(moved) == 0 {
			// every row was finalized by a concurrent call
			return fmt.Errorf("%w: cannot move a final assignment to %s", ErrInvalidTransition, to)
		}

		if to == model.StatusAccepted {
			for _, row := range moved {
				if err := tx.Shifts().MarkPositionFilled(ctx, row.ShiftID, row.PositionID); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if len(moved) > 0 {
		metrics.RecordTransition(string(to), len(moved))
		s.logger.Info("assignment transitioned",
			zap.String("shift_id", shiftID.String()),
			zap.String("werker_id", werkerID.String()),
			zap.String("status", string(to)),
			zap.Int("rows", len(moved)),
		)
	}
	return int64(len(moved)), nil
}
