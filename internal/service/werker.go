package service

import (
	"context"
	"errors"
	"fmt"

	"werkshift/internal/model"
	"werkshift/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CertificationInput names a certification the werker holds. URLPhoto is
// optional and stored as NULL when absent.
type CertificationInput struct {
	Certification string `validate:"required"`
	URLPhoto      *string `validate:"omitempty,url"`
	Description   string
}

type AddWerkerInput struct {
	// ID is the authenticated actor id; uuid.Nil lets the store pick one.
	ID             uuid.UUID
	NameFirst      string  `validate:"required,max=100"`
	NameLast       string  `validate:"required,max=100"`
	Email          string  `validate:"required,email"`
	URLPhoto       string  `validate:"omitempty,url"`
	Bio            string  `validate:"max=2000"`
	Phone          string  `validate:"max=32"`
	LastMinute     bool
	Lat            float64 `validate:"gte=-90,lte=90"`
	Long           float64 `validate:"gte=-180,lte=180"`
	Certifications []CertificationInput `validate:"dive"`
	Positions      []string             `validate:"dive,required"`
}

type UpdateWerkerInput struct {
	NameFirst  string  `validate:"required,max=100"`
	NameLast   string  `validate:"required,max=100"`
	Email      string  `validate:"required,email"`
	URLPhoto   string  `validate:"omitempty,url"`
	Bio        string  `validate:"max=2000"`
	Phone      string  `validate:"max=32"`
	LastMinute bool
	Lat        float64 `validate:"gte=-90,lte=90"`
	Long       float64 `validate:"gte=-180,lte=180"`
}

type WerkerResult struct {
	Werker   *model.Werker
	Outcomes []AttachOutcome
}

// WerkerService onboards werkers with their certifications and skills.
type WerkerService struct {
	store    repository.Store
	catalog  *CatalogService
	attacher *AttachmentService
	bulk     bulkRunner
	logger   *zap.Logger
}

func NewWerkerService(store repository.Store, catalog *CatalogService, attacher *AttachmentService, policy BulkPolicy, logger *zap.Logger) *WerkerService {
	return &WerkerService{
		store:    store,
		catalog:  catalog,
		attacher: attacher,
		bulk:     bulkRunner{store: store, policy: policy, logger: logger},
		logger:   logger,
	}
}

func (s *WerkerService) certificationItem(werkerID *uuid.UUID, i int, in CertificationInput) bulkItem {
	return bulkItem{
		kind:  "certification",
		index: i,
		name:  in.Certification,
		resolve: func(ctx context.Context) (uuid.UUID, error) {
			certification, err := s.catalog.ResolveCertification(ctx, in.Certification, in.Description)
			if err != nil {
				return uuid.Nil, err
			}
			return certification.ID, nil
		},
		attach: func(ctx context.Context, st repository.Store, certificationID uuid.UUID) error {
			certification := &model.Certification{ID: certificationID, Name: model.NormalizeCatalogName(in.Certification)}
			_, err := s.attacher.in(st).AttachWerkerCertification(ctx, *werkerID, certification, in.URLPhoto, AttachReject)
			return err
		},
	}
}

func (s *WerkerService) positionItem(werkerID *uuid.UUID, i int, name string) bulkItem {
	return bulkItem{
		kind:  "position",
		index: i,
		name:  name,
		resolve: func(ctx context.Context) (uuid.UUID, error) {
			position, err := s.catalog.ResolvePosition(ctx, name, "")
			if err != nil {
				return uuid.Nil, err
			}
			return position.ID, nil
		},
		attach: func(ctx context.Context, st repository.Store, positionID uuid.UUID) error {
			position := &model.Position{ID: positionID, Name: model.NormalizeCatalogName(name)}
			_, err := s.attacher.in(st).AttachWerkerPosition(ctx, *werkerID, position, AttachReject)
			return err
		},
	}
}

// AddWerker creates the werker profile and attaches its certifications
// and declared skill positions under the configured bulk policy.
func (s *WerkerService) AddWerker(ctx context.Context, in AddWerkerInput) (*WerkerResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	werker := &model.Werker{
		ID:         in.ID,
		NameFirst:  in.NameFirst,
		NameLast:   in.NameLast,
		Email:      in.Email,
		URLPhoto:   in.URLPhoto,
		Bio:        in.Bio,
		Phone:      in.Phone,
		LastMinute: in.LastMinute,
		Lat:        in.Lat,
		Long:       in.Long,
	}
	create := func(ctx context.Context, st repository.Store) error {
		if err := st.Werkers().Create(ctx, werker); err != nil {
			return fmt.Errorf("failed to create werker: %w", err)
		}
		return nil
	}

	items := make([]bulkItem, 0, len(in.Certifications)+len(in.Positions))
	for i, c := range in.Certifications {
		items = append(items, s.certificationItem(&werker.ID, i, c))
	}
	for i, p := range in.Positions {
		items = append(items, s.positionItem(&werker.ID, i, p))
	}

	outcomes, err := s.bulk.run(ctx, "add_werker", create, items)
	result := &WerkerResult{Outcomes: outcomes}
	if err != nil && !errors.Is(err, ErrPartialAttachment) {
		return result, err
	}

	stored, getErr := s.store.Werkers().GetByID(ctx, werker.ID)
	if getErr != nil {
		return result, errors.Join(err, getErr)
	}
	result.Werker = stored

	s.logger.Info("werker added",
		zap.String("werker_id", werker.ID.String()),
		zap.Int("certifications", len(in.Certifications)),
		zap.Int("positions", len(in.Positions)),
	)
	return result, err
}

func (s *WerkerService) UpdateWerker(ctx context.Context, werkerID uuid.UUID, in UpdateWerkerInput) (*model.Werker, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	werker := &model.Werker{
		ID:         werkerID,
		NameFirst:  in.NameFirst,
		NameLast:   in.NameLast,
		Email:      in.Email,
		URLPhoto:   in.URLPhoto,
		Bio:        in.Bio,
		Phone:      in.Phone,
		LastMinute: in.LastMinute,
		Lat:        in.Lat,
		Long:       in.Long,
	}
	if err := s.store.Werkers().Update(ctx, werker); err != nil {
		return nil, fmt.Errorf("failed to update werker: %w", err)
	}
	return s.store.Werkers().GetByID(ctx, werkerID)
}

// DeleteWerker removes the werker with its skills, certifications,
// assignments and ratings. It returns 0 when no werker had the id.
func (s *WerkerService) DeleteWerker(ctx context.Context, werkerID uuid.UUID) (int64, error) {
	n, err := s.store.Werkers().Delete(ctx, werkerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete werker: %w", err)
	}
	return n, nil
}

// RateWerker records the maker's score for a werker who accepted a
// position on one of the maker's shifts. A werker is rated at most once
// per shift.
func (s *WerkerService) RateWerker(ctx context.Context, makerID, werkerID, shiftID uuid.UUID, score int) (*model.Rating, error) {
	if score < 1 || score > 5 {
		return nil, fmt.Errorf("%w: score must be between 1 and 5", ErrInvalidInput)
	}

	shift, err := s.store.Shifts().GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, repository.ErrShiftNotFound
	}
	if shift.MakerID != makerID {
		return nil, ErrNotShiftOwner
	}

	accepted := model.StatusAccepted
	rows, err := s.store.InviteApplies().Find(ctx, repository.InviteApplyFilter{
		ShiftID:  &shiftID,
		WerkerID: &werkerID,
		Status:   &accepted,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotAssigned
	}

	rating := &model.Rating{WerkerID: werkerID, ShiftID: shiftID, Score: score}
	if err := s.store.Ratings().Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to rate werker: %w", err)
	}
	return rating, nil
}
