package repository

import (
	"context"
	"time"

	"werkshift/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MakerRepositoryInterface interface {
	Create(ctx context.Context, maker *model.Maker) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Maker, error)
}

// CatalogRepositoryInterface upserts catalog rows by slug. Upserts must be
// atomic on the unique key: concurrent callers with the same name end up
// holding the same row.
type CatalogRepositoryInterface interface {
	UpsertPosition(ctx context.Context, position *model.Position) error
	UpsertCertification(ctx context.Context, certification *model.Certification) error
	GetPositionByID(ctx context.Context, id uuid.UUID) (*model.Position, error)
	FindPositionBySlug(ctx context.Context, slug string) (*model.Position, error)
	FindCertificationBySlug(ctx context.Context, slug string) (*model.Certification, error)
}

type ShiftRepositoryInterface interface {
	Create(ctx context.Context, shift *model.Shift) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Shift, error)
	List(ctx context.Context, limit, offset int) ([]model.Shift, error)
	Update(ctx context.Context, shift *model.Shift) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	AttachPosition(ctx context.Context, sp *model.ShiftPosition, refresh bool) error
	GetPosition(ctx context.Context, shiftID, positionID uuid.UUID) (*model.ShiftPosition, error)
	MarkPositionFilled(ctx context.Context, shiftID, positionID uuid.UUID) error
	SearchPositions(ctx context.Context, positionID uuid.UUID, amount decimal.NullDecimal) ([]model.ShiftPosition, error)
}

type WerkerRepositoryInterface interface {
	Create(ctx context.Context, werker *model.Werker) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Werker, error)
	Update(ctx context.Context, werker *model.Werker) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)

	AttachCertification(ctx context.Context, wc *model.WerkerCertification, refresh bool) error
	AttachPosition(ctx context.Context, wp *model.WerkerPosition, refresh bool) error
	FindByPosition(ctx context.Context, positionID uuid.UUID) ([]model.Werker, error)
}

// InviteApplyFilter matches rows on every non-nil field.
type InviteApplyFilter struct {
	ShiftID    *uuid.UUID
	WerkerID   *uuid.UUID
	PositionID *uuid.UUID
	Status     *model.AssignmentStatus
}

type InviteApplyRepositoryInterface interface {
	// CreateIfAbsent inserts the row unless one already exists for its
	// (shift, werker, position). It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, ia *model.InviteApply) (bool, error)
	FindOne(ctx context.Context, shiftID, werkerID, positionID uuid.UUID) (*model.InviteApply, error)
	Find(ctx context.Context, filter InviteApplyFilter) ([]model.InviteApply, error)
	// TransitionStatus moves the given rows from one status to another and
	// returns the rows that were still in the from status.
	TransitionStatus(ctx context.Context, ids []uuid.UUID, from, to model.AssignmentStatus) ([]model.InviteApply, error)
}

type RatingRepositoryInterface interface {
	Create(ctx context.Context, rating *model.Rating) error
	AverageForWerker(ctx context.Context, werkerID uuid.UUID) (*float64, error)
}

// Store is the entity store every service depends on.
type Store interface {
	Makers() MakerRepositoryInterface
	Catalog() CatalogRepositoryInterface
	Shifts() ShiftRepositoryInterface
	Werkers() WerkerRepositoryInterface
	InviteApplies() InviteApplyRepositoryInterface
	Ratings() RatingRepositoryInterface

	// Transaction runs fn against a store bound to one transaction. The
	// transaction is rolled back when fn returns an error.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Makers() MakerRepositoryInterface { return NewMakerRepository(s.db) }

func (s *GormStore) Catalog() CatalogRepositoryInterface { return NewCatalogRepository(s.db) }

func (s *GormStore) Shifts() ShiftRepositoryInterface { return NewShiftRepository(s.db) }

func (s *GormStore) Werkers() WerkerRepositoryInterface { return NewWerkerRepository(s.db) }

func (s *GormStore) InviteApplies() InviteApplyRepositoryInterface {
	return NewInviteApplyRepository(s.db)
}

func (s *GormStore) Ratings() RatingRepositoryInterface { return NewRatingRepository(s.db) }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Ping checks the connection within the given timeout.
func (s *GormStore) Ping(ctx context.Context, timeout time.Duration) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return storeErr(err)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return storeErr(sqlDB.PingContext(ctx))
}
