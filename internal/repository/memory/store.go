// Package memory is an in-process implementation of repository.Store. It
// keeps the same uniqueness, cascade and referential rules as the SQL
// schema so services can be exercised without a database.
package memory

import (
	"context"
	"sync"

	"werkshift/internal/model"
	"werkshift/internal/repository"

	"github.com/google/uuid"
)

type pair struct {
	a, b uuid.UUID
}

type triple struct {
	shift, werker, position uuid.UUID
}

type tables struct {
	mu sync.Mutex

	makers               map[uuid.UUID]model.Maker
	positions            map[uuid.UUID]model.Position
	positionSlugs        map[string]uuid.UUID
	certifications       map[uuid.UUID]model.Certification
	certificationSlugs   map[string]uuid.UUID
	shifts               map[uuid.UUID]model.Shift
	shiftPositions       map[pair]model.ShiftPosition
	werkers              map[uuid.UUID]model.Werker
	werkerCertifications map[pair]model.WerkerCertification
	werkerPositions      map[pair]model.WerkerPosition
	inviteApplies        map[uuid.UUID]model.InviteApply
	inviteApplyKeys      map[triple]uuid.UUID
	ratings              map[uuid.UUID]model.Rating

	failures map[string]error
}

// Store is safe for concurrent use. Inside Transaction every write records
// an undo step; a failed transaction replays them in reverse.
type Store struct {
	t    *tables
	undo *[]func()
}

var _ repository.Store = (*Store)(nil)

func New() *Store {
	return &Store{t: &tables{
		makers:               make(map[uuid.UUID]model.Maker),
		positions:            make(map[uuid.UUID]model.Position),
		positionSlugs:        make(map[string]uuid.UUID),
		certifications:       make(map[uuid.UUID]model.Certification),
		certificationSlugs:   make(map[string]uuid.UUID),
		shifts:               make(map[uuid.UUID]model.Shift),
		shiftPositions:       make(map[pair]model.ShiftPosition),
		werkers:              make(map[uuid.UUID]model.Werker),
		werkerCertifications: make(map[pair]model.WerkerCertification),
		werkerPositions:      make(map[pair]model.WerkerPosition),
		inviteApplies:        make(map[uuid.UUID]model.InviteApply),
		inviteApplyKeys:      make(map[triple]uuid.UUID),
		ratings:              make(map[uuid.UUID]model.Rating),
		failures:             make(map[string]error),
	}}
}

// Fail makes every call of the named operation return err until it is
// cleared with a nil err. Operation names are "<repo>.<method>", for
// example "shifts.AttachPosition".
func (s *Store) Fail(op string, err error) {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	if err == nil {
		delete(s.t.failures, op)
		return
	}
	s.t.failures[op] = err
}

// lock takes the table lock and returns the injected failure for op, if any.
// Callers must unlock even when an error is returned.
func (s *Store) lock(op string) error {
	s.t.mu.Lock()
	if err, ok := s.t.failures[op]; ok {
		return err
	}
	return nil
}

func (s *Store) unlock() {
	s.t.mu.Unlock()
}

// record registers an undo step. Must be called with the table lock held.
func (s *Store) record(fn func()) {
	if s.undo != nil {
		*s.undo = append(*s.undo, fn)
	}
}

func (s *Store) Makers() repository.MakerRepositoryInterface { return makerRepo{s} }

func (s *Store) Catalog() repository.CatalogRepositoryInterface { return catalogRepo{s} }

func (s *Store) Shifts() repository.ShiftRepositoryInterface { return shiftRepo{s} }

func (s *Store) Werkers() repository.WerkerRepositoryInterface { return werkerRepo{s} }

func (s *Store) InviteApplies() repository.InviteApplyRepositoryInterface {
	return inviteApplyRepo{s}
}

func (s *Store) Ratings() repository.RatingRepositoryInterface { return ratingRepo{s} }

// Transaction gives fn a store whose writes are undone if fn fails. Nested
// calls join the outer transaction. Isolation is read-uncommitted: other
// callers can observe writes before the transaction finishes.
func (s *Store) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.undo != nil {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &Store{t: s.t, undo: &[]func(){}}
	if err := fn(tx); err != nil {
		s.t.mu.Lock()
		steps := *tx.undo
		for i := len(steps) - 1; i >= 0; i-- {
			steps[i]()
		}
		s.t.mu.Unlock()
		return err
	}
	return nil
}

// CountPositions returns the number of catalog positions.
func (s *Store) CountPositions() int {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	return len(s.t.positions)
}

// CountShiftPositions returns the number of junction rows for a shift.
func (s *Store) CountShiftPositions(shiftID uuid.UUID) int {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	n := 0
	for k := range s.t.shiftPositions {
		if k.a == shiftID {
			n++
		}
	}
	return n
}

// CountShifts returns the number of stored shifts.
func (s *Store) CountShifts() int {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	return len(s.t.shifts)
}

// CountWerkers returns the number of stored werkers.
func (s *Store) CountWerkers() int {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	return len(s.t.werkers)
}
