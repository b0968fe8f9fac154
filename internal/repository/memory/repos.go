package memory

import (
	"bytes"
	"context"
	"sort"
	"time"

	"werkshift/internal/model"
	"werkshift/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

func lessID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

type makerRepo struct{ s *Store }

func (r makerRepo) Create(ctx context.Context, maker *model.Maker) error {
	err := r.s.lock("makers.Create")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	maker.ID = newID(maker.ID)
	maker.CreatedAt = time.Now()
	t := r.s.t
	if _, ok := t.makers[maker.ID]; ok {
		return repository.ErrAlreadyExists
	}
	t.makers[maker.ID] = *maker
	id := maker.ID
	r.s.record(func() { delete(t.makers, id) })
	return nil
}

func (r makerRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Maker, error) {
	err := r.s.lock("makers.GetByID")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	m, ok := r.s.t.makers[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

type catalogRepo struct{ s *Store }

func (r catalogRepo) UpsertPosition(ctx context.Context, position *model.Position) error {
	err := r.s.lock("catalog.UpsertPosition")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	t := r.s.t
	name := model.NormalizeCatalogName(position.Name)
	slug := model.CatalogSlug(name)

	if id, ok := t.positionSlugs[slug]; ok {
		row := t.positions[id]
		if position.Description != "" && position.Description != row.Description {
			old := row
			row.Description = position.Description
			t.positions[id] = row
			r.s.record(func() { t.positions[id] = old })
		}
		*position = row
		return nil
	}

	row := model.Position{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug,
		Description: position.Description,
		CreatedAt:   time.Now(),
	}
	t.positions[row.ID] = row
	t.positionSlugs[slug] = row.ID
	r.s.record(func() {
		delete(t.positions, row.ID)
		delete(t.positionSlugs, slug)
	})
	*position = row
	return nil
}

func (r catalogRepo) UpsertCertification(ctx context.Context, certification *model.Certification) error {
	err := r.s.lock("catalog.UpsertCertification")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	t := r.s.t
	name := model.NormalizeCatalogName(certification.Name)
	slug := model.CatalogSlug(name)

	if id, ok := t.certificationSlugs[slug]; ok {
		row := t.certifications[id]
		if certification.Description != "" && certification.Description != row.Description {
			old := row
			row.Description = certification.Description
			t.certifications[id] = row
			r.s.record(func() { t.certifications[id] = old })
		}
		*certification = row
		return nil
	}

	row := model.Certification{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug,
		Description: certification.Description,
		CreatedAt:   time.Now(),
	}
	t.certifications[row.ID] = row
	t.certificationSlugs[slug] = row.ID
	r.s.record(func() {
		delete(t.certifications, row.ID)
		delete(t.certificationSlugs, slug)
	})
	*certification = row
	return nil
}

func (r catalogRepo) GetPositionByID(ctx context.Context, id uuid.UUID) (*model.Position, error) {
	err := r.s.lock("catalog.GetPositionByID")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	p, ok := r.s.t.positions[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r catalogRepo) FindPositionBySlug(ctx context.Context, slug string) (*model.Position, error) {
	err := r.s.lock("catalog.FindPositionBySlug")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	id, ok := r.s.t.positionSlugs[slug]
	if !ok {
		return nil, nil
	}
	p := r.s.t.positions[id]
	return &p, nil
}

func (r catalogRepo) FindCertificationBySlug(ctx context.Context, slug string) (*model.Certification, error) {
	err := r.s.lock("catalog.FindCertificationBySlug")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	id, ok := r.s.t.certificationSlugs[slug]
	if !ok {
		return nil, nil
	}
	c := r.s.t.certifications[id]
	return &c, nil
}

type shiftRepo struct{ s *Store }

func (r shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	err := r.s.lock("shifts.Create")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	t := r.s.t
	if _, ok := t.makers[shift.MakerID]; !ok {
		return repository.ErrMakerNotFound
	}
	shift.ID = newID(shift.ID)
	now := time.Now()
	shift.CreatedAt, shift.UpdatedAt = now, now

	row := *shift
	row.Maker = model.Maker{}
	row.Positions = nil
	row.Assignments = nil
	t.shifts[row.ID] = row
	r.s.record(func() { delete(t.shifts, row.ID) })
	return nil
}

func (r shiftRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	err := r.s.lock("shifts.Exists")
	defer r.s.unlock()
	if err != nil {
		return false, err
	}
	_, ok := r.s.t.shifts[id]
	return ok, nil
}

// expand builds the preloaded view of a stored shift. Lock must be held.
func (r shiftRepo) expand(row model.Shift) model.Shift {
	t := r.s.t
	row.Maker = t.makers[row.MakerID]

	row.Positions = nil
	for k, sp := range t.shiftPositions {
		if k.a != row.ID {
			continue
		}
		sp.Position = t.positions[sp.PositionID]
		row.Positions = append(row.Positions, sp)
	}
	sort.Slice(row.Positions, func(i, j int) bool {
		return lessID(row.Positions[i].PositionID, row.Positions[j].PositionID)
	})

	row.Assignments = nil
	for _, ia := range t.inviteApplies {
		if ia.ShiftID != row.ID {
			continue
		}
		if w, ok := t.werkers[ia.WerkerID]; ok {
			ia.Werker = &w
		}
		row.Assignments = append(row.Assignments, ia)
	}
	sortInviteApplies(row.Assignments)
	return row
}

func (r shiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	err := r.s.lock("shifts.GetByID")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	row, ok := r.s.t.shifts[id]
	if !ok {
		return nil, nil
	}
	shift := r.expand(row)
	return &shift, nil
}

func (r shiftRepo) List(ctx context.Context, limit, offset int) ([]model.Shift, error) {
	err := r.s.lock("shifts.List")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	all := make([]model.Shift, 0, len(r.s.t.shifts))
	for _, row := range r.s.t.shifts {
		all = append(all, row)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].ScheduledAt.Equal(all[j].ScheduledAt) {
			return all[i].ScheduledAt.After(all[j].ScheduledAt)
		}
		return lessID(all[i].ID, all[j].ID)
	})
	if offset < 0 || offset >= len(all) {
		return []model.Shift{}, nil
	}
	end := offset + limit
	if limit < 0 || end > len(all) || end < offset {
		end = len(all)
	}
	page := make([]model.Shift, 0, end-offset)
	for _, row := range all[offset:end] {
		page = append(page, r.expand(row))
	}
	return page, nil
}

func (r shiftRepo) Update(ctx context.Context, shift *model.Shift) error {
	err := r.s.lock("shifts.Update")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	t := r.s.t
	old, ok := t.shifts[shift.ID]
	if !ok {
		return repository.ErrShiftNotFound
	}
	row := old
	row.Name = shift.Name
	row.ScheduledAt = shift.ScheduledAt
	row.DurationMinutes = shift.DurationMinutes
	row.Lat = shift.Lat
	row.Long = shift.Long
	row.Description = shift.Description
	row.PaymentType = shift.PaymentType
	row.UpdatedAt = time.Now()
	t.shifts[row.ID] = row
	r.s.record(func() { t.shifts[old.ID] = old })
	return nil
}

func (r shiftRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	err := r.s.lock("shifts.Delete")
	defer r.s.unlock()
	if err != nil {
		return 0, err
	}
	t := r.s.t
	row, ok := t.shifts[id]
	if !ok {
		return 0, nil
	}
	delete(t.shifts, id)

	removedPositions := map[pair]model.ShiftPosition{}
	for k, sp := range t.shiftPositions {
		if k.a == id {
			removedPositions[k] = sp
			delete(t.shiftPositions, k)
		}
	}
	removedApplies := map[uuid.UUID]model.InviteApply{}
	for iaID, ia := range t.inviteApplies {
		if ia.ShiftID == id {
			removedApplies[iaID] = ia
			delete(t.inviteApplies, iaID)
			delete(t.inviteApplyKeys, triple{ia.ShiftID, ia.WerkerID, ia.PositionID})
		}
	}
	removedRatings := map[uuid.UUID]model.Rating{}
	for rID, rating := range t.ratings {
		if rating.ShiftID == id {
			removedRatings[rID] = rating
			delete(t.ratings, rID)
		}
	}

	r.s.record(func() {
		t.shifts[id] = row
		for k, sp := range removedPositions {
			t.shiftPositions[k] = sp
		}
		for iaID, ia := range removedApplies {
			t.inviteApplies[iaID] = ia
			t.inviteApplyKeys[triple{ia.ShiftID, ia.WerkerID, ia.PositionID}] = iaID
		}
		for rID, rating := range removedRatings {
			t.ratings[rID] = rating
		}
	})
	return 1, nil
}

func (r shiftRepo) AttachPosition(ctx context.Context, sp *model.ShiftPosition, refresh bool) error {
	err := r.s.lock("shifts.AttachPosition")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	t := r.s.t
	if _, ok := t.shifts[sp.ShiftID]; !ok {
		return repository.ErrMissingReference
	}
	if _, ok := t.positions[sp.PositionID]; !ok {
		return repository.ErrMissingReference
	}

	key := pair{sp.ShiftID, sp.PositionID}
	row := *sp
	row.Shift = nil
	row.Position = model.Position{}

	if old, ok := t.shiftPositions[key]; ok {
		if !refresh {
			return repository.ErrDuplicateAttachment
		}
		updated := old
		updated.PaymentAmount = row.PaymentAmount
		t.shiftPositions[key] = updated
		r.s.record(func() { t.shiftPositions[key] = old })
		sp.Filled = updated.Filled
		return nil
	}
	t.shiftPositions[key] = row
	r.s.record(func() { delete(t.shiftPositions, key) })
	return nil
}

func (r shiftRepo) GetPosition(ctx context.Context, shiftID, positionID uuid.UUID) (*model.ShiftPosition, error) {
	err := r.s.lock("shifts.GetPosition")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	sp, ok := r.s.t.shiftPositions[pair{shiftID, positionID}]
	if !ok {
		return nil, nil
	}
	sp.Position = r.s.t.positions[positionID]
	return &sp, nil
}

func (r shiftRepo) MarkPositionFilled(ctx context.Context, shiftID, positionID uuid.UUID) error {
	err := r.s.lock("shifts.MarkPositionFilled")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	t := r.s.t
	key := pair{shiftID, positionID}
	old, ok := t.shiftPositions[key]
	if !ok || old.Filled {
		return nil
	}
	updated := old
	updated.Filled = true
	t.shiftPositions[key] = updated
	r.s.record(func() { t.shiftPositions[key] = old })
	return nil
}

func (r shiftRepo) SearchPositions(ctx context.Context, positionID uuid.UUID, amount decimal.NullDecimal) ([]model.ShiftPosition, error) {
	err := r.s.lock("shifts.SearchPositions")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	t := r.s.t
	var rows []model.ShiftPosition
	for k, sp := range t.shiftPositions {
		if k.b != positionID {
			continue
		}
		if amount.Valid && (!sp.PaymentAmount.Valid || !sp.PaymentAmount.Decimal.Equal(amount.Decimal)) {
			continue
		}
		shift := t.shifts[sp.ShiftID]
		sp.Shift = &shift
		sp.Position = t.positions[sp.PositionID]
		rows = append(rows, sp)
	}
	sort.Slice(rows, func(i, j int) bool { return lessID(rows[i].ShiftID, rows[j].ShiftID) })
	return rows, nil
}
