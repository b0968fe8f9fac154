package memory

import (
	"context"
	"sort"
	"time"

	"werkshift/internal/model"
	"werkshift/internal/repository"

	"github.com/google/uuid"
)

type werkerRepo struct{ s *Store }

func (r werkerRepo) Create(ctx context.Context, werker *model.Werker) error {
	err := r.s.lock("werkers.Create")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	t := r.s.t
	werker.ID = newID(werker.ID)
	if _, ok := t.werkers[werker.ID]; ok {
		return repository.ErrAlreadyExists
	}
	now := time.Now()
	werker.CreatedAt, werker.UpdatedAt = now, now

	row := *werker
	row.Certifications = nil
	row.Positions = nil
	t.werkers[row.ID] = row
	r.s.record(func() { delete(t.werkers, row.ID) })
	return nil
}

func (r werkerRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	err := r.s.lock("werkers.Exists")
	defer r.s.unlock()
	if err != nil {
		return false, err
	}
	_, ok := r.s.t.werkers[id]
	return ok, nil
}

// expand attaches certifications and skills. Lock must be held.
func (r werkerRepo) expand(row model.Werker) model.Werker {
	t := r.s.t
	row.Certifications = nil
	for k, wc := range t.werkerCertifications {
		if k.a == row.ID {
			wc.Certification = t.certifications[wc.CertificationID]
			row.Certifications = append(row.Certifications, wc)
		}
	}
	sort.Slice(row.Certifications, func(i, j int) bool {
		return row.Certifications[i].Certification.Slug < row.Certifications[j].Certification.Slug
	})

	row.Positions = nil
	for k, wp := range t.werkerPositions {
		if k.a == row.ID {
			wp.Position = t.positions[wp.PositionID]
			row.Positions = append(row.Positions, wp)
		}
	}
	sort.Slice(row.Positions, func(i, j int) bool {
		return row.Positions[i].Position.Slug < row.Positions[j].Position.Slug
	})
	return row
}

func (r werkerRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Werker, error) {
	err := r.s.lock("werkers.GetByID")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	row, ok := r.s.t.werkers[id]
	if !ok {
		return nil, nil
	}
	w := r.expand(row)
	return &w, nil
}

func (r werkerRepo) Update(ctx context.Context, werker *model.Werker) error {
	err := r.s.lock("werkers.Update")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	t := r.s.t
	old, ok := t.werkers[werker.ID]
	if !ok {
		return repository.ErrWerkerNotFound
	}
	row := old
	row.NameFirst = werker.NameFirst
	row.NameLast = werker.NameLast
	row.Email = werker.Email
	row.URLPhoto = werker.URLPhoto
	row.Bio = werker.Bio
	row.Phone = werker.Phone
	row.LastMinute = werker.LastMinute
	row.Lat = werker.Lat
	row.Long = werker.Long
	row.UpdatedAt = time.Now()
	t.werkers[row.ID] = row
	r.s.record(func() { t.werkers[old.ID] = old })
	return nil
}

func (r werkerRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	err := r.s.lock("werkers.Delete")
	defer r.s.unlock()
	if err != nil {
		return 0, err
	}
	t := r.s.t
	row, ok := t.werkers[id]
	if !ok {
		return 0, nil
	}
	delete(t.werkers, id)

	removedCerts := map[pair]model.WerkerCertification{}
	for k, wc := range t.werkerCertifications {
		if k.a == id {
			removedCerts[k] = wc
			delete(t.werkerCertifications, k)
		}
	}
	removedSkills := map[pair]model.WerkerPosition{}
	for k, wp := range t.werkerPositions {
		if k.a == id {
			removedSkills[k] = wp
			delete(t.werkerPositions, k)
		}
	}
	removedApplies := map[uuid.UUID]model.InviteApply{}
	for iaID, ia := range t.inviteApplies {
		if ia.WerkerID == id {
			removedApplies[iaID] = ia
			delete(t.inviteApplies, iaID)
			delete(t.inviteApplyKeys, triple{ia.ShiftID, ia.WerkerID, ia.PositionID})
		}
	}
	removedRatings := map[uuid.UUID]model.Rating{}
	for rID, rating := range t.ratings {
		if rating.WerkerID == id {
			removedRatings[rID] = rating
			delete(t.ratings, rID)
		}
	}

	r.s.record(func() {
		t.werkers[id] = row
		for k, wc := range removedCerts {
			t.werkerCertifications[k] = wc
		}
		for k, wp := range removedSkills {
			t.werkerPositions[k] = wp
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

func (r werkerRepo) AttachCertification(ctx context.Context, wc *model.WerkerCertification, refresh bool) error {
	err := r.s.lock("werkers.AttachCertification")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	t := r.s.t
	if _, ok := t.werkers[wc.WerkerID]; !ok {
		return repository.ErrMissingReference
	}
	if _, ok := t.certifications[wc.CertificationID]; !ok {
		return repository.ErrMissingReference
	}

	key := pair{wc.WerkerID, wc.CertificationID}
	row := *wc
	row.Certification = model.Certification{}

	if old, ok := t.werkerCertifications[key]; ok {
		if !refresh {
			return repository.ErrDuplicateAttachment
		}
		t.werkerCertifications[key] = row
		r.s.record(func() { t.werkerCertifications[key] = old })
		return nil
	}
	t.werkerCertifications[key] = row
	r.s.record(func() { delete(t.werkerCertifications, key) })
	return nil
}

func (r werkerRepo) AttachPosition(ctx context.Context, wp *model.WerkerPosition, refresh bool) error {
	err := r.s.lock("werkers.AttachPosition")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	t := r.s.t
	if _, ok := t.werkers[wp.WerkerID]; !ok {
		return repository.ErrMissingReference
	}
	if _, ok := t.positions[wp.PositionID]; !ok {
		return repository.ErrMissingReference
	}

	key := pair{wp.WerkerID, wp.PositionID}
	if _, ok := t.werkerPositions[key]; ok {
		if !refresh {
			return repository.ErrDuplicateAttachment
		}
		return nil
	}
	t.werkerPositions[key] = model.WerkerPosition{WerkerID: wp.WerkerID, PositionID: wp.PositionID}
	r.s.record(func() { delete(t.werkerPositions, key) })
	return nil
}

func (r werkerRepo) FindByPosition(ctx context.Context, positionID uuid.UUID) ([]model.Werker, error) {
	err := r.s.lock("werkers.FindByPosition")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	var werkers []model.Werker
	for k := range r.s.t.werkerPositions {
		if k.b != positionID {
			continue
		}
		if row, ok := r.s.t.werkers[k.a]; ok {
			werkers = append(werkers, r.expand(row))
		}
	}
	sort.Slice(werkers, func(i, j int) bool {
		if werkers[i].NameLast != werkers[j].NameLast {
			return werkers[i].NameLast < werkers[j].NameLast
		}
		return lessID(werkers[i].ID, werkers[j].ID)
	})
	return werkers, nil
}

type inviteApplyRepo struct{ s *Store }

func sortInviteApplies(rows []model.InviteApply) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return lessID(rows[i].ID, rows[j].ID)
	})
}

func (r inviteApplyRepo) CreateIfAbsent(ctx context.Context, ia *model.InviteApply) (bool, error) {
	err := r.s.lock("inviteApplies.CreateIfAbsent")
	defer r.s.unlock()
	if err != nil {
		return false, err
	}
	t := r.s.t
	key := triple{ia.ShiftID, ia.WerkerID, ia.PositionID}
	if _, ok := t.inviteApplyKeys[key]; ok {
		return false, nil
	}
	if _, ok := t.shifts[ia.ShiftID]; !ok {
		return false, repository.ErrMissingReference
	}
	if _, ok := t.werkers[ia.WerkerID]; !ok {
		return false, repository.ErrMissingReference
	}
	if _, ok := t.positions[ia.PositionID]; !ok {
		return false, repository.ErrMissingReference
	}

	ia.ID = newID(ia.ID)
	now := time.Now()
	ia.CreatedAt, ia.UpdatedAt = now, now
	row := *ia
	row.Werker = nil
	row.Position = nil
	t.inviteApplies[row.ID] = row
	t.inviteApplyKeys[key] = row.ID
	r.s.record(func() {
		delete(t.inviteApplies, row.ID)
		delete(t.inviteApplyKeys, key)
	})
	return true, nil
}

func (r inviteApplyRepo) FindOne(ctx context.Context, shiftID, werkerID, positionID uuid.UUID) (*model.InviteApply, error) {
	err := r.s.lock("inviteApplies.FindOne")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	id, ok := r.s.t.inviteApplyKeys[triple{shiftID, werkerID, positionID}]
	if !ok {
		return nil, nil
	}
	ia := r.s.t.inviteApplies[id]
	return &ia, nil
}

func (r inviteApplyRepo) Find(ctx context.Context, filter repository.InviteApplyFilter) ([]model.InviteApply, error) {
	err := r.s.lock("inviteApplies.Find")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	t := r.s.t
	var rows []model.InviteApply
	for _, ia := range t.inviteApplies {
		if filter.ShiftID != nil && ia.ShiftID != *filter.ShiftID {
			continue
		}
		if filter.WerkerID != nil && ia.WerkerID != *filter.WerkerID {
			continue
		}
		if filter.PositionID != nil && ia.PositionID != *filter.PositionID {
			continue
		}
		if filter.Status != nil && ia.Status != *filter.Status {
			continue
		}
		if w, ok := t.werkers[ia.WerkerID]; ok {
			ia.Werker = &w
		}
		if p, ok := t.positions[ia.PositionID]; ok {
			ia.Position = &p
		}
		rows = append(rows, ia)
	}
	sortInviteApplies(rows)
	return rows, nil
}

func (r inviteApplyRepo) TransitionStatus(ctx context.Context, ids []uuid.UUID, from, to model.AssignmentStatus) ([]model.InviteApply, error) {
	err := r.s.lock("inviteApplies.TransitionStatus")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	t := r.s.t
	var updated []model.InviteApply
	for _, id := range ids {
		old, ok := t.inviteApplies[id]
		if !ok || old.Status != from {
			continue
		}
		row := old
		row.Status = to
		row.UpdatedAt = time.Now()
		t.inviteApplies[id] = row
		r.s.record(func() { t.inviteApplies[id] = old })
		updated = append(updated, row)
	}
	return updated, nil
}

type ratingRepo struct{ s *Store }

func (r ratingRepo) Create(ctx context.Context, rating *model.Rating) error {
	err := r.s.lock("ratings.Create")
	defer r.s.unlock()
	if err != nil {
		return err
	}
	t := r.s.t
	if _, ok := t.werkers[rating.WerkerID]; !ok {
		return repository.ErrMissingReference
	}
	if _, ok := t.shifts[rating.ShiftID]; !ok {
		return repository.ErrMissingReference
	}
	for _, existing := range t.ratings {
		if existing.WerkerID == rating.WerkerID && existing.ShiftID == rating.ShiftID {
			return repository.ErrDuplicateRating
		}
	}
	rating.ID = newID(rating.ID)
	rating.CreatedAt = time.Now()
	t.ratings[rating.ID] = *rating
	id := rating.ID
	r.s.record(func() { delete(t.ratings, id) })
	return nil
}

func (r ratingRepo) AverageForWerker(ctx context.Context, werkerID uuid.UUID) (*float64, error) {
	err := r.s.lock("ratings.AverageForWerker")
	defer r.s.unlock()
	if err != nil {
		return nil, err
	}
	sum, n := 0, 0
	for _, rating := range r.s.t.ratings {
		if rating.WerkerID == werkerID {
			sum += rating.Score
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(n)
	return &avg, nil
}
