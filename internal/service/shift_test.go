package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"werkshift/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shiftInput(makerID uuid.UUID, positions ...PositionInput) CreateShiftInput {
	return CreateShiftInput{
		MakerID:         makerID,
		Name:            "Dinner service",
		TimeDate:        time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC),
		DurationMinutes: 300,
		Lat:             40.71,
		Long:            -74.0,
		Description:     "Busy night",
		PaymentType:     "flat",
		Positions:       positions,
	}
}

func TestCreateShift_AttachesPositions(t *testing.T) {
	for _, policy := range []BulkPolicy{BulkAtomic, BulkBestEffort} {
		t.Run(string(policy), func(t *testing.T) {
			// Arrange
			f := newFixture(t, policy)
			maker := f.maker(t)

			// Act
			res, err := f.shifts.CreateShift(context.Background(), shiftInput(maker.ID,
				PositionInput{Position: "Cook", PaymentAmount: amount("15.50")},
				PositionInput{Position: "Server"},
			))

			// Assert
			require.NoError(t, err)
			require.NotNil(t, res.Shift)
			assert.Equal(t, maker.Name, res.Shift.Maker.Name)
			require.Len(t, res.Shift.Positions, 2)
			require.Len(t, res.Outcomes, 2)
			for _, o := range res.Outcomes {
				assert.NoError(t, o.Err)
				assert.NotEqual(t, uuid.Nil, o.CatalogID)
			}

			byName := map[string]decimal.NullDecimal{}
			for _, sp := range res.Shift.Positions {
				assert.False(t, sp.Filled)
				byName[sp.Position.Name] = sp.PaymentAmount
			}
			assert.True(t, byName["Cook"].Valid)
			assert.True(t, byName["Cook"].Decimal.Equal(decimal.RequireFromString("15.5")))
			assert.False(t, byName["Server"].Valid)
		})
	}
}

func TestCreateShift_NoPositions(t *testing.T) {
	f := newFixture(t, BulkAtomic)
	maker := f.maker(t)

	res, err := f.shifts.CreateShift(context.Background(), shiftInput(maker.ID))

	require.NoError(t, err)
	require.NotNil(t, res.Shift)
	assert.Empty(t, res.Shift.Positions)
	assert.Empty(t, res.Outcomes)
}

func TestCreateShift_DuplicatePositionAtomic(t *testing.T) {
	// Arrange
	f := newFixture(t, BulkAtomic)
	maker := f.maker(t)

	// Act
	res, err := f.shifts.CreateShift(context.Background(), shiftInput(maker.ID,
		PositionInput{Position: "Cook", PaymentAmount: amount("15")},
		PositionInput{Position: "Cook", PaymentAmount: amount("20")},
	))

	// Assert
	assert.ErrorIs(t, err, repository.ErrDuplicateAttachment)
	assert.Nil(t, res.Shift)
	assert.Equal(t, 0, f.store.CountShifts())
	assert.Equal(t, 1, f.store.CountPositions())
	assert.ErrorIs(t, res.Outcomes[0].Err, ErrRolledBack)
	assert.ErrorIs(t, res.Outcomes[1].Err, repository.ErrDuplicateAttachment)
}

func TestCreateShift_DuplicatePositionBestEffort(t *testing.T) {
	// Arrange
	f := newFixture(t, BulkBestEffort)
	maker := f.maker(t)

	// Act
	res, err := f.shifts.CreateShift(context.Background(), shiftInput(maker.ID,
		PositionInput{Position: "Cook", PaymentAmount: amount("15")},
		PositionInput{Position: "Cook", PaymentAmount: amount("20")},
	))

	// Assert
	assert.ErrorIs(t, err, ErrPartialAttachment)
	assert.ErrorIs(t, err, repository.ErrDuplicateAttachment)
	require.NotNil(t, res.Shift)
	assert.Equal(t, 1, f.store.CountPositions())
	assert.Equal(t, 1, f.store.CountShiftPositions(res.Shift.ID))

	failed := 0
	for _, o := range res.Outcomes {
		if o.Err != nil {
			failed++
			assert.ErrorIs(t, o.Err, repository.ErrDuplicateAttachment)
		}
	}
	assert.Equal(t, 1, failed)
}

func TestCreateShift_PartialFailureOfThree(t *testing.T) {
	positions := []PositionInput{
		{Position: "Cook", PaymentAmount: amount("15")},
		{Position: "Server", PaymentAmount: amount("12")},
		{Position: "cook", PaymentAmount: amount("18")},
	}

	t.Run("atomic", func(t *testing.T) {
		f := newFixture(t, BulkAtomic)
		maker := f.maker(t)

		res, err := f.shifts.CreateShift(context.Background(), shiftInput(maker.ID, positions...))

		require.Error(t, err)
		assert.Nil(t, res.Shift)
		assert.Equal(t, 0, f.store.CountShifts())
		// catalog rows survive the rollback
		assert.Equal(t, 2, f.store.CountPositions())
		assert.ErrorIs(t, res.Outcomes[0].Err, ErrRolledBack)
		assert.ErrorIs(t, res.Outcomes[1].Err, ErrRolledBack)
		assert.ErrorIs(t, res.Outcomes[2].Err, repository.ErrDuplicateAttachment)
	})

	t.Run("best_effort", func(t *testing.T) {
		f := newFixture(t, BulkBestEffort)
		maker := f.maker(t)

		res, err := f.shifts.CreateShift(context.Background(), shiftInput(maker.ID, positions...))

		assert.ErrorIs(t, err, ErrPartialAttachment)
		require.NotNil(t, res.Shift)
		assert.Equal(t, 1, f.store.CountShifts())
		assert.Equal(t, 2, f.store.CountShiftPositions(res.Shift.ID))
		assert.NoError(t, res.Outcomes[1].Err)
		assert.True(t, (res.Outcomes[0].Err == nil) != (res.Outcomes[2].Err == nil))
	})
}

func TestCreateShift_StoreUnavailableDuringAttach(t *testing.T) {
	for _, policy := range []BulkPolicy{BulkAtomic, BulkBestEffort} {
		t.Run(string(policy), func(t *testing.T) {
			f := newFixture(t, policy)
			maker := f.maker(t)
			f.store.Fail("shifts.AttachPosition", fmt.Errorf("%w: timeout", repository.ErrStoreUnavailable))

			res, err := f.shifts.CreateShift(context.Background(), shiftInput(maker.ID,
				PositionInput{Position: "Dishwasher"},
			))

			assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
			if policy == BulkAtomic {
				assert.Nil(t, res.Shift)
				assert.Equal(t, 0, f.store.CountShifts())
			} else {
				require.NotNil(t, res.Shift)
				assert.Empty(t, res.Shift.Positions)
			}
		})
	}
}

func TestCreateShift_UnknownMaker(t *testing.T) {
	f := newFixture(t, BulkAtomic)

	_, err := f.shifts.CreateShift(context.Background(), shiftInput(uuid.New(), PositionInput{Position: "Cook"}))

	assert.ErrorIs(t, err, repository.ErrMakerNotFound)
	assert.Equal(t, 0, f.store.CountShifts())
}

func TestCreateShift_Validation(t *testing.T) {
	f := newFixture(t, BulkAtomic)
	maker := f.maker(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateShiftInput)
	}{
		{"missing name", func(in *CreateShiftInput) { in.Name = "" }},
		{"zero duration", func(in *CreateShiftInput) { in.DurationMinutes = 0 }},
		{"latitude out of range", func(in *CreateShiftInput) { in.Lat = 91 }},
		{"missing time", func(in *CreateShiftInput) { in.TimeDate = time.Time{} }},
		{"empty position name", func(in *CreateShiftInput) { in.Positions = []PositionInput{{Position: ""}} }},
		{"negative amount", func(in *CreateShiftInput) {
			in.Positions = []PositionInput{{Position: "Cook", PaymentAmount: amount("-1")}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := shiftInput(maker.ID)
			tt.mutate(&in)

			_, err := f.shifts.CreateShift(ctx, in)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, f.store.CountShifts())
}

func TestAddPositions_RejectAndRefresh(t *testing.T) {
	// Arrange
	f := newFixture(t, BulkAtomic)
	maker := f.maker(t)
	shift := f.shift(t, maker.ID, time.Now(), "Cook")
	ctx := context.Background()

	// Act: rejecting a pair that already exists
	_, err := f.shifts.AddPositions(ctx, shift.ID, []PositionInput{{Position: "Cook", PaymentAmount: amount("30")}}, AttachReject)

	// Assert
	assert.ErrorIs(t, err, repository.ErrDuplicateAttachment)

	// Act: refreshing the pay of the existing pair and adding a new one
	res, err := f.shifts.AddPositions(ctx, shift.ID, []PositionInput{
		{Position: "cook", PaymentAmount: amount("30")},
		{Position: "Host"},
	}, AttachRefresh)

	// Assert
	require.NoError(t, err)
	require.Len(t, res.Shift.Positions, 2)
	for _, sp := range res.Shift.Positions {
		if sp.Position.Slug == "cook" {
			assert.True(t, sp.PaymentAmount.Decimal.Equal(decimal.NewFromInt(30)))
		}
	}
}

func TestAddPositions_UnknownShift(t *testing.T) {
	f := newFixture(t, BulkAtomic)

	_, err := f.shifts.AddPositions(context.Background(), uuid.New(), []PositionInput{{Position: "Cook"}}, AttachReject)

	assert.ErrorIs(t, err, repository.ErrShiftNotFound)
	assert.Equal(t, 0, f.store.CountPositions())
}

func TestUpdateShift(t *testing.T) {
	f := newFixture(t, BulkAtomic)
	maker := f.maker(t)
	shift := f.shift(t, maker.ID, time.Now(), "Cook")
	ctx := context.Background()

	updated, err := f.shifts.UpdateShift(ctx, shift.ID, UpdateShiftInput{
		Name:            "Late brunch",
		TimeDate:        shift.ScheduledAt.Add(time.Hour),
		DurationMinutes: 120,
		PaymentType:     "hourly",
	})

	require.NoError(t, err)
	assert.Equal(t, "Late brunch", updated.Name)
	assert.Equal(t, maker.ID, updated.MakerID)
	assert.Len(t, updated.Positions, 1)

	_, err = f.shifts.UpdateShift(ctx, uuid.New(), UpdateShiftInput{Name: "x", TimeDate: time.Now(), DurationMinutes: 1})
	assert.ErrorIs(t, err, repository.ErrShiftNotFound)
}

func TestRequireOwner(t *testing.T) {
	f := newFixture(t, BulkAtomic)
	maker := f.maker(t)
	shift := f.shift(t, maker.ID, time.Now())
	ctx := context.Background()

	assert.NoError(t, f.shifts.RequireOwner(ctx, shift.ID, maker.ID))
	assert.ErrorIs(t, f.shifts.RequireOwner(ctx, shift.ID, uuid.New()), ErrNotShiftOwner)
	assert.ErrorIs(t, f.shifts.RequireOwner(ctx, uuid.New(), maker.ID), repository.ErrShiftNotFound)
}

func TestDeleteShift(t *testing.T) {
	// Arrange
	f := newFixture(t, BulkAtomic)
	maker := f.maker(t)
	shift := f.shift(t, maker.ID, time.Now(), "Cook", "Server")
	ctx := context.Background()

	// Act
	missing, err := f.shifts.DeleteShift(ctx, uuid.New())
	require.NoError(t, err)
	removed, err := f.shifts.DeleteShift(ctx, shift.ID)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int64(0), missing)
	assert.Equal(t, int64(1), removed)
	got, err := f.queries.GetShift(ctx, shift.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, f.store.CountShiftPositions(shift.ID))
	// catalog rows are never removed with their owners
	assert.Equal(t, 2, f.store.CountPositions())
}

func TestDeleteShift_StoreUnavailable(t *testing.T) {
	f := newFixture(t, BulkAtomic)
	f.store.Fail("shifts.Delete", errors.Join(repository.ErrStoreUnavailable, errors.New("broken pipe")))

	n, err := f.shifts.DeleteShift(context.Background(), uuid.New())

	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
	assert.Equal(t, int64(0), n)
}
