package service

import (
	"context"
	"testing"
	"time"

	"werkshift/internal/model"
	"werkshift/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	store       *memory.Store
	catalog     *CatalogService
	makers      *MakerService
	shifts      *ShiftService
	werkers     *WerkerService
	assignments *AssignmentService
	queries     *QueryService
}

func newFixture(t *testing.T, policy BulkPolicy) *fixture {
	t.Helper()
	logger := zap.NewNop()
	store := memory.New()
	catalog := NewCatalogService(store, logger)
	attacher := NewAttachmentService(store, logger)
	return &fixture{
		store:       store,
		catalog:     catalog,
		makers:      NewMakerService(store, logger),
		shifts:      NewShiftService(store, catalog, attacher, policy, logger),
		werkers:     NewWerkerService(store, catalog, attacher, policy, logger),
		assignments: NewAssignmentService(store, logger),
		queries:     NewQueryService(store, logger),
	}
}

func (f *fixture) maker(t *testing.T) *model.Maker {
	t.Helper()
	m, err := f.makers.CreateMaker(context.Background(), CreateMakerInput{Name: "Cafe Nola", Email: "owner@nola.test"})
	require.NoError(t, err)
	return m
}

func (f *fixture) werker(t *testing.T, first string) *model.Werker {
	t.Helper()
	res, err := f.werkers.AddWerker(context.Background(), AddWerkerInput{
		NameFirst: first,
		NameLast:  "mcExample",
		Email:     first + "@werk.test",
	})
	require.NoError(t, err)
	return res.Werker
}

func (f *fixture) shift(t *testing.T, makerID uuid.UUID, at time.Time, positions ...string) *model.Shift {
	t.Helper()
	in := CreateShiftInput{
		MakerID:         makerID,
		Name:            "Brunch rush",
		TimeDate:        at,
		DurationMinutes: 240,
		Lat:             29.95,
		Long:            -90.07,
		PaymentType:     "hourly",
	}
	for _, p := range positions {
		in.Positions = append(in.Positions, PositionInput{Position: p, PaymentAmount: amount("15")})
	}
	res, err := f.shifts.CreateShift(context.Background(), in)
	require.NoError(t, err)
	return res.Shift
}

func (f *fixture) positionID(t *testing.T, name string) uuid.UUID {
	t.Helper()
	p, err := f.queries.LookupPosition(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.ID
}

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}
