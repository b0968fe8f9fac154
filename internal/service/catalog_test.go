package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"werkshift/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePosition_ConcurrentCallersShareOneRow(t *testing.T) {
	// Arrange
	f := newFixture(t, BulkAtomic)
	ctx := context.Background()
	const callers = 16

	// Act
	ids := make([]uuid.UUID, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := f.catalog.ResolvePosition(ctx, "Line Cook", "")
			assert.NoError(t, err)
			if p != nil {
				ids[i] = p.ID
			}
		}()
	}
	wg.Wait()

	// Assert
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Equal(t, 1, f.store.CountPositions())
}

func TestResolvePosition_NormalizesName(t *testing.T) {
	f := newFixture(t, BulkAtomic)
	ctx := context.Background()

	first, err := f.catalog.ResolvePosition(ctx, "Line Cook", "")
	require.NoError(t, err)
	second, err := f.catalog.ResolvePosition(ctx, "  LINE   cook ", "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Line Cook", second.Name)
	assert.Equal(t, "line cook", second.Slug)
}

func TestResolvePosition_UpdatesDescriptionOnly(t *testing.T) {
	f := newFixture(t, BulkAtomic)
	ctx := context.Background()

	created, err := f.catalog.ResolvePosition(ctx, "Barback", "keeps the bar stocked")
	require.NoError(t, err)

	kept, err := f.catalog.ResolvePosition(ctx, "barback", "")
	require.NoError(t, err)
	assert.Equal(t, "keeps the bar stocked", kept.Description)

	updated, err := f.catalog.ResolvePosition(ctx, "barback", "stocks and cleans")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "stocks and cleans", updated.Description)
}

func TestResolvePosition_EmptyName(t *testing.T) {
	f := newFixture(t, BulkAtomic)

	_, err := f.catalog.ResolvePosition(context.Background(), "   ", "")

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, f.store.CountPositions())
}

func TestResolveCertification_StoreUnavailable(t *testing.T) {
	f := newFixture(t, BulkAtomic)
	down := errors.New("connection refused")
	f.store.Fail("catalog.UpsertCertification", fmt.Errorf("%w: %w", repository.ErrStoreUnavailable, down))

	_, err := f.catalog.ResolveCertification(context.Background(), "ServSafe", "")

	assert.ErrorIs(t, err, repository.ErrStoreUnavailable)
	assert.ErrorIs(t, err, down)
}

func TestResolveCertification_Idempotent(t *testing.T) {
	f := newFixture(t, BulkAtomic)
	ctx := context.Background()

	a, err := f.catalog.ResolveCertification(ctx, "Food Handler", "")
	require.NoError(t, err)
	b, err := f.catalog.ResolveCertification(ctx, "food handler", "")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	found, err := f.queries.LookupCertification(ctx, "FOOD HANDLER")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, a.ID, found.ID)
}
