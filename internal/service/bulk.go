package service

import (
	"context"
	"fmt"
	"time"

	"werkshift/internal/metrics"
	"werkshift/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BulkPolicy controls how create-and-attach operations behave when one of
// their items fails.
type BulkPolicy string

const (
	// BulkAtomic creates the owner and every junction row in one
	// transaction. Any failure leaves no trace except catalog rows.
	BulkAtomic BulkPolicy = "atomic"
	// BulkBestEffort keeps the owner and every item that succeeded.
	BulkBestEffort BulkPolicy = "best_effort"
)

func ParseBulkPolicy(s string) (BulkPolicy, error) {
	switch BulkPolicy(s) {
	case "", BulkAtomic:
		return BulkAtomic, nil
	case BulkBestEffort:
		return BulkBestEffort, nil
	}
	return "", fmt.Errorf("%w: unknown bulk policy %q", ErrInvalidInput, s)
}

// bulkConcurrency bounds the number of in-flight resolve/attach chains per call.
const bulkConcurrency = 8

// AttachOutcome is the settled result of one item of a bulk operation.
type AttachOutcome struct {
	Kind      string
	Index     int
	Name      string
	CatalogID uuid.UUID
	Err       error
}

// bulkItem is one resolve-then-attach chain.
type bulkItem struct {
	kind    string
	index   int
	name    string
	resolve func(ctx context.Context) (uuid.UUID, error)
	attach  func(ctx context.Context, st repository.Store, catalogID uuid.UUID) error
}

type bulkRunner struct {
	store  repository.Store
	policy BulkPolicy
	logger *zap.Logger
}

// run creates the owner (when create is non-nil) and attaches every item
// under the configured policy. It only returns once every item has settled.
func (r bulkRunner) run(ctx context.Context, operation string, create func(ctx context.Context, st repository.Store) error, items []bulkItem) (outcomes []AttachOutcome, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveBulk(operation, string(r.policy), start, err)
		r.logger.Info("bulk operation settled",
			zap.String("operation", operation),
			zap.String("policy", string(r.policy)),
			zap.Int("items", len(items)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
	}()

	outcomes = make([]AttachOutcome, len(items))
	for i, it := range items {
		outcomes[i] = AttachOutcome{Kind: it.kind, Index: it.index, Name: it.name}
	}

	if r.policy == BulkBestEffort {
		return r.bestEffort(ctx, create, items, outcomes)
	}
	return r.atomic(ctx, create, items, outcomes)
}

func (r bulkRunner) atomic(ctx context.Context, create func(context.Context, repository.Store) error, items []bulkItem, outcomes []AttachOutcome) ([]AttachOutcome, error) {
	// Catalog rows are resolved up front and outside the transaction. They
	// are idempotent, so keeping them after a rollback is harmless.
	var g errgroup.Group
	g.SetLimit(bulkConcurrency)
	for i := range items {
		g.Go(func() error {
			id, err := items[i].resolve(ctx)
			outcomes[i].CatalogID = id
			outcomes[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	if err := outcomesErr(outcomes); err != nil {
		markRolledBack(outcomes)
		return outcomes, err
	}

	err := r.store.Transaction(ctx, func(tx repository.Store) error {
		if create != nil {
			if err := create(ctx, tx); err != nil {
				return err
			}
		}
		for i := range items {
			if err := items[i].attach(ctx, tx, outcomes[i].CatalogID); err != nil {
				outcomes[i].Err = err
				return fmt.Errorf("%s %d (%s): %w", items[i].kind, items[i].index, items[i].name, err)
			}
		}
		return nil
	})
	if err != nil {
		markRolledBack(outcomes)
		return outcomes, err
	}
	return outcomes, nil
}

func (r bulkRunner) bestEffort(ctx context.Context, create func(context.Context, repository.Store) error, items []bulkItem, outcomes []AttachOutcome) ([]AttachOutcome, error) {
	if create != nil {
		if err := create(ctx, r.store); err != nil {
			markRolledBack(outcomes)
			return outcomes, err
		}
	}

	var g errgroup.Group
	g.SetLimit(bulkConcurrency)
	for i := range items {
		g.Go(func() error {
			id, err := items[i].resolve(ctx)
			if err == nil {
				outcomes[i].CatalogID = id
				err = items[i].attach(ctx, r.store, id)
			}
			outcomes[i].Err = err
			return nil
		})
	}
	_ = g.Wait()

	if err := outcomesErr(outcomes); err != nil {
		return outcomes, fmt.Errorf("%w: %w", ErrPartialAttachment, err)
	}
	return outcomes, nil
}

// outcomesErr combines every item failure, nil when all succeeded.
func outcomesErr(outcomes []AttachOutcome) error {
	var err error
	for _, o := range outcomes {
		if o.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s %d (%s): %w", o.Kind, o.Index, o.Name, o.Err))
		}
	}
	return err
}

func markRolledBack(outcomes []AttachOutcome) {
	for i := range outcomes {
		if outcomes[i].Err == nil {
			outcomes[i].Err = ErrRolledBack
		}
	}
}
