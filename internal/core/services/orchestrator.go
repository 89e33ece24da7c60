// internal/core/services/orchestrator.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// Mutation changes a loaded aggregate. It runs inside the commit transaction
// and may use store for reference checks; it must not write through store.
type Mutation func(ctx context.Context, store ports.OrderStore, po *domain.PurchaseOrder) error

// NoChange is a Mutation that only triggers recomputation
func NoChange(context.Context, ports.OrderStore, *domain.PurchaseOrder) error { return nil }

// OrderMutationOrchestrator is the single write path for purchase orders. Each
// commit runs mutate, reprorate and re-derive status once, in one transaction.
type OrderMutationOrchestrator struct {
	uow        ports.UnitOfWork
	clock      Clock
	maxRetries int
	logger     *slog.Logger
}

// NewOrderMutationOrchestrator creates a new orchestrator. maxRetries bounds how
// many times a commit that lost an optimistic-lock race is re-run.
func NewOrderMutationOrchestrator(uow ports.UnitOfWork, clock Clock, maxRetries int, logger *slog.Logger) *OrderMutationOrchestrator {
	if clock == nil {
		clock = SystemClock
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &OrderMutationOrchestrator{
		uow:        uow,
		clock:      clock,
		maxRetries: maxRetries,
		logger:     logger.With(slog.String("service", "order_orchestrator")),
	}
}

// CommitMutation applies fn to the purchase order headerID and persists the
// recomputed aggregate atomically.
func (o *OrderMutationOrchestrator) CommitMutation(ctx context.Context, headerID uuid.UUID, fn Mutation) (*domain.PurchaseOrder, error) {
	load := func(ctx context.Context, store ports.OrderStore) (*domain.PurchaseOrder, error) {
		po, err := store.LoadForUpdate(ctx, headerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load purchase order: %w", err)
		}
		return po, nil
	}
	return o.commit(ctx, headerID, load, fn)
}

// CommitNew inserts header and applies fn to the new aggregate in the same transaction.
func (o *OrderMutationOrchestrator) CommitNew(ctx context.Context, header domain.PurchaseOrderHeader, fn Mutation) (*domain.PurchaseOrder, error) {
	load := func(ctx context.Context, store ports.OrderStore) (*domain.PurchaseOrder, error) {
		h := header
		if err := store.InsertHeader(ctx, &h); err != nil {
			return nil, fmt.Errorf("failed to insert purchase order: %w", err)
		}
		return domain.NewPurchaseOrder(h), nil
	}
	return o.commit(ctx, header.ID, load, fn)
}

func (o *OrderMutationOrchestrator) commit(
	ctx context.Context,
	headerID uuid.UUID,
	load func(context.Context, ports.OrderStore) (*domain.PurchaseOrder, error),
	fn Mutation,
) (*domain.PurchaseOrder, error) {
	for attempt := 0; ; attempt++ {
		po, err := o.commitOnce(ctx, load, fn)
		if err == nil {
			return po, nil
		}
		if !domain.IsConcurrentModification(err) || attempt >= o.maxRetries {
			return nil, err
		}
		o.logger.WarnContext(ctx, "purchase order changed concurrently, retrying",
			slog.String("header_id", headerID.String()),
			slog.Int("attempt", attempt+1))
	}
}

func (o *OrderMutationOrchestrator) commitOnce(
	ctx context.Context,
	load func(context.Context, ports.OrderStore) (*domain.PurchaseOrder, error),
	fn Mutation,
) (*domain.PurchaseOrder, error) {
	var committed *domain.PurchaseOrder

	err := o.uow.WithinTx(ctx, func(ctx context.Context, store ports.OrderStore) error {
		po, err := load(ctx, store)
		if err != nil {
			return err
		}

		if err := fn(ctx, store, po); err != nil {
			return err
		}

		now := o.clock()
		po.Recompute(domain.DateOf(now))

		if err := po.CheckConsistency(); err != nil {
			return err
		}

		if err := store.Save(ctx, po, now); err != nil {
			return fmt.Errorf("failed to save purchase order: %w", err)
		}

		committed = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	ordered, received := committed.Totals()
	o.logger.DebugContext(ctx, "purchase order committed",
		slog.String("header_id", committed.Header.ID.String()),
		slog.String("status", string(committed.Header.Status)),
		slog.Int64("version", committed.Header.Version),
		slog.Int64("total_ordered", ordered),
		slog.Int64("total_received", received))

	return committed, nil
}
