// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/procure-be/internal/core/ports"
)

// CleanupProcessor applies the retention windows of snapshots and import logs
type CleanupProcessor struct {
	stock             ports.StockService
	imports           ports.ImportService
	snapshotRetention time.Duration
	logRetention      time.Duration
	clock             func() time.Time
	logger            *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor. A zero retention
// disables that half of the cleanup.
func NewCleanupProcessor(
	stock ports.StockService,
	imports ports.ImportService,
	snapshotRetention, logRetention time.Duration,
	clock func() time.Time,
	logger *slog.Logger,
) *CleanupProcessor {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &CleanupProcessor{
		stock:             stock,
		imports:           imports,
		snapshotRetention: snapshotRetention,
		logRetention:      logRetention,
		clock:             clock,
		logger:            logger.With(slog.String("processor", "cleanup")),
	}
}

// Cleanup handles TypeCleanup
func (p *CleanupProcessor) Cleanup(ctx context.Context, _ *asynq.Task) error {
	now := p.clock()
	var errs []error

	if p.snapshotRetention > 0 {
		n, err := p.stock.PruneSnapshots(ctx, now.Add(-p.snapshotRetention))
		if err != nil {
			errs = append(errs, fmt.Errorf("snapshots: %w", err))
		} else {
			p.logger.InfoContext(ctx, "old snapshots pruned", slog.Int64("rows_deleted", n))
		}
	}

	if p.logRetention > 0 {
		n, err := p.imports.PruneLogs(ctx, now.Add(-p.logRetention))
		if err != nil {
			errs = append(errs, fmt.Errorf("import logs: %w", err))
		} else {
			p.logger.InfoContext(ctx, "old import logs pruned", slog.Int64("rows_deleted", n))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	return nil
}
