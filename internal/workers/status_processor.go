// internal/workers/status_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/procure-be/internal/core/ports"
)

// StatusProcessor re-derives the status of open purchase orders so the
// date-driven ones move without a write
type StatusProcessor struct {
	orders ports.PurchaseOrderService
	logger *slog.Logger
}

// NewStatusProcessor creates a new status processor
func NewStatusProcessor(orders ports.PurchaseOrderService, logger *slog.Logger) *StatusProcessor {
	return &StatusProcessor{
		orders: orders,
		logger: logger.With(slog.String("processor", "status")),
	}
}

// RefreshStatuses handles TypeRefreshStatuses
func (p *StatusProcessor) RefreshStatuses(ctx context.Context, _ *asynq.Task) error {
	n, err := p.orders.RefreshStatuses(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh statuses: %w", err)
	}
	p.logger.InfoContext(ctx, "purchase order statuses refreshed", slog.Int("orders", n))
	return nil
}
