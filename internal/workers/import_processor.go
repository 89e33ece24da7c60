// internal/workers/import_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
	"github.com/ammerola/procure-be/internal/pkg/logger"
)

// ImportProcessor applies queued snapshot and sales imports
type ImportProcessor struct {
	imports ports.ImportService
	logger  *slog.Logger
}

// NewImportProcessor creates a new import processor
func NewImportProcessor(imports ports.ImportService, logger *slog.Logger) *ImportProcessor {
	return &ImportProcessor{
		imports: imports,
		logger:  logger.With(slog.String("processor", "import")),
	}
}

// ProcessSnapshots handles TypeImportSnapshots
func (p *ImportProcessor) ProcessSnapshots(ctx context.Context, t *asynq.Task) error {
	var payload SnapshotImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	ctx = logger.WithValue(ctx, logger.ContextKeyImportID, payload.ImportID.String())
	p.logger.InfoContext(ctx, "processing snapshot import",
		slog.String("import_id", payload.ImportID.String()),
		slog.Int("rows", len(payload.Rows)))

	return p.settle(ctx, payload.ImportID, p.imports.ProcessSnapshots(ctx, payload.ImportID, payload.Rows))
}

// ProcessSales handles TypeImportSales
func (p *ImportProcessor) ProcessSales(ctx context.Context, t *asynq.Task) error {
	var payload SalesImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	ctx = logger.WithValue(ctx, logger.ContextKeyImportID, payload.ImportID.String())
	p.logger.InfoContext(ctx, "processing sales import",
		slog.String("import_id", payload.ImportID.String()),
		slog.Int("rows", len(payload.Rows)))

	return p.settle(ctx, payload.ImportID, p.imports.ProcessSales(ctx, payload.ImportID, payload.Rows))
}

// settle stops retries for imports whose log is gone
func (p *ImportProcessor) settle(ctx context.Context, id uuid.UUID, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		p.logger.WarnContext(ctx, "import log missing, dropping task",
			slog.String("import_id", id.String()))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return err
}
