// internal/core/services/import.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// ImportService records import jobs and runs them through the stock feeds
type ImportService struct {
	logs    ports.ImportLogRepository
	stock   ports.StockService
	queue   ports.ImportQueue
	maxRows int
	clock   Clock
	logger  *slog.Logger
}

// Statically assert that *ImportService implements the ImportService interface.
var _ ports.ImportService = (*ImportService)(nil)

// NewImportService creates a new import service. queue may be nil in processes
// that only run imports, never submit them.
func NewImportService(
	logs ports.ImportLogRepository,
	stock ports.StockService,
	queue ports.ImportQueue,
	maxRows int,
	clock Clock,
	logger *slog.Logger,
) *ImportService {
	if clock == nil {
		clock = SystemClock
	}
	return &ImportService{
		logs:    logs,
		stock:   stock,
		queue:   queue,
		maxRows: maxRows,
		clock:   clock,
		logger:  logger.With(slog.String("service", "import")),
	}
}

// SubmitSnapshots records a pending import log and queues the rows
func (s *ImportService) SubmitSnapshots(ctx context.Context, source string, rows []domain.StockSnapshot) (*domain.ImportLog, error) {
	return s.submit(ctx, domain.ImportKindSnapshots, source, len(rows), func(id uuid.UUID) error {
		return s.queue.EnqueueSnapshots(ctx, id, rows)
	})
}

// SubmitSales records a pending import log and queues the rows
func (s *ImportService) SubmitSales(ctx context.Context, source string, rows []domain.Sale) (*domain.ImportLog, error) {
	return s.submit(ctx, domain.ImportKindSales, source, len(rows), func(id uuid.UUID) error {
		return s.queue.EnqueueSales(ctx, id, rows)
	})
}

func (s *ImportService) submit(ctx context.Context, kind domain.ImportKind, source string, n int, enqueue func(uuid.UUID) error) (*domain.ImportLog, error) {
	if n == 0 {
		return nil, domain.Invalid("rows", "at least one row is required")
	}
	if s.maxRows > 0 && n > s.maxRows {
		return nil, domain.Invalid("rows", "%d rows exceeds the limit of %d", n, s.maxRows)
	}
	if s.queue == nil {
		return nil, fmt.Errorf("import queue is not configured")
	}

	log := &domain.ImportLog{
		ID:        uuid.New(),
		Kind:      kind,
		Source:    source,
		Status:    domain.ImportPending,
		TotalRows: n,
		CreatedAt: s.clock(),
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to create import log: %w", err)
	}

	if err := enqueue(log.ID); err != nil {
		log.RecordFailure(fmt.Sprintf("enqueue failed: %v", err))
		log.Finish(s.clock())
		if uerr := s.logs.Update(ctx, log); uerr != nil {
			s.logger.ErrorContext(ctx, "failed to mark import log failed",
				slog.String("import_id", log.ID.String()),
				slog.String("error", uerr.Error()))
		}
		return nil, fmt.Errorf("failed to enqueue import: %w", err)
	}

	s.logger.InfoContext(ctx, "import queued",
		slog.String("import_id", log.ID.String()),
		slog.String("kind", string(kind)),
		slog.Int("rows", n))
	return log, nil
}

// ProcessSnapshots applies queued snapshot rows and settles the import log
func (s *ImportService) ProcessSnapshots(ctx context.Context, logID uuid.UUID, rows []domain.StockSnapshot) error {
	return s.process(ctx, logID, func() (*ports.IngestResult, error) {
		return s.stock.IngestSnapshots(ctx, rows)
	})
}

// ProcessSales applies queued sale rows and settles the import log
func (s *ImportService) ProcessSales(ctx context.Context, logID uuid.UUID, rows []domain.Sale) error {
	return s.process(ctx, logID, func() (*ports.IngestResult, error) {
		return s.stock.UpsertSales(ctx, rows)
	})
}

// process is safe to re-run: the feeds upsert, and the counts are reset on
// every attempt. A log that already succeeded is left alone.
func (s *ImportService) process(ctx context.Context, logID uuid.UUID, ingest func() (*ports.IngestResult, error)) error {
	log, err := s.logs.FindByID(ctx, logID)
	if err != nil {
		return fmt.Errorf("failed to load import log: %w", err)
	}
	if log.Status == domain.ImportSuccess {
		s.logger.InfoContext(ctx, "import already applied, skipping",
			slog.String("import_id", logID.String()))
		return nil
	}

	started := s.clock()
	log.Status = domain.ImportProcessing
	log.StartedAt = &started
	log.FinishedAt = nil
	log.SuccessCount, log.FailedCount, log.Errors = 0, 0, nil
	if err := s.logs.Update(ctx, log); err != nil {
		return fmt.Errorf("failed to start import: %w", err)
	}

	result, ingestErr := ingest()
	if result != nil {
		log.SuccessCount = result.Succeeded
		for _, msg := range result.Errors {
			log.RecordFailure(msg)
		}
	}
	if ingestErr != nil {
		log.RecordFailure(ingestErr.Error())
		finished := s.clock()
		log.Status = domain.ImportFailed
		log.FinishedAt = &finished
	} else {
		log.Finish(s.clock())
	}

	if err := s.logs.Update(ctx, log); err != nil {
		return fmt.Errorf("failed to finish import: %w", err)
	}

	s.logger.InfoContext(ctx, "import processed",
		slog.String("import_id", logID.String()),
		slog.String("kind", string(log.Kind)),
		slog.String("status", string(log.Status)),
		slog.Int("succeeded", log.SuccessCount),
		slog.Int("failed", log.FailedCount))

	if ingestErr != nil {
		return fmt.Errorf("import %s failed: %w", logID, ingestErr)
	}
	return nil
}

// Status returns the import log
func (s *ImportService) Status(ctx context.Context, logID uuid.UUID) (*domain.ImportLog, error) {
	log, err := s.logs.FindByID(ctx, logID)
	if err != nil {
		return nil, fmt.Errorf("failed to get import log: %w", err)
	}
	return log, nil
}

// PruneLogs removes import logs created before the cutoff
func (s *ImportService) PruneLogs(ctx context.Context, before time.Time) (int64, error) {
	n, err := s.logs.PruneBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune import logs: %w", err)
	}
	return n, nil
}
