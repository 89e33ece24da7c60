// internal/workers/queue.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// Enqueuer is the part of *asynq.Client the import queue needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ImportQueue hands import rows to the worker through asynq
type ImportQueue struct {
	client    Enqueuer
	maxRetry  int
	retention time.Duration
	logger    *slog.Logger
}

// Statically assert that *ImportQueue implements the ImportQueue interface.
var _ ports.ImportQueue = (*ImportQueue)(nil)

// NewImportQueue creates a new import queue
func NewImportQueue(client Enqueuer, maxRetry int, logger *slog.Logger) *ImportQueue {
	return &ImportQueue{
		client:    client,
		maxRetry:  maxRetry,
		retention: 24 * time.Hour,
		logger:    logger.With(slog.String("component", "import_queue")),
	}
}

// EnqueueSnapshots queues a snapshot import. The import id doubles as the task
// id so a double submit cannot run the same rows twice.
func (q *ImportQueue) EnqueueSnapshots(ctx context.Context, logID uuid.UUID, rows []domain.StockSnapshot) error {
	return q.enqueue(ctx, TypeImportSnapshots, logID, SnapshotImportPayload{ImportID: logID, Rows: rows})
}

// EnqueueSales queues a sales import
func (q *ImportQueue) EnqueueSales(ctx context.Context, logID uuid.UUID, rows []domain.Sale) error {
	return q.enqueue(ctx, TypeImportSales, logID, SalesImportPayload{ImportID: logID, Rows: rows})
}

func (q *ImportQueue) enqueue(ctx context.Context, taskType string, logID uuid.UUID, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}

	info, err := q.client.EnqueueContext(ctx, asynq.NewTask(taskType, b),
		asynq.Queue(QueueDefault),
		asynq.TaskID(logID.String()),
		asynq.MaxRetry(q.maxRetry),
		asynq.Retention(q.retention))
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			q.logger.WarnContext(ctx, "import already queued",
				slog.String("import_id", logID.String()))
			return nil
		}
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}

	q.logger.DebugContext(ctx, "task enqueued",
		slog.String("type", taskType),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))
	return nil
}
