// internal/workers/mux.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/procure-be/internal/pkg/config"
	"github.com/ammerola/procure-be/internal/pkg/logger"
)

// NewServeMux routes every task type to its processor
func NewServeMux(imports *ImportProcessor, status *StatusProcessor, cleanup *CleanupProcessor, l *slog.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(LoggingMiddleware(l))
	mux.HandleFunc(TypeImportSnapshots, imports.ProcessSnapshots)
	mux.HandleFunc(TypeImportSales, imports.ProcessSales)
	mux.HandleFunc(TypeRefreshStatuses, status.RefreshStatuses)
	mux.HandleFunc(TypeCleanup, cleanup.Cleanup)
	return mux
}

// Registrar is the part of *asynq.Scheduler used to install periodic tasks
type Registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

// RegisterPeriodicTasks installs the status refresh and cleanup schedules.
// An empty cron expression leaves that task unscheduled.
func RegisterPeriodicTasks(s Registrar, cfg config.AsynqConfig) error {
	periodic := []struct {
		cron  string
		task  string
		queue string
	}{
		{cfg.StatusRefreshCron, TypeRefreshStatuses, QueueCritical},
		{cfg.CleanupCron, TypeCleanup, QueueLow},
	}

	for _, p := range periodic {
		if p.cron == "" {
			continue
		}
		if _, err := s.Register(p.cron, asynq.NewTask(p.task, nil),
			asynq.Queue(p.queue),
			asynq.MaxRetry(cfg.RetryMax)); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", p.task, err)
		}
	}
	return nil
}

// LoggingMiddleware tags the task context with its id and type and logs
// each run's outcome
func LoggingMiddleware(l *slog.Logger) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			if id, ok := asynq.GetTaskID(ctx); ok {
				ctx = logger.WithValue(ctx, logger.ContextKeyTaskID, id)
			}
			ctx = logger.WithValue(ctx, logger.ContextKeyTaskType, t.Type())

			start := time.Now()
			err := next.ProcessTask(ctx, t)
			duration := time.Since(start)

			if err != nil {
				l.ErrorContext(ctx, "task failed",
					slog.Duration("duration", duration),
					slog.String("error", err.Error()))
				return err
			}
			l.InfoContext(ctx, "task completed", slog.Duration("duration", duration))
			return nil
		})
	}
}
