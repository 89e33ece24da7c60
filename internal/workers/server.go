// internal/workers/server.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/pkg/config"
)

const (
	retryBase = time.Second
	retryCap  = 10 * time.Minute
	// a lost version race clears as soon as the competing commit lands
	conflictRetry = 500 * time.Millisecond
)

// RedisOpt is the asynq connection shared by the API client, the inspector
// and the worker
func RedisOpt(cfg config.AsynqConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}

// ServerConfig builds the asynq server settings for the worker binary
func ServerConfig(cfg config.AsynqConfig, l *slog.Logger) asynq.Config {
	l = l.With(slog.String("component", "asynq"))
	return asynq.Config{
		Concurrency:     cfg.Concurrency,
		Queues:          cfg.Queues,
		StrictPriority:  cfg.StrictPriority,
		ShutdownTimeout: cfg.ShutdownTimeout,
		RetryDelayFunc:  RetryDelay,
		ErrorHandler:    errorHandler(l),
		HealthCheckFunc: func(err error) {
			if err != nil {
				l.Error("worker health check failed", slog.String("error", err.Error()))
			}
		},
		Logger: NewLogAdapter(l),
	}
}

// RetryDelay backs off exponentially from one second up to ten minutes.
// Tasks that lost an optimistic concurrency race retry almost at once.
func RetryDelay(n int, err error, _ *asynq.Task) time.Duration {
	if domain.IsConcurrentModification(err) {
		return conflictRetry
	}
	if n < 0 {
		n = 0
	}
	if n >= 20 {
		return retryCap
	}
	if d := retryBase << uint(n); d < retryCap {
		return d
	}
	return retryCap
}

func errorHandler(l *slog.Logger) asynq.ErrorHandlerFunc {
	return func(ctx context.Context, t *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)

		attrs := []any{
			slog.String("task_type", t.Type()),
			slog.Int("retried", retried),
			slog.Int("max_retry", maxRetry),
			slog.String("error", err.Error()),
		}
		if retried >= maxRetry || errors.Is(err, asynq.SkipRetry) {
			l.ErrorContext(ctx, "task abandoned", attrs...)
			return
		}
		l.WarnContext(ctx, "task will be retried", attrs...)
	}
}

// LogAdapter routes asynq's internal logging through slog
type LogAdapter struct {
	l *slog.Logger
}

// NewLogAdapter wraps l
func NewLogAdapter(l *slog.Logger) *LogAdapter { return &LogAdapter{l: l} }

func (a *LogAdapter) Debug(args ...interface{}) { a.l.Debug(fmt.Sprint(args...)) }
func (a *LogAdapter) Info(args ...interface{})  { a.l.Info(fmt.Sprint(args...)) }
func (a *LogAdapter) Warn(args ...interface{})  { a.l.Warn(fmt.Sprint(args...)) }
func (a *LogAdapter) Error(args ...interface{}) { a.l.Error(fmt.Sprint(args...)) }

// Fatal logs and exits, as asynq expects
func (a *LogAdapter) Fatal(args ...interface{}) {
	a.l.Error(fmt.Sprint(args...))
	os.Exit(1)
}
