// internal/workers/mux_test.go
package workers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"

	"github.com/ammerola/procure-be/internal/pkg/logger"
	"github.com/ammerola/procure-be/internal/workers"
	"github.com/ammerola/procure-be/test/helpers"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		handler error
	}{
		{name: "passes_through_success", handler: nil},
		{name: "passes_through_failure", handler: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenType interface{}
			next := asynq.HandlerFunc(func(ctx context.Context, task *asynq.Task) error {
				seenType = ctx.Value(logger.ContextKeyTaskType)
				return tt.handler
			})

			wrapped := workers.LoggingMiddleware(helpers.TestLogger())(next)
			err := wrapped.ProcessTask(context.Background(), asynq.NewTask(workers.TypeCleanup, nil))

			assert.Equal(t, tt.handler, err)
			assert.Equal(t, workers.TypeCleanup, seenType)
		})
	}
}
