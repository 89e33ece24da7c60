// internal/workers/queue_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/workers"
	"github.com/ammerola/procure-be/test/helpers"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	r.opts = append(r.opts, opts)
	return &asynq.TaskInfo{ID: "task-1", Queue: workers.QueueDefault, Type: task.Type()}, nil
}

func TestImportQueue_EnqueueSales(t *testing.T) {
	client := &recordingEnqueuer{}
	queue := workers.NewImportQueue(client, 3, helpers.TestLogger())
	importID := uuid.New()
	rows := []domain.Sale{
		helpers.CreateTestSale("ORD-1", "MUG-1", 1),
		helpers.CreateTestSale("ORD-2", "MUG-2", 4, func(s *domain.Sale) { s.Cancelled = true }),
	}

	require.NoError(t, queue.EnqueueSales(context.Background(), importID, rows))
	require.Len(t, client.tasks, 1)

	task := client.tasks[0]
	assert.Equal(t, workers.TypeImportSales, task.Type())

	var payload workers.SalesImportPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, importID, payload.ImportID)
	require.Len(t, payload.Rows, 2)
	assert.True(t, payload.Rows[1].Cancelled)

	var taskID string
	for _, opt := range client.opts[0] {
		if opt.Type() == asynq.TaskIDOpt {
			taskID = opt.Value().(string)
		}
	}
	assert.Equal(t, importID.String(), taskID)
}

func TestImportQueue_EnqueueSnapshots(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "enqueued"},
		{name: "duplicate_submit_is_accepted", err: asynq.ErrTaskIDConflict},
		{name: "redis_failure", err: errors.New("dial tcp: connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := workers.NewImportQueue(&recordingEnqueuer{err: tt.err}, 3, helpers.TestLogger())
			err := queue.EnqueueSnapshots(context.Background(), uuid.New(), []domain.StockSnapshot{
				helpers.CreateTestSnapshot("MUG-1", helpers.Date(2025, 1, 10), 5),
			})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
