// internal/core/services/import_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
	"github.com/ammerola/procure-be/internal/core/services"
	"github.com/ammerola/procure-be/test/helpers"
	"github.com/ammerola/procure-be/test/mocks"
)

type importFixture struct {
	logs    *mocks.MockImportLogRepository
	stock   *mocks.MockStockService
	queue   *mocks.MockImportQueue
	service *services.ImportService
}

func newImportFixture(t *testing.T, maxRows int) *importFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &importFixture{
		logs:  mocks.NewMockImportLogRepository(ctrl),
		stock: mocks.NewMockStockService(ctrl),
		queue: mocks.NewMockImportQueue(ctrl),
	}
	f.service = services.NewImportService(f.logs, f.stock, f.queue, maxRows, helpers.FixedClock(testNow), helpers.TestLogger())
	return f
}

func TestImportService_SubmitSnapshots(t *testing.T) {
	rows := []domain.StockSnapshot{
		helpers.CreateTestSnapshot("A", testNow, 4),
		helpers.CreateTestSnapshot("B", testNow, 9),
	}

	tests := []struct {
		name     string
		rows     []domain.StockSnapshot
		maxRows  int
		setup    func(f *importFixture)
		checkErr func(*testing.T, error)
		validate func(*testing.T, *domain.ImportLog)
	}{
		{
			name:    "records_pending_log_and_enqueues",
			rows:    rows,
			maxRows: 10,
			setup: func(f *importFixture) {
				var created uuid.UUID
				f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, l *domain.ImportLog) error {
						created = l.ID
						return nil
					})
				f.queue.EXPECT().EnqueueSnapshots(gomock.Any(), gomock.Any(), rows).
					DoAndReturn(func(_ context.Context, id uuid.UUID, _ []domain.StockSnapshot) error {
						assert.Equal(t, created, id)
						return nil
					})
			},
			validate: func(t *testing.T, l *domain.ImportLog) {
				assert.Equal(t, domain.ImportPending, l.Status)
				assert.Equal(t, domain.ImportKindSnapshots, l.Kind)
				assert.Equal(t, 2, l.TotalRows)
				assert.Equal(t, "upload.csv", l.Source)
				assert.Equal(t, testNow, l.CreatedAt)
			},
		},
		{
			name:    "enqueue_failure_marks_log_failed",
			rows:    rows,
			maxRows: 10,
			setup: func(f *importFixture) {
				f.logs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				f.queue.EXPECT().EnqueueSnapshots(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("redis unavailable"))
				f.logs.EXPECT().Update(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, l *domain.ImportLog) error {
						assert.Equal(t, domain.ImportFailed, l.Status)
						assert.NotNil(t, l.FinishedAt)
						require.Len(t, l.Errors, 1)
						assert.Contains(t, l.Errors[0], "redis unavailable")
						return nil
					})
			},
			checkErr: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "failed to enqueue import")
			},
		},
		{
			name:    "empty_upload",
			rows:    nil,
			maxRows: 10,
			checkErr: func(t *testing.T, err error) {
				assert.True(t, domain.IsValidation(err))
			},
		},
		{
			name:    "too_many_rows",
			rows:    rows,
			maxRows: 1,
			checkErr: func(t *testing.T, err error) {
				assert.True(t, domain.IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newImportFixture(t, tt.maxRows)
			if tt.setup != nil {
				tt.setup(f)
			}

			l, err := f.service.SubmitSnapshots(context.Background(), "upload.csv", tt.rows)

			if tt.checkErr != nil {
				require.Error(t, err)
				tt.checkErr(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, l)
		})
	}
}

func TestImportService_SubmitSalesWithoutQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := services.NewImportService(mocks.NewMockImportLogRepository(ctrl), nil, nil, 0,
		helpers.FixedClock(testNow), helpers.TestLogger())

	_, err := service.SubmitSales(context.Background(), "api", []domain.Sale{helpers.CreateTestSale("ORD-1", "A", 1)})
	assert.Error(t, err)
}

func TestImportService_ProcessSales(t *testing.T) {
	rows := []domain.Sale{
		helpers.CreateTestSale("ORD-1", "A", 1),
		helpers.CreateTestSale("ORD-2", "GHOST", 1),
	}

	tests := []struct {
		name        string
		existing    *domain.ImportLog
		ingest      *ports.IngestResult
		ingestErr   error
		expectError bool
		status      domain.ImportStatus
		success     int
		failed      int
	}{
		{
			name:     "partial_success_settles_as_success",
			existing: helpers.CreateTestImportLog(domain.ImportKindSales),
			ingest:   &ports.IngestResult{Total: 2, Succeeded: 1, Failed: 1, Errors: []string{"row 2: unknown sku"}},
			status:   domain.ImportSuccess,
			success:  1,
			failed:   1,
		},
		{
			name:     "every_row_rejected_fails",
			existing: helpers.CreateTestImportLog(domain.ImportKindSales),
			ingest:   &ports.IngestResult{Total: 2, Failed: 2, Errors: []string{"row 1: x", "row 2: y"}},
			status:   domain.ImportFailed,
			failed:   2,
		},
		{
			name:        "ingest_error_fails_and_is_returned",
			existing:    helpers.CreateTestImportLog(domain.ImportKindSales),
			ingest:      &ports.IngestResult{Total: 2, Succeeded: 1},
			ingestErr:   errors.New("connection reset"),
			expectError: true,
			status:      domain.ImportFailed,
			success:     1,
			failed:      1,
		},
		{
			name: "retry_resets_previous_counts",
			existing: helpers.CreateTestImportLog(domain.ImportKindSales, func(l *domain.ImportLog) {
				l.Status = domain.ImportFailed
				l.SuccessCount = 1
				l.FailedCount = 1
				l.Errors = []string{"connection reset"}
			}),
			ingest:  &ports.IngestResult{Total: 2, Succeeded: 2},
			status:  domain.ImportSuccess,
			success: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newImportFixture(t, 0)
			id := tt.existing.ID

			f.logs.EXPECT().FindByID(gomock.Any(), id).Return(tt.existing, nil)
			gomock.InOrder(
				f.logs.EXPECT().Update(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, l *domain.ImportLog) error {
						assert.Equal(t, domain.ImportProcessing, l.Status)
						assert.Zero(t, l.FailedCount)
						assert.Equal(t, testNow, *l.StartedAt)
						return nil
					}),
				f.stock.EXPECT().UpsertSales(gomock.Any(), rows).Return(tt.ingest, tt.ingestErr),
				f.logs.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil),
			)

			err := f.service.ProcessSales(context.Background(), id, rows)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "connection reset")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.status, tt.existing.Status)
			assert.Equal(t, tt.success, tt.existing.SuccessCount)
			assert.Equal(t, tt.failed, tt.existing.FailedCount)
			require.NotNil(t, tt.existing.FinishedAt)
		})
	}
}

func TestImportService_ProcessSkipsAppliedImport(t *testing.T) {
	f := newImportFixture(t, 0)
	applied := helpers.CreateTestImportLog(domain.ImportKindSnapshots, func(l *domain.ImportLog) {
		l.Status = domain.ImportSuccess
	})
	f.logs.EXPECT().FindByID(gomock.Any(), applied.ID).Return(applied, nil)

	err := f.service.ProcessSnapshots(context.Background(), applied.ID, nil)
	assert.NoError(t, err)
}

func TestImportService_ProcessMissingLog(t *testing.T) {
	f := newImportFixture(t, 0)
	id := uuid.New()
	f.logs.EXPECT().FindByID(gomock.Any(), id).Return(nil, domain.NotFound("import log", id))

	err := f.service.ProcessSnapshots(context.Background(), id, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
