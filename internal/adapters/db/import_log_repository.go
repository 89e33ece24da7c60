// internal/adapters/db/import_log_repository.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// ImportLogRepository persists import job logs
type ImportLogRepository struct {
	db     *Database
	logger *slog.Logger
}

// Statically assert that *ImportLogRepository implements the ImportLogRepository interface.
var _ ports.ImportLogRepository = (*ImportLogRepository)(nil)

// NewImportLogRepository creates a new import log repository
func NewImportLogRepository(db *Database, logger *slog.Logger) *ImportLogRepository {
	return &ImportLogRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "import_log")),
	}
}

// Create inserts a new import log
func (r *ImportLogRepository) Create(ctx context.Context, l *domain.ImportLog) error {
	errs, err := marshalErrors(l.Errors)
	if err != nil {
		return err
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO import_logs (id, kind, source, status, total_rows, success_count,
			failed_count, errors, created_at, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.Kind, l.Source, l.Status, l.TotalRows, l.SuccessCount,
		l.FailedCount, errs, l.CreatedAt, l.StartedAt, l.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to create import log: %w", err)
	}
	return nil
}

// Update writes the progress and outcome of an import log
func (r *ImportLogRepository) Update(ctx context.Context, l *domain.ImportLog) error {
	errs, err := marshalErrors(l.Errors)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE import_logs SET
			status = $2, total_rows = $3, success_count = $4, failed_count = $5,
			errors = $6, started_at = $7, finished_at = $8
		WHERE id = $1`,
		l.ID, l.Status, l.TotalRows, l.SuccessCount, l.FailedCount, errs, l.StartedAt, l.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("import log", l.ID)
	}
	return nil
}

// FindByID returns an import log
func (r *ImportLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ImportLog, error) {
	var (
		l    domain.ImportLog
		errs []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, kind, source, status, total_rows, success_count, failed_count,
			errors, created_at, started_at, finished_at
		FROM import_logs WHERE id = $1`, id).
		Scan(&l.ID, &l.Kind, &l.Source, &l.Status, &l.TotalRows, &l.SuccessCount,
			&l.FailedCount, &errs, &l.CreatedAt, &l.StartedAt, &l.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("import log", id)
		}
		return nil, fmt.Errorf("failed to find import log: %w", err)
	}

	if len(errs) > 0 {
		if err := json.Unmarshal(errs, &l.Errors); err != nil {
			return nil, fmt.Errorf("failed to decode import errors: %w", err)
		}
	}
	return &l, nil
}

// PruneBefore deletes logs created before the cutoff
func (r *ImportLogRepository) PruneBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM import_logs WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune import logs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func marshalErrors(errs []string) ([]byte, error) {
	if errs == nil {
		errs = []string{}
	}
	data, err := json.Marshal(errs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode import errors: %w", err)
	}
	return data, nil
}
