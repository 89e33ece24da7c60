// internal/adapters/db/attachment_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// AttachmentRepository persists purchase order attachment metadata
type AttachmentRepository struct {
	db     *Database
	logger *slog.Logger
}

// Statically assert that *AttachmentRepository implements the AttachmentRepository interface.
var _ ports.AttachmentRepository = (*AttachmentRepository)(nil)

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *Database, logger *slog.Logger) *AttachmentRepository {
	return &AttachmentRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "attachment")),
	}
}

// Create inserts attachment metadata
func (r *AttachmentRepository) Create(ctx context.Context, a *domain.Attachment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO po_attachments (id, header_id, file_name, content_type, storage_key, size, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING uploaded_at`,
		a.ID, a.HeaderID, a.FileName, a.ContentType, a.StorageKey, a.Size,
	).Scan(&a.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to create attachment: %w", err)
	}
	return nil
}

// ListByHeader returns the attachments of a purchase order, newest first
func (r *AttachmentRepository) ListByHeader(ctx context.Context, headerID uuid.UUID) ([]domain.Attachment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, header_id, file_name, content_type, storage_key, size, uploaded_at
		FROM po_attachments WHERE header_id = $1
		ORDER BY uploaded_at DESC, id`, headerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	attachments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Attachment, error) {
		var a domain.Attachment
		err := row.Scan(&a.ID, &a.HeaderID, &a.FileName, &a.ContentType, &a.StorageKey, &a.Size, &a.UploadedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan attachments: %w", err)
	}
	return attachments, nil
}

// FindByID returns one attachment
func (r *AttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	var a domain.Attachment
	err := r.db.QueryRow(ctx, `
		SELECT id, header_id, file_name, content_type, storage_key, size, uploaded_at
		FROM po_attachments WHERE id = $1`, id).
		Scan(&a.ID, &a.HeaderID, &a.FileName, &a.ContentType, &a.StorageKey, &a.Size, &a.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("attachment", id)
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}
	return &a, nil
}

// Delete removes attachment metadata
func (r *AttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM po_attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("attachment", id)
	}
	return nil
}
