// internal/core/ports/attachment.go
package ports

import (
	"context"
	"io"
	"time"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/google/uuid"
)

// FileStorage is the object storage port used for purchase order documents
type FileStorage interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	GetPresignedURL(ctx context.Context, key string, duration time.Duration) (string, error)
}

// AttachmentRepository persists attachment metadata
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	ListByHeader(ctx context.Context, headerID uuid.UUID) ([]domain.Attachment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
