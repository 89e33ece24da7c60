// internal/core/services/attachment.go
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

const attachmentPrefix = "purchase-orders"

// AttachmentService stores purchase order documents. Attachments never touch
// costed or received state.
type AttachmentService struct {
	repo       ports.AttachmentRepository
	orders     ports.PurchaseOrderRepository
	storage    ports.FileStorage
	maxBytes   int64
	presignTTL time.Duration
	logger     *slog.Logger
}

// Statically assert that *AttachmentService implements the AttachmentService interface.
var _ ports.AttachmentService = (*AttachmentService)(nil)

// NewAttachmentService creates a new attachment service
func NewAttachmentService(
	repo ports.AttachmentRepository,
	orders ports.PurchaseOrderRepository,
	storage ports.FileStorage,
	maxBytes int64,
	presignTTL time.Duration,
	logger *slog.Logger,
) *AttachmentService {
	return &AttachmentService{
		repo:       repo,
		orders:     orders,
		storage:    storage,
		maxBytes:   maxBytes,
		presignTTL: presignTTL,
		logger:     logger.With(slog.String("service", "attachment")),
	}
}

// Upload stores data under purchase-orders/{po_number}/{uuid}-{filename} and
// records it against the purchase order
func (s *AttachmentService) Upload(ctx context.Context, headerID uuid.UUID, fileName, contentType string, size int64, data io.Reader) (*domain.Attachment, error) {
	fileName = cleanFileName(fileName)
	if fileName == "" {
		return nil, domain.Invalid("file_name", "file name is required")
	}
	if size <= 0 {
		return nil, domain.Invalid("file", "file is empty")
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, domain.Invalid("file", "file exceeds %d bytes", s.maxBytes)
	}

	po, err := s.orders.Load(ctx, headerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}

	a := &domain.Attachment{
		ID:          uuid.New(),
		HeaderID:    headerID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	}
	a.StorageKey = path.Join(attachmentPrefix, po.Header.PONumber, a.ID.String()+"-"+fileName)

	if _, err := s.storage.Upload(ctx, a.StorageKey, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if derr := s.storage.Delete(ctx, a.StorageKey); derr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned attachment",
				slog.String("key", a.StorageKey),
				slog.String("error", derr.Error()))
		}
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	a.URL = s.presign(ctx, a.StorageKey)
	s.logger.InfoContext(ctx, "attachment uploaded",
		slog.String("header_id", headerID.String()),
		slog.String("attachment_id", a.ID.String()),
		slog.Int64("size", size))
	return a, nil
}

// List returns the attachments of a purchase order with download URLs
func (s *AttachmentService) List(ctx context.Context, headerID uuid.UUID) ([]domain.Attachment, error) {
	attachments, err := s.repo.ListByHeader(ctx, headerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	for i := range attachments {
		attachments[i].URL = s.presign(ctx, attachments[i].StorageKey)
	}
	return attachments, nil
}

// Delete removes an attachment record and its stored object
func (s *AttachmentService) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get attachment: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	if err := s.storage.Delete(ctx, a.StorageKey); err != nil {
		s.logger.WarnContext(ctx, "failed to delete stored attachment",
			slog.String("key", a.StorageKey),
			slog.String("error", err.Error()))
	}
	s.logger.InfoContext(ctx, "attachment deleted", slog.String("attachment_id", id.String()))
	return nil
}

func (s *AttachmentService) presign(ctx context.Context, key string) string {
	url, err := s.storage.GetPresignedURL(ctx, key, s.presignTTL)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to presign attachment",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return ""
	}
	return url
}

// cleanFileName keeps the base name and replaces characters that do not
// belong in an object key
func cleanFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
