// internal/core/domain/attachment.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a document stored against a purchase order
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	HeaderID    uuid.UUID `json:"header_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	StorageKey  string    `json:"storage_key"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	URL         string    `json:"url,omitempty"`
}
