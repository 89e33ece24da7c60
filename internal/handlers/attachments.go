// internal/handlers/attachments.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

// AttachmentHandler handles purchase order document uploads
type AttachmentHandler struct {
	responder
	service     ports.AttachmentService
	maxFileSize int64
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(service ports.AttachmentService, maxFileSize int64, logger *slog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		responder:   responder{logger: logger.With(slog.String("handler", "attachment"))},
		service:     service,
		maxFileSize: maxFileSize,
	}
}

// Upload handles POST /api/v1/purchase-orders/{id}/attachments
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	headerID, err := pathUUID(r, "id")
	if err != nil {
		h.respondServiceError(ctx, w, err, "upload attachment")
		return
	}

	// Leave room for the multipart envelope around the file itself
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+1<<20)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.respondServiceError(ctx, w, domain.Invalid("file", "failed to parse form data"), "upload attachment")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondServiceError(ctx, w, domain.Invalid("file", "file is required"), "upload attachment")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment, err := h.service.Upload(ctx, headerID, header.Filename, contentType, header.Size, file)
	if err != nil {
		h.respondServiceError(ctx, w, err, "upload attachment")
		return
	}

	h.logger.InfoContext(ctx, "attachment uploaded",
		slog.String("header_id", headerID.String()),
		slog.String("attachment_id", attachment.ID.String()),
		slog.Int64("size", attachment.Size))
	h.respondJSON(w, http.StatusCreated, attachment)
}

// List handles GET /api/v1/purchase-orders/{id}/attachments
func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	headerID, err := pathUUID(r, "id")
	if err != nil {
		h.respondServiceError(ctx, w, err, "list attachments")
		return
	}

	attachments, err := h.service.List(ctx, headerID)
	if err != nil {
		h.respondServiceError(ctx, w, err, "list attachments")
		return
	}
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	h.respondJSON(w, http.StatusOK, attachments)
}

// Delete handles DELETE /api/v1/attachments/{id}
func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathUUID(r, "id")
	if err != nil {
		h.respondServiceError(ctx, w, err, "delete attachment")
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.respondServiceError(ctx, w, err, "delete attachment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
