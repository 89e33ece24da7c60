// internal/handlers/response.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/procure-be/internal/core/domain"
)

// maxJSONBody caps request bodies decoded as JSON
const maxJSONBody = 4 << 20

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// responder is embedded by every handler for JSON output and error mapping
type responder struct {
	logger *slog.Logger
}

func (rs responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (rs responder) respondError(w http.ResponseWriter, status int, message string) {
	rs.respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps the domain error taxonomy onto HTTP statuses.
// Anything unrecognised is logged and hidden behind a generic 500.
func (rs responder) respondServiceError(ctx context.Context, w http.ResponseWriter, err error, action string) {
	var (
		validation  *domain.ValidationError
		consistency *domain.ConsistencyError
		concurrent  *domain.ConcurrentModificationError
	)

	switch {
	case errors.As(err, &validation):
		rs.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: validation.Error(), Field: validation.Field})
	case errors.Is(err, domain.ErrNotFound):
		rs.respondError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &concurrent):
		rs.respondJSON(w, http.StatusConflict, ErrorResponse{Error: concurrent.Error(), Retryable: concurrent.Retryable()})
	case errors.As(err, &consistency):
		rs.respondError(w, http.StatusConflict, consistency.Error())
	default:
		rs.logger.ErrorContext(ctx, "failed to "+action,
			slog.String("error", err.Error()))
		rs.respondError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

// decodeJSON reads a bounded JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Invalid("", "invalid request body: %v", err)
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.Invalid(name, "invalid %s format", name)
	}
	return id, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.Invalid(field, "%s must be a YYYY-MM-DD date", field)
	}
	return t, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := parseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func queryInt(r *http.Request, name string, def int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func queryDate(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := parseDate(name, v)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	return &t, nil
}
