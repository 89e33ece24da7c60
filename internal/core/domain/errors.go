// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors matched with errors.Is by callers
var (
	ErrNotFound          = errors.New("not found")
	ErrMissingPONumber   = errors.New("po_number is required")
	ErrDuplicatePONumber = errors.New("po_number already exists")
	ErrUnknownSKU        = errors.New("unknown sku")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
)

// ValidationError rejects an input before any state is touched.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError around one of the sentinels above.
func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: err.Error(), Err: err}
}

// Invalid builds a ValidationError with a free-form message.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConsistencyError is returned when an item or receipt claims a parent it does
// not belong to.
type ConsistencyError struct {
	Entity        string
	ID            uuid.UUID
	ClaimedParent uuid.UUID
	ActualParent  uuid.UUID
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s %s belongs to purchase order %s, not %s",
		e.Entity, e.ID, e.ActualParent, e.ClaimedParent)
}

// ConcurrentModificationError means the header changed between read and commit.
type ConcurrentModificationError struct {
	HeaderID        uuid.UUID
	ExpectedVersion int64
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("purchase order %s was modified concurrently (expected version %d)",
		e.HeaderID, e.ExpectedVersion)
}

// Retryable reports that the whole mutation may be safely re-run.
func (e *ConcurrentModificationError) Retryable() bool { return true }

// NotFound wraps ErrNotFound with the entity and key that were missing.
func NotFound(entity string, key any) error {
	return fmt.Errorf("%s %v: %w", entity, key, ErrNotFound)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsConsistency reports whether err carries a ConsistencyError.
func IsConsistency(err error) bool {
	var c *ConsistencyError
	return errors.As(err, &c)
}

// IsConcurrentModification reports whether err carries a ConcurrentModificationError.
func IsConcurrentModification(err error) bool {
	var c *ConcurrentModificationError
	return errors.As(err, &c)
}
