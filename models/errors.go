package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds surfaced by repositories, services and the pricing engine.
// Callers match them with errors.Is; wrapped errors keep the kind.
var (
	ErrNotFound           = errors.New("not found")
	ErrNoTierConfigured   = errors.New("no zero-threshold loyalty tier configured")
	ErrInvalidPromotion   = errors.New("promotion is not active")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrValidation         = errors.New("validation failed")
	ErrInUse              = errors.New("entity is still referenced")
	ErrInvalidTransition  = errors.New("invalid order status transition")
)

// ValidationError describes a required field that is missing or out of range.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Kind returns the name of the error kind for display, "Internal" for anything unknown.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrNoTierConfigured):
		return "NoTierConfigured"
	case errors.Is(err, ErrInvalidPromotion):
		return "InvalidPromotion"
	case errors.Is(err, ErrInsufficientPoints):
		return "InsufficientPoints"
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrInUse):
		return "InUse"
	case errors.Is(err, ErrInvalidTransition):
		return "InvalidTransition"
	default:
		return "Internal"
	}
}
