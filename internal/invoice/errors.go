package invoice

import (
	"errors"
	"fmt"
	"strings"
)

// Common invoice errors
var (
	// ErrInvalidInvoiceData is returned when an invoice document cannot be decoded.
	ErrInvalidInvoiceData = errors.New("invalid invoice data")

	// ErrMissingRequiredField is returned when a field required on a printed
	// invoice is empty.
	ErrMissingRequiredField = errors.New("missing required invoice field")

	// ErrInvalidLineItem is returned when a line item is incomplete or has
	// non-positive quantity or prices.
	ErrInvalidLineItem = errors.New("invalid line item")

	// ErrUnknownField is returned when a price derivation names a field that
	// does not drive any other.
	ErrUnknownField = errors.New("unknown line item field")
)

// ProcessingError wraps errors with the operation that failed.
type ProcessingError struct {
	// Op is the operation that failed (e.g., "LoadInvoice", "DeriveItem").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("invoice: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError with the specified operation and underlying error.
func NewProcessingError(op string, err error, details string) *ProcessingError {
	return &ProcessingError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// ValidationError represents a single invalid field of an invoice.
type ValidationError struct {
	Field   string // JSON path, e.g. "items[0].quantity"
	Value   interface{}
	Message string
	Err     error // ErrMissingRequiredField or ErrInvalidLineItem
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// ValidationErrors collects every invalid field of an invoice.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets errors.Is match the sentinel of any contained error.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}
