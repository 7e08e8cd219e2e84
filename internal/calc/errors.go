package calc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrZeroDivisor is returned when a VAT rate of -100% makes the gross to net
	// conversion divide by zero.
	ErrZeroDivisor = errors.New("VAT multiplier is zero")

	// ErrEmptyInput is returned when a numeric field is blank.
	ErrEmptyInput = errors.New("empty numeric input")

	// ErrInvalidNumber is returned when input cannot be read as a decimal number.
	ErrInvalidNumber = errors.New("invalid number")
)

// RateError reports a VAT rate that cannot be used for a price derivation.
type RateError struct {
	Rate decimal.Decimal
	Err  error
}

func (e *RateError) Error() string {
	return fmt.Sprintf("calc: VAT rate %s%%: %v", e.Rate.String(), e.Err)
}

func (e *RateError) Unwrap() error {
	return e.Err
}

// NewRateError creates a new RateError.
func NewRateError(rate decimal.Decimal, err error) *RateError {
	return &RateError{Rate: rate, Err: err}
}

// ParseError reports numeric input that could not be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("calc: parsing %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
