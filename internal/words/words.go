// Package words spells out PLN amounts in Polish for the "Słownie" line of
// a printed invoice, e.g. 123.45 -> "sto dwadzieścia trzy PLN czterdzieści pięć gr".
//
// Amounts of one million PLN and more are not supported and are spelled as
// the TooLarge sentinel. Negative whole parts are spelled as Negative.
// Callers that must not print sentinels check the amount with Validate first.
package words

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// TooLarge replaces the words of a number of one million or more.
	TooLarge = "number too large"

	// Negative replaces the words of a number below zero.
	Negative = "number below zero"

	CurrencyUnit = "PLN"
	SubUnit      = "gr"
)

const limit = 1_000_000

var (
	// ErrNegativeAmount is returned by Validate for amounts below zero.
	ErrNegativeAmount = errors.New("amount is negative")

	// ErrAmountTooLarge is returned by Validate for amounts of one million or more.
	ErrAmountTooLarge = errors.New("amount must be less than 1 000 000")
)

var (
	units = [10]string{
		"", "jeden", "dwa", "trzy", "cztery",
		"pięć", "sześć", "siedem", "osiem", "dziewięć",
	}
	teens = [10]string{
		"dziesięć", "jedenaście", "dwanaście", "trzynaście", "czternaście",
		"piętnaście", "szesnaście", "siedemnaście", "osiemnaście", "dziewiętnaście",
	}
	tens = [10]string{
		"", "dziesięć", "dwadzieścia", "trzydzieści", "czterdzieści",
		"pięćdziesiąt", "sześćdziesiąt", "siedemdziesiąt", "osiemdziesiąt", "dziewięćdziesiąt",
	}
	hundreds = [10]string{
		"", "sto", "dwieście", "trzysta", "czterysta",
		"pięćset", "sześćset", "siedemset", "osiemset", "dziewięćset",
	}
	thousands = [3]string{"tysiąc", "tysiące", "tysięcy"}

	half     = decimal.New(5, -1)
	maxWhole = decimal.NewFromInt(limit)
)

// AmountToWords spells amount as "<złote> PLN <grosze> gr". Grosze are the
// fractional part times 100, rounded half up, so 1.999 yields "sto" grosze.
func AmountToWords(amount decimal.Decimal) string {
	whole := amount.Floor()
	grosze := amount.Sub(whole).Shift(2).Add(half).Floor()

	return fmt.Sprintf("%s %s %s %s", wholeToWords(whole), CurrencyUnit, IntegerToWords(grosze.IntPart()), SubUnit)
}

func wholeToWords(whole decimal.Decimal) string {
	// both bounds are checked before IntPart, which wraps outside int64
	if whole.IsNegative() {
		return Negative
	}
	if whole.GreaterThanOrEqual(maxWhole) {
		return TooLarge
	}
	return IntegerToWords(whole.IntPart())
}

// IntegerToWords spells a non-negative integer below one million.
func IntegerToWords(n int64) string {
	switch {
	case n < 0:
		return Negative
	case n == 0:
		return "zero"
	case n < 10:
		return units[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " " + units[n%10]
	case n < 1000:
		if n%100 == 0 {
			return hundreds[n/100]
		}
		return hundreds[n/100] + " " + IntegerToWords(n%100)
	case n < limit:
		k := n / 1000
		s := IntegerToWords(k) + " " + ThousandsForm(k)
		if n%1000 != 0 {
			s += " " + IntegerToWords(n%1000)
		}
		return s
	default:
		return TooLarge
	}
}

// ThousandsForm returns the form of "tysiąc" used after a count of k thousands.
// Only k == 1 and 1 < k < 5 are told apart, so 22 000 reads "dwadzieścia dwa tysięcy".
func ThousandsForm(k int64) string {
	switch {
	case k == 1:
		return thousands[0]
	case k > 1 && k < 5:
		return thousands[1]
	default:
		return thousands[2]
	}
}

// Validate reports whether amount can be spelled without a sentinel.
func Validate(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, amount.String())
	}
	if amount.Floor().GreaterThanOrEqual(maxWhole) {
		return fmt.Errorf("%w: %s", ErrAmountTooLarge, amount.String())
	}
	return nil
}
