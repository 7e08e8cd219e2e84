// Package calc implements invoice arithmetic: line item totals, VAT,
// gross/net price derivation and sanitizing of numeric form input.
//
// All amounts are exact decimals. Every total is summed at full precision
// and rounded once with Round2, never per line item. The gross total is
// summed from the stored brutto prices and is independent of the net and
// VAT totals, so it may differ from their sum by a cent.
//
// Functions in this package are pure and safe for concurrent use.
package calc

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"faktura/pkg/models"
)

var (
	one  = decimal.NewFromInt(1)
	half = decimal.New(5, -1)

	nonNumeric  = regexp.MustCompile(`[^\d.,]`)
	commaperiod = strings.NewReplacer(",", ".")
)

// StandardVATRates are the rates offered when editing a line item, in display order.
var StandardVATRates = []decimal.Decimal{
	decimal.NewFromInt(23),
	decimal.NewFromInt(8),
	decimal.NewFromInt(5),
	decimal.Zero,
}

// Round2 rounds x to 2 decimal places as round(x*100)/100 where halves go up
// (toward positive infinity): 10.005 -> 10.01, -10.005 -> -10.
func Round2(x decimal.Decimal) decimal.Decimal {
	return x.Shift(2).Add(half).Floor().Shift(-2)
}

// NetTotal returns the rounded sum of quantity * net price.
func NetTotal(items []models.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Quantity.Mul(item.NetPrice))
	}
	return Round2(sum)
}

// VATTotal returns the rounded sum of quantity * net price * rate/100.
// Items with a zero rate contribute nothing.
func VATTotal(items []models.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.VATRate.IsZero() {
			continue
		}
		sum = sum.Add(item.Quantity.Mul(item.NetPrice).Mul(item.VATRate).Shift(-2))
	}
	return Round2(sum)
}

// GrossTotal returns the rounded sum of quantity * brutto price.
func GrossTotal(items []models.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Quantity.Mul(item.BruttoPrice))
	}
	return Round2(sum)
}

// ComputeTotals returns net, VAT and gross totals of the items.
func ComputeTotals(items []models.LineItem) models.Totals {
	return models.Totals{
		NetTotal:   NetTotal(items),
		VATTotal:   VATTotal(items),
		GrossTotal: GrossTotal(items),
	}
}

// GrossFromNet derives the brutto unit price from a net price.
func GrossFromNet(net, vatRate decimal.Decimal) decimal.Decimal {
	return Round2(net.Mul(vatMultiplier(vatRate)))
}

// NetFromGross derives the net unit price from a brutto price.
// A rate of -100 has no inverse and yields ErrZeroDivisor.
func NetFromGross(gross, vatRate decimal.Decimal) (decimal.Decimal, error) {
	m := vatMultiplier(vatRate)
	if m.IsZero() {
		return decimal.Zero, NewRateError(vatRate, ErrZeroDivisor)
	}
	return Round2(gross.Div(m)), nil
}

func vatMultiplier(vatRate decimal.Decimal) decimal.Decimal {
	return one.Add(vatRate.Shift(-2))
}

// IsStandardVATRate reports whether rate is one of StandardVATRates.
func IsStandardVATRate(rate decimal.Decimal) bool {
	for _, r := range StandardVATRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// FormatNumberInput sanitizes raw numeric input. A run of leading zeros
// followed by another digit is dropped ("007" -> "7", "00.5" -> "0.5"), then
// everything except digits, '.' and ',' is removed. The result is not
// guaranteed to parse: "1.2.3" is returned unchanged.
func FormatNumberInput(raw string) string {
	zeros := 0
	for zeros < len(raw) && raw[zeros] == '0' {
		zeros++
	}
	switch {
	case zeros == 0:
	case zeros < len(raw) && isDigit(raw[zeros]):
		raw = raw[zeros:]
	default:
		// the last zero of the run must stay: it is not followed by a digit
		raw = raw[zeros-1:]
	}
	return nonNumeric.ReplaceAllString(raw, "")
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// ParseAmount parses a decimal amount, accepting ',' as the decimal separator.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := commaperiod.Replace(strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero, &ParseError{Input: raw, Err: ErrEmptyInput}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ParseError{Input: raw, Err: ErrInvalidNumber}
	}
	return d, nil
}
