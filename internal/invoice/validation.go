package invoice

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"faktura/internal/calc"
	"faktura/pkg/models"
)

// totalsTolerance is how far net + VAT may drift from the gross total before
// a warning is raised. Brutto prices are rounded per unit before they are
// stored, so a cent or two of drift is expected.
var totalsTolerance = decimal.RequireFromString("0.02")

// Validate checks an invoice for the fields a printed invoice requires.
// It returns ValidationErrors listing every problem, or nil.
func Validate(inv *models.Invoice) error {
	var errs ValidationErrors

	required := func(field, value, message string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, NewValidationError(field, value, message, ErrMissingRequiredField))
		}
	}

	// Basic data
	required("invoiceNumber", inv.InvoiceNumber, "invoice number is required")
	required("dateIssued", inv.DateIssued, "issue date is required")
	required("dateSale", inv.DateSale, "sale date is required")

	// Seller with the account the buyer pays into
	required("seller.name", inv.Seller.Name, "seller is required")
	required("seller.bankAccount", inv.Seller.BankAccount, "seller bank account is required")

	// Buyer
	required("buyer.name", inv.Buyer.Name, "buyer name is required")
	required("buyer.address", inv.Buyer.Address, "buyer address is required")
	required("buyer.nip", inv.Buyer.NIP, "buyer NIP is required")

	if len(inv.Items) == 0 {
		errs = append(errs, NewValidationError("items", 0, "at least one line item is required", ErrInvalidLineItem))
	}
	for i, item := range inv.Items {
		errs = append(errs, validateItem(i, item)...)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateItem(i int, item models.LineItem) ValidationErrors {
	var errs ValidationErrors
	field := func(name string) string {
		return fmt.Sprintf("items[%d].%s", i, name)
	}

	if strings.TrimSpace(item.Description) == "" {
		errs = append(errs, NewValidationError(field("description"), item.Description, "description is required", ErrInvalidLineItem))
	}
	positive := []struct {
		name  string
		value decimal.Decimal
	}{
		{"quantity", item.Quantity},
		{"netPrice", item.NetPrice},
		{"bruttoPrice", item.BruttoPrice},
	}
	for _, p := range positive {
		if !p.value.IsPositive() {
			errs = append(errs, NewValidationError(field(p.name), p.value.String(), "must be greater than zero", ErrInvalidLineItem))
		}
	}
	return errs
}

// crossCheckTotals compares net + VAT with the independently summed gross
// total. The totals are reported as computed; this only produces warnings.
func (s *Service) crossCheckTotals(totals models.Totals, summary *Summary) {
	calculated := totals.NetTotal.Add(totals.VATTotal)
	difference := calculated.Sub(totals.GrossTotal).Abs()

	if difference.GreaterThan(totalsTolerance) {
		warning := fmt.Sprintf("Totals mismatch: net (%s) + VAT (%s) = %s, but gross = %s (difference: %s)",
			totals.NetTotal.StringFixed(2),
			totals.VATTotal.StringFixed(2),
			calculated.StringFixed(2),
			totals.GrossTotal.StringFixed(2),
			difference.StringFixed(2))
		summary.Warnings = append(summary.Warnings, warning)
		summary.HasDiscrepancy = true

		s.log.Warn().
			Str("net", totals.NetTotal.StringFixed(2)).
			Str("vat", totals.VATTotal.StringFixed(2)).
			Str("gross", totals.GrossTotal.StringFixed(2)).
			Str("difference", difference.StringFixed(2)).
			Msg("Gross total differs from net + VAT")
	}
}

// checkRates warns about items with a rate outside the standard set.
func (s *Service) checkRates(items []models.LineItem, summary *Summary) {
	for i, item := range items {
		if calc.IsStandardVATRate(item.VATRate) {
			continue
		}
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("Item %d uses non-standard VAT rate %s%%", i+1, item.VATRate.String()))
		s.log.Debug().
			Int("item", i).
			Str("vat_rate", item.VATRate.String()).
			Msg("Non-standard VAT rate")
	}
}
