// Package invoice combines the invoice arithmetic and the amount-in-words
// converter into what a printed Faktura VAT needs: totals, the amount due,
// its spelling, and warnings about inconsistent input.
//
// Invoices are read as JSON documents matching models.Invoice. Decimal
// fields accept both JSON numbers and strings:
//
//	{
//	  "invoiceNumber": "FV/2024/05/001",
//	  "dateIssued": "2024-05-31",
//	  "dateSale": "2024-05-31",
//	  "seller": {"name": "...", "address": "...", "nip": "...", "bankAccount": "..."},
//	  "buyer": {"name": "...", "address": "...", "nip": "..."},
//	  "items": [{"description": "...", "quantity": 2, "netPrice": "100.00", "bruttoPrice": "123.00", "vatRate": 23}]
//	}
package invoice

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"faktura/internal/calc"
	"faktura/internal/logger"
	"faktura/internal/words"
	"faktura/pkg/models"
)

// Summary is everything printed below the item table of an invoice.
type Summary struct {
	InvoiceNumber  string          `json:"invoiceNumber"`
	Totals         models.Totals   `json:"totals"`
	AmountDue      decimal.Decimal `json:"amountDue"`     // Do zapłaty
	AmountInWords  string          `json:"amountInWords"` // Słownie
	ItemCount      int             `json:"itemCount"`
	Warnings       []string        `json:"warnings"`
	HasDiscrepancy bool            `json:"hasDiscrepancy"`
}

// Field names the line item field a user just edited.
type Field string

const (
	FieldNet     Field = "netPrice"
	FieldGross   Field = "bruttoPrice"
	FieldVATRate Field = "vatRate"
)

// ParseField converts a field name as used in JSON or on the command line.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.TrimSpace(s)); f {
	case FieldNet, FieldGross, FieldVATRate:
		return f, nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "net", "netto":
		return FieldNet, nil
	case "gross", "brutto":
		return FieldGross, nil
	case "vat", "rate":
		return FieldVATRate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Service summarizes invoices. It holds no state besides its logger and is
// safe for concurrent use.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new invoice service
func NewService() *Service {
	return &Service{
		log: logger.WithComponent("invoice"),
	}
}

// Summarize computes the totals, the amount due and its spelling.
func (s *Service) Summarize(inv *models.Invoice) *Summary {
	totals := calc.ComputeTotals(inv.Items)

	summary := &Summary{
		InvoiceNumber: inv.InvoiceNumber,
		Totals:        totals,
		AmountDue:     totals.GrossTotal,
		AmountInWords: words.AmountToWords(totals.GrossTotal),
		ItemCount:     len(inv.Items),
		Warnings:      []string{},
	}

	if err := words.Validate(totals.GrossTotal); err != nil {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("Amount in words unavailable: %v", err))
		s.log.Warn().
			Err(err).
			Str("invoice_number", inv.InvoiceNumber).
			Msg("Gross total outside the spellable range")
	}

	s.crossCheckTotals(totals, summary)
	s.checkRates(inv.Items, summary)

	s.log.Debug().
		Str("invoice_number", inv.InvoiceNumber).
		Int("items", len(inv.Items)).
		Str("net", totals.NetTotal.StringFixed(2)).
		Str("vat", totals.VATTotal.StringFixed(2)).
		Str("gross", totals.GrossTotal.StringFixed(2)).
		Int("warnings", len(summary.Warnings)).
		Msg("Invoice summarized")

	return summary
}

// DeriveItem recomputes the price that depends on the edited field.
// Editing the net price or the VAT rate recomputes the brutto price; editing
// the brutto price recomputes the net price.
func (s *Service) DeriveItem(item models.LineItem, edited Field) (models.LineItem, error) {
	const op = "DeriveItem"

	switch edited {
	case FieldNet, FieldVATRate:
		item.BruttoPrice = calc.GrossFromNet(item.NetPrice, item.VATRate)
	case FieldGross:
		net, err := calc.NetFromGross(item.BruttoPrice, item.VATRate)
		if err != nil {
			return item, NewProcessingError(op, err, "cannot derive net price")
		}
		item.NetPrice = net
	default:
		return item, NewProcessingError(op, fmt.Errorf("%w: %q", ErrUnknownField, edited), "")
	}

	s.log.Debug().
		Str("edited", string(edited)).
		Str("net", item.NetPrice.String()).
		Str("brutto", item.BruttoPrice.String()).
		Str("vat_rate", item.VATRate.String()).
		Msg("Line item prices derived")

	return item, nil
}

// Header holds the number and dates of an invoice being composed.
type Header struct {
	InvoiceNumber string
	DateIssued    string
	DateSale      string
}

// Compose builds an invoice for the selected seller, the seller's bank
// account and the buyer. The items slice is copied.
func Compose(h Header, seller *models.SellerCompany, accountID string, buyer *models.BuyerCompany, items []models.LineItem) (*models.Invoice, error) {
	const op = "Compose"

	if seller == nil || buyer == nil {
		return nil, NewProcessingError(op, ErrMissingRequiredField, "seller and buyer are required")
	}
	if buyer.SellerID != "" && buyer.SellerID != seller.ID {
		return nil, NewProcessingError(op, ErrInvalidInvoiceData,
			fmt.Sprintf("buyer %s belongs to seller %s, not %s", buyer.ID, buyer.SellerID, seller.ID))
	}

	sellerParty := seller.SellerParty(accountID)
	if accountID != "" && sellerParty.BankAccount == "" {
		return nil, NewProcessingError(op, ErrInvalidInvoiceData,
			fmt.Sprintf("seller %s has no bank account %s", seller.ID, accountID))
	}

	return &models.Invoice{
		InvoiceNumber: h.InvoiceNumber,
		DateIssued:    h.DateIssued,
		DateSale:      h.DateSale,
		Seller:        sellerParty,
		Buyer:         buyer.BuyerParty(),
		Items:         append([]models.LineItem(nil), items...),
	}, nil
}

// LoadInvoice decodes an invoice JSON document.
func LoadInvoice(r io.Reader) (*models.Invoice, error) {
	const op = "LoadInvoice"

	var inv models.Invoice
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&inv); err != nil {
		return nil, NewProcessingError(op, fmt.Errorf("%w: %v", ErrInvalidInvoiceData, err), "")
	}
	return &inv, nil
}

// LoadInvoiceFile decodes the invoice JSON document at path.
func LoadInvoiceFile(path string) (*models.Invoice, error) {
	const op = "LoadInvoiceFile"

	f, err := os.Open(path)
	if err != nil {
		return nil, NewProcessingError(op, err, path)
	}
	defer f.Close()

	inv, err := LoadInvoice(f)
	if err != nil {
		return nil, NewProcessingError(op, err, path)
	}
	return inv, nil
}
