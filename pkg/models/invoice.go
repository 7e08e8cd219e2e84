package models

import "github.com/shopspring/decimal"

// LineItem is a single position on an invoice.
type LineItem struct {
	Description string          `json:"description"` // Free text, not used in calculations
	Quantity    decimal.Decimal `json:"quantity"`    // Expected > 0, validated by callers
	NetPrice    decimal.Decimal `json:"netPrice"`    // Unit price before tax
	BruttoPrice decimal.Decimal `json:"bruttoPrice"` // Unit price after tax, trusted as stored
	VATRate     decimal.Decimal `json:"vatRate"`     // Percentage, e.g. 23 for 23%
}

// Totals holds invoice sums, each rounded to 2 decimal places.
type Totals struct {
	NetTotal   decimal.Decimal `json:"netTotal"`
	VATTotal   decimal.Decimal `json:"vatTotal"`
	GrossTotal decimal.Decimal `json:"grossTotal"`
}

type Invoice struct {
	// Core identifiers
	InvoiceNumber string `json:"invoiceNumber"` // Human-readable invoice number, e.g. FV/2024/01/001

	// Dates as entered on the form (YYYY-MM-DD)
	DateIssued string `json:"dateIssued"` // Data wystawienia
	DateSale   string `json:"dateSale"`   // Data sprzedaży

	// Parties
	Seller Party `json:"seller"` // Sprzedawca
	Buyer  Party `json:"buyer"`  // Nabywca

	Items []LineItem `json:"items"`
}
