// Package pdf renders a Faktura VAT as an A4 PDF document.
package pdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"faktura/internal/calc"
	"faktura/internal/invoice"
	"faktura/internal/logger"
	"faktura/pkg/models"
)

const (
	pageWidth   = 180.0 // A4 minus 15mm margins
	lineHeight  = 5.0
	coreFont    = "Helvetica"
	defaultTerm = 14
)

// Item table columns: Opis, Ilość, Cena netto, VAT, Wartość brutto.
var columnWidths = [5]float64{80, 20, 30, 20, 30}

// polishFold replaces letters the core PDF fonts cannot encode.
var polishFold = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n", "ó", "o", "ś", "s", "ź", "z", "ż", "z",
	"Ą", "A", "Ć", "C", "Ę", "E", "Ł", "L", "Ń", "N", "Ó", "O", "Ś", "S", "Ź", "Z", "Ż", "Z",
)

// Options configures the renderer.
type Options struct {
	// FontPath is a UTF-8 TrueType font used for all text. When empty the
	// core Helvetica font is used and Polish letters lose their diacritics.
	FontPath   string
	FontFamily string

	// PaymentTermDays is printed as "Termin płatności"; 0 means 14 days.
	PaymentTermDays int
}

// Renderer draws invoices. It is safe for concurrent use; every Render call
// builds its own document.
type Renderer struct {
	opts Options
	log  zerolog.Logger
}

// NewRenderer creates a new PDF renderer
func NewRenderer(opts Options) *Renderer {
	if opts.PaymentTermDays == 0 {
		opts.PaymentTermDays = defaultTerm
	}
	if opts.FontFamily == "" {
		opts.FontFamily = "DejaVu"
	}
	return &Renderer{
		opts: opts,
		log:  logger.WithComponent("pdf"),
	}
}

// FileName returns the download name of the invoice PDF, e.g. Faktura_FV_2024_001.pdf.
func FileName(inv *models.Invoice) string {
	number := strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(inv.InvoiceNumber)
	return "Faktura_" + number + ".pdf"
}

// page bundles a document with its font setup.
type page struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string
}

func (p *page) font(style string, size float64) {
	p.pdf.SetFont(p.family, style, size)
}

func (p *page) cell(w float64, text, border, align string, fill bool, ln int) {
	p.pdf.CellFormat(w, lineHeight+1, p.tr(text), border, ln, align, fill, 0, "")
}

// Render writes the invoice PDF to w. A nil summary is computed from inv.
func (r *Renderer) Render(w io.Writer, inv *models.Invoice, sum *invoice.Summary) error {
	const op = "Render"

	if sum == nil {
		sum = invoice.NewService().Summarize(inv)
	}

	p := r.newPage()
	p.pdf.SetTitle(p.tr("Faktura VAT "+inv.InvoiceNumber), true)
	p.pdf.SetMargins(15, 15, 15)
	p.pdf.AddPage()

	r.drawHeader(p, inv)
	r.drawParties(p, inv)
	r.drawItems(p, inv.Items)
	r.drawSummary(p, sum)
	r.drawPayment(p, inv)

	if err := p.pdf.Error(); err != nil {
		r.log.Error().
			Err(err).
			Str("invoice_number", inv.InvoiceNumber).
			Msg("Failed to build PDF")
		return fmt.Errorf("%s: failed to build PDF: %w", op, err)
	}

	if err := p.pdf.Output(w); err != nil {
		return fmt.Errorf("%s: failed to write PDF: %w", op, err)
	}

	r.log.Info().
		Str("invoice_number", inv.InvoiceNumber).
		Int("items", len(inv.Items)).
		Str("gross", sum.Totals.GrossTotal.StringFixed(2)).
		Msg("Invoice PDF rendered")

	return nil
}

func (r *Renderer) newPage() *page {
	pdf := gofpdf.New("P", "mm", "A4", "")

	if r.opts.FontPath != "" {
		pdf.AddUTF8Font(r.opts.FontFamily, "", r.opts.FontPath)
		pdf.AddUTF8Font(r.opts.FontFamily, "B", r.opts.FontPath)
		return &page{pdf: pdf, family: r.opts.FontFamily, tr: func(s string) string { return s }}
	}

	cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
	return &page{
		pdf:    pdf,
		family: coreFont,
		tr: func(s string) string {
			return cp1252(polishFold.Replace(s))
		},
	}
}

func (r *Renderer) drawHeader(p *page, inv *models.Invoice) {
	p.font("B", 18)
	p.pdf.CellFormat(0, 10, p.tr("Faktura VAT "+inv.InvoiceNumber), "", 1, "L", false, 0, "")

	p.font("", 10)
	p.cell(0, "Data wystawienia: "+inv.DateIssued, "", "R", false, 1)
	p.cell(0, "Data sprzedaży: "+inv.DateSale, "", "R", false, 1)

	separator(p)
}

func (r *Renderer) drawParties(p *page, inv *models.Invoice) {
	const colWidth = pageWidth / 2
	left, top := p.pdf.GetX(), p.pdf.GetY()

	column := func(x float64, header string, party models.Party) float64 {
		p.pdf.SetXY(x, top)
		p.font("B", 11)
		p.pdf.SetX(x)
		p.cell(colWidth, header, "", "L", false, 2)
		p.font("", 10)
		for _, line := range []string{party.Name, party.Address, "NIP: " + party.NIP} {
			p.pdf.SetX(x)
			p.pdf.MultiCell(colWidth-5, lineHeight, p.tr(line), "", "L", false)
		}
		return p.pdf.GetY()
	}

	sellerBottom := column(left, "Sprzedawca:", inv.Seller)
	buyerBottom := column(left+colWidth, "Nabywca:", inv.Buyer)

	p.pdf.SetXY(left, maxFloat(sellerBottom, buyerBottom)+6)
}

func (r *Renderer) drawItems(p *page, items []models.LineItem) {
	headers := [5]string{"Opis", "Ilość", "Cena netto", "VAT", "Wartość brutto"}
	aligns := [5]string{"L", "R", "R", "R", "R"}

	p.font("B", 10)
	p.pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		p.cell(columnWidths[i], h, "B", aligns[i], true, 0)
	}
	p.pdf.Ln(-1)

	p.font("", 10)
	for _, item := range items {
		row := [5]string{
			item.Description,
			item.Quantity.String(),
			money(item.NetPrice),
			item.VATRate.String() + "%",
			money(item.BruttoPrice),
		}
		for i, v := range row {
			p.cell(columnWidths[i], v, "B", aligns[i], false, 0)
		}
		p.pdf.Ln(-1)
	}
	p.pdf.Ln(4)
}

func (r *Renderer) drawSummary(p *page, sum *invoice.Summary) {
	const labelWidth, valueWidth = pageWidth - 45, 45

	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Wartość netto:", sum.Totals.NetTotal},
		{"Wartość VAT:", sum.Totals.VATTotal},
		{"Wartość brutto:", sum.Totals.GrossTotal},
	}

	p.font("", 10)
	for _, row := range rows {
		p.cell(labelWidth, row.label, "", "R", false, 0)
		p.cell(valueWidth, money(row.value)+" PLN", "", "R", false, 1)
	}
	p.pdf.Ln(4)

	p.font("B", 12)
	p.cell(0, "Do zapłaty: "+money(sum.AmountDue)+" PLN", "", "L", false, 1)
	p.font("", 10)
	p.pdf.MultiCell(0, lineHeight, p.tr("Słownie: "+sum.AmountInWords), "", "L", false)
	p.pdf.Ln(4)
}

func (r *Renderer) drawPayment(p *page, inv *models.Invoice) {
	if inv.Seller.BankAccount == "" {
		return
	}
	p.font("", 10)
	p.cell(0, "Dane do przelewu:", "", "L", false, 1)
	p.cell(0, inv.Seller.BankAccount, "", "L", false, 1)
	p.cell(0, "Termin płatności: "+strconv.Itoa(r.opts.PaymentTermDays)+" dni", "", "L", false, 1)
}

func separator(p *page) {
	y := p.pdf.GetY() + 2
	p.pdf.Line(15, y, 15+pageWidth, y)
	p.pdf.SetY(y + 4)
}

func money(d decimal.Decimal) string {
	return calc.Round2(d).StringFixed(2)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
