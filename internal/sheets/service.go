// Package sheets appends processed invoices to an invoice register kept in
// a Google Sheet.
package sheets

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"faktura/internal/calc"
	"faktura/internal/invoice"
	"faktura/internal/logger"
	"faktura/pkg/models"
)

// registerColumns is the header row of the register, A to L.
var registerColumns = []interface{}{
	"Plik", "Numer faktury", "Data wystawienia", "Data sprzedaży", "Sprzedawca", "Nabywca",
	"Netto", "VAT", "Brutto", "Słownie", "Uwagi", "Przetworzono",
}

const lastColumn = "L"

// a1Range qualifies cells with a quoted worksheet name, so names with spaces
// or apostrophes parse.
func a1Range(sheetName, cells string) string {
	return "'" + strings.ReplaceAll(sheetName, "'", "''") + "'!" + cells
}

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// Service handles Google Sheets operations
type Service struct {
	sheetsService *sheets.Service
	spreadsheetID string
	log           zerolog.Logger
}

// Entry is one invoice file handed to the register. Err is set when the file
// could not be loaded or summarized.
type Entry struct {
	File    string
	Invoice *models.Invoice
	Summary *invoice.Summary
	Err     error
}

// RegisterRow represents a row to be written to the sheet
type RegisterRow struct {
	File          string
	InvoiceNumber string
	DateIssued    string
	DateSale      string
	Seller        string
	Buyer         string
	Net           float64
	VAT           float64
	Gross         float64
	AmountInWords string
	Remarks       string
	ProcessedAt   string
}

// NewSheetsService creates a new Google Sheets service
func NewSheetsService(ctx context.Context, sheetURL string) (*Service, error) {
	const op = "NewSheetsService"

	log := logger.WithComponent("sheets")

	spreadsheetID, err := extractSpreadsheetID(sheetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to extract spreadsheet ID: %w", op, err)
	}

	log.Debug().Str("spreadsheet_id", spreadsheetID).Msg("Extracted spreadsheet ID")

	var creds []byte
	if credsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credsFile != "" {
		creds, err = os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read credentials file: %w", op, err)
		}
	} else if credsJSON := os.Getenv("GOOGLE_CREDENTIALS"); credsJSON != "" {
		creds = []byte(credsJSON)
	} else {
		return nil, fmt.Errorf("%s: neither GOOGLE_APPLICATION_CREDENTIALS nor GOOGLE_CREDENTIALS is set", op)
	}

	config, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse credentials: %w", op, err)
	}

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create sheets service: %w", op, err)
	}

	return &Service{
		sheetsService: sheetsService,
		spreadsheetID: spreadsheetID,
		log:           log,
	}, nil
}

// extractSpreadsheetID extracts the spreadsheet ID from a Google Sheets URL
func extractSpreadsheetID(url string) (string, error) {
	matches := spreadsheetIDPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Google Sheets URL format")
	}
	return matches[1], nil
}

// AppendInvoices writes one register row per entry to the given worksheet,
// creating the worksheet and its header row when missing.
func (s *Service) AppendInvoices(ctx context.Context, entries []Entry, sheetName string) error {
	const op = "AppendInvoices"

	s.log.Info().
		Str("sheet", sheetName).
		Int("rows", len(entries)).
		Msg("Writing invoice register rows to Google Sheet")

	if err := s.ensureSheetWithHeaders(ctx, sheetName); err != nil {
		return fmt.Errorf("%s: failed to ensure sheet exists: %w", op, err)
	}

	rows := BuildRows(entries, time.Now())
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Values())
	}

	_, err := s.sheetsService.Spreadsheets.Values.Append(
		s.spreadsheetID,
		a1Range(sheetName, "A:"+lastColumn),
		&sheets.ValueRange{Values: values},
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to append values to sheet: %w", op, err)
	}

	s.log.Info().
		Int("rows_written", len(values)).
		Msg("Successfully wrote invoice register rows")

	return nil
}

// BuildRows converts entries to register rows stamped with processedAt.
func BuildRows(entries []Entry, processedAt time.Time) []RegisterRow {
	stamp := processedAt.Format("02.01.2006 15:04:05")
	rows := make([]RegisterRow, 0, len(entries))

	for _, e := range entries {
		row := RegisterRow{
			File:        e.File,
			ProcessedAt: stamp,
		}

		if e.Err != nil {
			row.Remarks = "Błąd: " + e.Err.Error()
			rows = append(rows, row)
			continue
		}

		if inv := e.Invoice; inv != nil {
			row.InvoiceNumber = inv.InvoiceNumber
			row.DateIssued = inv.DateIssued
			row.DateSale = inv.DateSale
			row.Seller = inv.Seller.Name
			row.Buyer = inv.Buyer.Name
		}

		if sum := e.Summary; sum != nil {
			row.Net = calc.Round2(sum.Totals.NetTotal).InexactFloat64()
			row.VAT = calc.Round2(sum.Totals.VATTotal).InexactFloat64()
			row.Gross = calc.Round2(sum.Totals.GrossTotal).InexactFloat64()
			row.AmountInWords = sum.AmountInWords
			row.Remarks = strings.Join(sum.Warnings, "; ")
		}

		rows = append(rows, row)
	}

	return rows
}

// Values returns the row in column order A to L.
func (r RegisterRow) Values() []interface{} {
	return []interface{}{
		r.File,          // A: Plik
		r.InvoiceNumber, // B: Numer faktury
		r.DateIssued,    // C: Data wystawienia
		r.DateSale,      // D: Data sprzedaży
		r.Seller,        // E: Sprzedawca
		r.Buyer,         // F: Nabywca
		r.Net,           // G: Netto
		r.VAT,           // H: VAT
		r.Gross,         // I: Brutto
		r.AmountInWords, // J: Słownie
		r.Remarks,       // K: Uwagi
		r.ProcessedAt,   // L: Przetworzono
	}
}

// ensureSheetWithHeaders ensures the sheet exists and has proper headers
func (s *Service) ensureSheetWithHeaders(ctx context.Context, sheetName string) error {
	const op = "ensureSheetWithHeaders"

	spreadsheet, err := s.sheetsService.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to get spreadsheet: %w", op, err)
	}

	sheetID, found := findSheet(spreadsheet, sheetName)
	if !found {
		s.log.Info().Str("sheet", sheetName).Msg("Creating new sheet")

		batchUpdateReq := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{
				{AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: sheetName},
				}},
			},
		}

		resp, err := s.sheetsService.Spreadsheets.BatchUpdate(s.spreadsheetID, batchUpdateReq).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("%s: failed to create sheet: %w", op, err)
		}
		sheetID = resp.Replies[0].AddSheet.Properties.SheetId
	}

	headerRange := a1Range(sheetName, "A1:"+lastColumn+"1")
	existing, err := s.ReadRange(ctx, headerRange)
	if err != nil {
		return fmt.Errorf("%s: failed to get headers: %w", op, err)
	}
	if len(existing) > 0 && len(existing[0]) > 0 {
		return nil
	}

	s.log.Info().Str("sheet", sheetName).Msg("Adding headers to sheet")

	_, err = s.sheetsService.Spreadsheets.Values.Update(
		s.spreadsheetID,
		headerRange,
		&sheets.ValueRange{Values: [][]interface{}{registerColumns}},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%s: failed to add headers: %w", op, err)
	}

	if err := s.formatHeaders(ctx, sheetID); err != nil {
		s.log.Warn().Err(err).Msg("Failed to format headers, continuing anyway")
	}

	return nil
}

func findSheet(spreadsheet *sheets.Spreadsheet, title string) (int64, bool) {
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return sheet.Properties.SheetId, true
		}
	}
	return 0, false
}

// formatHeaders makes the header row bold and resizes the columns.
func (s *Service) formatHeaders(ctx context.Context, sheetID int64) error {
	const op = "formatHeaders"

	columns := int64(len(registerColumns))
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   columns,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
						BackgroundColor: &sheets.Color{
							Red:   0.9,
							Green: 0.9,
							Blue:  0.9,
						},
					},
				},
				Fields: "userEnteredFormat(textFormat,backgroundColor)",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   columns,
				},
			},
		},
	}

	batchUpdateReq := &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}
	if _, err := s.sheetsService.Spreadsheets.BatchUpdate(s.spreadsheetID, batchUpdateReq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%s: failed to format headers: %w", op, err)
	}

	return nil
}

// ReadRange reads values from a specified range in the spreadsheet
func (s *Service) ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error) {
	const op = "ReadRange"

	s.log.Debug().
		Str("range", rangeSpec).
		Msg("Reading range from spreadsheet")

	resp, err := s.sheetsService.Spreadsheets.Values.Get(s.spreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read range %s: %w", op, rangeSpec, err)
	}

	s.log.Debug().
		Int("rows", len(resp.Values)).
		Str("range", rangeSpec).
		Msg("Successfully read range from spreadsheet")

	return resp.Values, nil
}
