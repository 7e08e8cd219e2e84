package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"faktura/internal/config"
	"faktura/internal/invoice"
	"faktura/internal/logger"
	"faktura/internal/sheets"
)

var exportCmd = &cobra.Command{
	Use:   "export [invoice.json|folder]...",
	Short: "Append invoices to the invoice register in Google Sheets",
	Long: `Summarize invoice JSON documents and append one row per invoice to the
invoice register worksheet: file, number, dates, seller, buyer, net, VAT,
gross, amount in words and warnings. Folders are scanned for *.json files.
Files that fail to load are recorded with the error.

The worksheet and its header row are created when missing.

Required environment variables:
  GOOGLE_SHEET_URL - URL of the target spreadsheet
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string

Optional environment variables:
  GOOGLE_SHEET_WORKSHEET - Worksheet name (default: Rejestr faktur)`,
	Example: `  # Append every invoice in a folder
  faktura export ./faktury/2024-05

  # Only print what would be written
  faktura export faktura1.json faktura2.json --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

// exportJob is one invoice file handed to a worker.
type exportJob struct {
	Path  string
	Index int
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("worksheet", "", "Worksheet name (default: GOOGLE_SHEET_WORKSHEET)")
	exportCmd.Flags().Bool("dry-run", false, "Summarize files but don't write to Google Sheet")
	exportCmd.Flags().Int("workers", runtime.NumCPU(), "Number of files processed in parallel")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	worksheet, _ := cmd.Flags().GetString("worksheet")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	workers, _ := cmd.Flags().GetInt("workers")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if worksheet != "" {
		cfg.GoogleSheetWorksheet = worksheet
	}
	if !dryRun {
		if err := cfg.RequireSheets(); err != nil {
			return err
		}
	}

	files, err := collectInvoiceFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no invoice JSON files found")
	}

	log.Info().
		Int("files", len(files)).
		Int("workers", workers).
		Bool("dry_run", dryRun).
		Str("worksheet", cfg.GoogleSheetWorksheet).
		Msg("Starting invoice register export")

	out := cmd.OutOrStdout()
	entries := summarizeInParallel(cmd.Context(), files, workers, out, log)

	failed := 0
	for _, e := range entries {
		if e.Err != nil {
			failed++
		}
	}
	fmt.Fprintf(out, "\nPrzetworzono: %d, błędy: %d\n", len(entries), failed)

	if dryRun {
		for _, row := range sheets.BuildRows(entries, time.Now()) {
			fmt.Fprintf(out, "%s\t%s\t%.2f\t%s\n", row.File, row.InvoiceNumber, row.Gross, row.Remarks)
		}
		return nil
	}

	ctx := cmd.Context()
	svc, err := sheets.NewSheetsService(ctx, cfg.GoogleSheetURL)
	if err != nil {
		return fmt.Errorf("failed to create Google Sheets service: %w", err)
	}
	if err := svc.AppendInvoices(ctx, entries, cfg.GoogleSheetWorksheet); err != nil {
		return fmt.Errorf("failed to write to Google Sheet: %w", err)
	}

	fmt.Fprintf(out, "Arkusz: %s\n", cfg.GoogleSheetWorksheet)
	fmt.Fprintf(out, "Dodano wierszy: %d\n", len(entries))
	return nil
}

// collectInvoiceFiles expands folders to the *.json files they contain.
func collectInvoiceFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("path not found: %s", arg)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", arg, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}

// summarizeInParallel loads and summarizes files using a worker pool. Entries
// keep the order of files.
func summarizeInParallel(ctx context.Context, files []string, numWorkers int, out io.Writer, log zerolog.Logger) []sheets.Entry {
	if numWorkers < 1 {
		numWorkers = 1
	}

	jobs := make(chan exportJob, len(files))
	entries := make([]sheets.Entry, len(files))
	svc := invoice.NewService()

	var (
		processed int
		mu        sync.Mutex
		wg        sync.WaitGroup
	)

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for job := range jobs {
				log.Debug().
					Int("worker", workerID).
					Str("file", job.Path).
					Msg("Worker processing invoice")

				entry := sheets.Entry{File: filepath.Base(job.Path)}
				if err := ctx.Err(); err != nil {
					entry.Err = err
				} else if inv, err := invoice.LoadInvoiceFile(job.Path); err != nil {
					entry.Err = err
				} else {
					entry.Invoice = inv
					entry.Summary = svc.Summarize(inv)
				}
				entries[job.Index] = entry

				mu.Lock()
				processed++
				fmt.Fprintf(out, "[%d/%d] %s - %s\n", processed, len(files), entry.File, entryStatus(entry))
				mu.Unlock()
			}
		}(w)
	}

	for i, path := range files {
		jobs <- exportJob{Path: path, Index: i}
	}
	close(jobs)

	wg.Wait()
	return entries
}

func entryStatus(e sheets.Entry) string {
	switch {
	case e.Err != nil:
		return "BŁĄD (" + e.Err.Error() + ")"
	case len(e.Summary.Warnings) > 0:
		return fmt.Sprintf("%s PLN, uwagi: %s", e.Summary.AmountDue.StringFixed(2), strings.Join(e.Summary.Warnings, "; "))
	default:
		return e.Summary.AmountDue.StringFixed(2) + " PLN"
	}
}
