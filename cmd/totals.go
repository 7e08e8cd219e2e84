package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"faktura/internal/invoice"
	"faktura/internal/logger"
)

var totalsCmd = &cobra.Command{
	Use:   "totals [invoice.json]",
	Short: "Compute the totals and amount in words of an invoice",
	Long: `Read an invoice JSON document and print its net, VAT and gross totals,
the amount due and the amount due spelled in Polish.

Every total is rounded to whole grosze (half up). The gross total is summed
from the brutto unit prices and is never corrected to net + VAT; a
difference of more than 0.02 is reported as a warning.

Invoice format:
  {
    "invoiceNumber": "FV/2024/05/001",
    "dateIssued": "2024-05-31",
    "dateSale": "2024-05-31",
    "seller": {"name": "...", "address": "...", "nip": "...", "bankAccount": "..."},
    "buyer": {"name": "...", "address": "...", "nip": "..."},
    "items": [{"description": "...", "quantity": 2, "netPrice": "100.00",
               "bruttoPrice": "123.00", "vatRate": 23}]
  }`,
	Example: `  # Print a summary
  faktura totals faktura.json

  # Print the summary as JSON
  faktura totals faktura.json --json

  # Fail when fields required on a printed invoice are missing
  faktura totals faktura.json --strict`,
	Args: cobra.ExactArgs(1),
	RunE: runTotals,
}

func init() {
	rootCmd.AddCommand(totalsCmd)

	totalsCmd.Flags().Bool("json", false, "Print the summary as JSON")
	totalsCmd.Flags().Bool("strict", false, "Validate the invoice before computing totals")
}

func runTotals(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("totals")

	asJSON, _ := cmd.Flags().GetBool("json")
	strict, _ := cmd.Flags().GetBool("strict")

	inv, err := invoice.LoadInvoiceFile(args[0])
	if err != nil {
		log.Error().
			Err(err).
			Str("file", args[0]).
			Msg("Failed to load invoice")
		return err
	}

	if strict {
		if err := invoice.Validate(inv); err != nil {
			return fmt.Errorf("invoice %s is incomplete: %w", args[0], err)
		}
	}

	summary := invoice.NewService().Summarize(inv)

	log.Info().
		Str("file", args[0]).
		Str("invoice_number", summary.InvoiceNumber).
		Str("gross", summary.Totals.GrossTotal.StringFixed(2)).
		Int("warnings", len(summary.Warnings)).
		Msg("Invoice totals computed")

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, summary)
	}
	printSummary(out, summary)
	return nil
}

func printSummary(w io.Writer, s *invoice.Summary) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Faktura VAT %s\n", s.InvoiceNumber)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Pozycje:         %d\n", s.ItemCount)
	fmt.Fprintf(w, "Wartość netto:   %s PLN\n", s.Totals.NetTotal.StringFixed(2))
	fmt.Fprintf(w, "Wartość VAT:     %s PLN\n", s.Totals.VATTotal.StringFixed(2))
	fmt.Fprintf(w, "Wartość brutto:  %s PLN\n", s.Totals.GrossTotal.StringFixed(2))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Do zapłaty: %s PLN\n", s.AmountDue.StringFixed(2))
	fmt.Fprintf(w, "Słownie: %s\n", s.AmountInWords)

	if len(s.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Uwagi:")
		for _, warning := range s.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
