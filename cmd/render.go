package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"faktura/internal/config"
	"faktura/internal/invoice"
	"faktura/internal/logger"
	"faktura/internal/pdf"
)

var renderCmd = &cobra.Command{
	Use:   "render [invoice.json]",
	Short: "Render an invoice as PDF",
	Long: `Validate an invoice JSON document and render it as an A4 Faktura VAT
PDF with the item table, totals, amount in words and payment details.

Polish letters need a UTF-8 TrueType font, set with --font or PDF_FONT_PATH
(e.g. DejaVuSans.ttf). Without one the core Helvetica font is used and
diacritics are dropped.

Environment variables:
  PDF_FONT_PATH     - TrueType font file
  PDF_FONT_FAMILY   - Family name to register the font under (default: DejaVu)
  PAYMENT_TERM_DAYS - Payment term printed on the invoice (default: 14)`,
	Example: `  # Writes Faktura_FV_2024_05_001.pdf
  faktura render faktura.json

  faktura render faktura.json -o out.pdf --payment-days 30 --font /usr/share/fonts/DejaVuSans.ttf`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("output", "o", "", "Output file path (default: Faktura_<number>.pdf)")
	renderCmd.Flags().Int("payment-days", 0, "Payment term in days (default: PAYMENT_TERM_DAYS)")
	renderCmd.Flags().String("font", "", "TrueType font with Polish glyphs (default: PDF_FONT_PATH)")
}

func runRender(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("render")

	outputPath, _ := cmd.Flags().GetString("output")
	paymentDays, _ := cmd.Flags().GetInt("payment-days")
	fontPath, _ := cmd.Flags().GetString("font")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	opts := pdf.Options{
		FontPath:        cfg.PDFFontPath,
		FontFamily:      cfg.PDFFontFamily,
		PaymentTermDays: cfg.PaymentTermDays,
	}
	if fontPath != "" {
		opts.FontPath = fontPath
	}
	if paymentDays > 0 {
		opts.PaymentTermDays = paymentDays
	}

	inv, err := invoice.LoadInvoiceFile(args[0])
	if err != nil {
		return err
	}
	if err := invoice.Validate(inv); err != nil {
		log.Error().
			Err(err).
			Str("file", args[0]).
			Msg("Invoice is incomplete")
		return fmt.Errorf("invoice %s is incomplete: %w", args[0], err)
	}

	if outputPath == "" {
		outputPath = pdf.FileName(inv)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	summary := invoice.NewService().Summarize(inv)
	renderErr := pdf.NewRenderer(opts).Render(f, inv, summary)
	if closeErr := f.Close(); closeErr != nil && renderErr == nil {
		renderErr = fmt.Errorf("failed to close output file: %w", closeErr)
	}
	if renderErr != nil {
		_ = os.Remove(outputPath)
		return renderErr
	}

	log.Info().
		Str("file", args[0]).
		Str("output", outputPath).
		Msg("Invoice rendered")

	fmt.Fprintf(cmd.OutOrStdout(), "Zapisano: %s\n", outputPath)
	for _, warning := range summary.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "Uwaga: %s\n", warning)
	}
	return nil
}
