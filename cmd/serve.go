package cmd

import (
	"github.com/spf13/cobra"

	"faktura/internal/config"
	"faktura/internal/handler"
	"faktura/internal/invoice"
	"faktura/internal/logger"
	"faktura/internal/pdf"
	"faktura/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the invoice calculator over HTTP",
	Long: `Start a JSON HTTP API exposing the invoice operations:

  GET  /health
  POST /api/v1/totals            {"items": [...]}
  GET  /api/v1/words?amount=123.45
  POST /api/v1/items/derive      {"item": {...}, "edited": "netPrice|bruttoPrice|vatRate"}
  POST /api/v1/number-input      {"raw": "007,50"}
  POST /api/v1/invoices/summary  invoice JSON
  POST /api/v1/invoices/pdf      invoice JSON, returns application/pdf

The server stops gracefully on SIGINT or SIGTERM.

Environment variables:
  PORT               - Listen port (default: 8080)
  HTTP_READ_TIMEOUT  - e.g. 15s
  HTTP_WRITE_TIMEOUT - e.g. 30s`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Listen port (default: PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}

	renderer := pdf.NewRenderer(pdf.Options{
		FontPath:        cfg.PDFFontPath,
		FontFamily:      cfg.PDFFontFamily,
		PaymentTermDays: cfg.PaymentTermDays,
	})
	srv := server.NewServer(cfg, handler.NewInvoiceHandler(invoice.NewService(), renderer))

	log.Info().
		Int("port", cfg.Port).
		Msg("Starting invoice API")

	return srv.Run(cmd.Context())
}
