package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"faktura/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "faktura",
	Short: "Faktura - Polish VAT invoice calculator",
	Long: `Faktura computes the totals of Polish VAT invoices (Faktura VAT),
spells the amount due in Polish words, derives net and gross unit prices,
renders invoices as PDF and keeps an invoice register in Google Sheets.

Invoices are read as JSON documents; see "faktura totals --help" for the format.
The same operations are available over HTTP with "faktura serve".`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Debug().
			Str("version", version).
			Msg("Faktura CLI executed without subcommand")

		_ = cmd.Help()
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
