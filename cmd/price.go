package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"faktura/internal/calc"
	"faktura/internal/invoice"
	"faktura/internal/logger"
	"faktura/pkg/models"
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Derive the net or gross unit price for a VAT rate",
	Long: `Derive the missing unit price of a line item. Given --net the gross
(brutto) price is computed; given --gross the net price is computed. Both are
rounded to whole grosze.

Standard Polish VAT rates are 23, 8, 5 and 0 percent; other rates are accepted.`,
	Example: `  faktura price --net 100 --vat 23
  faktura price --gross 123 --vat 23
  faktura price --gross "61,50" --vat 23`,
	Args: cobra.NoArgs,
	RunE: runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)

	priceCmd.Flags().String("net", "", "Net unit price")
	priceCmd.Flags().String("gross", "", "Gross (brutto) unit price")
	priceCmd.Flags().String("vat", "23", "VAT rate in percent")

	priceCmd.MarkFlagsMutuallyExclusive("net", "gross")
	priceCmd.MarkFlagsOneRequired("net", "gross")
}

func runPrice(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("price")

	netStr, _ := cmd.Flags().GetString("net")
	grossStr, _ := cmd.Flags().GetString("gross")
	vatStr, _ := cmd.Flags().GetString("vat")

	rate, err := calc.ParseAmount(vatStr)
	if err != nil {
		return fmt.Errorf("invalid --vat: %w", err)
	}

	item := models.LineItem{VATRate: rate}
	edited := invoice.FieldNet
	if netStr != "" {
		if item.NetPrice, err = calc.ParseAmount(netStr); err != nil {
			return fmt.Errorf("invalid --net: %w", err)
		}
	} else {
		if item.BruttoPrice, err = calc.ParseAmount(grossStr); err != nil {
			return fmt.Errorf("invalid --gross: %w", err)
		}
		edited = invoice.FieldGross
	}

	item, err = invoice.NewService().DeriveItem(item, edited)
	if err != nil {
		return err
	}

	if !calc.IsStandardVATRate(rate) {
		log.Warn().
			Str("vat_rate", rate.String()).
			Msg("Non-standard VAT rate")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cena netto:  %s PLN\n", calc.Round2(item.NetPrice).StringFixed(2))
	fmt.Fprintf(out, "VAT:         %s%%\n", rate.String())
	fmt.Fprintf(out, "Cena brutto: %s PLN\n", calc.Round2(item.BruttoPrice).StringFixed(2))
	return nil
}
