package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"faktura/internal/calc"
	"faktura/internal/logger"
	"faktura/internal/words"
)

var wordsCmd = &cobra.Command{
	Use:   "words [amount]",
	Short: "Spell a PLN amount in Polish words",
	Long: `Spell an amount below one million PLN the way it appears on the
"Słownie" line of an invoice. Both '.' and ',' are accepted as the decimal
separator. Grosze are rounded half up to whole grosze.`,
	Example: `  faktura words 123.45
  # sto dwadzieścia trzy PLN czterdzieści pięć gr

  faktura words 1001,50
  # jeden tysiąc jeden PLN pięćdziesiąt gr`,
	Args: cobra.ExactArgs(1),
	RunE: runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)
}

func runWords(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("words")

	amount, err := calc.ParseAmount(args[0])
	if err != nil {
		return err
	}
	if err := words.Validate(amount); err != nil {
		log.Warn().
			Err(err).
			Str("amount", amount.String()).
			Msg("Amount cannot be spelled")
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), words.AmountToWords(amount))
	return nil
}
