package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"faktura/internal/calc"
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [raw]",
	Short: "Clean raw numeric input the way invoice form fields do",
	Long: `Drop a run of leading zeros followed by another digit, then remove
every character other than digits, '.' and ','. The result may still be an
invalid number, e.g. "1.2.3".`,
	Example: `  faktura sanitize "007,50 zł"
  # 7,50`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), calc.FormatNumberInput(args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sanitizeCmd)
}
