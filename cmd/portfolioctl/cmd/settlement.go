package cmd

import (
	"github.com/spf13/cobra"
)

var settlementCmd = &cobra.Command{
	Use:   "settlement <loan-id>",
	Short: "Print a loan's settlement statement",
	Long: `Replay the loan's ledger as of now and print the settlement statement:
progress percentages, remaining balances by bucket and lifetime totals.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettlement,
}

func init() {
	rootCmd.AddCommand(settlementCmd)
}

func runSettlement(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	dto, err := svc.settlement.Statement(cmd.Context(), userID, args[0])
	if err != nil {
		return err
	}
	return printJSON(dto)
}
