package cmd

import (
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the live portfolio rollup",
	Long: `Replay every open loan, aggregate exposure per bank and print the
portfolio summary as JSON. Reads go through the same summary cache the API
uses, so a freshly cached rollup is served as-is.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	dto, err := svc.portfolio.Summary(cmd.Context(), userID)
	if err != nil {
		return err
	}
	return printJSON(dto)
}
