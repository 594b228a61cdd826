package cmd

import (
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Take or list exposure snapshots",
	Long: `Materialize the current exposure as history rows, or list rows taken
earlier. A take writes one whole-portfolio row plus one row per bank; list
returns newest first.

Examples:
  portfolioctl --user <hex-id> snapshot take
  portfolioctl --user <hex-id> snapshot list --limit 10
  portfolioctl --user <hex-id> snapshot list --bank <bank-id>`,
}

var snapshotTakeCmd = &cobra.Command{
	Use:   "take",
	Short: "Materialize the current exposure as snapshot rows",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotTake,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotList,
}

var (
	snapshotBankID string
	snapshotLimit  int
)

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotTakeCmd)
	snapshotCmd.AddCommand(snapshotListCmd)

	snapshotListCmd.Flags().StringVar(&snapshotBankID, "bank", "", "only rows for this bank id")
	snapshotListCmd.Flags().IntVar(&snapshotLimit, "limit", 0, "max rows to return (0 = all)")
}

func runSnapshotTake(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	rows, err := svc.portfolio.TakeSnapshot(cmd.Context(), userID)
	if err != nil {
		return err
	}
	return printJSON(rows)
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	svc, err := openServices()
	if err != nil {
		return err
	}
	rows, err := svc.portfolio.ListSnapshots(cmd.Context(), userID, snapshotBankID, snapshotLimit)
	if err != nil {
		return err
	}
	return printJSON(rows)
}
