package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarview/output"
)

var (
	historyMetrics string
	historyFrom    string
	historyTo      string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Get metric history",
	Long:  `Show historical data points for the project's metrics.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyMetrics, "metrics", "", "comma-separated metric keys (default coverage,bugs,code_smells)")
	historyCmd.Flags().StringVar(&historyFrom, "from", "", "start date (YYYY-MM-DD)")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "end date (YYYY-MM-DD)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	history, err := client.GetMeasureHistory(cmd.Context(), splitMetrics(historyMetrics), historyFrom, historyTo)
	if err != nil {
		return fmt.Errorf("failed to fetch measure history: %w", err)
	}

	output.PrintHistory(history, client.ProjectKey(), asJSON)
	return nil
}
