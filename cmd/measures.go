package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarview/output"
)

var measureMetrics string

// measuresCmd represents the measures command
var measuresCmd = &cobra.Command{
	Use:   "measures",
	Short: "Get project metrics",
	Long:  `Show the current values of the project's metrics (coverage, bugs, code smells, ratings, ...).`,
	RunE:  runMeasures,
}

func init() {
	rootCmd.AddCommand(measuresCmd)

	measuresCmd.Flags().StringVar(&measureMetrics, "metrics", "", "comma-separated metric keys (defaults to a standard set)")
}

// splitMetrics turns a comma-separated flag value into trimmed keys.
func splitMetrics(flagValue string) []string {
	if flagValue == "" {
		return nil
	}
	var keys []string
	for _, key := range strings.Split(flagValue, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func runMeasures(cmd *cobra.Command, args []string) error {
	measures, err := client.GetMeasures(cmd.Context(), splitMetrics(measureMetrics))
	if err != nil {
		return fmt.Errorf("failed to get measures: %w", err)
	}

	output.PrintMeasures(measures, client.ProjectKey(), asJSON)
	return nil
}
