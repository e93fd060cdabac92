package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarview/output"
)

var failOnError bool

// qualityGateCmd represents the quality-gate command
var qualityGateCmd = &cobra.Command{
	Use:   "quality-gate",
	Short: "Check quality gate status",
	Long:  `Show the project's quality gate verdict and the conditions behind it.`,
	RunE:  runQualityGate,
}

func init() {
	rootCmd.AddCommand(qualityGateCmd)

	qualityGateCmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "exit with code 1 if the quality gate is not OK")
}

func runQualityGate(cmd *cobra.Command, args []string) error {
	gate, err := client.GetQualityGate(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get quality gate: %w", err)
	}

	output.PrintQualityGate(gate, client.ProjectKey(), asJSON)

	if failOnError && gate.Status != "OK" {
		return fmt.Errorf("quality gate status is %s", gate.Status)
	}
	return nil
}
