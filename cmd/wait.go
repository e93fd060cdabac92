package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarview/output"
	"github.com/s0up4200/sonarview/sonarqube"
)

var (
	waitTimeout  time.Duration
	pollInterval time.Duration
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait TASK_ID",
	Short: "Wait for a background task to finish",
	Long: `Poll a Compute Engine task until it succeeds, fails or the timeout expires.

The task ID is printed by the scanner when an analysis is submitted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)

	// Named wait-timeout so it does not shadow the global --timeout
	// (per-request, in seconds).
	waitCmd.Flags().DurationVar(&waitTimeout, "wait-timeout", sonarqube.DefaultWaitTimeout, "how long to wait for the task")
	waitCmd.Flags().DurationVar(&pollInterval, "poll-interval", sonarqube.DefaultPollInterval, "time between status checks")
}

func runWait(cmd *cobra.Command, args []string) error {
	task, err := client.WaitForTask(cmd.Context(), args[0], waitTimeout, pollInterval)
	if err != nil {
		return fmt.Errorf("task did not complete: %w", err)
	}

	output.PrintWaitResult(task, asJSON)
	return nil
}
