package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarview/output"
)

var (
	sourceFrom int
	sourceTo   int
)

// sourceCmd represents the source command
var sourceCmd = &cobra.Command{
	Use:   "source FILE_KEY",
	Short: "Show a file's source code",
	Long: `Print the source of a file component as the server last analyzed it.

The file key is the component key, e.g. my_project:src/main.go.`,
	Args: cobra.ExactArgs(1),
	RunE: runSource,
}

func init() {
	rootCmd.AddCommand(sourceCmd)

	sourceCmd.Flags().IntVar(&sourceFrom, "from", 0, "first line to show (1-based)")
	sourceCmd.Flags().IntVar(&sourceTo, "to", 0, "last line to show")
}

func runSource(cmd *cobra.Command, args []string) error {
	lines, err := client.GetSource(cmd.Context(), args[0], sourceFrom, sourceTo)
	if err != nil {
		return fmt.Errorf("failed to get source: %w", err)
	}

	output.PrintSource(lines, asJSON)
	return nil
}
