package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarview/output"
	"github.com/s0up4200/sonarview/sonarqube"
)

var (
	minCoverage  float64
	coverageSort string
)

// coverageCmd represents the coverage command
var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Show per-file coverage",
	Long:  `List test coverage per file. Use --min-coverage to only show files below a threshold.`,
	RunE:  runCoverage,
}

func init() {
	rootCmd.AddCommand(coverageCmd)

	coverageCmd.Flags().Float64Var(&minCoverage, "min-coverage", 0, "only show files with coverage below this percentage")
	coverageCmd.Flags().StringVar(&coverageSort, "sort", "coverage", "sort order: coverage, uncovered or file")
}

func runCoverage(cmd *cobra.Command, args []string) error {
	files, err := client.GetCoverage(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get coverage: %w", err)
	}

	if minCoverage > 0 {
		filtered := make([]sonarqube.FileCoverage, 0, len(files))
		for _, f := range files {
			if f.Coverage < minCoverage {
				filtered = append(filtered, f)
			}
		}
		files = filtered
	}

	switch coverageSort {
	case "coverage":
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].Coverage < files[j].Coverage
		})
	case "uncovered":
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].UncoveredLines > files[j].UncoveredLines
		})
	case "file":
		sort.SliceStable(files, func(i, j int) bool {
			return files[i].File < files[j].File
		})
	default:
		return fmt.Errorf("invalid sort order %q: expected coverage, uncovered or file", coverageSort)
	}

	output.PrintCoverage(files, client.ProjectKey(), asJSON)
	return nil
}
