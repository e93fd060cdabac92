package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarview/output"
)

var projectQuery string

// projectsCmd represents the projects command
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects on the server",
	Long:  `List the projects visible to the configured token, optionally filtered by a search query.`,
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)

	projectsCmd.Flags().StringVarP(&projectQuery, "search", "s", "", "filter projects by name or key")
}

func runProjects(cmd *cobra.Command, args []string) error {
	projects, err := client.SearchProjects(cmd.Context(), projectQuery)
	if err != nil {
		return fmt.Errorf("failed to search projects: %w", err)
	}

	output.PrintProjects(projects, asJSON)
	return nil
}
