package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarview/filter"
	"github.com/s0up4200/sonarview/output"
	"github.com/s0up4200/sonarview/sonarqube"
)

var (
	issueSeverity     string
	issueType         string
	issueStatuses     string
	issueLanguages    string
	issueCreatedAfter string
	issueLimit        int
	issueFilterExpr   string
)

// issuesCmd represents the issues command
var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "List project issues",
	Long: `List the open issues of the configured project.

Server-side filters narrow the query (severity, type, language, creation
date); the --filter flag additionally evaluates an expression against each
returned issue, e.g.:

  sonarview issues --filter 'Severity in ["CRITICAL","BLOCKER"] && !HasTag("wontfix")'`,
	RunE: runIssues,
}

func init() {
	rootCmd.AddCommand(issuesCmd)

	issuesCmd.Flags().StringVar(&issueSeverity, "severity", "", "minimum severity (INFO, MINOR, MAJOR, CRITICAL, BLOCKER)")
	issuesCmd.Flags().StringVar(&issueType, "type", "", "issue type filter (BUG, VULNERABILITY, CODE_SMELL)")
	issuesCmd.Flags().StringVar(&issueStatuses, "status", "", "status filter (default OPEN,CONFIRMED,REOPENED)")
	issuesCmd.Flags().StringVar(&issueLanguages, "language", "", "language key filter, comma-separated")
	issuesCmd.Flags().StringVar(&issueCreatedAfter, "created-after", "", "only issues created on or after this date (YYYY-MM-DD)")
	issuesCmd.Flags().IntVar(&issueLimit, "limit", 0, "maximum number of issues to fetch")
	issuesCmd.Flags().StringVarP(&issueFilterExpr, "filter", "f", "", "client-side filter expression")
}

func runIssues(cmd *cobra.Command, args []string) error {
	var issueFilter *filter.IssueFilter
	if issueFilterExpr != "" {
		var err error
		issueFilter, err = filter.Compile(issueFilterExpr)
		if err != nil {
			return err
		}
	}

	issues, err := client.SearchIssues(cmd.Context(), sonarqube.IssueSearchOptions{
		MinSeverity:  issueSeverity,
		Types:        issueType,
		Statuses:     issueStatuses,
		Languages:    issueLanguages,
		CreatedAfter: issueCreatedAfter,
		Limit:        issueLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch issues: %w", err)
	}

	if issueFilter != nil {
		issues, err = issueFilter.Apply(issues)
		if err != nil {
			return err
		}
	}

	output.PrintIssues(issues, client.ProjectKey(), asJSON)
	return nil
}
