package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sonarview/output"
	"github.com/s0up4200/sonarview/sonarqube"
)

var (
	ruleQuery    string
	ruleLanguage string
	ruleSeverity string
	ruleType     string
	ruleStatus   string
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Search analysis rules",
	Long:  `Search the server's rule repository by text, language, severity, type or status.`,
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVarP(&ruleQuery, "query", "q", "", "full-text search over rule names and keys")
	rulesCmd.Flags().StringVar(&ruleLanguage, "language", "", "rule language (go, java, ...)")
	rulesCmd.Flags().StringVar(&ruleSeverity, "severity", "", "rule severity (INFO, MINOR, MAJOR, CRITICAL, BLOCKER)")
	rulesCmd.Flags().StringVar(&ruleType, "type", "", "rule type (BUG, VULNERABILITY, CODE_SMELL, SECURITY_HOTSPOT)")
	rulesCmd.Flags().StringVar(&ruleStatus, "status", "", "rule status (READY, DEPRECATED, REMOVED)")
}

func runRules(cmd *cobra.Command, args []string) error {
	rules, err := client.SearchRules(cmd.Context(), sonarqube.RuleSearchOptions{
		Query:    ruleQuery,
		Language: ruleLanguage,
		Severity: ruleSeverity,
		Type:     ruleType,
		Status:   ruleStatus,
	})
	if err != nil {
		return fmt.Errorf("failed to search rules: %w", err)
	}

	output.PrintRules(rules, asJSON)
	return nil
}
