// Package output renders command results as human-readable tables or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/s0up4200/sonarview/sonarqube"
)

// PrintJSON writes any value as indented JSON to stdout.
func PrintJSON(value any) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to serialize JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// PrintHealth formats the health check result.
func PrintHealth(status, url string, asJSON bool) {
	if asJSON {
		PrintJSON(map[string]any{
			"url":     url,
			"status":  status,
			"healthy": status == "UP",
		})
		return
	}

	icon := "FAIL"
	if status == "UP" {
		icon = "OK"
	}
	fmt.Printf("[%s] SonarQube at %s - status: %s\n", icon, url, status)
}

// PrintQualityGate formats a quality gate verdict with its conditions.
func PrintQualityGate(gate *sonarqube.QualityGate, project string, asJSON bool) {
	if asJSON {
		PrintJSON(gate)
		return
	}

	icon := "FAILED"
	switch gate.Status {
	case "OK":
		icon = "PASSED"
	case "WARN":
		icon = "WARNING"
	}
	fmt.Printf("Quality Gate: [%s] %s  (project: %s)\n", icon, gate.Status, project)

	if len(gate.Conditions) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %-30s %-10s %-10s Threshold\n", "Metric", "Status", "Value")
	fmt.Println("  " + strings.Repeat("-", 70))
	for _, cond := range gate.Conditions {
		value := orDash(cond.ActualValue)
		threshold := orDash(cond.ErrorThreshold)
		fmt.Printf("  %-30s %-10s %-10s %s %s\n", cond.MetricKey, cond.Status, value, cond.Comparator, threshold)
	}
}

// PrintIssues formats an issue listing.
func PrintIssues(issues []sonarqube.Issue, project string, asJSON bool) {
	if asJSON {
		PrintJSON(issues)
		return
	}

	fmt.Printf("%d issues found (project: %s)\n", len(issues), project)
	if len(issues) == 0 {
		return
	}

	fmt.Println()
	for _, issue := range issues {
		line := issue.Line
		if line == 0 && issue.TextRange != nil {
			line = issue.TextRange.StartLine
		}
		lineStr := ""
		if line > 0 {
			lineStr = fmt.Sprintf(":%d", line)
		}

		fmt.Printf("  [%-8s] [%-8s] %s%s\n", issue.Severity, issue.Type, componentFile(issue.Component), lineStr)
		fmt.Printf("           %s\n", issue.Message)
		if len(issue.Tags) > 0 {
			fmt.Printf("           tags: %s\n", strings.Join(issue.Tags, ", "))
		}
		fmt.Println()
	}
}

// PrintMeasures formats current metric values.
func PrintMeasures(measures []sonarqube.Measure, project string, asJSON bool) {
	if asJSON {
		PrintJSON(measures)
		return
	}

	fmt.Printf("Measures for: %s\n", project)
	fmt.Println()
	fmt.Printf("  %-35s Value\n", "Metric")
	fmt.Println("  " + strings.Repeat("-", 50))
	for _, m := range measures {
		fmt.Printf("  %-35s %s\n", m.Metric, orDash(m.Value))
	}
}

// PrintCoverage formats per-file coverage figures.
func PrintCoverage(files []sonarqube.FileCoverage, project string, asJSON bool) {
	if asJSON {
		PrintJSON(files)
		return
	}

	fmt.Printf("%d files with coverage data (project: %s)\n", len(files), project)
	if len(files) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-50s %8s %10s %10s\n", "File", "Coverage", "Uncovered", "Lines")
	fmt.Println("  " + strings.Repeat("-", 82))
	for _, f := range files {
		fmt.Printf("  %-50s %7.1f%% %10d %10d\n", f.File, f.Coverage, f.UncoveredLines, f.LinesToCover)
	}
}

// PrintDuplications formats per-file duplication figures, optionally with
// block details.
func PrintDuplications(files []sonarqube.FileDuplication, project string, asJSON, details bool) {
	if asJSON {
		PrintJSON(files)
		return
	}

	fmt.Printf("%d files with duplications (project: %s)\n", len(files), project)
	if len(files) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-50s %8s %10s\n", "File", "Lines", "Density")
	fmt.Println("  " + strings.Repeat("-", 72))
	for _, f := range files {
		fmt.Printf("  %-50s %8d %9.1f%%\n", f.File, f.DuplicatedLines, f.Density)
		if details {
			for _, block := range f.Blocks {
				fmt.Printf("    L%d-%d duplicated in %s L%d\n",
					block.FromLine, block.FromLine+block.Size, block.DuplicatedIn, block.DuplicatedInLine)
			}
		}
	}
}

// PrintHotspots formats a security hotspot listing.
func PrintHotspots(hotspots []sonarqube.Hotspot, project string, asJSON bool) {
	if asJSON {
		PrintJSON(hotspots)
		return
	}

	fmt.Printf("%d security hotspots (project: %s)\n", len(hotspots), project)
	if len(hotspots) == 0 {
		return
	}

	fmt.Println()
	for _, hs := range hotspots {
		lineStr := ""
		if hs.Line > 0 {
			lineStr = fmt.Sprintf(":%d", hs.Line)
		}
		fmt.Printf("  [%-6s] [%-12s] %s%s\n", hs.VulnerabilityProbability, hs.SecurityCategory, componentFile(hs.Component), lineStr)
		fmt.Printf("           %s\n", hs.Message)
		fmt.Printf("           rule: %s\n", hs.RuleKey)
		fmt.Println()
	}
}

// PrintProjects formats a project listing.
func PrintProjects(projects []sonarqube.Project, asJSON bool) {
	if asJSON {
		PrintJSON(projects)
		return
	}

	fmt.Printf("%d projects found\n", len(projects))
	if len(projects) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-40s %-40s %-10s Last Analysis\n", "Key", "Name", "Visibility")
	fmt.Println("  " + strings.Repeat("-", 105))
	for _, p := range projects {
		fmt.Printf("  %-40s %-40s %-10s %s\n", p.Key, p.Name, orDash(p.Visibility), orDash(p.LastAnalysisDate))
	}
}

// PrintHistory formats metric history tables.
func PrintHistory(measures []sonarqube.MeasureHistory, project string, asJSON bool) {
	if asJSON {
		PrintJSON(measures)
		return
	}

	fmt.Printf("Measures history for: %s\n", project)
	if len(measures) == 0 {
		fmt.Println("  No history data found.")
		return
	}

	for _, measure := range measures {
		fmt.Println()
		fmt.Printf("  Metric: %s\n", measure.Metric)
		fmt.Printf("  %-25s Value\n", "Date")
		fmt.Println("  " + strings.Repeat("-", 40))
		for _, point := range measure.History {
			fmt.Printf("  %-25s %s\n", point.Date, orDash(point.Value))
		}
	}
}

// PrintRules formats a rule listing.
func PrintRules(rules []sonarqube.Rule, asJSON bool) {
	if asJSON {
		PrintJSON(rules)
		return
	}

	fmt.Printf("%d rules found\n", len(rules))
	if len(rules) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("  %-40s %-35s %-10s %-15s Language\n", "Key", "Name", "Severity", "Type")
	fmt.Println("  " + strings.Repeat("-", 110))
	for _, r := range rules {
		lang := r.LangName
		if lang == "" {
			lang = r.Lang
		}
		name := r.Name
		if len(name) > 33 {
			name = name[:30] + "..."
		}
		fmt.Printf("  %-40s %-35s %-10s %-15s %s\n", r.Key, name, orDash(r.Severity), orDash(r.Type), orDash(lang))
	}
}

// PrintSource formats source code lines.
func PrintSource(lines []sonarqube.SourceLine, asJSON bool) {
	if asJSON {
		PrintJSON(lines)
		return
	}

	for _, line := range lines {
		fmt.Printf("%6d | %s\n", line.Line, line.Code)
	}
}

// PrintWaitResult formats the outcome of waiting for an analysis task.
func PrintWaitResult(task *sonarqube.AnalysisTask, asJSON bool) {
	if asJSON {
		PrintJSON(task)
		return
	}

	fmt.Printf("Analysis task: %s\n", task.ID)
	fmt.Printf("  Status:      %s\n", task.Status)
	fmt.Printf("  Submitted:   %s\n", task.SubmittedAt)
	if task.ExecutedAt != "" {
		fmt.Printf("  Completed:   %s\n", task.ExecutedAt)
	}
	if task.AnalysisID != "" {
		fmt.Printf("  Analysis ID: %s\n", task.AnalysisID)
	}
}

// componentFile strips the project prefix from a component key.
func componentFile(component string) string {
	if _, file, ok := strings.Cut(component, ":"); ok {
		return file
	}
	return component
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
