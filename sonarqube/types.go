package sonarqube

import (
	"encoding/json"
	"fmt"
)

// Issue is a single issue from the issues search API.
type Issue struct {
	Key          string     `json:"key"`
	Rule         string     `json:"rule"`
	Severity     string     `json:"severity"`
	Component    string     `json:"component"`
	Project      string     `json:"project"`
	Line         int        `json:"line,omitempty"`
	TextRange    *TextRange `json:"textRange,omitempty"`
	Message      string     `json:"message"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	Resolution   string     `json:"resolution,omitempty"`
	Effort       string     `json:"effort,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	CreationDate string     `json:"creationDate,omitempty"`
}

// TextRange locates an issue within a file.
type TextRange struct {
	StartLine   int `json:"startLine"`
	EndLine     int `json:"endLine"`
	StartOffset int `json:"startOffset,omitempty"`
	EndOffset   int `json:"endOffset,omitempty"`
}

type issuesResponse struct {
	Total  int     `json:"total"`
	Issues []Issue `json:"issues"`
}

// paging is the standard SonarQube paging envelope.
type paging struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
}

// QualityGate is the computed pass/fail verdict for a project.
type QualityGate struct {
	Status     string          `json:"status"`
	Conditions []GateCondition `json:"conditions,omitempty"`
}

// GateCondition is a single metric threshold within a quality gate.
type GateCondition struct {
	Status         string `json:"status"`
	MetricKey      string `json:"metricKey"`
	Comparator     string `json:"comparator,omitempty"`
	ErrorThreshold string `json:"errorThreshold,omitempty"`
	ActualValue    string `json:"actualValue,omitempty"`
}

type qualityGateResponse struct {
	ProjectStatus QualityGate `json:"projectStatus"`
}

// Measure is a single metric value for a component.
type Measure struct {
	Metric string         `json:"metric"`
	Value  string         `json:"value,omitempty"`
	Period *MeasurePeriod `json:"period,omitempty"`
}

// MeasurePeriod carries the new-code-period value of a measure.
type MeasurePeriod struct {
	Value string `json:"value"`
}

type measuresResponse struct {
	Component struct {
		Key      string    `json:"key"`
		Measures []Measure `json:"measures"`
	} `json:"component"`
}

// TreeComponent is an entry from the component tree API, typically a file
// with its requested measures attached.
type TreeComponent struct {
	Key       string    `json:"key"`
	Name      string    `json:"name,omitempty"`
	Path      string    `json:"path,omitempty"`
	Qualifier string    `json:"qualifier,omitempty"`
	Measures  []Measure `json:"measures,omitempty"`
}

type componentTreeResponse struct {
	Paging     *paging         `json:"paging"`
	Components []TreeComponent `json:"components"`
}

// Project is a project listing entry from the components search API.
type Project struct {
	Key              string `json:"key"`
	Name             string `json:"name"`
	Qualifier        string `json:"qualifier,omitempty"`
	Visibility       string `json:"visibility,omitempty"`
	LastAnalysisDate string `json:"lastAnalysisDate,omitempty"`
}

type projectsResponse struct {
	Paging     paging    `json:"paging"`
	Components []Project `json:"components"`
}

// Rule is a rule listing entry from the rules search API.
type Rule struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Severity string `json:"severity,omitempty"`
	Type     string `json:"type,omitempty"`
	Lang     string `json:"lang,omitempty"`
	LangName string `json:"langName,omitempty"`
	Status   string `json:"status,omitempty"`
}

type rulesResponse struct {
	Total int    `json:"total"`
	Rules []Rule `json:"rules"`
}

// MeasureHistory is the full history of one metric.
type MeasureHistory struct {
	Metric  string         `json:"metric"`
	History []HistoryValue `json:"history"`
}

// HistoryValue is one historical data point of a metric.
type HistoryValue struct {
	Date  string `json:"date"`
	Value string `json:"value,omitempty"`
}

type measureHistoryResponse struct {
	Paging   paging           `json:"paging"`
	Measures []MeasureHistory `json:"measures"`
}

// Hotspot is a security hotspot from the hotspots search API.
type Hotspot struct {
	Key                      string     `json:"key"`
	Component                string     `json:"component"`
	Project                  string     `json:"project"`
	SecurityCategory         string     `json:"securityCategory"`
	VulnerabilityProbability string     `json:"vulnerabilityProbability"`
	Status                   string     `json:"status"`
	Line                     int        `json:"line,omitempty"`
	Message                  string     `json:"message"`
	RuleKey                  string     `json:"ruleKey"`
	TextRange                *TextRange `json:"textRange,omitempty"`
}

type hotspotsResponse struct {
	Paging   paging    `json:"paging"`
	Hotspots []Hotspot `json:"hotspots"`
}

// SourceLine is a single line of source code.
type SourceLine struct {
	Line int    `json:"line"`
	Code string `json:"code"`
}

// UnmarshalJSON decodes the [lineNumber, "code"] pairs the sources/show
// endpoint returns.
func (s *SourceLine) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("source line: expected [line, code] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &s.Line); err != nil {
		return fmt.Errorf("source line number: %w", err)
	}
	if err := json.Unmarshal(pair[1], &s.Code); err != nil {
		return fmt.Errorf("source line code: %w", err)
	}
	return nil
}

type sourcesShowResponse struct {
	Sources []SourceLine `json:"sources"`
}

// AnalysisTask describes a background compute-engine task.
type AnalysisTask struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	SubmittedAt  string `json:"submittedAt"`
	ExecutedAt   string `json:"executedAt,omitempty"`
	AnalysisID   string `json:"analysisId,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

type analysisTaskResponse struct {
	Task AnalysisTask `json:"task"`
}

// Task status lifecycle: TaskPending and TaskInProgress are non-terminal;
// the remaining states end a WaitForTask poll loop.
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskSuccess    = "SUCCESS"
	TaskFailed     = "FAILED"
	TaskCanceled   = "CANCELED"
)

// Severity levels in ascending order of importance.
var Severities = []string{"INFO", "MINOR", "MAJOR", "CRITICAL", "BLOCKER"}

// SeverityOrdinal returns the rank of a severity level, higher meaning more
// severe. Unknown levels rank lowest.
func SeverityOrdinal(severity string) int {
	for i, s := range Severities {
		if s == severity {
			return i
		}
	}
	return 0
}

// FileCoverage summarizes test coverage for one file.
type FileCoverage struct {
	File           string  `json:"file"`
	Coverage       float64 `json:"coverage_percent"`
	UncoveredLines int     `json:"uncovered_lines"`
	LinesToCover   int     `json:"lines_to_cover"`
}

// FileDuplication summarizes duplicated code in one file.
type FileDuplication struct {
	File            string             `json:"file"`
	DuplicatedLines int                `json:"duplicated_lines"`
	Density         float64            `json:"duplicated_density"`
	Blocks          []DuplicationBlock `json:"blocks,omitempty"`

	// componentKey is the key the server reported the file under. File is
	// derived from it and is not always reversible.
	componentKey string
}

// ComponentKey returns the component key the duplication figures were
// reported under, as expected by ShowDuplications.
func (d FileDuplication) ComponentKey() string {
	return d.componentKey
}

// DuplicationBlock is one duplicated region and its counterpart location.
type DuplicationBlock struct {
	FromLine         int    `json:"from_line"`
	Size             int    `json:"size"`
	DuplicatedIn     string `json:"duplicated_in"`
	DuplicatedInLine int    `json:"duplicated_in_line"`
}

type duplicationsResponse struct {
	Duplications []duplicationGroup         `json:"duplications"`
	Files        map[string]duplicationFile `json:"files"`
}

type duplicationGroup struct {
	Blocks []duplicationRef `json:"blocks"`
}

type duplicationRef struct {
	FileRef string `json:"_ref"`
	From    int    `json:"from"`
	Size    int    `json:"size"`
}

type duplicationFile struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}
