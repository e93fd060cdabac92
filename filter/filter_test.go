package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/sonarview/sonarqube"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{
			name:       "simple comparison",
			expression: `Severity == "MAJOR"`,
		},
		{
			name:       "boolean combination",
			expression: `Type == "BUG" && Line > 100`,
		},
		{
			name:       "helper function",
			expression: `HasTag("security")`,
		},
		{
			name:       "surrounding whitespace",
			expression: `  Status == "OPEN"  `,
		},
		{
			name:       "empty expression",
			expression: "",
			wantErr:    true,
		},
		{
			name:       "whitespace only",
			expression: "   ",
			wantErr:    true,
		},
		{
			name:       "syntax error",
			expression: `Severity == `,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestMatches(t *testing.T) {
	issue := sonarqube.Issue{
		Key:       "AX1",
		Rule:      "go:S1481",
		Severity:  "CRITICAL",
		Component: "proj:src/main.go",
		Project:   "proj",
		Line:      42,
		Message:   "Remove this unused variable",
		Type:      "CODE_SMELL",
		Status:    "OPEN",
		Tags:      []string{"unused", "clumsy"},
	}

	tests := []struct {
		name       string
		expression string
		expected   bool
	}{
		{"severity match", `Severity == "CRITICAL"`, true},
		{"severity mismatch", `Severity == "INFO"`, false},
		{"rank comparison", `SeverityRank >= 3`, true},
		{"line threshold", `Line > 100`, false},
		{"message contains", `Message contains "unused"`, true},
		{"tag helper hit", `HasTag("clumsy")`, true},
		{"tag helper miss", `HasTag("security")`, false},
		{"tags membership", `"unused" in Tags`, true},
		{"combined", `Type == "CODE_SMELL" && Status == "OPEN" && Line < 50`, true},
		{"undefined variable is falsy", `Assignee == "alice"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			matched, err := f.Matches(issue)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, matched)
		})
	}
}

func TestApply(t *testing.T) {
	issues := []sonarqube.Issue{
		{Key: "A", Severity: "BLOCKER", Type: "BUG"},
		{Key: "B", Severity: "MINOR", Type: "CODE_SMELL"},
		{Key: "C", Severity: "CRITICAL", Type: "BUG"},
	}

	f, err := Compile(`Type == "BUG"`)
	require.NoError(t, err)

	matched, err := f.Apply(issues)
	require.NoError(t, err)
	require.Len(t, matched, 2)

	// Order is preserved.
	assert.Equal(t, "A", matched[0].Key)
	assert.Equal(t, "C", matched[1].Key)
}

func TestExpression(t *testing.T) {
	f, err := Compile(`Line > 0`)
	require.NoError(t, err)
	assert.Equal(t, "Line > 0", f.Expression())
}
