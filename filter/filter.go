// Package filter compiles expression-language filters and evaluates them
// against SonarQube issues, for client-side narrowing beyond what the
// server's query parameters support.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/sonarview/sonarqube"
)

// CompilationError describes a filter expression that failed to compile.
type CompilationError struct {
	Expression string
	Reason     string
	Err        error
}

// Error implements the error interface.
func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid filter %q: %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid filter %q: %s", e.Expression, e.Reason)
}

// Unwrap returns the underlying compile error.
func (e *CompilationError) Unwrap() error {
	return e.Err
}

// IssueFilter is a compiled boolean expression over issue properties.
type IssueFilter struct {
	expression string
	program    *vm.Program
}

// Compile validates and compiles a filter expression. Expressions see the
// issue's fields (Severity, Type, Status, Rule, Component, Line, Message,
// Tags, ...) plus helper values like SeverityRank and HasTag.
func Compile(expression string) (*IssueFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: "failed to compile", Err: err}
	}

	return &IssueFilter{expression: expression, program: program}, nil
}

// Expression returns the source expression the filter was compiled from.
func (f *IssueFilter) Expression() string {
	return f.expression
}

// Matches evaluates the filter against a single issue.
func (f *IssueFilter) Matches(issue sonarqube.Issue) (bool, error) {
	env := map[string]any{
		"Key":          issue.Key,
		"Rule":         issue.Rule,
		"Severity":     issue.Severity,
		"SeverityRank": sonarqube.SeverityOrdinal(issue.Severity),
		"Component":    issue.Component,
		"Project":      issue.Project,
		"Line":         issue.Line,
		"Message":      issue.Message,
		"Type":         issue.Type,
		"Status":       issue.Status,
		"Tags":         issue.Tags,
		"HasTag": func(tag string) bool {
			return slices.Contains(issue.Tags, tag)
		},
	}

	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", f.expression, err)
	}

	matched, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("filter %q: expression did not evaluate to a boolean", f.expression)
	}
	return matched, nil
}

// Apply returns the issues matching the filter, preserving order.
func (f *IssueFilter) Apply(issues []sonarqube.Issue) ([]sonarqube.Issue, error) {
	var matched []sonarqube.Issue
	for _, issue := range issues {
		ok, err := f.Matches(issue)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, issue)
		}
	}
	return matched, nil
}
