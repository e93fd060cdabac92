package sonarqube

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// defaultIssueStatuses limits issue searches to issues that still need
// attention.
const defaultIssueStatuses = "OPEN,CONFIRMED,REOPENED"

// IssueSearchOptions narrows an issue search. The zero value searches all
// open issues for the configured project.
type IssueSearchOptions struct {
	// MinSeverity keeps only issues at or above this severity
	// (INFO, MINOR, MAJOR, CRITICAL, BLOCKER).
	MinSeverity string
	// Types filters by issue type (BUG, VULNERABILITY, CODE_SMELL).
	Types string
	// Statuses overrides the default OPEN,CONFIRMED,REOPENED filter.
	Statuses string
	// Languages filters by language keys, comma-separated.
	Languages string
	// CreatedAfter keeps issues created at or after this date (YYYY-MM-DD).
	CreatedAfter string
	// Limit caps the number of returned issues. Zero means no cap beyond
	// the pagination ceiling.
	Limit int
}

// severityFilter expands a minimum severity into the comma-separated list
// of all severities at or above it, as expected by the severities query
// parameter. Empty input yields an empty filter.
func severityFilter(minSeverity string) string {
	if minSeverity == "" {
		return ""
	}
	minOrd := SeverityOrdinal(strings.ToUpper(minSeverity))
	var keep []string
	for _, s := range Severities {
		if SeverityOrdinal(s) >= minOrd {
			keep = append(keep, s)
		}
	}
	return strings.Join(keep, ",")
}

// SearchIssues returns the project's issues matching opts, in server order.
// The result is fully materialized across pages; when opts.Limit is set the
// search stops as soon as that many issues have been collected.
func (c *Client) SearchIssues(ctx context.Context, opts IssueSearchOptions) ([]Issue, error) {
	project, err := c.requireProject()
	if err != nil {
		return nil, err
	}

	statuses := opts.Statuses
	if statuses == "" {
		statuses = defaultIssueStatuses
	}

	base := url.Values{}
	base.Set("projectKeys", project)
	base.Set("statuses", statuses)
	if sev := severityFilter(opts.MinSeverity); sev != "" {
		base.Set("severities", sev)
	}
	if opts.Types != "" {
		base.Set("types", opts.Types)
	}
	if opts.Languages != "" {
		base.Set("languages", opts.Languages)
	}
	if opts.CreatedAfter != "" {
		base.Set("createdAfter", opts.CreatedAfter)
	}

	const endpoint = "/api/issues/search"
	return collectPages(ctx, c.logger, endpoint, opts.Limit, func(ctx context.Context, page int) ([]Issue, int, error) {
		params := c.projectParams(cloneValues(base))
		params.Set("p", strconv.Itoa(page))
		params.Set("ps", strconv.Itoa(pageSize))

		var resp issuesResponse
		if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
			return nil, 0, err
		}
		return resp.Issues, resp.Total, nil
	})
}

// cloneValues copies query parameters so per-page mutation does not leak
// between requests.
func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for key, vals := range v {
		out[key] = append([]string(nil), vals...)
	}
	return out
}
