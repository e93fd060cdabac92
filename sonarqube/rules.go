package sonarqube

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// RuleSearchOptions narrows a rule search. All fields are optional.
type RuleSearchOptions struct {
	// Query matches rule names and keys.
	Query string
	// Language filters by language key (e.g. go, java).
	Language string
	// Severity filters by default severity.
	Severity string
	// Type filters by rule type (BUG, VULNERABILITY, CODE_SMELL,
	// SECURITY_HOTSPOT).
	Type string
	// Status filters by rule status (READY, DEPRECATED, ...).
	Status string
}

// SearchRules lists rules known to the server. Rules are global, so this is
// a server-level operation without branch scoping.
func (c *Client) SearchRules(ctx context.Context, opts RuleSearchOptions) ([]Rule, error) {
	base := url.Values{}
	if opts.Query != "" {
		base.Set("q", opts.Query)
	}
	if opts.Language != "" {
		base.Set("languages", opts.Language)
	}
	if opts.Severity != "" {
		base.Set("severities", strings.ToUpper(opts.Severity))
	}
	if opts.Type != "" {
		base.Set("types", strings.ToUpper(opts.Type))
	}
	if opts.Status != "" {
		base.Set("statuses", strings.ToUpper(opts.Status))
	}

	const endpoint = "/api/rules/search"
	return collectPages(ctx, c.logger, endpoint, 0, func(ctx context.Context, page int) ([]Rule, int, error) {
		params := cloneValues(base)
		params.Set("p", strconv.Itoa(page))
		params.Set("ps", strconv.Itoa(pageSize))

		var resp rulesResponse
		if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
			return nil, 0, err
		}
		return resp.Rules, resp.Total, nil
	})
}
