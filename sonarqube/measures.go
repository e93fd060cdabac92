package sonarqube

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// DefaultMetrics are the metric keys fetched when the caller does not name
// any.
var DefaultMetrics = []string{
	"ncloc",
	"coverage",
	"duplicated_lines_density",
	"bugs",
	"vulnerabilities",
	"code_smells",
	"sqale_debt_ratio",
	"reliability_rating",
	"security_rating",
	"sqale_rating",
}

// GetMeasures returns the current values of the given metrics for the
// configured project. An empty metrics list fetches DefaultMetrics.
func (c *Client) GetMeasures(ctx context.Context, metrics []string) ([]Measure, error) {
	project, err := c.requireProject()
	if err != nil {
		return nil, err
	}

	if len(metrics) == 0 {
		metrics = DefaultMetrics
	}

	params := c.projectParams(url.Values{})
	params.Set("component", project)
	params.Set("metricKeys", strings.Join(metrics, ","))

	var resp measuresResponse
	if err := c.getJSON(ctx, "/api/measures/component", params, &resp); err != nil {
		return nil, err
	}
	return resp.Component.Measures, nil
}

// GetQualityGate returns the project's quality gate verdict and its
// conditions.
func (c *Client) GetQualityGate(ctx context.Context) (*QualityGate, error) {
	project, err := c.requireProject()
	if err != nil {
		return nil, err
	}

	params := c.projectParams(url.Values{})
	params.Set("projectKey", project)

	var resp qualityGateResponse
	if err := c.getJSON(ctx, "/api/qualitygates/project_status", params, &resp); err != nil {
		return nil, err
	}
	return &resp.ProjectStatus, nil
}

// GetMeasureHistory returns historical data points for the given metrics,
// optionally bounded by from/to dates (YYYY-MM-DD). The history endpoint
// paginates data points rather than metrics: every page repeats the metric
// entries with the next slice of values, so pages are merged per metric
// here instead of concatenated.
func (c *Client) GetMeasureHistory(ctx context.Context, metrics []string, from, to string) ([]MeasureHistory, error) {
	project, err := c.requireProject()
	if err != nil {
		return nil, err
	}

	if len(metrics) == 0 {
		metrics = []string{"coverage", "bugs", "code_smells"}
	}

	base := c.projectParams(url.Values{})
	base.Set("component", project)
	base.Set("metrics", strings.Join(metrics, ","))
	if from != "" {
		base.Set("from", from)
	}
	if to != "" {
		base.Set("to", to)
	}

	var all []MeasureHistory
	for page := 1; ; page++ {
		params := cloneValues(base)
		params.Set("p", strconv.Itoa(page))
		params.Set("ps", strconv.Itoa(pageSize))

		var resp measureHistoryResponse
		if err := c.getJSON(ctx, "/api/measures/search_history", params, &resp); err != nil {
			return nil, err
		}

		all = mergeHistory(all, resp.Measures)

		// The reported total counts data points, pageSize bounds data
		// points per metric per page.
		if page*pageSize >= resp.Paging.Total {
			break
		}
		if page >= maxPages {
			c.logger.Warn().
				Str("endpoint", "/api/measures/search_history").
				Msg("measure history truncated at pagination ceiling")
			break
		}
	}

	return all, nil
}

// mergeHistory appends each metric's new history values onto the already
// collected ones, keeping first-seen metric order.
func mergeHistory(all, page []MeasureHistory) []MeasureHistory {
	if len(all) == 0 {
		return page
	}
	for _, entry := range page {
		merged := false
		for i := range all {
			if all[i].Metric == entry.Metric {
				all[i].History = append(all[i].History, entry.History...)
				merged = true
				break
			}
		}
		if !merged {
			all = append(all, entry)
		}
	}
	return all
}
