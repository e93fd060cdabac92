package sonarqube

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// componentTree pages through the file-level component tree of the project
// with the given metrics attached.
func (c *Client) componentTree(ctx context.Context, metrics []string) ([]TreeComponent, error) {
	project, err := c.requireProject()
	if err != nil {
		return nil, err
	}

	base := c.projectParams(url.Values{})
	base.Set("component", project)
	base.Set("metricKeys", strings.Join(metrics, ","))
	base.Set("qualifiers", "FIL")

	const endpoint = "/api/measures/component_tree"
	return collectPages(ctx, c.logger, endpoint, 0, func(ctx context.Context, page int) ([]TreeComponent, int, error) {
		params := cloneValues(base)
		params.Set("p", strconv.Itoa(page))
		params.Set("ps", strconv.Itoa(pageSize))

		var resp componentTreeResponse
		if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
			return nil, 0, err
		}

		total := -1
		if resp.Paging != nil {
			total = resp.Paging.Total
		}
		return resp.Components, total, nil
	})
}

// GetCoverage returns per-file coverage figures for the project, in server
// order. Files the server reports without a coverage value count as fully
// covered.
func (c *Client) GetCoverage(ctx context.Context) ([]FileCoverage, error) {
	files, err := c.componentTree(ctx, []string{"coverage", "uncovered_lines", "lines_to_cover"})
	if err != nil {
		return nil, err
	}

	coverage := make([]FileCoverage, 0, len(files))
	for _, f := range files {
		coverage = append(coverage, FileCoverage{
			File:           extractPath(f.Key, c.config.ProjectKey),
			Coverage:       measureFloat(f.Measures, "coverage", 100.0),
			UncoveredLines: measureInt(f.Measures, "uncovered_lines"),
			LinesToCover:   measureInt(f.Measures, "lines_to_cover"),
		})
	}
	return coverage, nil
}

// extractPath strips the `project:` prefix from a component key, leaving
// the file path.
func extractPath(component, projectKey string) string {
	if path, ok := strings.CutPrefix(component, projectKey+":"); ok {
		return path
	}
	return component
}

// measureFloat looks up a metric value as float64, returning fallback when
// the metric is absent or unparsable.
func measureFloat(measures []Measure, metric string, fallback float64) float64 {
	for _, m := range measures {
		if m.Metric == metric && m.Value != "" {
			if v, err := strconv.ParseFloat(m.Value, 64); err == nil {
				return v
			}
		}
	}
	return fallback
}

// measureInt looks up a metric value as int, returning zero when absent.
func measureInt(measures []Measure, metric string) int {
	for _, m := range measures {
		if m.Metric == metric && m.Value != "" {
			if v, err := strconv.Atoi(m.Value); err == nil {
				return v
			}
		}
	}
	return 0
}
