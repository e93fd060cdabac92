package sonarqube

import (
	"context"
	"net/url"
	"strconv"
)

// SearchProjects lists the projects on the server, optionally filtered by a
// search query. This is a server-level operation: it ignores the configured
// project key and branch.
func (c *Client) SearchProjects(ctx context.Context, query string) ([]Project, error) {
	base := url.Values{}
	base.Set("qualifiers", "TRK")
	if query != "" {
		base.Set("q", query)
	}

	const endpoint = "/api/components/search"
	return collectPages(ctx, c.logger, endpoint, 0, func(ctx context.Context, page int) ([]Project, int, error) {
		params := cloneValues(base)
		params.Set("p", strconv.Itoa(page))
		params.Set("ps", strconv.Itoa(pageSize))

		var resp projectsResponse
		if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
			return nil, 0, err
		}
		return resp.Components, resp.Paging.Total, nil
	})
}
