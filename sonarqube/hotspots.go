package sonarqube

import (
	"context"
	"net/url"
	"strconv"
)

// DefaultHotspotStatus is the status filter applied when the caller does
// not name one.
const DefaultHotspotStatus = "TO_REVIEW"

// GetHotspots returns the project's security hotspots with the given
// status (default TO_REVIEW), in server order.
func (c *Client) GetHotspots(ctx context.Context, status string) ([]Hotspot, error) {
	project, err := c.requireProject()
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = DefaultHotspotStatus
	}

	base := c.projectParams(url.Values{})
	base.Set("projectKey", project)
	base.Set("status", status)

	const endpoint = "/api/hotspots/search"
	return collectPages(ctx, c.logger, endpoint, 0, func(ctx context.Context, page int) ([]Hotspot, int, error) {
		params := cloneValues(base)
		params.Set("p", strconv.Itoa(page))
		params.Set("ps", strconv.Itoa(pageSize))

		var resp hotspotsResponse
		if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
			return nil, 0, err
		}
		return resp.Hotspots, resp.Paging.Total, nil
	})
}
