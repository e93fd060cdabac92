package sonarqube

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// GetSource returns the source code of a file component. When a line range
// is given (from/to, 1-based, zero meaning unset) it uses the sources/show
// endpoint; otherwise the whole file is fetched raw and split into lines.
func (c *Client) GetSource(ctx context.Context, fileKey string, from, to int) ([]SourceLine, error) {
	if fileKey == "" {
		return nil, configError("file key is required")
	}

	if from > 0 || to > 0 {
		return c.showSource(ctx, fileKey, from, to)
	}
	return c.rawSource(ctx, fileKey)
}

func (c *Client) showSource(ctx context.Context, fileKey string, from, to int) ([]SourceLine, error) {
	params := c.projectParams(url.Values{})
	params.Set("key", fileKey)
	if from > 0 {
		params.Set("from", strconv.Itoa(from))
	}
	if to > 0 {
		params.Set("to", strconv.Itoa(to))
	}

	var resp sourcesShowResponse
	if err := c.getJSON(ctx, "/api/sources/show", params, &resp); err != nil {
		return nil, err
	}
	return resp.Sources, nil
}

func (c *Client) rawSource(ctx context.Context, fileKey string) ([]SourceLine, error) {
	params := c.projectParams(url.Values{})
	params.Set("key", fileKey)

	body, err := c.get(ctx, "/api/sources/raw", params)
	if err != nil {
		return nil, err
	}

	raw := strings.TrimRight(string(body), "\n")
	if raw == "" {
		return nil, nil
	}

	var lines []SourceLine
	for i, code := range strings.Split(raw, "\n") {
		lines = append(lines, SourceLine{Line: i + 1, Code: code})
	}
	return lines, nil
}
