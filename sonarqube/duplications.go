package sonarqube

import (
	"context"
	"net/url"
)

// GetDuplications returns the project's files that contain duplicated
// code, in server order. When details is true, each file additionally
// carries its duplication blocks with the counterpart locations, at the
// cost of one extra request per affected file.
func (c *Client) GetDuplications(ctx context.Context, details bool) ([]FileDuplication, error) {
	files, err := c.componentTree(ctx, []string{"duplicated_lines", "duplicated_lines_density", "duplicated_blocks"})
	if err != nil {
		return nil, err
	}

	var dups []FileDuplication
	for _, f := range files {
		lines := measureInt(f.Measures, "duplicated_lines")
		if lines == 0 {
			continue
		}

		dup := FileDuplication{
			File:            extractPath(f.Key, c.config.ProjectKey),
			DuplicatedLines: lines,
			Density:         measureFloat(f.Measures, "duplicated_lines_density", 0),
			componentKey:    f.Key,
		}
		if details {
			blocks, err := c.ShowDuplications(ctx, f.Key)
			if err != nil {
				return nil, err
			}
			dup.Blocks = blocks
		}
		dups = append(dups, dup)
	}
	return dups, nil
}

// ShowDuplications returns the duplication blocks of a single file
// component, each paired with the location it is duplicated in.
func (c *Client) ShowDuplications(ctx context.Context, componentKey string) ([]DuplicationBlock, error) {
	params := c.projectParams(url.Values{})
	params.Set("key", componentKey)

	var resp duplicationsResponse
	if err := c.getJSON(ctx, "/api/duplications/show", params, &resp); err != nil {
		return nil, err
	}
	return extractBlocks(&resp, componentKey), nil
}

// extractBlocks pairs each block of the current file with the peer blocks
// it is duplicated against. Blocks referencing the current file itself are
// skipped.
func extractBlocks(resp *duplicationsResponse, currentKey string) []DuplicationBlock {
	var blocks []DuplicationBlock

	for _, group := range resp.Duplications {
		var current *duplicationRef
		for i, b := range group.Blocks {
			if f, ok := resp.Files[b.FileRef]; ok && f.Key == currentKey {
				current = &group.Blocks[i]
				break
			}
		}
		if current == nil {
			continue
		}

		for _, other := range group.Blocks {
			file, ok := resp.Files[other.FileRef]
			if !ok {
				continue
			}
			if file.Key == currentKey && other.FileRef == current.FileRef {
				continue
			}

			name := file.Name
			if name == "" {
				name = file.Key
			}
			blocks = append(blocks, DuplicationBlock{
				FromLine:         current.From,
				Size:             current.Size,
				DuplicatedIn:     name,
				DuplicatedInLine: other.From,
			})
		}
	}

	return blocks
}
