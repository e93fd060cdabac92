package sonarqube

import (
	"context"

	"github.com/rs/zerolog"
)

const (
	// pageSize is the fixed number of items requested per page. Keeping it
	// constant keeps page-count bookkeeping predictable and bounds memory.
	pageSize = 100

	// maxPages caps pagination so a runaway or inconsistent server-reported
	// total can never keep the engine looping. Hitting the ceiling is not
	// an error: the aggregate is silently capped at maxPages*pageSize
	// items, with a warning logged.
	maxPages = 100
)

// fetchPage requests one page (1-based) of a listing endpoint. It returns
// the page's items and the server-reported total item count, or -1 when the
// endpoint does not report a total.
type fetchPage[T any] func(ctx context.Context, page int) (items []T, total int, err error)

// collectPages fully materializes a paginated result set, preserving
// server-returned order across pages. Pages are requested strictly in
// sequence. A limit > 0 caps the aggregate at that many items. Any page
// error aborts the whole collection; items from earlier pages are
// discarded.
func collectPages[T any](ctx context.Context, logger zerolog.Logger, endpoint string, limit int, fetch fetchPage[T]) ([]T, error) {
	var all []T

	for page := 1; ; page++ {
		items, total, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if limit > 0 && len(all) >= limit {
			all = all[:limit]
			break
		}
		if total >= 0 && len(all) >= total {
			break
		}
		// Endpoints without a total signal the last page by coming up
		// short.
		if len(items) < pageSize {
			break
		}
		if page >= maxPages {
			logger.Warn().
				Str("endpoint", endpoint).
				Int("items", len(all)).
				Msg("result set truncated at pagination ceiling")
			break
		}
	}

	return all, nil
}
