package sonarqube

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedFetcher simulates a listing endpoint holding a fixed item set.
func pagedFetcher(totalItems int, reportTotal bool, calls *int) fetchPage[int] {
	return func(ctx context.Context, page int) ([]int, int, error) {
		*calls++
		start := (page - 1) * pageSize
		end := start + pageSize
		if end > totalItems {
			end = totalItems
		}

		var items []int
		for i := start; i < end; i++ {
			items = append(items, i)
		}

		total := -1
		if reportTotal {
			total = totalItems
		}
		return items, total, nil
	}
}

func TestCollectPages(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("multiple full pages plus remainder", func(t *testing.T) {
		var calls int
		items, err := collectPages(ctx, logger, "/api/test", 0, pagedFetcher(250, true, &calls))
		require.NoError(t, err)
		assert.Len(t, items, 250)
		assert.Equal(t, 3, calls)

		// Order is preserved across page boundaries.
		assert.Equal(t, 0, items[0])
		assert.Equal(t, 99, items[99])
		assert.Equal(t, 100, items[100])
		assert.Equal(t, 249, items[249])
	})

	t.Run("empty result set stops after one request", func(t *testing.T) {
		var calls int
		items, err := collectPages(ctx, logger, "/api/test", 0, pagedFetcher(0, true, &calls))
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, 1, calls)
	})

	t.Run("exact page boundary with reported total", func(t *testing.T) {
		var calls int
		items, err := collectPages(ctx, logger, "/api/test", 0, pagedFetcher(200, true, &calls))
		require.NoError(t, err)
		assert.Len(t, items, 200)
		assert.Equal(t, 2, calls)
	})

	t.Run("unknown total stops at short page", func(t *testing.T) {
		var calls int
		items, err := collectPages(ctx, logger, "/api/test", 0, pagedFetcher(150, false, &calls))
		require.NoError(t, err)
		assert.Len(t, items, 150)
		assert.Equal(t, 2, calls)
	})

	t.Run("unknown total with exact page boundary needs the empty page", func(t *testing.T) {
		var calls int
		items, err := collectPages(ctx, logger, "/api/test", 0, pagedFetcher(100, false, &calls))
		require.NoError(t, err)
		assert.Len(t, items, 100)
		assert.Equal(t, 2, calls)
	})

	t.Run("limit cuts mid page", func(t *testing.T) {
		var calls int
		items, err := collectPages(ctx, logger, "/api/test", 42, pagedFetcher(250, true, &calls))
		require.NoError(t, err)
		assert.Len(t, items, 42)
		assert.Equal(t, 1, calls)
	})

	t.Run("limit beyond total returns everything", func(t *testing.T) {
		var calls int
		items, err := collectPages(ctx, logger, "/api/test", 500, pagedFetcher(250, true, &calls))
		require.NoError(t, err)
		assert.Len(t, items, 250)
		assert.Equal(t, 3, calls)
	})

	t.Run("truncated at pagination ceiling", func(t *testing.T) {
		var calls int
		items, err := collectPages(ctx, logger, "/api/test", 0, pagedFetcher(maxPages*pageSize+500, true, &calls))
		require.NoError(t, err)
		assert.Len(t, items, maxPages*pageSize)
		assert.Equal(t, maxPages, calls)
	})

	t.Run("page error discards earlier pages", func(t *testing.T) {
		var calls int
		fetch := func(ctx context.Context, page int) ([]int, int, error) {
			calls++
			if page == 2 {
				return nil, 0, &Error{Kind: KindAPI, Status: 500, Message: "boom"}
			}
			items := make([]int, pageSize)
			return items, 300, nil
		}

		items, err := collectPages(ctx, logger, "/api/test", 0, fetch)
		require.Error(t, err)
		assert.Nil(t, items)
		assert.Equal(t, 2, calls)
		assert.True(t, IsKind(err, KindAPI))
	})
}
