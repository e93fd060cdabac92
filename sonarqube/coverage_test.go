package sonarqube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCoverage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/measures/component_tree", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "my_project", q.Get("component"))
		assert.Equal(t, "FIL", q.Get("qualifiers"))
		assert.Contains(t, q.Get("metricKeys"), "coverage")
		assert.Contains(t, q.Get("metricKeys"), "uncovered_lines")

		json.NewEncoder(w).Encode(componentTreeResponse{
			Paging: &paging{Total: 3},
			Components: []TreeComponent{
				{
					Key: "my_project:src/main.go",
					Measures: []Measure{
						{Metric: "coverage", Value: "75.5"},
						{Metric: "uncovered_lines", Value: "12"},
						{Metric: "lines_to_cover", Value: "49"},
					},
				},
				{
					// Not covered by any test, server reports no value.
					Key: "my_project:src/util.go",
					Measures: []Measure{
						{Metric: "uncovered_lines", Value: "0"},
					},
				},
				{
					Key: "other_key_shape",
					Measures: []Measure{
						{Metric: "coverage", Value: "50"},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := newProjectClient(t, server.URL, "my_project")
	files, err := client.GetCoverage(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 3)

	assert.Equal(t, "src/main.go", files[0].File)
	assert.Equal(t, 75.5, files[0].Coverage)
	assert.Equal(t, 12, files[0].UncoveredLines)
	assert.Equal(t, 49, files[0].LinesToCover)

	// Files without a coverage measure count as fully covered.
	assert.Equal(t, "src/util.go", files[1].File)
	assert.Equal(t, 100.0, files[1].Coverage)

	// Keys without the project prefix are passed through unchanged.
	assert.Equal(t, "other_key_shape", files[2].File)
}

func TestComponentTreeWithoutPaging(t *testing.T) {
	// Some endpoints omit the paging envelope; a short page ends the
	// collection.
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(componentTreeResponse{
			Components: []TreeComponent{{Key: "my_project:a.go"}},
		})
	}))
	defer server.Close()

	client := newProjectClient(t, server.URL, "my_project")
	files, err := client.GetCoverage(context.Background())
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, 1, requests)
}

func TestExtractPath(t *testing.T) {
	assert.Equal(t, "src/main.go", extractPath("proj:src/main.go", "proj"))
	assert.Equal(t, "noprefix", extractPath("noprefix", "proj"))
	assert.Equal(t, "a:b", extractPath("proj:a:b", "proj"))
}

func TestMeasureLookups(t *testing.T) {
	measures := []Measure{
		{Metric: "coverage", Value: "82.5"},
		{Metric: "bugs", Value: "7"},
		{Metric: "broken", Value: "not-a-number"},
	}

	assert.Equal(t, 82.5, measureFloat(measures, "coverage", 0))
	assert.Equal(t, 100.0, measureFloat(measures, "missing", 100.0))
	assert.Equal(t, 0.0, measureFloat(measures, "broken", 0))

	assert.Equal(t, 7, measureInt(measures, "bugs"))
	assert.Equal(t, 0, measureInt(measures, "missing"))
}
