package sonarqube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMeasures(t *testing.T) {
	t.Run("default metric set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/measures/component", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "my_project", q.Get("component"))
			assert.Contains(t, q.Get("metricKeys"), "ncloc")
			assert.Contains(t, q.Get("metricKeys"), "coverage")
			assert.Contains(t, q.Get("metricKeys"), "sqale_rating")

			var resp measuresResponse
			resp.Component.Key = "my_project"
			resp.Component.Measures = []Measure{
				{Metric: "ncloc", Value: "1234"},
				{Metric: "coverage", Value: "85.5"},
			}
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := newProjectClient(t, server.URL, "my_project")
		measures, err := client.GetMeasures(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, measures, 2)
		assert.Equal(t, "ncloc", measures[0].Metric)
		assert.Equal(t, "1234", measures[0].Value)
	})

	t.Run("explicit metric keys", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "bugs,vulnerabilities", r.URL.Query().Get("metricKeys"))
			json.NewEncoder(w).Encode(measuresResponse{})
		}))
		defer server.Close()

		client := newProjectClient(t, server.URL, "my_project")
		_, err := client.GetMeasures(context.Background(), []string{"bugs", "vulnerabilities"})
		require.NoError(t, err)
	})
}

func TestGetQualityGate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/qualitygates/project_status", r.URL.Path)
		assert.Equal(t, "my_project", r.URL.Query().Get("projectKey"))

		json.NewEncoder(w).Encode(qualityGateResponse{
			ProjectStatus: QualityGate{
				Status: "ERROR",
				Conditions: []GateCondition{
					{
						Status:         "ERROR",
						MetricKey:      "new_coverage",
						Comparator:     "LT",
						ErrorThreshold: "80",
						ActualValue:    "62.5",
					},
					{
						Status:    "OK",
						MetricKey: "new_bugs",
					},
				},
			},
		})
	}))
	defer server.Close()

	client := newProjectClient(t, server.URL, "my_project")
	gate, err := client.GetQualityGate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ERROR", gate.Status)
	require.Len(t, gate.Conditions, 2)
	assert.Equal(t, "new_coverage", gate.Conditions[0].MetricKey)
	assert.Equal(t, "62.5", gate.Conditions[0].ActualValue)
}

func TestGetMeasureHistory(t *testing.T) {
	t.Run("date bounds forwarded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/measures/search_history", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "coverage,bugs,code_smells", q.Get("metrics"))
			assert.Equal(t, "2026-01-01", q.Get("from"))
			assert.Equal(t, "2026-06-30", q.Get("to"))

			json.NewEncoder(w).Encode(measureHistoryResponse{
				Paging: paging{Total: 2},
				Measures: []MeasureHistory{
					{Metric: "coverage", History: []HistoryValue{
						{Date: "2026-02-01", Value: "80.0"},
						{Date: "2026-03-01", Value: "82.5"},
					}},
				},
			})
		}))
		defer server.Close()

		client := newProjectClient(t, server.URL, "my_project")
		history, err := client.GetMeasureHistory(context.Background(), nil, "2026-01-01", "2026-06-30")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "coverage", history[0].Metric)
		assert.Len(t, history[0].History, 2)
	})

	t.Run("pages merged per metric", func(t *testing.T) {
		var requests int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			page, _ := strconv.Atoi(r.URL.Query().Get("p"))

			// The endpoint paginates data points: every page repeats the
			// metric entries with the next slice of values.
			resp := measureHistoryResponse{
				Paging: paging{Total: 150},
				Measures: []MeasureHistory{
					{Metric: "coverage", History: []HistoryValue{{Date: "2026-0" + strconv.Itoa(page) + "-01", Value: "80"}}},
					{Metric: "bugs", History: []HistoryValue{{Date: "2026-0" + strconv.Itoa(page) + "-01", Value: "3"}}},
				},
			}
			json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		client := newProjectClient(t, server.URL, "my_project")
		history, err := client.GetMeasureHistory(context.Background(), []string{"coverage", "bugs"}, "", "")
		require.NoError(t, err)
		assert.Equal(t, 2, requests)

		require.Len(t, history, 2)
		assert.Equal(t, "coverage", history[0].Metric)
		assert.Len(t, history[0].History, 2)
		assert.Equal(t, "2026-01-01", history[0].History[0].Date)
		assert.Equal(t, "2026-02-01", history[0].History[1].Date)
		assert.Equal(t, "bugs", history[1].Metric)
		assert.Len(t, history[1].History, 2)
	})
}

func TestMergeHistory(t *testing.T) {
	first := []MeasureHistory{
		{Metric: "coverage", History: []HistoryValue{{Date: "d1", Value: "1"}}},
	}
	second := []MeasureHistory{
		{Metric: "coverage", History: []HistoryValue{{Date: "d2", Value: "2"}}},
		{Metric: "bugs", History: []HistoryValue{{Date: "d2", Value: "0"}}},
	}

	merged := mergeHistory(first, second)
	require.Len(t, merged, 2)
	assert.Equal(t, "coverage", merged[0].Metric)
	assert.Len(t, merged[0].History, 2)
	assert.Equal(t, "bugs", merged[1].Metric)
	assert.Len(t, merged[1].History, 1)
}
