package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitKeepsConfiguredRequestTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ce/task", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"task": map[string]string{
				"id":          "task-1",
				"status":      "SUCCESS",
				"submittedAt": "2026-08-01T10:00:00+0000",
			},
		})
	}))
	defer server.Close()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf("server:\n  url: %s\n  timeout: 60\n", server.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	rootCmd.SetArgs([]string{
		"wait", "task-1",
		"--config", cfgPath,
		"--wait-timeout", "1s",
		"--poll-interval", "10ms",
	})
	require.NoError(t, rootCmd.Execute())

	// The wait budget and the per-request timeout are independent: setting
	// the former must not clobber the configured latter.
	assert.Equal(t, time.Second, waitTimeout)
	assert.Equal(t, 10*time.Millisecond, pollInterval)
	assert.Equal(t, 60, cfg.Server.Timeout)
}
