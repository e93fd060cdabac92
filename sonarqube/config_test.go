package sonarqube

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantURL string
	}{
		{
			name:    "empty URL uses default",
			url:     "",
			wantURL: DefaultURL,
		},
		{
			name:    "trailing slash stripped",
			url:     "https://sonar.example.com/",
			wantURL: "https://sonar.example.com",
		},
		{
			name:    "multiple trailing slashes stripped",
			url:     "https://sonar.example.com///",
			wantURL: "https://sonar.example.com",
		},
		{
			name:    "clean URL untouched",
			url:     "http://localhost:9000",
			wantURL: "http://localhost:9000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(tt.url)
			assert.Equal(t, tt.wantURL, cfg.URL)
			assert.Equal(t, DefaultTimeout, cfg.Timeout)
			assert.Empty(t, cfg.Token)
			assert.Empty(t, cfg.ProjectKey)
			assert.Empty(t, cfg.Branch)
		})
	}
}

func TestConfigBuilders(t *testing.T) {
	base := NewConfig("http://localhost:9000")

	cfg := base.
		WithToken("squ_abc123").
		WithProject("my_project").
		WithBranch("main").
		WithTimeout(10 * time.Second)

	assert.Equal(t, "squ_abc123", cfg.Token)
	assert.Equal(t, "my_project", cfg.ProjectKey)
	assert.Equal(t, "main", cfg.Branch)
	assert.Equal(t, 10*time.Second, cfg.Timeout)

	// Builders copy; the original config is untouched.
	assert.Empty(t, base.Token)
	assert.Empty(t, base.ProjectKey)
	assert.Empty(t, base.Branch)
	assert.Equal(t, DefaultTimeout, base.Timeout)
}

func TestConfigWithTimeoutIgnoresNonPositive(t *testing.T) {
	cfg := NewConfig("").WithTimeout(0)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)

	cfg = NewConfig("").WithTimeout(-time.Second)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}
