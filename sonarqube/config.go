package sonarqube

import (
	"strings"
	"time"
)

// DefaultTimeout is the per-request deadline applied when none is configured.
const DefaultTimeout = 30 * time.Second

// DefaultURL is the SonarQube server URL used when none is configured.
const DefaultURL = "http://localhost:9000"

// Config holds the connection settings for a SonarQube server.
//
// A Config is a plain value: the With* methods return a modified copy, so a
// Config handed to NewClient is never mutated afterwards. Project key and
// branch are optional here; project-scoped operations fail with a Config
// error when no project key is set.
type Config struct {
	// URL is the base URL of the SonarQube server, without trailing slash.
	URL string
	// Token is the authentication token. Empty means unauthenticated,
	// which is valid for server health checks.
	Token string
	// ProjectKey identifies the project for project-scoped operations.
	ProjectKey string
	// Branch scopes project queries to a specific branch's analysis.
	Branch string
	// Timeout is the per-request deadline.
	Timeout time.Duration
}

// NewConfig returns a Config for the given server URL with defaults applied.
// An empty URL falls back to DefaultURL.
func NewConfig(url string) Config {
	if url == "" {
		url = DefaultURL
	}
	return Config{
		URL:     strings.TrimRight(url, "/"),
		Timeout: DefaultTimeout,
	}
}

// WithToken returns a copy of the config with the authentication token set.
func (c Config) WithToken(token string) Config {
	c.Token = token
	return c
}

// WithProject returns a copy of the config with the project key set.
func (c Config) WithProject(key string) Config {
	c.ProjectKey = key
	return c
}

// WithBranch returns a copy of the config with the branch name set.
func (c Config) WithBranch(branch string) Config {
	c.Branch = branch
	return c
}

// WithTimeout returns a copy of the config with the per-request timeout set.
// Non-positive values keep the default.
func (c Config) WithTimeout(timeout time.Duration) Config {
	if timeout > 0 {
		c.Timeout = timeout
	}
	return c
}
