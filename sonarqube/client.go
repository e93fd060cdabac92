package sonarqube

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
)

// Client is a read-only client for the SonarQube Web API. It issues
// sequential request/response cycles only; it is safe for concurrent use by
// virtue of holding no mutable state, but operations never fan out requests
// internally.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new SonarQube client from the given configuration.
func NewClient(config Config, logger zerolog.Logger) (*Client, error) {
	if config.URL == "" {
		return nil, configError("server URL is required")
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}, nil
}

// URL returns the configured base URL.
func (c *Client) URL() string {
	return c.config.URL
}

// ProjectKey returns the configured project key, which may be empty.
func (c *Client) ProjectKey() string {
	return c.config.ProjectKey
}

// requireProject returns the configured project key or a Config error when
// none is set. Project-scoped operations call this before any HTTP request.
func (c *Client) requireProject() (string, error) {
	if c.config.ProjectKey == "" {
		return "", configError("project key is required; use --project or set SONAR_PROJECT_KEY")
	}
	return c.config.ProjectKey, nil
}

// projectParams injects the branch parameter into params when a branch is
// configured. Server-level endpoints never go through here.
func (c *Client) projectParams(params url.Values) url.Values {
	if params == nil {
		params = url.Values{}
	}
	if c.config.Branch != "" {
		params.Set("branch", c.config.Branch)
	}
	return params
}

// get performs an authenticated GET request against an API endpoint and
// returns the raw body. It is the single chokepoint all transport errors
// pass through: pre-status failures map to KindHTTP or KindTimeout, non-2xx
// responses to KindAPI.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	requestURL := c.config.URL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindHTTP, Endpoint: endpoint, Message: err.Error(), Err: err}
	}

	if c.config.Token != "" {
		// SonarQube token auth: token as username, empty password.
		req.SetBasicAuth(c.config.Token, "")
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("endpoint", endpoint).Msg("SonarQube API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() || errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Kind: KindTimeout, Endpoint: endpoint, Message: err.Error(), Err: err}
		}
		return nil, &Error{Kind: KindHTTP, Endpoint: endpoint, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindHTTP, Endpoint: endpoint, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:     KindAPI,
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Message:  apiErrorMessage(resp.StatusCode, body),
		}
	}

	return body, nil
}

// getJSON performs a GET request and decodes the JSON response into v.
func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, v any) error {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &Error{Kind: KindDeserialize, Endpoint: endpoint, Message: err.Error(), Err: err}
	}
	return nil
}

// apiErrorMessage extracts the message text from a SonarQube error payload
// ({"errors":[{"msg":"..."}]}), falling back to the HTTP status text.
func apiErrorMessage(status int, body []byte) string {
	var payload struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 && payload.Errors[0].Msg != "" {
		return payload.Errors[0].Msg
	}
	return http.StatusText(status)
}

// ServerStatus returns the server status string (UP, STARTING, DOWN, ...).
// This is a server-level call: no branch parameter, and it works without a
// token.
func (c *Client) ServerStatus(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/api/system/status", nil, &resp); err != nil {
		return "", err
	}
	if resp.Status == "" {
		return "", &Error{Kind: KindDeserialize, Endpoint: "/api/system/status", Message: "missing status field"}
	}
	return resp.Status, nil
}

// HealthCheck reports whether the server is up. A non-success status from
// the server yields false rather than an error; transport failures are
// still reported.
func (c *Client) HealthCheck(ctx context.Context) (bool, error) {
	status, err := c.ServerStatus(ctx)
	if err != nil {
		if IsKind(err, KindAPI) {
			return false, nil
		}
		return false, err
	}
	return status == "UP", nil
}
