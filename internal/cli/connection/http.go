// Package connection provides server communication for authgate-cli.
package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// HTTPClient provides HTTP communication with an authgate server.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPClient creates a new HTTP client. The token may be empty for
// unauthenticated calls such as login.
func NewHTTPClient(server, token string) *HTTPClient {
	baseURL := server
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	return &HTTPClient{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Call performs a request against an API endpoint.
func (c *HTTPClient) Call(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	target := c.baseURL + "/?endpoint=" + url.QueryEscape(endpoint)
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "authgate-cli/1.0")

	return c.client.Do(req)
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Renewal reports whether the server renewed the presented token while
// handling the response's request, and the new expiry if so.
func Renewal(resp *http.Response) (expiresAt int64, renewed bool) {
	if resp.Header.Get("X-Token-Renewed") != "true" {
		return 0, false
	}
	expiresAt, err := strconv.ParseInt(resp.Header.Get("X-Token-Expires-At"), 10, 64)
	if err != nil {
		return 0, false
	}
	return expiresAt, true
}

// ParseResponse parses a JSON response body into the target struct.
// Error replies carry a single {"error": message} object.
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%s (status %d)", errResp.Error, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}
