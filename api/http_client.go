// api/http_client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"buildings-server/metrics"
)

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return "unexpected status code: " + e.Status
}

// NewHTTPClient creates a new instance of HTTPClient with the given timeout
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Request makes an HTTP request to the API and decodes the JSON response.
// query may be nil; body, when non-nil, is sent as JSON.
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, query url.Values, headers map[string]string, body interface{}, response interface{}) error {
	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		requestBody = bytes.NewReader(jsonBody)
	}

	u := c.BaseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, requestBody)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint).Inc()
	defer func() {
		metrics.UpstreamDurationMs.WithLabelValues(endpoint).Observe(float64(time.Since(start).Milliseconds()))
	}()

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		metrics.UpstreamFailTotal.WithLabelValues(endpoint).Inc()
		return err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.UpstreamFailTotal.WithLabelValues(endpoint).Inc()
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		metrics.UpstreamFailTotal.WithLabelValues(endpoint).Inc()
		return &StatusError{StatusCode: res.StatusCode, Status: res.Status, Body: string(resBody)}
	}

	if response != nil {
		if err := json.Unmarshal(resBody, response); err != nil {
			metrics.UpstreamFailTotal.WithLabelValues(endpoint).Inc()
			return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
		}
	}

	return nil
}
