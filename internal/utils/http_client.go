package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// HTTPClientConfig holds configuration for the HTTP client
type HTTPClientConfig struct {
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	UserAgent  string
}

// HTTPClient wraps http.Client with retries and JSON/file helpers. It
// exists for the self-update command; report parsing never goes near
// the network.
type HTTPClient struct {
	client *http.Client
	config HTTPClientConfig
	logger *Logger
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config HTTPClientConfig) *HTTPClient {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 1 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "elfreader/" + Version
	}

	return &HTTPClient{
		client: &http.Client{Timeout: config.Timeout},
		config: config,
		logger: NewDefaultLogger(),
	}
}

// NewDefaultHTTPClient creates an HTTP client with default configuration
func NewDefaultHTTPClient() *HTTPClient {
	return NewHTTPClient(HTTPClientConfig{})
}

// SetLogger sets the logger for the HTTP client
func (h *HTTPClient) SetLogger(logger *Logger) {
	h.logger = logger
}

// Get performs a GET request with retry logic
func (h *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			h.logger.WithComponent("http-client").Debugf("Retrying %s (attempt %d/%d)",
				url, attempt+1, h.config.MaxRetries+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(h.config.RetryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", h.config.UserAgent)

		resp, err := h.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		// Retry server-side failures; everything else is for the caller.
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			continue
		}
		return resp, nil
	}
	return nil, fmt.Errorf("request to %s failed after %d attempts: %w",
		url, h.config.MaxRetries+1, lastErr)
}

// GetJSON performs a GET request and decodes the JSON response into v.
func (h *HTTPClient) GetJSON(ctx context.Context, url string, v interface{}) error {
	resp, err := h.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON response: %w", err)
	}
	return nil
}

// DownloadFile downloads url into the file at path.
func (h *HTTPClient) DownloadFile(ctx context.Context, url, path string) error {
	resp, err := h.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
