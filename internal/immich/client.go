// Package immich is a client for the subset of the Immich server API the
// janitor uses: asset search, bulk delete, trash and duplicates.
//
// Every request goes through a shared rate limiter and is retried on
// network errors, 429 and 5xx responses.
package immich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/immich-janitor/immich-janitor/internal/utils"
	"golang.org/x/time/rate"
)

// Defaults applied to zero Config fields
const (
	DefaultTimeout       = 60 * time.Second
	DefaultRateLimit     = 10.0 // requests per second
	DefaultBurst         = 5
	DefaultRetryAttempts = 3
	DefaultPageSize      = 1000 // largest page the search endpoint serves
	DefaultBatchSize     = 100
	defaultBackoff       = 500 * time.Millisecond
)

// Config holds the connection settings of a Client
type Config struct {
	BaseURL       string        // API root, e.g. http://localhost:2283/api
	APIKey        string        // Sent as x-api-key
	Timeout       time.Duration // Per request
	RateLimit     float64       // Requests per second
	Burst         int
	RetryAttempts int
	PageSize      int // Assets per search page
	BatchSize     int // IDs per bulk request
}

// withDefaults fills zero fields
func (c Config) withDefaults() Config {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RateLimit <= 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.Burst <= 0 {
		c.Burst = DefaultBurst
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	return c
}

// Client talks to one Immich server
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	backoff    time.Duration
}

// NewClient creates a client. The base URL and API key are required.
func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	if cfg.BaseURL == "" {
		return nil, errors.New("immich api url is required (set IMMICH_API_URL or --api-url)")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("immich api key is required (set IMMICH_API_KEY or --api-key)")
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		backoff:    defaultBackoff,
	}
	return c, nil
}

// BaseURL returns the API root without a trailing slash
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// BatchSize returns the number of IDs sent per bulk request
func (c *Client) BatchSize() int {
	return c.cfg.BatchSize
}

// doRequest sends one API call with rate limiting and retries. body is
// encoded as JSON when non-nil; dest receives the decoded response when
// non-nil.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body, dest interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.RetryAttempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+endpoint, reader)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("x-api-key", c.cfg.APIKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")

		utils.Debug("%s %s (attempt %d)", method, endpoint, attempt)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			utils.Warning("%s %s failed: %v", method, endpoint, err)
			if err := c.wait(ctx, c.backoff*time.Duration(attempt)); err != nil {
				return err
			}
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("failed to read response: %w", readErr)
			continue
		}

		apiErr := &APIError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = apiErr
			delay := retryAfter(resp.Header.Get("Retry-After"), c.backoff*time.Duration(attempt))
			utils.Warning("%s %s rate limited, retrying in %s", method, endpoint, delay)
			if err := c.wait(ctx, delay); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = apiErr
			utils.Warning("%s %s returned %d", method, endpoint, resp.StatusCode)
			if err := c.wait(ctx, c.backoff*time.Duration(attempt)); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return apiErr
		}

		if dest != nil && len(respBody) > 0 {
			if err := json.Unmarshal(respBody, dest); err != nil {
				return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
			}
		}
		return nil
	}

	return fmt.Errorf("max retries exceeded for %s %s: %w", method, endpoint, lastErr)
}

// wait sleeps for d unless ctx ends first
func (c *Client) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryAfter parses a Retry-After value in seconds
func retryAfter(header string, fallback time.Duration) time.Duration {
	if header == "" {
		return fallback
	}
	if sec, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && sec >= 0 {
		return time.Duration(sec) * time.Second
	}
	return fallback
}

// Batches splits ids into consecutive chunks of at most size
func Batches(ids []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}
