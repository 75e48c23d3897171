package harvard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultPageDelay   = 500 * time.Millisecond
)

// ErrNotFound is returned when a lookup yields no record.
var ErrNotFound = errors.New("artwork not found")

// StatusError reports a non-2xx response from the museum API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("harvard api: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

type Config struct {
	ApiKey  string
	BaseUrl string
	Mode    LookupMode
	Timeout time.Duration
}

type Client struct {
	apiKey     string
	baseUrl    string
	mode       LookupMode
	httpClient *http.Client
	limiter    *rate.Limiter
}

type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithPageLimiter overrides the pacing between collection pages.
func WithPageLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		if limiter != nil {
			c.limiter = limiter
		}
	}
}

func NewClient(config Config, opts ...Option) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	mode := config.Mode
	if mode == "" {
		mode = LookupObjectNumber
	}

	client := &Client{
		apiKey:     config.ApiKey,
		baseUrl:    strings.TrimRight(config.BaseUrl, "/"),
		mode:       mode,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(defaultPageDelay), 1),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Lookup fetches the first record matching identifier. Any failure, including
// transport faults, is returned as an error; a missing record wraps ErrNotFound.
func (c *Client) Lookup(ctx context.Context, identifier string) (*ArtworkRecord, error) {
	// An empty filter matches arbitrary objects.
	if strings.TrimSpace(identifier) == "" {
		return nil, ErrNotFound
	}

	params := url.Values{}
	c.mode.apply(params, identifier)

	var resp listResponse[objectRecord]
	if err := c.getJSON(ctx, "/object", params, &resp); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, fmt.Errorf("failed to look up %q: %w", identifier, err)
	}

	if len(resp.Records) == 0 {
		return nil, ErrNotFound
	}

	record := resp.Records[0].toArtworkRecord(identifier)
	return &record, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create GET request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform GET request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
