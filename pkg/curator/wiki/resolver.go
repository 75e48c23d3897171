package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseUrl   = "https://en.wikipedia.org"
	DefaultUserAgent = "curator-linker/1.0 (https://github.com/artlens/curator)"

	resolutionCacheSize = 1000
	resolutionCacheTTL  = 1 * time.Hour
	summaryMaxSize      = 1 << 20
	defaultHTTPTimeout  = 15 * time.Second
)

type ResolverConfig struct {
	BaseUrl    string
	UserAgent  string
	HttpClient *http.Client
}

// Resolver checks terms against the Wikipedia summary endpoint. Hits and 404
// misses are cached; other statuses and transport errors are not.
type Resolver struct {
	baseUrl    string
	userAgent  string
	httpClient *http.Client
	cache      *expirable.LRU[string, resolution]
	group      singleflight.Group
}

type resolution struct {
	pageUrl string
	ok      bool
}

type summaryResponse struct {
	ContentUrls struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

func NewResolver(config ResolverConfig) *Resolver {
	baseUrl := strings.TrimRight(config.BaseUrl, "/")
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	httpClient := config.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &Resolver{
		baseUrl:    baseUrl,
		userAgent:  userAgent,
		httpClient: httpClient,
		cache:      expirable.NewLRU[string, resolution](resolutionCacheSize, nil, resolutionCacheTTL),
	}
}

// Resolve returns the article URL for term and whether the article exists.
func (r *Resolver) Resolve(ctx context.Context, term string) (string, bool, error) {
	if cached, ok := r.cache.Get(term); ok {
		return cached.pageUrl, cached.ok, nil
	}

	v, err, _ := r.group.Do(term, func() (interface{}, error) {
		res, err := r.fetchSummary(ctx, term)
		if err != nil {
			return resolution{}, err
		}
		r.cache.Add(term, res)
		return res, nil
	})
	if err != nil {
		return "", false, err
	}

	res := v.(resolution)
	return res.pageUrl, res.ok, nil
}

func (r *Resolver) fetchSummary(ctx context.Context, term string) (resolution, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseUrl+"/api/rest_v1/page/summary/"+url.PathEscape(term), nil)
	if err != nil {
		return resolution{}, fmt.Errorf("failed to create GET request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return resolution{}, fmt.Errorf("failed to perform GET request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return resolution{}, nil
	case resp.StatusCode != http.StatusOK:
		return resolution{}, fmt.Errorf("unexpected status %d for %q", resp.StatusCode, term)
	}

	pageUrl := r.baseUrl + "/wiki/" + url.PathEscape(strings.ReplaceAll(term, " ", "_"))

	var summary summaryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, summaryMaxSize)).Decode(&summary); err == nil && summary.ContentUrls.Desktop.Page != "" {
		pageUrl = summary.ContentUrls.Desktop.Page
	}

	return resolution{pageUrl: pageUrl, ok: true}, nil
}
