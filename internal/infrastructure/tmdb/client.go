// Package tmdb relays catalog requests to The Movie Database API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/pkg/metrics"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	defaultTimeout  = 10 * time.Second
	defaultLanguage = "en-US"
	maxBodyBytes    = 4 << 20
)

// Config captures the upstream connection settings.
type Config struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration
}

// Client implements ports.Catalog over HTTP. Response bodies are returned
// untouched.
type Client struct {
	baseURL  string
	apiKey   string
	language string
	http     *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		language: cfg.Language,
		http:     &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Popular(ctx context.Context, resource domain.Resource, page int) (json.RawMessage, error) {
	path, err := collectionPath(resource, "popular")
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return c.get(ctx, resource, "popular", path, q)
}

func (c *Client) Details(ctx context.Context, resource domain.Resource, id int) (json.RawMessage, error) {
	path, err := collectionPath(resource, strconv.Itoa(id))
	if err != nil {
		return nil, err
	}
	return c.get(ctx, resource, "details", path, url.Values{})
}

func (c *Client) Search(ctx context.Context, resource domain.Resource, query string, page int) (json.RawMessage, error) {
	var path string
	switch resource {
	case domain.ResourceFilm:
		path = "/search/movie"
	case domain.ResourceActor:
		path = "/search/person"
	default:
		return nil, fmt.Errorf("%w: unknown resource %q", domain.ErrInvalidInput, resource)
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("include_adult", "false")
	return c.get(ctx, resource, "search", path, q)
}

func collectionPath(resource domain.Resource, suffix string) (string, error) {
	switch resource {
	case domain.ResourceFilm:
		return "/movie/" + suffix, nil
	case domain.ResourceActor:
		return "/person/" + suffix, nil
	default:
		return "", fmt.Errorf("%w: unknown resource %q", domain.ErrInvalidInput, resource)
	}
}

// get performs the request and classifies the outcome. For single-record
// lookups a 4xx means the id is unknown, except 401, 403 and 429 which say
// the provider refused us. Every other non-2xx, transport failure or
// timeout is domain.ErrUpstreamUnavailable.
func (c *Client) get(ctx context.Context, resource domain.Resource, operation, path string, q url.Values) (json.RawMessage, error) {
	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(resource, operation, "error")
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		if operation == "details" && idUnknown(resp.StatusCode) {
			c.observe(resource, operation, "not_found")
			return nil, fmt.Errorf("%w: %s returned %d", domain.ErrNotFound, resource, resp.StatusCode)
		}
		c.observe(resource, operation, "error")
		return nil, fmt.Errorf("%w: provider returned %d", domain.ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.observe(resource, operation, "error")
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrUpstreamUnavailable, err)
	}
	if !json.Valid(body) {
		c.observe(resource, operation, "error")
		return nil, fmt.Errorf("%w: provider returned malformed json", domain.ErrUpstreamUnavailable)
	}

	c.observe(resource, operation, "ok")
	return json.RawMessage(body), nil
}

func idUnknown(status int) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
		return false
	}
	return status >= 400 && status < 500
}

func (c *Client) observe(resource domain.Resource, operation, result string) {
	metrics.UpstreamRequestsTotal.WithLabelValues(string(resource), operation, result).Inc()
}
