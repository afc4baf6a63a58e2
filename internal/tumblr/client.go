// Package tumblr implements a typed client for the tumblr v2 posts API.
package tumblr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AnnikaCodes/tumblr-archiver/internal/metrics"
)

// Client fetches pages of posts from the tumblr API.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	logger  *zap.Logger
}

// NewClient builds a Client against baseURL. The API key is optional; when
// empty, only blogs visible without authentication can be fetched.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// envelope is the standard tumblr API response wrapper.
type envelope struct {
	Meta struct {
		Status int    `json:"status"`
		Msg    string `json:"msg"`
	} `json:"meta"`
	Response Page `json:"response"`
}

// blogHost turns a bare blog name into its API hostname. Names that already
// contain a dot are custom domains and pass through unchanged.
func blogHost(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".tumblr.com"
}

// FetchPage retrieves one page of posts for the named blog starting at
// offset. Failures are classified: ErrNotFound for inaccessible blogs,
// ErrRateLimited when the caller must back off, and *APIError otherwise.
func (c *Client) FetchPage(ctx context.Context, name string, offset int) (*Page, error) {
	endpoint := fmt.Sprintf("%s/v2/blog/%s/posts", c.baseURL, blogHost(name))

	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", name, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		metrics.ObserveFetch(metrics.FetchError)
		return nil, fmt.Errorf("fetch %s at offset %d: %w", name, offset, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		metrics.ObserveFetch(metrics.FetchNotFound)
		return nil, fmt.Errorf("blog %q: %w", name, ErrNotFound)
	case http.StatusTooManyRequests:
		metrics.ObserveFetch(metrics.FetchRateLimited)
		return nil, fmt.Errorf("blog %q: %w", name, ErrRateLimited)
	default:
		metrics.ObserveFetch(metrics.FetchError)
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Meta.Msg}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		metrics.ObserveFetch(metrics.FetchError)
		return nil, fmt.Errorf("decode page for %s: %w", name, err)
	}

	metrics.ObserveFetch(metrics.FetchOK)
	c.logger.Debug("fetched page",
		zap.String("blog", name),
		zap.Int("offset", offset),
		zap.Int("posts", len(env.Response.Posts)),
		zap.Int64("total_posts", env.Response.TotalPosts),
	)
	return &env.Response, nil
}
