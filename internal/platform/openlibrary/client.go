package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://openlibrary.org/search.json?fields=author_name,title,first_publish_year,publisher&author="
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "booksearch/1.0"
)

// ErrDecode marks a response body that could not be parsed as a search document.
var ErrDecode = errors.New("openlibrary: decode response")

// StatusError is returned when the catalog answers with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openlibrary: unexpected status code: %d", e.Code)
}

type Config struct {
	// BaseURL is used as a prefix; the escaped author is appended to it.
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// RPS caps outbound requests per second. Zero or less disables the limiter.
	RPS int
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	timeout    time.Duration
	limiter    *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Second/time.Duration(cfg.RPS)), 1)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent: cfg.UserAgent,
		baseURL:   cfg.BaseURL,
		timeout:   cfg.Timeout,
		limiter:   limiter,
	}
}

// Doc is a single entry of search.json. Missing fields decode to their zero value.
type Doc struct {
	AuthorName       []string `json:"author_name"`
	Title            string   `json:"title"`
	FirstPublishYear *int     `json:"first_publish_year"`
	Publisher        []string `json:"publisher"`
}

// SearchResponse matches search.json
type SearchResponse struct {
	NumFound      int   `json:"numFound"`
	Start         int   `json:"start"`
	NumFoundExact bool  `json:"numFoundExact"`
	Docs          []Doc `json:"docs"`
}

// SearchByAuthor issues a single GET for the given author. It never retries.
// Time spent waiting on the rate limiter counts against the configured timeout.
func (c *Client) SearchByAuthor(ctx context.Context, author string) (*SearchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + url.QueryEscape(author)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var res SearchResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			// Wait fails fast when the next token lands after the deadline.
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}
