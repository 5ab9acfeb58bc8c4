// Package trading212 retrieves the order history of a Trading 212 account.
//
// The history endpoint is paginated with an opaque integer cursor. FetchOrders
// walks the pages one at a time until the last one, and keeps whatever it got
// when a page fails.
package trading212

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/t212"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the live environment.
	DefaultBaseURL = "https://live.trading212.com"
	// DemoBaseURL is the practice environment.
	DemoBaseURL = "https://demo.trading212.com"

	// PageSize is the number of orders requested per page.
	PageSize = 50
	// DefaultTimeout bounds each page request.
	DefaultTimeout = 10 * time.Second

	// estimatedOrders is the working estimate of the history size, for progress only.
	estimatedOrders = 500

	ordersPath = "/api/v0/equity/history/orders"
)

// ProgressFunc is called after each page with the number of orders fetched
// so far and an approximate completion fraction in [0, 1].
//
// The fraction stays below 1 until the last page, and is exactly 1 once the
// fetch is over, successful or not.
type ProgressFunc func(fetched int, fraction float64)

// StatusError is returned when the server answers with a non success status.
type StatusError struct {
	Code   int
	Status string
	Body   string // truncated response body, if any.
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("trading212: %s", e.Status)
	}
	return fmt.Sprintf("trading212: %s: %s", e.Status, e.Body)
}

// Client is a Trading 212 API client.
type Client struct {
	baseURL     string
	credentials string
	timeout     time.Duration
	limiter     *rate.Limiter
	cacheDir    string
	http        *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout of each page request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRateLimit limits the requests to perMinute. Zero or less disables it.
//
// The history endpoint is throttled by the server, going faster only
// produces 429 responses.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		if perMinute <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1)
	}
}

// WithDiskCache caches successful responses in dir for the rest of the day.
// An empty dir means the system temporary directory.
func WithDiskCache(dir string) Option {
	return func(c *Client) {
		if dir == "" {
			dir = os.TempDir()
		}
		c.cacheDir = dir
	}
}

// WithHTTPClient sets the underlying http client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a Client for the API at baseURL (DefaultBaseURL if empty),
// authenticated by key and secret.
func New(baseURL, key, secret string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		credentials: credentials(key, secret),
		timeout:     DefaultTimeout,
		http:        http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheDir != "" {
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		c.http = &http.Client{
			Transport: &diskCache{base: base, dir: c.cacheDir, salt: c.credentials},
			Timeout:   c.http.Timeout,
		}
	}
	return c
}

// credentials returns the value of the basic Authorization header.
func credentials(key, secret string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(key+":"+secret))
}

// page is a page of the order history.
type page struct {
	Items        []t212.Order `json:"items"`
	NextPagePath *string      `json:"nextPagePath"`
}

// FetchOrders retrieves the whole order history, page after page.
//
// The fetch stops normally on an empty page, on a page without a next page
// path, or when the next cursor cannot be parsed. A failing page stops it
// too: the orders retrieved so far are returned along with the error.
func (c *Client) FetchOrders(ctx context.Context, progress ProgressFunc) ([]t212.Order, error) {
	if progress == nil {
		progress = func(int, float64) {}
	}
	orders := make([]t212.Order, 0)
	defer func() { progress(len(orders), 1) }()

	var cursor int64
	for {
		p, err := c.fetchPage(ctx, cursor)
		if err != nil {
			return orders, fmt.Errorf("cannot fetch orders after %d: %w", len(orders), err)
		}
		orders = append(orders, p.Items...)
		progress(len(orders), min(float64(len(orders))/estimatedOrders, 0.99))

		if len(p.Items) == 0 || p.NextPagePath == nil {
			return orders, nil
		}
		next, ok := nextCursor(*p.NextPagePath)
		if !ok {
			log.Warnf("invalid next page path %q, stopping", *p.NextPagePath)
			return orders, nil
		}
		if next == cursor {
			log.Warnf("cursor %d does not advance, stopping", cursor)
			return orders, nil
		}
		cursor = next
	}
}

// Orders implements t212.Source.
func (c *Client) Orders(ctx context.Context) ([]t212.Order, error) {
	return c.FetchOrders(ctx, nil)
}

// nextCursor extracts the cursor parameter of a next page path. The path
// may be a full path with a query, or just the query.
func nextCursor(path string) (int64, bool) {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[i+1:]
	}
	// malformed parameters are dropped, the cursor is checked below.
	query, _ := url.ParseQuery(path)
	cursor, err := strconv.ParseInt(query.Get("cursor"), 10, 64)
	if err != nil {
		return 0, false
	}
	return cursor, true
}

func (c *Client) fetchPage(ctx context.Context, cursor int64) (*page, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("cursor", strconv.FormatInt(cursor, 10))
	q.Set("limit", strconv.Itoa(PageSize))
	addr := c.baseURL + ordersPath + "?" + q.Encode()

	var p page
	if err := c.jget(ctx, addr, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// jget performs an authenticated GET request and decodes the json response into data.
func (c *Client) jget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("cannot create http request %q: %w", addr, err)
	}
	req.Header.Set("Authorization", c.credentials)
	req.Header.Set("Accept", "application/json")
	if t212.IsRefresh(ctx) {
		req.Header.Set("Cache-Control", "no-cache")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cannot http GET %v: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()
	log.Debugf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return fmt.Errorf("cannot read http body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status, Body: truncate(buf.String(), 200)}
	}
	if err := json.Unmarshal(buf.Bytes(), data); err != nil {
		return fmt.Errorf("cannot decode response of %v: %w", req.URL.Path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// IsUnauthorized reports whether err is caused by invalid credentials.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && (se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden)
}
