// Package http provides an HTTP-based implementation of casefiles.Fetcher
// for retrieving the server-rendered HTML of thread pages.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/casefiles"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the fetcher. Reddit rejects the Go default.
const DefaultUserAgent = "casefiles:e-book-compiler:v1.0"

// DefaultMaxBodySize bounds how much of a thread page is read.
const DefaultMaxBodySize = 8 << 20

// Ensure Fetcher implements casefiles.Fetcher at compile time.
var _ casefiles.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the largest page, in bytes, Fetch accepts.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML of the page at url. The age gate of NSFW
// communities is acknowledged up front so the post itself is served.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", casefiles.Errorf(casefiles.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: "over18", Value: "1"})

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", casefiles.Errorf(casefiles.EUNAVAILABLE, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusForbidden:
		return "", casefiles.Errorf(casefiles.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	case http.StatusTooManyRequests:
		return "", casefiles.Errorf(casefiles.EUNAVAILABLE, "rate limited fetching %s (retry after %q); lower --rps",
			url, resp.Header.Get("Retry-After"))
	default:
		return "", casefiles.Errorf(casefiles.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return "", casefiles.Errorf(casefiles.EUNAVAILABLE, "reading %s: %v", url, err)
	}
	if int64(len(body)) > f.maxBodySize {
		return "", casefiles.Errorf(casefiles.EINVALID, "page %s exceeds %d bytes", url, f.maxBodySize)
	}

	return string(body), nil
}

// Close drops idle keep-alive connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
