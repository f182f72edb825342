// Package reddit implements casefiles.PostFetcher on top of the Reddit
// JSON API. Posts are fetched anonymously from the public endpoints, or
// with an application-only OAuth token when client credentials are set.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/casefiles"
	"golang.org/x/net/html"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Default endpoints and settings.
const (
	DefaultPublicURL = "https://www.reddit.com"
	DefaultOAuthURL  = "https://oauth.reddit.com"
	DefaultTokenURL  = "https://www.reddit.com/api/v1/access_token"
	DefaultUserAgent = "casefiles:e-book-compiler:v1.0"
	DefaultTimeout   = 10 * time.Second
)

// Ensure Client implements casefiles.PostFetcher at compile time.
var _ casefiles.PostFetcher = (*Client)(nil)

// Config holds the settings for a Client. It is scoped to one run and
// passed explicitly; there is no package-level client state.
type Config struct {
	// ClientID and ClientSecret identify a Reddit "script" or "web" app.
	// When both are empty the public endpoints are used.
	ClientID     string
	ClientSecret string

	// UserAgent is sent with every request. Reddit throttles generic agents.
	UserAgent string

	// BaseURL overrides the API host. Defaults to DefaultOAuthURL with
	// credentials and DefaultPublicURL without.
	BaseURL string

	// TokenURL overrides the OAuth token endpoint.
	TokenURL string

	// Timeout bounds each HTTP request. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Client fetches posts from Reddit.
type Client struct {
	client    *http.Client
	baseURL   string
	useJSON   bool
	converter casefiles.Converter
}

// Option configures a Client.
type Option func(*Client)

// WithConverter sets the converter used for posts that only carry an
// HTML body.
func WithConverter(c casefiles.Converter) Option {
	return func(cl *Client) {
		cl.converter = c
	}
}

// NewClient creates a new Client from cfg.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}

	base := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &userAgentTransport{next: http.DefaultTransport, userAgent: cfg.UserAgent},
	}

	c := &Client{client: base, baseURL: cfg.BaseURL, useJSON: true}

	if cfg.ClientID != "" || cfg.ClientSecret != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		// Token requests go through base so they carry the user agent too.
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		c.client = cc.Client(ctx)
		c.client.Timeout = cfg.Timeout
		c.useJSON = false
		if c.baseURL == "" {
			c.baseURL = DefaultOAuthURL
		}
	}

	if c.baseURL == "" {
		c.baseURL = DefaultPublicURL
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPost retrieves the submission at postURL.
func (c *Client) FetchPost(ctx context.Context, postURL string) (*casefiles.Post, error) {
	postURL = strings.TrimSpace(postURL)

	path, err := APIPath(postURL)
	if err != nil {
		return nil, err
	}
	if c.useJSON {
		path += ".json"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?raw_json=1", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, casefiles.Errorf(casefiles.EUNAVAILABLE, "reddit unreachable: %v", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, postURL); err != nil {
		return nil, err
	}

	var listings []listing
	if err := json.NewDecoder(resp.Body).Decode(&listings); err != nil {
		return nil, casefiles.Errorf(casefiles.EUNAVAILABLE, "decoding response for %s: %v", postURL, err)
	}

	sub, ok := submission(listings)
	if !ok {
		return nil, casefiles.Errorf(casefiles.ENOTFOUND, "no submission at %s", postURL)
	}

	body, err := c.body(sub)
	if err != nil {
		return nil, err
	}

	return &casefiles.Post{
		URL:   postURL,
		Title: sub.Title,
		Body:  body,
	}, nil
}

// body returns the Markdown body of a submission, converting the HTML
// rendition when the Markdown source is missing.
func (c *Client) body(sub *submissionData) (string, error) {
	if sub.Selftext != "" || sub.SelftextHTML == "" || c.converter == nil {
		return sub.Selftext, nil
	}

	rendered := strings.TrimSpace(sub.SelftextHTML)
	if strings.HasPrefix(rendered, "&lt;") {
		rendered = html.UnescapeString(rendered)
	}

	md, err := c.converter.Convert(rendered)
	if err != nil {
		return "", fmt.Errorf("converting body of %q: %w", sub.Title, err)
	}
	return md, nil
}

// APIPath maps a post URL to the API path of its comments page.
// Both full permalinks and redd.it short links are accepted.
func APIPath(postURL string) (string, error) {
	u, err := url.Parse(postURL)
	if err != nil || u.Host == "" {
		return "", casefiles.Errorf(casefiles.EINVALID, "invalid post URL %q", postURL)
	}

	path := strings.TrimRight(u.Path, "/")

	if strings.EqualFold(u.Host, "redd.it") {
		id := strings.TrimPrefix(path, "/")
		if id == "" || strings.Contains(id, "/") {
			return "", casefiles.Errorf(casefiles.EINVALID, "invalid short link %q", postURL)
		}
		return "/comments/" + id, nil
	}

	if !strings.Contains(path, "/comments/") {
		return "", casefiles.Errorf(casefiles.EINVALID, "%q is not a post URL", postURL)
	}
	return strings.TrimSuffix(path, ".json"), nil
}

// checkStatus maps HTTP status codes to application errors.
func checkStatus(resp *http.Response, postURL string) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusForbidden:
		return casefiles.Errorf(casefiles.ENOTFOUND, "post %s not found (HTTP %d)", postURL, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized:
		return casefiles.Errorf(casefiles.EINVALID, "reddit rejected the client credentials (HTTP %d)", resp.StatusCode)
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return casefiles.Errorf(casefiles.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, postURL)
	}
}

// userAgentTransport sets the User-Agent header on outgoing requests.
type userAgentTransport struct {
	next      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(req)
}
