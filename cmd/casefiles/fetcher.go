package main

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/casefiles"
)

// Ensure HTMLPostFetcher implements casefiles.PostFetcher at compile time.
var _ casefiles.PostFetcher = (*HTMLPostFetcher)(nil)

// oldRedditHost serves thread pages without client-side rendering.
const oldRedditHost = "old.reddit.com"

// HTMLPostFetcher implements casefiles.PostFetcher by scraping thread
// pages: fetch, extract the submission, convert its body to Markdown.
type HTMLPostFetcher struct {
	fetcher   casefiles.Fetcher
	extractor casefiles.Extractor
	converter casefiles.Converter
}

// NewHTMLPostFetcher creates a new HTMLPostFetcher with the given dependencies.
func NewHTMLPostFetcher(
	fetcher casefiles.Fetcher,
	extractor casefiles.Extractor,
	converter casefiles.Converter,
) *HTMLPostFetcher {
	return &HTMLPostFetcher{
		fetcher:   fetcher,
		extractor: extractor,
		converter: converter,
	}
}

// FetchPost retrieves the thread page for postURL and returns its post.
func (f *HTMLPostFetcher) FetchPost(ctx context.Context, postURL string) (*casefiles.Post, error) {
	html, err := f.fetcher.Fetch(ctx, ThreadPageURL(postURL))
	if err != nil {
		return nil, err
	}

	result, err := f.extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	var body string
	if result.ContentHTML != "" {
		body, err = f.converter.Convert(result.ContentHTML)
		if err != nil {
			return nil, err
		}
	}

	return &casefiles.Post{
		URL:   postURL,
		Title: result.Title,
		Body:  body,
	}, nil
}

// ThreadPageURL rewrites reddit.com post URLs to their old.reddit.com
// page. Other URLs are returned unchanged.
func ThreadPageURL(postURL string) string {
	u, err := url.Parse(postURL)
	if err != nil {
		return postURL
	}

	host := strings.ToLower(u.Host)
	if host != "reddit.com" && !strings.HasSuffix(host, ".reddit.com") {
		return postURL
	}

	u.Host = oldRedditHost
	return u.String()
}
