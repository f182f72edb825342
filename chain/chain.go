// Package chain collects story posts from the platform, either by
// following the "next part" links of a serialized story or by pulling an
// explicit list of post URLs. Posts are fetched one at a time, in order.
package chain

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/casefiles"
)

// DefaultMaxPosts limits the length of a followed chain.
const DefaultMaxPosts = 1000

// Crawler collects posts through a PostFetcher.
type Crawler struct {
	Fetcher     casefiles.PostFetcher
	RateLimiter casefiles.DomainLimiter // optional

	// MaxPosts bounds Follow. Zero means DefaultMaxPosts.
	MaxPosts int

	// Raw keeps followed posts as fetched instead of extracting the story.
	Raw bool
}

// ProgressEvent reports progress while posts are collected.
type ProgressEvent struct {
	Type      ProgressType
	URL       string
	Title     string
	Completed int
	Total     int // zero while following a chain
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressFetched is reported after each post is fetched.
	ProgressFetched ProgressType = iota
	// ProgressUnterminated is reported for a post without an end marker;
	// its whole remaining body is kept.
	ProgressUnterminated
	// ProgressCycle is reported when a next link points to a post that
	// is already part of the chain. Following stops there.
	ProgressCycle
	// ProgressFinished is reported once collection completes.
	ProgressFinished
)

// ProgressFunc is a callback for reporting collection progress.
type ProgressFunc func(event ProgressEvent)

// Follow starts at seedURL and follows the first "next part" link of each
// post until a post has none. Posts are returned in chain order.
//
// A fetch failure aborts the whole traversal and no posts are returned.
// A link back to an already collected post ends the chain.
func (c *Crawler) Follow(ctx context.Context, seedURL string, progress ProgressFunc) ([]*casefiles.Post, error) {
	maxPosts := c.MaxPosts
	if maxPosts <= 0 {
		maxPosts = DefaultMaxPosts
	}

	visited := make(map[string]struct{})
	var posts []*casefiles.Post

	current := strings.TrimSpace(seedURL)
	for current != "" {
		key := normalizeURL(current)
		if _, ok := visited[key]; ok {
			report(progress, ProgressEvent{Type: ProgressCycle, URL: current, Completed: len(posts)})
			break
		}
		if len(posts) >= maxPosts {
			return nil, casefiles.Errorf(casefiles.EINVALID, "chain starting at %s exceeds %d posts", seedURL, maxPosts)
		}
		visited[key] = struct{}{}

		post, err := c.fetch(ctx, current)
		if err != nil {
			return nil, err
		}

		// The next link usually sits in the footer, so look for it
		// before the footer is stripped.
		next := ""
		if ref, ok := casefiles.FindNextURL(post.Body); ok {
			next, err = casefiles.ResolveNextURL(current, ref)
			if err != nil {
				return nil, err
			}
		}

		if !c.Raw {
			if casefiles.FindStoryEnd(post.Body) == len(post.Body) {
				report(progress, ProgressEvent{Type: ProgressUnterminated, URL: post.URL, Title: post.Title, Completed: len(posts)})
			}
			post = casefiles.ExtractPost(post)
		}

		posts = append(posts, post)
		report(progress, ProgressEvent{Type: ProgressFetched, URL: post.URL, Title: post.Title, Completed: len(posts)})

		current = next
	}

	report(progress, ProgressEvent{Type: ProgressFinished, Completed: len(posts)})
	return posts, nil
}

// Pull fetches the posts at the given URLs in order and returns them as
// fetched. Blank entries are skipped. The first failure aborts the pull.
func (c *Crawler) Pull(ctx context.Context, urls []string, progress ProgressFunc) ([]*casefiles.Post, error) {
	var targets []string
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			targets = append(targets, u)
		}
	}

	posts := make([]*casefiles.Post, 0, len(targets))
	for _, u := range targets {
		post, err := c.fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
		report(progress, ProgressEvent{
			Type:      ProgressFetched,
			URL:       post.URL,
			Title:     post.Title,
			Completed: len(posts),
			Total:     len(targets),
		})
	}

	report(progress, ProgressEvent{Type: ProgressFinished, Completed: len(posts), Total: len(targets)})
	return posts, nil
}

// fetch waits for the rate limiter and fetches a single post.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (*casefiles.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, casefiles.Errorf(casefiles.EINVALID, "invalid post URL %q", rawURL)
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	post, err := c.Fetcher.FetchPost(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if post.URL == "" {
		post.URL = rawURL
	}
	return post, nil
}

// normalizeURL reduces a post URL to the form used for cycle detection.
// Host case, query, fragment and trailing slashes are ignored.
func normalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return strings.ToLower(u.Host) + strings.TrimRight(u.Path, "/")
}

func report(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
