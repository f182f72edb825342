package chain

import (
	"context"

	"github.com/fwojciec/casefiles"
)

var _ casefiles.PostFetcher = (*CachingFetcher)(nil)

// CachingFetcher serves posts from a PostService when present and stores
// posts fetched from the platform for later runs.
type CachingFetcher struct {
	next  casefiles.PostFetcher
	cache casefiles.PostService
}

// NewCachingFetcher creates a new CachingFetcher.
func NewCachingFetcher(next casefiles.PostFetcher, cache casefiles.PostService) *CachingFetcher {
	return &CachingFetcher{next: next, cache: cache}
}

// FetchPost returns the cached post for url, fetching and caching it on a miss.
func (f *CachingFetcher) FetchPost(ctx context.Context, url string) (*casefiles.Post, error) {
	post, err := f.cache.FindPostByURL(ctx, url)
	if err == nil {
		return post, nil
	}
	if casefiles.ErrorCode(err) != casefiles.ENOTFOUND {
		return nil, err
	}

	post, err = f.next.FetchPost(ctx, url)
	if err != nil {
		return nil, err
	}

	cached := *post
	cached.URL = url
	if err := f.cache.CreatePost(ctx, &cached); err != nil {
		return nil, err
	}
	return post, nil
}
