package casefiles

import "context"

// Post represents a single story post. The same record carries the raw
// platform markup after fetching and the narrative-only text after
// extraction.
type Post struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "post URL required")
	}
	if p.Title == "" {
		return Errorf(EINVALID, "post title required")
	}
	return nil
}

// PostFetcher retrieves a post from the platform.
type PostFetcher interface {
	// FetchPost returns the post at the given URL.
	// Returns ENOTFOUND if the post does not exist and EUNAVAILABLE
	// if the platform cannot be reached.
	FetchPost(ctx context.Context, url string) (*Post, error)
}

// PostStore persists a collection of posts with atomic semantics.
// Save buffers a post; Commit makes the collection permanent;
// Abort discards pending changes.
type PostStore interface {
	Save(ctx context.Context, post *Post) error
	Commit() error
	Abort() error
}

// PostService represents a service for caching fetched posts.
type PostService interface {
	// CreatePost stores a post, replacing any post with the same URL.
	CreatePost(ctx context.Context, post *Post) error

	// FindPostByURL retrieves a post by URL.
	// Returns ENOTFOUND if the post does not exist.
	FindPostByURL(ctx context.Context, url string) (*Post, error)

	// FindPosts retrieves posts matching the filter.
	FindPosts(ctx context.Context, filter PostFilter) ([]*Post, error)

	// DeletePost permanently removes a post.
	// Returns ENOTFOUND if the post does not exist.
	DeletePost(ctx context.Context, url string) error
}

// PostFilter represents a filter for FindPosts.
type PostFilter struct {
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
