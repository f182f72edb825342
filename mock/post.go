package mock

import (
	"context"

	"github.com/fwojciec/casefiles"
)

// Compile-time interface verification.
var (
	_ casefiles.PostFetcher = (*PostFetcher)(nil)
	_ casefiles.PostStore   = (*PostStore)(nil)
	_ casefiles.PostService = (*PostService)(nil)
)

// PostFetcher is a mock implementation of casefiles.PostFetcher.
type PostFetcher struct {
	FetchPostFn func(ctx context.Context, url string) (*casefiles.Post, error)
}

func (f *PostFetcher) FetchPost(ctx context.Context, url string) (*casefiles.Post, error) {
	return f.FetchPostFn(ctx, url)
}

// PostStore is a mock implementation of casefiles.PostStore.
type PostStore struct {
	SaveFn   func(ctx context.Context, post *casefiles.Post) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PostStore) Save(ctx context.Context, post *casefiles.Post) error {
	return s.SaveFn(ctx, post)
}

func (s *PostStore) Commit() error {
	return s.CommitFn()
}

func (s *PostStore) Abort() error {
	return s.AbortFn()
}

// PostService is a mock implementation of casefiles.PostService.
type PostService struct {
	CreatePostFn    func(ctx context.Context, post *casefiles.Post) error
	FindPostByURLFn func(ctx context.Context, url string) (*casefiles.Post, error)
	FindPostsFn     func(ctx context.Context, filter casefiles.PostFilter) ([]*casefiles.Post, error)
	DeletePostFn    func(ctx context.Context, url string) error
}

func (s *PostService) CreatePost(ctx context.Context, post *casefiles.Post) error {
	return s.CreatePostFn(ctx, post)
}

func (s *PostService) FindPostByURL(ctx context.Context, url string) (*casefiles.Post, error) {
	return s.FindPostByURLFn(ctx, url)
}

func (s *PostService) FindPosts(ctx context.Context, filter casefiles.PostFilter) ([]*casefiles.Post, error) {
	return s.FindPostsFn(ctx, filter)
}

func (s *PostService) DeletePost(ctx context.Context, url string) error {
	return s.DeletePostFn(ctx, url)
}
