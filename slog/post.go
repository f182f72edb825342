package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/casefiles"
)

// Compile-time interface verification.
var (
	_ casefiles.PostFetcher = (*LoggingPostFetcher)(nil)
	_ casefiles.PostService = (*LoggingPostService)(nil)
)

// LoggingPostFetcher wraps a PostFetcher with logging.
type LoggingPostFetcher struct {
	next   casefiles.PostFetcher
	logger *slog.Logger
}

// NewLoggingPostFetcher creates a new LoggingPostFetcher.
func NewLoggingPostFetcher(next casefiles.PostFetcher, logger *slog.Logger) *LoggingPostFetcher {
	return &LoggingPostFetcher{next: next, logger: logger}
}

// FetchPost delegates to the wrapped fetcher and logs the result.
func (f *LoggingPostFetcher) FetchPost(ctx context.Context, url string) (post *casefiles.Post, err error) {
	defer func(begin time.Time) {
		var title string
		var size int
		if post != nil {
			title, size = post.Title, len(post.Body)
		}
		f.logger.Info("fetch post",
			"url", url,
			"title", title,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchPost(ctx, url)
}

// LoggingPostService wraps a PostService with logging.
type LoggingPostService struct {
	next   casefiles.PostService
	logger *slog.Logger
}

// NewLoggingPostService creates a new LoggingPostService.
func NewLoggingPostService(next casefiles.PostService, logger *slog.Logger) *LoggingPostService {
	return &LoggingPostService{next: next, logger: logger}
}

func (s *LoggingPostService) CreatePost(ctx context.Context, post *casefiles.Post) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache store",
			"url", post.URL,
			"bytes", len(post.Body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreatePost(ctx, post)
}

func (s *LoggingPostService) FindPostByURL(ctx context.Context, url string) (post *casefiles.Post, err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache lookup",
			"url", url,
			"hit", post != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPostByURL(ctx, url)
}

func (s *LoggingPostService) FindPosts(ctx context.Context, filter casefiles.PostFilter) (posts []*casefiles.Post, err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache list",
			"count", len(posts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPosts(ctx, filter)
}

func (s *LoggingPostService) DeletePost(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("cache delete",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeletePost(ctx, url)
}
