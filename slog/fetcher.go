// Package slog provides logging decorators for casefiles services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/casefiles"
)

var _ casefiles.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every thread page request made by the wrapped
// Fetcher.
type LoggingFetcher struct {
	next   casefiles.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher wraps next.
func NewLoggingFetcher(next casefiles.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher. Failures carry the application
// error code so throttling and missing pages can be told apart.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", casefiles.ErrorCode(err), "err", err)
		}
		f.logger.Info("fetch page", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
