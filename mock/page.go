package mock

import (
	"context"

	"github.com/fwojciec/casefiles"
)

var (
	_ casefiles.Fetcher       = (*Fetcher)(nil)
	_ casefiles.DomainLimiter = (*DomainLimiter)(nil)
	_ casefiles.Extractor     = (*Extractor)(nil)
	_ casefiles.Converter     = (*Converter)(nil)
)

// Fetcher is a mock implementation of casefiles.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// DomainLimiter is a mock implementation of casefiles.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

// Extractor is a mock implementation of casefiles.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*casefiles.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*casefiles.ExtractResult, error) {
	return e.ExtractFn(html)
}

// Converter is a mock implementation of casefiles.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
