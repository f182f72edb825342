// Package goquery extracts posts from server-rendered thread pages using
// CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/casefiles"
)

// Ensure ThreadExtractor implements casefiles.Extractor at compile time.
var _ casefiles.Extractor = (*ThreadExtractor)(nil)

// Selectors for the old.reddit.com thread layout. The submission is the
// first thing in #siteTable; comments live in a separate table.
const (
	DefaultTitleSelector = "#siteTable a.title"
	DefaultBodySelector  = "#siteTable .usertext-body .md"
)

// ThreadExtractor extracts the submission from a thread page.
type ThreadExtractor struct {
	TitleSelector string
	BodySelector  string
}

// NewThreadExtractor creates a ThreadExtractor for old.reddit.com pages.
func NewThreadExtractor() *ThreadExtractor {
	return &ThreadExtractor{
		TitleSelector: DefaultTitleSelector,
		BodySelector:  DefaultBodySelector,
	}
}

// Extract returns the title and body HTML of the page's submission.
// Link posts have no body and yield an empty ContentHTML.
func (e *ThreadExtractor) Extract(html string) (*casefiles.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, casefiles.Errorf(casefiles.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find(e.TitleSelector).First().Text())
	if title == "" {
		return nil, casefiles.Errorf(casefiles.EINVALID, "page has no post title")
	}

	body := ""
	if sel := doc.Find(e.BodySelector).First(); sel.Length() > 0 {
		body, err = sel.Html()
		if err != nil {
			return nil, casefiles.Errorf(casefiles.EINVALID, "failed to render post body: %v", err)
		}
	}

	return &casefiles.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(body),
	}, nil
}
