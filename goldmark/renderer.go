// Package goldmark renders Markdown books to standalone HTML documents.
package goldmark

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/fwojciec/casefiles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Ensure Renderer implements casefiles.BookRenderer at compile time.
var _ casefiles.BookRenderer = (*Renderer)(nil)

// Renderer converts a Markdown book into an HTML5 document.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GitHub Flavored Markdown and
// typographic quotes enabled. Chapter headings get IDs so readers can
// build a table of contents.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}
}

// Render converts markdown to HTML and wraps it in a document titled title.
// Raw HTML in the source is omitted.
func (r *Renderer) Render(title, markdown string) (string, error) {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\" />\n")
	b.WriteString("<title>")
	b.WriteString(stdhtml.EscapeString(title))
	b.WriteString("</title>\n")
	b.WriteString("</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
