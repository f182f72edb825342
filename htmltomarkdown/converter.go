// Package htmltomarkdown turns post bodies rendered as HTML back into the
// Markdown the rest of the pipeline works on.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/casefiles"
)

// DefaultDomain resolves relative links such as "/r/nosleep/comments/...".
const DefaultDomain = "https://www.reddit.com"

var _ casefiles.Converter = (*Converter)(nil)

// extraBlankLines matches the runs of blank lines left behind once
// zero width spacer paragraphs are removed.
var extraBlankLines = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)

// Converter converts rendered post HTML to Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain sets the site relative links are resolved against.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter. Emphasis uses asterisks so that
// converted bodies look like posts written in Markdown.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(
					commonmark.WithEmDelimiter("*"),
					commonmark.WithStrongDelimiter("**"),
				),
				table.NewTablePlugin(),
			),
		),
		domain: DefaultDomain,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms a post body from HTML into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", casefiles.Errorf(casefiles.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html, converter.WithDomain(c.domain))
	if err != nil {
		return "", err
	}

	// Authors pad paragraphs with &#x200B; to force extra spacing.
	md = strings.ReplaceAll(md, "\u200b", "")
	md = extraBlankLines.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md), nil
}
