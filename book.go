package casefiles

import "strings"

// RenderBook concatenates posts into one Markdown document. Each post
// becomes a level one heading holding its title, a blank line, the body
// with normalized emphasis and a trailing blank line.
func RenderBook(posts []*Post) string {
	var b strings.Builder
	for _, post := range posts {
		b.WriteString("# ")
		b.WriteString(post.Title)
		b.WriteString("\n\n")
		b.WriteString(NormalizeEmphasis(post.Body))
		b.WriteString("\n\n")
	}
	return b.String()
}

// BookRenderer renders a Markdown book into another document format.
type BookRenderer interface {
	// Render converts markdown into a document with the given title.
	Render(title, markdown string) (string, error)
}
