package casefiles

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms a post body rendered as HTML back into Markdown.
	Convert(html string) (string, error)
}
