package casefiles

// ExtractResult holds the post found in a rendered thread page.
type ExtractResult struct {
	// Title is the post title as shown above the thread.
	Title string

	// ContentHTML is the post body as HTML, without comments or sidebar.
	ContentHTML string
}

// Extractor extracts the submitted post from a rendered thread page.
type Extractor interface {
	// Extract parses the page HTML and returns the post.
	// Returns EINVALID if the page does not contain a post.
	Extract(html string) (*ExtractResult, error)
}
