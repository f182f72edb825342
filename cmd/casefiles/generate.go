package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/casefiles"
	"github.com/fwojciec/casefiles/fs"
)

// defaultBookTitle is used for HTML books of an empty posts file.
const defaultBookTitle = "Case Files"

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	posts, err := fs.ReadPosts(c.PostsFile)
	if err != nil {
		return err
	}

	book := casefiles.RenderBook(posts)

	if c.Format == "html" {
		book, err = deps.Renderer.Render(c.bookTitle(posts), book)
		if err != nil {
			return err
		}
	}

	if c.Output == "" {
		_, err := io.WriteString(deps.Stdout, book)
		return err
	}

	if err := fs.WriteFile(c.Output, []byte(book)); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stderr, "Wrote %d chapters to %s\n", len(posts), c.Output)
	return nil
}

func (c *GenerateCmd) bookTitle(posts []*casefiles.Post) string {
	switch {
	case c.Title != "":
		return c.Title
	case len(posts) > 0:
		return posts[0].Title
	default:
		return defaultBookTitle
	}
}
