package main

import (
	"github.com/fwojciec/casefiles"
	"github.com/fwojciec/casefiles/fs"
)

// Run executes the preprocess command.
func (c *PreprocessCmd) Run(deps *Dependencies) error {
	posts, err := fs.ReadPosts(c.PostsFile)
	if err != nil {
		return err
	}

	for _, post := range posts {
		if casefiles.FindStoryEnd(post.Body) == len(post.Body) {
			deps.Logger.Warn("no end marker found, keeping whole body", "url", post.URL, "title", post.Title)
		}
	}

	output := c.Output
	if output == "" {
		output = c.PostsFile
	}

	return writePosts(deps, output, casefiles.ExtractPosts(posts))
}
