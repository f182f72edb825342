package main

import (
	"github.com/fwojciec/casefiles/fs"
)

// Run executes the pull command.
func (c *PullCmd) Run(deps *Dependencies) error {
	urls, err := fs.ReadURLs(c.URLsFile)
	if err != nil {
		return err
	}

	posts, err := deps.Crawler.Pull(deps.Ctx, urls, progressReporter(deps))
	if err != nil {
		return err
	}

	return writePosts(deps, c.Output, posts)
}
