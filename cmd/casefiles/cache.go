package main

import (
	"fmt"

	"github.com/fwojciec/casefiles"
)

// errCacheDisabled is returned by cache commands when no cache is configured.
var errCacheDisabled = casefiles.Errorf(casefiles.EINVALID, "post cache disabled. Set --cache or CASEFILES_DB")

// Run executes the cache list command.
func (c *CacheListCmd) Run(deps *Dependencies) error {
	if deps.Posts == nil {
		return errCacheDisabled
	}

	posts, err := deps.Posts.FindPosts(deps.Ctx, casefiles.PostFilter{Limit: c.Limit})
	if err != nil {
		return err
	}

	if len(posts) == 0 {
		fmt.Fprintln(deps.Stdout, "No cached posts. Use 'casefiles pull' or 'casefiles follow' with --cache to fill it.")
		return nil
	}

	for _, p := range posts {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", p.URL, p.Title)
	}

	return nil
}

// Run executes the cache delete command.
func (c *CacheDeleteCmd) Run(deps *Dependencies) error {
	if deps.Posts == nil {
		return errCacheDisabled
	}

	if err := deps.Posts.DeletePost(deps.Ctx, c.URL); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s from cache\n", c.URL)
	return nil
}
