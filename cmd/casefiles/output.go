package main

import (
	"fmt"

	"github.com/fwojciec/casefiles"
	"github.com/fwojciec/casefiles/chain"
	"github.com/fwojciec/casefiles/fs"
)

// writePosts writes posts to path, or to stdout when path is empty.
func writePosts(deps *Dependencies, path string, posts []*casefiles.Post) error {
	if path == "" {
		return fs.EncodePosts(deps.Stdout, posts)
	}

	store := deps.OpenStore(path)
	for _, post := range posts {
		if err := store.Save(deps.Ctx, post); err != nil {
			_ = store.Abort()
			return err
		}
	}
	if err := store.Commit(); err != nil {
		_ = store.Abort()
		return err
	}

	fmt.Fprintf(deps.Stderr, "Wrote %d posts to %s\n", len(posts), path)
	return nil
}

// progressReporter prints collection progress to stderr. Stdout is left
// for the posts themselves.
func progressReporter(deps *Dependencies) chain.ProgressFunc {
	return func(event chain.ProgressEvent) {
		switch event.Type {
		case chain.ProgressFetched:
			if event.Total > 0 {
				fmt.Fprintf(deps.Stderr, "  [%d/%d] %s\n", event.Completed, event.Total, event.Title)
			} else {
				fmt.Fprintf(deps.Stderr, "  [%d] %s\n", event.Completed, event.Title)
			}
		case chain.ProgressUnterminated:
			deps.Logger.Warn("no end marker found, keeping whole body", "url", event.URL, "title", event.Title)
		case chain.ProgressCycle:
			deps.Logger.Warn("next link points back into the chain, stopping", "url", event.URL)
		case chain.ProgressFinished:
			// Summary printed by the command
		}
	}
}
