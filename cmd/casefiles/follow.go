package main

// Run executes the follow command.
func (c *FollowCmd) Run(deps *Dependencies) error {
	// Apply user-specified traversal options
	deps.Crawler.MaxPosts = c.MaxPosts
	deps.Crawler.Raw = c.Raw

	posts, err := deps.Crawler.Follow(deps.Ctx, c.SeedURL, progressReporter(deps))
	if err != nil {
		return err
	}

	return writePosts(deps, c.Output, posts)
}
