package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/casefiles"
	"github.com/fwojciec/casefiles/chain"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Crawler  *chain.Crawler
	Posts    casefiles.PostService // nil when the cache is disabled
	Renderer casefiles.BookRenderer

	// OpenStore returns the store used to write a posts file.
	OpenStore func(path string) casefiles.PostStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Source       string        `enum:"api,html" default:"api" help:"Where posts are read from: the JSON API or the old.reddit.com pages (${enum})"`
	ClientID     string        `name:"client-id" env:"REDDIT_CLIENT_ID" help:"Reddit app client ID for OAuth access"`
	ClientSecret string        `name:"client-secret" env:"REDDIT_CLIENT_SECRET" help:"Reddit app client secret"`
	UserAgent    string        `name:"user-agent" env:"REDDIT_USER_AGENT" help:"User-Agent sent to Reddit"`
	CachePath    string        `name:"cache" env:"CASEFILES_DB" help:"Post cache database path (empty disables the cache)"`
	RPS          float64       `name:"rps" default:"1" help:"Requests per second per site (0 disables limiting)"`
	Timeout      time.Duration `default:"10s" help:"Timeout per request"`
	Verbose      bool          `short:"v" help:"Log every request"`

	Pull       PullCmd       `cmd:"" help:"Fetch the posts listed in a file"`
	Follow     FollowCmd     `cmd:"" help:"Follow next-part links from a seed post"`
	Preprocess PreprocessCmd `cmd:"" help:"Reduce fetched posts to their story text"`
	Generate   GenerateCmd   `cmd:"" help:"Render posts as a book"`
	Cache      CacheCmd      `cmd:"" help:"Inspect the post cache"`
}

// PullCmd is the "pull" subcommand.
type PullCmd struct {
	URLsFile string `arg:"" name:"urls-file" help:"File with one post URL per line"`
	Output   string `short:"o" help:"Write posts to this file instead of stdout"`
}

// FollowCmd is the "follow" subcommand.
type FollowCmd struct {
	SeedURL  string `arg:"" name:"seed-url" help:"URL of the first post of the story"`
	Output   string `short:"o" help:"Write posts to this file instead of stdout"`
	Raw      bool   `help:"Keep post bodies as fetched"`
	MaxPosts int    `name:"max-posts" default:"1000" help:"Maximum number of posts to follow"`
}

// PreprocessCmd is the "preprocess" subcommand.
type PreprocessCmd struct {
	PostsFile string `arg:"" name:"posts-file" help:"Posts JSON file"`
	Output    string `short:"o" help:"Write posts to this file instead of replacing the input"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	PostsFile string `arg:"" name:"posts-file" help:"Posts JSON file"`
	Output    string `short:"o" help:"Write the book to this file instead of stdout"`
	Format    string `enum:"markdown,html" default:"markdown" help:"Output format (${enum})"`
	Title     string `help:"Book title for HTML output (defaults to the first post title)"`
}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	List   CacheListCmd   `cmd:"" help:"List cached posts"`
	Delete CacheDeleteCmd `cmd:"" help:"Remove a post from the cache"`
}

// CacheListCmd is the "cache list" subcommand.
type CacheListCmd struct {
	Limit int `default:"0" help:"Maximum number of posts to list (0 lists all)"`
}

// CacheDeleteCmd is the "cache delete" subcommand.
type CacheDeleteCmd struct {
	URL string `arg:"" help:"URL of the cached post"`
}
