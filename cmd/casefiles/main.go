package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/casefiles"
	"github.com/fwojciec/casefiles/chain"
	"github.com/fwojciec/casefiles/fs"
	"github.com/fwojciec/casefiles/goldmark"
	"github.com/fwojciec/casefiles/goquery"
	"github.com/fwojciec/casefiles/htmltomarkdown"
	cfhttp "github.com/fwojciec/casefiles/http"
	"github.com/fwojciec/casefiles/reddit"
	cfslog "github.com/fwojciec/casefiles/slog"
	"github.com/fwojciec/casefiles/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Credentials may live in a .env file next to the story files.
	if err := godotenv.Load(); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage returns the message shown to the user. Internal errors
// carry no application message, so their full text is shown instead.
func errorMessage(err error) string {
	if casefiles.ErrorCode(err) == casefiles.EINTERNAL {
		return err.Error()
	}
	return casefiles.ErrorMessage(err)
}

// Main represents the program.
type Main struct {
	// SQLite database backing the post cache. Nil when the cache is disabled.
	DB *sqlite.DB

	// Fetcher replaces the platform client when set. Used for end-to-end testing.
	Fetcher casefiles.PostFetcher

	// PageFetcher downloads thread pages for --source html. Built from the
	// CLI flags when nil. Released by Close.
	PageFetcher casefiles.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	if m.PageFetcher != nil {
		errs = append(errs, m.PageFetcher.Close())
		m.PageFetcher = nil
	}
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
		m.DB = nil
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Renderer: goldmark.NewRenderer(),
		OpenStore: func(path string) casefiles.PostStore {
			return fs.NewPostStore(path)
		},
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("casefiles"),
		kong.Description("Compile serialized Reddit stories into a single book"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return casefiles.Errorf(casefiles.EINVALID, "no command specified. Run 'casefiles --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return casefiles.Errorf(casefiles.EINVALID, "%v", err)
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cmd := strings.Fields(kongCtx.Command())[0]
	defer m.Close()

	if cli.CachePath != "" {
		if err := m.openCache(cli.CachePath); err != nil {
			return err
		}
		deps.Posts = cfslog.NewLoggingPostService(sqlite.NewPostService(m.DB), deps.Logger)
	}

	if cmd == "pull" || cmd == "follow" {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher = m.newPostFetcher(cli, deps.Logger)
		}
		fetcher = cfslog.NewLoggingPostFetcher(fetcher, deps.Logger)
		if deps.Posts != nil {
			fetcher = chain.NewCachingFetcher(fetcher, deps.Posts)
		}

		deps.Crawler = &chain.Crawler{
			Fetcher:     fetcher,
			RateLimiter: chain.NewDomainLimiter(cli.RPS),
		}
	}

	return kongCtx.Run(deps)
}

// openCache opens the post cache, creating its directory if needed.
func (m *Main) openCache(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return fmt.Errorf("failed to open post cache at %q: %w", path, err)
	}
	return nil
}

// newPostFetcher builds the platform client selected by --source.
func (m *Main) newPostFetcher(cli *CLI, logger *slog.Logger) casefiles.PostFetcher {
	converter := htmltomarkdown.NewConverter()

	if cli.Source == "html" {
		if m.PageFetcher == nil {
			m.PageFetcher = cfhttp.NewFetcher(
				cfhttp.WithTimeout(cli.Timeout),
				cfhttp.WithUserAgent(cli.UserAgent),
			)
		}
		fetcher := cfslog.NewLoggingFetcher(m.PageFetcher, logger)
		return NewHTMLPostFetcher(fetcher, goquery.NewThreadExtractor(), converter)
	}

	return reddit.NewClient(reddit.Config{
		ClientID:     cli.ClientID,
		ClientSecret: cli.ClientSecret,
		UserAgent:    cli.UserAgent,
		Timeout:      cli.Timeout,
	}, reddit.WithConverter(converter))
}
