package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/medialinks"
	"github.com/fwojciec/medialinks/bulma"
	"github.com/fwojciec/medialinks/filetype"
	"github.com/fwojciec/medialinks/goquery"
	mlhttp "github.com/fwojciec/medialinks/http"
	"github.com/fwojciec/medialinks/rod"
	"github.com/fwojciec/medialinks/scrape"
	mlslog "github.com/fwojciec/medialinks/slog"
	"github.com/fwojciec/medialinks/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used for scrape history. Nil when --db is not set.
	DB *sqlite.DB

	// Services for end-to-end testing. When set, they replace the
	// implementations Run would otherwise build.
	Fetcher medialinks.Fetcher
	Records medialinks.ScrapeRecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("medialinks"),
		kong.Description("Find the audio and video files linked from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'medialinks --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	deps.Logger = mlslog.NewLogger(stderr, cli.LogLevel, cli.LogFormat)

	// Scrape history
	deps.Records = m.Records
	if deps.Records == nil && cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set MEDIALINKS_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Records = sqlite.NewScrapeRecordService(m.DB)
	}

	var fetch *FetchFlags
	switch cmd {
	case "scrape":
		fetch = &cli.Scrape.FetchFlags
		deps.Limiter = scrape.NewDomainLimiter(cli.Scrape.RPS)
	case "serve":
		fetch = &cli.Serve.FetchFlags
	}

	if fetch != nil {
		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(fetch); err != nil {
				fmt.Fprintln(stderr, "Hint: --render needs Chrome or Chromium installed")
				return fmt.Errorf("failed to create fetcher: %w", err)
			}
			defer fetcher.Close()
		}

		renderer, err := bulma.NewRenderer()
		if err != nil {
			return fmt.Errorf("failed to parse templates: %w", err)
		}
		deps.Renderer = renderer
		deps.Scraper = newScraper(fetcher, deps.Records, deps.Logger, fetch.Retries)
	}

	return kongCtx.Run(deps)
}

// newFetcher returns the browser fetcher when rendering is requested and
// the plain HTTP fetcher otherwise.
func newFetcher(flags *FetchFlags) (medialinks.Fetcher, error) {
	if flags.Render {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(flags.Timeout))
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return mlhttp.NewFetcher(
		mlhttp.WithTimeout(flags.Timeout),
		mlhttp.WithUserAgent(flags.UserAgent),
	), nil
}

// newScraper assembles the single-page pipeline with logging and, when a
// history store is configured, recording.
func newScraper(fetcher medialinks.Fetcher, records medialinks.ScrapeRecordService, logger *slog.Logger, retries int) medialinks.Scraper {
	var s medialinks.Scraper = &scrape.Scraper{
		Fetcher:     mlslog.NewLoggingFetcher(fetcher, logger),
		Extractor:   mlslog.NewLoggingExtractor(goquery.NewMediaSelector(filetype.NewTable()), logger),
		RetryDelays: scrape.BackoffDelays(retries),
	}
	if records != nil {
		s = &scrape.RecordingScraper{Scraper: s, Records: records, Logger: logger}
	}
	return mlslog.NewLoggingScraper(s, logger)
}
