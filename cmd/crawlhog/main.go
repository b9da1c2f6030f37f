package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/briandowns/spinner"
	"github.com/crawlhog/crawlhog"
	"github.com/crawlhog/crawlhog/crawl"
	"github.com/crawlhog/crawlhog/firecrawl"
	"github.com/crawlhog/crawlhog/fs"
	"github.com/crawlhog/crawlhog/goquery"
	crawlhttp "github.com/crawlhog/crawlhog/http"
	crawlslog "github.com/crawlhog/crawlhog/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", crawlhog.ErrorMessage(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Output      string  `short:"o" help:"Output directory (defaults to <domain>-docs)"`
	Test        bool    `help:"Test mode - crawl at most 10 pages"`
	Verbose     bool    `short:"v" help:"Show detailed progress"`
	APIKey      string  `name:"api-key" env:"FIRECRAWL_API_KEY" help:"Fetch service API key (defaults to FIRECRAWL_API_KEY env var)"`
	Concurrency int     `short:"c" default:"3" help:"Concurrent page fetch limit"`
	RPS         float64 `default:"2" help:"Max fetch service requests per second per domain"`
	URL         string  `arg:"" required:"" help:"Documentation site URL to crawl"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("crawlhog"),
		kong.Description("Crawl a documentation site to local markdown files plus a manifest"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if err != nil {
		return err
	}

	// Credential check happens here, before any network activity.
	client, err := firecrawl.NewClient(cli.APIKey)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var scraper crawlhog.Scraper = client
	var mapper crawlhog.SiteMapper = client
	if cli.Verbose {
		scraper = crawlslog.NewLoggingScraper(scraper, logger)
		mapper = crawlslog.NewLoggingMapper(mapper, logger)
	}

	retry := &crawl.Retryer{
		OnWait: func(delay time.Duration, attempt, maxRetries int) {
			fmt.Fprintf(stderr, "Rate limit hit. Waiting %.1fs before retry %d/%d\n",
				delay.Seconds(), attempt, maxRetries)
		},
	}

	crawler := &crawl.Crawler{
		Scraper:     scraper,
		Mapper:      mapper,
		Writer:      fs.NewWriter(fs.WithLogger(logger)),
		Sitemaps:    crawlhttp.NewSitemapService(nil),
		Links:       goquery.NewLinkExtractor(),
		Limiter:     crawl.NewDomainLimiter(cli.RPS),
		Retry:       retry,
		Logger:      logger,
		Concurrency: cli.Concurrency,
		TestMode:    cli.Test,
	}

	var progress crawlhog.PageProgressFunc
	var sp *spinner.Spinner
	if cli.Verbose {
		progress = func(p crawlhog.PageProgress) {
			if p.Err != nil {
				fmt.Fprintf(stderr, "skip %s: %v\n", p.URL, p.Err)
				return
			}
			fmt.Fprintf(stdout, "[%d/%d] %s\n", p.Completed, p.Total, p.URL)
		}
	} else {
		sp = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stderr))
		sp.Suffix = " crawling " + cli.URL
		sp.Start()
		defer sp.Stop()
		progress = func(p crawlhog.PageProgress) {
			sp.Suffix = fmt.Sprintf(" [%d/%d] %s", p.Completed, p.Total, p.URL)
		}
	}

	outputDir, err := crawler.Crawl(ctx, cli.URL, cli.Output, progress)
	if sp != nil {
		sp.Stop()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Crawl completed successfully! Results saved to %s\n", outputDir)
	return nil
}
