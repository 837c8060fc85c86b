package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/kakudump"
	"github.com/fwojciec/kakudump/crawl"
	"github.com/fwojciec/kakudump/fs"
	"github.com/fwojciec/kakudump/goquery"
	"github.com/fwojciec/kakudump/htmltomarkdown"
	kakuhttp "github.com/fwojciec/kakudump/http"
	"github.com/fwojciec/kakudump/retry"
	kakuslog "github.com/fwojciec/kakudump/slog"
	"github.com/fwojciec/kakudump/sqlite"
)

func main() {
	// Interrupts cancel the download so the partial output is removed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if kakudump.ErrorCode(err) == kakudump.EINTERNAL {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Fprintln(os.Stderr, kakudump.ErrorMessage(err))
		}
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite page cache, opened when a cache path is configured.
	DB *sqlite.DB
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
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kakudump"),
		kong.Description("Download a novel from kakuyomu.jp as a single markdown file"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no novel specified. Run 'kakudump --help' for usage")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Fetch chain: plain HTTP, retried with backoff, logged once per call.
	var fetcher kakudump.Fetcher = kakuhttp.NewFetcher(kakuhttp.WithTimeout(cli.Timeout))
	fetcher = retry.NewFetcher(fetcher,
		retry.WithAttempts(cli.Retries),
		retry.WithLogger(func(format string, args ...any) {
			fmt.Fprintf(stderr, format+"\n", args...)
		}),
	)
	fetcher = kakuslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	deps.Crawler = &crawl.Crawler{
		Fetcher:     fetcher,
		Parser:      goquery.NewParser(),
		RateLimiter: crawl.NewDomainLimiter(cli.Rate, 1),
		Concurrency: cli.Concurrency,
		BaseURL:     cli.BaseURL,
		Logger:      logger,
	}

	if cli.Cache != "" {
		m.DB = sqlite.NewDB(cli.Cache)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set KAKUDUMP_CACHE to use a different cache path\n")
			return fmt.Errorf("failed to open cache at %q: %w", cli.Cache, err)
		}
		defer m.Close()
		deps.Crawler.Cache = kakuslog.NewLoggingPageCache(sqlite.NewPageCache(m.DB), logger)
	}

	var writerOpts []fs.Option
	if cli.Format == FormatMarkdown {
		writerOpts = append(writerOpts, fs.WithConverter(htmltomarkdown.NewConverter()))
	}
	deps.NewOutput = func(novel *kakudump.Novel) Output {
		path := cli.Out
		if path == "" {
			path = fs.DefaultPath(".", novel.Name)
		}
		return fs.NewWriter(path, writerOpts...)
	}

	cmd := &DumpCmd{
		Novel: cli.Novel,
		Range: crawl.Range{From: cli.From, To: cli.To},
	}
	return cmd.Run(deps)
}
