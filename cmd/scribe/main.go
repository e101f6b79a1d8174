package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/scribe"
	"github.com/fwojciec/scribe/excelize"
	"github.com/fwojciec/scribe/extract"
	"github.com/fwojciec/scribe/fs"
	"github.com/fwojciec/scribe/goquery"
	scribehttp "github.com/fwojciec/scribe/http"
	"github.com/fwojciec/scribe/rod"
	scribeslog "github.com/fwojciec/scribe/slog"
	"github.com/fwojciec/scribe/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Extraction timing policy. Set before calling Run().
	Waits extract.Waits

	// SQLite database backing the run archive, when --db is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Waits: extract.DefaultWaits(),
	}
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
		kong.Name("scribe"),
		kong.Description("Extract video transcripts into a spreadsheet"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars(vars),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if err := cli.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	name, source := m.source(cli)
	deps.Source = scribeslog.NewLoggingSource(source, name, logger)

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SCRIBE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()
		deps.Archive = scribeslog.NewLoggingArchive(sqlite.NewArchive(m.DB), logger)
	}

	var session scribe.Session
	if cli.Static {
		fetcher := scribehttp.NewFetcher(scribehttp.WithTimeout(cli.Timeout))
		session = goquery.NewSession(scribeslog.NewLoggingFetcher(fetcher, logger))
	} else {
		manager, err := rod.NewBrowserManager(
			rod.WithMaxPages(cli.MaxPages),
			rod.WithHeadless(!cli.Headful),
			rod.WithManagerLogger(logger),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		session = rod.NewLoggingSession(rod.NewSession(manager), logger)
	}
	defer session.Close()

	waits := m.Waits
	waits.Timeout = cli.Timeout
	extractor := extract.NewExtractor(session,
		extract.WithWaits(waits),
		extract.WithLogger(logger),
	)
	deps.Runner = &extract.Runner{
		Extractor: scribeslog.NewLoggingExtractor(extractor, logger),
		Delay:     cli.Delay,
	}

	deps.Writer = scribeslog.NewLoggingWriter(
		fs.NewWriter(cli.Output, excelize.Encoder{}, fs.CSVEncoder{}),
		logger,
	)

	cmd := &ExtractCmd{
		SkipExtracted: cli.SkipExtracted,
	}
	return cmd.Run(deps)
}

// source picks the URL input: positional URLs, then --feed, then --file,
// then the spreadsheet export.
func (m *Main) source(cli *CLI) (string, scribe.URLSource) {
	switch {
	case len(cli.URLs) > 0:
		return "args", staticSource(cli.URLs)
	case cli.Feed != "":
		return cli.Feed, scribehttp.NewFeedSource(nil, cli.Feed)
	case cli.File != "":
		return cli.File, fs.NewFileSource(cli.File)
	default:
		return cli.Sheet, scribehttp.NewSheetSource(nil, cli.Sheet)
	}
}

// staticSource serves URLs given on the command line.
type staticSource []string

func (s staticSource) URLs(context.Context) ([]string, error) {
	return []string(s), nil
}
