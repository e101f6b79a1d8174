package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/scribe"
	"github.com/fwojciec/scribe/bloom"
	"github.com/fwojciec/scribe/excelize"
	"github.com/fwojciec/scribe/extract"
	scribehttp "github.com/fwojciec/scribe/http"
	"github.com/fwojciec/scribe/rod"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Source  scribe.URLSource
	Runner  *extract.Runner
	Writer  scribe.RecordWriter
	Archive scribe.RecordArchive // nil without --db
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs          []string      `arg:"" optional:"" name:"url" help:"Video URLs to extract (overrides --sheet, --file and --feed)"`
	Sheet         string        `env:"SCRIBE_SHEET" default:"${sheet}" help:"CSV export URL of a spreadsheet listing video URLs in its first column"`
	File          string        `type:"path" help:"Local CSV file listing video URLs in its first column"`
	Feed          string        `help:"Atom or RSS feed URL listing videos, such as a channel's videos.xml"`
	Output        string        `short:"o" type:"path" default:"youtube_transcripts_output.xlsx" help:"Output spreadsheet path"`
	Timeout       time.Duration `short:"t" default:"10s" help:"Wait limit for each page element"`
	Delay         time.Duration `default:"2s" help:"Minimum time between starting two videos"`
	Static        bool          `help:"Read pages as static HTML without a browser"`
	Headful       bool          `help:"Show the browser window"`
	MaxPages      int64         `default:"75" help:"Restart the browser after this many pages"`
	DB            string        `env:"SCRIBE_DB" type:"path" help:"SQLite archive of extracted records"`
	SkipExtracted bool          `help:"Skip videos already in the archive and reuse their archived lines (requires --db)"`
	Verbose       bool          `short:"v" help:"Log every pipeline step"`
}

// Validate checks flag combinations kong cannot express.
func (c *CLI) Validate() error {
	if c.SkipExtracted && c.DB == "" {
		return scribe.Errorf(scribe.EINVALID, "--skip-extracted requires --db")
	}
	if ext := filepath.Ext(c.Output); !strings.EqualFold(ext, outputExt) {
		return scribe.Errorf(scribe.EINVALID, "--output must end in %s, got %q", outputExt, c.Output)
	}
	if c.Timeout <= 0 {
		return scribe.Errorf(scribe.EINVALID, "--timeout must be positive")
	}
	if c.Delay < 0 {
		return scribe.Errorf(scribe.EINVALID, "--delay must not be negative")
	}
	if c.MaxPages <= 0 {
		c.MaxPages = rod.DefaultMaxPages
	}
	return nil
}

// outputExt is the extension of the primary output format.
var outputExt = excelize.Encoder{}.Ext()

// vars are kong interpolation variables for flag defaults.
var vars = map[string]string{
	"sheet": scribehttp.DefaultSheetURL,
}

// ExtractCmd reads the URL list, extracts every page, and writes the
// records.
type ExtractCmd struct {
	SkipExtracted bool
}

// sampleSize is the number of records echoed after a run.
const sampleSize = 5

// sampleWidth is the rune limit for each echoed transcript line.
const sampleWidth = 60

// Run executes the extraction.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	ctx := deps.Ctx
	started := time.Now()

	urls, err := deps.Source.URLs(ctx)
	if err != nil {
		return fmt.Errorf("reading video URLs: %w", err)
	}
	urls = bloom.Dedupe(urls)
	fmt.Fprintf(deps.Stdout, "Loaded %d video URLs\n", len(urls))

	pending := urls
	var archived map[string][]scribe.Record
	if c.SkipExtracted && deps.Archive != nil {
		pending, archived, err = c.skipExtracted(ctx, deps, urls)
		if err != nil {
			return err
		}
	}

	if len(pending) == 0 && len(archived) == 0 {
		fmt.Fprintln(deps.Stdout, "No videos to process.")
		return nil
	}

	records, runErr := deps.Runner.Run(ctx, pending, func(p extract.Progress) {
		fmt.Fprintf(deps.Stdout, "[%d/%d] %s: %d lines\n", p.Completed, p.Total, p.URL, p.Records)
	})

	output := records
	if len(archived) > 0 {
		output = inInputOrder(urls, archived, records)
	}

	// Partial results of an interrupted run are still written.
	location, err := deps.Writer.WriteRecords(context.WithoutCancel(ctx), output)
	if errors.Is(err, scribe.ErrNothingExtracted) {
		fmt.Fprintln(deps.Stdout, "No transcripts extracted.")
		return runErr
	}
	if err != nil {
		return fmt.Errorf("saving transcripts: %w", err)
	}

	if deps.Archive != nil {
		run := &scribe.Run{
			StartedAt:  started,
			FinishedAt: time.Now(),
			Location:   location,
			URLs:       len(pending),
		}
		if err := deps.Archive.SaveRun(context.WithoutCancel(ctx), run, records); err != nil {
			deps.Logger.Warn("archiving run failed", "err", err)
		}
	}

	printSummary(deps.Stdout, location, scribe.Summarize(output, sampleSize))
	return runErr
}

// skipExtracted splits urls into those still to extract and the archived
// records of the rest.
func (c *ExtractCmd) skipExtracted(ctx context.Context, deps *Dependencies, urls []string) ([]string, map[string][]scribe.Record, error) {
	done, err := deps.Archive.ExtractedURLs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("reading archive: %w", err)
	}

	pending := make([]string, 0, len(urls))
	archived := make(map[string][]scribe.Record)
	lines := 0
	for _, u := range urls {
		if !done[u] {
			pending = append(pending, u)
			continue
		}
		records, err := deps.Archive.FindRecords(ctx, u)
		if err != nil {
			return nil, nil, fmt.Errorf("reading archived records of %s: %w", u, err)
		}
		archived[u] = records
		lines += len(records)
	}

	if skipped := len(urls) - len(pending); skipped > 0 {
		fmt.Fprintf(deps.Stdout, "Skipping %d already extracted videos (%d archived lines reused)\n", skipped, lines)
	}
	return pending, archived, nil
}

// inInputOrder lays out archived and freshly extracted records by the
// position of their source URL in urls.
func inInputOrder(urls []string, archived map[string][]scribe.Record, extracted []scribe.Record) []scribe.Record {
	byURL := make(map[string][]scribe.Record)
	for _, r := range extracted {
		byURL[r.SourceURL] = append(byURL[r.SourceURL], r)
	}

	out := make([]scribe.Record, 0, len(extracted))
	for _, u := range urls {
		if records, ok := archived[u]; ok {
			out = append(out, records...)
			continue
		}
		out = append(out, byURL[u]...)
	}
	return out
}

func printSummary(w io.Writer, location string, s scribe.Summary) {
	fmt.Fprintf(w, "\nAll transcripts saved to: %s\n", location)
	fmt.Fprintf(w, "Total transcript lines extracted: %d\n", s.Records)
	fmt.Fprintf(w, "Videos processed: %d\n", s.Pages)
	if len(s.Sample) == 0 {
		return
	}
	fmt.Fprintln(w, "\nSample transcript data:")
	for _, r := range s.Sample {
		fmt.Fprintf(w, "  %s - %s\n", r.Timestamp, scribe.Truncate(r.Text, sampleWidth))
	}
}
