package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scribe"
)

// Ensure LoggingArchive implements scribe.RecordArchive.
var _ scribe.RecordArchive = (*LoggingArchive)(nil)

// LoggingArchive wraps a RecordArchive with debug logging.
type LoggingArchive struct {
	next   scribe.RecordArchive
	logger *slog.Logger
}

// NewLoggingArchive creates a new LoggingArchive.
func NewLoggingArchive(next scribe.RecordArchive, logger *slog.Logger) *LoggingArchive {
	return &LoggingArchive{next: next, logger: logger}
}

// SaveRun delegates to the wrapped archive and logs the run.
func (a *LoggingArchive) SaveRun(ctx context.Context, run *scribe.Run, records []scribe.Record) (err error) {
	defer func(begin time.Time) {
		var id string
		if run != nil {
			id = run.ID
		}
		a.logger.Debug("archive run",
			"run", id,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.SaveRun(ctx, run, records)
}

// ExtractedURLs delegates to the wrapped archive and logs the count.
func (a *LoggingArchive) ExtractedURLs(ctx context.Context) (urls map[string]bool, err error) {
	defer func(begin time.Time) {
		a.logger.Debug("archived urls",
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.ExtractedURLs(ctx)
}

// FindRecords delegates to the wrapped archive.
func (a *LoggingArchive) FindRecords(ctx context.Context, sourceURL string) ([]scribe.Record, error) {
	return a.next.FindRecords(ctx, sourceURL)
}
