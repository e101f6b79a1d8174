package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scribe"
)

// Ensure LoggingExtractor implements scribe.PageExtractor.
var _ scribe.PageExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a PageExtractor with logging. Pages that yield no
// records are logged at warn level.
type LoggingExtractor struct {
	next   scribe.PageExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next scribe.PageExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the record count.
func (e *LoggingExtractor) Extract(ctx context.Context, url string) (records []scribe.Record) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if len(records) == 0 {
			level = slog.LevelWarn
		}
		e.logger.Log(ctx, level, "extract",
			"url", url,
			"records", len(records),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(ctx, url)
}
