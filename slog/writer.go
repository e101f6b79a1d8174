package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scribe"
)

// Ensure LoggingWriter implements scribe.RecordWriter.
var _ scribe.RecordWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a RecordWriter with logging.
type LoggingWriter struct {
	next   scribe.RecordWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next scribe.RecordWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteRecords delegates to the wrapped writer and logs where the records
// ended up.
func (w *LoggingWriter) WriteRecords(ctx context.Context, records []scribe.Record) (location string, err error) {
	defer func(begin time.Time) {
		w.logger.Info("write records",
			"records", len(records),
			"location", location,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRecords(ctx, records)
}
