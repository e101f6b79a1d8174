package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scribe"
)

// Ensure LoggingSource implements scribe.URLSource.
var _ scribe.URLSource = (*LoggingSource)(nil)

// LoggingSource wraps a URLSource with logging.
type LoggingSource struct {
	next   scribe.URLSource
	name   string
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource. name identifies the input
// in log lines, such as a file path or feed URL.
func NewLoggingSource(next scribe.URLSource, name string, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, name: name, logger: logger}
}

// URLs delegates to the wrapped source and logs the operation.
func (s *LoggingSource) URLs(ctx context.Context) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("read urls",
			"source", s.name,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.URLs(ctx)
}
