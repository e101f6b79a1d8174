package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scribe"
)

// Ensure LoggingSession implements scribe.Session.
var _ scribe.Session = (*LoggingSession)(nil)

// LoggingSession wraps a Session with debug logging of navigation and clicks.
type LoggingSession struct {
	next   scribe.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next scribe.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// Navigate logs the URL being loaded and delegates to the wrapped session.
func (s *LoggingSession) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, url)
}

// Elements delegates to the wrapped session.
func (s *LoggingSession) Elements(ctx context.Context, scope scribe.Element, selector string) ([]scribe.Element, error) {
	return s.next.Elements(ctx, scope, selector)
}

// Click logs the click method and outcome and delegates to the wrapped session.
func (s *LoggingSession) Click(ctx context.Context, el scribe.Element, method scribe.ClickMethod) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("click",
			"method", method.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Click(ctx, el, method)
}

// Eval delegates to the wrapped session.
func (s *LoggingSession) Eval(ctx context.Context, el scribe.Element, script string) error {
	return s.next.Eval(ctx, el, script)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}
