package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scribe"
)

// DefaultNavigateDelays returns the delays between navigation retries: one
// retry after 2s.
func DefaultNavigateDelays() []time.Duration {
	return []time.Duration{2 * time.Second}
}

// navigateWithRetry loads url, retrying after each of delays.
func navigateWithRetry(ctx context.Context, s scribe.Session, url string, delays []time.Duration, logger *slog.Logger) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := s.Navigate(ctx, url)
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		logger.Debug("retrying navigation", "attempt", attempt+2, "err", err)

		if err := sleep(ctx, delays[attempt]); err != nil {
			return err
		}
	}

	return lastErr
}
