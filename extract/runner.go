package extract

import (
	"context"
	"time"

	"github.com/fwojciec/scribe"
	"golang.org/x/time/rate"
)

// DefaultDelay is the minimum spacing between the starts of two pages.
const DefaultDelay = 2 * time.Second

// Progress reports the state of a run after each page.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Records   int
}

// ProgressFunc is called after each page.
type ProgressFunc func(Progress)

// Runner feeds URLs to a PageExtractor one at a time and gathers every
// record into a single slice.
type Runner struct {
	Extractor scribe.PageExtractor

	// Delay spaces out page starts. Zero disables pacing.
	Delay time.Duration
}

// Run processes urls sequentially. A page that yields nothing does not stop
// the run; only ctx cancellation does, in which case the records gathered
// so far are returned with ctx's error.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) ([]scribe.Record, error) {
	limit := rate.Inf
	if r.Delay > 0 {
		limit = rate.Every(r.Delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	var records []scribe.Record
	for i, url := range urls {
		if err := limiter.Wait(ctx); err != nil {
			return records, err
		}

		page := r.Extractor.Extract(ctx, url)
		records = append(records, page...)

		if progress != nil {
			progress(Progress{
				URL:       url,
				Completed: i + 1,
				Total:     len(urls),
				Records:   len(page),
			})
		}

		if err := ctx.Err(); err != nil {
			return records, err
		}
	}
	return records, nil
}
