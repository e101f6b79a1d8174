package mock

import (
	"context"

	"github.com/fwojciec/scribe"
)

var _ scribe.RecordArchive = (*RecordArchive)(nil)

// RecordArchive is a mock implementation of scribe.RecordArchive.
type RecordArchive struct {
	SaveRunFn       func(ctx context.Context, run *scribe.Run, records []scribe.Record) error
	ExtractedURLsFn func(ctx context.Context) (map[string]bool, error)
	FindRecordsFn   func(ctx context.Context, sourceURL string) ([]scribe.Record, error)
}

func (a *RecordArchive) SaveRun(ctx context.Context, run *scribe.Run, records []scribe.Record) error {
	return a.SaveRunFn(ctx, run, records)
}

func (a *RecordArchive) ExtractedURLs(ctx context.Context) (map[string]bool, error) {
	return a.ExtractedURLsFn(ctx)
}

func (a *RecordArchive) FindRecords(ctx context.Context, sourceURL string) ([]scribe.Record, error) {
	return a.FindRecordsFn(ctx, sourceURL)
}
