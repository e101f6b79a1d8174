package scribe

import (
	"context"
	"time"
)

// Run describes one invocation whose records were archived.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Location   string    `json:"location"`
	URLs       int       `json:"urls"`
	Records    int       `json:"records"`
}

// RecordArchive keeps the records of past runs so later runs can skip pages
// that were already extracted.
type RecordArchive interface {
	// SaveRun stores run and its records. ID is assigned if empty.
	SaveRun(ctx context.Context, run *Run, records []Record) error

	// ExtractedURLs returns the set of source URLs with at least one archived record.
	ExtractedURLs(ctx context.Context) (map[string]bool, error)

	// FindRecords returns the archived records for a source URL in extraction order.
	FindRecords(ctx context.Context, sourceURL string) ([]Record, error)
}
