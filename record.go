package scribe

import "context"

// Record is one transcript line attributed to the page it came from.
// Timestamp is kept verbatim ("0:05", "1:23:04") because its format varies.
type Record struct {
	SourceURL string `json:"url"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// NewRecord builds a validated Record.
func NewRecord(sourceURL, timestamp, text string) (Record, error) {
	r := Record{SourceURL: sourceURL, Timestamp: timestamp, Text: text}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate returns an error if the record contains invalid fields.
func (r Record) Validate() error {
	if r.SourceURL == "" {
		return Errorf(EINVALID, "record source URL required")
	}
	if r.Timestamp == "" {
		return Errorf(EINVALID, "record timestamp required")
	}
	if r.Text == "" {
		return Errorf(EINVALID, "record text required")
	}
	return nil
}

// Columns are the header names of every tabular output.
var Columns = []string{"url", "timestamp", "text"}

// Row returns the record's cells in Columns order.
func (r Record) Row() []string {
	return []string{r.SourceURL, r.Timestamp, r.Text}
}

// ErrNothingExtracted is returned by a RecordWriter handed an empty record set.
var ErrNothingExtracted = Errorf(ENOTFOUND, "nothing extracted")

// PageExtractor turns one page URL into its transcript records.
// An empty result is valid: the page has no transcript, or its markup could
// not be resolved. Implementations never fail a whole run for one URL.
type PageExtractor interface {
	Extract(ctx context.Context, url string) []Record
}

// RecordWriter persists a complete record set in one batch.
type RecordWriter interface {
	// WriteRecords writes all records and returns the location written.
	// Returns ErrNothingExtracted without writing anything if records is empty.
	WriteRecords(ctx context.Context, records []Record) (location string, err error)
}
