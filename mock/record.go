package mock

import (
	"context"
	"io"

	"github.com/fwojciec/scribe"
)

var _ scribe.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of scribe.PageExtractor.
type PageExtractor struct {
	ExtractFn func(ctx context.Context, url string) []scribe.Record
}

func (e *PageExtractor) Extract(ctx context.Context, url string) []scribe.Record {
	return e.ExtractFn(ctx, url)
}

var _ scribe.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of scribe.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, records []scribe.Record) (string, error)
}

func (w *RecordWriter) WriteRecords(ctx context.Context, records []scribe.Record) (string, error) {
	return w.WriteRecordsFn(ctx, records)
}

var _ scribe.TableEncoder = (*TableEncoder)(nil)

// TableEncoder is a mock implementation of scribe.TableEncoder.
type TableEncoder struct {
	EncodeFn func(w io.Writer, records []scribe.Record) error
	ExtFn    func() string
}

func (e *TableEncoder) Encode(w io.Writer, records []scribe.Record) error {
	return e.EncodeFn(w, records)
}

func (e *TableEncoder) Ext() string {
	return e.ExtFn()
}
