package http

import (
	"context"
	"net/http"

	"github.com/fwojciec/scribe"
)

// DefaultSheetURL is the CSV export of the default video spreadsheet.
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/1cZy-PhqwI9lT_mDm5sfe59cPJqwjh6IgSMS9n27l-bQ/export?format=csv"

// Ensure SheetSource implements scribe.URLSource.
var _ scribe.URLSource = (*SheetSource)(nil)

// SheetSource reads video URLs from the first column of a spreadsheet's
// CSV export.
type SheetSource struct {
	client *http.Client
	url    string
}

// NewSheetSource creates a SheetSource for the CSV export at url.
// If client is nil, http.DefaultClient is used.
func NewSheetSource(client *http.Client, url string) *SheetSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SheetSource{client: client, url: url}
}

// URLs downloads the export and returns its URL rows in sheet order.
func (s *SheetSource) URLs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := get(ctx, s.client, s.url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return scribe.ReadURLRows(body)
}
