package scribe

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// URLSource yields the page URLs of one run. The whole list is read before
// extraction starts.
type URLSource interface {
	URLs(ctx context.Context) ([]string, error)
}

// Fetcher retrieves raw HTML from URLs without executing JavaScript.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)
}

// ReadURLRows reads a row-oriented CSV table and returns the first column of
// every row that holds a URL. A header row and blank rows are skipped; rows
// may have any number of columns.
func ReadURLRows(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	urls := []string{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, Errorf(EINVALID, "reading URL rows: %v", err)
		}
		if len(row) == 0 {
			continue
		}
		u := strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff"))
		if !isPageURL(u) {
			continue
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func isPageURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "file://")
}
