package fs

import (
	"encoding/csv"
	"io"

	"github.com/fwojciec/scribe"
)

// utf8BOM lets spreadsheet applications detect the encoding of the file.
const utf8BOM = "\ufeff"

// Ensure CSVEncoder implements scribe.TableEncoder at compile time.
var _ scribe.TableEncoder = CSVEncoder{}

// CSVEncoder encodes records as UTF-8 comma-separated values with a header
// row.
type CSVEncoder struct{}

// Encode writes the header and one row per record.
func (CSVEncoder) Encode(w io.Writer, records []scribe.Record) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(scribe.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Ext returns ".csv".
func (CSVEncoder) Ext() string {
	return ".csv"
}
