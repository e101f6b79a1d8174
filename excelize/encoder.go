// Package excelize encodes record tables as Office Open XML workbooks.
package excelize

import (
	"io"

	"github.com/fwojciec/scribe"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single worksheet in every workbook.
const SheetName = "Transcripts"

// Column widths in characters for url, timestamp, and text.
var columnWidths = []float64{45, 12, 100}

// Ensure Encoder implements scribe.TableEncoder at compile time.
var _ scribe.TableEncoder = Encoder{}

// Encoder writes records as an .xlsx workbook with a bold header row.
type Encoder struct{}

// Encode streams records into a new workbook and writes it to w.
func (Encoder) Encode(w io.Writer, records []scribe.Record) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}
	for i, width := range columnWidths {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", cells(scribe.Columns), excelize.RowOpts{StyleID: bold}); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells(r.Row())); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

// Ext returns ".xlsx".
func (Encoder) Ext() string {
	return ".xlsx"
}

// cells keeps every value a string so timestamps like "1:02" are not parsed
// as times.
func cells(values []string) []any {
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
