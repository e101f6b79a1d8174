package scribe

import "io"

// TableEncoder serializes records as a table with a Columns header row.
type TableEncoder interface {
	// Encode writes the whole table to w.
	Encode(w io.Writer, records []Record) error

	// Ext returns the file extension of the format, including the dot.
	Ext() string
}
