// Package scribe extracts timed transcript text from video pages.
// It drives a browser through a list of page URLs, opens each page's
// transcript panel, recovers (timestamp, text) pairs from whatever markup
// the panel currently uses, and writes them to a spreadsheet.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/, excelize/).
package scribe
