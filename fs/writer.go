// Package fs provides file-based input and output for transcript runs.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/fwojciec/scribe"
)

// DefaultAttempts is the number of primary-format file names tried before
// falling back.
const DefaultAttempts = 5

// OpenFunc opens a file for writing, truncating it.
type OpenFunc func(name string) (io.WriteCloser, error)

// Ensure Writer implements scribe.RecordWriter at compile time.
var _ scribe.RecordWriter = (*Writer)(nil)

// Writer writes a record set to a table file in one batch.
//
// When the destination is locked or not writable, Writer retries under
// alternate names (report.xlsx, report_1.xlsx, ... report_4.xlsx). When
// every name is contended, it writes the fallback format once under a
// derived name (report.csv).
type Writer struct {
	path     string
	primary  scribe.TableEncoder
	fallback scribe.TableEncoder
	attempts int
	open     OpenFunc
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithAttempts sets how many primary-format names are tried.
// Defaults to DefaultAttempts.
func WithAttempts(n int) WriterOption {
	return func(w *Writer) {
		w.attempts = n
	}
}

// WithOpenFunc replaces the function used to open output files.
func WithOpenFunc(open OpenFunc) WriterOption {
	return func(w *Writer) {
		w.open = open
	}
}

// NewWriter creates a Writer targeting path with the given primary and
// fallback formats.
func NewWriter(path string, primary, fallback scribe.TableEncoder, opts ...WriterOption) *Writer {
	w := &Writer{
		path:     path,
		primary:  primary,
		fallback: fallback,
		attempts: DefaultAttempts,
		open:     createFile,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteRecords writes records and returns the path of the file written.
// The path must carry the primary format's extension, which keeps every
// attempt name distinct from the fallback name.
func (w *Writer) WriteRecords(ctx context.Context, records []scribe.Record) (string, error) {
	if len(records) == 0 {
		return "", scribe.ErrNothingExtracted
	}
	if ext := filepath.Ext(w.path); !strings.EqualFold(ext, w.primary.Ext()) {
		return "", scribe.Errorf(scribe.EINVALID, "output %s must end in %s", w.path, w.primary.Ext())
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	table, err := encode(w.primary, records)
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt < w.attempts; attempt++ {
		name := AttemptPath(w.path, attempt)
		err := w.writeFile(name, table)
		if err == nil {
			return name, nil
		}
		if !IsContention(err) {
			return "", err
		}
		lastErr = err
	}

	name := FallbackPath(w.path, w.fallback.Ext())
	table, err = encode(w.fallback, records)
	if err != nil {
		return "", err
	}
	if err := w.writeFile(name, table); err != nil {
		return "", fmt.Errorf("writing fallback %s after %d contended attempts (%v): %w", name, w.attempts, lastErr, err)
	}
	return name, nil
}

func (w *Writer) writeFile(name string, data []byte) error {
	f, err := w.open(name)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// encode renders the whole table in memory so a file is only touched once.
func encode(enc scribe.TableEncoder, records []scribe.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := enc.Encode(&buf, records); err != nil {
		return nil, fmt.Errorf("encoding %s table: %w", enc.Ext(), err)
	}
	return buf.Bytes(), nil
}

func createFile(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

// AttemptPath returns the file name for a write attempt: path itself for
// attempt 0, then path with "_<attempt>" before the extension.
// Example: out/report.xlsx, attempt 2 → out/report_2.xlsx
func AttemptPath(path string, attempt int) string {
	if attempt == 0 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), attempt, ext)
}

// FallbackPath returns path with its extension replaced by ext.
// Example: out/report.xlsx, ".csv" → out/report.csv
func FallbackPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// windowsSharingViolation is ERROR_SHARING_VIOLATION, returned when another
// process (typically a spreadsheet application) holds the file open.
const windowsSharingViolation = syscall.Errno(32)

// IsContention reports whether err means the file is held or protected by
// someone else, as opposed to a fault in the path or the data.
func IsContention(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, iofs.ErrPermission) ||
		errors.Is(err, syscall.EBUSY) ||
		errors.Is(err, syscall.ETXTBSY) {
		return true
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && errno == windowsSharingViolation && runtime.GOOS == "windows" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "being used by another process")
}
