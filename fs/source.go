package fs

import (
	"context"
	"os"

	"github.com/fwojciec/scribe"
)

// Ensure FileSource implements scribe.URLSource at compile time.
var _ scribe.URLSource = (*FileSource)(nil)

// FileSource reads video URLs from the first column of a local CSV file.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// URLs returns the URLs listed in the file, in file order.
func (s *FileSource) URLs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scribe.ReadURLRows(f)
}
