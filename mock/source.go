package mock

import (
	"context"

	"github.com/fwojciec/scribe"
)

var _ scribe.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of scribe.URLSource.
type URLSource struct {
	URLsFn func(ctx context.Context) ([]string, error)
}

func (s *URLSource) URLs(ctx context.Context) ([]string, error) {
	return s.URLsFn(ctx)
}
