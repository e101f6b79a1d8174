// Package bloom provides input URL deduplication backed by a Bloom filter.
package bloom

import (
	"slices"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is the filter accuracy used by Dedupe.
const DefaultFalsePositiveRate = 0.001

// Filter wraps a Bloom filter for URL deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

type dedupeConfig struct {
	n      uint
	fpRate float64
}

// DedupeOption configures Dedupe.
type DedupeOption func(*dedupeConfig)

// WithEstimates sizes the filter for n URLs at the given false positive
// rate. Defaults to len(urls) and DefaultFalsePositiveRate.
func WithEstimates(n uint, fpRate float64) DedupeOption {
	return func(c *dedupeConfig) {
		c.n = n
		c.fpRate = fpRate
	}
}

// Dedupe returns urls without repeats, keeping the first occurrence of each
// URL and the original order. URLs are compared after trimming whitespace.
//
// The filter is the only membership structure. A URL it has never seen is
// kept straight away; a possible repeat is confirmed by scanning the URLs
// kept so far, so a false positive costs a scan and never drops a URL.
func Dedupe(urls []string, opts ...DedupeOption) []string {
	cfg := dedupeConfig{n: uint(len(urls)), fpRate: DefaultFalsePositiveRate}
	for _, opt := range opts {
		opt(&cfg)
	}

	f := NewFilter(cfg.n, cfg.fpRate)
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if f.Test(u) && slices.Contains(out, u) {
			continue
		}
		f.Add(u)
		out = append(out, u)
	}
	return out
}
