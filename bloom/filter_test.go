package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/scribe/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// URL not yet added should return false
	assert.False(t, f.Test("https://www.youtube.com/watch?v=a"))

	f.Add("https://www.youtube.com/watch?v=a")

	assert.True(t, f.Test("https://www.youtube.com/watch?v=a"))
	assert.False(t, f.Test("https://www.youtube.com/watch?v=b"))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("https://www.youtube.com/watch?v=added%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://www.youtube.com/watch?v=other%d", i)) {
			falsePositives++
		}
	}

	// Allow 2x the configured rate for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, fpRate*2, "false positive rate %.4f exceeds 2x expected %.4f", actualRate, fpRate)
}

func TestFilter_SaturatedFilterReportsUnseenURLs(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1, 0.5)
	for i := range 1000 {
		f.Add(fmt.Sprintf("https://www.youtube.com/watch?v=added%d", i))
	}

	positives := 0
	for i := range 100 {
		if f.Test(fmt.Sprintf("https://www.youtube.com/watch?v=other%d", i)) {
			positives++
		}
	}

	assert.Positive(t, positives)
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "keeps first occurrence in order",
			in: []string{
				"https://www.youtube.com/watch?v=b",
				"https://www.youtube.com/watch?v=a",
				"https://www.youtube.com/watch?v=b",
				"https://www.youtube.com/watch?v=c",
				"https://www.youtube.com/watch?v=a",
			},
			want: []string{
				"https://www.youtube.com/watch?v=b",
				"https://www.youtube.com/watch?v=a",
				"https://www.youtube.com/watch?v=c",
			},
		},
		{
			name: "trims and drops blanks",
			in:   []string{" https://www.youtube.com/watch?v=a", "", "https://www.youtube.com/watch?v=a  "},
			want: []string{"https://www.youtube.com/watch?v=a"},
		},
		{
			name: "nil input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, bloom.Dedupe(tt.in))
		})
	}
}

func TestDedupe_LargeInputKeepsEveryUniqueURL(t *testing.T) {
	t.Parallel()

	urls := make([]string, 0, 20000)
	for i := range 10000 {
		u := fmt.Sprintf("https://www.youtube.com/watch?v=%d", i)
		urls = append(urls, u, u)
	}

	assert.Len(t, bloom.Dedupe(urls), 10000)
}

func TestDedupe_SaturatedFilterNeverDropsUniqueURLs(t *testing.T) {
	t.Parallel()

	// Given a filter far too small for the input, so most tests are positive
	var urls, want []string
	for i := range 2000 {
		u := fmt.Sprintf("https://www.youtube.com/watch?v=%d", i)
		urls = append(urls, u)
		want = append(want, u)
	}
	urls = append(urls, urls[:500]...)

	// When deduplicating
	got := bloom.Dedupe(urls, bloom.WithEstimates(1, 0.5))

	// Then false positives are confirmed away and repeats still dropped
	assert.Equal(t, want, got)
}
