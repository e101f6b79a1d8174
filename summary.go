package scribe

// Summary describes an extracted record set for the end-of-run report.
type Summary struct {
	Records int
	Pages   int
	Sample  []Record
}

// Summarize counts records and distinct source URLs and keeps the first
// sampleSize records as a sample.
func Summarize(records []Record, sampleSize int) Summary {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[r.SourceURL] = true
	}
	n := min(max(sampleSize, 0), len(records))
	return Summary{
		Records: len(records),
		Pages:   len(seen),
		Sample:  records[:n],
	}
}

// Truncate shortens s to at most n runes, adding "..." when it was cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n < 4 {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-3]) + "..."
}
