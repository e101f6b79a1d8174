package sqlite

import (
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
)

// formatTime stores times as UTC RFC3339 with nanoseconds.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// hashLine computes the xxHash of a transcript line and returns a hex string.
// Two lines of the same page with equal hashes are the same line.
func hashLine(timestamp, text string) string {
	d := xxhash.New()
	_, _ = d.WriteString(timestamp)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(text)
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, d.Sum64()))
}
