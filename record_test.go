package scribe_test

import (
	"testing"

	"github.com/fwojciec/scribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		timestamp string
		text      string
		wantErr   bool
	}{
		{name: "valid", url: "https://www.youtube.com/watch?v=a", timestamp: "0:05", text: "Hello there"},
		{name: "hour timestamp", url: "https://www.youtube.com/watch?v=a", timestamp: "1:23:04", text: "Later"},
		{name: "missing url", timestamp: "0:05", text: "Hello", wantErr: true},
		{name: "missing timestamp", url: "https://www.youtube.com/watch?v=a", text: "Hello", wantErr: true},
		{name: "missing text", url: "https://www.youtube.com/watch?v=a", timestamp: "0:05", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := scribe.NewRecord(tt.url, tt.timestamp, tt.text)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, scribe.EINVALID, scribe.ErrorCode(err))
				assert.Equal(t, scribe.Record{}, r)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, scribe.Record{SourceURL: tt.url, Timestamp: tt.timestamp, Text: tt.text}, r)
		})
	}
}

func TestRecord_Row(t *testing.T) {
	t.Parallel()

	r := scribe.Record{SourceURL: "u", Timestamp: "0:05", Text: "t"}

	assert.Equal(t, []string{"u", "0:05", "t"}, r.Row())
	assert.Len(t, r.Row(), len(scribe.Columns))
}

func TestErrNothingExtracted(t *testing.T) {
	t.Parallel()

	assert.Equal(t, scribe.ENOTFOUND, scribe.ErrorCode(scribe.ErrNothingExtracted))
}
