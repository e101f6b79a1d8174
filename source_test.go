package scribe_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/scribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadURLRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "header row skipped",
			input: "Link\nhttps://www.youtube.com/watch?v=a\n",
			want:  []string{"https://www.youtube.com/watch?v=a"},
		},
		{
			name:  "extra columns ignored",
			input: "https://www.youtube.com/watch?v=a,Intro,12\nhttps://youtu.be/b\n",
			want:  []string{"https://www.youtube.com/watch?v=a", "https://youtu.be/b"},
		},
		{
			name:  "blank rows skipped",
			input: "\n\nhttps://www.youtube.com/watch?v=a\n\n",
			want:  []string{"https://www.youtube.com/watch?v=a"},
		},
		{
			name:  "byte order mark stripped",
			input: "\ufeffhttps://www.youtube.com/watch?v=a\n",
			want:  []string{"https://www.youtube.com/watch?v=a"},
		},
		{
			name:  "surrounding space trimmed",
			input: "  https://www.youtube.com/watch?v=a  \n",
			want:  []string{"https://www.youtube.com/watch?v=a"},
		},
		{
			name:  "file URLs kept",
			input: "file:///tmp/watch.html\n",
			want:  []string{"file:///tmp/watch.html"},
		},
		{
			name:  "non-URL values skipped",
			input: "notes\nftp://example.com/x\n,https://www.youtube.com/watch?v=second-column\n",
			want:  []string{},
		},
		{
			name:  "quoted fields",
			input: "\"https://www.youtube.com/watch?v=a\",\"Title, with comma\"\n",
			want:  []string{"https://www.youtube.com/watch?v=a"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := scribe.ReadURLRows(strings.NewReader(tt.input))

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
