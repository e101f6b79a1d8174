package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/scribe"
	"github.com/fwojciec/scribe/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openArchive(t *testing.T) *sqlite.Archive {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return sqlite.NewArchive(db)
}

func transcript(url string, lines ...string) []scribe.Record {
	records := make([]scribe.Record, 0, len(lines)/2)
	for i := 0; i+1 < len(lines); i += 2 {
		records = append(records, scribe.Record{SourceURL: url, Timestamp: lines[i], Text: lines[i+1]})
	}
	return records
}

func TestArchive_SaveRun(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and times", func(t *testing.T) {
		t.Parallel()

		archive := openArchive(t)
		run := &scribe.Run{Location: "out.xlsx", URLs: 1}

		err := archive.SaveRun(context.Background(), run, transcript("https://www.youtube.com/watch?v=a", "0:01", "hi"))

		require.NoError(t, err)
		assert.NotEmpty(t, run.ID)
		assert.False(t, run.StartedAt.IsZero())
		assert.False(t, run.FinishedAt.IsZero())
		assert.Equal(t, 1, run.Records)
	})

	t.Run("stores run metadata", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		t.Cleanup(func() { db.Close() })
		archive := sqlite.NewArchive(db)
		started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		run := &scribe.Run{
			StartedAt:  started,
			FinishedAt: started.Add(time.Minute),
			Location:   "out.xlsx",
			URLs:       2,
		}
		require.NoError(t, archive.SaveRun(context.Background(), run, nil))

		var startedAt, location string
		var urls, records int
		err := db.QueryRowContext(context.Background(),
			`SELECT started_at, location, urls, records FROM runs WHERE id = ?`, run.ID,
		).Scan(&startedAt, &location, &urls, &records)

		require.NoError(t, err)
		got, err := time.Parse(time.RFC3339Nano, startedAt)
		require.NoError(t, err)
		assert.True(t, started.Equal(got))
		assert.Equal(t, "out.xlsx", location)
		assert.Equal(t, 2, urls)
		assert.Equal(t, 0, records)
	})

	t.Run("rejects invalid record without storing run", func(t *testing.T) {
		t.Parallel()

		archive := openArchive(t)
		run := &scribe.Run{}

		err := archive.SaveRun(context.Background(), run, []scribe.Record{{SourceURL: "https://x"}})

		require.Error(t, err)
		assert.Equal(t, scribe.EINVALID, scribe.ErrorCode(err))
		urls, err := archive.ExtractedURLs(context.Background())
		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("nil run is invalid", func(t *testing.T) {
		t.Parallel()

		err := openArchive(t).SaveRun(context.Background(), nil, nil)

		assert.Equal(t, scribe.EINVALID, scribe.ErrorCode(err))
	})

	t.Run("repeated lines are stored once", func(t *testing.T) {
		t.Parallel()

		archive := openArchive(t)
		ctx := context.Background()
		url := "https://www.youtube.com/watch?v=a"

		require.NoError(t, archive.SaveRun(ctx, &scribe.Run{}, transcript(url, "0:01", "hi", "0:02", "there")))
		require.NoError(t, archive.SaveRun(ctx, &scribe.Run{}, transcript(url, "0:01", "hi", "0:03", "again")))

		records, err := archive.FindRecords(ctx, url)

		require.NoError(t, err)
		assert.Equal(t, transcript(url, "0:01", "hi", "0:02", "there", "0:03", "again"), records)
	})
}

func TestArchive_ExtractedURLs(t *testing.T) {
	t.Parallel()

	archive := openArchive(t)
	ctx := context.Background()
	records := append(
		transcript("https://www.youtube.com/watch?v=a", "0:01", "hi"),
		transcript("https://www.youtube.com/watch?v=b", "0:01", "hello", "0:02", "world")...,
	)
	require.NoError(t, archive.SaveRun(ctx, &scribe.Run{URLs: 3}, records))

	urls, err := archive.ExtractedURLs(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		"https://www.youtube.com/watch?v=a": true,
		"https://www.youtube.com/watch?v=b": true,
	}, urls)
}

func TestArchive_FindRecords(t *testing.T) {
	t.Parallel()

	t.Run("unknown URL returns empty slice", func(t *testing.T) {
		t.Parallel()

		records, err := openArchive(t).FindRecords(context.Background(), "https://www.youtube.com/watch?v=zzz")

		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})
}
