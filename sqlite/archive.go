package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/scribe"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ scribe.RecordArchive = (*Archive)(nil)

// Archive implements scribe.RecordArchive using SQLite.
//
// A line already archived for a page (same timestamp and text) is not stored
// again, so re-running over the same URLs does not grow the archive.
type Archive struct {
	db  *DB
	now func() time.Time
}

// NewArchive creates a new Archive.
func NewArchive(db *DB) *Archive {
	return &Archive{db: db, now: time.Now}
}

// SaveRun stores run and its records in one transaction.
func (a *Archive) SaveRun(ctx context.Context, run *scribe.Run, records []scribe.Record) error {
	if run == nil {
		return scribe.Errorf(scribe.EINVALID, "run required")
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = a.now()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = a.now()
	}
	run.Records = len(records)

	tx, err := a.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, location, urls, records)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt), run.Location, run.URLs, run.Records); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO records (run_id, source_url, timestamp, text, content_hash)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, run.ID, r.SourceURL, r.Timestamp, r.Text, hashLine(r.Timestamp, r.Text)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ExtractedURLs returns every source URL with at least one archived record.
func (a *Archive) ExtractedURLs(ctx context.Context) (map[string]bool, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT DISTINCT source_url FROM records`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := make(map[string]bool)
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls[u] = true
	}
	return urls, rows.Err()
}

// FindRecords returns the archived records of a source URL in the order
// they were first extracted.
func (a *Archive) FindRecords(ctx context.Context, sourceURL string) ([]scribe.Record, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT source_url, timestamp, text
		FROM records
		WHERE source_url = ?
		ORDER BY id ASC
	`, sourceURL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []scribe.Record{}
	for rows.Next() {
		var r scribe.Record
		if err := rows.Scan(&r.SourceURL, &r.Timestamp, &r.Text); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
