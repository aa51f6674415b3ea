package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"playdamnit/pkg/models"
)

// SnapshotStore persists the last fetched library per user so the CLI
// renders instantly and keeps working offline. Mutations mark the row
// stale instead of deleting it; stale data still beats no data.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save stores a fresh snapshot for the user, clearing any stale mark.
func (s *SnapshotStore) Save(ctx context.Context, username string, entries []models.LibraryEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO library_snapshots (username, payload, fetched_at, stale)
		VALUES (?, ?, ?, 0)
		ON CONFLICT(username) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at,
			stale = 0`,
		username, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, its fetch time and whether it has
// been marked stale. A missing row returns ok=false, not an error.
func (s *SnapshotStore) Load(ctx context.Context, username string) (entries []models.LibraryEntry, fetchedAt time.Time, stale, ok bool, err error) {
	var payload, fetched string
	var staleInt int
	row := s.db.QueryRowContext(ctx, `
		SELECT payload, fetched_at, stale FROM library_snapshots WHERE username = ?`, username)
	if err = row.Scan(&payload, &fetched, &staleInt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, false, false, nil
		}
		return nil, time.Time{}, false, false, fmt.Errorf("load snapshot: %w", err)
	}

	if err = json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, time.Time{}, false, false, fmt.Errorf("decode snapshot: %w", err)
	}
	fetchedAt, _ = time.Parse(time.RFC3339, fetched)
	return entries, fetchedAt, staleInt != 0, true, nil
}

// MarkStale flags the snapshot after a mutation so the next render
// knows to refetch. A missing row is fine.
func (s *SnapshotStore) MarkStale(ctx context.Context, username string) error {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE library_snapshots SET stale = 1 WHERE username = ?`, username); err != nil {
		return fmt.Errorf("mark snapshot stale: %w", err)
	}
	return nil
}

// Delete drops the snapshot entirely, used on logout.
func (s *SnapshotStore) Delete(ctx context.Context, username string) error {
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM library_snapshots WHERE username = ?`, username); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
