package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playdamnit/pkg/models"
)

func testStore(t *testing.T) *SnapshotStore {
	t.Helper()
	db, err := Open(Config{Path: filepath.Join(t.TempDir(), "cache.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSnapshotStore(db)
}

func TestSnapshotRoundtrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	entries := []models.LibraryEntry{
		{ID: 1, Name: "Celeste", UserGameData: &models.UserGameData{Status: models.StatusFinished, Rating: 9.5}},
		{ID: 2, Name: "Hades"},
	}
	require.NoError(t, store.Save(ctx, "sabrina", entries))

	got, fetchedAt, stale, ok, err := store.Load(ctx, "sabrina")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, stale)
	assert.False(t, fetchedAt.IsZero())
	require.Len(t, got, 2)
	assert.Equal(t, "Celeste", got[0].Name)
	require.NotNil(t, got[0].UserGameData)
	assert.Equal(t, 9.5, got[0].UserGameData.Rating)
}

func TestSnapshotMissingUser(t *testing.T) {
	store := testStore(t)

	_, _, _, ok, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotMarkStale(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sabrina", []models.LibraryEntry{{ID: 1, Name: "Celeste"}}))
	require.NoError(t, store.MarkStale(ctx, "sabrina"))

	got, _, stale, ok, err := store.Load(ctx, "sabrina")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, stale, "mutation marks the snapshot stale")
	assert.Len(t, got, 1, "stale data is still readable")

	// refetch clears the mark
	require.NoError(t, store.Save(ctx, "sabrina", got))
	_, _, stale, _, err = store.Load(ctx, "sabrina")
	require.NoError(t, err)
	assert.False(t, stale)
}

func TestSnapshotDelete(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sabrina", nil))
	require.NoError(t, store.Delete(ctx, "sabrina"))

	_, _, _, ok, err := store.Load(ctx, "sabrina")
	require.NoError(t, err)
	assert.False(t, ok)
}
