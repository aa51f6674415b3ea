package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playdamnit/pkg/models"
)

func TestStorePutGetInvalidate(t *testing.T) {
	store := NewStore()

	_, ok := store.Get("alice")
	assert.False(t, ok, "empty store misses")

	store.Put("alice", []models.LibraryEntry{{ID: 1, Name: "Celeste"}})
	entries, ok := store.Get("alice")
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "Celeste", entries[0].Name)

	_, ok = store.FetchedAt("alice")
	assert.True(t, ok)

	store.Invalidate("alice")
	_, ok = store.Get("alice")
	assert.False(t, ok, "invalidated snapshot gone")
}

func TestStoreLastWriteWins(t *testing.T) {
	store := NewStore()
	store.Put("alice", []models.LibraryEntry{{ID: 1, Name: "old"}})
	store.Put("alice", []models.LibraryEntry{{ID: 1, Name: "new"}})

	entries, ok := store.Get("alice")
	require.True(t, ok)
	assert.Equal(t, "new", entries[0].Name)
}

func TestHubNotifyInvalidatesAndFansOut(t *testing.T) {
	store := NewStore()
	hub := NewHub(store)
	store.Put("alice", []models.LibraryEntry{{ID: 1}})

	var got []Event
	hub.Subscribe(func(ev Event) {
		got = append(got, ev)
	})

	hub.Notify("alice", "update")

	_, ok := store.Get("alice")
	assert.False(t, ok, "Notify invalidates before broadcasting")

	require.Len(t, got, 1)
	assert.Equal(t, EventInvalidated, got[0].Type)
	assert.Equal(t, "alice", got[0].Username)
	assert.Equal(t, "update", got[0].Reason)
	assert.False(t, got[0].At.IsZero())
}

func TestHubNotifyOtherUserUntouched(t *testing.T) {
	store := NewStore()
	hub := NewHub(store)
	store.Put("alice", []models.LibraryEntry{{ID: 1}})
	store.Put("bob", []models.LibraryEntry{{ID: 2}})

	hub.Notify("alice", "delete")

	_, ok := store.Get("bob")
	assert.True(t, ok, "only the mutated user's snapshot drops")
}
