package importer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playdamnit/internal/backend"
	"playdamnit/internal/cache"
	"playdamnit/pkg/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRunUploadsAndInvalidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/alice/games/import", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"imported":2,"skipped":0,"errors":0}`))
	}))
	defer srv.Close()

	store := cache.NewStore()
	store.Put("alice", []models.LibraryEntry{{ID: 1}})
	hub := cache.NewHub(store)

	var events []cache.Event
	hub.Subscribe(func(ev cache.Event) { events = append(events, ev) })

	runner := NewRunner(backend.NewClient(srv.URL, testLogger()), hub, testLogger())
	outcome, err := runner.Run(context.Background(), "tok", "alice", "lib.json",
		bytes.NewReader([]byte(`[]`)), false)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Imported)

	_, cached := store.Get("alice")
	assert.False(t, cached, "snapshot invalidated after import")
	require.Len(t, events, 1)
	assert.Equal(t, "import", events[0].Reason)
}

func TestRunRejectsBadFileType(t *testing.T) {
	runner := NewRunner(backend.NewClient("http://localhost:0", testLogger()), nil, testLogger())
	_, err := runner.Run(context.Background(), "tok", "alice", "lib.xlsx", bytes.NewReader(nil), false)
	assert.Error(t, err)
}

func TestRunSerializedPerUser(t *testing.T) {
	runner := NewRunner(backend.NewClient("http://localhost:0", testLogger()), nil, testLogger())

	require.True(t, runner.acquire("alice"))
	assert.True(t, runner.Running("alice"))

	_, err := runner.Run(context.Background(), "tok", "alice", "lib.json", bytes.NewReader(nil), false)
	assert.True(t, errors.Is(err, ErrImportInFlight))

	// a different user is unaffected
	assert.False(t, runner.Running("bob"))

	runner.release("alice")
	assert.False(t, runner.Running("alice"))
}

func TestRunFailureDoesNotInvalidate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("import exploded"))
	}))
	defer srv.Close()

	store := cache.NewStore()
	store.Put("alice", []models.LibraryEntry{{ID: 1}})
	hub := cache.NewHub(store)

	runner := NewRunner(backend.NewClient(srv.URL, testLogger()), hub, testLogger())
	_, err := runner.Run(context.Background(), "tok", "alice", "lib.csv", bytes.NewReader(nil), true)
	require.Error(t, err)

	_, cached := store.Get("alice")
	assert.True(t, cached, "failed run leaves the snapshot alone")
	assert.False(t, runner.Running("alice"), "guard released on failure")
}
