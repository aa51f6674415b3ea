package exporter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playdamnit/internal/backend"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "games-export-alice-2024-03-09.json", Filename("alice", "json", at))
	assert.Equal(t, "games-export-alice-2024-03-09.csv", Filename("alice", "csv", at))

	// local-time callers still get the UTC date
	inTZ := time.Date(2024, 3, 10, 0, 30, 0, 0, time.FixedZone("ahead", 2*3600))
	assert.Equal(t, "games-export-alice-2024-03-09.csv", Filename("alice", "csv", inTZ))
}

func TestExportWritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user/alice/games/export", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("id,name\n1,Celeste\n"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	exp := New(backend.NewClient(srv.URL, testLogger()), testLogger())

	path, err := exp.Export(context.Background(), "tok", "alice", "csv", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, Filename("alice", "csv", time.Now())), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,Celeste\n", string(content))
}

func TestExportFailureLeavesNoFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	dir := t.TempDir()
	exp := New(backend.NewClient(srv.URL, testLogger()), testLogger())

	_, err := exp.Export(context.Background(), "tok", "alice", "json", dir)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial file offered on failure")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	exp := New(backend.NewClient("http://localhost:0", testLogger()), testLogger())
	_, err := exp.Export(context.Background(), "tok", "alice", "xml", t.TempDir())
	assert.Error(t, err)
}
