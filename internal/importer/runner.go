package importer

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"playdamnit/internal/backend"
	"playdamnit/internal/cache"
	"playdamnit/pkg/models"
)

// ErrImportInFlight is returned while a user already has an import
// running. The gateway maps it to 409 instead of trusting clients to
// disable their buttons.
var ErrImportInFlight = errors.New("an import is already running for this user")

// Runner uploads library files to the backend, one run per user at a
// time, and invalidates the cached snapshot when a run finishes.
type Runner struct {
	client *backend.Client
	hub    *cache.Hub
	logger *logrus.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewRunner(client *backend.Client, hub *cache.Hub, logger *logrus.Logger) *Runner {
	return &Runner{
		client:   client,
		hub:      hub,
		logger:   logger,
		inflight: make(map[string]struct{}),
	}
}

// Run validates the file, uploads it, and reports the outcome. The
// snapshot is invalidated even when some rows fail: successfully
// imported rows are already committed server-side.
func (r *Runner) Run(ctx context.Context, token, username, filename string, file io.Reader, overwriteExisting bool) (*models.ImportOutcome, error) {
	if _, err := DetectFormat(filename); err != nil {
		return nil, err
	}

	if !r.acquire(username) {
		return nil, ErrImportInFlight
	}
	defer r.release(username)

	runID := uuid.NewString()
	outcome, err := r.client.WithToken(token).ImportLibrary(ctx, username, filename, file, overwriteExisting)
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"run_id":   runID,
			"username": username,
		}).Warn("import failed")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"run_id":       runID,
		"username":     username,
		"imported":     outcome.Imported,
		"skipped":      outcome.Skipped,
		"errors":       outcome.Errors,
		"success_rate": outcome.SuccessRate(),
	}).Info("import finished")

	if r.hub != nil && outcome.Total() > 0 {
		r.hub.Notify(username, "import")
	}
	return outcome, nil
}

// Running reports whether username has an import in flight.
func (r *Runner) Running(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.inflight[username]
	return ok
}

func (r *Runner) acquire(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inflight[username]; ok {
		return false
	}
	r.inflight[username] = struct{}{}
	return true
}

func (r *Runner) release(username string) {
	r.mu.Lock()
	delete(r.inflight, username)
	r.mu.Unlock()
}
