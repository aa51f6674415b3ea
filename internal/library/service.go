package library

import (
	"context"

	"github.com/sirupsen/logrus"

	"playdamnit/internal/backend"
	"playdamnit/internal/cache"
	"playdamnit/pkg/models"
)

// Service reads library snapshots through the cache and pushes
// mutations to the backend, invalidating on every write.
type Service struct {
	Client *backend.Client
	Hub    *cache.Hub
	Logger *logrus.Logger
}

func NewService(client *backend.Client, hub *cache.Hub, logger *logrus.Logger) *Service {
	return &Service{Client: client, Hub: hub, Logger: logger}
}

// Snapshot returns the user's library, from cache when fresh. A miss
// refetches from the backend and repopulates the cache.
func (s *Service) Snapshot(ctx context.Context, token, username string) ([]models.LibraryEntry, error) {
	if entries, ok := s.Hub.Store().Get(username); ok {
		return entries, nil
	}

	entries, err := s.Client.WithToken(token).UserLibrary(ctx, username)
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{
		"username": username,
		"entries":  len(entries),
	}).Debug("library snapshot refreshed")
	s.Hub.Store().Put(username, entries)
	return entries, nil
}

// Add creates an entry and invalidates the snapshot.
func (s *Service) Add(ctx context.Context, token, username string, req models.AddGameRequest) (*models.LibraryEntry, error) {
	entry, err := s.Client.WithToken(token).AddGame(ctx, username, req)
	if err != nil {
		return nil, err
	}
	s.Hub.Notify(username, "add")
	return entry, nil
}

// Update patches an entry and invalidates the snapshot.
func (s *Service) Update(ctx context.Context, token, username string, gameID int, req models.UpdateGameRequest) (*models.LibraryEntry, error) {
	entry, err := s.Client.WithToken(token).UpdateGame(ctx, username, gameID, req)
	if err != nil {
		return nil, err
	}
	s.Hub.Notify(username, "update")
	return entry, nil
}

// Remove deletes an entry and invalidates the snapshot.
func (s *Service) Remove(ctx context.Context, token, username string, gameID int) error {
	if err := s.Client.WithToken(token).DeleteGame(ctx, username, gameID); err != nil {
		return err
	}
	s.Hub.Notify(username, "remove")
	return nil
}
