package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"playdamnit/pkg/models"
)

// User fetches the public profile for a username.
// A 404 means the username does not exist.
func (c *Client) User(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	path := "/user/" + url.PathEscape(username)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", username, err)
	}
	return &user, nil
}

// UserLibrary fetches one user's full library snapshot.
// A 404 means the username does not exist.
func (c *Client) UserLibrary(ctx context.Context, username string) ([]models.LibraryEntry, error) {
	var resp models.LibraryResponse
	path := "/user/" + url.PathEscape(username) + "/games"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch library for %s: %w", username, err)
	}
	return resp.Games, nil
}

// AddGame creates a library entry for the signed-in user.
func (c *Client) AddGame(ctx context.Context, username string, req models.AddGameRequest) (*models.LibraryEntry, error) {
	var entry models.LibraryEntry
	path := "/user/" + url.PathEscape(username) + "/games"
	if err := c.doJSON(ctx, http.MethodPost, path, req, &entry); err != nil {
		return nil, fmt.Errorf("add game %d: %w", req.GameID, err)
	}
	return &entry, nil
}

// UpdateGame applies a partial update to one entry.
func (c *Client) UpdateGame(ctx context.Context, username string, gameID int, req models.UpdateGameRequest) (*models.LibraryEntry, error) {
	var entry models.LibraryEntry
	path := fmt.Sprintf("/user/%s/games/%d", url.PathEscape(username), gameID)
	if err := c.doJSON(ctx, http.MethodPatch, path, req, &entry); err != nil {
		return nil, fmt.Errorf("update game %d: %w", gameID, err)
	}
	return &entry, nil
}

// DeleteGame removes one entry from the user's library.
func (c *Client) DeleteGame(ctx context.Context, username string, gameID int) error {
	path := fmt.Sprintf("/user/%s/games/%d", url.PathEscape(username), gameID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete game %d: %w", gameID, err)
	}
	return nil
}
