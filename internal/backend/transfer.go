package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"playdamnit/pkg/models"
)

// ErrBadFormat rejects export formats other than json and csv.
var ErrBadFormat = errors.New("format must be json or csv")

// ExportLibrary asks the backend to render the user's library as json
// or csv and returns the raw file bytes plus the content type. The
// backend owns serialization; this client never re-encodes.
func (c *Client) ExportLibrary(ctx context.Context, username, format string) ([]byte, string, error) {
	if format != "json" && format != "csv" {
		return nil, "", fmt.Errorf("unsupported export format %q: %w", format, ErrBadFormat)
	}

	qv := url.Values{}
	qv.Set("format", format)
	qv.Set("download", "true")
	path := "/user/" + url.PathEscape(username) + "/games/export?" + qv.Encode()

	data, contentType, err := c.doRaw(ctx, http.MethodGet, path)
	if err != nil {
		return nil, "", fmt.Errorf("export library as %s: %w", format, err)
	}
	return data, contentType, nil
}

// ImportLibrary uploads a JSON or CSV library file as multipart form
// data and returns the backend's per-run outcome.
func (c *Client) ImportLibrary(ctx context.Context, username, filename string, file io.Reader, overwriteExisting bool) (*models.ImportOutcome, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy import file: %w", err)
	}
	if err := mw.WriteField("overwriteExisting", strconv.FormatBool(overwriteExisting)); err != nil {
		return nil, fmt.Errorf("write overwriteExisting field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	path := "/user/" + url.PathEscape(username) + "/games/import"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var outcome models.ImportOutcome
	if err := decodeJSON(resp.Body, &outcome); err != nil {
		return nil, fmt.Errorf("decode import outcome: %w", err)
	}
	return &outcome, nil
}
