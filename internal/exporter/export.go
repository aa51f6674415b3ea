package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"playdamnit/internal/backend"
)

// Exporter downloads a server-rendered library file. Serialization is
// the backend's job; this side only names the file and saves it.
type Exporter struct {
	client *backend.Client
	logger *logrus.Logger
}

func New(client *backend.Client, logger *logrus.Logger) *Exporter {
	return &Exporter{client: client, logger: logger}
}

// Filename is the deterministic download name:
// games-export-{username}-{YYYY-MM-DD}.{format}.
func Filename(username, format string, now time.Time) string {
	return fmt.Sprintf("games-export-%s-%s.%s", username, now.UTC().Format("2006-01-02"), format)
}

// Fetch returns the rendered file bytes and content type without
// touching disk, for handlers that stream the download onward.
func (e *Exporter) Fetch(ctx context.Context, token, username, format string) ([]byte, string, error) {
	return e.client.WithToken(token).ExportLibrary(ctx, username, format)
}

// Export fetches the rendered file and writes it into dir, returning
// the written path. The write goes through a temp file and a rename so
// a failed download never leaves a partial file behind.
func (e *Exporter) Export(ctx context.Context, token, username, format, dir string) (string, error) {
	data, _, err := e.client.WithToken(token).ExportLibrary(ctx, username, format)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	outPath := filepath.Join(dir, Filename(username, format, time.Now()))
	tmp, err := os.CreateTemp(dir, ".games-export-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close export: %w", err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("finalize export: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"username": username,
		"format":   format,
		"path":     outPath,
		"bytes":    len(data),
	}).Info("library exported")
	return outPath, nil
}
