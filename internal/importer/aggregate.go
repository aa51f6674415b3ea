package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"playdamnit/pkg/models"
)

// Per-item outcomes as the backend reports them while an import runs.
const (
	OutcomeImported = "imported"
	OutcomeSkipped  = "skipped"
	OutcomeError    = "error"
)

// ItemOutcome is one row's fate within a bulk import.
type ItemOutcome struct {
	GameID       int    `json:"gameId"`
	Outcome      string `json:"outcome"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// Tally accumulates item outcomes incrementally. Feeding it the same
// sequence item by item or all at once via Aggregate yields the same
// ImportOutcome; error order is the arrival order.
type Tally struct {
	outcome models.ImportOutcome
}

// Add records one item.
func (t *Tally) Add(item ItemOutcome) {
	switch item.Outcome {
	case OutcomeImported:
		t.outcome.Imported++
	case OutcomeSkipped:
		t.outcome.Skipped++
	default:
		t.outcome.Errors++
		t.outcome.ErrorGames = append(t.outcome.ErrorGames, models.ImportError{
			GameID: item.GameID,
			Error:  item.ErrorMessage,
		})
	}
}

// Outcome returns the summary so far.
func (t *Tally) Outcome() models.ImportOutcome {
	return t.outcome
}

// Aggregate reduces a complete outcome sequence in one shot.
func Aggregate(items []ItemOutcome) models.ImportOutcome {
	var t Tally
	for _, item := range items {
		t.Add(item)
	}
	return t.Outcome()
}

// ErrUnsupportedFormat rejects import files that are neither json nor csv.
var ErrUnsupportedFormat = errors.New("only .json and .csv files are accepted")

// DetectFormat validates the import file by extension, mirroring the
// UI's accept list. Only json and csv files reach the backend.
func DetectFormat(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return "json", nil
	case ".csv":
		return "csv", nil
	default:
		return "", fmt.Errorf("unsupported import file %q: %w", filepath.Base(filename), ErrUnsupportedFormat)
	}
}
