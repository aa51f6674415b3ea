package models

// ImportError is one failed row of a bulk import.
type ImportError struct {
	GameID int    `json:"gameId"`
	Error  string `json:"error"`
}

// ImportOutcome summarizes a bulk-import run.
// Invariant: Imported + Skipped + Errors == items submitted.
type ImportOutcome struct {
	Imported   int           `json:"imported"`
	Skipped    int           `json:"skipped"`
	Errors     int           `json:"errors"`
	ErrorGames []ImportError `json:"errorGames,omitempty"`
}

// Total is the number of items the run consumed.
func (o ImportOutcome) Total() int {
	return o.Imported + o.Skipped + o.Errors
}

// SuccessRate is Imported/Total in [0,1]; an empty run rates 0, not NaN.
func (o ImportOutcome) SuccessRate() float64 {
	total := o.Total()
	if total < 1 {
		total = 1
	}
	return float64(o.Imported) / float64(total)
}

// SuccessPercent is the rate scaled to 0-100 for display.
func (o ImportOutcome) SuccessPercent() float64 {
	return o.SuccessRate() * 100
}
