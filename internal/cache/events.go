package cache

import "time"

// Event types broadcast after a library mutation. Subscribers refetch
// instead of merging: the event carries no entry data on purpose.
const (
	EventInvalidated = "library.invalidated"
)

type Event struct {
	Type     string    `json:"type"`
	Username string    `json:"username"`
	Reason   string    `json:"reason,omitempty"` // add | update | delete | import
	At       time.Time `json:"at"`
}
