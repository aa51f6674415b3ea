package models

// Play statuses as the backend stores them. Anything else is treated as
// unknown, never rejected at read time.
const (
	StatusFinished   = "finished"
	StatusPlaying    = "playing"
	StatusDropped    = "dropped"
	StatusWantToPlay = "want_to_play"
)

// UserGameData is one user's tracking data for a single game.
// Rating 0 means "not rated". EndedAt is only set for finished/dropped.
type UserGameData struct {
	Status     string  `json:"status,omitempty"`
	Rating     float64 `json:"rating,omitempty"`
	Review     string  `json:"review,omitempty"`
	PlatformID int     `json:"platformId,omitempty"`
	Source     string  `json:"source,omitempty"` // manual | steam | gog
	AddedAt    string  `json:"addedAt,omitempty"`
	EndedAt    string  `json:"endedAt,omitempty"`
}

// AddGameRequest is the body of POST /user/{username}/games.
type AddGameRequest struct {
	GameID     int     `json:"gameId" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=finished playing dropped want_to_play"`
	Rating     float64 `json:"rating" binding:"min=0,max=10"`
	Review     string  `json:"review,omitempty"`
	PlatformID int     `json:"platformId" binding:"required"`
	EndedAt    string  `json:"endedAt,omitempty"`
}

// UpdateGameRequest is the partial body of PATCH /user/{username}/games/{id}.
type UpdateGameRequest struct {
	Status  *string  `json:"status,omitempty" binding:"omitempty,oneof=finished playing dropped want_to_play"`
	Rating  *float64 `json:"rating,omitempty" binding:"omitempty,min=0,max=10"`
	Review  *string  `json:"review,omitempty"`
	EndedAt *string  `json:"endedAt,omitempty"`
}

type LibraryResponse struct {
	Games []LibraryEntry `json:"games"`
}
