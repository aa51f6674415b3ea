package models

// ChatMessage is one turn of an assistant conversation. Role is
// "user" or "assistant"; the backend may attach game candidates it
// found while handling the turn.
type ChatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	GameHits   []SearchResult `json:"gameHits,omitempty"`
	UserRating float64        `json:"userRating,omitempty"`
	UserStatus string         `json:"userStatus,omitempty"`
	UserReview string         `json:"userReview,omitempty"`
}

// ChatRequest is what the gateway relays to the AI backend.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the AI backend's reply for one request.
type ChatResponse struct {
	Message ChatMessage `json:"message"`
}
