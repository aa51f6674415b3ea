package assistant

import (
	"fmt"
	"strings"

	"playdamnit/pkg/models"
)

// State is where a conversation sits in the logging flow. The panel
// opens into Chatting; a reply carrying game candidates moves it to
// Search; picking one opens the AddForm; submitting or cancelling
// returns to Chatting.
type State string

const (
	StateClosed   State = "closed"
	StateChatting State = "chatting"
	StateSearch   State = "search"
	StateAddForm  State = "add_form"
)

// Conversation is one user's assistant session. Not safe for
// concurrent use; the owning session serializes access.
type Conversation struct {
	ID       string
	Username string
	State    State
	Messages []models.ChatMessage

	hits     []models.SearchResult
	selected *models.SearchResult
}

func NewConversation(id, username string) *Conversation {
	return &Conversation{ID: id, Username: username, State: StateClosed}
}

// Open starts (or restarts) the chat panel.
func (c *Conversation) Open() error {
	if c.State != StateClosed {
		return fmt.Errorf("cannot open conversation in state %s", c.State)
	}
	c.State = StateChatting
	return nil
}

// Close ends the session from any state, clearing transient
// selection but keeping the transcript.
func (c *Conversation) Close() {
	c.State = StateClosed
	c.hits = nil
	c.selected = nil
}

// AddUserMessage appends the user's turn. Allowed while chatting or
// while candidates are on screen (a new message abandons them).
func (c *Conversation) AddUserMessage(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("empty message")
	}
	switch c.State {
	case StateChatting:
	case StateSearch:
		c.hits = nil
		c.State = StateChatting
	default:
		return fmt.Errorf("cannot send message in state %s", c.State)
	}
	c.Messages = append(c.Messages, models.ChatMessage{Role: "user", Content: text})
	return nil
}

// AddAssistantMessage appends the assistant's reply. Game hits in the
// reply move the conversation to Search; a newer candidate list
// supersedes the one on screen.
func (c *Conversation) AddAssistantMessage(msg models.ChatMessage) error {
	if c.State != StateChatting && c.State != StateSearch {
		return fmt.Errorf("unexpected assistant reply in state %s", c.State)
	}
	msg.Role = "assistant"
	c.Messages = append(c.Messages, msg)
	if len(msg.GameHits) > 0 {
		c.hits = msg.GameHits
		c.State = StateSearch
	}
	return nil
}

// Hits returns the candidates currently offered to the user.
func (c *Conversation) Hits() []models.SearchResult {
	return c.hits
}

// Select picks one candidate by id and opens the add form.
func (c *Conversation) Select(gameID int) (*models.SearchResult, error) {
	if c.State != StateSearch {
		return nil, fmt.Errorf("no candidates to select in state %s", c.State)
	}
	for i := range c.hits {
		if c.hits[i].ID == gameID {
			c.selected = &c.hits[i]
			c.State = StateAddForm
			return c.selected, nil
		}
	}
	return nil, fmt.Errorf("game %d is not among the candidates", gameID)
}

// Selected returns the game on the add form, nil outside AddForm.
func (c *Conversation) Selected() *models.SearchResult {
	return c.selected
}

// CancelForm abandons the add form and returns to the candidates.
func (c *Conversation) CancelForm() error {
	if c.State != StateAddForm {
		return fmt.Errorf("no form to cancel in state %s", c.State)
	}
	c.selected = nil
	c.State = StateSearch
	return nil
}

// Submit validates the form and builds the add request. The state does
// not change here: the caller performs the library write and commits
// with FinishForm once it succeeds, so a failed write keeps the form
// open for another attempt.
func (c *Conversation) Submit(status string, rating float64) (models.AddGameRequest, error) {
	if c.State != StateAddForm || c.selected == nil {
		return models.AddGameRequest{}, fmt.Errorf("no form to submit in state %s", c.State)
	}
	switch status {
	case models.StatusFinished, models.StatusPlaying, models.StatusDropped, models.StatusWantToPlay:
	default:
		return models.AddGameRequest{}, fmt.Errorf("unknown status %q", status)
	}
	if rating < 0 || rating > 10 {
		return models.AddGameRequest{}, fmt.Errorf("rating must be between 0 and 10")
	}

	req := models.AddGameRequest{
		GameID: c.selected.ID,
		Status: status,
		Rating: rating,
	}
	if len(c.selected.Platforms) > 0 {
		req.PlatformID = c.selected.Platforms[0].ID
	}
	return req, nil
}

// FinishForm commits a submitted form: candidates and selection are
// discarded and the conversation returns to Chatting.
func (c *Conversation) FinishForm() error {
	if c.State != StateAddForm {
		return fmt.Errorf("no form to finish in state %s", c.State)
	}
	c.selected = nil
	c.hits = nil
	c.State = StateChatting
	return nil
}
