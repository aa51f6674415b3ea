package assistant

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"playdamnit/internal/backend"
	"playdamnit/internal/library"
	"playdamnit/pkg/models"
)

const (
	searchesPerSecond = 1
	searchBurst       = 3
	maxCandidates     = 5
)

// Session is one live assistant conversation plus its token and a
// limiter so a chatty client cannot hammer catalog search.
type Session struct {
	mu      sync.Mutex
	conv    *Conversation
	token   string
	limiter *rate.Limiter
}

// Service orchestrates assistant turns: relay to the AI backend,
// drive the conversation state, and perform the final library write.
type Service struct {
	AI      *AIClient
	Catalog *backend.Client
	Library *library.Service
	Logger  *logrus.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewService(ai *AIClient, catalog *backend.Client, lib *library.Service, logger *logrus.Logger) *Service {
	return &Service{
		AI:       ai,
		Catalog:  catalog,
		Library:  lib,
		Logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Open creates a session for the user and returns its id.
func (s *Service) Open(username, token string) (string, error) {
	conv := NewConversation(uuid.NewString(), username)
	if err := conv.Open(); err != nil {
		return "", err
	}

	sess := &Session{
		conv:    conv,
		token:   token,
		limiter: rate.NewLimiter(rate.Limit(searchesPerSecond), searchBurst),
	}

	s.mu.Lock()
	s.sessions[conv.ID] = sess
	s.mu.Unlock()
	return conv.ID, nil
}

// Close drops the session. Safe to call twice.
func (s *Service) Close(id string) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		sess.mu.Lock()
		sess.conv.Close()
		sess.mu.Unlock()
	}
}

func (s *Service) session(id string) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown session %s", id)
	}
	return sess, nil
}

// Send relays one user message and returns the assistant's reply.
// Replies carrying game candidates put the session into search mode.
func (s *Service) Send(ctx context.Context, id, text string) (*models.ChatMessage, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.conv.AddUserMessage(text); err != nil {
		return nil, err
	}

	reply, err := s.AI.Chat(ctx, sess.token, sess.conv.Messages)
	if err != nil {
		// drop the unanswered turn so a retry does not duplicate it
		sess.conv.Messages = sess.conv.Messages[:len(sess.conv.Messages)-1]
		return nil, fmt.Errorf("assistant unavailable: %w", err)
	}

	if err := sess.conv.AddAssistantMessage(*reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// Search runs a catalog query on the user's behalf and surfaces the
// hits as an assistant turn. Rate limited per session.
func (s *Service) Search(ctx context.Context, id, query string) (*models.ChatMessage, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.limiter.Allow() {
		return nil, fmt.Errorf("searching too fast, slow down")
	}

	resp, err := s.Catalog.SearchCatalog(ctx, query, maxCandidates)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}

	msg := models.ChatMessage{
		Role:     "assistant",
		Content:  fmt.Sprintf("Found %d games matching %q. Pick one to add it.", len(resp.Results), query),
		GameHits: resp.Results,
	}
	if err := sess.conv.AddAssistantMessage(msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Select opens the add form for one of the offered candidates.
func (s *Service) Select(id string, gameID int) (*models.SearchResult, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.conv.Select(gameID)
}

// CancelForm returns the session from the add form to the candidates.
func (s *Service) CancelForm(id string) error {
	sess, err := s.session(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.conv.CancelForm()
}

// Submit completes the flow: validate the form, write the entry
// through the library service and confirm in the transcript.
func (s *Service) Submit(ctx context.Context, id, status string, rating float64, review string) (*models.LibraryEntry, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	req, err := sess.conv.Submit(status, rating)
	if err != nil {
		return nil, err
	}
	req.Review = review

	entry, err := s.Library.Add(ctx, sess.token, sess.conv.Username, req)
	if err != nil {
		return nil, fmt.Errorf("could not add game: %w", err)
	}
	if err := sess.conv.FinishForm(); err != nil {
		return nil, err
	}

	sess.conv.Messages = append(sess.conv.Messages, models.ChatMessage{
		Role:    "assistant",
		Content: fmt.Sprintf("Added %s to your library as %s.", entry.Name, status),
	})
	return entry, nil
}

// Transcript returns a copy of the session's messages.
func (s *Service) Transcript(id string) ([]models.ChatMessage, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return append([]models.ChatMessage(nil), sess.conv.Messages...), nil
}

// State reports where the session's conversation currently sits.
func (s *Service) State(id string) (State, error) {
	sess, err := s.session(id)
	if err != nil {
		return StateClosed, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.conv.State, nil
}
