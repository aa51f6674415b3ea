package assistant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"playdamnit/internal/auth"
	"playdamnit/pkg/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var errUnknownCommand = errors.New("unknown command type")

type command struct {
	Type   string  `json:"type"` // message | search | select | cancel | submit
	Text   string  `json:"text,omitempty"`
	Query  string  `json:"query,omitempty"`
	GameID int     `json:"gameId,omitempty"`
	Status string  `json:"status,omitempty"`
	Rating float64 `json:"rating,omitempty"`
	Review string  `json:"review,omitempty"`
}

type event struct {
	Type    string               `json:"type"` // reply | state | error | added
	State   State                `json:"state,omitempty"`
	Message *models.ChatMessage  `json:"message,omitempty"`
	Game    *models.SearchResult `json:"game,omitempty"`
	Entry   *models.LibraryEntry `json:"entry,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// WSHandler runs one assistant session per websocket connection. The
// session closes with the socket.
func WSHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := auth.MustGetClaims(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer ws.Close()

		id, err := svc.Open(claims.Username, claims.SessionToken)
		if err != nil {
			_ = ws.WriteJSON(event{Type: "error", Error: "could not start session"})
			return
		}
		defer svc.Close(id)

		_ = ws.WriteJSON(event{Type: "state", State: StateChatting})

		for {
			_, payload, err := ws.ReadMessage()
			if err != nil {
				return
			}

			var cmd command
			if err := json.Unmarshal(payload, &cmd); err != nil {
				_ = ws.WriteJSON(event{Type: "error", Error: "invalid command"})
				continue
			}

			svc.dispatch(c, ws, id, cmd)
		}
	}
}

func (s *Service) dispatch(c *gin.Context, ws *websocket.Conn, id string, cmd command) {
	ctx := c.Request.Context()

	var (
		ev  event
		err error
	)

	switch cmd.Type {
	case "message":
		var reply *models.ChatMessage
		reply, err = s.Send(ctx, id, cmd.Text)
		ev = event{Type: "reply", Message: reply}
	case "search":
		var reply *models.ChatMessage
		reply, err = s.Search(ctx, id, cmd.Query)
		ev = event{Type: "reply", Message: reply}
	case "select":
		var game *models.SearchResult
		game, err = s.Select(id, cmd.GameID)
		ev = event{Type: "state", Game: game}
	case "cancel":
		err = s.CancelForm(id)
		ev = event{Type: "state"}
	case "submit":
		var entry *models.LibraryEntry
		entry, err = s.Submit(ctx, id, cmd.Status, cmd.Rating, cmd.Review)
		ev = event{Type: "added", Entry: entry}
	default:
		err = errUnknownCommand
	}

	if err != nil {
		s.Logger.WithError(err).WithField("session", id).Debug("assistant command failed")
		_ = ws.WriteJSON(event{Type: "error", Error: err.Error()})
		return
	}

	if state, serr := s.State(id); serr == nil {
		ev.State = state
	}
	_ = ws.WriteJSON(ev)
}
