package library

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"playdamnit/internal/auth"
	"playdamnit/internal/backend"
	"playdamnit/pkg/models"
)

type Handler struct {
	Service *Service
	Tokens  auth.TokenService
}

func NewHandler(service *Service, tokens auth.TokenService) *Handler {
	return &Handler{Service: service, Tokens: tokens}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/:username/games", h.list)

	protected := rg.Group("", auth.Middleware(h.Tokens))
	protected.POST("/user/:username/games", h.add)
	protected.PATCH("/user/:username/games/:id", h.update)
	protected.DELETE("/user/:username/games/:id", h.remove)
}

// list serves the grouped game list for a profile page. tab and q
// narrow the view; grouping happens after filtering so year buckets
// only contain what the user sees.
func (h *Handler) list(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}

	tab := TabAll
	if raw := c.Query("tab"); raw != "" {
		parsed, ok := ParseTab(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown tab"})
			return
		}
		tab = parsed
	}
	term := c.Query("q")

	entries, err := h.Service.Snapshot(c.Request.Context(), viewerToken(c, h.Tokens), username)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "library unavailable"})
		return
	}

	filtered := Filter(entries, tab, term)
	c.JSON(http.StatusOK, gin.H{
		"total":  len(filtered),
		"tab":    tab,
		"groups": GroupByYear(filtered),
	})
}

func (h *Handler) add(c *gin.Context) {
	username, ok := h.ownProfile(c)
	if !ok {
		return
	}

	var req models.AddGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game payload"})
		return
	}

	entry, err := h.Service.Add(c.Request.Context(), sessionToken(c), username, req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "add failed"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) update(c *gin.Context) {
	username, ok := h.ownProfile(c)
	if !ok {
		return
	}
	gameID, ok := gameIDParam(c)
	if !ok {
		return
	}

	var req models.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}

	entry, err := h.Service.Update(c.Request.Context(), sessionToken(c), username, gameID, req)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not in library"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *Handler) remove(c *gin.Context) {
	username, ok := h.ownProfile(c)
	if !ok {
		return
	}
	gameID, ok := gameIDParam(c)
	if !ok {
		return
	}

	if err := h.Service.Remove(c.Request.Context(), sessionToken(c), username, gameID); err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not in library"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "remove failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}

// ownProfile ensures the signed-in user only mutates their own library.
func (h *Handler) ownProfile(c *gin.Context) (string, bool) {
	claims := auth.MustGetClaims(c)
	username := strings.TrimSpace(c.Param("username"))
	if claims == nil || username == "" || !strings.EqualFold(claims.Username, username) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your library"})
		return "", false
	}
	return claims.Username, true
}

func gameIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return 0, false
	}
	return id, true
}

func sessionToken(c *gin.Context) string {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		return ""
	}
	return claims.SessionToken
}

// viewerToken resolves the caller's backend token when signed in;
// public profiles are fetched anonymously.
func viewerToken(c *gin.Context, tokens auth.TokenService) string {
	cookie, err := c.Cookie(auth.SessionCookie)
	if err != nil || cookie == "" {
		return ""
	}
	claims, err := tokens.Parse(cookie)
	if err != nil {
		return ""
	}
	return claims.SessionToken
}
