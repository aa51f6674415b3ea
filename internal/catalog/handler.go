package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"playdamnit/internal/backend"
)

const defaultLimit = 20

// Handler proxies catalog search to the backend. The gateway adds no
// state of its own here; it exists so the browser talks to one origin.
type Handler struct {
	Client *backend.Client
	Logger *logrus.Logger
}

func NewHandler(client *backend.Client, logger *logrus.Logger) *Handler {
	return &Handler{Client: client, Logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search) // GET /games/search
}

func (h *Handler) search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q required"})
		return
	}

	limit := defaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be 1-100"})
			return
		}
		limit = n
	}

	resp, err := h.Client.SearchCatalog(c.Request.Context(), q, limit)
	if err != nil {
		h.Logger.WithError(err).WithField("query", q).Warn("catalog search failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "search unavailable"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
