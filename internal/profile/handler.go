package profile

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"playdamnit/internal/backend"
	"playdamnit/internal/library"
)

type Handler struct {
	Client  *backend.Client
	Library *library.Service
	Logger  *logrus.Logger
}

func NewHandler(client *backend.Client, lib *library.Service, logger *logrus.Logger) *Handler {
	return &Handler{Client: client, Library: lib, Logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/:username", h.view)
}

// view serves the profile header: owner info, stat cards and tab
// badge counts. The grouped game list is its own endpoint.
func (h *Handler) view(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}

	user, err := h.Client.User(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.Logger.WithError(err).WithField("username", username).Warn("profile fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "profile unavailable"})
		return
	}

	entries, err := h.Library.Snapshot(c.Request.Context(), "", username)
	if err != nil {
		h.Logger.WithError(err).WithField("username", username).Warn("library fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "profile unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"stats":     ComputeStats(entries),
		"tabCounts": TabCounts(entries),
	})
}
