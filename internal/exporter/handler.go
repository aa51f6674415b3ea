package exporter

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"playdamnit/internal/auth"
	"playdamnit/internal/backend"
)

// Handler streams library exports to the browser with the same
// deterministic filename the CLI writes to disk.
type Handler struct {
	Exporter *Exporter
}

func NewHandler(exporter *Exporter) *Handler {
	return &Handler{Exporter: exporter}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user/:username/games/export", h.download)
}

func (h *Handler) download(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	username := strings.TrimSpace(c.Param("username"))
	if claims == nil || !strings.EqualFold(claims.Username, username) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your library"})
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "json"))
	data, contentType, err := h.Exporter.Fetch(c.Request.Context(), claims.SessionToken, claims.Username, format)
	if err != nil {
		if errors.Is(err, backend.ErrBadFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or csv"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "export failed"})
		return
	}

	filename := Filename(claims.Username, format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
