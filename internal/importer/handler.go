package importer

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"playdamnit/internal/auth"
)

const maxUploadBytes = 16 << 20

// Handler exposes bulk import over the gateway. One import per user
// at a time; concurrent attempts get a 409.
type Handler struct {
	Runner *Runner
}

func NewHandler(runner *Runner) *Handler {
	return &Handler{Runner: runner}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/user/:username/games/import", h.importFile)
}

func (h *Handler) importFile(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	username := strings.TrimSpace(c.Param("username"))
	if claims == nil || !strings.EqualFold(claims.Username, username) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your library"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer file.Close()

	overwrite := strings.EqualFold(c.PostForm("overwriteExisting"), "true")

	outcome, err := h.Runner.Run(c.Request.Context(), claims.SessionToken, claims.Username, fileHeader.Filename, file, overwrite)
	if err != nil {
		switch {
		case errors.Is(err, ErrImportInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": "an import is already running"})
		case errors.Is(err, ErrUnsupportedFormat):
			c.JSON(http.StatusBadRequest, gin.H{"error": "only .json and .csv files are supported"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "import failed"})
		}
		return
	}

	c.JSON(http.StatusOK, outcome)
}
