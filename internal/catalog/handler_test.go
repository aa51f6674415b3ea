package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playdamnit/internal/backend"
)

func searchRouter(t *testing.T, upstream http.HandlerFunc) (*gin.Engine, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(backend.NewClient(srv.URL, logrus.New()), logrus.New())
	h.RegisterRoutes(r.Group("/games"))
	return r, srv
}

func TestSearchProxiesQuery(t *testing.T) {
	r, _ := searchRouter(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/games/search", req.URL.Path)
		assert.Equal(t, "zelda", req.URL.Query().Get("q"))
		assert.Equal(t, "5", req.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"id": 7, "name": "The Legend of Zelda", "slug": "the-legend-of-zelda"}},
			"total":   1,
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/search?q=zelda&limit=5", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The Legend of Zelda")
}

func TestSearchRequiresQuery(t *testing.T) {
	r, _ := searchRouter(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("upstream should not be called")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/search", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchRejectsBadLimit(t *testing.T) {
	r, _ := searchRouter(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("upstream should not be called")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/search?q=zelda&limit=9999", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchUpstreamFailure(t *testing.T) {
	r, _ := searchRouter(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/games/search?q=zelda", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
