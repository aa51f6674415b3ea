package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playdamnit/internal/auth"
	"playdamnit/internal/backend"
	"playdamnit/internal/cache"
	"playdamnit/pkg/models"
)

func importRouter(t *testing.T, upstream http.HandlerFunc) (*gin.Engine, *Runner, string) {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	tokens := auth.TokenService{Secret: []byte("test-secret"), Issuer: "playdamnit", Duration: time.Hour}
	signed, _, err := tokens.Sign(&models.Session{
		Token:     "backend-token",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      models.User{ID: "u1", Username: "sabrina"},
	})
	require.NoError(t, err)

	runner := NewRunner(backend.NewClient(srv.URL, testLogger()), cache.NewHub(cache.NewStore()), testLogger())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(runner).RegisterRoutes(r.Group("/api", auth.Middleware(tokens)))
	return r, runner, signed
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestImportEndpoint(t *testing.T) {
	r, _, token := importRouter(t, func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(models.ImportOutcome{Imported: 3, Skipped: 1})
	})

	body, contentType := multipartBody(t, "library.json", `[]`)
	req := httptest.NewRequest(http.MethodPost, "/api/user/sabrina/games/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var outcome models.ImportOutcome
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.Equal(t, 3, outcome.Imported)
}

func TestImportEndpointRejectsBadExtension(t *testing.T) {
	r, _, token := importRouter(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("upstream should not be called")
	})

	body, contentType := multipartBody(t, "library.xlsx", "nope")
	req := httptest.NewRequest(http.MethodPost, "/api/user/sabrina/games/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImportEndpointConflictWhileRunning(t *testing.T) {
	r, runner, token := importRouter(t, func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(models.ImportOutcome{})
	})

	// simulate a run already holding the per-user guard
	require.True(t, runner.acquire("sabrina"))
	defer runner.release("sabrina")

	body, contentType := multipartBody(t, "library.csv", "id\n1\n")
	req := httptest.NewRequest(http.MethodPost, "/api/user/sabrina/games/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestImportEndpointForbidsOtherUsers(t *testing.T) {
	r, _, token := importRouter(t, func(w http.ResponseWriter, req *http.Request) {
		t.Fatal("upstream should not be called")
	})

	body, contentType := multipartBody(t, "library.json", `[]`)
	req := httptest.NewRequest(http.MethodPost, "/api/user/else/games/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
