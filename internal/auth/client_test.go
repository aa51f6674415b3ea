package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	tests := []struct {
		identifier string
		want       bool
	}{
		{"sabrina@example.com", true},
		{"sabrina", false},
		{"sabrina@", false},
		{"@example.com", false},
		{"first.last@sub.example.com", true},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsEmail(tt.identifier), "identifier %q", tt.identifier)
	}
}

func TestSignInRoutesByIdentifierShape(t *testing.T) {
	var gotPath string
	var gotPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		json.NewEncoder(w).Encode(map[string]any{
			"token":     "sess-1",
			"expiresAt": time.Now().Add(time.Hour).Format(time.RFC3339),
			"user":      map[string]string{"id": "u1", "username": "sabrina"},
		})
	}))
	defer srv.Close()

	client := NewServiceClient(srv.URL, logrus.New())

	session, err := client.SignIn(context.Background(), "sabrina", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "/sign-in/username", gotPath)
	assert.Equal(t, "sabrina", gotPayload["username"])
	assert.Equal(t, "sess-1", session.Token)

	_, err = client.SignIn(context.Background(), "sabrina@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "/sign-in/email", gotPath)
	assert.Equal(t, "sabrina@example.com", gotPayload["email"])
}

func TestSignInFailsOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewServiceClient(srv.URL, logrus.New())
	_, err := client.SignIn(context.Background(), "sabrina", "wrong")
	assert.ErrorContains(t, err, "401")
}

func TestSignOutSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewServiceClient(srv.URL, logrus.New())
	require.NoError(t, client.SignOut(context.Background(), "sess-1"))
	assert.Equal(t, "Bearer sess-1", gotAuth)
}

func TestPasskeysList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/passkey/list", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "pk1", "name": "laptop"},
			{"id": "pk2", "name": "phone"},
		})
	}))
	defer srv.Close()

	client := NewServiceClient(srv.URL, logrus.New())
	passkeys, err := client.Passkeys(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Len(t, passkeys, 2)
	assert.Equal(t, "pk1", passkeys[0].ID)
}
