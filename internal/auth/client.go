package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"playdamnit/pkg/models"
)

// ServiceClient talks to the external auth service. All credential and
// passkey verification happens there; this repo never sees password
// hashes or WebAuthn internals.
type ServiceClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewServiceClient(baseURL string, logger *logrus.Logger) *ServiceClient {
	return &ServiceClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

func (c *ServiceClient) do(ctx context.Context, method, path, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("auth service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// IsEmail reports whether the sign-in identifier should be treated as
// an email address rather than a username.
func IsEmail(identifier string) bool {
	if !strings.Contains(identifier, "@") {
		return false
	}
	_, err := mail.ParseAddress(identifier)
	return err == nil
}

// SignIn authenticates with email-or-username plus password. The
// identifier is routed by shape, the way the sign-in form does it.
func (c *ServiceClient) SignIn(ctx context.Context, identifier, password string) (*models.Session, error) {
	path := "/sign-in/username"
	payload := map[string]string{"username": identifier, "password": password}
	if IsEmail(identifier) {
		path = "/sign-in/email"
		payload = map[string]string{"email": identifier, "password": password}
	}

	var session models.Session
	if err := c.do(ctx, http.MethodPost, path, "", payload, &session); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return &session, nil
}

// SignUp registers a new account and returns the auto-created session.
func (c *ServiceClient) SignUp(ctx context.Context, email, password, name, username string) (*models.Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
		"username": username,
	}
	var session models.Session
	if err := c.do(ctx, http.MethodPost, "/sign-up/email", "", payload, &session); err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return &session, nil
}

// SignOut revokes the session server-side.
func (c *ServiceClient) SignOut(ctx context.Context, token string) error {
	if err := c.do(ctx, http.MethodPost, "/sign-out", token, nil, nil); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// Session fetches the current session; an invalid token errors.
func (c *ServiceClient) Session(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	if err := c.do(ctx, http.MethodGet, "/session", token, nil, &session); err != nil {
		return nil, fmt.Errorf("fetch session: %w", err)
	}
	return &session, nil
}

// Passkeys lists the user's registered passkeys.
func (c *ServiceClient) Passkeys(ctx context.Context, token string) ([]models.Passkey, error) {
	var passkeys []models.Passkey
	if err := c.do(ctx, http.MethodGet, "/passkey/list", token, nil, &passkeys); err != nil {
		return nil, fmt.Errorf("list passkeys: %w", err)
	}
	return passkeys, nil
}

// DeletePasskey removes one registered credential.
func (c *ServiceClient) DeletePasskey(ctx context.Context, token, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/passkey/"+url.PathEscape(id), token, nil, nil); err != nil {
		return fmt.Errorf("delete passkey %s: %w", id, err)
	}
	return nil
}

// PasskeyProxy forwards a WebAuthn ceremony step untouched. The
// challenge/attestation JSON is opaque to the gateway.
func (c *ServiceClient) PasskeyProxy(ctx context.Context, token, step string, body json.RawMessage) (json.RawMessage, error) {
	var out json.RawMessage
	var payload any
	if len(body) > 0 {
		payload = body
	}
	if err := c.do(ctx, http.MethodPost, "/passkey/"+step, token, payload, &out); err != nil {
		return nil, fmt.Errorf("passkey %s: %w", step, err)
	}
	return out, nil
}
