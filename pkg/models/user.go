package models

import "time"

// User is the profile owner as the auth service reports it.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"name,omitempty"`
	AvatarURL string `json:"image,omitempty"`
}

// Session is the auth service's view of a signed-in browser/CLI.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// Passkey is a registered WebAuthn credential; creation and assertion
// happen entirely against the auth service.
type Passkey struct {
	ID         string    `json:"id"`
	Name       string    `json:"name,omitempty"`
	DeviceType string    `json:"deviceType,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
