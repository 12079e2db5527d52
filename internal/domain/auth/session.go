package auth

import (
	"time"

	"skilllink/internal/domain/profile"
)

// Event is delivered to auth state listeners.
type Event string

const (
	EventSignedIn  Event = "SIGNED_IN"
	EventSignedOut Event = "SIGNED_OUT"
)

// Session is a signed-in person plus the bearer token that proves it.
type Session struct {
	AccessToken string       `json:"access_token"`
	TokenID     string       `json:"-"`
	ExpiresAt   time.Time    `json:"expires_at"`
	PersonID    int64        `json:"person_id"`
	Email       string       `json:"email"`
	Role        profile.Role `json:"role"`
}

// Listener observes sign-in and sign-out. The session is nil on sign-out.
type Listener func(event Event, session *Session)
