package models

import "time"

// Session is the provider-issued authentication session for the current
// user. The ID token authorizes provider calls; the refresh token obtains
// a new ID token when the current one expires.
//
// A session is cached encrypted on the device so the app can restore the
// signed-in state across launches without asking for the password again.
type Session struct {
	// UserID is the provider-assigned account identifier ("localId").
	UserID string `json:"user_id"`

	// Email is the account email the session was issued for.
	Email string `json:"email"`

	// IDToken is the short-lived bearer token for provider calls.
	IDToken string `json:"id_token"`

	// RefreshToken exchanges for a fresh ID token; long-lived.
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the instant the ID token stops being accepted.
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the ID token lifetime has passed at instant now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
