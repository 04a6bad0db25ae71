package models

import "time"

// User represents an authenticated account identity as known to the
// identity provider and mirrored in the profile document collection.
// It carries no credential material; passwords never leave the provider.
type User struct {
	// UserID is the provider-assigned unique identifier of the account.
	UserID string `json:"-" bson:"_id"`

	// Email is the unique account email used for authentication.
	Email string `json:"email" bson:"email"`

	// Username is the unique short handle the user may log in with
	// instead of the email.
	Username string `json:"username" bson:"username"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// LastLogin is updated (best-effort) on every successful login.
	LastLogin time.Time `json:"last_login" bson:"last_login"`
}
