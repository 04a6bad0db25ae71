package remote

import "errors"

var (
	// ErrNotAuthenticated is returned by remote store operations that
	// require a signed-in user when no user is signed in.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUsernameNotFound is returned when no profile exists for the
	// requested username.
	ErrUsernameNotFound = errors.New("username not found")

	// ErrProfileNotFound is returned when no profile document exists for
	// the requested user id.
	ErrProfileNotFound = errors.New("profile not found")
)
