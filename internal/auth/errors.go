package auth

import "errors"

var (
	// ErrConnectionTimeout is returned when the identity provider does not
	// answer within the configured request timeout.
	ErrConnectionTimeout = errors.New("identity provider connection timeout")

	// ErrInvalidCredentials is returned for a wrong email/password pair or
	// an unknown email.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailAlreadyInUse is returned when registering with an email the
	// provider already knows.
	ErrEmailAlreadyInUse = errors.New("email already in use")

	// ErrWeakPassword is returned when the provider rejects the password
	// as too weak.
	ErrWeakPassword = errors.New("password too weak")

	// ErrUserDisabled is returned when the provider has disabled the
	// account.
	ErrUserDisabled = errors.New("user account disabled")

	// ErrTooManyAttempts is returned when the provider throttles sign-in
	// attempts.
	ErrTooManyAttempts = errors.New("too many attempts, try again later")

	// ErrInvalidRefreshToken is returned when the stored refresh token is
	// no longer accepted by the provider.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrNoSession is returned by session operations when no session is
	// active or cached.
	ErrNoSession = errors.New("no active session")
)
