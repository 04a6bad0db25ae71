// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/internal/observe"
	"github.com/V7-Lippyy/nutripal/internal/remote"
	"github.com/V7-Lippyy/nutripal/internal/store"
	"github.com/V7-Lippyy/nutripal/models"
)

// Gateway fronts the identity provider and owns the active session. It
// exposes two independent signals: the signed-in user profile and the
// boolean sign-in state. Both are updated on every session transition.
//
// Gateway implements [remote.UserSource].
type Gateway struct {
	provider Provider
	profiles remote.ProfileStore
	sessions store.SessionCache

	currentUser   *observe.Signal[models.User]
	authenticated *observe.Signal[bool]

	connectDelay time.Duration
	warmupOnce   sync.Once

	mu      sync.RWMutex
	session models.Session

	logger *logger.Logger
}

// NewGateway wires the gateway. profiles may be nil when no cloud database
// is configured; username sign-in and profile bookkeeping are then
// unavailable, email sign-in still works.
func NewGateway(provider Provider, profiles remote.ProfileStore, sessions store.SessionCache, connectDelay time.Duration, logger *logger.Logger) *Gateway {
	return &Gateway{
		provider:      provider,
		profiles:      profiles,
		sessions:      sessions,
		currentUser:   observe.NewSignal[models.User](),
		authenticated: observe.NewSignalOf(false),
		connectDelay:  connectDelay,
		logger:        logger,
	}
}

// CurrentUser exposes the signed-in profile signal. The zero [models.User]
// is published on sign-out.
func (g *Gateway) CurrentUser() *observe.Signal[models.User] {
	return g.currentUser
}

// Authenticated exposes the sign-in state signal.
func (g *Gateway) Authenticated() *observe.Signal[bool] {
	return g.authenticated
}

// CurrentUserID implements [remote.UserSource].
func (g *Gateway) CurrentUserID() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session.UserID
}

// Register creates a provider account, stores the profile in the cloud
// directory and signs the new user in.
func (g *Gateway) Register(ctx context.Context, username, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := g.warmup(ctx); err != nil {
		return models.User{}, err
	}

	ps, err := g.provider.SignUp(ctx, email, password)
	if err != nil {
		return models.User{}, mapTimeout(err)
	}

	user := models.User{
		UserID:    ps.UserID,
		Email:     email,
		Username:  strings.ToLower(strings.TrimSpace(username)),
		CreatedAt: time.Now().UTC(),
	}

	if g.profiles != nil {
		if err := g.profiles.Create(ctx, user); err != nil {
			log.Err(err).
				Str("func", "Gateway.Register").
				Str("username", user.Username).
				Msg("failed to store profile for new user")
			return models.User{}, fmt.Errorf("failed to store profile: %w", err)
		}
	}

	// verification email is best-effort: registration stands even if the
	// provider fails to send it
	if err := g.provider.SendEmailVerification(ctx, ps.IDToken); err != nil {
		log.Err(err).
			Str("func", "Gateway.Register").
			Msg("failed to send verification email")
	}

	g.adopt(ctx, ps, user)
	return user, nil
}

// Login signs in with an email or a username. A username (no "@") is
// resolved through the cloud profile directory before the provider is
// contacted; an unknown username fails fast without a provider round trip.
func (g *Gateway) Login(ctx context.Context, identifier, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email, err := g.resolveEmail(ctx, identifier)
	if err != nil {
		return models.User{}, err
	}

	if err := g.warmup(ctx); err != nil {
		return models.User{}, err
	}

	ps, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		return models.User{}, mapTimeout(err)
	}

	user := models.User{UserID: ps.UserID, Email: ps.Email}
	if g.profiles != nil {
		if profile, err := g.profiles.FindByID(ctx, ps.UserID); err == nil {
			user = profile
		} else if !errors.Is(err, remote.ErrProfileNotFound) {
			log.Err(err).
				Str("func", "Gateway.Login").
				Msg("failed to load profile after sign-in")
		}
		if err := g.profiles.TouchLastLogin(ctx, ps.UserID); err != nil {
			log.Err(err).
				Str("func", "Gateway.Login").
				Msg("failed to record last login")
		}
	}

	g.adopt(ctx, ps, user)
	return user, nil
}

// Logout drops the active session and clears the on-device session cache.
func (g *Gateway) Logout(ctx context.Context) error {
	g.mu.Lock()
	g.session = models.Session{}
	g.mu.Unlock()

	g.currentUser.Set(models.User{})
	g.authenticated.Set(false)

	if err := g.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cached session: %w", err)
	}

	return nil
}

// ResetPassword asks the provider to email a reset link. Accepts an email
// or a username, resolved the same way as Login.
func (g *Gateway) ResetPassword(ctx context.Context, identifier string) error {
	email, err := g.resolveEmail(ctx, identifier)
	if err != nil {
		return err
	}

	if err := g.warmup(ctx); err != nil {
		return err
	}

	if err := g.provider.SendPasswordReset(ctx, email); err != nil {
		return mapTimeout(err)
	}

	return nil
}

// RestoreSession loads the cached session from the encrypted on-device
// store. An expired session is refreshed through the provider before being
// adopted. Returns [ErrNoSession] when nothing usable is cached.
func (g *Gateway) RestoreSession(ctx context.Context) (models.User, error) {
	log := logger.FromContext(ctx)

	session, err := g.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSessionCacheEmpty) || errors.Is(err, store.ErrSessionCacheCorrupt) {
			return models.User{}, ErrNoSession
		}
		return models.User{}, fmt.Errorf("failed to load cached session: %w", err)
	}

	if expired(session) {
		if err := g.warmup(ctx); err != nil {
			return models.User{}, err
		}

		ps, err := g.provider.Refresh(ctx, session.RefreshToken)
		if err != nil {
			if errors.Is(err, ErrInvalidRefreshToken) {
				// stale cache, forget it
				if clearErr := g.sessions.Clear(ctx); clearErr != nil {
					log.Err(clearErr).
						Str("func", "Gateway.RestoreSession").
						Msg("failed to clear stale session cache")
				}
				return models.User{}, ErrNoSession
			}
			return models.User{}, mapTimeout(err)
		}

		session = sessionFromProvider(ps, session.Email)
	}

	user := models.User{UserID: session.UserID, Email: session.Email}
	if g.profiles != nil {
		if profile, err := g.profiles.FindByID(ctx, session.UserID); err == nil {
			user = profile
		}
	}

	g.mu.Lock()
	g.session = session
	g.mu.Unlock()

	g.persist(ctx, session)
	g.currentUser.Set(user)
	g.authenticated.Set(true)

	return user, nil
}

// RefreshSession exchanges the active refresh token for fresh credentials.
// Called periodically by the refresh job while a user is signed in.
func (g *Gateway) RefreshSession(ctx context.Context) error {
	g.mu.RLock()
	current := g.session
	g.mu.RUnlock()

	if current.RefreshToken == "" {
		return ErrNoSession
	}

	ps, err := g.provider.Refresh(ctx, current.RefreshToken)
	if err != nil {
		return mapTimeout(err)
	}

	session := sessionFromProvider(ps, current.Email)
	if session.UserID == "" {
		session.UserID = current.UserID
	}

	g.mu.Lock()
	g.session = session
	g.mu.Unlock()

	g.persist(ctx, session)
	return nil
}

// Close shuts down the gateway's signals.
func (g *Gateway) Close() {
	g.currentUser.Close()
	g.authenticated.Close()
}

// adopt installs a fresh provider session and publishes the transition.
func (g *Gateway) adopt(ctx context.Context, ps ProviderSession, user models.User) {
	session := sessionFromProvider(ps, user.Email)

	g.mu.Lock()
	g.session = session
	g.mu.Unlock()

	g.persist(ctx, session)
	g.currentUser.Set(user)
	g.authenticated.Set(true)
}

func (g *Gateway) persist(ctx context.Context, session models.Session) {
	if err := g.sessions.Save(ctx, session); err != nil {
		g.logger.Err(err).
			Str("func", "Gateway.persist").
			Msg("failed to cache session on device")
	}
}

func (g *Gateway) resolveEmail(ctx context.Context, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return identifier, nil
	}

	if g.profiles == nil {
		return "", fmt.Errorf("%w: %s", remote.ErrUsernameNotFound, identifier)
	}

	email, err := g.profiles.FindEmailByUsername(ctx, identifier)
	if err != nil {
		return "", err
	}

	return email, nil
}

// warmup waits out the configured connect delay once per process, giving
// slow mobile radios time to bring the link up before the first call.
func (g *Gateway) warmup(ctx context.Context) error {
	var err error
	g.warmupOnce.Do(func() {
		if g.connectDelay <= 0 {
			return
		}
		select {
		case <-time.After(g.connectDelay):
		case <-ctx.Done():
			err = ctx.Err()
		}
	})
	return err
}

func sessionFromProvider(ps ProviderSession, fallbackEmail string) models.Session {
	email := ps.Email
	if email == "" {
		email = fallbackEmail
	}

	return models.Session{
		UserID:       ps.UserID,
		Email:        email,
		IDToken:      ps.IDToken,
		RefreshToken: ps.RefreshToken,
		ExpiresAt:    time.Now().UTC().Add(ps.ExpiresIn),
	}
}

// expired reports whether the session should be refreshed before use. The
// id token's own exp claim wins over the recorded deadline when it is
// earlier, since the token is what the backends actually verify.
func expired(session models.Session) bool {
	now := time.Now().UTC()

	if exp, ok := tokenExpiry(session.IDToken); ok && exp.Before(session.ExpiresAt) {
		return !exp.After(now)
	}

	return session.Expired(now)
}

// tokenExpiry reads the exp claim without verifying the signature; only the
// provider can verify it, we just need the deadline.
func tokenExpiry(idToken string) (time.Time, bool) {
	if idToken == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}

// mapTimeout folds transport timeouts into [ErrConnectionTimeout] so
// callers can distinguish "provider unreachable" from "provider said no".
func mapTimeout(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrConnectionTimeout, err)
	}

	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return fmt.Errorf("%w: %v", ErrConnectionTimeout, err)
	}

	return err
}
