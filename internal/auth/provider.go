// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/V7-Lippyy/nutripal/internal/config"
	"github.com/V7-Lippyy/nutripal/internal/logger"
)

// ProviderSession is the result of a successful identity provider exchange.
type ProviderSession struct {
	UserID       string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Provider is the identity provider REST surface the gateway builds on.
type Provider interface {
	// SignUp creates a provider account for the email/password pair.
	SignUp(ctx context.Context, email, password string) (ProviderSession, error)

	// SignIn exchanges an email/password pair for a session.
	SignIn(ctx context.Context, email, password string) (ProviderSession, error)

	// Refresh exchanges a refresh token for a fresh session.
	Refresh(ctx context.Context, refreshToken string) (ProviderSession, error)

	// SendPasswordReset asks the provider to email a password reset link.
	SendPasswordReset(ctx context.Context, email string) error

	// SendEmailVerification asks the provider to email a verification
	// link to the account the id token belongs to.
	SendEmailVerification(ctx context.Context, idToken string) error
}

type restProvider struct {
	client *resty.Client
	apiKey string
	logger *logger.Logger
}

// defaultRequestTimeout bounds every provider call unless configured.
const defaultRequestTimeout = 15 * time.Second

// NewRESTProvider constructs the HTTP implementation of [Provider] against
// the identity toolkit REST endpoints. The API key is appended as a query
// parameter on every call, matching the provider's auth scheme. A zero
// request timeout falls back to 15 seconds.
func NewRESTProvider(cfg config.Auth, logger *logger.Logger) (Provider, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("empty identity provider base url")
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetQueryParam("key", cfg.APIKey)

	return &restProvider{client: client, apiKey: cfg.APIKey, logger: logger}, nil
}

func (p *restProvider) SignUp(ctx context.Context, email, password string) (ProviderSession, error) {
	return p.credentialExchange(ctx, "/v1/accounts:signUp", email, password)
}

func (p *restProvider) SignIn(ctx context.Context, email, password string) (ProviderSession, error) {
	return p.credentialExchange(ctx, "/v1/accounts:signInWithPassword", email, password)
}

// Refresh POSTs the refresh token to the token endpoint. The endpoint speaks
// snake_case, unlike the accounts endpoints.
func (p *restProvider) Refresh(ctx context.Context, refreshToken string) (ProviderSession, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": refreshToken,
		}).
		Post("/v1/token")
	if err != nil {
		return ProviderSession{}, fmt.Errorf("token refresh request: %w", err)
	}
	if err = mapProviderError(resp); err != nil {
		return ProviderSession{}, err
	}

	var body struct {
		UserID       string `json:"user_id"`
		IDToken      string `json:"id_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    string `json:"expires_in"`
	}
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return ProviderSession{}, fmt.Errorf("decode token refresh response: %w", err)
	}

	return ProviderSession{
		UserID:       body.UserID,
		IDToken:      body.IDToken,
		RefreshToken: body.RefreshToken,
		ExpiresIn:    parseExpiresIn(body.ExpiresIn),
	}, nil
}

func (p *restProvider) SendPasswordReset(ctx context.Context, email string) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"requestType": "PASSWORD_RESET",
			"email":       email,
		}).
		Post("/v1/accounts:sendOobCode")
	if err != nil {
		return fmt.Errorf("password reset request: %w", err)
	}

	return mapProviderError(resp)
}

func (p *restProvider) SendEmailVerification(ctx context.Context, idToken string) error {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"requestType": "VERIFY_EMAIL",
			"idToken":     idToken,
		}).
		Post("/v1/accounts:sendOobCode")
	if err != nil {
		return fmt.Errorf("email verification request: %w", err)
	}

	return mapProviderError(resp)
}

func (p *restProvider) credentialExchange(ctx context.Context, path, email, password string) (ProviderSession, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"email":             email,
			"password":          password,
			"returnSecureToken": true,
		}).
		Post(path)
	if err != nil {
		return ProviderSession{}, fmt.Errorf("credential exchange request: %w", err)
	}
	if err = mapProviderError(resp); err != nil {
		return ProviderSession{}, err
	}

	var body struct {
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
	}
	if err = json.Unmarshal(resp.Body(), &body); err != nil {
		return ProviderSession{}, fmt.Errorf("decode credential exchange response: %w", err)
	}

	return ProviderSession{
		UserID:       body.LocalID,
		Email:        body.Email,
		IDToken:      body.IDToken,
		RefreshToken: body.RefreshToken,
		ExpiresIn:    parseExpiresIn(body.ExpiresIn),
	}, nil
}

// parseExpiresIn tolerates a missing or malformed lifetime by falling back
// to the provider's documented default of one hour.
func parseExpiresIn(raw string) time.Duration {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return time.Hour
	}
	return time.Duration(seconds) * time.Second
}

// mapProviderError translates the provider's error envelope into sentinel
// errors the rest of the application can test against.
func mapProviderError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(resp.Body(), &envelope)

	code := envelope.Error.Message
	// throttling messages carry a variable suffix
	switch {
	case code == "EMAIL_EXISTS":
		return fmt.Errorf("%w: %s", ErrEmailAlreadyInUse, code)
	case code == "EMAIL_NOT_FOUND", code == "INVALID_PASSWORD", code == "INVALID_LOGIN_CREDENTIALS":
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, code)
	case code == "WEAK_PASSWORD", strings.HasPrefix(code, "WEAK_PASSWORD"):
		return fmt.Errorf("%w: %s", ErrWeakPassword, code)
	case code == "USER_DISABLED":
		return fmt.Errorf("%w: %s", ErrUserDisabled, code)
	case strings.HasPrefix(code, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return fmt.Errorf("%w: %s", ErrTooManyAttempts, code)
	case code == "INVALID_REFRESH_TOKEN", code == "TOKEN_EXPIRED", code == "USER_NOT_FOUND":
		return fmt.Errorf("%w: %s", ErrInvalidRefreshToken, code)
	}

	if code == "" {
		code = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("identity provider error (http %d): %s", resp.StatusCode(), code)
}
