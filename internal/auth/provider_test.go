package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/V7-Lippyy/nutripal/internal/config"
	"github.com/V7-Lippyy/nutripal/internal/logger"
)

func newTestProvider(t *testing.T, handler http.Handler) Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewRESTProvider(config.Auth{
		BaseURL:        srv.URL,
		APIKey:         "test-api-key",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	return p
}

func TestNewRESTProvider_EmptyBaseURL(t *testing.T) {
	_, err := NewRESTProvider(config.Auth{APIKey: "k"}, logger.Nop())
	assert.Error(t, err)
}

func TestRESTProvider_SignIn(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]string{
			"localId":      "user-1",
			"email":        "user@example.com",
			"idToken":      "id-token",
			"refreshToken": "refresh-token",
			"expiresIn":    "3600",
		})
	}))

	ps, err := p.SignIn(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "/v1/accounts:signInWithPassword", gotPath)
	assert.Equal(t, "test-api-key", gotKey)
	assert.Equal(t, "user@example.com", gotBody["email"])
	assert.Equal(t, true, gotBody["returnSecureToken"])

	assert.Equal(t, "user-1", ps.UserID)
	assert.Equal(t, "user@example.com", ps.Email)
	assert.Equal(t, "id-token", ps.IDToken)
	assert.Equal(t, "refresh-token", ps.RefreshToken)
	assert.Equal(t, time.Hour, ps.ExpiresIn)
}

func TestRESTProvider_SignUp_EmailExists(t *testing.T) {
	p := newTestProvider(t, providerError(http.StatusBadRequest, "EMAIL_EXISTS"))

	_, err := p.SignUp(context.Background(), "taken@example.com", "secret")
	assert.ErrorIs(t, err, ErrEmailAlreadyInUse)
}

func TestRESTProvider_SignIn_ErrorMapping(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"EMAIL_NOT_FOUND", ErrInvalidCredentials},
		{"INVALID_PASSWORD", ErrInvalidCredentials},
		{"INVALID_LOGIN_CREDENTIALS", ErrInvalidCredentials},
		{"USER_DISABLED", ErrUserDisabled},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : retry later", ErrTooManyAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			p := newTestProvider(t, providerError(http.StatusBadRequest, tt.code))

			_, err := p.SignIn(context.Background(), "user@example.com", "bad")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRESTProvider_SignUp_WeakPassword(t *testing.T) {
	p := newTestProvider(t, providerError(http.StatusBadRequest, "WEAK_PASSWORD : Password should be at least 6 characters"))

	_, err := p.SignUp(context.Background(), "user@example.com", "123")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRESTProvider_Refresh(t *testing.T) {
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/token", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh_token", body["grant_type"])
		assert.Equal(t, "old-refresh", body["refresh_token"])

		json.NewEncoder(w).Encode(map[string]string{
			"user_id":       "user-1",
			"id_token":      "new-id-token",
			"refresh_token": "new-refresh",
			"expires_in":    "1800",
		})
	}))

	ps, err := p.Refresh(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "user-1", ps.UserID)
	assert.Equal(t, "new-id-token", ps.IDToken)
	assert.Equal(t, "new-refresh", ps.RefreshToken)
	assert.Equal(t, 30*time.Minute, ps.ExpiresIn)
}

func TestRESTProvider_Refresh_InvalidToken(t *testing.T) {
	p := newTestProvider(t, providerError(http.StatusBadRequest, "INVALID_REFRESH_TOKEN"))

	_, err := p.Refresh(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRESTProvider_SendPasswordReset(t *testing.T) {
	var gotBody map[string]string

	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:sendOobCode", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{"email": gotBody["email"]})
	}))

	require.NoError(t, p.SendPasswordReset(context.Background(), "user@example.com"))
	assert.Equal(t, "PASSWORD_RESET", gotBody["requestType"])
	assert.Equal(t, "user@example.com", gotBody["email"])
}

func TestParseExpiresIn(t *testing.T) {
	assert.Equal(t, time.Hour, parseExpiresIn(""))
	assert.Equal(t, time.Hour, parseExpiresIn("not-a-number"))
	assert.Equal(t, time.Hour, parseExpiresIn("-5"))
	assert.Equal(t, 90*time.Second, parseExpiresIn("90"))
}

func providerError(status int, code string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": code, "code": status},
		})
	})
}
