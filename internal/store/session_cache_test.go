package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/models"
)

const testDeviceKey = "test-device-key"

func newTestSessionCache(t *testing.T) SessionCache {
	t.Helper()
	return NewSessionCache(newTestDB(t), testDeviceKey, logger.Nop())
}

func testSession() models.Session {
	return models.Session{
		UserID:       "user-123",
		Email:        "user@example.com",
		IDToken:      "id-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
	}
}

func TestSessionCache_SaveAndLoad(t *testing.T) {
	cache := newTestSessionCache(t)
	ctx := context.Background()

	want := testSession()
	require.NoError(t, cache.Save(ctx, want))

	got, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSessionCache_Load_Empty(t *testing.T) {
	cache := newTestSessionCache(t)

	_, err := cache.Load(context.Background())
	assert.ErrorIs(t, err, ErrSessionCacheEmpty)
}

func TestSessionCache_Save_ReplacesPrevious(t *testing.T) {
	cache := newTestSessionCache(t)
	ctx := context.Background()

	first := testSession()
	require.NoError(t, cache.Save(ctx, first))

	second := first
	second.IDToken = "rotated-id-token"
	second.RefreshToken = "rotated-refresh-token"
	require.NoError(t, cache.Save(ctx, second))

	got, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestSessionCache_Clear(t *testing.T) {
	cache := newTestSessionCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Save(ctx, testSession()))
	require.NoError(t, cache.Clear(ctx))

	_, err := cache.Load(ctx)
	assert.ErrorIs(t, err, ErrSessionCacheEmpty)

	// clearing an already empty cache is not an error
	require.NoError(t, cache.Clear(ctx))
}

// TestSessionCache_Load_WrongDeviceKey verifies a blob written under one
// device key cannot be read under another.
func TestSessionCache_Load_WrongDeviceKey(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	writer := NewSessionCache(db, "device-a", logger.Nop())
	require.NoError(t, writer.Save(ctx, testSession()))

	reader := NewSessionCache(db, "device-b", logger.Nop())
	_, err := reader.Load(ctx)
	assert.ErrorIs(t, err, ErrSessionCacheCorrupt)
}
