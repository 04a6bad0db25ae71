package remote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/V7-Lippyy/nutripal/internal/logger"
)

// TestRemotePreferenceRepository_SignedOut verifies every preference
// operation requires an active session.
func TestRemotePreferenceRepository_SignedOut(t *testing.T) {
	repo := NewPreferenceRepository(nil, signedOutUsers{}, logger.Nop())
	ctx := context.Background()

	_, err := repo.GetUserData(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.ErrorIs(t, repo.SaveUserName(ctx, "sam"), ErrNotAuthenticated)
	assert.ErrorIs(t, repo.SetOnboardingDone(ctx, true), ErrNotAuthenticated)
}
