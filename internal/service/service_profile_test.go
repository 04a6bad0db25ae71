package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/models"
)

type fakePrefs struct {
	data models.UserData
}

func (f *fakePrefs) GetUserData(context.Context) (models.UserData, error) {
	return f.data, nil
}

func (f *fakePrefs) SaveUserName(_ context.Context, name string) error {
	f.data.UserName = name
	return nil
}

func (f *fakePrefs) SetOnboardingDone(_ context.Context, done bool) error {
	f.data.OnboardingDone = done
	return nil
}

func TestProfileService_SetUserName(t *testing.T) {
	prefs := &fakePrefs{}
	svc := NewProfileService(prefs, logger.Nop())

	require.NoError(t, svc.SetUserName(context.Background(), "  Alex  "))
	assert.Equal(t, "Alex", prefs.data.UserName, "name must be trimmed before saving")
}

func TestProfileService_SetUserName_RejectsBlank(t *testing.T) {
	svc := NewProfileService(&fakePrefs{}, logger.Nop())

	assert.ErrorIs(t, svc.SetUserName(context.Background(), "   "), ErrEmptyUserName)
}

func TestProfileService_CompleteOnboarding(t *testing.T) {
	prefs := &fakePrefs{}
	svc := NewProfileService(prefs, logger.Nop())

	require.NoError(t, svc.CompleteOnboarding(context.Background()))

	data, err := svc.UserData(context.Background())
	require.NoError(t, err)
	assert.True(t, data.OnboardingDone)
}
