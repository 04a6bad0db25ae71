package service

import (
	"context"
	"strings"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/internal/store"
	"github.com/V7-Lippyy/nutripal/models"
)

type profileService struct {
	prefs  store.PreferenceRepository
	logger *logger.Logger
}

func NewProfileService(prefs store.PreferenceRepository, logger *logger.Logger) ProfileService {
	return &profileService{prefs: prefs, logger: logger}
}

// UserData implements [ProfileService].
func (s *profileService) UserData(ctx context.Context) (models.UserData, error) {
	return s.prefs.GetUserData(ctx)
}

// SetUserName implements [ProfileService].
func (s *profileService) SetUserName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyUserName
	}

	return s.prefs.SaveUserName(ctx, name)
}

// CompleteOnboarding implements [ProfileService].
func (s *profileService) CompleteOnboarding(ctx context.Context) error {
	return s.prefs.SetOnboardingDone(ctx, true)
}
