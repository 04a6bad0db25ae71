package models

// UserData holds the small per-user preference set collected during
// onboarding. There is exactly one UserData value per user (remote) or per
// device (local); it is created on first run and updated on onboarding
// completion or profile edit.
type UserData struct {
	// UserName is the display name entered during onboarding. May be empty.
	UserName string `json:"user_name" bson:"user_name"`

	// OnboardingDone is set once the first-run flow has been completed.
	OnboardingDone bool `json:"onboarding_done" bson:"onboarding_done"`
}
