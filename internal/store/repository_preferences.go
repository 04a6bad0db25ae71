package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/models"
)

// Preference keys used in the local key-value namespace.
const (
	prefKeyUserName       = "user_name"
	prefKeyOnboardingDone = "onboarding_done"
)

// localPreferenceRepository stores the per-device preference set in a small
// SQLite key-value table.
type localPreferenceRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalPreferenceRepository(db *DB, logger *logger.Logger) PreferenceRepository {
	return &localPreferenceRepository{
		DB:     db,
		logger: logger,
	}
}

func (p *localPreferenceRepository) GetUserData(ctx context.Context) (models.UserData, error) {
	name, err := p.getValue(ctx, prefKeyUserName)
	if err != nil {
		return models.UserData{}, err
	}

	done, err := p.getValue(ctx, prefKeyOnboardingDone)
	if err != nil {
		return models.UserData{}, err
	}

	return models.UserData{
		UserName:       name,
		OnboardingDone: done == "true",
	}, nil
}

func (p *localPreferenceRepository) SaveUserName(ctx context.Context, name string) error {
	return p.setValue(ctx, prefKeyUserName, name)
}

func (p *localPreferenceRepository) SetOnboardingDone(ctx context.Context, done bool) error {
	return p.setValue(ctx, prefKeyOnboardingDone, strconv.FormatBool(done))
}

// getValue returns the stored value for key, or "" when the key is absent.
func (p *localPreferenceRepository) getValue(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	var value string
	err := p.DB.QueryRowContext(ctx, getPreference, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		log.Err(err).
			Str("func", "localPreferenceRepository.getValue").
			Str("key", key).
			Msg("failed to query preference value")
		return "", fmt.Errorf("failed to query preference (key=%s): %w", key, err)
	}

	return value, nil
}

func (p *localPreferenceRepository) setValue(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	_, err := p.DB.ExecContext(ctx, upsertPreference, key, value)
	if err != nil {
		log.Err(err).
			Str("func", "localPreferenceRepository.setValue").
			Str("key", key).
			Msg("failed to upsert preference value")
		return fmt.Errorf("failed to save preference (key=%s): %w", key, err)
	}

	return nil
}
