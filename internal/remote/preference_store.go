package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/internal/store"
	"github.com/V7-Lippyy/nutripal/models"
)

type preferenceDocument struct {
	UserID         string    `bson:"user_id"`
	UserName       string    `bson:"user_name"`
	OnboardingDone bool      `bson:"onboarding_done"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

// remotePreferenceRepository keeps one preference document per user,
// upserted on write.
type remotePreferenceRepository struct {
	db     *Database
	users  UserSource
	logger *logger.Logger
}

func NewPreferenceRepository(db *Database, users UserSource, logger *logger.Logger) store.PreferenceRepository {
	return &remotePreferenceRepository{
		db:     db,
		users:  users,
		logger: logger,
	}
}

func (r *remotePreferenceRepository) preferences() *mongo.Collection {
	return r.db.Collection(CollectionPreferences)
}

func (r *remotePreferenceRepository) GetUserData(ctx context.Context) (models.UserData, error) {
	log := logger.FromContext(ctx)

	userID := r.users.CurrentUserID()
	if userID == "" {
		return models.UserData{}, ErrNotAuthenticated
	}

	var doc preferenceDocument
	err := r.preferences().FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// no document yet means defaults
			return models.UserData{}, nil
		}
		log.Err(err).
			Str("func", "remotePreferenceRepository.GetUserData").
			Msg("failed to find preference document")
		return models.UserData{}, fmt.Errorf("failed to load user preferences: %w", err)
	}

	return models.UserData{
		UserName:       doc.UserName,
		OnboardingDone: doc.OnboardingDone,
	}, nil
}

func (r *remotePreferenceRepository) SaveUserName(ctx context.Context, name string) error {
	return r.set(ctx, "remotePreferenceRepository.SaveUserName", bson.M{"user_name": name})
}

func (r *remotePreferenceRepository) SetOnboardingDone(ctx context.Context, done bool) error {
	return r.set(ctx, "remotePreferenceRepository.SetOnboardingDone", bson.M{"onboarding_done": done})
}

func (r *remotePreferenceRepository) set(ctx context.Context, caller string, fields bson.M) error {
	log := logger.FromContext(ctx)

	userID := r.users.CurrentUserID()
	if userID == "" {
		return ErrNotAuthenticated
	}

	fields["updated_at"] = time.Now().UTC()

	_, err := r.preferences().UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to upsert preference document")
		return fmt.Errorf("failed to save user preferences: %w", err)
	}

	return nil
}
