package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/models"
)

// ProfileStore is the user directory in the cloud database. The auth
// gateway uses it to map usernames onto provider emails, so it is queried
// before a user is signed in and does not consult a [UserSource].
type ProfileStore interface {
	// Create stores the profile for a freshly registered user.
	Create(ctx context.Context, user models.User) error

	// FindEmailByUsername resolves a username (case-insensitive) to the
	// email registered with the identity provider. Returns
	// [ErrUsernameNotFound] when no profile matches.
	FindEmailByUsername(ctx context.Context, username string) (string, error)

	// FindByID returns the profile for a user id. Returns
	// [ErrProfileNotFound] when no profile exists.
	FindByID(ctx context.Context, userID string) (models.User, error)

	// TouchLastLogin records a successful sign-in.
	TouchLastLogin(ctx context.Context, userID string) error
}

type profileStore struct {
	db     *Database
	logger *logger.Logger
}

func NewProfileStore(db *Database, logger *logger.Logger) ProfileStore {
	return &profileStore{
		db:     db,
		logger: logger,
	}
}

func (p *profileStore) profiles() *mongo.Collection {
	return p.db.Collection(CollectionProfiles)
}

func (p *profileStore) Create(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	user.Username = strings.ToLower(user.Username)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if _, err := p.profiles().InsertOne(ctx, user); err != nil {
		log.Err(err).
			Str("func", "profileStore.Create").
			Str("username", user.Username).
			Msg("failed to insert profile document")
		return fmt.Errorf("failed to create profile (username=%s): %w", user.Username, err)
	}

	return nil
}

func (p *profileStore) FindEmailByUsername(ctx context.Context, username string) (string, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := p.profiles().FindOne(ctx, bson.M{"username": strings.ToLower(username)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", fmt.Errorf("%w: %s", ErrUsernameNotFound, username)
		}
		log.Err(err).
			Str("func", "profileStore.FindEmailByUsername").
			Str("username", username).
			Msg("failed to find profile by username")
		return "", fmt.Errorf("failed to find profile (username=%s): %w", username, err)
	}

	return user.Email, nil
}

func (p *profileStore) FindByID(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := p.profiles().FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, fmt.Errorf("%w: %s", ErrProfileNotFound, userID)
		}
		log.Err(err).
			Str("func", "profileStore.FindByID").
			Str("user_id", userID).
			Msg("failed to find profile by id")
		return models.User{}, fmt.Errorf("failed to find profile (id=%s): %w", userID, err)
	}

	return user, nil
}

func (p *profileStore) TouchLastLogin(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	_, err := p.profiles().UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"last_login": time.Now().UTC()}},
	)
	if err != nil {
		log.Err(err).
			Str("func", "profileStore.TouchLastLogin").
			Str("user_id", userID).
			Msg("failed to update last login on profile")
		return fmt.Errorf("failed to record last login (id=%s): %w", userID, err)
	}

	return nil
}
