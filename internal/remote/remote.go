// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/V7-Lippyy/nutripal/internal/config"
	"github.com/V7-Lippyy/nutripal/internal/logger"
)

// Collection names in the cloud database.
const (
	CollectionEntries     = "food_entries"
	CollectionPreferences = "preferences"
	CollectionProfiles    = "profiles"
)

// UserSource reports the currently signed-in user. The remote stores query
// it on every call, so sign-in and sign-out take effect immediately without
// rebuilding the store layer.
type UserSource interface {
	// CurrentUserID returns the signed-in user's id, or "" when signed out.
	CurrentUserID() string
}

// Database wraps the cloud mongo database handle.
type Database struct {
	*mongo.Database

	client *mongo.Client
	logger *logger.Logger
}

// Connect dials the cloud database, verifies the connection and ensures the
// indexes the stores rely on.
func Connect(ctx context.Context, cfg config.Remote, logger *logger.Logger) (*Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		logger.Err(err).
			Str("func", "remote.Connect").
			Msg("failed to connect to remote database")
		return nil, fmt.Errorf("failed to connect to remote database: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Err(err).
			Str("func", "remote.Connect").
			Msg("failed to ping remote database")
		return nil, fmt.Errorf("failed to ping remote database: %w", err)
	}

	db := &Database{
		Database: client.Database(cfg.Database),
		client:   client,
		logger:   logger,
	}

	if err := db.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return db, nil
}

// Close disconnects the underlying client.
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func (d *Database) ensureIndexes(ctx context.Context) error {
	_, err := d.Collection(CollectionEntries).Indexes().CreateMany(
		ctx,
		[]mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "date", Value: 1},
				},
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "entry_id", Value: 1},
				},
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create entry indexes: %w", err)
	}

	_, err = d.Collection(CollectionPreferences).Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create preference index: %w", err)
	}

	_, err = d.Collection(CollectionProfiles).Indexes().CreateMany(
		ctx,
		[]mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}

	return nil
}
