// SPDX-License-Identifier: Apache-2.0

package remote

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/internal/store"
	"github.com/V7-Lippyy/nutripal/models"
)

// entryDocument is the cloud collection shape: a food entry plus the owning
// user's id. Document ids are client-generated UUID strings.
type entryDocument struct {
	models.FoodEntry `bson:",inline"`

	UserID string `bson:"user_id"`
}

// remoteEntryRepository is the cloud-backed [store.EntryRepository]. Every
// operation is scoped to the user reported by the [UserSource]: with no user
// signed in, mutations and single-document reads fail with
// [ErrNotAuthenticated], while list and sum operations return empty results
// so read-only screens keep working.
type remoteEntryRepository struct {
	db     *Database
	users  UserSource
	logger *logger.Logger
}

func NewEntryRepository(db *Database, users UserSource, logger *logger.Logger) store.EntryRepository {
	return &remoteEntryRepository{
		db:     db,
		users:  users,
		logger: logger,
	}
}

func (r *remoteEntryRepository) entries() *mongo.Collection {
	return r.db.Collection(CollectionEntries)
}

func (r *remoteEntryRepository) Add(ctx context.Context, entry models.FoodEntry) (models.FoodEntry, error) {
	log := logger.FromContext(ctx)

	userID := r.users.CurrentUserID()
	if userID == "" {
		return models.FoodEntry{}, ErrNotAuthenticated
	}

	entry.DocID = uuid.NewString()
	doc := entryDocument{FoodEntry: entry, UserID: userID}

	if _, err := r.entries().InsertOne(ctx, doc); err != nil {
		log.Err(err).
			Str("func", "remoteEntryRepository.Add").
			Str("name", entry.Name).
			Msg("failed to insert food entry document")
		return models.FoodEntry{}, fmt.Errorf("failed to save food entry (name=%s): %w", entry.Name, err)
	}

	// The numeric id is derived from the document id and patched in with a
	// second write; readers filtering on entry_id briefly miss the fresh
	// document between the two.
	entry.ID = deriveEntryID(entry.DocID)

	_, err := r.entries().UpdateOne(
		ctx,
		bson.M{"_id": entry.DocID, "user_id": userID},
		bson.M{"$set": bson.M{"entry_id": entry.ID}},
	)
	if err != nil {
		log.Err(err).
			Str("func", "remoteEntryRepository.Add").
			Str("doc_id", entry.DocID).
			Msg("failed to patch numeric id onto food entry document")
		return models.FoodEntry{}, fmt.Errorf("failed to assign food entry id (doc=%s): %w", entry.DocID, err)
	}

	return entry, nil
}

func (r *remoteEntryRepository) Update(ctx context.Context, entry models.FoodEntry) error {
	log := logger.FromContext(ctx)

	userID := r.users.CurrentUserID()
	if userID == "" {
		return ErrNotAuthenticated
	}

	res, err := r.entries().UpdateOne(
		ctx,
		bson.M{"entry_id": entry.ID, "user_id": userID},
		bson.M{"$set": bson.M{
			"name":         entry.Name,
			"serving_size": entry.ServingSize,
			"serving_unit": entry.ServingUnit,
			"calories":     entry.Calories,
			"protein":      entry.Protein,
			"carbs":        entry.Carbs,
			"fat":          entry.Fat,
			"fiber":        entry.Fiber,
			"sugar":        entry.Sugar,
			"meal_type":    entry.MealType,
			"date":         entry.Date,
			"time":         entry.Time,
			"notes":        entry.Notes,
			"updated_at":   entry.UpdatedAt,
		}},
	)
	if err != nil {
		log.Err(err).
			Str("func", "remoteEntryRepository.Update").
			Int64("entry_id", entry.ID).
			Msg("failed to update food entry document")
		return fmt.Errorf("failed to update food entry (id=%d): %w", entry.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: id=%d", store.ErrEntryNotFound, entry.ID)
	}

	return nil
}

func (r *remoteEntryRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	userID := r.users.CurrentUserID()
	if userID == "" {
		return ErrNotAuthenticated
	}

	res, err := r.entries().DeleteOne(ctx, bson.M{"entry_id": id, "user_id": userID})
	if err != nil {
		log.Err(err).
			Str("func", "remoteEntryRepository.Delete").
			Int64("entry_id", id).
			Msg("failed to delete food entry document")
		return fmt.Errorf("failed to delete food entry (id=%d): %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: id=%d", store.ErrEntryNotFound, id)
	}

	return nil
}

func (r *remoteEntryRepository) GetByID(ctx context.Context, id int64) (models.FoodEntry, error) {
	log := logger.FromContext(ctx)

	userID := r.users.CurrentUserID()
	if userID == "" {
		return models.FoodEntry{}, ErrNotAuthenticated
	}

	var doc entryDocument
	err := r.entries().FindOne(ctx, bson.M{"entry_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.FoodEntry{}, fmt.Errorf("%w: id=%d", store.ErrEntryNotFound, id)
		}
		log.Err(err).
			Str("func", "remoteEntryRepository.GetByID").
			Int64("entry_id", id).
			Msg("failed to find food entry document")
		return models.FoodEntry{}, fmt.Errorf("failed to find food entry (id=%d): %w", id, err)
	}

	return doc.FoodEntry, nil
}

func (r *remoteEntryRepository) GetAll(ctx context.Context) ([]models.FoodEntry, error) {
	userID := r.users.CurrentUserID()
	if userID == "" {
		return nil, nil
	}

	return r.find(ctx, "remoteEntryRepository.GetAll", bson.M{"user_id": userID})
}

func (r *remoteEntryRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]models.FoodEntry, error) {
	userID := r.users.CurrentUserID()
	if userID == "" {
		return nil, nil
	}

	return r.find(ctx, "remoteEntryRepository.GetByDateRange", bson.M{
		"user_id": userID,
		"date":    dateRangeFilter(from, to),
	})
}

func (r *remoteEntryRepository) GetByMealType(ctx context.Context, mealType models.MealType) ([]models.FoodEntry, error) {
	userID := r.users.CurrentUserID()
	if userID == "" {
		return nil, nil
	}

	return r.find(ctx, "remoteEntryRepository.GetByMealType", bson.M{
		"user_id":   userID,
		"meal_type": mealType,
	})
}

func (r *remoteEntryRepository) SumCaloriesForRange(ctx context.Context, from, to time.Time) (float64, error) {
	sums, err := r.SumMacrosForRange(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return sums.Calories, nil
}

func (r *remoteEntryRepository) SumMacrosForRange(ctx context.Context, from, to time.Time) (store.MacroSums, error) {
	log := logger.FromContext(ctx)

	userID := r.users.CurrentUserID()
	if userID == "" {
		return store.MacroSums{}, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id": userID,
			"date":    dateRangeFilter(from, to),
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"calories": bson.M{"$sum": "$calories"},
			"protein":  bson.M{"$sum": "$protein"},
			"carbs":    bson.M{"$sum": "$carbs"},
			"fat":      bson.M{"$sum": "$fat"},
			"fiber":    bson.M{"$sum": "$fiber"},
			"sugar":    bson.M{"$sum": "$sugar"},
		}}},
	}

	cur, err := r.entries().Aggregate(ctx, pipeline)
	if err != nil {
		log.Err(err).
			Str("func", "remoteEntryRepository.SumMacrosForRange").
			Msg("failed to aggregate macro sums")
		return store.MacroSums{}, fmt.Errorf("failed to sum macros: %w", err)
	}

	var results []store.MacroSums
	if err := cur.All(ctx, &results); err != nil {
		log.Err(err).
			Str("func", "remoteEntryRepository.SumMacrosForRange").
			Msg("failed to decode macro sums")
		return store.MacroSums{}, fmt.Errorf("failed to decode macro sums: %w", err)
	}
	if len(results) == 0 {
		return store.MacroSums{}, nil
	}

	return results[0], nil
}

// Watch implements [store.EntryRepository] over a change stream. Each event
// on the user's entries triggers a full re-read; the latest snapshot wins.
// A stream error terminates the channel with a snapshot carrying the error.
func (r *remoteEntryRepository) Watch(ctx context.Context) <-chan store.EntrySnapshot {
	out := make(chan store.EntrySnapshot, 1)

	userID := r.users.CurrentUserID()
	if userID == "" {
		out <- store.EntrySnapshot{}
		close(out)
		return out
	}

	go func() {
		defer close(out)

		r.emit(ctx, out)

		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"fullDocument.user_id": userID}}},
		}
		stream, err := r.entries().Watch(ctx, pipeline,
			options.ChangeStream().SetFullDocument(options.UpdateLookup))
		if err != nil {
			r.logger.Err(err).
				Str("func", "remoteEntryRepository.Watch").
				Msg("failed to open change stream on food entries")
			sendSnapshot(ctx, out, store.EntrySnapshot{Err: err})
			return
		}
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			r.emit(ctx, out)
		}

		if err := stream.Err(); err != nil && ctx.Err() == nil {
			r.logger.Err(err).
				Str("func", "remoteEntryRepository.Watch").
				Msg("change stream on food entries failed")
			sendSnapshot(ctx, out, store.EntrySnapshot{Err: err})
		}
	}()

	return out
}

func (r *remoteEntryRepository) emit(ctx context.Context, out chan store.EntrySnapshot) {
	entries, err := r.GetAll(ctx)
	if err != nil {
		sendSnapshot(ctx, out, store.EntrySnapshot{Err: err})
		return
	}
	sendSnapshot(ctx, out, store.EntrySnapshot{Entries: entries})
}

// sendSnapshot delivers latest-value-wins: a pending unread snapshot is
// dropped in favour of the new one.
func sendSnapshot(ctx context.Context, out chan store.EntrySnapshot, snapshot store.EntrySnapshot) {
	select {
	case <-out:
	default:
	}
	select {
	case out <- snapshot:
	case <-ctx.Done():
	}
}

func (r *remoteEntryRepository) find(ctx context.Context, caller string, filter bson.M) ([]models.FoodEntry, error) {
	log := logger.FromContext(ctx)

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "time", Value: 1},
	})

	cur, err := r.entries().Find(ctx, filter, opts)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to query food entry documents")
		return nil, fmt.Errorf("failed to query food entries: %w", err)
	}

	var docs []entryDocument
	if err := cur.All(ctx, &docs); err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to decode food entry documents")
		return nil, fmt.Errorf("failed to decode food entries: %w", err)
	}

	items := make([]models.FoodEntry, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.FoodEntry)
	}

	return items, nil
}

func dateRangeFilter(from, to time.Time) bson.M {
	return bson.M{"$gte": from, "$lte": to}
}

// deriveEntryID maps a document id onto the numeric id space shared with the
// local store. FNV-1a keeps the mapping stable across devices.
func deriveEntryID(docID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(docID))
	id := int64(h.Sum64() &^ (1 << 63)) // keep it positive
	if id == 0 {
		id = 1
	}
	return id
}
