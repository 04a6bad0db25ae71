package store

import (
	"context"
	"time"

	"github.com/V7-Lippyy/nutripal/models"
)

// EntrySnapshot is one emission of a live entry subscription: either the
// full current entry list or, terminally, the data-source error that ended
// the subscription. After a snapshot with a non-nil Err the channel is
// closed.
type EntrySnapshot struct {
	Entries []models.FoodEntry
	Err     error
}

// MacroSums holds aggregate sums of the macro-nutrient fields over some
// range of entries.
type MacroSums struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Sugar    float64
}

// EntryRepository is the food-entry store contract implemented by both the
// local SQLite backend and the cloud document backend.
type EntryRepository interface {
	// Add persists a new entry and returns it with its assigned ID.
	Add(ctx context.Context, entry models.FoodEntry) (models.FoodEntry, error)

	// Update overwrites the stored entry identified by entry.ID.
	Update(ctx context.Context, entry models.FoodEntry) error

	// Delete removes the entry with the given ID.
	Delete(ctx context.Context, id int64) error

	// GetByID returns the single entry with the given ID, or
	// [ErrEntryNotFound].
	GetByID(ctx context.Context, id int64) (models.FoodEntry, error)

	// GetAll returns every stored entry.
	GetAll(ctx context.Context) ([]models.FoodEntry, error)

	// GetByDateRange returns entries whose date lies in [from, to],
	// boundaries inclusive.
	GetByDateRange(ctx context.Context, from, to time.Time) ([]models.FoodEntry, error)

	// GetByMealType returns entries tagged with the given meal type.
	GetByMealType(ctx context.Context, mealType models.MealType) ([]models.FoodEntry, error)

	// SumCaloriesForRange returns the calorie total over [from, to].
	SumCaloriesForRange(ctx context.Context, from, to time.Time) (float64, error)

	// SumMacrosForRange returns the macro-nutrient totals over [from, to].
	SumMacrosForRange(ctx context.Context, from, to time.Time) (MacroSums, error)

	// Watch returns a continuously-updating stream of the full entry list.
	// The first snapshot is the current state; further snapshots follow
	// every data change. The stream ends when ctx is cancelled or, for
	// remote backends, when the underlying subscription fails (the error
	// is delivered as the final snapshot). Consumers combining the stream
	// with other inputs stop recomputing once it ends; re-subscribe to
	// resume.
	Watch(ctx context.Context) <-chan EntrySnapshot
}

// PreferenceRepository stores the small per-user preference set.
type PreferenceRepository interface {
	// GetUserData returns the stored preferences; a zero value (not an
	// error) when nothing has been stored yet.
	GetUserData(ctx context.Context) (models.UserData, error)

	// SaveUserName stores the display name.
	SaveUserName(ctx context.Context, name string) error

	// SetOnboardingDone marks the first-run flow as completed.
	SetOnboardingDone(ctx context.Context, done bool) error
}

// SessionCache persists the provider session encrypted on the device so a
// signed-in state survives app restarts.
type SessionCache interface {
	// Save encrypts and stores the session, replacing any previous one.
	Save(ctx context.Context, session models.Session) error

	// Load decrypts and returns the cached session, or
	// [ErrSessionCacheEmpty] when none is stored.
	Load(ctx context.Context) (models.Session, error)

	// Clear removes the cached session. Clearing an empty cache is a no-op.
	Clear(ctx context.Context) error
}
