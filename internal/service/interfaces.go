package service

import (
	"context"
	"time"

	"github.com/V7-Lippyy/nutripal/internal/foodlog"
	"github.com/V7-Lippyy/nutripal/internal/observe"
	"github.com/V7-Lippyy/nutripal/internal/store"
	"github.com/V7-Lippyy/nutripal/models"
)

// FoodLogService defines the application-facing contract for the food
// diary: validated writes against the active entry store, lookups against
// the nutrition API, and the reactive per-day view.
type FoodLogService interface {
	// Start launches the aggregation pipeline over the entry store's watch
	// stream. Must be called once before Summaries carries values; calling
	// it again restarts the pipeline (e.g. after switching stores).
	Start(ctx context.Context)

	// Stop tears the aggregation pipeline down and waits for it to exit.
	Stop()

	// AddEntry validates the entry, normalizes its date to day granularity
	// and stamps the bookkeeping timestamps before saving. Returns the
	// stored entry with its assigned id.
	AddEntry(ctx context.Context, entry models.FoodEntry) (models.FoodEntry, error)

	// UpdateEntry validates and re-stamps the entry, then overwrites the
	// stored version. Returns [store.ErrEntryNotFound] if the id is
	// unknown.
	UpdateEntry(ctx context.Context, entry models.FoodEntry) error

	// DeleteEntry removes an entry by id. Returns
	// [store.ErrEntryNotFound] if the id is unknown.
	DeleteEntry(ctx context.Context, id int64) error

	// Entry returns a single entry by id.
	Entry(ctx context.Context, id int64) (models.FoodEntry, error)

	// EntriesByMealType lists all entries tagged with one meal type.
	EntriesByMealType(ctx context.Context, mealType models.MealType) ([]models.FoodEntry, error)

	// LookupFood queries the external nutrition API for free-text food
	// descriptions and returns the matching nutrient records.
	LookupFood(ctx context.Context, query string) ([]models.NutritionItem, error)

	// AddFromLookup converts a nutrition lookup result into an entry for
	// the given meal slot and saves it.
	AddFromLookup(ctx context.Context, item models.NutritionItem, mealType models.MealType, date time.Time, clock string) (models.FoodEntry, error)

	// SelectDate switches the reactive day view to another calendar day.
	SelectDate(date time.Time)

	// Summaries exposes the reactive day view recomputed on every entry or
	// date change.
	Summaries() *observe.Signal[foodlog.DaySummary]

	// MacrosForRange totals calories and macros over an inclusive date
	// range, straight from the store.
	MacrosForRange(ctx context.Context, from, to time.Time) (store.MacroSums, error)
}

// ProfileService defines the contract for the lightweight per-device
// profile: display name and onboarding state.
type ProfileService interface {
	// UserData returns the stored profile, zero-valued when nothing has
	// been saved yet.
	UserData(ctx context.Context) (models.UserData, error)

	// SetUserName stores the display name. Rejects blank names.
	SetUserName(ctx context.Context, name string) error

	// CompleteOnboarding marks the first-run flow as finished.
	CompleteOnboarding(ctx context.Context) error
}

// SessionRefresher is the slice of the auth gateway the refresh job needs.
type SessionRefresher interface {
	// RefreshSession rotates the provider credentials of the active
	// session. Returns [auth.ErrNoSession] when nobody is signed in.
	RefreshSession(ctx context.Context) error
}

// SessionRefreshJob defines the contract for the background worker that
// keeps the provider session fresh while a user is signed in.
type SessionRefreshJob interface {
	// Start launches the background refresh goroutine. It refreshes every
	// interval, defaulting to 30 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
