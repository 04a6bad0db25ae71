package remote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/internal/store"
	"github.com/V7-Lippyy/nutripal/models"
)

// signedOutUsers is a UserSource with no active session.
type signedOutUsers struct{}

func (signedOutUsers) CurrentUserID() string { return "" }

// The signed-out guards fire before any collection access, so a nil
// database is safe here.
func newSignedOutEntryRepo() store.EntryRepository {
	return NewEntryRepository(nil, signedOutUsers{}, logger.Nop())
}

// TestRemoteEntryRepository_SignedOutMutations verifies mutations and
// single-document reads fail with the not-authenticated sentinel when no
// user is signed in.
func TestRemoteEntryRepository_SignedOutMutations(t *testing.T) {
	repo := newSignedOutEntryRepo()
	ctx := context.Background()

	_, err := repo.Add(ctx, models.FoodEntry{Name: "rice"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.ErrorIs(t, repo.Update(ctx, models.FoodEntry{ID: 1}), ErrNotAuthenticated)
	assert.ErrorIs(t, repo.Delete(ctx, 1), ErrNotAuthenticated)

	_, err = repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

// TestRemoteEntryRepository_SignedOutReads verifies list and sum operations
// yield empty results, not errors, when no user is signed in.
func TestRemoteEntryRepository_SignedOutReads(t *testing.T) {
	repo := newSignedOutEntryRepo()
	ctx := context.Background()

	from := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC)

	entries, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = repo.GetByDateRange(ctx, from, to)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = repo.GetByMealType(ctx, models.MealTypeLunch)
	require.NoError(t, err)
	assert.Empty(t, entries)

	calories, err := repo.SumCaloriesForRange(ctx, from, to)
	require.NoError(t, err)
	assert.Zero(t, calories)

	sums, err := repo.SumMacrosForRange(ctx, from, to)
	require.NoError(t, err)
	assert.Zero(t, sums)
}

// TestRemoteEntryRepository_SignedOutWatch verifies the watch stream emits
// one empty snapshot and closes when no user is signed in.
func TestRemoteEntryRepository_SignedOutWatch(t *testing.T) {
	repo := newSignedOutEntryRepo()

	ch := repo.Watch(context.Background())

	snapshot, ok := <-ch
	require.True(t, ok, "watch must emit one snapshot before closing")
	assert.NoError(t, snapshot.Err)
	assert.Empty(t, snapshot.Entries)

	_, ok = <-ch
	assert.False(t, ok, "watch channel must close when no user is signed in")
}

func TestDeriveEntryID_Stable(t *testing.T) {
	a := deriveEntryID("6b1f6a8e-1c2d-4e5f-8a9b-0c1d2e3f4a5b")
	b := deriveEntryID("6b1f6a8e-1c2d-4e5f-8a9b-0c1d2e3f4a5b")
	assert.Equal(t, a, b, "same document id must derive the same numeric id")
}

func TestDeriveEntryID_Positive(t *testing.T) {
	for _, docID := range []string{"", "a", "doc-1", "doc-2", "ffffffff"} {
		assert.Positive(t, deriveEntryID(docID), "docID=%q", docID)
	}
}

func TestDeriveEntryID_DistinguishesDocuments(t *testing.T) {
	assert.NotEqual(t, deriveEntryID("doc-1"), deriveEntryID("doc-2"))
}

func TestDateRangeFilter_InclusiveBounds(t *testing.T) {
	from := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 31, 12, 0, 0, 0, time.UTC)

	filter := dateRangeFilter(from, to)
	assert.Equal(t, bson.M{"$gte": from, "$lte": to}, filter)
}
