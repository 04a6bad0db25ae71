package foodlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/internal/store"
	"github.com/V7-Lippyy/nutripal/models"
)

func entryOn(name string, year int, month time.Month, day int, clock string, calories float64) models.FoodEntry {
	return models.FoodEntry{
		Name:     name,
		Calories: calories,
		Protein:  1,
		Carbs:    2,
		Fat:      3,
		MealType: models.MealTypeLunch,
		Date:     models.NormalizeDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC)),
		Time:     clock,
	}
}

func TestSummarize_FiltersToSelectedDay(t *testing.T) {
	entries := []models.FoodEntry{
		entryOn("same-day", 2025, time.April, 10, "08:00", 100),
		entryOn("same-day-2", 2025, time.April, 10, "12:00", 200),
		entryOn("other-day", 2025, time.April, 11, "08:00", 400),
		entryOn("other-month", 2025, time.May, 10, "08:00", 800),
	}

	summary := Summarize(entries, time.Date(2025, time.April, 10, 17, 45, 0, 0, time.UTC))

	require.Len(t, summary.Entries, 2)
	assert.Equal(t, "same-day", summary.Entries[0].Name)
	assert.Equal(t, "same-day-2", summary.Entries[1].Name)

	assert.Equal(t, 300.0, summary.Sums.Calories)
	assert.Equal(t, 2.0, summary.Sums.Protein)
	assert.Equal(t, 700.0, summary.MonthCalories, "month total spans all April days")
}

func TestSummarize_OrdersByTimeThenCreation(t *testing.T) {
	early := entryOn("early", 2025, time.April, 10, "07:30", 10)
	late := entryOn("late", 2025, time.April, 10, "21:00", 10)

	first := entryOn("tied-first", 2025, time.April, 10, "12:00", 10)
	first.CreatedAt = time.Date(2025, time.April, 10, 12, 0, 1, 0, time.UTC)
	second := entryOn("tied-second", 2025, time.April, 10, "12:00", 10)
	second.CreatedAt = time.Date(2025, time.April, 10, 12, 0, 2, 0, time.UTC)

	summary := Summarize([]models.FoodEntry{late, second, first, early},
		time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC))

	got := make([]string, 0, len(summary.Entries))
	for _, e := range summary.Entries {
		got = append(got, e.Name)
	}
	assert.Equal(t, []string{"early", "tied-first", "tied-second", "late"}, got)
}

func TestSummarize_EmptyDay(t *testing.T) {
	entries := []models.FoodEntry{
		entryOn("elsewhere", 2025, time.April, 2, "08:00", 150),
	}

	summary := Summarize(entries, time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC))

	assert.Empty(t, summary.Entries)
	assert.Zero(t, summary.Sums.Calories)
	assert.Equal(t, 150.0, summary.MonthCalories)
}

// TestSummarize_DayMonthCrossCheck verifies the day total equals the month
// total restricted to entries on the same day.
func TestSummarize_DayMonthCrossCheck(t *testing.T) {
	entries := []models.FoodEntry{
		entryOn("a", 2025, time.April, 10, "08:00", 120),
		entryOn("b", 2025, time.April, 10, "13:00", 340),
		entryOn("c", 2025, time.April, 12, "08:00", 500),
		entryOn("d", 2025, time.April, 25, "19:00", 610),
	}

	selected := time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)
	summary := Summarize(entries, selected)

	var dayRestricted float64
	for _, e := range entries {
		if models.SameCalendarDay(e.Date, selected) {
			dayRestricted += e.Calories
		}
	}

	assert.Equal(t, dayRestricted, summary.Sums.Calories)
	assert.Equal(t, 120.0+340+500+610, summary.MonthCalories)
}

func TestAggregator_RecomputesOnSnapshotAndDateChanges(t *testing.T) {
	a := NewAggregator(logger.Nop())
	defer a.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.SelectDate(time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC))

	snapshots := make(chan store.EntrySnapshot, 1)
	a.Start(ctx, snapshots)

	summaries := a.Summaries().Subscribe(ctx)

	snapshots <- store.EntrySnapshot{Entries: []models.FoodEntry{
		entryOn("breakfast", 2025, time.April, 10, "08:00", 250),
		entryOn("next-day", 2025, time.April, 11, "08:00", 500),
	}}

	first := recvSummary(t, summaries)
	require.Len(t, first.Entries, 1)
	assert.Equal(t, "breakfast", first.Entries[0].Name)
	assert.Equal(t, 250.0, first.Sums.Calories)
	assert.Equal(t, 750.0, first.MonthCalories)

	a.SelectDate(time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC))

	second := waitForSummary(t, summaries, func(s DaySummary) bool {
		return len(s.Entries) == 1 && s.Entries[0].Name == "next-day"
	})
	assert.Equal(t, 500.0, second.Sums.Calories)
}

func TestAggregator_PublishesErrorSnapshots(t *testing.T) {
	a := NewAggregator(logger.Nop())
	defer a.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan store.EntrySnapshot, 1)
	a.Start(ctx, snapshots)

	summaries := a.Summaries().Subscribe(ctx)

	snapshots <- store.EntrySnapshot{Err: assert.AnError}

	got := waitForSummary(t, summaries, func(s DaySummary) bool { return s.Err != nil })
	assert.ErrorIs(t, got.Err, assert.AnError)
}

// TestAggregator_ClosedStreamHaltsRecomputation verifies that once the
// snapshot stream ends, later date selections publish nothing until Start
// runs again.
func TestAggregator_ClosedStreamHaltsRecomputation(t *testing.T) {
	a := NewAggregator(logger.Nop())
	defer a.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.SelectDate(time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC))

	snapshots := make(chan store.EntrySnapshot, 1)
	a.Start(ctx, snapshots)

	summaries := a.Summaries().Subscribe(ctx)

	snapshots <- store.EntrySnapshot{Entries: []models.FoodEntry{
		entryOn("breakfast", 2025, time.April, 10, "08:00", 250),
	}}
	recvSummary(t, summaries)

	close(snapshots)
	// give the run loop a moment to observe the closed stream
	time.Sleep(100 * time.Millisecond)

	a.SelectDate(time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC))

	select {
	case s := <-summaries:
		t.Fatalf("unexpected summary after the stream ended: %+v", s)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestAggregator_StopIsIdempotent(t *testing.T) {
	a := NewAggregator(logger.Nop())

	a.Start(context.Background(), make(chan store.EntrySnapshot))
	a.Stop()
	a.Stop()
}

func recvSummary(t *testing.T, ch <-chan DaySummary) DaySummary {
	t.Helper()
	select {
	case s, ok := <-ch:
		require.True(t, ok, "summary channel closed unexpectedly")
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a day summary")
		return DaySummary{}
	}
}

// waitForSummary skips intermediate recomputations until cond holds;
// delivery is latest-value-only, so earlier states may never be seen at all.
func waitForSummary(t *testing.T, ch <-chan DaySummary, cond func(DaySummary) bool) DaySummary {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s, ok := <-ch:
			require.True(t, ok, "summary channel closed unexpectedly")
			if cond(s) {
				return s
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching day summary")
			return DaySummary{}
		}
	}
}
