// SPDX-License-Identifier: Apache-2.0

// Package foodlog derives the per-day view of the food diary: the entries
// of the selected calendar day ordered for display, with calorie and macro
// totals for the day and a calorie total for the containing month.
package foodlog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/internal/observe"
	"github.com/V7-Lippyy/nutripal/internal/store"
	"github.com/V7-Lippyy/nutripal/models"
)

// DaySummary is the aggregate view for one selected date.
type DaySummary struct {
	// Date is the selected day, normalized to day granularity.
	Date time.Time

	// Entries holds the day's entries ordered by wall-clock time
	// ascending, creation time breaking ties.
	Entries []models.FoodEntry

	// Sums totals the day's calories and macros.
	Sums store.MacroSums

	// MonthCalories totals calories across the whole calendar month
	// containing Date.
	MonthCalories float64

	// Err carries a failed underlying read; the rest of the summary then
	// reflects the last good data.
	Err error
}

// Summarize computes the day view for the selected date from a full entry
// list. Pure; safe to call from tests without an Aggregator.
func Summarize(entries []models.FoodEntry, selected time.Time) DaySummary {
	summary := DaySummary{Date: models.NormalizeDate(selected)}

	for _, entry := range entries {
		if models.SameCalendarMonth(entry.Date, selected) {
			summary.MonthCalories += entry.Calories
		}
		if !models.SameCalendarDay(entry.Date, selected) {
			continue
		}

		summary.Entries = append(summary.Entries, entry)
		summary.Sums.Calories += entry.Calories
		summary.Sums.Protein += entry.Protein
		summary.Sums.Carbs += entry.Carbs
		summary.Sums.Fat += entry.Fat
		summary.Sums.Fiber += entry.Fiber
		summary.Sums.Sugar += entry.Sugar
	}

	sort.SliceStable(summary.Entries, func(i, j int) bool {
		a, b := summary.Entries[i], summary.Entries[j]
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return summary
}

// Aggregator recomputes a [DaySummary] whenever the entry list or the
// selected date changes. One goroutine owns the combination; Start and Stop
// bound its lifetime.
type Aggregator struct {
	selected  *observe.Signal[time.Time]
	summaries *observe.Signal[DaySummary]

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewAggregator starts with today selected.
func NewAggregator(logger *logger.Logger) *Aggregator {
	return &Aggregator{
		selected:  observe.NewSignalOf(models.NormalizeDate(time.Now())),
		summaries: observe.NewSignal[DaySummary](),
		logger:    logger,
	}
}

// SelectDate switches the aggregation to another calendar day.
func (a *Aggregator) SelectDate(date time.Time) {
	a.selected.Set(models.NormalizeDate(date))
}

// SelectedDate exposes the selected-date signal.
func (a *Aggregator) SelectedDate() *observe.Signal[time.Time] {
	return a.selected
}

// Summaries exposes the output signal. Values appear once Start has run and
// the first entry snapshot has arrived.
func (a *Aggregator) Summaries() *observe.Signal[DaySummary] {
	return a.summaries
}

// Start launches the combining goroutine over an entry snapshot stream,
// typically the repository's Watch channel. Calling Start again replaces
// the previous run. When the stream ends (the channel closes), the run
// exits with it: later date selections no longer recompute until Start is
// called again with a live stream.
func (a *Aggregator) Start(ctx context.Context, snapshots <-chan store.EntrySnapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		a.cancel()
		a.wg.Wait()
	}

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	dates := a.selected.Subscribe(runCtx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.run(runCtx, snapshots, dates)
	}()
}

// Stop terminates the combining goroutine and waits for it to exit. The
// signals stay usable; a later Start resumes publishing.
func (a *Aggregator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel == nil {
		return
	}
	a.cancel()
	a.cancel = nil
	a.wg.Wait()
}

func (a *Aggregator) run(ctx context.Context, snapshots <-chan store.EntrySnapshot, dates <-chan time.Time) {
	var (
		entries  []models.FoodEntry
		selected time.Time
		haveDate bool
		haveData bool
	)

	if date, ok := a.selected.Get(); ok {
		selected = date
		haveDate = true
	}

	for {
		select {
		case <-ctx.Done():
			return

		case snapshot, ok := <-snapshots:
			if !ok {
				return
			}
			if snapshot.Err != nil {
				a.logger.Err(snapshot.Err).
					Str("func", "Aggregator.run").
					Msg("entry snapshot stream reported an error")
				a.publishError(snapshot.Err, entries, selected, haveDate)
				continue
			}
			entries = snapshot.Entries
			haveData = true

		case date, ok := <-dates:
			if !ok {
				return
			}
			selected = date
			haveDate = true
		}

		if haveDate && haveData {
			a.summaries.Set(Summarize(entries, selected))
		}
	}
}

func (a *Aggregator) publishError(err error, entries []models.FoodEntry, selected time.Time, haveDate bool) {
	if !haveDate {
		return
	}
	summary := Summarize(entries, selected)
	summary.Err = err
	a.summaries.Set(summary)
}
