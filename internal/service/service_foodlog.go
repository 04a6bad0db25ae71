// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/V7-Lippyy/nutripal/internal/foodlog"
	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/internal/nutrition"
	"github.com/V7-Lippyy/nutripal/internal/observe"
	"github.com/V7-Lippyy/nutripal/internal/store"
	"github.com/V7-Lippyy/nutripal/models"
)

type foodLogService struct {
	repo       store.EntryRepository
	lookup     nutrition.Client
	aggregator *foodlog.Aggregator

	mu          sync.Mutex
	cancelWatch context.CancelFunc

	logger *logger.Logger
}

// NewFoodLogService wires the diary service over whichever entry store is
// active (local or cloud). lookup may be nil when no nutrition API is
// configured; LookupFood then fails gracefully.
func NewFoodLogService(repo store.EntryRepository, lookup nutrition.Client, logger *logger.Logger) FoodLogService {
	return &foodLogService{
		repo:       repo,
		lookup:     lookup,
		aggregator: foodlog.NewAggregator(logger),
		logger:     logger,
	}
}

// Start implements [FoodLogService]. The repository watch lives in its own
// context so that a later Start or Stop tears it down instead of leaving it
// running until the caller's context ends.
func (s *foodLogService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.cancelWatch != nil {
		s.cancelWatch()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	s.cancelWatch = cancel
	s.mu.Unlock()

	s.aggregator.Start(ctx, s.repo.Watch(watchCtx))
}

// Stop implements [FoodLogService].
func (s *foodLogService) Stop() {
	s.mu.Lock()
	if s.cancelWatch != nil {
		s.cancelWatch()
		s.cancelWatch = nil
	}
	s.mu.Unlock()

	s.aggregator.Stop()
}

// AddEntry implements [FoodLogService].
func (s *foodLogService) AddEntry(ctx context.Context, entry models.FoodEntry) (models.FoodEntry, error) {
	entry, err := s.prepare(entry, true)
	if err != nil {
		return models.FoodEntry{}, err
	}

	return s.repo.Add(ctx, entry)
}

// UpdateEntry implements [FoodLogService].
func (s *foodLogService) UpdateEntry(ctx context.Context, entry models.FoodEntry) error {
	entry, err := s.prepare(entry, false)
	if err != nil {
		return err
	}

	return s.repo.Update(ctx, entry)
}

// DeleteEntry implements [FoodLogService].
func (s *foodLogService) DeleteEntry(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Entry implements [FoodLogService].
func (s *foodLogService) Entry(ctx context.Context, id int64) (models.FoodEntry, error) {
	return s.repo.GetByID(ctx, id)
}

// EntriesByMealType implements [FoodLogService].
func (s *foodLogService) EntriesByMealType(ctx context.Context, mealType models.MealType) ([]models.FoodEntry, error) {
	if !mealType.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidMealType, mealType)
	}
	return s.repo.GetByMealType(ctx, mealType)
}

// LookupFood implements [FoodLogService].
func (s *foodLogService) LookupFood(ctx context.Context, query string) ([]models.NutritionItem, error) {
	if s.lookup == nil {
		return nil, fmt.Errorf("nutrition lookup is not configured")
	}
	return s.lookup.Search(ctx, query)
}

// AddFromLookup implements [FoodLogService].
func (s *foodLogService) AddFromLookup(ctx context.Context, item models.NutritionItem, mealType models.MealType, date time.Time, clock string) (models.FoodEntry, error) {
	entry := item.ToFoodEntry()
	entry.MealType = mealType
	entry.Date = date
	entry.Time = clock

	return s.AddEntry(ctx, entry)
}

// SelectDate implements [FoodLogService].
func (s *foodLogService) SelectDate(date time.Time) {
	s.aggregator.SelectDate(date)
}

// Summaries implements [FoodLogService].
func (s *foodLogService) Summaries() *observe.Signal[foodlog.DaySummary] {
	return s.aggregator.Summaries()
}

// MacrosForRange implements [FoodLogService].
func (s *foodLogService) MacrosForRange(ctx context.Context, from, to time.Time) (store.MacroSums, error) {
	return s.repo.SumMacrosForRange(ctx, models.NormalizeDate(from), models.NormalizeDate(to))
}

// prepare validates the entry and stamps the fields the stores expect:
// day-normalized date, defaulted wall-clock time, creation and update
// timestamps.
func (s *foodLogService) prepare(entry models.FoodEntry, isNew bool) (models.FoodEntry, error) {
	if err := entry.Validate(); err != nil {
		return models.FoodEntry{}, err
	}
	if entry.Time != "" && !validClock(entry.Time) {
		return models.FoodEntry{}, fmt.Errorf("%w: %q", ErrInvalidTime, entry.Time)
	}

	now := time.Now().UTC()

	if entry.Date.IsZero() {
		entry.Date = now
	}
	entry.Date = models.NormalizeDate(entry.Date)

	if entry.Time == "" {
		entry.Time = now.Format("15:04")
	}

	if isNew {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	return entry, nil
}

func validClock(clock string) bool {
	_, err := time.Parse("15:04", clock)
	return err == nil
}
