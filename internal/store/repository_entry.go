package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/V7-Lippyy/nutripal/internal/logger"
	"github.com/V7-Lippyy/nutripal/internal/observe"
	"github.com/V7-Lippyy/nutripal/models"
)

// localEntryRepository is the SQLite-backed food-entry store. Every
// successful mutation republishes the full entry list on an internal
// signal, which is what Watch subscribers observe.
type localEntryRepository struct {
	*DB
	logger  *logger.Logger
	entries *observe.Signal[[]models.FoodEntry]
}

func NewLocalEntryRepository(db *DB, logger *logger.Logger) EntryRepository {
	return &localEntryRepository{
		DB:      db,
		logger:  logger,
		entries: observe.NewSignal[[]models.FoodEntry](),
	}
}

func (l *localEntryRepository) Add(ctx context.Context, entry models.FoodEntry) (models.FoodEntry, error) {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, insertEntry,
		entry.Name,
		entry.ServingSize,
		entry.ServingUnit,
		entry.Calories,
		entry.Protein,
		entry.Carbs,
		entry.Fat,
		entry.Fiber,
		entry.Sugar,
		entry.MealType,
		entry.Date,
		entry.Time,
		entry.Notes,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "localEntryRepository.Add").
			Str("name", entry.Name).
			Msg("failed to execute insert for food entry")
		return models.FoodEntry{}, fmt.Errorf("failed to save food entry (name=%s): %w", entry.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "localEntryRepository.Add").
			Str("name", entry.Name).
			Msg("failed to get last insert id for food entry")
		return models.FoodEntry{}, fmt.Errorf("failed to get food entry id (name=%s): %w", entry.Name, err)
	}
	entry.ID = id

	l.publish(ctx)
	return entry, nil
}

func (l *localEntryRepository) Update(ctx context.Context, entry models.FoodEntry) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, updateEntry,
		entry.Name,
		entry.ServingSize,
		entry.ServingUnit,
		entry.Calories,
		entry.Protein,
		entry.Carbs,
		entry.Fat,
		entry.Fiber,
		entry.Sugar,
		entry.MealType,
		entry.Date,
		entry.Time,
		entry.Notes,
		entry.UpdatedAt,
		entry.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "localEntryRepository.Update").
			Int64("entry_id", entry.ID).
			Msg("failed to execute update for food entry")
		return fmt.Errorf("failed to update food entry (id=%d): %w", entry.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "localEntryRepository.Update").
			Int64("entry_id", entry.ID).
			Msg("failed to get rows affected after update")
		return fmt.Errorf("failed to get rows affected (id=%d): %w", entry.ID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrEntryNotFound, entry.ID)
	}

	l.publish(ctx)
	return nil
}

func (l *localEntryRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, deleteEntry, id)
	if err != nil {
		log.Err(err).
			Str("func", "localEntryRepository.Delete").
			Int64("entry_id", id).
			Msg("failed to execute delete for food entry")
		return fmt.Errorf("failed to delete food entry (id=%d): %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "localEntryRepository.Delete").
			Int64("entry_id", id).
			Msg("failed to get rows affected after delete")
		return fmt.Errorf("failed to get rows affected (id=%d): %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ErrEntryNotFound, id)
	}

	l.publish(ctx)
	return nil
}

func (l *localEntryRepository) GetByID(ctx context.Context, id int64) (models.FoodEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(entryColumns...).
		From(models.FoodEntry{}.TableName()).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return models.FoodEntry{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	row := l.DB.QueryRowContext(ctx, query, args...)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.FoodEntry{}, fmt.Errorf("%w: id=%d", ErrEntryNotFound, id)
		}
		log.Err(err).
			Str("func", "localEntryRepository.GetByID").
			Int64("entry_id", id).
			Msg("failed to scan food entry row")
		return models.FoodEntry{}, fmt.Errorf("%w: %v", ErrScanningRow, err)
	}

	return entry, nil
}

func (l *localEntryRepository) GetAll(ctx context.Context) ([]models.FoodEntry, error) {
	builder := sq.Select(entryColumns...).
		From(models.FoodEntry{}.TableName()).
		OrderBy("date ASC", "time ASC")

	return l.queryEntries(ctx, "localEntryRepository.GetAll", builder)
}

func (l *localEntryRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]models.FoodEntry, error) {
	builder := sq.Select(entryColumns...).
		From(models.FoodEntry{}.TableName()).
		Where(sq.GtOrEq{"date": from}).
		Where(sq.LtOrEq{"date": to}).
		OrderBy("date ASC", "time ASC")

	return l.queryEntries(ctx, "localEntryRepository.GetByDateRange", builder)
}

func (l *localEntryRepository) GetByMealType(ctx context.Context, mealType models.MealType) ([]models.FoodEntry, error) {
	builder := sq.Select(entryColumns...).
		From(models.FoodEntry{}.TableName()).
		Where(sq.Eq{"meal_type": mealType}).
		OrderBy("date ASC", "time ASC")

	return l.queryEntries(ctx, "localEntryRepository.GetByMealType", builder)
}

func (l *localEntryRepository) SumCaloriesForRange(ctx context.Context, from, to time.Time) (float64, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("COALESCE(SUM(calories), 0)").
		From(models.FoodEntry{}.TableName()).
		Where(sq.GtOrEq{"date": from}).
		Where(sq.LtOrEq{"date": to}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var total float64
	if err := l.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "localEntryRepository.SumCaloriesForRange").
			Msg("failed to sum calories for date range")
		return 0, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	return total, nil
}

func (l *localEntryRepository) SumMacrosForRange(ctx context.Context, from, to time.Time) (MacroSums, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(
		"COALESCE(SUM(calories), 0)",
		"COALESCE(SUM(protein), 0)",
		"COALESCE(SUM(carbs), 0)",
		"COALESCE(SUM(fat), 0)",
		"COALESCE(SUM(fiber), 0)",
		"COALESCE(SUM(sugar), 0)",
	).
		From(models.FoodEntry{}.TableName()).
		Where(sq.GtOrEq{"date": from}).
		Where(sq.LtOrEq{"date": to}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return MacroSums{}, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var sums MacroSums
	err = l.DB.QueryRowContext(ctx, query, args...).
		Scan(&sums.Calories, &sums.Protein, &sums.Carbs, &sums.Fat, &sums.Fiber, &sums.Sugar)
	if err != nil {
		log.Err(err).
			Str("func", "localEntryRepository.SumMacrosForRange").
			Msg("failed to sum macros for date range")
		return MacroSums{}, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}

	return sums, nil
}

// Watch implements [EntryRepository]. The local variant re-emits on every
// mutation performed through this repository; there is no external writer
// to observe.
func (l *localEntryRepository) Watch(ctx context.Context) <-chan EntrySnapshot {
	l.publish(ctx)

	out := make(chan EntrySnapshot, 1)
	sub := l.entries.Subscribe(ctx)

	go func() {
		defer close(out)
		for entries := range sub {
			snapshot := EntrySnapshot{Entries: entries}
			select {
			case <-out:
			default:
			}
			select {
			case out <- snapshot:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

// publish re-queries the full entry list and pushes it to watchers. Query
// failures are logged and skipped; the next mutation republishes anyway.
func (l *localEntryRepository) publish(ctx context.Context) {
	entries, err := l.GetAll(ctx)
	if err != nil {
		l.logger.Err(err).
			Str("func", "localEntryRepository.publish").
			Msg("failed to refresh entry list for watchers")
		return
	}
	l.entries.Set(entries)
}

func (l *localEntryRepository) queryEntries(ctx context.Context, caller string, builder sq.SelectBuilder) ([]models.FoodEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := builder.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to execute query for food entries")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.FoodEntry

	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Msg("failed to scan food entry row")
			return nil, fmt.Errorf("%w: %v", ErrScanningRow, scanErr)
		}
		items = append(items, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", caller).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating food entry rows: %w", rowsErr)
	}

	return items, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.FoodEntry, error) {
	var entry models.FoodEntry
	err := row.Scan(
		&entry.ID,
		&entry.Name,
		&entry.ServingSize,
		&entry.ServingUnit,
		&entry.Calories,
		&entry.Protein,
		&entry.Carbs,
		&entry.Fat,
		&entry.Fiber,
		&entry.Sugar,
		&entry.MealType,
		&entry.Date,
		&entry.Time,
		&entry.Notes,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	return entry, err
}
