// SPDX-License-Identifier: Apache-2.0

package models

import (
	"errors"
	"fmt"
	"time"
)

// MealType is the fixed category tag assigned to every food entry.
type MealType string

// Supported meal types. Entries with any other tag fail validation.
const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Valid reports whether m is one of the supported meal types.
func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// Validation errors returned by [FoodEntry.Validate]. Callers should match
// against these values with [errors.Is].
var (
	// ErrEmptyEntryName is returned when the entry name is blank.
	ErrEmptyEntryName = errors.New("food entry name is empty")

	// ErrInvalidMealType is returned when the meal type tag is not one of
	// the supported values.
	ErrInvalidMealType = errors.New("invalid meal type")

	// ErrNegativeNutrient is returned when any numeric nutrient field is
	// negative.
	ErrNegativeNutrient = errors.New("nutrient value is negative")
)

// FoodEntry is a single food-intake record in the user's log.
//
// The same structure is persisted in both backends: the local SQLite table
// and the per-user cloud document collection. Remote documents additionally
// carry DocID, the document key under which the record is stored.
type FoodEntry struct {
	// ID is the numeric entry identifier. Locally it is the SQLite rowid;
	// remotely it is derived from a hash of the document key after insert.
	ID int64 `json:"id" bson:"entry_id"`

	// DocID is the cloud document key. Empty for local-only entries.
	DocID string `json:"-" bson:"_id,omitempty"`

	// Name is the food name as entered by the user or returned by the
	// nutrition lookup.
	Name string `json:"name" bson:"name"`

	// ServingSize is the portion amount in ServingUnit units.
	ServingSize float64 `json:"serving_size" bson:"serving_size"`

	// ServingUnit is the unit label for ServingSize (e.g. "g", "ml",
	// "piece").
	ServingUnit string `json:"serving_unit" bson:"serving_unit"`

	Calories float64 `json:"calories" bson:"calories"`
	Protein  float64 `json:"protein" bson:"protein"`
	Carbs    float64 `json:"carbs" bson:"carbs"`
	Fat      float64 `json:"fat" bson:"fat"`
	Fiber    float64 `json:"fiber" bson:"fiber"`
	Sugar    float64 `json:"sugar" bson:"sugar"`

	// MealType tags the entry as breakfast, lunch, dinner or snack.
	MealType MealType `json:"meal_type" bson:"meal_type"`

	// Date is the calendar day of the entry, normalized to 12:00 UTC via
	// [NormalizeDate] so that day-equality checks never drift across
	// timezones. The time-of-day component carries no meaning.
	Date time.Time `json:"date" bson:"date"`

	// Time is the wall-clock time of the intake in "HH:MM" form. It is
	// used only for display ordering within a day.
	Time string `json:"time" bson:"time"`

	// Notes is optional free text attached by the user.
	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// TableName returns the name of the database table
// associated with the FoodEntry model.
func (e FoodEntry) TableName() string {
	return "food_entries"
}

// Validate checks the entry invariants: non-empty name, a supported meal
// type, and non-negative nutrient fields.
func (e FoodEntry) Validate() error {
	if e.Name == "" {
		return ErrEmptyEntryName
	}
	if !e.MealType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMealType, e.MealType)
	}

	nutrients := map[string]float64{
		"serving_size": e.ServingSize,
		"calories":     e.Calories,
		"protein":      e.Protein,
		"carbs":        e.Carbs,
		"fat":          e.Fat,
		"fiber":        e.Fiber,
		"sugar":        e.Sugar,
	}
	for name, v := range nutrients {
		if v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrNegativeNutrient, name, v)
		}
	}

	return nil
}

// NormalizeDate maps an arbitrary instant to the canonical day stamp used
// throughout the food log: the same calendar day at 12:00:00 UTC. Storing
// dates at a fixed time-of-day keeps day-equality checks stable regardless
// of the device timezone.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// SameCalendarDay reports whether a and b fall on the same (year, month,
// day) triple. Time-of-day components are ignored.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameCalendarMonth reports whether a and b fall in the same (year, month)
// pair, regardless of day.
func SameCalendarMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}
