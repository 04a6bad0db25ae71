// SPDX-License-Identifier: Apache-2.0

package store

const (
	insertEntry = `
		INSERT INTO food_entries (
			name,
			serving_size,
			serving_unit,
			calories,
			protein,
			carbs,
			fat,
			fiber,
			sugar,
			meal_type,
			date,
			time,
			notes,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`

	updateEntry = `
		UPDATE food_entries SET
			name         = $1,
			serving_size = $2,
			serving_unit = $3,
			calories     = $4,
			protein      = $5,
			carbs        = $6,
			fat          = $7,
			fiber        = $8,
			sugar        = $9,
			meal_type    = $10,
			date         = $11,
			time         = $12,
			notes        = $13,
			updated_at   = $14
		WHERE id = $15;`

	deleteEntry = `
		DELETE FROM food_entries
		WHERE id = $1;`

	upsertPreference = `
		INSERT INTO preferences (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = CURRENT_TIMESTAMP;`

	getPreference = `
		SELECT value
		FROM preferences
		WHERE key = $1;`

	upsertSessionCache = `
		INSERT INTO session_cache (id, salt, blob, updated_at)
		VALUES (1, $1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			salt       = excluded.salt,
			blob       = excluded.blob,
			updated_at = CURRENT_TIMESTAMP;`

	getSessionCache = `
		SELECT salt, blob
		FROM session_cache
		WHERE id = 1;`

	clearSessionCache = `
		DELETE FROM session_cache
		WHERE id = 1;`
)

// entryColumns is the canonical column order used by all food-entry SELECT
// statements and row scans.
var entryColumns = []string{
	"id",
	"name",
	"serving_size",
	"serving_unit",
	"calories",
	"protein",
	"carbs",
	"fat",
	"fiber",
	"sugar",
	"meal_type",
	"date",
	"time",
	"notes",
	"created_at",
	"updated_at",
}
