package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEntryNotFound is returned when a query or update targets a food
	// entry (identified by its numeric ID) that does not exist in the
	// database.
	ErrEntryNotFound = errors.New("food entry was not found")

	// ErrEntryNotSaved is returned when an INSERT or UPDATE completes
	// without error but the number of affected rows is zero, indicating
	// that no data was actually persisted.
	ErrEntryNotSaved = errors.New("food entry was not saved")

	// ErrSessionCacheEmpty is returned by [SessionCache.Load] when no
	// session has been cached on the device.
	ErrSessionCacheEmpty = errors.New("session cache is empty")

	// ErrSessionCacheCorrupt is returned when the cached session blob
	// cannot be decrypted or decoded, typically after the device secret
	// changed.
	ErrSessionCacheCorrupt = errors.New("session cache is corrupt")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan food entry row")
)
