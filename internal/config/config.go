// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// nutripal application core. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string and
	// the device secret protecting the on-device session cache.
	App App `envPrefix:"APP_"`

	// Auth holds identity-provider endpoint and timeout settings.
	Auth Auth `envPrefix:"AUTH_"`

	// Nutrition holds the external nutrition lookup API settings.
	Nutrition Nutrition `envPrefix:"NUTRITION_"`

	// Remote holds the cloud document store connection settings.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// SessionKey is the device secret used to derive the encryption key
	// for the on-device session cache. Must be kept confidential.
	// Env: APP_SESSION_KEY
	SessionKey string `env:"SESSION_KEY"`
}

// Auth holds identity-provider settings for the authentication gateway.
type Auth struct {
	// BaseURL is the identity provider REST endpoint base
	// (e.g. "https://identitytoolkit.example.com").
	// Env: AUTH_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// APIKey is the build-time provider API key sent with every call.
	// Env: AUTH_API_KEY
	APIKey string `env:"API_KEY"`

	// RequestTimeout bounds every network-bound authentication step.
	// Exceeding it yields a distinguished connection-timeout error.
	// Env: AUTH_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ConnectDelay is the fixed pause inserted before the first network
	// call of each auth flow. Works around a provider connectivity quirk
	// on cold radio links; not a correctness requirement.
	// Env: AUTH_CONNECT_DELAY
	ConnectDelay time.Duration `env:"CONNECT_DELAY"`
}

// Nutrition holds settings for the external nutrition lookup API.
type Nutrition struct {
	// BaseURL is the lookup API base (e.g. "https://api.calorieninjas.com").
	// Env: NUTRITION_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// APIKey is sent in the X-Api-Key request header.
	// Env: NUTRITION_API_KEY
	APIKey string `env:"API_KEY"`

	// RequestTimeout bounds a single lookup call.
	// Env: NUTRITION_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Remote holds connection settings for the cloud document store.
type Remote struct {
	// URI is the document store connection string
	// (e.g. "mongodb://localhost:27017").
	// Env: REMOTE_URI
	URI string `env:"URI"`

	// Database is the database name holding the per-user collections.
	// Env: REMOTE_DATABASE
	Database string `env:"DATABASE"`
}

// Storage groups the configuration for the local storage backend.
type Storage struct {
	// DB holds the embedded database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the embedded SQLite database.
type DB struct {
	// DSN is the SQLite file path (e.g. "nutripal.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RefreshInterval defines how often the session token refresh job runs.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetConfig loads, merges, and validates the application configuration from
// all available sources in the following priority order (last source wins
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
