package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-d local database DSN (SQLite file path)
//	-remote-uri cloud document store connection URI
//	-remote-db cloud document store database name
//	-auth-url identity provider base URL
//	-auth-key identity provider API key
//	-auth-timeout auth request timeout (e.g., "15s")
//	-auth-connect-delay delay before the first auth network call
//	-nutrition-url nutrition lookup API base URL
//	-nutrition-key nutrition lookup API key
//	-nutrition-timeout nutrition request timeout (e.g., "10s")
//	-session-key device secret for the session cache
//	-refresh-interval session token refresh interval (e.g., "30m")
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var databaseDSN string
	var remoteURI string
	var remoteDatabase string
	var authBaseURL string
	var authAPIKey string
	var authTimeout time.Duration
	var authConnectDelay time.Duration
	var nutritionBaseURL string
	var nutritionAPIKey string
	var nutritionTimeout time.Duration
	var sessionKey string
	var refreshInterval time.Duration
	var jsonConfigPath string

	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&remoteURI, "remote-uri", "", "Cloud document store URI")
	flag.StringVar(&remoteDatabase, "remote-db", "", "Cloud document store database name")
	flag.StringVar(&authBaseURL, "auth-url", "", "Identity provider base URL")
	flag.StringVar(&authAPIKey, "auth-key", "", "Identity provider API key")
	flag.DurationVar(&authTimeout, "auth-timeout", 0, "Auth request timeout (e.g., 15s)")
	flag.DurationVar(&authConnectDelay, "auth-connect-delay", 0, "Delay before the first auth network call")
	flag.StringVar(&nutritionBaseURL, "nutrition-url", "", "Nutrition lookup API base URL")
	flag.StringVar(&nutritionAPIKey, "nutrition-key", "", "Nutrition lookup API key")
	flag.DurationVar(&nutritionTimeout, "nutrition-timeout", 0, "Nutrition request timeout (e.g., 10s)")
	flag.StringVar(&sessionKey, "session-key", "", "Device secret for the session cache")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Session token refresh interval (e.g., 30m)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			SessionKey: sessionKey,
		},
		Auth: Auth{
			BaseURL:        authBaseURL,
			APIKey:         authAPIKey,
			RequestTimeout: authTimeout,
			ConnectDelay:   authConnectDelay,
		},
		Nutrition: Nutrition{
			BaseURL:        nutritionBaseURL,
			APIKey:         nutritionAPIKey,
			RequestTimeout: nutritionTimeout,
		},
		Remote: Remote{
			URI:      remoteURI,
			Database: remoteDatabase,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
