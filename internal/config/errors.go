package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates invalid identity provider settings
	// (for example, missing base URL or API key).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing session cache key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidRemoteConfigs indicates a remote URI without a database
	// name, leaving the cloud store unaddressable.
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
)
