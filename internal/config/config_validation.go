// SPDX-License-Identifier: Apache-2.0

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The local database and the identity provider are mandatory; the remote
// document store and nutrition lookup may be absent (the app then runs in
// local-only, offline mode).
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.BaseURL == "" || cfg.Auth.APIKey == "" {
		return ErrInvalidAuthConfigs
	}

	if cfg.App.SessionKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Remote.URI != "" && cfg.Remote.Database == "" {
		return ErrInvalidRemoteConfigs
	}

	return nil
}
