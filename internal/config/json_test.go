package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDuration_UnmarshalJSON covers the string, numeric and invalid forms
// accepted by the Duration wrapper.
func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "string form", input: `"1h30m"`, expected: 90 * time.Minute},
		{name: "seconds string", input: `"15s"`, expected: 15 * time.Second},
		{name: "numeric nanoseconds", input: `1000000000`, expected: time.Second},
		{name: "garbage string", input: `"soon"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, time.Duration(d))
		})
	}
}

// TestDuration_MarshalJSON verifies the round-trip through the string form.
func TestDuration_MarshalJSON(t *testing.T) {
	d := Duration(15 * time.Second)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"15s"`, string(data))
}

// TestParseJSON_FullFile verifies that every section of the JSON file lands
// in the right config group.
func TestParseJSON_FullFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{"version": "1.0.0", "session_key": "secret"},
		"auth": map[string]any{
			"base_url":        "https://id.example.com",
			"api_key":         "key",
			"request_timeout": "15s",
			"connect_delay":   "500ms",
		},
		"nutrition": map[string]any{
			"base_url":        "https://api.calorieninjas.com",
			"api_key":         "nkey",
			"request_timeout": "10s",
		},
		"remote":  map[string]any{"uri": "mongodb://localhost:27017", "database": "nutripal"},
		"storage": map[string]any{"db": map[string]any{"dsn": "nutripal.db"}},
		"workers": map[string]any{"refresh_interval": "30m"},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "secret", cfg.App.SessionKey)
	assert.Equal(t, 15*time.Second, cfg.Auth.RequestTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Auth.ConnectDelay)
	assert.Equal(t, "nkey", cfg.Nutrition.APIKey)
	assert.Equal(t, "nutripal", cfg.Remote.Database)
	assert.Equal(t, "nutripal.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 30*time.Minute, cfg.Workers.RefreshInterval)
}

// TestParseJSON_MissingFile verifies the wrapped open error.
func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/no/such/file.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}
