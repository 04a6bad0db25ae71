package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Version    string `json:"version"`
		SessionKey string `json:"session_key"`
	} `json:"app,omitempty"`

	Auth struct {
		BaseURL        string   `json:"base_url"`
		APIKey         string   `json:"api_key"`
		RequestTimeout Duration `json:"request_timeout"`
		ConnectDelay   Duration `json:"connect_delay"`
	} `json:"auth,omitempty"`

	Nutrition struct {
		BaseURL        string   `json:"base_url"`
		APIKey         string   `json:"api_key"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"nutrition,omitempty"`

	Remote struct {
		URI      string `json:"uri"`
		Database string `json:"database"`
	} `json:"remote,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		RefreshInterval Duration `json:"refresh_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Version:    jsonCfg.App.Version,
			SessionKey: jsonCfg.App.SessionKey,
		},
		Auth: Auth{
			BaseURL:        jsonCfg.Auth.BaseURL,
			APIKey:         jsonCfg.Auth.APIKey,
			RequestTimeout: time.Duration(jsonCfg.Auth.RequestTimeout),
			ConnectDelay:   time.Duration(jsonCfg.Auth.ConnectDelay),
		},
		Nutrition: Nutrition{
			BaseURL:        jsonCfg.Nutrition.BaseURL,
			APIKey:         jsonCfg.Nutrition.APIKey,
			RequestTimeout: time.Duration(jsonCfg.Nutrition.RequestTimeout),
		},
		Remote: Remote{
			URI:      jsonCfg.Remote.URI,
			Database: jsonCfg.Remote.Database,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Workers: Workers{
			RefreshInterval: time.Duration(jsonCfg.Workers.RefreshInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
