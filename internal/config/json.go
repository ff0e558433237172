package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly duration fields, so operators can write "5m" instead of
// nanosecond integers.
type StructuredJSONConfig struct {
	App struct {
		LogPath string `json:"log_path"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Remote struct {
		Address        string   `json:"address"`
		APIToken       string   `json:"api_token"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"remote,omitempty"`

	Sync struct {
		Tables        []string `json:"tables"`
		Interval      Duration `json:"interval"`
		PageLimit     int      `json:"page_limit"`
		MaxRetries    int      `json:"max_retries"`
		ProbeInterval Duration `json:"probe_interval"`
	} `json:"sync,omitempty"`

	Status struct {
		Address string `json:"address"`
	} `json:"status,omitempty"`
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
			LogPath: jsonCfg.App.LogPath,
			Version: jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Remote: Remote{
			Address:        jsonCfg.Remote.Address,
			APIToken:       jsonCfg.Remote.APIToken,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
		},
		Sync: Sync{
			Tables:        jsonCfg.Sync.Tables,
			Interval:      time.Duration(jsonCfg.Sync.Interval),
			PageLimit:     jsonCfg.Sync.PageLimit,
			MaxRetries:    jsonCfg.Sync.MaxRetries,
			ProbeInterval: time.Duration(jsonCfg.Sync.ProbeInterval),
		},
		Status: Status{
			Address: jsonCfg.Status.Address,
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
