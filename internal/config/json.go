package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files, with
// durations accepted as strings ("30s") or integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		ActorToken string `json:"actor_token"`
		DeviceID   string `json:"device_id"`
		LogPath    string `json:"log_path"`
		LogLevel   string `json:"log_level"`
	} `json:"app,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		StreamAddress  string   `json:"stream_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Storage struct {
		Driver string `json:"driver"`
		DSN    string `json:"dsn"`
	} `json:"storage,omitempty"`

	Engine struct {
		MaxActionsPerWindow int      `json:"max_actions_per_window"`
		RateWindow          Duration `json:"rate_window"`
		MaxRetries          int      `json:"max_retries"`
		RetryBaseDelay      Duration `json:"retry_base_delay"`
		SubmitTimeout       Duration `json:"submit_timeout"`
		BatchSize           int      `json:"batch_size"`
		BatchDelay          Duration `json:"batch_delay"`
		CacheSize           int      `json:"cache_size"`
	} `json:"engine,omitempty"`

	Workers struct {
		RecoveryInterval Duration `json:"recovery_interval"`
	} `json:"workers,omitempty"`

	Server struct {
		HTTPAddress string `json:"http_address"`
	} `json:"server,omitempty"`
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
			ActorToken: jsonCfg.App.ActorToken,
			DeviceID:   jsonCfg.App.DeviceID,
			LogPath:    jsonCfg.App.LogPath,
			LogLevel:   jsonCfg.App.LogLevel,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			StreamAddress:  jsonCfg.Adapter.StreamAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Storage: Storage{
			Driver: jsonCfg.Storage.Driver,
			DSN:    jsonCfg.Storage.DSN,
		},
		Engine: Engine{
			MaxActionsPerWindow: jsonCfg.Engine.MaxActionsPerWindow,
			RateWindow:          time.Duration(jsonCfg.Engine.RateWindow),
			MaxRetries:          jsonCfg.Engine.MaxRetries,
			RetryBaseDelay:      time.Duration(jsonCfg.Engine.RetryBaseDelay),
			SubmitTimeout:       time.Duration(jsonCfg.Engine.SubmitTimeout),
			BatchSize:           jsonCfg.Engine.BatchSize,
			BatchDelay:          time.Duration(jsonCfg.Engine.BatchDelay),
			CacheSize:           jsonCfg.Engine.CacheSize,
		},
		Workers: Workers{
			RecoveryInterval: time.Duration(jsonCfg.Workers.RecoveryInterval),
		},
		Server: Server{
			HTTPAddress: jsonCfg.Server.HTTPAddress,
		},
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
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
