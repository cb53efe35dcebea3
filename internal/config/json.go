package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		Version string `json:"version"`
		KDF     struct {
			Time    uint32 `json:"time"`
			Memory  uint32 `json:"memory"`
			Threads uint8  `json:"threads"`
		} `json:"kdf"`
	} `json:"app,omitempty"`

	Log struct {
		Level string `json:"level"`
	} `json:"log,omitempty"`

	Storage struct {
		DB struct {
			Driver          string   `json:"driver"`
			DSN             string   `json:"dsn"`
			MaxOpenConns    int      `json:"max_open_conns"`
			MaxIdleConns    int      `json:"max_idle_conns"`
			ConnMaxLifetime Duration `json:"conn_max_lifetime"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	AccessLog struct {
		ReadPolicy string `json:"read_policy"`
	} `json:"access_log,omitempty"`

	Secrets struct {
		SharePolicyOnUpdate string `json:"share_policy_on_update"`
	} `json:"secrets,omitempty"`

	Folders struct {
		DeleteStrategy string `json:"delete_strategy"`
	} `json:"folders,omitempty"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval"`
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
			Version: jsonCfg.App.Version,
			KDF: KDF{
				Time:    jsonCfg.App.KDF.Time,
				Memory:  jsonCfg.App.KDF.Memory,
				Threads: jsonCfg.App.KDF.Threads,
			},
		},
		Log: Log{Level: jsonCfg.Log.Level},
		Storage: Storage{
			DB: DB{
				Driver:          jsonCfg.Storage.DB.Driver,
				DSN:             jsonCfg.Storage.DB.DSN,
				MaxOpenConns:    jsonCfg.Storage.DB.MaxOpenConns,
				MaxIdleConns:    jsonCfg.Storage.DB.MaxIdleConns,
				ConnMaxLifetime: time.Duration(jsonCfg.Storage.DB.ConnMaxLifetime),
			},
		},
		AccessLog: AccessLog{ReadPolicy: jsonCfg.AccessLog.ReadPolicy},
		Secrets:   Secrets{SharePolicyOnUpdate: jsonCfg.Secrets.SharePolicyOnUpdate},
		Folders:   Folders{DeleteStrategy: jsonCfg.Folders.DeleteStrategy},
		Workers:   Workers{SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval)},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
