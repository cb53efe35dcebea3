// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VERSION":            "1.2.3",
		"APP_KDF_TIME":           "2",
		"APP_KDF_MEMORY":         "32768",
		"APP_KDF_THREADS":        "2",
		"LOG_LEVEL":              "info",
		"ACCESS_LOG_READ_POLICY": "fail_open",

		"SECRETS_SHARE_POLICY_ON_UPDATE": "invalidate",
		"FOLDERS_DELETE_STRATEGY":        "reparent",
		"WORKERS_SWEEP_INTERVAL":         "1m",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_DRIVER":            "sqlite",
		"STORAGE_DB_DATABASE_URI":      "file:vault.db",
		"STORAGE_DB_MAX_OPEN_CONNS":    "4",
		"STORAGE_DB_MAX_IDLE_CONNS":    "2",
		"STORAGE_DB_CONN_MAX_LIFETIME": "10m",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, KDF{Time: 2, Memory: 32768, Threads: 2}, cfg.App.KDF)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ReadPolicyFailOpen, cfg.AccessLog.ReadPolicy)
	assert.Equal(t, SharePolicyInvalidate, cfg.Secrets.SharePolicyOnUpdate)
	assert.Equal(t, FolderDeleteReparent, cfg.Folders.DeleteStrategy)
	assert.Equal(t, time.Minute, cfg.Workers.SweepInterval)

	assert.Equal(t, DB{
		Driver:          DriverSQLite,
		DSN:             "file:vault.db",
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: 10 * time.Minute,
	}, cfg.Storage.DB)
}

func TestParseEnv_OnlyStorageDB(t *testing.T) {
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/testdb")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "postgres://localhost/testdb", cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.Storage.DB.Driver)
	assert.Equal(t, App{}, cfg.App)
}

func TestParseEnv_InvalidNumber(t *testing.T) {
	t.Setenv("APP_KDF_THREADS", "many")

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
