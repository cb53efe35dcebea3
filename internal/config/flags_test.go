package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, cfg *StructuredConfig)
		wantErr bool
	}{
		{
			name: "no flags",
			args: nil,
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, StructuredConfig{}, *cfg)
			},
		},
		{
			name: "storage",
			args: []string{"-driver", "sqlite", "-d", "file:vault.db"},
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
				assert.Equal(t, "file:vault.db", cfg.Storage.DB.DSN)
			},
		},
		{
			name: "kdf",
			args: []string{"-kdf-time", "3", "-kdf-memory", "65536", "-kdf-threads", "2"},
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, KDF{Time: 3, Memory: 65536, Threads: 2}, cfg.App.KDF)
			},
		},
		{
			name: "policies",
			args: []string{
				"-read-policy", "fail_open",
				"-share-policy", "keep",
				"-folder-delete-strategy", "reparent",
				"-sweep-interval", "30s",
				"-log-level", "warn",
			},
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, ReadPolicyFailOpen, cfg.AccessLog.ReadPolicy)
				assert.Equal(t, SharePolicyKeep, cfg.Secrets.SharePolicyOnUpdate)
				assert.Equal(t, FolderDeleteReparent, cfg.Folders.DeleteStrategy)
				assert.Equal(t, 30*time.Second, cfg.Workers.SweepInterval)
				assert.Equal(t, "warn", cfg.Log.Level)
			},
		},
		{
			name: "config alias",
			args: []string{"-config", "/etc/vault.json"},
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/etc/vault.json", cfg.JSONFilePath)
			},
		},
		{
			name:    "bad duration",
			args:    []string{"-sweep-interval", "later"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(newFlagSet(), tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
