// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.App.KDF.Time == 0 || cfg.App.KDF.Memory < 8*uint32(cfg.App.KDF.Threads) || cfg.App.KDF.Threads == 0 {
		return fmt.Errorf("%w: bad KDF parameters", ErrInvalidAppConfigs)
	}

	switch cfg.AccessLog.ReadPolicy {
	case ReadPolicyFailClosed, ReadPolicyFailOpen:
	default:
		return fmt.Errorf("%w: unknown read policy %q", ErrInvalidAccessLogConfigs, cfg.AccessLog.ReadPolicy)
	}

	switch cfg.Secrets.SharePolicyOnUpdate {
	case SharePolicyRefresh, SharePolicyInvalidate, SharePolicyKeep:
	default:
		return fmt.Errorf("%w: unknown share policy %q", ErrInvalidSecretsConfigs, cfg.Secrets.SharePolicyOnUpdate)
	}

	switch cfg.Folders.DeleteStrategy {
	case FolderDeleteCascade, FolderDeleteReparent:
	default:
		return fmt.Errorf("%w: unknown delete strategy %q", ErrInvalidFoldersConfigs, cfg.Folders.DeleteStrategy)
	}

	if cfg.Workers.SweepInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
