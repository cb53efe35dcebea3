package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates an unknown driver or empty DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates unusable KDF parameters.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidAccessLogConfigs indicates an unknown read policy.
	ErrInvalidAccessLogConfigs = errors.New("invalid access log configuration")
	// ErrInvalidSecretsConfigs indicates an unknown share update policy.
	ErrInvalidSecretsConfigs = errors.New("invalid secrets configuration")
	// ErrInvalidFoldersConfigs indicates an unknown folder delete strategy.
	ErrInvalidFoldersConfigs = errors.New("invalid folders configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a negative sweep interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
