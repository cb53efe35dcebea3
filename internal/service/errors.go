package service

import "errors"

var (
	ErrInvalidKeyFormat = errors.New("invalid key format")
	ErrWrongKey         = errors.New("wrong key")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrAccessDenied     = errors.New("access denied")

	ErrRecipientHasNoVault = errors.New("recipient has no vault")
	ErrShareRevoked        = errors.New("share is revoked")
	ErrShareExpired        = errors.New("share is expired")

	ErrCycleDetected = errors.New("folder move would create a cycle")
	ErrInvalidParent = errors.New("invalid parent folder")

	ErrNotFound            = errors.New("not found")
	ErrVaultAlreadyExists  = errors.New("user already has a vault")
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrSessionLocked       = errors.New("session is locked")

	// ErrAuditWriteFailed is returned when an operation could not be
	// completed because its access log entry could not be written.
	ErrAuditWriteFailed = errors.New("failed to write access log entry")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
