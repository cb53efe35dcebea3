package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/models"
)

// VaultService creates vaults and turns a user's raw key into a [Session].
type VaultService interface {
	CreateVault(ctx context.Context, actor models.Actor, rawKey, name string) (models.VaultInfo, error)

	// Unlock returns a session holding the vault's keys. Every failure to
	// prove the key is reported as ErrWrongKey.
	Unlock(ctx context.Context, actor models.Actor, rawKey string) (*Session, error)

	// Lock wipes the session keys. Locking twice is a no-op.
	Lock(ctx context.Context, session *Session) error

	// ChangeKey rewraps the vault keys under a key derived from newRawKey.
	// Secrets are not re-encrypted.
	ChangeKey(ctx context.Context, session *Session, oldRawKey, newRawKey string) error

	UserHasVault(ctx context.Context, userID int64) (bool, error)
	GetVault(ctx context.Context, userID int64) (models.VaultInfo, error)
}

// SecretService is encrypted CRUD over the secrets of an unlocked vault.
type SecretService interface {
	Create(ctx context.Context, session *Session, req models.CreateSecretRequest) (models.SecretInfo, error)

	// Read decrypts a secret of the session's vault, or a secret shared
	// with the session's user.
	Read(ctx context.Context, session *Session, secretID string) (models.DecryptedSecret, error)
	Update(ctx context.Context, session *Session, secretID string, req models.UpdateSecretRequest) (models.SecretInfo, error)
	Delete(ctx context.Context, session *Session, secretID string) error

	// List returns metadata only. It never decrypts.
	List(ctx context.Context, session *Session, filter models.SecretFilter) ([]models.SecretInfo, error)
	SharedWithMe(ctx context.Context, session *Session) ([]models.SecretInfo, error)
}

// FolderService maintains the folder forest of a vault.
type FolderService interface {
	Create(ctx context.Context, session *Session, name string, parentID, icon *string) (models.Folder, error)
	Rename(ctx context.Context, session *Session, folderID, name string, icon *string) (models.Folder, error)

	// Move re-parents a folder; a nil parent moves it to the root.
	Move(ctx context.Context, session *Session, folderID string, newParentID *string) (models.Folder, error)

	// Delete removes a folder. An empty strategy uses the configured
	// default.
	Delete(ctx context.Context, session *Session, folderID string, strategy models.FolderDeleteStrategy) error
	ResolvePath(ctx context.Context, session *Session, folderID string) ([]string, error)
	Tree(ctx context.Context, session *Session) ([]models.FolderNode, error)
}

// ShareService grants other users access to a secret by re-encrypting its
// value to their public key.
type ShareService interface {
	Share(ctx context.Context, session *Session, req models.ShareRequest) (models.ShareInfo, error)
	Revoke(ctx context.Context, session *Session, shareID string) error
	ListShares(ctx context.Context, session *Session, secretID string) ([]models.ShareInfo, error)

	// SweepExpired revokes shares that expired before now and returns how
	// many were revoked.
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// AccessLogService is the audit trail of vault operations.
type AccessLogService interface {
	// Record appends entry; a failure is returned wrapped in
	// ErrAuditWriteFailed.
	Record(ctx context.Context, entry models.AccessLogEntry) error

	// RecordRead appends a read entry honouring the configured read
	// policy.
	RecordRead(ctx context.Context, entry models.AccessLogEntry) error
	Query(ctx context.Context, session *Session, filter models.AccessLogFilter) ([]models.AccessLogEntry, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// ShareSweepJob periodically calls ShareService.SweepExpired.
type ShareSweepJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}

// SecretServiceWrapper defines middleware composition for SecretService.
// Implementations wrap an existing SecretService to add behavior such as
// validation.
type SecretServiceWrapper interface {
	Wrap(SecretService) SecretService
}
