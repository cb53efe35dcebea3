package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// VaultRepository persists vault key material. Exactly one vault exists per
// owner.
type VaultRepository interface {
	// Create inserts v. A second vault for the same owner yields
	// ErrAlreadyExists.
	Create(ctx context.Context, v models.Vault) error
	GetByID(ctx context.Context, vaultID string) (models.Vault, error)
	GetByOwner(ctx context.Context, userID int64) (models.Vault, error)
	ExistsForUser(ctx context.Context, userID int64) (bool, error)

	// LockForUpdate takes a row lock on the vault for the rest of the
	// transaction carried by ctx. Structural changes inside one vault
	// (folder moves, share upserts) run one at a time behind it.
	LockForUpdate(ctx context.Context, vaultID string) error

	// UpdateKeys replaces salt, KDF parameters, check value and wrapped
	// keys after a key change.
	UpdateKeys(ctx context.Context, v models.Vault) error
}

// SecretRepository persists encrypted secrets. It never sees plaintext.
type SecretRepository interface {
	Create(ctx context.Context, s models.Secret) error
	GetByID(ctx context.Context, secretID string) (models.Secret, error)
	GetByIDs(ctx context.Context, secretIDs []string) ([]models.Secret, error)

	// Update writes the non-nil fields of u. ErrNotFound when the secret
	// does not exist in u.VaultID.
	Update(ctx context.Context, u models.SecretUpdate, updatedAt time.Time) error
	Delete(ctx context.Context, vaultID, secretID string) error
	List(ctx context.Context, vaultID string, filter models.SecretFilter) ([]models.Secret, error)
	ListByFolders(ctx context.Context, vaultID string, folderIDs []string) ([]models.Secret, error)

	// MoveFolderToRoot clears folder_id of every secret in folderID.
	MoveFolderToRoot(ctx context.Context, vaultID, folderID string, updatedAt time.Time) error
	SetShared(ctx context.Context, secretID string, shared bool) error

	// CountByFolder returns the number of secrets per folder id; secrets at
	// the root are not counted.
	CountByFolder(ctx context.Context, vaultID string) (map[string]int, error)
}

// FolderRepository persists the folder forest of each vault.
type FolderRepository interface {
	Create(ctx context.Context, f models.Folder) error
	GetByID(ctx context.Context, folderID string) (models.Folder, error)
	ListByVault(ctx context.Context, vaultID string) ([]models.Folder, error)

	// Update writes name, icon and parent of f.
	Update(ctx context.Context, f models.Folder) error
	Delete(ctx context.Context, vaultID string, folderIDs []string) error

	// ReparentChildren moves the direct children of parentID to the root.
	ReparentChildren(ctx context.Context, vaultID, parentID string, updatedAt time.Time) error
}

// ShareRepository persists share grants and their wrapped values.
type ShareRepository interface {
	Create(ctx context.Context, s models.Share) error

	// Replace overwrites permission, wrapped value and expiry of an
	// existing share in place.
	Replace(ctx context.Context, s models.Share) error
	GetByID(ctx context.Context, shareID string) (models.Share, error)

	// FindLatest returns the most recently created share for the pair,
	// revoked or not.
	FindLatest(ctx context.Context, secretID string, targetUserID int64) (models.Share, error)

	// FindUnrevoked returns the most recent non-revoked share for the pair.
	FindUnrevoked(ctx context.Context, secretID string, targetUserID int64) (models.Share, error)
	ListBySecret(ctx context.Context, secretID string) ([]models.Share, error)
	ListUnrevokedByTarget(ctx context.Context, targetUserID int64) ([]models.Share, error)

	// ListUnrevokedExpiring returns every non-revoked share with an expiry.
	ListUnrevokedExpiring(ctx context.Context) ([]models.Share, error)
	UpdateWrappedValue(ctx context.Context, shareID string, wrapped models.WrappedValue, updatedAt time.Time) error

	// Revoke marks the share revoked and drops its wrapped value. It
	// reports false when the share was already revoked.
	Revoke(ctx context.Context, shareID string, at time.Time) (bool, error)

	// RevokeBySecret revokes every unrevoked share of the secret.
	RevokeBySecret(ctx context.Context, secretID string, at time.Time) (int64, error)
}

// AccessLogRepository is the append-only audit store.
type AccessLogRepository interface {
	Append(ctx context.Context, e models.AccessLogEntry) error
	Query(ctx context.Context, vaultID string, filter models.AccessLogFilter) ([]models.AccessLogEntry, error)
}
