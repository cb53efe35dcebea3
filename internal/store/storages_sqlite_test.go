package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()

	ctx := context.Background()
	db, err := NewConnectSQLite(ctx, config.DB{
		Driver: config.DriverSQLite,
		DSN:    "file:" + filepath.Join(t.TempDir(), "vault.db") + "?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_txlock=immediate",
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return NewStorages(db, logger.Nop())
}

func TestSQLiteStorages_RoundTrip(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	v := testVault()
	require.NoError(t, s.VaultRepository.Create(ctx, v))

	dup := testVault()
	dup.ID = "another"
	assert.ErrorIs(t, s.VaultRepository.Create(ctx, dup), ErrAlreadyExists)

	exists, err := s.VaultRepository.ExistsForUser(ctx, v.OwnerUserID)
	require.NoError(t, err)
	assert.True(t, exists)

	gotVault, err := s.VaultRepository.GetByOwner(ctx, v.OwnerUserID)
	require.NoError(t, err)
	assert.Equal(t, v.KDF, gotVault.KDF)
	assert.Equal(t, v.WrappedKeys, gotVault.WrappedKeys)

	folder := models.Folder{ID: "f1", VaultID: v.ID, Name: "work", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.FolderRepository.Create(ctx, folder))

	secret := models.Secret{
		ID:        "s1",
		VaultID:   v.ID,
		FolderID:  &folder.ID,
		Name:      "GitHub token",
		Type:      models.APIKey,
		Value:     models.CipheredValue{0x01, 0x02, 0x03},
		Metadata:  models.CipheredMetadata{0x01, 0x09},
		Tags:      []string{"dev", "100%"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.SecretRepository.Create(ctx, secret))
	require.NoError(t, s.SecretRepository.Create(ctx, models.Secret{
		ID: "s2", VaultID: v.ID, Name: "notes", Type: models.Note, Value: models.CipheredValue{0x01},
		CreatedAt: now, UpdatedAt: now,
	}))

	byTag, err := s.SecretRepository.List(ctx, v.ID, models.SecretFilter{Tag: "100%"})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "s1", byTag[0].ID)

	// a tag that is a prefix of another must not match
	none, err := s.SecretRepository.List(ctx, v.ID, models.SecretFilter{Tag: "de"})
	require.NoError(t, err)
	assert.Empty(t, none)

	byName, err := s.SecretRepository.List(ctx, v.ID, models.SecretFilter{NameContains: "github"})
	require.NoError(t, err)
	require.Len(t, byName, 1)

	root, err := s.SecretRepository.List(ctx, v.ID, models.SecretFilter{RootOnly: true})
	require.NoError(t, err)
	require.Len(t, root, 1)
	assert.Equal(t, "s2", root[0].ID)

	counts, err := s.SecretRepository.CountByFolder(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"f1": 1}, counts)

	require.NoError(t, s.SecretRepository.Update(ctx, models.SecretUpdate{
		ID: "s1", VaultID: v.ID, ClearMetadata: true, MoveFolder: true,
	}, now.Add(time.Second)))
	updated, err := s.SecretRepository.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, updated.FolderID)
	assert.Nil(t, updated.Metadata)
	assert.Equal(t, secret.Value, updated.Value)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	expires := now.Add(time.Hour)
	share := models.Share{
		ID: "sh1", SecretID: "s1", OwnerUserID: v.OwnerUserID, TargetUserID: 99,
		Permission: models.PermissionRead, WrappedValue: models.WrappedValue{0x02, 0x05},
		ExpiresAt: &expires, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.ShareRepository.Create(ctx, share))

	incoming, err := s.ShareRepository.ListUnrevokedByTarget(ctx, 99)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	require.NotNil(t, incoming[0].ExpiresAt)
	assert.True(t, incoming[0].ExpiresAt.Equal(expires))

	revoked, err := s.ShareRepository.Revoke(ctx, "sh1", now)
	require.NoError(t, err)
	assert.True(t, revoked)
	revoked, err = s.ShareRepository.Revoke(ctx, "sh1", now)
	require.NoError(t, err)
	assert.False(t, revoked)

	latest, err := s.ShareRepository.FindLatest(ctx, "s1", 99)
	require.NoError(t, err)
	assert.True(t, latest.IsRevoked())
	assert.Nil(t, latest.WrappedValue)

	_, err = s.ShareRepository.FindUnrevoked(ctx, "s1", 99)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.SecretRepository.Delete(ctx, v.ID, "s1"))
	assert.ErrorIs(t, s.SecretRepository.Delete(ctx, v.ID, "s1"), ErrNotFound)

	history, err := s.ShareRepository.ListBySecret(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSQLiteStorages_AccessLogNewestFirst(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	actions := []models.AccessAction{models.ActionVaultCreate, models.ActionVaultUnlock, models.ActionRead}
	for i, action := range actions {
		require.NoError(t, s.AccessLogRepository.Append(ctx, models.AccessLogEntry{
			ID:           string(rune('a' + i)),
			ActorUserID:  1,
			VaultID:      "v1",
			ResourceType: models.ResourceVault,
			Action:       action,
			Success:      true,
			Details:      map[string]any{"n": i},
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := s.AccessLogRepository.Query(ctx, "v1", models.AccessLogFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, models.ActionRead, entries[0].Action)
	assert.Equal(t, models.ActionVaultCreate, entries[2].Action)
	assert.Equal(t, float64(2), entries[0].Details["n"])

	from := base.Add(30 * time.Second)
	filtered, err := s.AccessLogRepository.Query(ctx, "v1", models.AccessLogFilter{
		From:    &from,
		Actions: []models.AccessAction{models.ActionVaultUnlock, models.ActionVaultCreate},
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, models.ActionVaultUnlock, filtered[0].Action)
}

func TestSQLiteStorages_TxRollback(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.VaultRepository.Create(ctx, testVault()); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := s.VaultRepository.ExistsForUser(ctx, testVault().OwnerUserID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteStorages_OneActiveSharePerRecipient(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	v := testVault()
	require.NoError(t, s.VaultRepository.Create(ctx, v))
	require.NoError(t, s.SecretRepository.Create(ctx, models.Secret{
		ID: "s1", VaultID: v.ID, Name: "db", Type: models.Password, Value: models.CipheredValue{0x01},
		CreatedAt: now, UpdatedAt: now,
	}))

	share := func(id string) models.Share {
		return models.Share{
			ID: id, SecretID: "s1", OwnerUserID: v.OwnerUserID, TargetUserID: 99,
			Permission: models.PermissionRead, WrappedValue: models.WrappedValue{0x02},
			CreatedAt: now, UpdatedAt: now,
		}
	}

	require.NoError(t, s.ShareRepository.Create(ctx, share("sh1")))
	assert.ErrorIs(t, s.ShareRepository.Create(ctx, share("sh2")), ErrAlreadyExists)

	// a revoked share does not block a new grant
	_, err := s.ShareRepository.Revoke(ctx, "sh1", now)
	require.NoError(t, err)
	require.NoError(t, s.ShareRepository.Create(ctx, share("sh2")))

	history, err := s.ShareRepository.ListBySecret(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSQLiteStorages_LockForUpdate(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := context.Background()

	v := testVault()
	require.NoError(t, s.VaultRepository.Create(ctx, v))

	err := s.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		return s.VaultRepository.LockForUpdate(ctx, v.ID)
	})
	require.NoError(t, err)

	err = s.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		return s.VaultRepository.LockForUpdate(ctx, "missing")
	})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.VaultRepository.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(v.UpdatedAt))
}
