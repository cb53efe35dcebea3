package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

var vaultColumns = []string{
	"id", "owner_user_id", "name", "salt", "kdf_time", "kdf_memory", "kdf_threads",
	"check_value", "wrapped_keys", "share_public_key", "created_at", "updated_at",
}

// vaultRepository is the SQL implementation of [VaultRepository].
type vaultRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewVaultRepository constructs a [VaultRepository] backed by the provided
// database connection and logger.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new vault. A unique violation on owner_user_id is
// reported as [ErrAlreadyExists].
func (r *vaultRepository) Create(ctx context.Context, v models.Vault) error {
	log := logger.FromContext(ctx)

	insert := r.db.builder.Insert(v.TableName()).
		Columns(vaultColumns...).
		Values(
			v.ID, v.OwnerUserID, v.Name, v.Salt,
			int64(v.KDF.Time), int64(v.KDF.Memory), int64(v.KDF.Threads),
			v.CheckValue, v.WrappedKeys, v.SharePublicKey,
			v.CreatedAt.UTC(), v.UpdatedAt.UTC(),
		)

	if _, err := r.db.exec(ctx, insert); err != nil {
		log.Err(err).
			Str("func", "vaultRepository.Create").
			Int64("owner_user_id", v.OwnerUserID).
			Msg("failed to insert vault")
		return err
	}

	return nil
}

func (r *vaultRepository) GetByID(ctx context.Context, vaultID string) (models.Vault, error) {
	return r.getOne(ctx, squirrel.Eq{"id": vaultID})
}

func (r *vaultRepository) GetByOwner(ctx context.Context, userID int64) (models.Vault, error) {
	return r.getOne(ctx, squirrel.Eq{"owner_user_id": userID})
}

// ExistsForUser reports whether userID owns a vault.
func (r *vaultRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	row, err := r.db.queryRow(ctx, r.db.builder.
		Select("COUNT(1)").
		From(models.Vault{}.TableName()).
		Where(squirrel.Eq{"owner_user_id": userID}))
	if err != nil {
		return false, err
	}

	var count int64
	if err := row.Scan(&count); err != nil {
		log.Err(err).
			Str("func", "vaultRepository.ExistsForUser").
			Int64("user_id", userID).
			Msg("failed to count vaults")
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return count > 0, nil
}

// LockForUpdate serialises writers on one vault. Postgres takes a row lock
// with SELECT ... FOR UPDATE; SQLite has no row locks, so a no-op UPDATE
// takes the database write lock instead. It must run inside a transaction.
func (r *vaultRepository) LockForUpdate(ctx context.Context, vaultID string) error {
	log := logger.FromContext(ctx)

	if r.db.Dialect() == DialectSQLite {
		res, err := r.db.exec(ctx, r.db.builder.
			Update(models.Vault{}.TableName()).
			Set("updated_at", squirrel.Expr("updated_at")).
			Where(squirrel.Eq{"id": vaultID}))
		if err != nil {
			log.Err(err).Str("func", "vaultRepository.LockForUpdate").Str("vault_id", vaultID).Msg("failed to lock vault")
			return err
		}
		return affectedOrNotFound(res)
	}

	row, err := r.db.queryRow(ctx, r.db.builder.
		Select("id").
		From(models.Vault{}.TableName()).
		Where(squirrel.Eq{"id": vaultID}).
		Suffix("FOR UPDATE"))
	if err != nil {
		return err
	}

	var id string
	if err := row.Scan(&id); err != nil {
		err = scanErr(err)
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", "vaultRepository.LockForUpdate").Str("vault_id", vaultID).Msg("failed to lock vault")
		}
		return err
	}

	return nil
}

// UpdateKeys replaces the key material of an existing vault.
func (r *vaultRepository) UpdateKeys(ctx context.Context, v models.Vault) error {
	log := logger.FromContext(ctx)

	update := r.db.builder.Update(v.TableName()).
		Set("salt", v.Salt).
		Set("kdf_time", int64(v.KDF.Time)).
		Set("kdf_memory", int64(v.KDF.Memory)).
		Set("kdf_threads", int64(v.KDF.Threads)).
		Set("check_value", v.CheckValue).
		Set("wrapped_keys", v.WrappedKeys).
		Set("updated_at", v.UpdatedAt.UTC()).
		Where(squirrel.Eq{"id": v.ID})

	res, err := r.db.exec(ctx, update)
	if err != nil {
		log.Err(err).
			Str("func", "vaultRepository.UpdateKeys").
			Str("vault_id", v.ID).
			Msg("failed to update vault keys")
		return err
	}

	return affectedOrNotFound(res)
}

func (r *vaultRepository) getOne(ctx context.Context, where squirrel.Eq) (models.Vault, error) {
	log := logger.FromContext(ctx)

	row, err := r.db.queryRow(ctx, r.db.builder.
		Select(vaultColumns...).
		From(models.Vault{}.TableName()).
		Where(where))
	if err != nil {
		return models.Vault{}, err
	}

	var (
		v                  models.Vault
		kdfTime, kdfMemory int64
		kdfThreads         int64
	)
	err = row.Scan(
		&v.ID, &v.OwnerUserID, &v.Name, &v.Salt,
		&kdfTime, &kdfMemory, &kdfThreads,
		&v.CheckValue, &v.WrappedKeys, &v.SharePublicKey,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		err = scanErr(err)
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", "vaultRepository.getOne").Msg("failed to scan vault row")
		}
		return models.Vault{}, err
	}

	v.KDF = models.KDFParams{
		Time:    uint32(kdfTime),
		Memory:  uint32(kdfMemory),
		Threads: uint8(kdfThreads),
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()

	return v, nil
}
