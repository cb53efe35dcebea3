package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

var folderColumns = []string{"id", "vault_id", "parent_id", "name", "icon", "created_at", "updated_at"}

type folderRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewFolderRepository constructs a [FolderRepository] backed by the
// provided database connection and logger.
func NewFolderRepository(db *DB, logger *logger.Logger) FolderRepository {
	logger.Debug().Msg("creating folder repository")
	return &folderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *folderRepository) Create(ctx context.Context, f models.Folder) error {
	log := logger.FromContext(ctx)

	insert := r.db.builder.Insert(f.TableName()).
		Columns(folderColumns...).
		Values(f.ID, f.VaultID, nullString(f.ParentID), f.Name, nullString(f.Icon), f.CreatedAt.UTC(), f.UpdatedAt.UTC())

	if _, err := r.db.exec(ctx, insert); err != nil {
		log.Err(err).
			Str("func", "folderRepository.Create").
			Str("vault_id", f.VaultID).
			Msg("failed to insert folder")
		return err
	}

	return nil
}

func (r *folderRepository) GetByID(ctx context.Context, folderID string) (models.Folder, error) {
	log := logger.FromContext(ctx)

	row, err := r.db.queryRow(ctx, r.db.builder.
		Select(folderColumns...).
		From(models.Folder{}.TableName()).
		Where(squirrel.Eq{"id": folderID}))
	if err != nil {
		return models.Folder{}, err
	}

	folder, err := scanFolder(row)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).
				Str("func", "folderRepository.GetByID").
				Str("folder_id", folderID).
				Msg("failed to scan folder row")
		}
		return models.Folder{}, err
	}

	return folder, nil
}

// ListByVault returns every folder of the vault ordered by name.
func (r *folderRepository) ListByVault(ctx context.Context, vaultID string) ([]models.Folder, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.query(ctx, r.db.builder.
		Select(folderColumns...).
		From(models.Folder{}.TableName()).
		Where(squirrel.Eq{"vault_id": vaultID}).
		OrderBy("name ASC", "id ASC"))
	if err != nil {
		log.Err(err).Str("func", "folderRepository.ListByVault").Msg("failed to query folders")
		return nil, err
	}
	defer rows.Close()

	folders := make([]models.Folder, 0, 8)
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			log.Err(err).Str("func", "folderRepository.ListByVault").Msg("failed to scan folder row")
			return nil, err
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return folders, nil
}

func (r *folderRepository) Update(ctx context.Context, f models.Folder) error {
	log := logger.FromContext(ctx)

	res, err := r.db.exec(ctx, r.db.builder.
		Update(f.TableName()).
		Set("name", f.Name).
		Set("icon", nullString(f.Icon)).
		Set("parent_id", nullString(f.ParentID)).
		Set("updated_at", f.UpdatedAt.UTC()).
		Where(squirrel.Eq{"id": f.ID, "vault_id": f.VaultID}))
	if err != nil {
		log.Err(err).
			Str("func", "folderRepository.Update").
			Str("folder_id", f.ID).
			Msg("failed to update folder")
		return err
	}

	return affectedOrNotFound(res)
}

// Delete removes the listed folders. Callers order ids so that children
// precede their parents, or clear parent references beforehand.
func (r *folderRepository) Delete(ctx context.Context, vaultID string, folderIDs []string) error {
	if len(folderIDs) == 0 {
		return nil
	}
	log := logger.FromContext(ctx)

	for _, id := range folderIDs {
		if _, err := r.db.exec(ctx, r.db.builder.
			Delete(models.Folder{}.TableName()).
			Where(squirrel.Eq{"id": id, "vault_id": vaultID})); err != nil {
			log.Err(err).
				Str("func", "folderRepository.Delete").
				Str("folder_id", id).
				Msg("failed to delete folder")
			return err
		}
	}

	return nil
}

func (r *folderRepository) ReparentChildren(ctx context.Context, vaultID, parentID string, updatedAt time.Time) error {
	log := logger.FromContext(ctx)

	_, err := r.db.exec(ctx, r.db.builder.
		Update(models.Folder{}.TableName()).
		Set("parent_id", nil).
		Set("updated_at", updatedAt.UTC()).
		Where(squirrel.Eq{"vault_id": vaultID, "parent_id": parentID}))
	if err != nil {
		log.Err(err).
			Str("func", "folderRepository.ReparentChildren").
			Str("folder_id", parentID).
			Msg("failed to move child folders to root")
		return err
	}

	return nil
}

func scanFolder(row rowScanner) (models.Folder, error) {
	var (
		f              models.Folder
		parentID, icon sql.NullString
	)

	if err := row.Scan(&f.ID, &f.VaultID, &parentID, &f.Name, &icon, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return models.Folder{}, scanErr(err)
	}

	if parentID.Valid {
		f.ParentID = &parentID.String
	}
	if icon.Valid {
		f.Icon = &icon.String
	}
	f.CreatedAt = f.CreatedAt.UTC()
	f.UpdatedAt = f.UpdatedAt.UTC()

	return f, nil
}
