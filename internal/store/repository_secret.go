package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

var secretColumns = []string{
	"id", "vault_id", "folder_id", "name", "secret_type", "description",
	"encrypted_value", "encrypted_metadata", "tags", "is_shared", "created_at", "updated_at",
}

// secretRepository is the SQL implementation of [SecretRepository]. It
// stores the ciphertext it is given and never decrypts.
type secretRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSecretRepository constructs a [SecretRepository] backed by the
// provided database connection and logger.
func NewSecretRepository(db *DB, logger *logger.Logger) SecretRepository {
	logger.Debug().Msg("creating secret repository")
	return &secretRepository{
		db:     db,
		logger: logger,
	}
}

func (r *secretRepository) Create(ctx context.Context, s models.Secret) error {
	log := logger.FromContext(ctx)

	tags, err := marshalTags(s.Tags)
	if err != nil {
		return err
	}

	insert := r.db.builder.Insert(s.TableName()).
		Columns(secretColumns...).
		Values(
			s.ID, s.VaultID, nullString(s.FolderID), s.Name, string(s.Type), nullString(s.Description),
			[]byte(s.Value), nullBytes(s.Metadata), tags, s.IsShared,
			s.CreatedAt.UTC(), s.UpdatedAt.UTC(),
		)

	if _, err := r.db.exec(ctx, insert); err != nil {
		log.Err(err).
			Str("func", "secretRepository.Create").
			Str("vault_id", s.VaultID).
			Str("secret_id", s.ID).
			Msg("failed to insert secret")
		return err
	}

	return nil
}

func (r *secretRepository) GetByID(ctx context.Context, secretID string) (models.Secret, error) {
	log := logger.FromContext(ctx)

	row, err := r.db.queryRow(ctx, r.db.builder.
		Select(secretColumns...).
		From(models.Secret{}.TableName()).
		Where(squirrel.Eq{"id": secretID}))
	if err != nil {
		return models.Secret{}, err
	}

	secret, err := scanSecret(row)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).
				Str("func", "secretRepository.GetByID").
				Str("secret_id", secretID).
				Msg("failed to scan secret row")
		}
		return models.Secret{}, err
	}

	return secret, nil
}

func (r *secretRepository) GetByIDs(ctx context.Context, secretIDs []string) ([]models.Secret, error) {
	if len(secretIDs) == 0 {
		return []models.Secret{}, nil
	}

	return r.list(ctx, "secretRepository.GetByIDs", r.db.builder.
		Select(secretColumns...).
		From(models.Secret{}.TableName()).
		Where(squirrel.Eq{"id": secretIDs}).
		OrderBy("name ASC", "id ASC"))
}

// Update writes only the fields set in u, plus updated_at.
func (r *secretRepository) Update(ctx context.Context, u models.SecretUpdate, updatedAt time.Time) error {
	log := logger.FromContext(ctx)

	update := r.db.builder.Update(models.Secret{}.TableName()).
		Set("updated_at", updatedAt.UTC())

	if u.Name != nil {
		update = update.Set("name", *u.Name)
	}
	if u.Type != nil {
		update = update.Set("secret_type", string(*u.Type))
	}
	if u.Description != nil {
		update = update.Set("description", nullString(emptyToNil(*u.Description)))
	}
	if u.Value != nil {
		update = update.Set("encrypted_value", []byte(u.Value))
	}
	if u.ClearMetadata {
		update = update.Set("encrypted_metadata", nil)
	} else if u.Metadata != nil {
		update = update.Set("encrypted_metadata", []byte(u.Metadata))
	}
	if u.Tags != nil {
		tags, err := marshalTags(*u.Tags)
		if err != nil {
			return err
		}
		update = update.Set("tags", tags)
	}
	if u.MoveFolder {
		update = update.Set("folder_id", nullString(u.FolderID))
	}

	update = update.Where(squirrel.Eq{"id": u.ID, "vault_id": u.VaultID})

	res, err := r.db.exec(ctx, update)
	if err != nil {
		log.Err(err).
			Str("func", "secretRepository.Update").
			Str("secret_id", u.ID).
			Msg("failed to update secret")
		return err
	}

	return affectedOrNotFound(res)
}

func (r *secretRepository) Delete(ctx context.Context, vaultID, secretID string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.exec(ctx, r.db.builder.
		Delete(models.Secret{}.TableName()).
		Where(squirrel.Eq{"id": secretID, "vault_id": vaultID}))
	if err != nil {
		log.Err(err).
			Str("func", "secretRepository.Delete").
			Str("secret_id", secretID).
			Msg("failed to delete secret")
		return err
	}

	return affectedOrNotFound(res)
}

// List returns the secrets of a vault matching filter, ordered by name.
func (r *secretRepository) List(ctx context.Context, vaultID string, filter models.SecretFilter) ([]models.Secret, error) {
	query := r.db.builder.
		Select(secretColumns...).
		From(models.Secret{}.TableName()).
		Where(squirrel.Eq{"vault_id": vaultID})

	switch {
	case filter.FolderID != nil:
		query = query.Where(squirrel.Eq{"folder_id": *filter.FolderID})
	case filter.RootOnly:
		query = query.Where(squirrel.Eq{"folder_id": nil})
	}
	if filter.Type != nil {
		query = query.Where(squirrel.Eq{"secret_type": string(*filter.Type)})
	}
	if filter.Tag != "" {
		quoted, err := json.Marshal(filter.Tag)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMarshalling, err)
		}
		query = query.Where(`tags LIKE ? ESCAPE '\'`, "%"+escapeLike(string(quoted))+"%")
	}
	if filter.NameContains != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(filter.NameContains))+"%")
	}

	query = query.OrderBy("name ASC", "id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	return r.list(ctx, "secretRepository.List", query)
}

func (r *secretRepository) ListByFolders(ctx context.Context, vaultID string, folderIDs []string) ([]models.Secret, error) {
	if len(folderIDs) == 0 {
		return []models.Secret{}, nil
	}

	return r.list(ctx, "secretRepository.ListByFolders", r.db.builder.
		Select(secretColumns...).
		From(models.Secret{}.TableName()).
		Where(squirrel.Eq{"vault_id": vaultID, "folder_id": folderIDs}).
		OrderBy("id ASC"))
}

func (r *secretRepository) MoveFolderToRoot(ctx context.Context, vaultID, folderID string, updatedAt time.Time) error {
	log := logger.FromContext(ctx)

	_, err := r.db.exec(ctx, r.db.builder.
		Update(models.Secret{}.TableName()).
		Set("folder_id", nil).
		Set("updated_at", updatedAt.UTC()).
		Where(squirrel.Eq{"vault_id": vaultID, "folder_id": folderID}))
	if err != nil {
		log.Err(err).
			Str("func", "secretRepository.MoveFolderToRoot").
			Str("folder_id", folderID).
			Msg("failed to move secrets to root")
		return err
	}

	return nil
}

func (r *secretRepository) SetShared(ctx context.Context, secretID string, shared bool) error {
	log := logger.FromContext(ctx)

	res, err := r.db.exec(ctx, r.db.builder.
		Update(models.Secret{}.TableName()).
		Set("is_shared", shared).
		Where(squirrel.Eq{"id": secretID}))
	if err != nil {
		log.Err(err).
			Str("func", "secretRepository.SetShared").
			Str("secret_id", secretID).
			Msg("failed to update is_shared")
		return err
	}

	return affectedOrNotFound(res)
}

func (r *secretRepository) CountByFolder(ctx context.Context, vaultID string) (map[string]int, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.query(ctx, r.db.builder.
		Select("folder_id", "COUNT(1)").
		From(models.Secret{}.TableName()).
		Where(squirrel.Eq{"vault_id": vaultID}).
		Where(squirrel.NotEq{"folder_id": nil}).
		GroupBy("folder_id"))
	if err != nil {
		log.Err(err).Str("func", "secretRepository.CountByFolder").Msg("failed to count secrets")
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			folderID string
			count    int
		)
		if err := rows.Scan(&folderID, &count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		counts[folderID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return counts, nil
}

func (r *secretRepository) list(ctx context.Context, fn string, query squirrel.SelectBuilder) ([]models.Secret, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.query(ctx, query)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute query for secrets")
		return nil, err
	}
	defer rows.Close()

	secrets := make([]models.Secret, 0, 16)
	for rows.Next() {
		secret, err := scanSecret(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("failed to scan secret row")
			return nil, err
		}
		secrets = append(secrets, secret)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return secrets, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSecret(row rowScanner) (models.Secret, error) {
	var (
		s                models.Secret
		folderID, desc   sql.NullString
		secretType, tags string
		value, metadata  []byte
	)

	err := row.Scan(
		&s.ID, &s.VaultID, &folderID, &s.Name, &secretType, &desc,
		&value, &metadata, &tags, &s.IsShared, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return models.Secret{}, scanErr(err)
	}

	if folderID.Valid {
		s.FolderID = &folderID.String
	}
	if desc.Valid {
		s.Description = &desc.String
	}
	s.Type = models.SecretType(secretType)
	s.Value = value
	if metadata != nil {
		s.Metadata = metadata
	}
	if err := json.Unmarshal([]byte(tags), &s.Tags); err != nil {
		return models.Secret{}, fmt.Errorf("%w: %w", ErrMarshalling, err)
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMarshalling, err)
	}
	return string(b), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullBytes(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}
