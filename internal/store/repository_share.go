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

var shareColumns = []string{
	"id", "secret_id", "owner_user_id", "target_user_id", "permission",
	"wrapped_value", "expires_at", "revoked_at", "created_at", "updated_at",
}

// shareRepository is the SQL implementation of [ShareRepository]. Revoked
// shares are kept as history with their wrapped value cleared.
type shareRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewShareRepository constructs a [ShareRepository] backed by the provided
// database connection and logger.
func NewShareRepository(db *DB, logger *logger.Logger) ShareRepository {
	logger.Debug().Msg("creating share repository")
	return &shareRepository{
		db:     db,
		logger: logger,
	}
}

func (r *shareRepository) Create(ctx context.Context, s models.Share) error {
	log := logger.FromContext(ctx)

	insert := r.db.builder.Insert(s.TableName()).
		Columns(shareColumns...).
		Values(
			s.ID, s.SecretID, s.OwnerUserID, s.TargetUserID, string(s.Permission),
			nullBytes(s.WrappedValue), utcPtr(s.ExpiresAt), utcPtr(s.RevokedAt),
			s.CreatedAt.UTC(), s.UpdatedAt.UTC(),
		)

	if _, err := r.db.exec(ctx, insert); err != nil {
		log.Err(err).
			Str("func", "shareRepository.Create").
			Str("secret_id", s.SecretID).
			Int64("target_user_id", s.TargetUserID).
			Msg("failed to insert share")
		return err
	}

	return nil
}

func (r *shareRepository) Replace(ctx context.Context, s models.Share) error {
	log := logger.FromContext(ctx)

	res, err := r.db.exec(ctx, r.db.builder.
		Update(s.TableName()).
		Set("permission", string(s.Permission)).
		Set("wrapped_value", nullBytes(s.WrappedValue)).
		Set("expires_at", utcPtr(s.ExpiresAt)).
		Set("updated_at", s.UpdatedAt.UTC()).
		Where(squirrel.Eq{"id": s.ID}))
	if err != nil {
		log.Err(err).
			Str("func", "shareRepository.Replace").
			Str("share_id", s.ID).
			Msg("failed to replace share")
		return err
	}

	return affectedOrNotFound(res)
}

func (r *shareRepository) GetByID(ctx context.Context, shareID string) (models.Share, error) {
	return r.getOne(ctx, "shareRepository.GetByID", r.db.builder.
		Select(shareColumns...).
		From(models.Share{}.TableName()).
		Where(squirrel.Eq{"id": shareID}))
}

func (r *shareRepository) FindLatest(ctx context.Context, secretID string, targetUserID int64) (models.Share, error) {
	return r.getOne(ctx, "shareRepository.FindLatest", r.db.builder.
		Select(shareColumns...).
		From(models.Share{}.TableName()).
		Where(squirrel.Eq{"secret_id": secretID, "target_user_id": targetUserID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1))
}

func (r *shareRepository) FindUnrevoked(ctx context.Context, secretID string, targetUserID int64) (models.Share, error) {
	return r.getOne(ctx, "shareRepository.FindUnrevoked", r.db.builder.
		Select(shareColumns...).
		From(models.Share{}.TableName()).
		Where(squirrel.Eq{"secret_id": secretID, "target_user_id": targetUserID, "revoked_at": nil}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1))
}

func (r *shareRepository) ListBySecret(ctx context.Context, secretID string) ([]models.Share, error) {
	return r.list(ctx, "shareRepository.ListBySecret", r.db.builder.
		Select(shareColumns...).
		From(models.Share{}.TableName()).
		Where(squirrel.Eq{"secret_id": secretID}).
		OrderBy("created_at ASC", "id ASC"))
}

func (r *shareRepository) ListUnrevokedByTarget(ctx context.Context, targetUserID int64) ([]models.Share, error) {
	return r.list(ctx, "shareRepository.ListUnrevokedByTarget", r.db.builder.
		Select(shareColumns...).
		From(models.Share{}.TableName()).
		Where(squirrel.Eq{"target_user_id": targetUserID, "revoked_at": nil}).
		OrderBy("created_at DESC", "id DESC"))
}

func (r *shareRepository) ListUnrevokedExpiring(ctx context.Context) ([]models.Share, error) {
	return r.list(ctx, "shareRepository.ListUnrevokedExpiring", r.db.builder.
		Select(shareColumns...).
		From(models.Share{}.TableName()).
		Where(squirrel.Eq{"revoked_at": nil}).
		Where(squirrel.NotEq{"expires_at": nil}).
		OrderBy("expires_at ASC"))
}

func (r *shareRepository) UpdateWrappedValue(ctx context.Context, shareID string, wrapped models.WrappedValue, updatedAt time.Time) error {
	log := logger.FromContext(ctx)

	res, err := r.db.exec(ctx, r.db.builder.
		Update(models.Share{}.TableName()).
		Set("wrapped_value", nullBytes(wrapped)).
		Set("updated_at", updatedAt.UTC()).
		Where(squirrel.Eq{"id": shareID, "revoked_at": nil}))
	if err != nil {
		log.Err(err).
			Str("func", "shareRepository.UpdateWrappedValue").
			Str("share_id", shareID).
			Msg("failed to update wrapped value")
		return err
	}

	return affectedOrNotFound(res)
}

func (r *shareRepository) Revoke(ctx context.Context, shareID string, at time.Time) (bool, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.exec(ctx, r.revoke(at).Where(squirrel.Eq{"id": shareID, "revoked_at": nil}))
	if err != nil {
		log.Err(err).
			Str("func", "shareRepository.Revoke").
			Str("share_id", shareID).
			Msg("failed to revoke share")
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n > 0, nil
}

func (r *shareRepository) RevokeBySecret(ctx context.Context, secretID string, at time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.exec(ctx, r.revoke(at).Where(squirrel.Eq{"secret_id": secretID, "revoked_at": nil}))
	if err != nil {
		log.Err(err).
			Str("func", "shareRepository.RevokeBySecret").
			Str("secret_id", secretID).
			Msg("failed to revoke shares of secret")
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}

func (r *shareRepository) revoke(at time.Time) squirrel.UpdateBuilder {
	return r.db.builder.
		Update(models.Share{}.TableName()).
		Set("revoked_at", at.UTC()).
		Set("wrapped_value", nil).
		Set("updated_at", at.UTC())
}

func (r *shareRepository) getOne(ctx context.Context, fn string, query squirrel.SelectBuilder) (models.Share, error) {
	log := logger.FromContext(ctx)

	row, err := r.db.queryRow(ctx, query)
	if err != nil {
		return models.Share{}, err
	}

	share, err := scanShare(row)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", fn).Msg("failed to scan share row")
		}
		return models.Share{}, err
	}

	return share, nil
}

func (r *shareRepository) list(ctx context.Context, fn string, query squirrel.SelectBuilder) ([]models.Share, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.query(ctx, query)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute query for shares")
		return nil, err
	}
	defer rows.Close()

	shares := make([]models.Share, 0, 8)
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			log.Err(err).Str("func", fn).Msg("failed to scan share row")
			return nil, err
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return shares, nil
}

func scanShare(row rowScanner) (models.Share, error) {
	var (
		s                    models.Share
		permission           string
		wrapped              []byte
		expiresAt, revokedAt sql.NullTime
	)

	err := row.Scan(
		&s.ID, &s.SecretID, &s.OwnerUserID, &s.TargetUserID, &permission,
		&wrapped, &expiresAt, &revokedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return models.Share{}, scanErr(err)
	}

	s.Permission = models.Permission(permission)
	if wrapped != nil {
		s.WrappedValue = wrapped
	}
	if expiresAt.Valid {
		t := expiresAt.Time.UTC()
		s.ExpiresAt = &t
	}
	if revokedAt.Valid {
		t := revokedAt.Time.UTC()
		s.RevokedAt = &t
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
