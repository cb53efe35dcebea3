package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

var accessLogColumns = []string{
	"id", "actor_user_id", "vault_id", "secret_id", "resource_type", "action",
	"success", "ip", "user_agent", "details", "created_at",
}

// accessLogRepository is the append-only SQL implementation of
// [AccessLogRepository].
type accessLogRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAccessLogRepository constructs an [AccessLogRepository] backed by the
// provided database connection and logger.
func NewAccessLogRepository(db *DB, logger *logger.Logger) AccessLogRepository {
	logger.Debug().Msg("creating access log repository")
	return &accessLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accessLogRepository) Append(ctx context.Context, e models.AccessLogEntry) error {
	log := logger.FromContext(ctx)

	var details any
	if len(e.Details) > 0 {
		raw, err := json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMarshalling, err)
		}
		details = string(raw)
	}

	insert := r.db.builder.Insert(e.TableName()).
		Columns(accessLogColumns...).
		Values(
			e.ID, e.ActorUserID, e.VaultID, nullString(e.SecretID), string(e.ResourceType), string(e.Action),
			e.Success, nullString(e.IP), nullString(e.UserAgent), details, e.CreatedAt.UTC(),
		)

	if _, err := r.db.exec(ctx, insert); err != nil {
		log.Err(err).
			Str("func", "accessLogRepository.Append").
			Str("vault_id", e.VaultID).
			Str("action", string(e.Action)).
			Msg("failed to append access log entry")
		return err
	}

	return nil
}

// Query returns the entries of a vault, newest first.
func (r *accessLogRepository) Query(ctx context.Context, vaultID string, filter models.AccessLogFilter) ([]models.AccessLogEntry, error) {
	log := logger.FromContext(ctx)

	query := r.db.builder.
		Select(accessLogColumns...).
		From(models.AccessLogEntry{}.TableName()).
		Where(squirrel.Eq{"vault_id": vaultID})

	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"created_at": filter.From.UTC()})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"created_at": filter.To.UTC()})
	}
	if len(filter.Actions) > 0 {
		actions := make([]string, 0, len(filter.Actions))
		for _, a := range filter.Actions {
			actions = append(actions, string(a))
		}
		query = query.Where(squirrel.Eq{"action": actions})
	}

	query = query.OrderBy("created_at DESC", "id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	rows, err := r.db.query(ctx, query)
	if err != nil {
		log.Err(err).Str("func", "accessLogRepository.Query").Msg("failed to query access log")
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.AccessLogEntry, 0, 16)
	for rows.Next() {
		entry, err := scanAccessLogEntry(rows)
		if err != nil {
			log.Err(err).Str("func", "accessLogRepository.Query").Msg("failed to scan access log row")
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func scanAccessLogEntry(row rowScanner) (models.AccessLogEntry, error) {
	var (
		e                       models.AccessLogEntry
		secretID, ip, userAgent sql.NullString
		resourceType, action    string
		details                 []byte
	)

	err := row.Scan(
		&e.ID, &e.ActorUserID, &e.VaultID, &secretID, &resourceType, &action,
		&e.Success, &ip, &userAgent, &details, &e.CreatedAt,
	)
	if err != nil {
		return models.AccessLogEntry{}, scanErr(err)
	}

	if secretID.Valid {
		e.SecretID = &secretID.String
	}
	if ip.Valid {
		e.IP = &ip.String
	}
	if userAgent.Valid {
		e.UserAgent = &userAgent.String
	}
	e.ResourceType = models.ResourceType(resourceType)
	e.Action = models.AccessAction(action)
	if len(details) > 0 {
		if err := json.Unmarshal(details, &e.Details); err != nil {
			return models.AccessLogEntry{}, fmt.Errorf("%w: %w", ErrMarshalling, err)
		}
	}
	e.CreatedAt = e.CreatedAt.UTC()

	return e, nil
}
