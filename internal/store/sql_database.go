package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/migrations"
)

// Dialect names the SQL flavour behind a [DB].
type Dialect string

const (
	DialectPostgres Dialect = migrations.DialectPostgres
	DialectSQLite   Dialect = migrations.DialectSQLite
)

// DB wraps a *sql.DB with the dialect-specific pieces repositories need:
// a squirrel builder with the right placeholder format and an error
// classifier for the driver's error values.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            squirrel.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	db := &DB{
		DB:      conn,
		dialect: dialect,
		logger:  log,
	}

	switch dialect {
	case DialectSQLite:
		db.builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	default:
		db.builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db
}

// Dialect returns the SQL flavour of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies all pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, string(db.dialect))
}

// querier returns the transaction carried by ctx, or the pool.
func (db *DB) querier(ctx context.Context) Querier {
	return querierFromCtx(ctx, db.DB)
}

// exec builds b and executes it on the querier carried by ctx. Unique
// violations are reported as ErrAlreadyExists.
func (db *DB) exec(ctx context.Context, b squirrel.Sqlizer) (sql.Result, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := db.querier(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		if db.errorClassificator.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %w", ErrAlreadyExists, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return res, nil
}

// query builds b and runs it on the querier carried by ctx.
func (db *DB) query(ctx context.Context, b squirrel.Sqlizer) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := db.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return rows, nil
}

// queryRow builds b and runs it expecting at most one row.
func (db *DB) queryRow(ctx context.Context, b squirrel.Sqlizer) (*sql.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return db.querier(ctx).QueryRowContext(ctx, query, args...), nil
}

// scanErr maps sql.ErrNoRows to ErrNotFound and wraps everything else.
func scanErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %w", ErrScanningRow, err)
}

// affectedOrNotFound turns a zero-row update into ErrNotFound.
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
