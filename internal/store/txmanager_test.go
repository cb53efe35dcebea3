package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTx_Commit(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM secrets").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		_, ok := txFromCtx(ctx)
		assert.True(t, ok)
		_, err := db.exec(ctx, db.builder.Delete("secrets").Where("id = ?", "s"))
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	tm := NewTxManager(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
			panic("kaboom")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return tm.RunInTx(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_RetriesRetryable(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts == 1 {
			return pgError(pgerrcode.SerializationFailure)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_GivesUpAfterMaxAttempts(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	tm := NewTxManager(db)

	for i := 0; i < maxTxAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	attempts := 0
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		attempts++
		return pgError(pgerrcode.DeadlockDetected)
	})
	require.Error(t, err)
	assert.Equal(t, maxTxAttempts, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTx_BeginFails(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	tm := NewTxManager(db)

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestRunInTx_CommitFails(t *testing.T) {
	db, mock := newTestDB(t, DialectPostgres)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}
