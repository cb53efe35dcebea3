package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

func newTestVaultRepo(t *testing.T) (*vaultRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, DialectPostgres)
	return &vaultRepository{db: db, logger: logger.Nop()}, mock
}

func testVault() models.Vault {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return models.Vault{
		ID:             "0190a8c2-0000-7000-8000-000000000001",
		OwnerUserID:    42,
		Name:           "personal",
		Salt:           []byte("0123456789abcdef"),
		KDF:            models.KDFParams{Time: 1, Memory: 65536, Threads: 4},
		CheckValue:     []byte{0x01, 0x02},
		WrappedKeys:    []byte{0x01, 0x03},
		SharePublicKey: []byte{0x04},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

var vaultRows = []string{
	"id", "owner_user_id", "name", "salt", "kdf_time", "kdf_memory", "kdf_threads",
	"check_value", "wrapped_keys", "share_public_key", "created_at", "updated_at",
}

func TestVaultCreate_Success(t *testing.T) {
	repo, mock := newTestVaultRepo(t)
	v := testVault()

	mock.ExpectExec("INSERT INTO vaults").
		WithArgs(v.ID, v.OwnerUserID, v.Name, v.Salt, int64(1), int64(65536), int64(4),
			v.CheckValue, v.WrappedKeys, v.SharePublicKey, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVaultCreate_SecondVaultForOwner(t *testing.T) {
	repo, mock := newTestVaultRepo(t)

	mock.ExpectExec("INSERT INTO vaults").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.Create(context.Background(), testVault())
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestVaultGetByOwner_Success(t *testing.T) {
	repo, mock := newTestVaultRepo(t)
	v := testVault()

	rows := sqlmock.NewRows(vaultRows).
		AddRow(v.ID, v.OwnerUserID, v.Name, v.Salt, int64(1), int64(65536), int64(4),
			v.CheckValue, v.WrappedKeys, v.SharePublicKey, v.CreatedAt, v.UpdatedAt)

	mock.ExpectQuery(`SELECT (.+) FROM vaults WHERE owner_user_id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	got, err := repo.GetByOwner(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != v.ID || got.KDF != v.KDF {
		t.Errorf("unexpected vault: %+v", got)
	}
	if string(got.Salt) != string(v.Salt) {
		t.Errorf("salt mismatch")
	}
}

func TestVaultGetByID_NotFound(t *testing.T) {
	repo, mock := newTestVaultRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM vaults").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(vaultRows))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVaultGetByID_ScanError(t *testing.T) {
	repo, mock := newTestVaultRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM vaults").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("v")) // wrong shape

	_, err := repo.GetByID(context.Background(), "v")
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestVaultExistsForUser(t *testing.T) {
	repo, mock := newTestVaultRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(1\) FROM vaults`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT COUNT\(1\) FROM vaults`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ok, err := repo.ExistsForUser(context.Background(), 7)
	if err != nil || !ok {
		t.Fatalf("expected true, got %v (%v)", ok, err)
	}
	ok, err = repo.ExistsForUser(context.Background(), 8)
	if err != nil || ok {
		t.Fatalf("expected false, got %v (%v)", ok, err)
	}
}

func TestVaultUpdateKeys(t *testing.T) {
	repo, mock := newTestVaultRepo(t)
	v := testVault()

	mock.ExpectExec("UPDATE vaults SET salt").
		WithArgs(v.Salt, int64(1), int64(65536), int64(4), v.CheckValue, v.WrappedKeys, sqlmock.AnyArg(), v.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE vaults SET salt").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.UpdateKeys(context.Background(), v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.UpdateKeys(context.Background(), v); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVaultLockForUpdate_Postgres(t *testing.T) {
	repo, mock := newTestVaultRepo(t)

	mock.ExpectQuery(`SELECT id FROM vaults WHERE id = \$1 FOR UPDATE`).
		WithArgs("v1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("v1"))
	mock.ExpectQuery(`SELECT id FROM vaults WHERE id = \$1 FOR UPDATE`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if err := repo.LockForUpdate(context.Background(), "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.LockForUpdate(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVaultLockForUpdate_SQLite(t *testing.T) {
	db, mock := newTestDB(t, DialectSQLite)
	repo := &vaultRepository{db: db, logger: logger.Nop()}

	mock.ExpectExec(`UPDATE vaults SET updated_at = updated_at WHERE id = \?`).
		WithArgs("v1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE vaults SET updated_at = updated_at WHERE id = \?`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.LockForUpdate(context.Background(), "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.LockForUpdate(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
