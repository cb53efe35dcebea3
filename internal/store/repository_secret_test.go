package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

var secretRows = []string{
	"id", "vault_id", "folder_id", "name", "secret_type", "description",
	"encrypted_value", "encrypted_metadata", "tags", "is_shared", "created_at", "updated_at",
}

func newTestSecretRepo(t *testing.T) (*secretRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, DialectSQLite)
	return &secretRepository{db: db, logger: logger.Nop()}, mock
}

func TestSecretCreate(t *testing.T) {
	repo, mock := newTestSecretRepo(t)
	now := time.Now().UTC()

	s := models.Secret{
		ID:        "s1",
		VaultID:   "v1",
		Name:      "DB Password",
		Type:      models.Password,
		Value:     models.CipheredValue{0x01, 0xAA},
		Tags:      []string{"prod", "db"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO secrets").
		WithArgs("s1", "v1", nil, "DB Password", "password", nil,
			[]byte{0x01, 0xAA}, nil, `["prod","db"]`, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), s))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSecretGetByID(t *testing.T) {
	repo, mock := newTestSecretRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM secrets WHERE id = ?").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(secretRows).
			AddRow("s1", "v1", "f1", "api", "api_key", nil, []byte{1}, nil, `["a"]`, true, now, now))

	got, err := repo.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, got.FolderID)
	assert.Equal(t, "f1", *got.FolderID)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.Metadata)
	assert.Equal(t, models.APIKey, got.Type)
	assert.Equal(t, []string{"a"}, got.Tags)
	assert.True(t, got.IsShared)
}

func TestSecretGetByID_NotFound(t *testing.T) {
	repo, mock := newTestSecretRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM secrets").WillReturnRows(sqlmock.NewRows(secretRows))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSecretGetByID_BadTags(t *testing.T) {
	repo, mock := newTestSecretRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT (.+) FROM secrets").
		WillReturnRows(sqlmock.NewRows(secretRows).
			AddRow("s1", "v1", nil, "n", "note", nil, []byte{1}, nil, `not json`, false, now, now))

	_, err := repo.GetByID(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrMarshalling)
}

func TestSecretGetByIDs_EmptyDoesNotQuery(t *testing.T) {
	repo, mock := newTestSecretRepo(t)

	got, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSecretUpdate_OnlySetFields(t *testing.T) {
	repo, mock := newTestSecretRepo(t)
	name := "renamed"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE secrets SET updated_at = ?, name = ?, encrypted_metadata = ? WHERE id = ? AND vault_id = ?")).
		WithArgs(sqlmock.AnyArg(), "renamed", nil, "s1", "v1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), models.SecretUpdate{
		ID:            "s1",
		VaultID:       "v1",
		Name:          &name,
		ClearMetadata: true,
	}, time.Now())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSecretUpdate_MoveToRoot(t *testing.T) {
	repo, mock := newTestSecretRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE secrets SET updated_at = ?, folder_id = ? WHERE id = ? AND vault_id = ?")).
		WithArgs(sqlmock.AnyArg(), nil, "s1", "v1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), models.SecretUpdate{ID: "s1", VaultID: "v1", MoveFolder: true}, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSecretList_Filters(t *testing.T) {
	repo, mock := newTestSecretRepo(t)
	typ := models.Password

	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM secrets WHERE vault_id = ? AND folder_id IS NULL AND secret_type = ? AND tags LIKE ? ESCAPE '\' AND LOWER(name) LIKE ? ESCAPE '\' ORDER BY name ASC, id ASC LIMIT 10 OFFSET 5`)).
		WithArgs("v1", "password", `%"we\_b"%`, `%git%`).
		WillReturnRows(sqlmock.NewRows(secretRows))

	got, err := repo.List(context.Background(), "v1", models.SecretFilter{
		RootOnly:     true,
		Type:         &typ,
		Tag:          "we_b",
		NameContains: "GiT",
		Limit:        10,
		Offset:       5,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSecretList_QueryError(t *testing.T) {
	repo, mock := newTestSecretRepo(t)

	mock.ExpectQuery("FROM secrets").WillReturnError(errors.New("disk I/O error"))

	_, err := repo.List(context.Background(), "v1", models.SecretFilter{})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestSecretCountByFolder(t *testing.T) {
	repo, mock := newTestSecretRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT folder_id, COUNT(1) FROM secrets WHERE vault_id = ? AND folder_id IS NOT NULL GROUP BY folder_id")).
		WithArgs("v1").
		WillReturnRows(sqlmock.NewRows([]string{"folder_id", "count"}).AddRow("f1", 2).AddRow("f2", 1))

	got, err := repo.CountByFolder(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"f1": 2, "f2": 1}, got)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_off\\`, escapeLike(`100%_off\`))
}
