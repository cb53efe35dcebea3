package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

var accessLogRows = []string{
	"id", "actor_user_id", "vault_id", "secret_id", "resource_type", "action",
	"success", "ip", "user_agent", "details", "created_at",
}

func newTestAccessLogRepo(t *testing.T) (*accessLogRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, DialectSQLite)
	return &accessLogRepository{db: db, logger: logger.Nop()}, mock
}

func TestAccessLogAppend(t *testing.T) {
	repo, mock := newTestAccessLogRepo(t)
	secretID := "s1"
	ip := "10.0.0.1"

	mock.ExpectExec("INSERT INTO access_log").
		WithArgs("a1", int64(5), "v1", "s1", "secret", "read", true, "10.0.0.1", nil,
			`{"via_share":"sh1"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), models.AccessLogEntry{
		ID:           "a1",
		ActorUserID:  5,
		VaultID:      "v1",
		SecretID:     &secretID,
		ResourceType: models.ResourceSecret,
		Action:       models.ActionRead,
		Success:      true,
		IP:           &ip,
		Details:      map[string]any{"via_share": "sh1"},
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessLogAppend_NoDetails(t *testing.T) {
	repo, mock := newTestAccessLogRepo(t)

	mock.ExpectExec("INSERT INTO access_log").
		WithArgs("a1", int64(5), "v1", nil, "vault", "vault_unlock", false, nil, nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), models.AccessLogEntry{
		ID:           "a1",
		ActorUserID:  5,
		VaultID:      "v1",
		ResourceType: models.ResourceVault,
		Action:       models.ActionVaultUnlock,
		CreatedAt:    time.Now(),
	})
	require.NoError(t, err)
}

func TestAccessLogQuery_Filters(t *testing.T) {
	repo, mock := newTestAccessLogRepo(t)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	created := from.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM access_log WHERE vault_id = ? AND created_at >= ? AND created_at <= ? AND action IN (?,?) ORDER BY created_at DESC, id DESC LIMIT 50")).
		WithArgs("v1", from, to, "read", "update").
		WillReturnRows(sqlmock.NewRows(accessLogRows).
			AddRow("a2", int64(5), "v1", "s1", "secret", "update", true, nil, "cli/1.0", []byte(`{"fields":["name"]}`), created).
			AddRow("a1", int64(5), "v1", "s1", "secret", "read", true, nil, nil, nil, created))

	got, err := repo.Query(context.Background(), "v1", models.AccessLogFilter{
		From:    &from,
		To:      &to,
		Actions: []models.AccessAction{models.ActionRead, models.ActionUpdate},
		Limit:   50,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.ActionUpdate, got[0].Action)
	require.NotNil(t, got[0].UserAgent)
	assert.Equal(t, "cli/1.0", *got[0].UserAgent)
	assert.Equal(t, []any{"name"}, got[0].Details["fields"])
	assert.Nil(t, got[1].Details)
	require.NoError(t, mock.ExpectationsWereMet())
}
