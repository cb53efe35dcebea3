package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/models"
)

const (
	defaultAccessLogLimit = 50
	maxAccessLogLimit     = 500
)

// accessLogService writes entries through the transaction carried by ctx,
// so an entry commits or rolls back together with the operation it
// describes.
type accessLogService struct {
	accessLogRepository store.AccessLogRepository
	ids                 *utils.UUIDGenerator
	readPolicy          string
	now                 func() time.Time

	logger *logger.Logger
}

// NewAccessLogService constructs an [AccessLogService]. An empty read
// policy falls back to fail_closed.
func NewAccessLogService(accessLogRepository store.AccessLogRepository, cfg config.AccessLog, logger *logger.Logger) AccessLogService {
	policy := cfg.ReadPolicy
	if policy == "" {
		policy = config.ReadPolicyFailClosed
	}

	return &accessLogService{
		accessLogRepository: accessLogRepository,
		ids:                 utils.NewUUIDGenerator(),
		readPolicy:          policy,
		now:                 time.Now,
		logger:              logger,
	}
}

// Record appends entry through the transaction carried by ctx, if any,
// filling in its id and timestamp when unset. Failures are wrapped in
// ErrAuditWriteFailed so the surrounding transaction rolls back.
func (a *accessLogService) Record(ctx context.Context, entry models.AccessLogEntry) error {
	log := logger.FromContext(ctx)

	if entry.ID == "" {
		entry.ID = a.ids.Generate()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = a.now().UTC()
	}

	if err := a.accessLogRepository.Append(ctx, entry); err != nil {
		log.Err(err).
			Str("func", "accessLogService.Record").
			Str("vault_id", entry.VaultID).
			Str("action", string(entry.Action)).
			Msg("failed to append access log entry")
		return fmt.Errorf("%w: %w", ErrAuditWriteFailed, err)
	}

	return nil
}

// RecordRead records a read. Under the fail_open policy a write failure is
// logged and swallowed.
func (a *accessLogService) RecordRead(ctx context.Context, entry models.AccessLogEntry) error {
	err := a.Record(ctx, entry)
	if err != nil && a.readPolicy == config.ReadPolicyFailOpen {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("func", "accessLogService.RecordRead").
			Str("vault_id", entry.VaultID).
			Msg("read not audited, continuing under fail_open policy")
		return nil
	}
	return err
}

// Query returns the session vault's entries newest first.
func (a *accessLogService) Query(ctx context.Context, session *Session, filter models.AccessLogFilter) ([]models.AccessLogEntry, error) {
	if err := session.check(); err != nil {
		return nil, err
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: from is after to", ErrInvalidDataProvided)
	}

	switch {
	case filter.Limit == 0:
		filter.Limit = defaultAccessLogLimit
	case filter.Limit > maxAccessLogLimit:
		filter.Limit = maxAccessLogLimit
	}

	entries, err := a.accessLogRepository.Query(ctx, session.VaultID(), filter)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return entries, nil
}

// entryFor starts an access log entry on behalf of actor.
func entryFor(actor models.Actor, vaultID string, resource models.ResourceType, action models.AccessAction) models.AccessLogEntry {
	entry := models.AccessLogEntry{
		ActorUserID:  actor.UserID,
		VaultID:      vaultID,
		ResourceType: resource,
		Action:       action,
		Success:      true,
	}
	if actor.IP != "" {
		ip := actor.IP
		entry.IP = &ip
	}
	if actor.UserAgent != "" {
		ua := actor.UserAgent
		entry.UserAgent = &ua
	}
	return entry
}
