package service

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/internal/validators"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// maxShareUpsertAttempts bounds how often Share retries after losing an
// insert race on the active-share unique index.
const maxShareUpsertAttempts = 2

// shareService produces for every share an independent ciphertext sealed
// to the recipient's public key. The owner's plaintext lives only in a
// guarded buffer for the duration of the seal.
type shareService struct {
	txManager        *store.TxManager
	secretRepository store.SecretRepository
	shareRepository  store.ShareRepository
	vaultRepository  store.VaultRepository
	accessLog        AccessLogService
	keyChain         crypto.KeyChainService
	validator        validators.Validator
	ids              *utils.UUIDGenerator
	now              func() time.Time

	logger *logger.Logger
}

// NewShareService constructs a [ShareService] over the vault, secret and
// share repositories of storages.
func NewShareService(storages *store.Storages, accessLog AccessLogService, keyChain crypto.KeyChainService, logger *logger.Logger) ShareService {
	return &shareService{
		txManager:        storages.TxManager,
		secretRepository: storages.SecretRepository,
		shareRepository:  storages.ShareRepository,
		vaultRepository:  storages.VaultRepository,
		accessLog:        accessLog,
		keyChain:         keyChain,
		validator:        validators.NewSecretValidator(),
		ids:              utils.NewUUIDGenerator(),
		now:              time.Now,
		logger:           logger,
	}
}

// Share grants req.TargetUserID access to a secret of the session's vault.
// An existing non-revoked share for the same recipient is replaced in place.
func (s *shareService) Share(ctx context.Context, session *Session, req models.ShareRequest) (models.ShareInfo, error) {
	log := logger.FromContext(ctx)

	if err := session.check(); err != nil {
		return models.ShareInfo{}, err
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.ShareInfo{}, mapValidationError(err)
	}
	if req.TargetUserID == session.UserID() {
		return models.ShareInfo{}, ErrInvalidDataProvided
	}
	if req.Permission == "" {
		req.Permission = models.PermissionRead
	}

	if _, err := s.ownedSecret(ctx, session, req.SecretID); err != nil {
		return models.ShareInfo{}, err
	}

	recipient, err := s.vaultRepository.GetByOwner(ctx, req.TargetUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ShareInfo{}, ErrRecipientHasNoVault
		}
		return models.ShareInfo{}, mapStoreError(err)
	}

	var share models.Share
	for attempt := 1; ; attempt++ {
		share, err = s.upsert(ctx, session, req, recipient.SharePublicKey)
		// a concurrent writer inserted the active share first; the next
		// attempt finds it and replaces it in place
		if attempt < maxShareUpsertAttempts && errors.Is(err, store.ErrAlreadyExists) {
			continue
		}
		break
	}
	if err != nil {
		log.Err(err).
			Str("func", "shareService.Share").
			Str("secret_id", req.SecretID).
			Msg("share failed")
		return models.ShareInfo{}, err
	}

	return share.Info(), nil
}

// upsert wraps the current value of the secret for the recipient and writes
// the share with its log entry. The vault lock keeps one active share per
// (secret, recipient) and orders the wrap after any concurrent value update.
func (s *shareService) upsert(ctx context.Context, session *Session, req models.ShareRequest, publicKey []byte) (models.Share, error) {
	var share models.Share
	err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := mapStoreError(s.vaultRepository.LockForUpdate(ctx, session.VaultID())); err != nil {
			return err
		}

		secret, err := s.ownedSecret(ctx, session, req.SecretID)
		if err != nil {
			return err
		}

		wrapped, err := s.wrapFor(session, secret, publicKey)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		existing, err := s.shareRepository.FindUnrevoked(ctx, secret.ID, req.TargetUserID)
		switch {
		case err == nil:
			share = existing
			share.Permission = req.Permission
			share.WrappedValue = wrapped
			share.ExpiresAt = req.ExpiresAt
			share.UpdatedAt = now
			if err := s.shareRepository.Replace(ctx, share); err != nil {
				return mapStoreError(err)
			}
		case errors.Is(err, store.ErrNotFound):
			share = models.Share{
				ID:           s.ids.Generate(),
				SecretID:     secret.ID,
				OwnerUserID:  session.UserID(),
				TargetUserID: req.TargetUserID,
				Permission:   req.Permission,
				WrappedValue: wrapped,
				ExpiresAt:    req.ExpiresAt,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := s.shareRepository.Create(ctx, share); err != nil {
				return mapStoreError(err)
			}
		default:
			return mapStoreError(err)
		}

		if err := s.secretRepository.SetShared(ctx, secret.ID, true); err != nil {
			return mapStoreError(err)
		}

		entry := shareEntry(session, share, models.ActionShare)
		entry.Details = map[string]any{
			"share_id":       share.ID,
			"target_user_id": share.TargetUserID,
			"permission":     string(share.Permission),
		}
		return s.accessLog.Record(ctx, entry)
	})
	if err != nil {
		return models.Share{}, err
	}

	return share, nil
}

// ownedSecret loads secretID from the session's vault. Missing and foreign
// secrets are both ErrAccessDenied.
func (s *shareService) ownedSecret(ctx context.Context, session *Session, secretID string) (models.Secret, error) {
	return loadOwnedSecret(ctx, s.secretRepository, session, secretID)
}

// wrapFor decrypts the secret under the session's data key and seals the
// plaintext to publicKey.
func (s *shareService) wrapFor(session *Session, secret models.Secret, publicKey []byte) (models.WrappedValue, error) {
	var wrapped []byte
	err := session.withDEK(func(dek []byte) error {
		plaintext, err := s.keyChain.Open(dek, secret.Value, secretAAD(secret.ID, fieldValue))
		if err != nil {
			return mapCryptoError(err)
		}
		return crypto.WithTransient(plaintext, func(p []byte) error {
			wrapped, err = s.keyChain.SealForRecipient(publicKey, p)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return wrapped, nil
}

// Revoke revokes a share created by the session user. A second revoke is a
// no-op and is not recorded.
func (s *shareService) Revoke(ctx context.Context, session *Session, shareID string) error {
	if err := session.check(); err != nil {
		return err
	}

	share, err := s.shareRepository.GetByID(ctx, shareID)
	if err != nil {
		return mapStoreError(err)
	}
	if share.OwnerUserID != session.UserID() {
		return ErrAccessDenied
	}

	return s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		revoked, err := s.shareRepository.Revoke(ctx, share.ID, s.now().UTC())
		if err != nil {
			return mapStoreError(err)
		}
		if !revoked {
			return nil
		}
		if err := s.refreshShared(ctx, share.SecretID); err != nil {
			return err
		}

		entry := shareEntry(session, share, models.ActionRevoke)
		entry.Details = map[string]any{"share_id": share.ID, "target_user_id": share.TargetUserID}
		return s.accessLog.Record(ctx, entry)
	})
}

// ListShares returns every share of a secret owned by the session user,
// revoked ones included, oldest first. Wrapped values are never exposed.
// Missing or foreign secrets yield ErrAccessDenied.
func (s *shareService) ListShares(ctx context.Context, session *Session, secretID string) ([]models.ShareInfo, error) {
	if err := session.check(); err != nil {
		return nil, err
	}

	if _, err := s.ownedSecret(ctx, session, secretID); err != nil {
		return nil, err
	}

	shares, err := s.shareRepository.ListBySecret(ctx, secretID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	out := make([]models.ShareInfo, 0, len(shares))
	for _, share := range shares {
		out = append(out, share.Info())
	}
	return out, nil
}

// SweepExpired marks expired shares revoked. Access checks never depend on
// it having run.
func (s *shareService) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	log := logger.FromContext(ctx)

	shares, err := s.shareRepository.ListUnrevokedExpiring(ctx)
	if err != nil {
		return 0, mapStoreError(err)
	}

	swept := 0
	for _, share := range shares {
		if !share.IsExpired(now) {
			continue
		}
		var revoked bool
		err := s.txManager.RunInTx(ctx, func(ctx context.Context) error {
			var err error
			revoked, err = s.shareRepository.Revoke(ctx, share.ID, now.UTC())
			if err != nil || !revoked {
				return mapStoreError(err)
			}
			return s.refreshShared(ctx, share.SecretID)
		})
		if err != nil {
			log.Err(err).
				Str("func", "shareService.SweepExpired").
				Str("share_id", share.ID).
				Msg("failed to revoke expired share")
			return swept, err
		}
		if revoked {
			swept++
		}
	}

	if swept > 0 {
		log.Info().Int("swept", swept).Msg("expired shares revoked")
	}
	return swept, nil
}

// refreshShared recomputes is_shared of a secret from its unrevoked shares.
// A deleted secret is ignored.
func (s *shareService) refreshShared(ctx context.Context, secretID string) error {
	shares, err := s.shareRepository.ListBySecret(ctx, secretID)
	if err != nil {
		return mapStoreError(err)
	}

	shared := false
	for _, share := range shares {
		if !share.IsRevoked() {
			shared = true
			break
		}
	}

	if err := s.secretRepository.SetShared(ctx, secretID, shared); err != nil && !errors.Is(err, store.ErrNotFound) {
		return mapStoreError(err)
	}
	return nil
}

func shareEntry(session *Session, share models.Share, action models.AccessAction) models.AccessLogEntry {
	entry := entryFor(session.Actor(), session.VaultID(), models.ResourceShare, action)
	secretID := share.SecretID
	entry.SecretID = &secretID
	return entry
}
