package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/internal/validators"
	"github.com/MKhiriev/go-vault-keeper/models"
)

const (
	fieldValue    = "value"
	fieldMetadata = "metadata"
)

// secretService encrypts every value and metadata blob under the session's
// data key, with AAD binding the ciphertext to its secret id and field.
type secretService struct {
	txManager        *store.TxManager
	secretRepository store.SecretRepository
	folderRepository store.FolderRepository
	shareRepository  store.ShareRepository
	vaultRepository  store.VaultRepository
	accessLog        AccessLogService
	keyChain         crypto.KeyChainService
	ids              *utils.UUIDGenerator
	sharePolicy      string
	now              func() time.Time

	logger *logger.Logger
}

// NewSecretService constructs a [SecretService]. An empty share policy
// falls back to refresh.
func NewSecretService(storages *store.Storages, accessLog AccessLogService, keyChain crypto.KeyChainService, cfg config.Secrets, logger *logger.Logger) SecretService {
	policy := cfg.SharePolicyOnUpdate
	if policy == "" {
		policy = config.SharePolicyRefresh
	}

	return &secretService{
		txManager:        storages.TxManager,
		secretRepository: storages.SecretRepository,
		folderRepository: storages.FolderRepository,
		shareRepository:  storages.ShareRepository,
		vaultRepository:  storages.VaultRepository,
		accessLog:        accessLog,
		keyChain:         keyChain,
		ids:              utils.NewUUIDGenerator(),
		sharePolicy:      policy,
		now:              time.Now,
		logger:           logger,
	}
}

// Create seals the value and metadata of req under the session's data key
// and stores the secret with its create entry in one transaction.
//
// Returns:
//   - ErrInvalidParent when req.FolderID is not a folder of the vault;
//   - ErrAuditWriteFailed when the entry cannot be written (nothing is
//     stored).
func (s *secretService) Create(ctx context.Context, session *Session, req models.CreateSecretRequest) (models.SecretInfo, error) {
	log := logger.FromContext(ctx)

	if err := session.check(); err != nil {
		return models.SecretInfo{}, err
	}

	now := s.now().UTC()
	secret := models.Secret{
		ID:          s.ids.Generate(),
		VaultID:     session.VaultID(),
		FolderID:    req.FolderID,
		Name:        strings.TrimSpace(req.Name),
		Type:        req.Type,
		Description: req.Description,
		Tags:        normalizeTags(req.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := session.withDEK(func(dek []byte) error {
		var err error
		secret.Value, err = s.keyChain.Seal(dek, req.Value, secretAAD(secret.ID, fieldValue))
		if err != nil {
			return err
		}
		if req.Metadata != nil && !req.Metadata.IsEmpty() {
			secret.Metadata, err = s.sealMetadata(dek, secret.ID, *req.Metadata)
		}
		return err
	})
	if err != nil {
		return models.SecretInfo{}, err
	}

	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.checkFolder(ctx, session.VaultID(), req.FolderID); err != nil {
			return err
		}
		if err := s.secretRepository.Create(ctx, secret); err != nil {
			return mapStoreError(err)
		}
		return s.accessLog.Record(ctx, secretEntry(session, secret.VaultID, secret.ID, models.ActionCreate))
	})
	if err != nil {
		log.Err(err).
			Str("func", "secretService.Create").
			Str("vault_id", secret.VaultID).
			Msg("secret creation failed")
		return models.SecretInfo{}, err
	}

	return secret.Info(), nil
}

// Read decrypts a secret. Secrets of other vaults are reachable only
// through the latest share to the session user; a missing secret and a
// secret without a share are both ErrAccessDenied.
func (s *secretService) Read(ctx context.Context, session *Session, secretID string) (models.DecryptedSecret, error) {
	if err := session.check(); err != nil {
		return models.DecryptedSecret{}, err
	}

	secret, err := s.secretRepository.GetByID(ctx, secretID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.DecryptedSecret{}, ErrAccessDenied
		}
		return models.DecryptedSecret{}, mapStoreError(err)
	}

	if secret.VaultID == session.VaultID() {
		return s.readOwned(ctx, session, secret)
	}
	return s.readShared(ctx, session, secret)
}

func (s *secretService) readOwned(ctx context.Context, session *Session, secret models.Secret) (models.DecryptedSecret, error) {
	result := models.DecryptedSecret{SecretInfo: secret.Info()}

	err := session.withDEK(func(dek []byte) error {
		value, err := s.keyChain.Open(dek, secret.Value, secretAAD(secret.ID, fieldValue))
		if err != nil {
			return mapCryptoError(err)
		}
		result.Value = value

		if secret.Metadata != nil {
			metadata, err := s.openMetadata(dek, secret.ID, secret.Metadata)
			if err != nil {
				memguard.WipeBytes(result.Value)
				return err
			}
			result.Metadata = metadata
		}
		return nil
	})

	entry := secretEntry(session, secret.VaultID, secret.ID, models.ActionRead)
	if err != nil {
		entry.Success = false
		s.recordFailure(ctx, entry)
		return models.DecryptedSecret{}, err
	}

	if err := s.accessLog.RecordRead(ctx, entry); err != nil {
		memguard.WipeBytes(result.Value)
		return models.DecryptedSecret{}, err
	}

	return result, nil
}

func (s *secretService) readShared(ctx context.Context, session *Session, secret models.Secret) (models.DecryptedSecret, error) {
	entry := secretEntry(session, secret.VaultID, secret.ID, models.ActionRead)

	share, err := s.shareRepository.FindLatest(ctx, secret.ID, session.UserID())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			entry.Success = false
			s.recordFailure(ctx, entry)
			return models.DecryptedSecret{}, ErrAccessDenied
		}
		return models.DecryptedSecret{}, mapStoreError(err)
	}

	shareID := share.ID
	entry.Details = map[string]any{"share_id": shareID}

	if err := shareAccessError(share, s.now()); err != nil {
		entry.Success = false
		entry.Details["reason"] = err.Error()
		s.recordFailure(ctx, entry)
		return models.DecryptedSecret{}, err
	}

	result := models.DecryptedSecret{SecretInfo: secret.Info(), ViaShareID: &shareID}
	err = session.withPrivateKey(func(publicKey, privateKey []byte) error {
		value, err := s.keyChain.OpenForRecipient(publicKey, privateKey, share.WrappedValue)
		if err != nil {
			return mapCryptoError(err)
		}
		result.Value = value
		return nil
	})
	if err != nil {
		entry.Success = false
		s.recordFailure(ctx, entry)
		return models.DecryptedSecret{}, err
	}

	if err := s.accessLog.RecordRead(ctx, entry); err != nil {
		memguard.WipeBytes(result.Value)
		return models.DecryptedSecret{}, err
	}

	return result, nil
}

// Update re-encrypts only the supplied fields. Share recipients cannot
// update, whatever their permission.
func (s *secretService) Update(ctx context.Context, session *Session, secretID string, req models.UpdateSecretRequest) (models.SecretInfo, error) {
	log := logger.FromContext(ctx)

	if err := session.check(); err != nil {
		return models.SecretInfo{}, err
	}

	update := models.SecretUpdate{
		ID:          secretID,
		VaultID:     session.VaultID(),
		Type:        req.Type,
		Description: req.Description,
		FolderID:    req.FolderID,
		MoveFolder:  req.MoveFolder,
	}
	changed := make([]string, 0, 6)
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		update.Name = &name
		changed = append(changed, "name")
	}
	if req.Type != nil {
		changed = append(changed, "type")
	}
	if req.Description != nil {
		changed = append(changed, "description")
	}
	if req.Tags != nil {
		tags := normalizeTags(*req.Tags)
		update.Tags = &tags
		changed = append(changed, "tags")
	}
	if req.MoveFolder {
		changed = append(changed, "folder")
	}

	err := session.withDEK(func(dek []byte) error {
		var err error
		if req.Value != nil {
			update.Value, err = s.keyChain.Seal(dek, req.Value, secretAAD(secretID, fieldValue))
			if err != nil {
				return err
			}
			changed = append(changed, fieldValue)
		}
		if req.Metadata != nil {
			if req.Metadata.IsEmpty() {
				update.ClearMetadata = true
			} else if update.Metadata, err = s.sealMetadata(dek, secretID, *req.Metadata); err != nil {
				return err
			}
			changed = append(changed, fieldMetadata)
		}
		return nil
	})
	if err != nil {
		return models.SecretInfo{}, err
	}

	// the plaintext is re-sealed for share recipients inside the
	// transaction; keep it in a guarded buffer until the transaction ends
	var updated models.Secret
	run := func(value []byte) error {
		return s.txManager.RunInTx(ctx, func(ctx context.Context) error {
			if req.Value != nil {
				// orders the share refresh below against concurrent grants
				if err := mapStoreError(s.vaultRepository.LockForUpdate(ctx, session.VaultID())); err != nil {
					return err
				}
			}

			secret, err := s.ownedSecret(ctx, session, secretID)
			if err != nil {
				return err
			}
			if err := s.checkValueRequired(session, secret, req); err != nil {
				return err
			}
			if req.MoveFolder {
				if err := s.checkFolder(ctx, secret.VaultID, req.FolderID); err != nil {
					return err
				}
			}

			if err := s.secretRepository.Update(ctx, update, s.now().UTC()); err != nil {
				return mapStoreError(err)
			}

			if req.Value != nil && secret.IsShared {
				if err := s.applySharePolicy(ctx, secretID, value); err != nil {
					return err
				}
			}

			entry := secretEntry(session, secret.VaultID, secretID, models.ActionUpdate)
			entry.Details = map[string]any{"fields": changed}
			if err := s.accessLog.Record(ctx, entry); err != nil {
				return err
			}

			updated, err = s.secretRepository.GetByID(ctx, secretID)
			return mapStoreError(err)
		})
	}
	if req.Value != nil {
		err = crypto.WithTransient(bytes.Clone(req.Value), run)
	} else {
		err = run(nil)
	}
	if err != nil {
		log.Err(err).
			Str("func", "secretService.Update").
			Str("secret_id", secretID).
			Msg("secret update failed")
		return models.SecretInfo{}, err
	}

	return updated.Info(), nil
}

// checkValueRequired applies the create-time rule to the record as it will
// be after the update: every type but note needs a non-empty value.
func (s *secretService) checkValueRequired(session *Session, secret models.Secret, req models.UpdateSecretRequest) error {
	secretType := secret.Type
	if req.Type != nil {
		secretType = *req.Type
	}
	if secretType == models.Note {
		return nil
	}

	switch {
	case req.Value != nil:
		if len(req.Value) == 0 {
			return mapValidationError(validators.ErrEmptyValue)
		}
		return nil
	case secret.Type != models.Note:
		// already held a non-empty value
		return nil
	}

	// a note turning into another type keeps its stored value
	var empty bool
	err := session.withDEK(func(dek []byte) error {
		plaintext, err := s.keyChain.Open(dek, secret.Value, secretAAD(secret.ID, fieldValue))
		if err != nil {
			return mapCryptoError(err)
		}
		empty = len(plaintext) == 0
		memguard.WipeBytes(plaintext)
		return nil
	})
	if err != nil {
		return err
	}
	if empty {
		return mapValidationError(validators.ErrEmptyValue)
	}
	return nil
}

// applySharePolicy keeps the shares of a secret consistent with its new
// value according to the configured policy.
func (s *secretService) applySharePolicy(ctx context.Context, secretID string, value []byte) error {
	switch s.sharePolicy {
	case config.SharePolicyKeep:
		return nil

	case config.SharePolicyInvalidate:
		if _, err := s.shareRepository.RevokeBySecret(ctx, secretID, s.now().UTC()); err != nil {
			return mapStoreError(err)
		}
		return mapStoreError(s.secretRepository.SetShared(ctx, secretID, false))

	default:
		shares, err := s.shareRepository.ListBySecret(ctx, secretID)
		if err != nil {
			return mapStoreError(err)
		}
		for _, share := range shares {
			if share.IsRevoked() {
				continue
			}
			recipient, err := s.vaultRepository.GetByOwner(ctx, share.TargetUserID)
			if err != nil {
				return mapStoreError(err)
			}
			wrapped, err := s.keyChain.SealForRecipient(recipient.SharePublicKey, value)
			if err != nil {
				return err
			}
			if err := s.shareRepository.UpdateWrappedValue(ctx, share.ID, wrapped, s.now().UTC()); err != nil {
				return mapStoreError(err)
			}
		}
		return nil
	}
}

// Delete removes the secret and revokes its shares.
func (s *secretService) Delete(ctx context.Context, session *Session, secretID string) error {
	if err := session.check(); err != nil {
		return err
	}

	return s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		secret, err := s.ownedSecret(ctx, session, secretID)
		if err != nil {
			return err
		}
		return deleteSecret(ctx, s.secretRepository, s.shareRepository, s.accessLog, session, secret, s.now().UTC())
	})
}

// List returns metadata of the session vault's secrets matching filter.
// Nothing is decrypted and no read entry is written. An empty result is not
// an error.
func (s *secretService) List(ctx context.Context, session *Session, filter models.SecretFilter) ([]models.SecretInfo, error) {
	if err := session.check(); err != nil {
		return nil, err
	}

	secrets, err := s.secretRepository.List(ctx, session.VaultID(), filter)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return infos(secrets), nil
}

// SharedWithMe lists secrets of other vaults with an active share to the
// session user.
func (s *secretService) SharedWithMe(ctx context.Context, session *Session) ([]models.SecretInfo, error) {
	if err := session.check(); err != nil {
		return nil, err
	}

	shares, err := s.shareRepository.ListUnrevokedByTarget(ctx, session.UserID())
	if err != nil {
		return nil, mapStoreError(err)
	}

	now := s.now()
	ids := make([]string, 0, len(shares))
	seen := make(map[string]struct{}, len(shares))
	for _, share := range shares {
		if !share.IsActive(now) {
			continue
		}
		if _, ok := seen[share.SecretID]; ok {
			continue
		}
		seen[share.SecretID] = struct{}{}
		ids = append(ids, share.SecretID)
	}

	secrets, err := s.secretRepository.GetByIDs(ctx, ids)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return infos(secrets), nil
}

// ownedSecret loads a secret of the session's vault. Secrets of other vaults
// and missing secrets are both ErrAccessDenied.
func (s *secretService) ownedSecret(ctx context.Context, session *Session, secretID string) (models.Secret, error) {
	return loadOwnedSecret(ctx, s.secretRepository, session, secretID)
}

// loadOwnedSecret is shared by the secret and share services.
func loadOwnedSecret(ctx context.Context, secrets store.SecretRepository, session *Session, secretID string) (models.Secret, error) {
	secret, err := secrets.GetByID(ctx, secretID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Secret{}, ErrAccessDenied
		}
		return models.Secret{}, mapStoreError(err)
	}
	if secret.VaultID != session.VaultID() {
		return models.Secret{}, ErrAccessDenied
	}
	return secret, nil
}

// checkFolder verifies that folderID, when set, belongs to vaultID.
func (s *secretService) checkFolder(ctx context.Context, vaultID string, folderID *string) error {
	if folderID == nil {
		return nil
	}
	folder, err := s.folderRepository.GetByID(ctx, *folderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidParent
		}
		return mapStoreError(err)
	}
	if folder.VaultID != vaultID {
		return ErrInvalidParent
	}
	return nil
}

func (s *secretService) sealMetadata(dek []byte, secretID string, metadata models.SecretMetadata) ([]byte, error) {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	defer memguard.WipeBytes(raw)
	return s.keyChain.Seal(dek, raw, secretAAD(secretID, fieldMetadata))
}

func (s *secretService) openMetadata(dek []byte, secretID string, sealed []byte) (*models.SecretMetadata, error) {
	raw, err := s.keyChain.Open(dek, sealed, secretAAD(secretID, fieldMetadata))
	if err != nil {
		return nil, mapCryptoError(err)
	}
	defer memguard.WipeBytes(raw)

	var metadata models.SecretMetadata
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil, ErrDecryptionFailed
	}
	return &metadata, nil
}

// recordFailure writes a success=false entry. Failures to do so are logged
// only; the original error is what the caller sees.
func (s *secretService) recordFailure(ctx context.Context, entry models.AccessLogEntry) {
	if err := s.accessLog.Record(ctx, entry); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "secretService.recordFailure").
			Str("action", string(entry.Action)).
			Msg("failed attempt was not audited")
	}
}

// deleteSecret removes secret, revokes its shares and records the deletion.
// It must run inside a transaction.
func deleteSecret(ctx context.Context, secrets store.SecretRepository, shares store.ShareRepository, accessLog AccessLogService, session *Session, secret models.Secret, now time.Time) error {
	if err := secrets.Delete(ctx, secret.VaultID, secret.ID); err != nil {
		return mapStoreError(err)
	}
	revoked, err := shares.RevokeBySecret(ctx, secret.ID, now)
	if err != nil {
		return mapStoreError(err)
	}

	entry := secretEntry(session, secret.VaultID, secret.ID, models.ActionDelete)
	if revoked > 0 {
		entry.Details = map[string]any{"revoked_shares": revoked}
	}
	return accessLog.Record(ctx, entry)
}

// shareAccessError reports why share no longer grants access at now. A
// share revoked by the expiry sweep still reports ErrShareExpired.
func shareAccessError(share models.Share, now time.Time) error {
	expired := share.IsExpired(now)
	switch {
	case expired && (!share.IsRevoked() || !share.RevokedAt.Before(*share.ExpiresAt)):
		return ErrShareExpired
	case share.IsRevoked():
		return ErrShareRevoked
	case share.WrappedValue == nil:
		return ErrAccessDenied
	}
	return nil
}

func secretEntry(session *Session, vaultID, secretID string, action models.AccessAction) models.AccessLogEntry {
	entry := entryFor(session.Actor(), vaultID, models.ResourceSecret, action)
	entry.SecretID = &secretID
	return entry
}

func secretAAD(secretID, field string) []byte {
	return []byte(secretID + ":" + field)
}

// normalizeTags trims, deduplicates and sorts tags.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func infos(secrets []models.Secret) []models.SecretInfo {
	out := make([]models.SecretInfo, 0, len(secrets))
	for _, secret := range secrets {
		out = append(out, secret.Info())
	}
	return out
}
