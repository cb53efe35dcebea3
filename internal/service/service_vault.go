package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/store"
	"github.com/MKhiriev/go-vault-keeper/internal/utils"
	"github.com/MKhiriev/go-vault-keeper/internal/validators"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// checkConstant is sealed under the KEK at vault creation. Opening it proves
// the raw key without touching any secret.
var checkConstant = []byte("vault-check-v1")

const defaultVaultName = "Personal Vault"

// vaultService is the concrete implementation of VaultService.
type vaultService struct {
	txManager       *store.TxManager
	vaultRepository store.VaultRepository
	accessLog       AccessLogService
	keyChain        crypto.KeyChainService
	ids             *utils.UUIDGenerator
	now             func() time.Time

	logger *logger.Logger
}

// NewVaultService constructs a VaultService. New vaults are created with the
// KDF parameters of keyChain.
func NewVaultService(txManager *store.TxManager, vaultRepository store.VaultRepository, accessLog AccessLogService, keyChain crypto.KeyChainService, logger *logger.Logger) VaultService {
	return &vaultService{
		txManager:       txManager,
		vaultRepository: vaultRepository,
		accessLog:       accessLog,
		keyChain:        keyChain,
		ids:             utils.NewUUIDGenerator(),
		now:             time.Now,
		logger:          logger,
	}
}

// CreateVault derives a KEK from rawKey, generates the vault's data key and
// share key pair and stores them wrapped under the KEK. Neither rawKey nor
// any derived key is persisted.
func (v *vaultService) CreateVault(ctx context.Context, actor models.Actor, rawKey, name string) (models.VaultInfo, error) {
	log := logger.FromContext(ctx)

	if actor.UserID <= 0 {
		return models.VaultInfo{}, fmt.Errorf("%w: missing user", ErrInvalidDataProvided)
	}
	if err := validators.ValidateRawKey(rawKey); err != nil {
		return models.VaultInfo{}, mapValidationError(err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultVaultName
	}

	exists, err := v.vaultRepository.ExistsForUser(ctx, actor.UserID)
	if err != nil {
		return models.VaultInfo{}, mapStoreError(err)
	}
	if exists {
		return models.VaultInfo{}, ErrVaultAlreadyExists
	}

	vaultID := v.ids.Generate()
	params := v.keyChain.KDFParams()

	salt, err := v.keyChain.GenerateSalt()
	if err != nil {
		return models.VaultInfo{}, err
	}
	dek, err := v.keyChain.GenerateDEK()
	if err != nil {
		return models.VaultInfo{}, err
	}
	publicKey, privateKey, err := v.keyChain.GenerateShareKeyPair()
	if err != nil {
		memguard.WipeBytes(dek)
		return models.VaultInfo{}, err
	}
	bundle := crypto.KeyBundle{DEK: dek, SharePrivateKey: privateKey}
	defer bundle.Wipe()

	checkValue, wrappedKeys, err := v.wrapKeys(vaultID, rawKey, salt, params, bundle)
	if err != nil {
		return models.VaultInfo{}, err
	}

	now := v.now().UTC()
	vault := models.Vault{
		ID:             vaultID,
		OwnerUserID:    actor.UserID,
		Name:           name,
		Salt:           salt,
		KDF:            params,
		CheckValue:     checkValue,
		WrappedKeys:    wrappedKeys,
		SharePublicKey: publicKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = v.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := v.vaultRepository.Create(ctx, vault); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrVaultAlreadyExists
			}
			return mapStoreError(err)
		}
		return v.accessLog.Record(ctx, entryFor(actor, vaultID, models.ResourceVault, models.ActionVaultCreate))
	})
	if err != nil {
		log.Err(err).
			Str("func", "vaultService.CreateVault").
			Int64("user_id", actor.UserID).
			Msg("vault creation failed")
		return models.VaultInfo{}, err
	}

	return vault.Info(), nil
}

// Unlock re-derives the KEK and opens the check value. Wrong keys and
// malformed keys fail identically with ErrWrongKey; each attempt is
// recorded.
func (v *vaultService) Unlock(ctx context.Context, actor models.Actor, rawKey string) (*Session, error) {
	log := logger.FromContext(ctx)

	vault, err := v.vaultRepository.GetByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	bundle, err := v.openKeys(vault, rawKey)
	if err != nil {
		failed := entryFor(actor, vault.ID, models.ResourceVault, models.ActionVaultUnlock)
		failed.Success = false
		if recErr := v.accessLog.Record(ctx, failed); recErr != nil {
			log.Err(recErr).Str("func", "vaultService.Unlock").Msg("failed unlock was not audited")
		}
		return nil, ErrWrongKey
	}

	session := newSession(vault.ID, actor, vault.SharePublicKey, bundle)

	if err := v.accessLog.Record(ctx, entryFor(actor, vault.ID, models.ResourceVault, models.ActionVaultUnlock)); err != nil {
		session.destroy()
		return nil, err
	}

	log.Debug().Str("func", "vaultService.Unlock").Str("vault_id", vault.ID).Msg("vault unlocked")
	return session, nil
}

// Lock wipes the session's key material and records vault_lock. Every
// later call with the session fails with ErrSessionLocked. Locking an
// already locked session returns nil and records nothing.
//
// The key material is gone even when the entry cannot be written; the
// returned error then wraps ErrAuditWriteFailed.
func (v *vaultService) Lock(ctx context.Context, session *Session) error {
	if !session.destroy() {
		return nil
	}
	return v.accessLog.Record(ctx, entryFor(session.Actor(), session.VaultID(), models.ResourceVault, models.ActionVaultLock))
}

// ChangeKey verifies oldRawKey and rewraps the key bundle under a KEK
// derived from newRawKey with a fresh salt and the current KDF parameters.
func (v *vaultService) ChangeKey(ctx context.Context, session *Session, oldRawKey, newRawKey string) error {
	log := logger.FromContext(ctx)

	if err := session.check(); err != nil {
		return err
	}
	if err := validators.ValidateRawKey(newRawKey); err != nil {
		return mapValidationError(err)
	}

	vault, err := v.vaultRepository.GetByID(ctx, session.VaultID())
	if err != nil {
		return mapStoreError(err)
	}
	if vault.OwnerUserID != session.UserID() {
		return ErrAccessDenied
	}

	bundle, err := v.openKeys(vault, oldRawKey)
	if err != nil {
		failed := entryFor(session.Actor(), vault.ID, models.ResourceVault, models.ActionKeyChange)
		failed.Success = false
		if recErr := v.accessLog.Record(ctx, failed); recErr != nil {
			log.Err(recErr).Str("func", "vaultService.ChangeKey").Msg("failed key change was not audited")
		}
		return ErrWrongKey
	}
	defer bundle.Wipe()

	salt, err := v.keyChain.GenerateSalt()
	if err != nil {
		return err
	}
	params := v.keyChain.KDFParams()

	checkValue, wrappedKeys, err := v.wrapKeys(vault.ID, newRawKey, salt, params, bundle)
	if err != nil {
		return err
	}

	vault.Salt = salt
	vault.KDF = params
	vault.CheckValue = checkValue
	vault.WrappedKeys = wrappedKeys
	vault.UpdatedAt = v.now().UTC()

	return v.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := v.vaultRepository.UpdateKeys(ctx, vault); err != nil {
			return mapStoreError(err)
		}
		return v.accessLog.Record(ctx, entryFor(session.Actor(), vault.ID, models.ResourceVault, models.ActionKeyChange))
	})
}

// UserHasVault reports whether userID owns a vault. It is a pure read and
// is not logged.
func (v *vaultService) UserHasVault(ctx context.Context, userID int64) (bool, error) {
	exists, err := v.vaultRepository.ExistsForUser(ctx, userID)
	if err != nil {
		return false, mapStoreError(err)
	}
	return exists, nil
}

// GetVault returns the vault metadata of userID without any key material.
// Returns ErrNotFound when the user has no vault.
func (v *vaultService) GetVault(ctx context.Context, userID int64) (models.VaultInfo, error) {
	vault, err := v.vaultRepository.GetByOwner(ctx, userID)
	if err != nil {
		return models.VaultInfo{}, mapStoreError(err)
	}
	return vault.Info(), nil
}

// wrapKeys derives a KEK and seals the check constant and the key bundle
// under it.
func (v *vaultService) wrapKeys(vaultID, rawKey string, salt []byte, params models.KDFParams, bundle crypto.KeyBundle) (checkValue, wrappedKeys []byte, err error) {
	raw := []byte(rawKey)
	kek := v.keyChain.DeriveKEK(raw, salt, params)
	defer memguard.WipeBytes(kek)
	memguard.WipeBytes(raw)

	checkValue, err = v.keyChain.Seal(kek, checkConstant, checkAAD(vaultID))
	if err != nil {
		return nil, nil, err
	}

	plainBundle, err := bundle.Marshal()
	if err != nil {
		return nil, nil, err
	}
	defer memguard.WipeBytes(plainBundle)

	wrappedKeys, err = v.keyChain.Seal(kek, plainBundle, keysAAD(vaultID))
	if err != nil {
		return nil, nil, err
	}

	return checkValue, wrappedKeys, nil
}

// openKeys proves rawKey against the vault's check value and unwraps the
// key bundle. Any failure is reported as ErrWrongKey.
func (v *vaultService) openKeys(vault models.Vault, rawKey string) (crypto.KeyBundle, error) {
	// malformed keys still pay for a derivation
	formatErr := validators.ValidateRawKey(rawKey)

	raw := []byte(rawKey)
	kek := v.keyChain.DeriveKEK(raw, vault.Salt, vault.KDF)
	defer memguard.WipeBytes(kek)
	memguard.WipeBytes(raw)

	check, err := v.keyChain.Open(kek, vault.CheckValue, checkAAD(vault.ID))
	if err != nil || formatErr != nil || subtle.ConstantTimeCompare(check, checkConstant) != 1 {
		return crypto.KeyBundle{}, ErrWrongKey
	}

	plainBundle, err := v.keyChain.Open(kek, vault.WrappedKeys, keysAAD(vault.ID))
	if err != nil {
		return crypto.KeyBundle{}, ErrWrongKey
	}
	defer memguard.WipeBytes(plainBundle)

	bundle, err := crypto.UnmarshalKeyBundle(plainBundle)
	if err != nil {
		return crypto.KeyBundle{}, ErrWrongKey
	}
	return bundle, nil
}

func checkAAD(vaultID string) []byte {
	return []byte(vaultID + ":check")
}

func keysAAD(vaultID string) []byte {
	return []byte(vaultID + ":keys")
}
