package service

import (
	"sync"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// Session is the handle of an unlocked vault. It keeps the vault's data key
// and private share key sealed in memguard enclaves; they are opened only
// for the duration of a single cryptographic call. A Session is safe for
// concurrent use. After Lock every operation fails with ErrSessionLocked.
type Session struct {
	mu sync.RWMutex

	vaultID   string
	actor     models.Actor
	publicKey []byte

	dek        *memguard.Enclave
	privateKey *memguard.Enclave
	locked     bool
}

// newSession seals bundle into enclaves. The bundle slices are wiped.
func newSession(vaultID string, actor models.Actor, publicKey []byte, bundle crypto.KeyBundle) *Session {
	pub := make([]byte, len(publicKey))
	copy(pub, publicKey)

	return &Session{
		vaultID:    vaultID,
		actor:      actor,
		publicKey:  pub,
		dek:        memguard.NewEnclave(bundle.DEK),
		privateKey: memguard.NewEnclave(bundle.SharePrivateKey),
	}
}

// VaultID returns the id of the unlocked vault.
func (s *Session) VaultID() string {
	return s.vaultID
}

// UserID returns the vault owner on whose behalf the session acts.
func (s *Session) UserID() int64 {
	return s.actor.UserID
}

// Actor returns the identity recorded in access log entries.
func (s *Session) Actor() models.Actor {
	return s.actor
}

// IsLocked reports whether the session keys were destroyed.
func (s *Session) IsLocked() bool {
	if s == nil {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locked
}

// withDEK calls fn with the plaintext data key.
func (s *Session) withDEK(fn func(dek []byte) error) error {
	if s == nil {
		return ErrSessionLocked
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.locked {
		return ErrSessionLocked
	}
	return crypto.WithKey(s.dek, fn)
}

// withPrivateKey calls fn with the public key and plaintext private share
// key.
func (s *Session) withPrivateKey(fn func(publicKey, privateKey []byte) error) error {
	if s == nil {
		return ErrSessionLocked
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.locked {
		return ErrSessionLocked
	}
	return crypto.WithKey(s.privateKey, func(priv []byte) error {
		return fn(s.publicKey, priv)
	})
}

// check returns ErrSessionLocked for a nil or locked session.
func (s *Session) check() error {
	if s.IsLocked() {
		return ErrSessionLocked
	}
	return nil
}

// destroy drops the key enclaves. It reports false if the session was
// already locked.
func (s *Session) destroy() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return false
	}
	s.locked = true
	s.dek = nil
	s.privateKey = nil
	return true
}
