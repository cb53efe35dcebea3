// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"

	"github.com/MKhiriev/go-vault-keeper/models"
)

const (
	SaltSize = 16
	KeySize  = 32
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	// Argon2id parameters for new vaults. Existing vaults always derive
	// with the parameters stored next to their salt.
	params models.KDFParams
}

// DefaultKDFParams are the Argon2id parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
func DefaultKDFParams() models.KDFParams {
	return models.KDFParams{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
	}
}

// NewKeyChainService constructs a [KeyChainService] creating vaults with the
// given Argon2id parameters. Zero fields fall back to [DefaultKDFParams].
func NewKeyChainService(params models.KDFParams) KeyChainService {
	def := DefaultKDFParams()
	if params.Time == 0 {
		params.Time = def.Time
	}
	if params.Memory == 0 {
		params.Memory = def.Memory
	}
	if params.Threads == 0 {
		params.Threads = def.Threads
	}
	return &keyChainService{params: params}
}

// KDFParams implements [KeyChainService]. It returns the parameters used
// for new vaults.
func (k *keyChainService) KDFParams() models.KDFParams {
	return k.params
}

// GenerateSalt implements [KeyChainService].
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	return randomBytes(SaltSize)
}

// GenerateDEK implements [KeyChainService].
func (k *keyChainService) GenerateDEK() ([]byte, error) {
	return randomBytes(KeySize)
}

// DeriveKEK implements [KeyChainService]. The result must live only in
// memory and is never persisted.
func (k *keyChainService) DeriveKEK(rawKey, salt []byte, params models.KDFParams) []byte {
	return argon2.IDKey(rawKey, salt, params.Time, params.Memory, params.Threads, KeySize)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return b, nil
}
