// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Envelope versions. The first byte of every stored ciphertext names the
// scheme that produced it.
const (
	VersionAESGCM    byte = 0x01
	VersionSealedBox byte = 0x02
)

const (
	nonceSize = 12
	tagSize   = 16
)

// Seal implements [KeyChainService]. Output layout:
// version(1) || nonce(12) || ciphertext || tag(16).
func (k *keyChainService) Seal(key, plaintext, aad []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, err := randomBytes(nonceSize)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 1+nonceSize+len(plaintext)+tagSize)
	out = append(out, VersionAESGCM)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plaintext, aad), nil
}

// Open implements [KeyChainService].
func (k *keyChainService) Open(key, envelope, aad []byte) ([]byte, error) {
	if len(envelope) < 1+nonceSize+tagSize {
		return nil, ErrMalformedEnvelope
	}
	if envelope[0] != VersionAESGCM {
		return nil, fmt.Errorf("%w: %#x", ErrUnsupportedVersion, envelope[0])
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce, ciphertext := envelope[1:1+nonceSize], envelope[1+nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
