package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/box"
)

// GenerateShareKeyPair implements [KeyChainService]. It returns an X25519
// public and private key, 32 bytes each. Returns ErrRandomSource when the
// system random source fails.
func (k *keyChainService) GenerateShareKeyPair() ([]byte, []byte, error) {
	pub, priv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return pub[:], priv[:], nil
}

// SealForRecipient implements [KeyChainService]. The plaintext is sealed in
// an anonymous box to publicKey, so only the holder of the matching private
// key can open it and the sender stays unauthenticated. Output layout:
// version(1) || ephemeral public key(32) || ciphertext || tag(16).
//
// Returns ErrInvalidKeyLength when publicKey is not 32 bytes.
func (k *keyChainService) SealForRecipient(publicKey, plaintext []byte) ([]byte, error) {
	pub, err := toKey(publicKey)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 1, 1+box.AnonymousOverhead+len(plaintext))
	out[0] = VersionSealedBox
	sealed, err := box.SealAnonymous(out, plaintext, pub, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return sealed, nil
}

// OpenForRecipient implements [KeyChainService]. It reverses
// [keyChainService.SealForRecipient].
//
// Returns:
//   - ErrMalformedEnvelope when envelope is too short;
//   - ErrUnsupportedVersion when the version byte is not VersionSealedBox;
//   - ErrInvalidKeyLength when either key is not 32 bytes;
//   - ErrAuthenticationFailed when the box does not open with the keys.
func (k *keyChainService) OpenForRecipient(publicKey, privateKey, envelope []byte) ([]byte, error) {
	if len(envelope) < 1+box.AnonymousOverhead {
		return nil, ErrMalformedEnvelope
	}
	if envelope[0] != VersionSealedBox {
		return nil, fmt.Errorf("%w: %#x", ErrUnsupportedVersion, envelope[0])
	}

	pub, err := toKey(publicKey)
	if err != nil {
		return nil, err
	}
	priv, err := toKey(privateKey)
	if err != nil {
		return nil, err
	}

	plaintext, ok := box.OpenAnonymous(nil, envelope[1:], pub, priv)
	if !ok {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// toKey copies b into a fixed-size key array.
func toKey(b []byte) (*[KeySize]byte, error) {
	if len(b) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	var key [KeySize]byte
	copy(key[:], b)
	return &key, nil
}
