package crypto

import "github.com/MKhiriev/go-vault-keeper/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService holds all vault cryptography. It knows nothing about the
// database, sessions or users; its only job is to produce and protect keys
// and ciphertext.
//
// Key hierarchy:
//
//	Salt, DEK      = GenerateSalt() + GenerateDEK()
//	KEK            = DeriveKEK(rawKey, salt, params)
//	Bundle         = Seal(KEK, DEK || sharePrivateKey)
//	CheckValue     = Seal(KEK, "vault-check-v1")
//	SecretValue    = Seal(DEK, plaintext, secretID:field)
//	ShareValue     = SealForRecipient(recipientPublicKey, plaintext)
type KeyChainService interface {
	// GenerateSalt returns 16 random bytes. The salt is not secret.
	GenerateSalt() ([]byte, error)

	// GenerateDEK returns a random 32-byte data-encryption key.
	GenerateDEK() ([]byte, error)

	// DeriveKEK derives a 32-byte key-encryption key with Argon2id. It is a
	// pure function of its inputs and cannot be cancelled once started.
	DeriveKEK(rawKey, salt []byte, params models.KDFParams) []byte

	// KDFParams returns the parameters new vaults are created with.
	KDFParams() models.KDFParams

	// Seal encrypts plaintext with AES-256-GCM into a version 1 envelope:
	// version || nonce || ciphertext || tag. aad is authenticated but not
	// stored.
	Seal(key, plaintext, aad []byte) ([]byte, error)

	// Open reverses Seal. Any tampering, wrong key or wrong aad yields
	// ErrAuthenticationFailed.
	Open(key, envelope, aad []byte) ([]byte, error)

	// GenerateShareKeyPair returns a fresh X25519 key pair used to receive
	// shared secrets.
	GenerateShareKeyPair() (publicKey, privateKey []byte, err error)

	// SealForRecipient encrypts plaintext to publicKey as a version 2
	// envelope. Only the holder of the matching private key can open it.
	SealForRecipient(publicKey, plaintext []byte) ([]byte, error)

	// OpenForRecipient reverses SealForRecipient.
	OpenForRecipient(publicKey, privateKey, envelope []byte) ([]byte, error)
}
