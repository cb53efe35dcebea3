package models

type (
	// CipheredValue is a versioned envelope holding an encrypted secret value.
	// The database treats it as an opaque blob.
	CipheredValue []byte

	// CipheredMetadata is a versioned envelope holding encrypted
	// [SecretMetadata] (url, username) serialized as JSON.
	CipheredMetadata []byte

	// WrappedValue is a secret value sealed to a share recipient's public key.
	// It never shares key material with the [CipheredValue] it was derived from.
	WrappedValue []byte
)
