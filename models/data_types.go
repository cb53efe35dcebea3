package models

// SecretType defines the semantic type of a secret value.
// The value determines how the decrypted payload should be interpreted by
// the consumer; the vault itself treats every value as opaque bytes.
type SecretType string

const (
	// Password is a single password or passphrase.
	Password SecretType = "password"

	// APIKey is an API key or access token.
	APIKey SecretType = "api_key"

	// Note is a free-form secure note. Its value may be empty.
	Note SecretType = "note"

	// Credential is a username/password pair or similar login material.
	Credential SecretType = "credential"

	// SSHKey is a private SSH key.
	SSHKey SecretType = "ssh_key"

	// Certificate is a certificate or certificate bundle.
	Certificate SecretType = "certificate"

	// Other is any secret not covered by the types above.
	Other SecretType = "other"
)

// SecretTypes lists every supported [SecretType].
var SecretTypes = []SecretType{Password, APIKey, Note, Credential, SSHKey, Certificate, Other}

// IsValid reports whether t is one of [SecretTypes].
func (t SecretType) IsValid() bool {
	for _, known := range SecretTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Permission is the access level granted by a [Share].
type Permission string

const (
	PermissionRead  Permission = "read"
	PermissionWrite Permission = "write"
)

// IsValid reports whether p is a known permission.
func (p Permission) IsValid() bool {
	return p == PermissionRead || p == PermissionWrite
}
