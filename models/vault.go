package models

import "time"

// Vault is the per-user encrypted container. It stores only what is needed
// to re-derive and verify the user's key: the raw key and the derived key
// are never persisted.
type Vault struct {
	ID          string `json:"id"`
	OwnerUserID int64  `json:"owner_user_id"`
	Name        string `json:"name"`

	// Salt is the random Argon2id salt. It is not secret.
	Salt []byte `json:"-"`

	// KDF holds the Argon2id parameters the vault was created with.
	KDF KDFParams `json:"-"`

	// CheckValue is an envelope of a fixed constant under the derived key.
	// Opening it is the fast wrong-key check on unlock.
	CheckValue []byte `json:"-"`

	// WrappedKeys is an envelope, under the derived key, of the vault's data
	// key and its private share key.
	WrappedKeys []byte `json:"-"`

	// SharePublicKey is the X25519 public key other users seal shares to.
	SharePublicKey []byte `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KDFParams are the Argon2id cost parameters.
type KDFParams struct {
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"`
	Threads uint8  `json:"threads"`
}

// VaultInfo is the public view of a [Vault] without any key material.
type VaultInfo struct {
	ID          string    `json:"id"`
	OwnerUserID int64     `json:"owner_user_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Info strips key material from v.
func (v Vault) Info() VaultInfo {
	return VaultInfo{
		ID:          v.ID,
		OwnerUserID: v.OwnerUserID,
		Name:        v.Name,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// TableName returns the name of the database table associated with Vault.
func (v Vault) TableName() string {
	return "vaults"
}
