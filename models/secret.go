package models

import "time"

// Secret is a single encrypted record owned by exactly one vault.
// Value and metadata are stored only as ciphertext; the remaining fields are
// plain organizational metadata.
type Secret struct {
	ID          string     `json:"id"`
	VaultID     string     `json:"vault_id"`
	FolderID    *string    `json:"folder_id,omitempty"`
	Name        string     `json:"name"`
	Type        SecretType `json:"type"`
	Description *string    `json:"description,omitempty"`

	// Value is the encrypted secret value.
	Value CipheredValue `json:"-"`

	// Metadata is the encrypted url/username pair. Nil when none was given.
	Metadata CipheredMetadata `json:"-"`

	Tags      []string  `json:"tags"`
	IsShared  bool      `json:"is_shared"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with Secret.
func (s Secret) TableName() string {
	return "secrets"
}

// SecretMetadata is the sensitive descriptive data stored encrypted next to
// the value.
type SecretMetadata struct {
	URL      string `json:"url,omitempty"`
	Username string `json:"username,omitempty"`
}

// IsEmpty reports whether no metadata field is set.
func (m SecretMetadata) IsEmpty() bool {
	return m.URL == "" && m.Username == ""
}

// SecretInfo is the listing view of a [Secret]. It never carries ciphertext
// or plaintext.
type SecretInfo struct {
	ID          string     `json:"id"`
	VaultID     string     `json:"vault_id"`
	FolderID    *string    `json:"folder_id,omitempty"`
	Name        string     `json:"name"`
	Type        SecretType `json:"type"`
	Description *string    `json:"description,omitempty"`
	Tags        []string   `json:"tags"`
	IsShared    bool       `json:"is_shared"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Info strips the ciphertext from s.
func (s Secret) Info() SecretInfo {
	return SecretInfo{
		ID:          s.ID,
		VaultID:     s.VaultID,
		FolderID:    s.FolderID,
		Name:        s.Name,
		Type:        s.Type,
		Description: s.Description,
		Tags:        s.Tags,
		IsShared:    s.IsShared,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// DecryptedSecret is the result of an audited read.
type DecryptedSecret struct {
	SecretInfo

	// Value is the plaintext value. The caller owns it and should wipe it
	// once it is no longer needed.
	Value []byte `json:"value"`

	// Metadata is nil when the secret has no metadata or when it was read
	// through a share (shares carry the value only).
	Metadata *SecretMetadata `json:"metadata,omitempty"`

	// ViaShareID is set when the secret was read through a share.
	ViaShareID *string `json:"via_share_id,omitempty"`
}
