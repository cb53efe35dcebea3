package models

// CreateSecretRequest carries the plaintext input of a new secret.
type CreateSecretRequest struct {
	Name        string
	Type        SecretType
	Value       []byte
	Description *string
	FolderID    *string
	Tags        []string
	Metadata    *SecretMetadata
}

// UpdateSecretRequest is a partial update: nil fields are left untouched.
type UpdateSecretRequest struct {
	Name        *string
	Type        *SecretType
	Value       []byte
	Description *string
	Metadata    *SecretMetadata
	Tags        *[]string

	// FolderID moves the secret when MoveFolder is true. A nil FolderID with
	// MoveFolder set moves the secret to the root.
	FolderID   *string
	MoveFolder bool
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateSecretRequest) IsEmpty() bool {
	return r.Name == nil && r.Type == nil && r.Value == nil && r.Description == nil &&
		r.Metadata == nil && r.Tags == nil && !r.MoveFolder
}

// SecretUpdate is the storage-level partial update produced from an
// [UpdateSecretRequest] after encryption.
type SecretUpdate struct {
	ID          string
	VaultID     string
	Name        *string
	Type        *SecretType
	Description *string
	Value       CipheredValue
	Metadata    CipheredMetadata
	Tags        *[]string
	FolderID    *string
	MoveFolder  bool

	// ClearMetadata sets the stored metadata to NULL.
	ClearMetadata bool
}

// SecretFilter narrows a secret listing. Zero values mean "no filter".
type SecretFilter struct {
	// FolderID limits the listing to one folder.
	FolderID *string

	// RootOnly limits the listing to secrets without a folder.
	RootOnly bool

	Type         *SecretType
	Tag          string
	NameContains string
	Limit        uint64
	Offset       uint64
}
