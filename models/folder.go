package models

import "time"

// Folder groups secrets inside one vault. A nil ParentID marks a root.
type Folder struct {
	ID        string    `json:"id"`
	VaultID   string    `json:"vault_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Icon      *string   `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with Folder.
func (f Folder) TableName() string {
	return "folders"
}

// FolderNode is a folder with the number of secrets it directly contains.
type FolderNode struct {
	Folder
	SecretCount int `json:"secret_count"`
}

// FolderDeleteStrategy selects what happens to the contents of a deleted
// folder.
type FolderDeleteStrategy string

const (
	// DeleteCascade removes all descendant folders and their secrets.
	DeleteCascade FolderDeleteStrategy = "cascade"

	// DeleteReparent moves direct child folders and the folder's secrets
	// to the root before removing the folder.
	DeleteReparent FolderDeleteStrategy = "reparent"
)

// IsValid reports whether s is a known strategy.
func (s FolderDeleteStrategy) IsValid() bool {
	return s == DeleteCascade || s == DeleteReparent
}
