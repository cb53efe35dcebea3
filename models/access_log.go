package models

import "time"

// AccessAction is the kind of vault operation recorded in the access log.
type AccessAction string

const (
	ActionCreate      AccessAction = "create"
	ActionRead        AccessAction = "read"
	ActionUpdate      AccessAction = "update"
	ActionDelete      AccessAction = "delete"
	ActionShare       AccessAction = "share"
	ActionRevoke      AccessAction = "revoke"
	ActionVaultUnlock AccessAction = "vault_unlock"
	ActionVaultLock   AccessAction = "vault_lock"
	ActionVaultCreate AccessAction = "vault_create"
	ActionKeyChange   AccessAction = "key_change"
)

// ResourceType names the kind of object an access log entry refers to.
type ResourceType string

const (
	ResourceVault  ResourceType = "vault"
	ResourceSecret ResourceType = "secret"
	ResourceFolder ResourceType = "folder"
	ResourceShare  ResourceType = "share"
)

// AccessLogEntry is one append-only audit record.
type AccessLogEntry struct {
	ID           string         `json:"id"`
	ActorUserID  int64          `json:"actor_user_id"`
	VaultID      string         `json:"vault_id"`
	SecretID     *string        `json:"secret_id,omitempty"`
	ResourceType ResourceType   `json:"resource_type"`
	Action       AccessAction   `json:"action"`
	Success      bool           `json:"success"`
	IP           *string        `json:"ip,omitempty"`
	UserAgent    *string        `json:"user_agent,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	CreatedAt    time.Time      `json:"timestamp"`
}

// TableName returns the name of the database table associated with
// AccessLogEntry.
func (e AccessLogEntry) TableName() string {
	return "access_log"
}

// AccessLogFilter narrows an access log query. Zero values mean "no filter".
type AccessLogFilter struct {
	From    *time.Time
	To      *time.Time
	Actions []AccessAction
	Limit   uint64
	Offset  uint64
}
