package models

import "time"

// Share grants one user access to another user's secret through an
// independently encrypted copy of its value.
type Share struct {
	ID           string       `json:"id"`
	SecretID     string       `json:"secret_id"`
	OwnerUserID  int64        `json:"owner_user_id"`
	TargetUserID int64        `json:"target_user_id"`
	Permission   Permission   `json:"permission"`
	WrappedValue WrappedValue `json:"-"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
	RevokedAt    *time.Time   `json:"revoked_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TableName returns the name of the database table associated with Share.
func (s Share) TableName() string {
	return "shares"
}

// IsRevoked reports whether the share was revoked.
func (s Share) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsExpired reports whether the share expired strictly before now.
func (s Share) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// IsActive reports whether the share still grants access at now.
func (s Share) IsActive(now time.Time) bool {
	return !s.IsRevoked() && !s.IsExpired(now)
}

// Info strips the wrapped ciphertext from s.
func (s Share) Info() ShareInfo {
	return ShareInfo{
		ID:           s.ID,
		SecretID:     s.SecretID,
		OwnerUserID:  s.OwnerUserID,
		TargetUserID: s.TargetUserID,
		Permission:   s.Permission,
		ExpiresAt:    s.ExpiresAt,
		RevokedAt:    s.RevokedAt,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ShareInfo is the listing view of a [Share]. It never carries the wrapped
// ciphertext.
type ShareInfo struct {
	ID           string     `json:"id"`
	SecretID     string     `json:"secret_id"`
	OwnerUserID  int64      `json:"owner_user_id"`
	TargetUserID int64      `json:"target_user_id"`
	Permission   Permission `json:"permission"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	RevokedAt    *time.Time `json:"revoked_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ShareRequest describes a new or replacing share.
type ShareRequest struct {
	SecretID     string
	TargetUserID int64
	Permission   Permission

	// ExpiresAt is optional; nil never expires.
	ExpiresAt *time.Time
}
