package models

// Actor identifies the authenticated user on whose behalf a vault operation
// runs. It is supplied by the API boundary; the vault never authenticates
// users itself.
type Actor struct {
	// UserID is the internal identifier of the authenticated user.
	UserID int64 `json:"user_id"`

	// IP is the optional client address recorded in the access log.
	IP string `json:"ip,omitempty"`

	// UserAgent is the optional client user agent recorded in the access log.
	UserAgent string `json:"user_agent,omitempty"`
}
