package identity

import (
	"time"

	"github.com/smartshop/storefront-gateway/pkg/enums"
)

// State describes how well the gateway currently knows a session.
type State string

const (
	// StateUnauthenticated means no usable cached identity exists.
	StateUnauthenticated State = "UNAUTHENTICATED"
	// StateProvisional means a cached identity is being honored while the
	// commerce API could not be consulted.
	StateProvisional State = "PROVISIONAL"
	// StateAuthenticated means the cached identity was just confirmed
	// against the commerce API.
	StateAuthenticated State = "AUTHENTICATED"
)

// Session is the gateway's view of one browser session.
type Session struct {
	ID         string     `json:"sessionId"`
	IdentityID int64      `json:"id"`
	Username   string     `json:"username"`
	Role       enums.Role `json:"role"`
	State      State      `json:"state"`

	// Credential is the upstream commerce cookie replayed on every call
	// made on this session's behalf. Never serialized to clients.
	Credential string `json:"-"`
}

// Authenticated reports whether the session carries a usable identity.
func (s *Session) Authenticated() bool {
	if s == nil {
		return false
	}
	return s.State == StateAuthenticated || s.State == StateProvisional
}

// record is the redis representation of a session.
type record struct {
	IdentityID int64      `json:"id"`
	Username   string     `json:"username"`
	Role       enums.Role `json:"role"`
	Credential string     `json:"credential"`
	SavedAt    time.Time  `json:"savedAt"`
}
