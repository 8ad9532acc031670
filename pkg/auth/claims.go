package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/smartshop/storefront-gateway/pkg/enums"
)

// SessionTokenPayload captures the data available when minting a session cookie token.
type SessionTokenPayload struct {
	SessionID string
	Username  string
	Role      enums.Role
}

// SessionTokenClaims represents the typed JWT stored in the gateway session cookie.
// The role and username are a snapshot for routing; the redis session record stays
// authoritative and is reconciled against the upstream on resolve.
type SessionTokenClaims struct {
	Username string     `json:"username"`
	Role     enums.Role `json:"role"`
	jwt.RegisteredClaims
}
