package identity

import (
	"github.com/smartshop/storefront-gateway/pkg/enums"
)

// Decision is the outcome of an access check on a guarded route.
type Decision string

const (
	// DecisionAdmit lets the request through.
	DecisionAdmit Decision = "ADMIT"
	// DecisionRedirectLogin sends an unauthenticated visitor to the
	// login page.
	DecisionRedirectLogin Decision = "REDIRECT_LOGIN"
	// DecisionRedirectLanding sends an authenticated visitor without the
	// required role back to the landing page.
	DecisionRedirectLanding Decision = "REDIRECT_LANDING"
)

// Decide applies the access policy for a guarded route. An empty allow list
// admits any authenticated session. A session honored provisionally counts
// as authenticated.
func Decide(sess *Session, allowed ...enums.Role) Decision {
	if !sess.Authenticated() {
		return DecisionRedirectLogin
	}
	if len(allowed) == 0 {
		return DecisionAdmit
	}
	for _, role := range allowed {
		if sess.Role == role {
			return DecisionAdmit
		}
	}
	return DecisionRedirectLanding
}
