package middleware

import (
	"net/http"

	"github.com/smartshop/storefront-gateway/api/responses"
	"github.com/smartshop/storefront-gateway/pkg/enums"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
	"github.com/smartshop/storefront-gateway/pkg/logger"

	"github.com/smartshop/storefront-gateway/internal/identity"
)

// redirectHeader tells the storefront where to send the visitor when a
// guarded route turns them away.
const redirectHeader = "X-Redirect"

const (
	loginPath   = "/login"
	landingPath = "/"
)

// Guard enforces the route access policy. Unauthenticated visitors are
// pointed at the login page; authenticated visitors lacking the role are
// pointed back at the landing page.
func Guard(logg *logger.Logger, allowed ...enums.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := SessionFromContext(r.Context())

			switch identity.Decide(sess, allowed...) {
			case identity.DecisionAdmit:
				next.ServeHTTP(w, r)
			case identity.DecisionRedirectLogin:
				w.Header().Set(redirectHeader, loginPath)
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			default:
				w.Header().Set(redirectHeader, landingPath)
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
			}
		})
	}
}
