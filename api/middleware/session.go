package middleware

import (
	"net/http"

	pkgAuth "github.com/smartshop/storefront-gateway/pkg/auth"
	"github.com/smartshop/storefront-gateway/pkg/config"
	"github.com/smartshop/storefront-gateway/pkg/logger"

	"github.com/smartshop/storefront-gateway/internal/identity"
)

// Session restores the gateway session from the request cookie and seeds the
// context with it. Requests without a valid cookie pass through with an
// unauthenticated session; access control is the guard's job.
func Session(cfg config.SessionConfig, mgr identity.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				claims, err := pkgAuth.ParseSessionToken(cfg, cookie.Value)
				if err != nil {
					if logg != nil {
						logg.Warn(ctx, "discarding unverifiable session cookie")
					}
				} else {
					sessionID = claims.ID
				}
			}

			sess, err := mgr.Resolve(ctx, sessionID)
			if err != nil || sess == nil {
				sess = &identity.Session{State: identity.StateUnauthenticated}
			}

			ctx = WithSession(ctx, sess)
			if logg != nil && sess.Authenticated() {
				ctx = logg.WithSessionID(ctx, sess.ID)
				ctx = logg.WithActorRole(ctx, sess.Role.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
