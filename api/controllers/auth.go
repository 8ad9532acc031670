package controllers

import (
	"net/http"
	"time"

	"github.com/smartshop/storefront-gateway/api/middleware"
	"github.com/smartshop/storefront-gateway/api/responses"
	"github.com/smartshop/storefront-gateway/api/validators"
	"github.com/smartshop/storefront-gateway/internal/cart"
	"github.com/smartshop/storefront-gateway/internal/identity"
	"github.com/smartshop/storefront-gateway/internal/upstream"
	pkgAuth "github.com/smartshop/storefront-gateway/pkg/auth"
	"github.com/smartshop/storefront-gateway/pkg/config"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
	"github.com/smartshop/storefront-gateway/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	State    string `json:"state"`
}

func newSessionView(sess *identity.Session) sessionView {
	return sessionView{
		ID:       sess.IdentityID,
		Username: sess.Username,
		Role:     sess.Role.String(),
		State:    string(sess.State),
	}
}

// AuthLogin authenticates against the commerce API, establishes a gateway
// session, and sets the session cookie.
func AuthLogin(mgr identity.Manager, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mgr == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sess, err := mgr.Login(r.Context(), upstream.Credentials{
			Username: body.Username,
			Password: body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := pkgAuth.MintSessionToken(cfg, time.Now(), pkgAuth.SessionTokenPayload{
			SessionID: sess.ID,
			Username:  sess.Username,
			Role:      sess.Role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token"))
			return
		}

		setSessionCookie(w, cfg, token)
		responses.WriteSuccess(w, newSessionView(sess))
	}
}

// AuthLogout tears down the gateway session, drops the cart, and clears the
// session cookie. Always succeeds from the client's point of view.
func AuthLogout(mgr identity.Manager, carts cart.Service, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess != nil && sess.ID != "" {
			if err := mgr.Logout(r.Context(), sess.ID); err != nil && logg != nil {
				logg.Warn(r.Context(), "session teardown incomplete")
			}
			if carts != nil {
				if err := carts.Clear(r.Context(), sess.ID); err != nil && logg != nil {
					logg.Warn(r.Context(), "cart teardown incomplete")
				}
			}
		}

		clearSessionCookie(w, cfg)
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthMe reports who the current session belongs to. Anonymous visitors get
// an unauthenticated view rather than an error so the storefront can render
// either way.
func AuthMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if sess == nil || !sess.Authenticated() {
			responses.WriteSuccess(w, sessionView{State: string(identity.StateUnauthenticated)})
			return
		}
		responses.WriteSuccess(w, newSessionView(sess))
	}
}

func setSessionCookie(w http.ResponseWriter, cfg config.SessionConfig, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL().Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
