package middleware

import (
	"context"

	"github.com/smartshop/storefront-gateway/internal/identity"
)

type contextKey string

const (
	ctxSession contextKey = "session"
)

// SessionFromContext returns the resolved session seeded by the Session
// middleware, or nil when the request carries none.
func SessionFromContext(ctx context.Context) *identity.Session {
	if ctx == nil {
		return nil
	}
	if sess, ok := ctx.Value(ctxSession).(*identity.Session); ok {
		return sess
	}
	return nil
}

// WithSession injects the resolved session into the context.
func WithSession(ctx context.Context, sess *identity.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}

// RoleFromContext returns the session's role, or "" when unauthenticated.
func RoleFromContext(ctx context.Context) string {
	sess := SessionFromContext(ctx)
	if sess == nil || !sess.Authenticated() {
		return ""
	}
	return sess.Role.String()
}
