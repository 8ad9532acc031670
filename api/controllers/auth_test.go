package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartshop/storefront-gateway/api/middleware"
	"github.com/smartshop/storefront-gateway/internal/identity"
	"github.com/smartshop/storefront-gateway/internal/upstream"
	"github.com/smartshop/storefront-gateway/pkg/config"
	"github.com/smartshop/storefront-gateway/pkg/enums"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
)

type fakeManager struct {
	loginSess   *identity.Session
	loginErr    error
	logoutCalls []string
}

func (f *fakeManager) Resolve(_ context.Context, sessionID string) (*identity.Session, error) {
	return &identity.Session{State: identity.StateUnauthenticated}, nil
}

func (f *fakeManager) Login(_ context.Context, _ upstream.Credentials) (*identity.Session, error) {
	return f.loginSess, f.loginErr
}

func (f *fakeManager) Logout(_ context.Context, sessionID string) error {
	f.logoutCalls = append(f.logoutCalls, sessionID)
	return nil
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "secret",
		Issuer:     "smartshop",
		CookieName: "smartshop_session",
		TTLMinutes: 60,
	}
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := w.Result()
	defer res.Body.Close()
	for _, ck := range res.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestAuthLoginSetsSessionCookie(t *testing.T) {
	mgr := &fakeManager{loginSess: &identity.Session{
		ID:         "s1",
		IdentityID: 7,
		Username:   "marie",
		Role:       enums.RoleClient,
		State:      identity.StateAuthenticated,
	}}

	handler := AuthLogin(mgr, testSessionConfig(), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"marie","password":"pw"}`))
	w := httptest.NewRecorder()
	handler(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookie := findCookie(t, w, "smartshop_session")
	require.NotNil(t, cookie, "session cookie must be set")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Contains(t, w.Body.String(), `"username":"marie"`)
	assert.Contains(t, w.Body.String(), `"role":"CLIENT"`)
}

func TestAuthLoginRejectsMissingFields(t *testing.T) {
	handler := AuthLogin(&fakeManager{}, testSessionConfig(), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"marie"}`))
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthLoginSurfacesRejection(t *testing.T) {
	mgr := &fakeManager{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials")}
	handler := AuthLogin(mgr, testSessionConfig(), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"marie","password":"nope"}`))
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
	assert.Nil(t, findCookie(t, w, "smartshop_session"))
}

func TestAuthLogoutClearsCookieAndSession(t *testing.T) {
	mgr := &fakeManager{}
	handler := AuthLogout(mgr, nil, testSessionConfig(), nil)

	sess := &identity.Session{ID: "s1", State: identity.StateAuthenticated, Role: enums.RoleClient}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), sess))
	w := httptest.NewRecorder()
	handler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"s1"}, mgr.logoutCalls)

	cookie := findCookie(t, w, "smartshop_session")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.MaxAge < 0)
}

func TestAuthMeAnonymous(t *testing.T) {
	handler := AuthMe(nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(identity.StateUnauthenticated))
}

func TestAuthMeAuthenticated(t *testing.T) {
	handler := AuthMe(nil)
	sess := &identity.Session{ID: "s1", IdentityID: 7, Username: "marie", Role: enums.RoleClient, State: identity.StateAuthenticated}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), sess))
	w := httptest.NewRecorder()
	handler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"marie"`)
	assert.NotContains(t, w.Body.String(), `"sessionId"`, "gateway session id stays server side")
}
