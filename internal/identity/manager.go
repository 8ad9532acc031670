package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/smartshop/storefront-gateway/internal/upstream"
	"github.com/smartshop/storefront-gateway/pkg/auth"
	"github.com/smartshop/storefront-gateway/pkg/config"
	pkgerrors "github.com/smartshop/storefront-gateway/pkg/errors"
	"github.com/smartshop/storefront-gateway/pkg/logger"
	"github.com/smartshop/storefront-gateway/pkg/redis"
)

// store is the slice of the redis client the manager needs.
type store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// authAPI is the slice of the commerce client the manager needs.
type authAPI interface {
	Login(ctx context.Context, creds upstream.Credentials) (*upstream.Identity, string, error)
	Me(ctx context.Context, credential string) (*upstream.Identity, error)
	Logout(ctx context.Context, credential string) error
}

// Manager owns the session lifecycle: establishing sessions at login,
// resolving them on each request, and tearing them down at logout.
type Manager interface {
	// Resolve restores the cached session and reconciles it against the
	// commerce API. Only an upstream 401 discards the cached identity;
	// any other upstream failure keeps it, marked provisional.
	Resolve(ctx context.Context, sessionID string) (*Session, error)
	// Login authenticates against the commerce API and establishes a new
	// gateway session under a fresh session id.
	Login(ctx context.Context, creds upstream.Credentials) (*Session, error)
	// Logout invalidates the upstream session best-effort and always
	// drops the cached record.
	Logout(ctx context.Context, sessionID string) error
}

type manager struct {
	store store
	api   authAPI
	ttl   time.Duration
	logg  *logger.Logger
}

// NewManager wires the session manager.
func NewManager(st store, api authAPI, cfg config.SessionConfig, logg *logger.Logger) (Manager, error) {
	if st == nil {
		return nil, fmt.Errorf("identity: store is required")
	}
	if api == nil {
		return nil, fmt.Errorf("identity: upstream client is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("identity: logger is required")
	}
	ttl := cfg.TTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("identity: session TTL must be positive")
	}
	return &manager{store: st, api: api, ttl: ttl, logg: logg}, nil
}

func (m *manager) Resolve(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return &Session{State: StateUnauthenticated}, nil
	}

	key := m.store.SessionKey(sessionID)
	raw, err := m.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.ErrNotFound) {
			m.logg.Warn(ctx, fmt.Sprintf("session cache read failed: %v", err))
		}
		return &Session{State: StateUnauthenticated}, nil
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		m.logg.Warn(ctx, "dropping unreadable session record")
		m.evict(ctx, key)
		return &Session{State: StateUnauthenticated}, nil
	}

	identity, err := m.api.Me(ctx, rec.Credential)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeUnauthorized {
			m.logg.Info(ctx, "upstream rejected cached session, evicting")
			m.evict(ctx, key)
			return &Session{State: StateUnauthenticated}, nil
		}
		// Cached identity stays trusted when the commerce API cannot be
		// consulted or answers anything other than 401.
		return &Session{
			ID:         sessionID,
			IdentityID: rec.IdentityID,
			Username:   rec.Username,
			Role:       rec.Role,
			Credential: rec.Credential,
			State:      StateProvisional,
		}, nil
	}

	rec.IdentityID = identity.ID
	rec.Username = identity.Username
	rec.Role = identity.Role
	if err := m.persist(ctx, key, rec); err != nil {
		m.logg.Warn(ctx, fmt.Sprintf("session refresh write failed: %v", err))
	}

	return &Session{
		ID:         sessionID,
		IdentityID: identity.ID,
		Username:   identity.Username,
		Role:       identity.Role,
		Credential: rec.Credential,
		State:      StateAuthenticated,
	}, nil
}

func (m *manager) Login(ctx context.Context, creds upstream.Credentials) (*Session, error) {
	identity, credential, err := m.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if !identity.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, "commerce API returned an unknown role")
	}

	sessionID := auth.NewSessionID()
	rec := record{
		IdentityID: identity.ID,
		Username:   identity.Username,
		Role:       identity.Role,
		Credential: credential,
		SavedAt:    time.Now().UTC(),
	}
	if err := m.persist(ctx, m.store.SessionKey(sessionID), rec); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist session")
	}

	return &Session{
		ID:         sessionID,
		IdentityID: identity.ID,
		Username:   identity.Username,
		Role:       identity.Role,
		Credential: credential,
		State:      StateAuthenticated,
	}, nil
}

func (m *manager) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	key := m.store.SessionKey(sessionID)

	if raw, err := m.store.Get(ctx, key); err == nil {
		var rec record
		if err := json.Unmarshal([]byte(raw), &rec); err == nil && rec.Credential != "" {
			if err := m.api.Logout(ctx, rec.Credential); err != nil {
				m.logg.Warn(ctx, fmt.Sprintf("upstream logout failed: %v", err))
			}
		}
	}

	if err := m.store.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "drop session")
	}
	return nil
}

func (m *manager) persist(ctx context.Context, key string, rec record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, key, string(raw), m.ttl)
}

func (m *manager) evict(ctx context.Context, key string) {
	if err := m.store.Del(ctx, key); err != nil {
		m.logg.Warn(ctx, fmt.Sprintf("session eviction failed: %v", err))
	}
}
