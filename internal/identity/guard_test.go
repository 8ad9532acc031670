package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartshop/storefront-gateway/pkg/enums"
)

func TestDecideUnauthenticated(t *testing.T) {
	assert.Equal(t, DecisionRedirectLogin, Decide(nil, enums.RoleClient))
	assert.Equal(t, DecisionRedirectLogin, Decide(&Session{State: StateUnauthenticated}))
	assert.Equal(t, DecisionRedirectLogin, Decide(&Session{State: StateUnauthenticated}, enums.RoleAdmin))
}

func TestDecideAdmitsMatchingRole(t *testing.T) {
	client := &Session{State: StateAuthenticated, Role: enums.RoleClient}
	admin := &Session{State: StateAuthenticated, Role: enums.RoleAdmin}

	assert.Equal(t, DecisionAdmit, Decide(client, enums.RoleClient))
	assert.Equal(t, DecisionAdmit, Decide(admin, enums.RoleAdmin))
	assert.Equal(t, DecisionAdmit, Decide(admin, enums.RoleClient, enums.RoleAdmin))
}

func TestDecideRedirectsWrongRoleToLanding(t *testing.T) {
	client := &Session{State: StateAuthenticated, Role: enums.RoleClient}

	assert.Equal(t, DecisionRedirectLanding, Decide(client, enums.RoleAdmin))
}

func TestDecideEmptyAllowListAdmitsAnyAuthenticated(t *testing.T) {
	client := &Session{State: StateAuthenticated, Role: enums.RoleClient}

	assert.Equal(t, DecisionAdmit, Decide(client))
}

func TestDecideHonorsProvisionalSessions(t *testing.T) {
	cached := &Session{State: StateProvisional, Role: enums.RoleClient}

	assert.Equal(t, DecisionAdmit, Decide(cached, enums.RoleClient))
	assert.Equal(t, DecisionRedirectLanding, Decide(cached, enums.RoleAdmin))
}
