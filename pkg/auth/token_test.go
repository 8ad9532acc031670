package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/smartshop/storefront-gateway/pkg/config"
	"github.com/smartshop/storefront-gateway/pkg/enums"
)

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := config.SessionConfig{
		Secret:     "secret",
		Issuer:     "smartshop-gateway",
		TTLMinutes: 30,
	}
	now := time.Now().UTC()
	sessionID := NewSessionID()

	payload := SessionTokenPayload{
		SessionID: sessionID,
		Username:  "acme-buyer",
		Role:      enums.RoleClient,
	}

	token, err := MintSessionToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}

	if claims.ID != sessionID {
		t.Fatalf("expected session id %s, got %s", sessionID, claims.ID)
	}
	if claims.Username != "acme-buyer" {
		t.Fatalf("unexpected username %q", claims.Username)
	}
	if claims.Role != enums.RoleClient {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(cfg.TTL())
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestMintSessionTokenGeneratesID(t *testing.T) {
	cfg := config.SessionConfig{
		Secret:     "secret",
		Issuer:     "smartshop-gateway",
		TTLMinutes: 30,
	}

	token, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{
		Username: "admin",
		Role:     enums.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated session id")
	}
}

func TestParseSessionTokenInvalidSignature(t *testing.T) {
	cfg := config.SessionConfig{
		Secret:     "secret",
		Issuer:     "smartshop-gateway",
		TTLMinutes: 10,
	}

	token, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{
		Username: "client",
		Role:     enums.RoleClient,
	})
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	if _, err := ParseSessionToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseSessionTokenExpired(t *testing.T) {
	cfg := config.SessionConfig{
		Secret:     "secret",
		Issuer:     "smartshop-gateway",
		TTLMinutes: 15,
	}

	token, err := MintSessionToken(cfg, time.Now().Add(-time.Hour), SessionTokenPayload{
		Username: "client",
		Role:     enums.RoleClient,
	})
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	_, err = ParseSessionToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMintSessionTokenInvalidRole(t *testing.T) {
	cfg := config.SessionConfig{
		Secret:     "secret",
		Issuer:     "smartshop-gateway",
		TTLMinutes: 5,
	}

	if _, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{Role: ""}); err == nil {
		t.Fatal("expected invalid role error")
	}
}
