package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateToken("sess-1", "Quang", "manager", "test-secret", 2)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if time.Until(expiresAt) > 2*time.Hour || time.Until(expiresAt) < time.Hour {
		t.Errorf("expiry %v not within the requested two hours", expiresAt)
	}

	claims, err := ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.SessionID != "sess-1" || claims.Name != "Quang" || claims.Role != "manager" {
		t.Errorf("claims = %+v, want the minted identity", claims)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateToken("sess-1", "Quang", "operator", "secret-a", 1)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ValidateToken(token, "secret-b"); err == nil {
		t.Error("token signed with another secret must not validate")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token", "secret"); err == nil {
		t.Error("malformed token must not validate")
	}
}
