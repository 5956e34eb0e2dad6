package user

import (
	"testing"

	"cargo-inspection-dashboard/internal/config"
	"cargo-inspection-dashboard/pkg/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{Secret: "test-secret", ExpiryHours: 1},
	}
}

func TestLogin(t *testing.T) {
	svc := NewService(testConfig())

	session, err := svc.Login(&LoginRequest{Name: "Quang", Role: "operator"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.SessionID == "" || session.Token == "" {
		t.Error("session must carry an id and a signed token")
	}
	if session.Role != "operator" {
		t.Errorf("role = %q, want operator", session.Role)
	}

	claims, err := utils.ValidateToken(session.Token, "test-secret")
	if err != nil {
		t.Fatalf("minted token does not validate: %v", err)
	}
	if claims.SessionID != session.SessionID || claims.Name != "Quang" {
		t.Errorf("claims = %+v, want the session identity", claims)
	}
}

func TestLoginValidation(t *testing.T) {
	svc := NewService(testConfig())

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{name: "missing name", req: LoginRequest{Role: "operator"}},
		{name: "missing role", req: LoginRequest{Name: "Quang"}},
		{name: "unknown role", req: LoginRequest{Name: "Quang", Role: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(&tt.req); err == nil {
				t.Error("Login() accepted an invalid request")
			}
		})
	}
}

func TestLoginSanitizesName(t *testing.T) {
	svc := NewService(testConfig())

	session, err := svc.Login(&LoginRequest{Name: "  <b>Quang</b>  ", Role: "qa"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if session.Name != "&lt;b&gt;Quang&lt;/b&gt;" {
		t.Errorf("name = %q, want trimmed and escaped", session.Name)
	}
}
