package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mindgrate/mindgrate-engine/pkg/auth"
)

func TestAuthHandler_SignOut(t *testing.T) {
	auth.InitSessionStore("test-secret")
	handler := NewAuthHandler(zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signout", nil)
	rec := httptest.NewRecorder()
	handler.SignOut(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp SignOutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.Success || resp.RedirectURL != "/login" {
		t.Errorf("unexpected response: %+v", resp)
	}

	// The JWT cookie must be expired.
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.JWTCookieName {
			if c.MaxAge != -1 || c.Value != "" {
				t.Errorf("JWT cookie not cleared: %+v", c)
			}
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the JWT cookie to be set to expire")
	}
}
