package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cinehubdev/cinehub/internal/app/system/auth"
)

func newTestTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager("test-secret-0123456789-0123456789", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return tm
}

func TestTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager(t)

	token, err := tm.Generate("user-123", "Alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
	}
	if claims.DisplayName != "Alice" {
		t.Errorf("DisplayName = %q, want %q", claims.DisplayName, "Alice")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Error("expiry not bounded by configured ttl")
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	tm, err := auth.NewTokenManager("test-secret-0123456789-0123456789", time.Millisecond)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	token, err := tm.Generate("user-123", "Alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	if _, err := tm.Verify(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	tm := newTestTokenManager(t)
	other, err := auth.NewTokenManager("a-completely-different-secret-key", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := tm.Generate("user-123", "Alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := other.Verify(token); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}

func TestNewTokenManager_Invalid(t *testing.T) {
	if _, err := auth.NewTokenManager("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := auth.NewTokenManager("secret", 0); err == nil {
		t.Error("expected error for zero ttl")
	}
}

func requireAuthProbe(tm *auth.TokenManager) (http.Handler, *bool, **auth.Identity) {
	called := false
	var seen *auth.Identity
	h := auth.RequireAuth(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if id, ok := auth.CurrentUser(r); ok {
			seen = id
		}
		w.WriteHeader(http.StatusOK)
	}))
	return h, &called, &seen
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	tm := newTestTokenManager(t)
	h, called, _ := requireAuthProbe(tm)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/api/movie/1/comment", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if *called {
		t.Error("handler ran without authentication")
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
		t.Errorf("expected {\"error\": ...} body, got %q", rec.Body.String())
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	tm := newTestTokenManager(t)
	h, called, _ := requireAuthProbe(tm)

	req := httptest.NewRequest("POST", "/api/movie/1/comment", nil)
	req.Header.Set("Authorization", "Token abcdef")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized || *called {
		t.Errorf("status = %d, called = %v; want 401 and no handler call", rec.Code, *called)
	}
}

func TestRequireAuth_BadToken(t *testing.T) {
	tm := newTestTokenManager(t)
	h, called, _ := requireAuthProbe(tm)

	req := httptest.NewRequest("POST", "/api/movie/1/comment", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized || *called {
		t.Errorf("status = %d, called = %v; want 401 and no handler call", rec.Code, *called)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tm := newTestTokenManager(t)
	h, called, seen := requireAuthProbe(tm)

	token, err := tm.Generate("user-123", "Alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/movie/1/comment", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !*called {
		t.Fatalf("status = %d, called = %v; want 200 and handler call", rec.Code, *called)
	}
	if *seen == nil || (*seen).UserID != "user-123" || (*seen).DisplayName != "Alice" {
		t.Errorf("identity in context = %+v, want user-123/Alice", *seen)
	}
}

func TestCurrentUser_NoIdentity(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if _, ok := auth.CurrentUser(r); ok {
		t.Error("expected no identity on bare request")
	}
}
