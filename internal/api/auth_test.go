package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const testAPIKey = "test-api-key-0123456789abcdef"

func authedHandler(t *testing.T, cfg AuthConfig) http.Handler {
	t.Helper()
	return AuthMiddleware(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthDisabledAllowsAll(t *testing.T) {
	handler := authedHandler(t, AuthConfig{Enabled: false})

	req := httptest.NewRequest(http.MethodGet, "/morph/V-AAI-3S", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestAuthRequiresKey(t *testing.T) {
	handler := authedHandler(t, AuthConfig{Enabled: true, APIKey: testAPIKey})

	req := httptest.NewRequest(http.MethodGet, "/morph/V-AAI-3S", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing key status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/morph/V-AAI-3S", nil)
	req.Header.Set("X-API-Key", "wrong-key")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/morph/V-AAI-3S", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid key status = %d, want 200", rec.Code)
	}
}

func TestAuthPublicEndpoints(t *testing.T) {
	handler := authedHandler(t, AuthConfig{Enabled: true, APIKey: testAPIKey})

	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200 without key", path, rec.Code)
		}
	}
}

func TestValidateAuthConfig(t *testing.T) {
	if err := ValidateAuthConfig(AuthConfig{Enabled: false}); err != nil {
		t.Errorf("disabled config: %v", err)
	}
	if err := ValidateAuthConfig(AuthConfig{Enabled: true}); err == nil {
		t.Error("enabled without key should fail")
	}
	if err := ValidateAuthConfig(AuthConfig{Enabled: true, APIKey: "short"}); err == nil {
		t.Error("short key should fail")
	}
	if err := ValidateAuthConfig(AuthConfig{Enabled: true, APIKey: testAPIKey}); err != nil {
		t.Errorf("valid config: %v", err)
	}
}
