package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/FocuswithJustin/Koine/internal/logging"
)

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled bool
	APIKey  string
}

// Keys shorter than this are rejected at startup; a short key defeats
// the point of requiring one.
const minAPIKeyLength = 16

// publicPaths are always served without a key so load balancers and
// uptime checks can probe the server.
var publicPaths = map[string]bool{
	"/":       true,
	"/health": true,
}

// AuthMiddleware enforces X-API-Key authentication on non-public
// endpoints when enabled. Key comparison is constant-time.
func AuthMiddleware(authCfg AuthConfig, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authCfg.Enabled || publicPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get("X-API-Key")
		switch {
		case key == "":
			logging.SecurityEvent("unauthorized_request", "auth",
				"path", r.URL.Path,
				"reason", "missing API key")
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing X-API-Key header")
		case !apiKeyMatches(key, authCfg.APIKey):
			logging.SecurityEvent("unauthorized_request", "auth",
				"path", r.URL.Path,
				"reason", "invalid API key")
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid API key")
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// ValidateAuthConfig rejects configurations that would enable
// authentication with a missing or weak key.
func ValidateAuthConfig(cfg AuthConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required when authentication is enabled (set KOINE_API_KEY)")
	}
	if len(cfg.APIKey) < minAPIKeyLength {
		return fmt.Errorf("API key must be at least %d characters (got %d)", minAPIKeyLength, len(cfg.APIKey))
	}
	return nil
}

// apiKeyMatches compares the presented key against the configured one
// in constant time, so response timing leaks nothing about the key.
func apiKeyMatches(presented, configured string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1
}
