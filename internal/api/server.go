// Package api provides the Koine REST API server.
package api

import (
	"fmt"
	"net/http"
	"os"

	"github.com/FocuswithJustin/Koine/internal/dataset"
	"github.com/FocuswithJustin/Koine/internal/logging"
	"github.com/FocuswithJustin/Koine/internal/server"
)

// ServerConfig is the configuration of the running server.
var ServerConfig Config

// openStore selects the dataset backing the server. A SQLite database
// path wins over JSON paths; with neither, the embedded sample corpus
// is served so the API is usable out of the box.
func openStore(cfg Config) (dataset.Store, error) {
	if cfg.DatabasePath != "" {
		store, err := dataset.OpenSQLite(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open dataset database: %w", err)
		}
		verses, lexicon := store.Counts()
		logging.DatasetLoad("sqlite", server.AbsPath(cfg.DatabasePath), verses,
			"lexicon_entries", lexicon)
		return store, nil
	}

	if cfg.VersesPath != "" || cfg.LexiconPath != "" {
		store, err := dataset.Open(cfg.VersesPath, cfg.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("open dataset files: %w", err)
		}
		verses, lexicon := store.Counts()
		logging.DatasetLoad("json", server.AbsPath(cfg.VersesPath), verses,
			"lexicon_entries", lexicon)
		return store, nil
	}

	store, err := dataset.SampleStore()
	if err != nil {
		return nil, fmt.Errorf("load embedded sample dataset: %w", err)
	}
	logging.Warn("no dataset configured, serving embedded sample corpus")
	return store, nil
}

// Start starts the API server with the given configuration.
func Start(cfg Config) error {
	ServerConfig = cfg

	if err := ValidateAuthConfig(cfg.Auth); err != nil {
		return fmt.Errorf("invalid auth config: %w", err)
	}

	if cfg.TLS.Enabled {
		if cfg.TLS.CertFile == "" || cfg.TLS.KeyFile == "" {
			return fmt.Errorf("TLS enabled but cert or key file not specified")
		}
		if _, err := os.Stat(cfg.TLS.CertFile); err != nil {
			return fmt.Errorf("TLS cert file not found: %w", err)
		}
		if _, err := os.Stat(cfg.TLS.KeyFile); err != nil {
			return fmt.Errorf("TLS key file not found: %w", err)
		}
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	activeStore = store
	defer store.Close()

	// Initialize WebSocket hub
	GlobalHub = NewHub()
	go GlobalHub.Run()

	mux := setupRoutes()

	protocol := "http"
	wsProtocol := "ws"
	if cfg.TLS.Enabled {
		protocol = "https"
		wsProtocol = "wss"
		logging.Info("TLS enabled", "cert_file", cfg.TLS.CertFile)
	} else {
		logging.Warn("TLS disabled - using plain HTTP",
			"recommendation", "consider using TLS or reverse proxy for production")
	}
	logging.ServerStartup("rest_api", protocol, cfg.Port,
		"websocket_protocol", wsProtocol)

	// Build middleware chain with security headers
	cspConfig := server.APICSPConfig()
	var handler http.Handler = server.SecurityHeadersWithCSP(cspConfig, mux)

	if cfg.Auth.Enabled {
		handler = AuthMiddleware(cfg.Auth, handler)
		logging.SecurityEvent("authentication_configured", "api",
			"enabled", true,
			"note", "API key required")
	} else {
		logging.SecurityEvent("authentication_configured", "api",
			"enabled", false,
			"note", "all requests allowed")
	}

	if cfg.RateLimitRequests > 0 {
		rateLimitConfig := RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimitRequests,
			BurstSize:         cfg.RateLimitBurst,
		}
		if rateLimitConfig.BurstSize == 0 {
			rateLimitConfig.BurstSize = 10
		}
		rateLimiter := NewRateLimiter(rateLimitConfig)
		handler = rateLimiter.Middleware(handler)
		logging.Info("rate limiting enabled",
			"requests_per_minute", rateLimitConfig.RequestsPerMinute,
			"burst_size", rateLimitConfig.BurstSize)
	}

	// CORS, then request logging (outermost)
	corsConfig := server.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
	}
	handler = server.CORSMiddlewareWithConfig(corsConfig, handler)
	if len(cfg.AllowedOrigins) > 0 {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "restricted",
			"allowed_origins_count", len(cfg.AllowedOrigins))
	} else {
		logging.SecurityEvent("cors_configured", "api",
			"mode", "permissive",
			"note", "allowing all origins (*) - consider restricting for production")
	}

	handler = logging.CombinedMiddleware(handler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	if cfg.TLS.Enabled {
		return http.ListenAndServeTLS(addr, cfg.TLS.CertFile, cfg.TLS.KeyFile, handler)
	}
	return http.ListenAndServe(addr, handler)
}

// setupRoutes configures all HTTP routes.
func setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", handleRoot)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/verses", handleVerses)
	mux.HandleFunc("/verses/", handleVerseByRef)
	mux.HandleFunc("/lexicon/", handleLexiconByNumber)
	mux.HandleFunc("/morph/", handleMorph)
	mux.HandleFunc("/normalize/reference", handleNormalizeReference)
	mux.HandleFunc("/normalize/strongs", handleNormalizeStrongs)
	mux.HandleFunc("/ws", handleWebSocket)
	mux.HandleFunc("/jobs", handleJobs)
	mux.HandleFunc("/jobs/", handleJobByID)

	return mux
}
