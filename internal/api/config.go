package api

// Config holds server configuration.
type Config struct {
	Port              int
	VersesPath        string     // Path to verses.json (or .json.xz)
	LexiconPath       string     // Path to strongs.json (or .json.xz)
	DatabasePath      string     // Path to a SQLite dataset; takes precedence over JSON paths
	RateLimitRequests int        // Requests per minute (0 = disabled)
	RateLimitBurst    int        // Burst size
	Auth              AuthConfig // Authentication configuration
	TLS               TLSConfig  // TLS configuration
	AllowedOrigins    []string   // CORS allowed origins (empty = allow all)
}

// TLSConfig holds TLS/HTTPS configuration.
type TLSConfig struct {
	Enabled  bool   // Enable HTTPS
	CertFile string // Path to TLS certificate file
	KeyFile  string // Path to TLS private key file
}
