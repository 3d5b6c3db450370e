package odnoklassniki

import (
	"net/http"
	"strings"
	"time"
)

// Logger defines the interface for structured logging used by the client.
// Implementations should treat args as key-value pairs (e.g. "key1", val1, "key2", val2).
// *slog.Logger satisfies it.
type Logger interface {
	// Debug logs a message at debug level.
	Debug(msg string, args ...any)
	// Info logs a message at info level.
	Info(msg string, args ...any)
	// Warn logs a message at warn level.
	Warn(msg string, args ...any)
	// Error logs a message at error level.
	Error(msg string, args ...any)
}

// noopLogger is a Logger that discards all log messages.
type noopLogger struct{}

func (n *noopLogger) Debug(msg string, args ...any) {}
func (n *noopLogger) Info(msg string, args ...any)  {}
func (n *noopLogger) Warn(msg string, args ...any)  {}
func (n *noopLogger) Error(msg string, args ...any) {}

// Option is a functional option for configuring a Client.
type Option func(*clientConfig)

// clientConfig holds construction-time settings for a Client.
type clientConfig struct {
	httpClient   *http.Client
	timeout      time.Duration
	logger       Logger
	header       http.Header
	endpoints    Endpoints
	accessToken  string
	refreshToken string
	redirectURI  string
}

// newClientConfig creates a clientConfig with defaults and applies the given options.
// A WithTimeout value is applied to a copy of the HTTP client so that a
// caller-supplied client is never mutated.
func newClientConfig(opts ...Option) *clientConfig {
	cfg := &clientConfig{
		httpClient: newDefaultHTTPClient(),
		logger:     &noopLogger{},
		header:     make(http.Header),
		endpoints:  DefaultEndpoints(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.timeout > 0 {
		hc := *cfg.httpClient
		hc.Timeout = cfg.timeout
		cfg.httpClient = &hc
	}
	return cfg
}

// WithHTTPClient returns an Option that sets the HTTP client used for every request.
// If client is nil, the library default HTTP client is kept (10s timeout).
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *clientConfig) {
		if client != nil {
			cfg.httpClient = client
		}
	}
}

// WithTimeout returns an Option that overrides the HTTP client timeout.
// Non-positive durations are ignored.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) {
		if d > 0 {
			cfg.timeout = d
		}
	}
}

// WithLogger returns an Option that sets the logger used by the client.
// If l is nil, a no-op logger is used.
func WithLogger(l Logger) Option {
	return func(cfg *clientConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithHeader returns an Option that adds a header to every request.
// The Accept header is always application/json and cannot be overridden.
func WithHeader(key, value string) Option {
	return func(cfg *clientConfig) {
		cfg.header.Add(key, value)
	}
}

// WithEndpoints returns an Option that replaces the login, token and API
// endpoints. Empty fields keep their defaults.
func WithEndpoints(e Endpoints) Option {
	return func(cfg *clientConfig) {
		if e.AuthURL != "" {
			cfg.endpoints.AuthURL = e.AuthURL
		}
		if e.TokenURL != "" {
			cfg.endpoints.TokenURL = e.TokenURL
		}
		if e.APIURL != "" {
			cfg.endpoints.APIURL = e.APIURL
		}
	}
}

// WithAccessToken returns an Option that seeds the client with an existing
// access token, bypassing the code exchange.
func WithAccessToken(token string) Option {
	return func(cfg *clientConfig) {
		cfg.accessToken = token
	}
}

// WithRefreshToken returns an Option that seeds the client with an existing refresh token.
func WithRefreshToken(token string) Option {
	return func(cfg *clientConfig) {
		cfg.refreshToken = token
	}
}

// WithRedirectURI returns an Option that sets the redirect URI at construction.
// It is equivalent to calling SetRedirectURI afterwards.
func WithRedirectURI(uri string) Option {
	return func(cfg *clientConfig) {
		cfg.redirectURI = uri
	}
}

// AuthOption is a functional option for configuring the login URL.
type AuthOption func(*authConfig)

// authConfig holds optional parameters for LoginURL.
type authConfig struct {
	state  string
	layout string
}

// newAuthConfig creates a new authConfig and applies the given options.
func newAuthConfig(opts ...AuthOption) *authConfig {
	cfg := &authConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	return cfg
}

// WithState returns an AuthOption that appends a state parameter to the login URL.
func WithState(state string) AuthOption {
	return func(cfg *authConfig) {
		cfg.state = state
	}
}

// WithLayout returns an AuthOption that selects the login page layout
// ("w" for web, "m" for mobile, "a" for a simplified mobile page).
func WithLayout(layout string) AuthOption {
	return func(cfg *authConfig) {
		cfg.layout = layout
	}
}

// sensitiveKeys lists substrings that indicate a field value should be masked.
var sensitiveKeys = []string{"token", "secret", "key", "password", "code", "sig"}

// maskSensitive masks the value if the key contains a sensitive substring
// (case-insensitive). Sensitive values are returned as the first 4 characters
// followed by "****". If the value has fewer than 4 characters, "****" is returned.
// Non-sensitive values are returned unchanged.
func maskSensitive(key, value string) string {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			if len(value) >= 4 {
				return value[:4] + "****"
			}
			return "****"
		}
	}
	return value
}
