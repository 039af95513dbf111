package middleware

import (
	"net/http"
)

// AuthConfig holds API key authentication configuration.
type AuthConfig struct {
	apiKeys map[string]struct{}
	enabled bool
}

// NewAuthConfig creates an AuthConfig from a set of API keys. An empty set
// disables authentication.
func NewAuthConfig(apiKeys []string) AuthConfig {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys[k] = struct{}{}
		}
	}
	if len(keys) == 0 {
		return AuthConfig{enabled: false}
	}
	return AuthConfig{apiKeys: keys, enabled: true}
}

// Enabled returns true if authentication is enabled.
func (c AuthConfig) Enabled() bool { return c.enabled }

// allows reports whether the request carries a valid key.
func (c AuthConfig) allows(r *http.Request) bool {
	_, ok := c.apiKeys[r.Header.Get("X-API-KEY")]
	return ok
}

// APIKey returns a middleware requiring X-API-KEY header authentication on
// every request. With no keys configured, all requests pass through.
func APIKey(config AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.enabled || config.allows(r) {
				next.ServeHTTP(w, r)
				return
			}
			writeUnauthorized(w)
		})
	}
}

// WriteProtect returns a middleware requiring X-API-KEY authentication on
// mutating methods only. Reads stay open so the SPA can browse without a
// key.
func WriteProtect(apiKeys []string) func(http.Handler) http.Handler {
	config := NewAuthConfig(apiKeys)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.enabled || isReadOnly(r.Method) || config.allows(r) {
				next.ServeHTTP(w, r)
				return
			}
			writeUnauthorized(w)
		})
	}
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"errors":[{"status":"401","title":"Unauthorized","detail":"a valid X-API-KEY header is required"}]}`))
}
