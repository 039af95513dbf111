package hrms

import (
	"time"

	"github.com/Kimutai-cloud/HRMS-sub002/internal/config"
	"github.com/Kimutai-cloud/HRMS-sub002/internal/log"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	app    config.AppConfig
	logger *log.Logger
}

func newClientConfig() *clientConfig {
	return &clientConfig{app: config.NewAppConfig()}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures a SQLite database at the given path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithDBURL("sqlite:///" + path))
	}
}

// WithPostgres configures a PostgreSQL database from a DSN.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithDBURL(dsn))
	}
}

// WithConfig replaces the whole application configuration.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.app = cfg
	}
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithDataDir(dir))
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithAPIKeys sets the API keys used by the HTTP server's write
// protection.
func WithAPIKeys(keys []string) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithAPIKeys(keys))
	}
}

// WithCacheTTL sets how long cached query results stay fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithCacheConfig(c.app.Cache().WithTTL(ttl)))
	}
}

// WithCacheSweepInterval sets how often expired cache entries are swept.
func WithCacheSweepInterval(interval time.Duration) Option {
	return func(c *clientConfig) {
		c.app = c.app.Apply(config.WithCacheConfig(c.app.Cache().WithSweepInterval(interval)))
	}
}
