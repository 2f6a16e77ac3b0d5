package config

import (
	"github.com/spf13/viper"
)

// Default values referenced from multiple packages
const (
	DefaultDatabasePath     = "aircraftdb.db"
	DefaultBusyTimeoutMS    = 5000
	DefaultWriteLockSeconds = 30
	DefaultQueryRowCap      = 1000
	DefaultServerName       = "skyfly-aircraftdb"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("database.busy_timeout_ms", DefaultBusyTimeoutMS)
	v.SetDefault("database.write_lock_timeout_seconds", DefaultWriteLockSeconds)

	// Ingest defaults
	v.SetDefault("ingest.row_log_interval", 10000)
	v.SetDefault("ingest.warn_rate_per_second", 5)

	// Query defaults
	v.SetDefault("query.row_cap", DefaultQueryRowCap)

	// Server defaults
	v.SetDefault("server.name", DefaultServerName)
	v.SetDefault("server.log_json", false)
	v.SetDefault("server.log_theme", "everforest")
	v.SetDefault("server.watch_debounce_ms", 2000)
}

// BindSensitiveEnvVars explicitly binds sensitive configuration to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	// Database path
	v.BindEnv("database.path", "SKYFLY_DATABASE_PATH")
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return DefaultDatabasePath // Fallback default
	}
	return c.Database.Path
}

// GetBusyTimeoutMS returns the SQLite busy timeout in milliseconds
func (c *Config) GetBusyTimeoutMS() int {
	if c.Database.BusyTimeoutMS <= 0 {
		return DefaultBusyTimeoutMS
	}
	return c.Database.BusyTimeoutMS
}

// GetWriteLockTimeoutSeconds returns the write gate acquisition budget
func (c *Config) GetWriteLockTimeoutSeconds() int {
	if c.Database.WriteLockTimeoutSeconds <= 0 {
		return DefaultWriteLockSeconds
	}
	return c.Database.WriteLockTimeoutSeconds
}

// GetQueryRowCap returns the row cap applied to uncapped ad-hoc queries
func (c *Config) GetQueryRowCap() int {
	if c.Query.RowCap <= 0 {
		return DefaultQueryRowCap
	}
	return c.Query.RowCap
}

// GetServerName returns the advertised MCP server name
func (c *Config) GetServerName() string {
	if c.Server.Name == "" {
		return DefaultServerName
	}
	return c.Server.Name
}

// GetServerLogTheme returns the log theme (default: everforest)
func (c *Config) GetServerLogTheme() string {
	if c.Server.LogTheme == "" {
		return "everforest"
	}
	return c.Server.LogTheme
}

// GetWatchDebounceMS returns the ingest watcher debounce period
func (c *Config) GetWatchDebounceMS() int {
	if c.Server.WatchDebounceMS <= 0 {
		return 2000
	}
	return c.Server.WatchDebounceMS
}

// GetRowLogInterval returns the ingest progress log cadence
func (c *Config) GetRowLogInterval() int {
	if c.Ingest.RowLogInterval <= 0 {
		return 10000
	}
	return c.Ingest.RowLogInterval
}

// GetWarnRatePerSecond returns the per-row warning rate limit
func (c *Config) GetWarnRatePerSecond() int {
	if c.Ingest.WarnRatePerSecond <= 0 {
		return 5
	}
	return c.Ingest.WarnRatePerSecond
}
