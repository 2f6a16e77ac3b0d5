package config

import "fmt"

// Config represents the core aircraftdb configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Query    QueryConfig    `mapstructure:"query"`
	Server   ServerConfig   `mapstructure:"server"`
}

// DatabaseConfig configures the SQLite database
type DatabaseConfig struct {
	Path                    string `mapstructure:"path"`
	BusyTimeoutMS           int    `mapstructure:"busy_timeout_ms"`            // SQLite busy_timeout pragma (default: 5000)
	WriteLockTimeoutSeconds int    `mapstructure:"write_lock_timeout_seconds"` // Write gate acquisition budget (default: 30)
}

// IngestConfig configures file ingestion behavior
type IngestConfig struct {
	RowLogInterval    int `mapstructure:"row_log_interval"`     // Progress log cadence in rows (default: 10000)
	WarnRatePerSecond int `mapstructure:"warn_rate_per_second"` // Per-row warning rate limit (default: 5)
}

// QueryConfig configures the ad-hoc read-only query surface
type QueryConfig struct {
	RowCap int `mapstructure:"row_cap"` // Rows returned when a query carries no LIMIT (default: 1000)
}

// ServerConfig configures the MCP tool server
type ServerConfig struct {
	Name            string `mapstructure:"name"`              // Advertised server name (default: skyfly-aircraftdb)
	LogJSON         bool   `mapstructure:"log_json"`          // JSON log output instead of console format
	LogTheme        string `mapstructure:"log_theme"`         // Color theme: gruvbox, everforest
	WatchDebounceMS int    `mapstructure:"watch_debounce_ms"` // Ingest watcher debounce (default: 2000)
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Query: {RowCap: %d}, Server: {Name: %s}}",
		c.Database.Path, c.Query.RowCap, c.Server.Name)
}
