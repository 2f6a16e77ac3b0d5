package config

import "github.com/skyfly/aircraftdb/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Database path is optional - empty defaults to "aircraftdb.db" per defaults.go

	// Busy timeout: 0 = use default, negative is invalid
	if c.Database.BusyTimeoutMS < 0 {
		return errors.Newf("database.busy_timeout_ms must be >= 0, got %d", c.Database.BusyTimeoutMS)
	}

	// Write lock timeout: 0 = use default, negative is invalid
	if c.Database.WriteLockTimeoutSeconds < 0 {
		return errors.Newf("database.write_lock_timeout_seconds must be >= 0, got %d", c.Database.WriteLockTimeoutSeconds)
	}

	// Row cap: 0 = use default, negative is invalid
	if c.Query.RowCap < 0 {
		return errors.Newf("query.row_cap must be >= 0, got %d", c.Query.RowCap)
	}

	// Ingest knobs: 0 = use default, negative is invalid
	if c.Ingest.RowLogInterval < 0 {
		return errors.Newf("ingest.row_log_interval must be >= 0, got %d", c.Ingest.RowLogInterval)
	}
	if c.Ingest.WarnRatePerSecond < 0 {
		return errors.Newf("ingest.warn_rate_per_second must be >= 0, got %d", c.Ingest.WarnRatePerSecond)
	}

	// Watch debounce: 0 = use default, negative is invalid
	if c.Server.WatchDebounceMS < 0 {
		return errors.Newf("server.watch_debounce_ms must be >= 0, got %d", c.Server.WatchDebounceMS)
	}

	// Log theme must be one of the known palettes when set
	if c.Server.LogTheme != "" && c.Server.LogTheme != "everforest" && c.Server.LogTheme != "gruvbox" {
		return errors.Newf("server.log_theme must be everforest or gruvbox, got %q", c.Server.LogTheme)
	}

	return nil
}
