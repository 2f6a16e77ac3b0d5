package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/skyfly/aircraftdb/errors"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	// Check if file exists before backing up
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate backups: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	// Delete oldest backup if exists
	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		// Log deletion failures (but don't fail config save)
		fmt.Printf("failed to delete old backup %s: %v\n", back3, err)
	}

	// Rotate .back2 to .back3
	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	// Rotate .back1 to .back2
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	// Copy current to .back1
	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}

// UserConfigPath returns the path to the user config file, ~/.skyfly/aircraftdb.toml
func UserConfigPath() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "aircraftdb.toml")
}

// WriteDefault writes a starter configuration file with all defaults filled
// in. An existing file at the path is rotated into the backup chain first.
func WriteDefault(configPath string) error {
	if configPath == "" {
		configPath = UserConfigPath()
	}
	if configPath == "" {
		return errors.New("could not determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	settings := map[string]interface{}{
		"database": map[string]interface{}{
			"path":                       DefaultDatabasePath,
			"busy_timeout_ms":            DefaultBusyTimeoutMS,
			"write_lock_timeout_seconds": DefaultWriteLockSeconds,
		},
		"ingest": map[string]interface{}{
			"row_log_interval":     10000,
			"warn_rate_per_second": 5,
		},
		"query": map[string]interface{}{
			"row_cap": DefaultQueryRowCap,
		},
		"server": map[string]interface{}{
			"name":              DefaultServerName,
			"log_json":          false,
			"log_theme":         "everforest",
			"watch_debounce_ms": 2000,
		},
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	header := []byte("# aircraftdb configuration\n# Values here override built-in defaults; SKYFLY_* env vars override both.\n\n")
	if err := os.WriteFile(configPath, append(header, data...), DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	return nil
}

// UpdateDatabasePath persists database.path to the user config file,
// preserving any other settings already present.
func UpdateDatabasePath(path string) error {
	configPath := UserConfigPath()
	if configPath == "" {
		return errors.New("could not determine home directory")
	}

	// Try to read existing config
	var settings map[string]interface{}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := toml.Unmarshal(data, &settings); err != nil {
			return errors.Wrap(err, "failed to parse user config")
		}
	} else {
		settings = make(map[string]interface{})
	}

	var database map[string]interface{}
	if d, ok := settings["database"].(map[string]interface{}); ok {
		database = d
	} else {
		database = make(map[string]interface{})
	}
	database["path"] = path
	settings["database"] = database

	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to write user config")
	}

	return nil
}
