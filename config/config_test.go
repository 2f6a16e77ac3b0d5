package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	// Create isolated viper instance without loading user/system config
	v := viper.New()
	SetDefaults(v)

	// Load config from isolated viper
	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	// Check default values are applied
	if cfg.Database.Path != DefaultDatabasePath {
		t.Errorf("expected default database path %q, got %q", DefaultDatabasePath, cfg.Database.Path)
	}

	if cfg.Database.BusyTimeoutMS != DefaultBusyTimeoutMS {
		t.Errorf("expected default busy timeout %d, got %d", DefaultBusyTimeoutMS, cfg.Database.BusyTimeoutMS)
	}

	if cfg.Query.RowCap != DefaultQueryRowCap {
		t.Errorf("expected default row cap %d, got %d", DefaultQueryRowCap, cfg.Query.RowCap)
	}

	if cfg.Server.Name != DefaultServerName {
		t.Errorf("expected default server name %q, got %q", DefaultServerName, cfg.Server.Name)
	}
}

func TestValidate_ZeroValues(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "zero row cap is valid (use default)",
			config: Config{
				Query: QueryConfig{RowCap: 0},
			},
			wantErr: false,
		},
		{
			name: "negative row cap is invalid",
			config: Config{
				Query: QueryConfig{RowCap: -1},
			},
			wantErr: true,
		},
		{
			name: "zero busy timeout is valid (use default)",
			config: Config{
				Database: DatabaseConfig{BusyTimeoutMS: 0},
			},
			wantErr: false,
		},
		{
			name: "negative busy timeout is invalid",
			config: Config{
				Database: DatabaseConfig{BusyTimeoutMS: -1},
			},
			wantErr: true,
		},
		{
			name: "negative write lock timeout is invalid",
			config: Config{
				Database: DatabaseConfig{WriteLockTimeoutSeconds: -5},
			},
			wantErr: true,
		},
		{
			name: "empty database path is valid",
			config: Config{
				Database: DatabaseConfig{Path: ""},
			},
			wantErr: false,
		},
		{
			name: "unknown log theme is invalid",
			config: Config{
				Server: ServerConfig{LogTheme: "solarized"},
			},
			wantErr: true,
		},
		{
			name: "gruvbox theme is valid",
			config: Config{
				Server: ServerConfig{LogTheme: "gruvbox"},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	// Verify critical defaults are set
	tests := []struct {
		key      string
		expected interface{}
	}{
		{"database.path", DefaultDatabasePath},
		{"database.busy_timeout_ms", DefaultBusyTimeoutMS},
		{"database.write_lock_timeout_seconds", DefaultWriteLockSeconds},
		{"ingest.row_log_interval", 10000},
		{"query.row_cap", DefaultQueryRowCap},
		{"server.name", DefaultServerName},
		{"server.log_theme", "everforest"},
		{"server.watch_debounce_ms", 2000},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := v.Get(tt.key)
			if got != tt.expected {
				t.Errorf("default %s = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestFindProjectConfig(t *testing.T) {
	// Create temporary directory structure
	tmpDir := t.TempDir()

	// Test 1: aircraftdb.toml preferred over config.toml
	t.Run("prefers aircraftdb.toml", func(t *testing.T) {
		subDir := filepath.Join(tmpDir, "test1", "subdir")
		os.MkdirAll(subDir, DefaultDirPermissions)

		// Create both config files
		os.WriteFile(filepath.Join(tmpDir, "test1", "aircraftdb.toml"), []byte(""), DefaultFilePermissions)
		os.WriteFile(filepath.Join(tmpDir, "test1", "config.toml"), []byte(""), DefaultFilePermissions)

		// Change to subdirectory
		oldWd, _ := os.Getwd()
		defer os.Chdir(oldWd)
		os.Chdir(subDir)

		result := findProjectConfig()
		if result == "" {
			t.Error("expected to find config file")
		}
		if !filepath.IsAbs(result) {
			t.Error("expected absolute path")
		}
		if filepath.Base(result) != "aircraftdb.toml" {
			t.Errorf("expected aircraftdb.toml, got %s", filepath.Base(result))
		}
	})

	// Test 2: Falls back to config.toml if aircraftdb.toml not present
	t.Run("fallback to config.toml", func(t *testing.T) {
		subDir := filepath.Join(tmpDir, "test2", "subdir")
		os.MkdirAll(subDir, DefaultDirPermissions)

		// Create only config.toml
		os.WriteFile(filepath.Join(tmpDir, "test2", "config.toml"), []byte(""), DefaultFilePermissions)

		oldWd, _ := os.Getwd()
		defer os.Chdir(oldWd)
		os.Chdir(subDir)

		result := findProjectConfig()
		if result == "" {
			t.Error("expected to find config file")
		}
		if filepath.Base(result) != "config.toml" {
			t.Errorf("expected config.toml, got %s", filepath.Base(result))
		}
	})

	// Test 3: Returns empty string when no config found
	t.Run("no config found", func(t *testing.T) {
		subDir := filepath.Join(tmpDir, "test3", "subdir")
		os.MkdirAll(subDir, DefaultDirPermissions)

		oldWd, _ := os.Getwd()
		defer os.Chdir(oldWd)
		os.Chdir(subDir)

		result := findProjectConfig()
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})
}

func TestGetDatabasePath_Fallback(t *testing.T) {
	// Create isolated viper instance without loading user/system config
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	if err != nil {
		t.Fatalf("LoadWithViper() failed: %v", err)
	}

	path := cfg.GetDatabasePath()
	if path != DefaultDatabasePath {
		t.Errorf("expected default path %q, got %q", DefaultDatabasePath, path)
	}

	empty := Config{}
	if empty.GetDatabasePath() != DefaultDatabasePath {
		t.Errorf("zero config should fall back to %q", DefaultDatabasePath)
	}
}

func TestGetterFallbacks(t *testing.T) {
	cfg := Config{}

	if got := cfg.GetQueryRowCap(); got != DefaultQueryRowCap {
		t.Errorf("GetQueryRowCap() = %d, want %d", got, DefaultQueryRowCap)
	}
	if got := cfg.GetWriteLockTimeoutSeconds(); got != DefaultWriteLockSeconds {
		t.Errorf("GetWriteLockTimeoutSeconds() = %d, want %d", got, DefaultWriteLockSeconds)
	}
	if got := cfg.GetServerLogTheme(); got != "everforest" {
		t.Errorf("GetServerLogTheme() = %q, want everforest", got)
	}
	if got := cfg.GetWatchDebounceMS(); got != 2000 {
		t.Errorf("GetWatchDebounceMS() = %d, want 2000", got)
	}

	cfg.Query.RowCap = 250
	if got := cfg.GetQueryRowCap(); got != 250 {
		t.Errorf("GetQueryRowCap() = %d, want 250", got)
	}
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "aircraftdb.toml")

	if err := WriteDefault(configPath); err != nil {
		t.Fatalf("WriteDefault() failed: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() failed on written config: %v", err)
	}
	if cfg.Database.Path != DefaultDatabasePath {
		t.Errorf("written config database.path = %q, want %q", cfg.Database.Path, DefaultDatabasePath)
	}
	if cfg.Query.RowCap != DefaultQueryRowCap {
		t.Errorf("written config query.row_cap = %d, want %d", cfg.Query.RowCap, DefaultQueryRowCap)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# aircraftdb configuration") {
		t.Error("written config should start with a comment header")
	}

	// Rewriting rotates the previous file into .back1
	if err := WriteDefault(configPath); err != nil {
		t.Fatalf("second WriteDefault() failed: %v", err)
	}
	if _, err := os.Stat(configPath + ".back1"); err != nil {
		t.Errorf("expected backup file after rewrite: %v", err)
	}
}

func TestLoadFromFile_Override(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "aircraftdb.toml")

	content := "[database]\npath = \"/data/reference.db\"\n\n[query]\nrow_cap = 500\n"
	if err := os.WriteFile(configPath, []byte(content), DefaultFilePermissions); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if cfg.Database.Path != "/data/reference.db" {
		t.Errorf("database.path = %q, want /data/reference.db", cfg.Database.Path)
	}
	if cfg.Query.RowCap != 500 {
		t.Errorf("query.row_cap = %d, want 500", cfg.Query.RowCap)
	}
	// Untouched keys keep their defaults
	if cfg.Database.BusyTimeoutMS != DefaultBusyTimeoutMS {
		t.Errorf("busy_timeout_ms = %d, want default %d", cfg.Database.BusyTimeoutMS, DefaultBusyTimeoutMS)
	}
}

func TestUpdateDatabasePath(t *testing.T) {
	// Redirect HOME so UserConfigPath lands in a temp dir
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	if err := UpdateDatabasePath("/srv/faa/registry.db"); err != nil {
		t.Fatalf("UpdateDatabasePath() failed: %v", err)
	}

	cfg, err := LoadFromFile(filepath.Join(tmpHome, ".skyfly", "aircraftdb.toml"))
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}
	if cfg.Database.Path != "/srv/faa/registry.db" {
		t.Errorf("database.path = %q, want /srv/faa/registry.db", cfg.Database.Path)
	}
}
