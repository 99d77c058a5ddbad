package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Backend names
const (
	BackendLocal  = "local"  // single-user SQLite file
	BackendServer = "server" // palette-server over HTTP
)

// DefaultBoardLimit caps boards per identity on the client side
const DefaultBoardLimit = 50

// Config holds user preferences
type Config struct {
	Backend    string `yaml:"backend" json:"backend"`         // local or server
	ServerURL  string `yaml:"server_url" json:"server_url"`   // palette-server base URL
	DBPath     string `yaml:"db_path" json:"db_path"`         // SQLite file for the local backend
	LocalUser  string `yaml:"local_user" json:"local_user"`   // Identity used by the local backend
	BoardLimit int    `yaml:"board_limit" json:"board_limit"` // Max boards per identity

	ConfirmDelete bool `yaml:"confirm_delete" json:"confirm_delete"` // Require confirmation for delete

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns ~/.palette
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".palette"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir, _ := Dir()
	logPath, dbPath := "", ""
	if dir != "" {
		logPath = filepath.Join(dir, "logs", "palette.log")
		dbPath = filepath.Join(dir, "boards.db")
	}

	return &Config{
		Backend:       getEnv("PALETTE_BACKEND", BackendLocal),
		ServerURL:     getEnv("PALETTE_SERVER_URL", "http://localhost:8080"),
		DBPath:        getEnv("PALETTE_DB_PATH", dbPath),
		LocalUser:     getEnv("PALETTE_LOCAL_USER", "local"),
		BoardLimit:    getEnvInt("PALETTE_BOARD_LIMIT", DefaultBoardLimit),
		ConfirmDelete: true,
		LogLevel:      getEnv("PALETTE_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("PALETTE_LOG_FILE", logPath),
		LogConsole:    getEnv("PALETTE_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// Path returns the config file location
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads config from ~/.palette/config.yaml
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads config from path, returning defaults if it does not exist
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later in odd ways
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal, BackendServer:
	default:
		return fmt.Errorf("invalid backend %q (want %q or %q)", c.Backend, BackendLocal, BackendServer)
	}
	if c.BoardLimit <= 0 {
		return fmt.Errorf("board_limit must be positive, got %d", c.BoardLimit)
	}
	if c.Backend == BackendLocal && c.LocalUser == "" {
		return fmt.Errorf("local_user is required for the local backend")
	}
	return nil
}

// Save saves config to ~/.palette/config.yaml
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
