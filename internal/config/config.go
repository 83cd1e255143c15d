// Package config provides configuration management for meetmind. It supports
// loading configuration from a YAML file and environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pablasso/meetmind/internal/logging"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultServerURL  = "http://localhost:8000"
	DefaultResetDelay = 3 * time.Second
	DefaultLogLevel   = logging.LevelInfo
	DefaultConfigDir  = ".meetmind"
	DefaultConfigFile = "config.yaml"
	DefaultLogFile    = "meetmind.log"
)

// Config holds the client configuration.
type Config struct {
	// ServerURL is the base URL of the analysis server.
	ServerURL string `yaml:"server_url"`

	// Timeout bounds the upload request. Zero waits indefinitely.
	Timeout time.Duration `yaml:"timeout"`

	// ResetDelay is how long a failure is shown before returning to idle.
	ResetDelay time.Duration `yaml:"reset_delay"`

	// ExportDir is where meeting_analysis.json is written. Empty means the
	// working directory.
	ExportDir string `yaml:"export_dir,omitempty"`

	// LogLevel sets the minimum log level.
	LogLevel logging.Level `yaml:"log_level"`

	// LogFile is the log destination. Supports ~ for home directory expansion.
	LogFile string `yaml:"log_file,omitempty"`

	// LogJSON switches logs to JSON lines.
	LogJSON bool `yaml:"log_json,omitempty"`

	// Debug forces debug logging.
	Debug bool `yaml:"debug,omitempty"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  DefaultServerURL,
		ResetDelay: DefaultResetDelay,
		LogLevel:   DefaultLogLevel,
	}
}

// ConfigDir returns the configuration directory path.
// Uses $MEETMIND_CONFIG_DIR if set, otherwise ~/.meetmind
func ConfigDir() (string, error) {
	if dir := os.Getenv("MEETMIND_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// Load loads configuration from file and environment variables.
// Configuration is loaded in this order (later sources override earlier):
// 1. Default values
// 2. Config file (~/.meetmind/config.yaml or $MEETMIND_CONFIG_DIR/config.yaml)
// 3. Environment variables (MEETMIND_*)
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.LogFile == "" {
		if dir, err := ConfigDir(); err == nil {
			cfg.LogFile = filepath.Join(dir, DefaultLogFile)
		}
	}
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.ExportDir = expandPath(cfg.ExportDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// Durations are written as strings ("90s") in the file.
	type configFile struct {
		ServerURL  string        `yaml:"server_url"`
		Timeout    string        `yaml:"timeout"`
		ResetDelay string        `yaml:"reset_delay"`
		ExportDir  string        `yaml:"export_dir"`
		LogLevel   logging.Level `yaml:"log_level"`
		LogFile    string        `yaml:"log_file"`
		LogJSON    bool          `yaml:"log_json"`
		Debug      bool          `yaml:"debug"`
	}

	var fileCfg configFile
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.ServerURL != "" {
		cfg.ServerURL = fileCfg.ServerURL
	}
	if fileCfg.Timeout != "" {
		timeout, err := time.ParseDuration(fileCfg.Timeout)
		if err != nil {
			return fmt.Errorf("parsing timeout: %w", err)
		}
		cfg.Timeout = timeout
	}
	if fileCfg.ResetDelay != "" {
		delay, err := time.ParseDuration(fileCfg.ResetDelay)
		if err != nil {
			return fmt.Errorf("parsing reset_delay: %w", err)
		}
		cfg.ResetDelay = delay
	}
	if fileCfg.ExportDir != "" {
		cfg.ExportDir = fileCfg.ExportDir
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogFile != "" {
		cfg.LogFile = fileCfg.LogFile
	}
	cfg.LogJSON = fileCfg.LogJSON
	cfg.Debug = fileCfg.Debug

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("MEETMIND_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}

	if v := os.Getenv("MEETMIND_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing MEETMIND_TIMEOUT: %w", err)
		}
		cfg.Timeout = timeout
	}

	if v := os.Getenv("MEETMIND_RESET_DELAY"); v != "" {
		delay, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing MEETMIND_RESET_DELAY: %w", err)
		}
		cfg.ResetDelay = delay
	}

	if v := os.Getenv("MEETMIND_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}

	if v := os.Getenv("MEETMIND_LOG_LEVEL"); v != "" {
		cfg.LogLevel = logging.Level(strings.ToLower(v))
	}

	if v := os.Getenv("MEETMIND_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	if v := os.Getenv("MEETMIND_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}

	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server_url %q: scheme must be http or https", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server_url %q: missing host", c.ServerURL)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	if c.ResetDelay <= 0 {
		return fmt.Errorf("reset_delay must be positive")
	}

	if !c.LogLevel.IsValid() {
		return fmt.Errorf("invalid log_level: %q (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// EffectiveLogLevel returns the level to log at, honoring Debug.
func (c *Config) EffectiveLogLevel() logging.Level {
	if c.Debug {
		return logging.LevelDebug
	}
	return c.LogLevel
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	configDir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("getting config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	out := map[string]any{
		"server_url":  cfg.ServerURL,
		"reset_delay": cfg.ResetDelay.String(),
		"log_level":   string(cfg.LogLevel),
	}
	if cfg.Timeout > 0 {
		out["timeout"] = cfg.Timeout.String()
	}
	if cfg.ExportDir != "" {
		out["export_dir"] = cfg.ExportDir
	}
	if cfg.LogFile != "" {
		out["log_file"] = cfg.LogFile
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	configPath := filepath.Join(configDir, DefaultConfigFile)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
