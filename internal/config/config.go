// Package config handles the XDG configuration directory, the optional
// config.yaml file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	kconfig "github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
)

const (
	// AppName is the application directory name.
	AppName = "tasktrack"

	// ConfigFile is the optional settings filename inside the config directory.
	ConfigFile = "config.yaml"

	// DefaultBaseURL is used when no base URL is configured anywhere.
	DefaultBaseURL = "http://localhost:3000"

	// Environment overrides.
	EnvBaseURL = "TASKTRACK_BASE_URL"
	EnvTimeout = "TASKTRACK_TIMEOUT"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the root of the remote task service.
	BaseURL string

	// Timeout bounds each request to the task service. Zero means no timeout.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileSettings mirrors config.yaml.
type fileSettings struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Timeout string `yaml:"timeout" json:"timeout"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasktrack or $HOME/.config/tasktrack.
// Settings are layered: defaults, then config.yaml, then environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir, BaseURL: DefaultBaseURL}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// HasFile checks if config.yaml exists.
func (c *Config) HasFile() bool {
	_, err := os.Stat(c.FilePath())
	return err == nil
}

// Validate checks that the settings can be used to reach the task service.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base url %q: missing host", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %v: must not be negative", c.Timeout)
	}
	return nil
}

// loadFile applies config.yaml when present. A missing file is not an error.
func (c *Config) loadFile() error {
	if _, err := os.Stat(c.FilePath()); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	src := kconfig.New(kconfig.WithSource(file.NewSource(c.FilePath())))
	defer src.Close()

	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load %s: %w", ConfigFile, err)
	}

	var fc fileSettings
	if err := src.Scan(&fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if v := strings.TrimSpace(fc.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(fc.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: timeout: %w", ConfigFile, err)
		}
		c.Timeout = d
	}
	return nil
}

// loadEnv applies environment overrides.
func (c *Config) loadEnv() error {
	c.BaseURL = getEnvString(EnvBaseURL, c.BaseURL)

	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
