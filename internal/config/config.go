package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"whatfeeling/internal/palette"
)

// DirName is the per-workspace state directory.
const DirName = ".feel"

// Config holds all whatfeeling configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Emotions service (taxonomy)
	Service ServiceConfig `yaml:"service"`

	// Suggestion endpoint
	Suggest SuggestConfig `yaml:"suggest"`

	// Share card output
	Share ShareConfig `yaml:"share"`

	// Local journey history
	Journal JournalConfig `yaml:"journal"`

	// Presentation
	UX UXConfig `yaml:"ux"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig configures the taxonomy source.
type ServiceConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`

	// TaxonomyFile, when set, replaces the service with a local JSON/YAML file.
	TaxonomyFile string `yaml:"taxonomy_file,omitempty"`
}

// SuggestConfig configures the suggestion client.
type SuggestConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// ShareConfig configures where share cards go.
type ShareConfig struct {
	Clipboard   bool   `yaml:"clipboard"`    // try the clipboard before writing a file
	DownloadDir string `yaml:"download_dir"` // relative paths resolve against the workspace
}

// JournalConfig configures the journey history.
type JournalConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "whatfeeling",
		Version: "1.0.0",

		Service: ServiceConfig{
			BaseURL: "https://api.whatfeeling.com",
			Timeout: "15s",
		},

		Suggest: SuggestConfig{
			Enabled: true,
			BaseURL: "https://api.whatfeeling.com",
			Timeout: "30s",
		},

		Share: ShareConfig{
			Clipboard:   true,
			DownloadDir: "cards",
		},

		Journal: JournalConfig{
			Enabled:      true,
			DatabasePath: filepath.Join(DirName, "journal.db"),
		},

		UX: *DefaultUXConfig(),

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config file location for a workspace.
func DefaultPath(ws string) string {
	return filepath.Join(ws, DirName, "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if the file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
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

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if u := os.Getenv("WHATFEELING_API_URL"); u != "" {
		c.Service.BaseURL = u
		// The suggestion endpoint lives on the same service unless told otherwise.
		if os.Getenv("WHATFEELING_SUGGEST_URL") == "" {
			c.Suggest.BaseURL = u
		}
	}
	if u := os.Getenv("WHATFEELING_SUGGEST_URL"); u != "" {
		c.Suggest.BaseURL = u
	}
	if path := os.Getenv("WHATFEELING_DB"); path != "" {
		c.Journal.DatabasePath = path
	}
	if dir := os.Getenv("WHATFEELING_DOWNLOAD_DIR"); dir != "" {
		c.Share.DownloadDir = dir
	}
}

// Resolve makes p absolute against the workspace; absolute paths and
// ":memory:" pass through.
func Resolve(ws, p string) string {
	if p == "" || p == ":memory:" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(ws, p)
}

// GetServiceTimeout returns the taxonomy request timeout as a duration.
func (c *Config) GetServiceTimeout() time.Duration {
	d, err := time.ParseDuration(c.Service.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GetSuggestTimeout returns the suggestion request timeout as a duration.
func (c *Config) GetSuggestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Suggest.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Service.TaxonomyFile == "" {
		if err := validateURL("service.base_url", c.Service.BaseURL); err != nil {
			return err
		}
	}
	if c.Suggest.Enabled {
		if err := validateURL("suggest.base_url", c.Suggest.BaseURL); err != nil {
			return err
		}
	}

	for field, v := range map[string]string{
		"service.timeout": c.Service.Timeout,
		"suggest.timeout": c.Suggest.Timeout,
	} {
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err != nil || d <= 0 {
			return fmt.Errorf("invalid %s: %q", field, v)
		}
	}

	if c.Journal.Enabled && c.Journal.DatabasePath == "" {
		return fmt.Errorf("journal.database_path is required when the journal is enabled")
	}

	if err := c.UX.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https, got %q", field, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s: missing host", field)
	}
	return nil
}

// validStrategy is shared by the UX checks.
func validStrategy(field, name string) error {
	if _, err := palette.ByName(name); err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	return nil
}
