package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"codemap/internal/verifier"
)

// Config represents the complete codemap configuration
type Config struct {
	Workers        int           `json:"workers" mapstructure:"workers" yaml:"workers"`
	DriftTolerance int           `json:"drift_tolerance" mapstructure:"drift_tolerance" yaml:"drift_tolerance"`
	History        HistoryConfig `json:"history" mapstructure:"history" yaml:"history"`
	Exclude        []string      `json:"exclude" mapstructure:"exclude" yaml:"exclude"`
	ProfilesPath   string        `json:"profiles_path" mapstructure:"profiles_path" yaml:"profiles_path"`
}

// HistoryConfig controls run history recording
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled" yaml:"enabled"`
	Path    string `json:"path" mapstructure:"path" yaml:"path"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Workers:        runtime.NumCPU(),
		DriftTolerance: verifier.DefaultDriftTolerance,
		History: HistoryConfig{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
		Exclude:      []string{".git", "node_modules", "vendor", "dist"},
		ProfilesPath: "",
	}
}

// defaultHistoryPath places the run history under the user's home
// directory, falling back to the working directory when home is unknown.
func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".codemap", "history.db")
	}
	return filepath.Join(home, ".codemap", "history.db")
}

// Load reads the configuration. An explicit path must exist; with an
// empty path, .codemap.yaml is searched in the working directory and
// the home directory, and absence just means defaults. CODEMAP_*
// environment variables override file values either way.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("drift_tolerance", defaults.DriftTolerance)
	v.SetDefault("history.enabled", defaults.History.Enabled)
	v.SetDefault("history.path", defaults.History.Path)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("profiles_path", defaults.ProfilesPath)

	v.SetEnvPrefix("CODEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(".codemap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return &ConfigError{Field: "workers", Message: "must be at least 1"}
	}
	if c.DriftTolerance < 0 {
		return &ConfigError{Field: "drift_tolerance", Message: "must not be negative"}
	}
	if c.History.Enabled && c.History.Path == "" {
		return &ConfigError{Field: "history.path", Message: "required when history is enabled"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
