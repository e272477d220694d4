package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// CurrentVersion is the only configuration schema version understood by this build.
const CurrentVersion = "1.0"

// Config represents the docsite tool configuration (docsite.yaml).
type Config struct {
	Version   string          `yaml:"version"`
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	LinkCheck LinkCheckConfig `yaml:"linkcheck"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Git       GitConfig       `yaml:"git"`

	// baseDir is the directory of the loaded file; relative paths resolve against it.
	baseDir string
}

// SiteConfig points at an optional site definition file. When File is empty the
// built-in site configuration is used.
type SiteConfig struct {
	File string `yaml:"file,omitempty"`
}

// ContentConfig describes the Markdown content tree.
type ContentConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions,omitempty"`
}

// OutputConfig controls where and how the site configuration is emitted.
type OutputConfig struct {
	Directory string      `yaml:"directory"`
	Format    site.Format `yaml:"format"`
	Filename  string      `yaml:"filename,omitempty"`
}

// LoggingConfig configures the slog handler and optional rotating log file.
type LoggingConfig struct {
	Level      LogLevel  `yaml:"level"`
	Format     LogFormat `yaml:"format"`
	File       string    `yaml:"file,omitempty"`
	MaxSizeMB  int       `yaml:"max_size_mb,omitempty"`
	MaxBackups int       `yaml:"max_backups,omitempty"`
	MaxAgeDays int       `yaml:"max_age_days,omitempty"`
}

// LinkCheckConfig configures link verification, event publishing and run history.
type LinkCheckConfig struct {
	ContentLinks *bool  `yaml:"content_links,omitempty"`
	NATSURL      string `yaml:"nats_url,omitempty"`
	Subject      string `yaml:"subject,omitempty"`
	HistoryDB    string `yaml:"history_db,omitempty"`
}

// ContentLinksEnabled reports whether links inside Markdown bodies are checked (default true).
func (l LinkCheckConfig) ContentLinksEnabled() bool {
	return l.ContentLinks == nil || *l.ContentLinks
}

// ScheduleConfig configures periodic link checks in watch mode.
type ScheduleConfig struct {
	CheckInterval string `yaml:"check_interval,omitempty"`
}

// Interval parses CheckInterval. Zero means scheduling is disabled.
func (s ScheduleConfig) Interval() (time.Duration, error) {
	if s.CheckInterval == "" {
		return 0, nil
	}
	return time.ParseDuration(s.CheckInterval)
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Listen string `yaml:"listen,omitempty"`
	Path   string `yaml:"path,omitempty"`
}

// GitConfig controls repository inspection for edit links.
type GitConfig struct {
	DetectEditLink bool   `yaml:"detect_edit_link"`
	Branch         string `yaml:"branch,omitempty"`
}

// Load loads configuration from the specified file, applying .env files,
// environment expansion, defaults and validation.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "cannot resolve configuration path").Build()
	}
	baseDir := filepath.Dir(absPath)
	loadEnvFiles(baseDir)

	// #nosec G304 -- path supplied by the operator
	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").WithContext("path", configPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").WithContext("path", configPath).Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid configuration").WithContext("path", configPath).Build()
	}
	cfg.baseDir = baseDir
	return cfg, nil
}

// Parse decodes configuration YAML, then applies defaults and validation.
// Relative paths in the result resolve against the working directory.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported configuration version: %s (expected %s)", cfg.Version, CurrentVersion)
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Defaults returns a configuration with every default applied, used when no
// configuration file exists.
func Defaults() *Config {
	cfg := &Config{Version: CurrentVersion}
	_ = applyDefaults(cfg)
	return cfg
}

// ResolvePath makes p absolute relative to the configuration file's directory.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

// OutputPath is the full path of the emitted site configuration file.
func (c *Config) OutputPath() string {
	return filepath.Join(c.ResolvePath(c.Output.Directory), c.Output.Filename)
}
