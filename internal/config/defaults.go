package config

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/site"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// ContentDefaultApplier handles content tree defaults.
type ContentDefaultApplier struct{}

func (ContentDefaultApplier) Domain() string { return "content" }

func (ContentDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = "docs"
	}
	if len(cfg.Content.Extensions) == 0 {
		cfg.Content.Extensions = []string{".md"}
	}
	for i, ext := range cfg.Content.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Content.Extensions[i] = ext
	}
	return nil
}

// OutputDefaultApplier handles output defaults. The filename follows the format
// unless explicitly configured.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = ".vitepress"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = site.FormatJS
	} else {
		f, err := site.ParseFormat(string(cfg.Output.Format))
		if err != nil {
			return err
		}
		cfg.Output.Format = f
	}
	if cfg.Output.Filename == "" {
		cfg.Output.Filename = "config." + cfg.Output.Format.Extension()
	}
	return nil
}

// LoggingDefaultApplier handles logging defaults.
type LoggingDefaultApplier struct{}

func (LoggingDefaultApplier) Domain() string { return "logging" }

func (LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
	if cfg.Logging.File != "" {
		if cfg.Logging.MaxSizeMB <= 0 {
			cfg.Logging.MaxSizeMB = 10
		}
		if cfg.Logging.MaxBackups <= 0 {
			cfg.Logging.MaxBackups = 3
		}
		if cfg.Logging.MaxAgeDays <= 0 {
			cfg.Logging.MaxAgeDays = 28
		}
	}
	return nil
}

// LinkCheckDefaultApplier handles link-check defaults.
type LinkCheckDefaultApplier struct{}

func (LinkCheckDefaultApplier) Domain() string { return "linkcheck" }

func (LinkCheckDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.LinkCheck.Subject == "" {
		cfg.LinkCheck.Subject = "docsite.links.broken"
	}
	return nil
}

// MetricsDefaultApplier handles metrics and git defaults.
type MetricsDefaultApplier struct{}

func (MetricsDefaultApplier) Domain() string { return "metrics" }

func (MetricsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Git.Branch == "" {
		cfg.Git.Branch = "main"
	}
	return nil
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		ContentDefaultApplier{},
		OutputDefaultApplier{},
		LoggingDefaultApplier{},
		LinkCheckDefaultApplier{},
		MetricsDefaultApplier{},
	}
}

func applyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers() {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("%s: %w", applier.Domain(), err)
		}
	}
	return nil
}
