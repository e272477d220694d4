package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/logging"
)

// Global carries state shared by all subcommands.
type Global struct {
	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsite.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init     InitCmd     `cmd:"" help:"Write an example docsite.yaml and site.yaml"`
	Emit     EmitCmd     `cmd:"" help:"Write the site configuration file"`
	Validate ValidateCmd `cmd:"" help:"Check the site configuration for issues"`
	Check    CheckCmd    `cmd:"" help:"Validate and verify links against the content tree"`
	Resolve  ResolveCmd  `cmd:"" help:"Show the locale and sidebar selected for a page path"`
	Watch    WatchCmd    `cmd:"" help:"Re-emit on changes, run scheduled link checks and serve metrics"`
	History  HistoryCmd  `cmd:"" help:"List recorded link check runs"`

	logCloser io.Closer `kong:"-"`
}

// AfterApply runs after flag parsing; it installs a console logger until the
// configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := logging.Level(config.LogLevelInfo, c.Verbose)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// LoadConfig loads the configuration file and reconfigures logging from it. A
// missing default configuration file falls back to built-in defaults.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		if c.Config != config.DefaultConfigFile || !errors.HasCategory(err, errors.CategoryConfig) || fileExists(c.Config) {
			return nil, err
		}
		slog.Debug("No configuration file, using defaults", logfields.Path(c.Config))
		cfg = config.Defaults()
	}

	logger, closer, err := logging.New(logging.Options{Config: cfg.Logging, Verbose: c.Verbose})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to set up logging").
			WithContext("path", cfg.Logging.File).Build()
	}
	_ = c.Close()
	c.logCloser = closer
	slog.SetDefault(logger)
	return cfg, nil
}

// Close releases the log file sink, if any.
func (c *CLI) Close() error {
	if c.logCloser == nil {
		return nil
	}
	err := c.logCloser.Close()
	c.logCloser = nil
	return err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
