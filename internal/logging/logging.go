// Package logging builds the slog logger used by the docsite CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"git.home.luguber.info/inful/docsite/internal/config"
)

// Options controls logger construction.
type Options struct {
	Config  config.LoggingConfig
	Verbose bool
	// Console receives log output in addition to the optional file sink. Defaults to os.Stderr.
	Console io.Writer
}

// New returns a logger for opts and a closer for the rotating file sink, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var (
		out    = console
		closer io.Closer = nopCloser{}
	)
	if opts.Config.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Config.File), 0o750); err != nil {
			return nil, nil, err
		}
		rotating := &lumberjack.Logger{
			Filename:   opts.Config.File,
			MaxSize:    opts.Config.MaxSizeMB,
			MaxBackups: opts.Config.MaxBackups,
			MaxAge:     opts.Config.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(console, rotating)
		closer = rotating
	}

	handlerOpts := &slog.HandlerOptions{Level: Level(opts.Config.Level, opts.Verbose)}
	var handler slog.Handler
	if opts.Config.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}
	return slog.New(handler), closer, nil
}

// Level maps a configured level to slog. Verbose always wins.
func Level(level config.LogLevel, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch config.NormalizeLogLevel(string(level)) {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
