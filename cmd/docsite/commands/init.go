package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/emit"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing files"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	out := g.out()
	sitePath := filepath.Join(filepath.Dir(root.Config), config.DefaultSiteFile)
	if fileExists(sitePath) && !i.Force {
		return errors.ConfigError("site file already exists (use --force to overwrite)").
			WithContext("path", sitePath).Build()
	}

	_, _ = fmt.Fprintln(out, "Initializing docsite project")
	_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", root.Config)
	if err := config.Init(root.Config, i.Force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintf(out, "Writing site definition to %s\n", sitePath)
	if _, err := emit.Write(filepath.Dir(sitePath), filepath.Base(sitePath), site.Default(), site.FormatYAML); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	_, _ = fmt.Fprintln(out, "initialized successfully")
	return nil
}
