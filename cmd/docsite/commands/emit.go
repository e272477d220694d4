package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// EmitCmd implements the 'emit' command.
type EmitCmd struct {
	Output string `short:"o" help:"Output directory (defaults to output.directory)"`
	Format string `short:"f" help:"Output format: js, json or yaml (defaults to output.format)"`
}

func (e *EmitCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	format := cfg.Output.Format
	if e.Format != "" {
		if format, err = site.ParseFormat(e.Format); err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "invalid --format").Build()
		}
	}

	path, err := newProject(cfg, nil).emit(e.Output, "", format)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.out(), "Wrote %s\n", path)
	return nil
}
