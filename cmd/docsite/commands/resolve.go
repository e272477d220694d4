package commands

import (
	"fmt"
	"time"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	PagePath string `arg:"" help:"Page path, e.g. /km/guide/postgresql/install"`
}

func (r *ResolveCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	p := newProject(cfg, nil)
	s, err := p.site()
	if err != nil {
		return err
	}

	out := g.out()
	key, loc := s.LocaleFor(r.PagePath)
	_, _ = fmt.Fprintf(out, "locale: %s (%s, %s)\n", key, loc.Label, loc.Lang)

	switch page, when, ok := p.lastUpdated(s, r.PagePath); {
	case !ok:
		_, _ = fmt.Fprintln(out, "page: none")
	case when.IsZero():
		_, _ = fmt.Fprintf(out, "page: %s\nlast updated: unknown\n", page.Path)
	default:
		_, _ = fmt.Fprintf(out, "page: %s\nlast updated: %s\n", page.Path, when.UTC().Format(time.RFC3339))
	}

	prefix, sections, ok := s.ActiveSidebar(r.PagePath)
	if !ok {
		_, _ = fmt.Fprintln(out, "sidebar: none")
		return nil
	}
	_, _ = fmt.Fprintf(out, "sidebar: %s\n", prefix)
	for _, sec := range sections {
		_, _ = fmt.Fprintf(out, "  %s\n", sec.Text)
		for _, item := range sec.Items {
			_, _ = fmt.Fprintf(out, "    - %s -> %s\n", item.Text, item.Link)
		}
	}
	return nil
}
