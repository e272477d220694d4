package commands

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/docsite/internal/site"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	p := newProject(cfg, nil)
	s, err := p.site()
	if err != nil {
		return err
	}
	issues := p.validate(s)
	printIssues(g.out(), issues)
	if len(issues) > 0 {
		return site.Validate(s)
	}
	return nil
}

func printIssues(w io.Writer, issues []site.Issue) {
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(w, "Site configuration is valid")
		return
	}
	_, _ = fmt.Fprintf(w, "Site configuration has %d issue(s):\n", len(issues))
	for _, issue := range issues {
		_, _ = fmt.Fprintf(w, "  %s\n", issue)
	}
}
