package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/linkcheck"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Record bool `help:"Record the run in linkcheck.history_db"`
}

func (c *CheckCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	return c.run(context.Background(), g.out(), newProject(cfg, nil))
}

func (c *CheckCmd) run(ctx context.Context, out io.Writer, p *project) error {
	s, err := p.site()
	if err != nil {
		return err
	}
	issues := p.validate(s)
	printIssues(out, issues)

	report, idx, err := p.check(ctx, s)
	if report != nil {
		printReport(out, report)
	}
	if err != nil {
		return err
	}
	for _, page := range idx.Errors() {
		_, _ = fmt.Fprintf(out, "  unparsable page %s: %v\n", page.Path, page.Err)
	}
	for _, stale := range report.Stale {
		_, _ = fmt.Fprintf(out, "  stale fingerprint %s (recorded %s, content %s)\n", stale.Path, stale.Recorded, stale.Computed)
	}

	if c.Record {
		if err := p.record(ctx, report); err != nil {
			return err
		}
	}

	if len(issues) > 0 {
		return site.Validate(s)
	}
	if !report.OK() {
		return errors.LinkCheckError(fmt.Sprintf("%d broken link(s)", len(report.Broken))).
			WithContext("run_id", report.RunID).Build()
	}
	return nil
}

func printReport(w io.Writer, r *linkcheck.Report) {
	_, _ = fmt.Fprintf(w, "Checked %d link(s), skipped %d, broken %d (run %s)\n",
		r.Checked, r.Skipped, len(r.Broken), r.RunID)
	if r.OK() {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "  SOURCE\tLOCATION\tTARGET\tREASON")
	for _, b := range r.Broken {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", b.Source, b.Path, b.Target, b.Reason)
	}
	_ = tw.Flush()
}
