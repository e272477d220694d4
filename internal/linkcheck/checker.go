package linkcheck

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/site"
)

const (
	reasonNoPage      = "no page for route"
	reasonNotAbsolute = "site links must be absolute paths"
)

// Checker verifies links against a content index.
type Checker struct {
	Site  *site.Site
	Index *content.Index
	// ContentLinks also checks links found in page bodies.
	ContentLinks bool
	Recorder     metrics.Recorder

	now func() time.Time
}

// Run checks every internal link. When ctx is canceled the partial report is
// returned together with ctx.Err().
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	now := c.now
	if now == nil {
		now = time.Now
	}
	rec := c.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}

	report := &Report{RunID: uuid.NewString(), StartedAt: now(), Broken: []BrokenLink{}}
	finish := func(err error) (*Report, error) {
		report.FinishedAt = now()
		rec.AddLinksChecked(report.Checked)
		rec.AddLinksBroken(len(report.Broken))
		rec.ObserveLinkCheckDuration(report.Duration())
		slog.Info("Link check finished",
			logfields.RunID(report.RunID),
			logfields.Count(report.Checked),
			slog.Int("broken", len(report.Broken)),
			slog.Int("skipped", report.Skipped),
			logfields.Duration(report.Duration()))
		return report, err
	}

	c.Index.SetBase(c.Site.Base)

	for _, ref := range c.Site.Links() {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}
		c.checkSiteLink(report, ref)
	}

	for _, page := range c.Index.StaleFingerprints() {
		report.Stale = append(report.Stale, StalePage{
			Path: page.Path, Recorded: page.StoredFingerprint(), Computed: page.Fingerprint,
		})
		slog.Warn("Stale content fingerprint", logfields.Path(page.Path))
	}

	if c.ContentLinks {
		for _, page := range c.Index.Pages() {
			if err := ctx.Err(); err != nil {
				return finish(err)
			}
			if page.Err != nil {
				continue
			}
			for _, link := range page.Links {
				c.checkContentLink(report, page, link)
			}
		}
	}
	return finish(nil)
}

func (c *Checker) checkSiteLink(report *Report, ref site.LinkRef) {
	target := strings.TrimSpace(ref.Target)
	switch {
	case target == "" || strings.HasPrefix(target, "#") || content.IsExternal(target):
		report.Skipped++
		return
	case !strings.HasPrefix(target, "/"):
		report.Checked++
		report.Broken = append(report.Broken, BrokenLink{
			Source: Source(ref.Source), Path: ref.Path, Target: ref.Target, Reason: reasonNotAbsolute,
		})
		return
	}
	report.Checked++
	if !c.Index.Has(target) {
		report.Broken = append(report.Broken, BrokenLink{
			Source: Source(ref.Source), Path: ref.Path, Target: ref.Target, Reason: reasonNoPage,
		})
	}
}

func (c *Checker) checkContentLink(report *Report, page *content.Page, link content.Link) {
	resolved, ok := content.Resolve(page.Route, link.Destination)
	if !ok || isAsset(resolved) {
		report.Skipped++
		return
	}
	report.Checked++
	if !c.Index.Has(resolved) {
		report.Broken = append(report.Broken, BrokenLink{
			Source: SourceContent, Path: page.Path, Target: link.Destination, Reason: reasonNoPage,
		})
	}
}

// isAsset reports whether target names a static file rather than a page.
func isAsset(target string) bool {
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		target = target[:i]
	}
	switch ext := strings.ToLower(path.Ext(target)); ext {
	case "", ".md", ".html":
		return false
	default:
		return true
	}
}
