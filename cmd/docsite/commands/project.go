package commands

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/emit"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/gitinfo"
	"git.home.luguber.info/inful/docsite/internal/history"
	"git.home.luguber.info/inful/docsite/internal/linkcheck"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// project ties a loaded configuration to the operations the commands share.
type project struct {
	cfg      *config.Config
	recorder metrics.Recorder
}

func newProject(cfg *config.Config, rec metrics.Recorder) *project {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &project{cfg: cfg, recorder: rec}
}

func (p *project) contentDir() string {
	return p.cfg.ResolvePath(p.cfg.Content.Dir)
}

// site loads the site definition and fills in the git edit link when enabled.
func (p *project) site() (*site.Site, error) {
	s, err := config.LoadSite(p.cfg)
	if err != nil {
		return nil, err
	}
	if p.cfg.Git.DetectEditLink {
		p.applyEditLink(s)
	}
	return s, nil
}

func (p *project) applyEditLink(s *site.Site) {
	dir := p.contentDir()
	repo, err := gitinfo.Open(dir)
	if err != nil {
		slog.Warn("Edit link detection skipped", logfields.Path(dir), logfields.Error(err))
		return
	}
	remote, err := repo.RemoteURL("origin")
	if err != nil {
		slog.Warn("Edit link detection skipped", logfields.Error(err))
		return
	}
	rel, err := repo.RelPath(dir)
	if err != nil {
		slog.Warn("Edit link detection skipped", logfields.Error(err))
		return
	}
	pattern, err := gitinfo.EditLinkPattern(remote, p.cfg.Git.Branch, rel)
	if err != nil {
		slog.Warn("Edit link detection skipped", logfields.URL(remote), logfields.Error(err))
		return
	}
	if gitinfo.ApplyEditLink(s, pattern) {
		slog.Info("Detected edit link", logfields.URL(pattern))
	}
}

// lastUpdated finds the page serving pagePath and the time of the last commit
// touching it. The time is zero when the content tree is not under git.
func (p *project) lastUpdated(s *site.Site, pagePath string) (*content.Page, time.Time, bool) {
	dir := p.contentDir()
	idx, err := content.Scan(dir, p.cfg.Content.Extensions)
	if err != nil {
		slog.Debug("Page lookup skipped", logfields.Path(dir), logfields.Error(err))
		return nil, time.Time{}, false
	}
	idx.SetBase(s.Base)
	if !strings.HasPrefix(pagePath, "/") {
		pagePath = "/" + pagePath
	}
	page, ok := idx.Lookup(pagePath)
	if !ok {
		return nil, time.Time{}, false
	}
	repo, err := gitinfo.Open(dir)
	if err != nil {
		slog.Debug("No git history for content", logfields.Path(dir), logfields.Error(err))
		return page, time.Time{}, true
	}
	when, err := repo.LastModified(filepath.Join(dir, filepath.FromSlash(page.Path)))
	if err != nil {
		slog.Debug("No commit for page", logfields.Path(page.Path), logfields.Error(err))
		return page, time.Time{}, true
	}
	return page, when, true
}

// validate checks s and records the issue count.
func (p *project) validate(s *site.Site) []site.Issue {
	issues := site.Check(s)
	p.recorder.SetValidationIssues(len(issues))
	return issues
}

// emit validates the site and writes it to dir. An empty filename uses the
// configured one for the configured format, or the default name otherwise.
func (p *project) emit(dir, filename string, format site.Format) (string, error) {
	s, err := p.site()
	if err != nil {
		return "", err
	}
	if issues := p.validate(s); len(issues) > 0 {
		for _, issue := range issues {
			slog.Warn("Site configuration issue", logfields.Path(issue.Path), slog.String("message", issue.Message))
		}
		return "", site.Validate(s)
	}
	if dir == "" {
		dir = p.cfg.ResolvePath(p.cfg.Output.Directory)
	}
	if filename == "" && format == p.cfg.Output.Format {
		filename = p.cfg.Output.Filename
	}
	path, err := emit.Write(dir, filename, s, format)
	p.recorder.IncEmit(string(format), metrics.Result(err))
	return path, err
}

// check scans the content tree and runs the link checker. Broken links are
// published when a NATS URL is configured.
func (p *project) check(ctx context.Context, s *site.Site) (*linkcheck.Report, *content.Index, error) {
	idx, err := content.Scan(p.contentDir(), p.cfg.Content.Extensions)
	if err != nil {
		return nil, nil, err
	}
	checker := &linkcheck.Checker{
		Site:         s,
		Index:        idx,
		ContentLinks: p.cfg.LinkCheck.ContentLinksEnabled(),
		Recorder:     p.recorder,
	}
	report, err := checker.Run(ctx)
	if err != nil {
		return report, idx, errors.WrapError(err, errors.CategoryRuntime, "link check interrupted").Build()
	}
	if err := p.publish(ctx, report); err != nil {
		return report, idx, err
	}
	return report, idx, nil
}

func (p *project) publish(ctx context.Context, report *linkcheck.Report) error {
	if p.cfg.LinkCheck.NATSURL == "" || report.OK() {
		return nil
	}
	pub, err := linkcheck.NewNATSPublisher(p.cfg.LinkCheck.NATSURL, p.cfg.LinkCheck.Subject)
	if err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, "cannot publish broken links").
			WithContext("url", p.cfg.LinkCheck.NATSURL).Build()
	}
	defer func() { _ = pub.Close() }()
	if err := linkcheck.PublishReport(ctx, pub, report); err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, "failed to publish broken links").
			WithContext("subject", p.cfg.LinkCheck.Subject).Build()
	}
	return nil
}

func (p *project) historyPath() string {
	if p.cfg.LinkCheck.HistoryDB == "" {
		return ""
	}
	return filepath.Clean(p.cfg.ResolvePath(p.cfg.LinkCheck.HistoryDB))
}

// record stores report in the history database.
func (p *project) record(ctx context.Context, report *linkcheck.Report) error {
	path := p.historyPath()
	if path == "" {
		return errors.ConfigError("linkcheck.history_db is not configured").Build()
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	if err := store.Record(ctx, report); err != nil {
		return err
	}
	slog.Info("Recorded check run", logfields.RunID(report.RunID), logfields.Path(path))
	return nil
}
