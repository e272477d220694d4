package linkcheck

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// fullIndex returns an index holding a page for every link target of s.
func fullIndex(t *testing.T, s *site.Site) *content.Index {
	t.Helper()
	var pages []*content.Page
	for _, ref := range s.Links() {
		if ref.Target == "" || content.IsExternal(ref.Target) {
			continue
		}
		pages = append(pages, &content.Page{Path: ref.Target, Route: ref.Target})
	}
	return content.NewIndex(pages...)
}

func minimalSite() *site.Site {
	return &site.Site{
		Base:  "/",
		Title: "Test",
		Lang:  "en-US",
		Locales: site.Locales{
			{Key: site.RootLocale, Entry: site.LocaleEntry{Label: "English", Lang: "en-US"}},
		},
		ThemeConfig: site.ThemeConfig{
			Nav: []site.NavItem{
				{Text: "Home", Link: "/"},
				{Text: "Guide", Link: "/guide/"},
				{Text: "Missing", Link: "/missing"},
				{Text: "Relative", Link: "guide/"},
				{Text: "GitHub", Link: "https://github.com/devtutorials-km/tutorials"},
			},
		},
	}
}

func TestChecker_DefaultSiteAgainstFullTree(t *testing.T) {
	s := site.Default()
	c := &Checker{Site: s, Index: fullIndex(t, s)}

	report, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK(), "%v", report.Broken)
	assert.Equal(t, len(s.Links()), report.Checked+report.Skipped)
	_, err = uuid.Parse(report.RunID)
	require.NoError(t, err)
}

func TestChecker_ReportsBrokenSiteLinks(t *testing.T) {
	idx := content.NewIndex(
		&content.Page{Path: "index.md", Route: "/"},
		&content.Page{Path: "guide/index.md", Route: "/guide/"},
	)
	c := &Checker{Site: minimalSite(), Index: idx}

	report, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Checked)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []BrokenLink{
		{Source: SourceNav, Path: "themeConfig.nav[2].link", Target: "/missing", Reason: reasonNoPage},
		{Source: SourceNav, Path: "themeConfig.nav[3].link", Target: "guide/", Reason: reasonNotAbsolute},
	}, report.Broken)
}

func TestChecker_ContentLinks(t *testing.T) {
	idx := content.NewIndex(
		&content.Page{Path: "index.md", Route: "/"},
		&content.Page{Path: "guide/index.md", Route: "/guide/", Links: []content.Link{
			{Kind: content.LinkKindInline, Destination: "./install.md"},
			{Kind: content.LinkKindInline, Destination: "./upgrade"},
			{Kind: content.LinkKindImage, Destination: "./diagram.png"},
			{Kind: content.LinkKindInline, Destination: "#intro"},
			{Kind: content.LinkKindAuto, Destination: "https://www.postgresql.org"},
		}},
		&content.Page{Path: "guide/install.md", Route: "/guide/install"},
		&content.Page{Path: "guide/bad.md", Route: "/guide/bad", Err: assert.AnError, Links: []content.Link{
			{Kind: content.LinkKindInline, Destination: "/nowhere"},
		}},
	)
	s := minimalSite()
	s.ThemeConfig.Nav = s.ThemeConfig.Nav[:2]

	report, err := (&Checker{Site: s, Index: idx, ContentLinks: true}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.Checked)
	assert.Equal(t, 3, report.Skipped)
	require.Len(t, report.Broken, 1)
	assert.Equal(t, BrokenLink{Source: SourceContent, Path: "guide/index.md", Target: "./upgrade", Reason: reasonNoPage}, report.Broken[0])
}

func TestChecker_BaseIsStripped(t *testing.T) {
	s := minimalSite()
	s.Base = "/tutorials/"
	s.ThemeConfig.Nav = []site.NavItem{{Text: "Guide", Link: "/tutorials/guide/"}}
	idx := content.NewIndex(&content.Page{Path: "guide/index.md", Route: "/guide/"})

	report, err := (&Checker{Site: s, Index: idx}).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK())
}

func TestChecker_CanceledContextReturnsPartialReport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := site.Default()
	report, err := (&Checker{Site: s, Index: fullIndex(t, s)}).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Zero(t, report.Checked)
	assert.False(t, report.FinishedAt.IsZero())
}

func TestChecker_RecordsMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	calls := 0
	c := &Checker{
		Site:     minimalSite(),
		Index:    content.NewIndex(&content.Page{Path: "index.md", Route: "/"}),
		Recorder: rec,
		now: func() time.Time {
			calls++
			return start.Add(time.Duration(calls) * time.Second)
		},
	}

	report, err := c.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Second, report.Duration())

	n, err := testutil.GatherAndCount(reg, "docsite_links_broken_total", "docsite_links_checked_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestChecker_ReportsStaleFingerprints(t *testing.T) {
	s := minimalSite()
	s.ThemeConfig.Nav = s.ThemeConfig.Nav[:1]
	idx := content.NewIndex(
		&content.Page{Path: "index.md", Route: "/", Fingerprint: "abc", Frontmatter: map[string]any{"fingerprint": "abc"}},
		&content.Page{Path: "guide.md", Route: "/guide", Fingerprint: "new", Frontmatter: map[string]any{"fingerprint": "old"}},
		&content.Page{Path: "plain.md", Route: "/plain", Fingerprint: "xyz"},
	)

	report, err := (&Checker{Site: s, Index: idx}).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.OK(), "stale pages do not fail the run")
	assert.Equal(t, []StalePage{{Path: "guide.md", Recorded: "old", Computed: "new"}}, report.Stale)
}
