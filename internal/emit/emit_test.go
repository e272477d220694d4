package emit

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/site"
)

func goldenSite() *site.Site {
	return &site.Site{
		Base:  "/",
		Title: "Golden",
		Lang:  "en-US",
		Head: []site.HeadTag{
			{Tag: "meta", Attrs: map[string]any{"name": "theme-color", "content": "#3c8772"}},
		},
		Locales: site.Locales{
			{Key: site.RootLocale, Entry: site.LocaleEntry{Label: "English", Lang: "en-US"}},
			{Key: "km", Entry: site.LocaleEntry{Label: "ភាសាខ្មែរ", Lang: "km-KH", Link: "/km/"}},
		},
		ThemeConfig: site.ThemeConfig{
			Nav: []site.NavItem{
				{Text: "Home", Link: "/"},
				{Text: "Guides", Items: []site.NavItem{{Text: "PostgreSQL", Link: "/guide/postgresql/"}}},
			},
			Sidebar: site.Sidebar{
				{Prefix: "/guide/postgresql/", Sections: []site.SidebarSection{
					{Text: "PostgreSQL", Items: []site.SidebarItem{{Text: "Overview", Link: "/guide/postgresql/"}}},
				}},
			},
		},
		Markdown: site.MarkdownOptions{LineNumbers: true},
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "config.js", Filename(site.FormatJS))
	assert.Equal(t, "config.json", Filename(site.FormatJSON))
	assert.Equal(t, "config.yaml", Filename(site.FormatYAML))
}

func TestWrite_GoldenJS(t *testing.T) {
	out := t.TempDir()
	path, err := Write(out, "", goldenSite(), site.FormatJS)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "config.js"), path)

	actual, err := os.ReadFile(path)
	require.NoError(t, err)

	golden := filepath.Join("testdata", "golden_site.js")
	want, err := os.ReadFile(golden)
	require.NoError(t, err)
	if !bytes.Equal(bytes.TrimSpace(want), bytes.TrimSpace(actual)) {
		if os.Getenv("UPDATE_GOLDEN") == "1" {
			require.NoError(t, os.WriteFile(golden, actual, 0o600))
			return
		}
		t.Fatalf("emitted config.js mismatch; run UPDATE_GOLDEN=1 go test ./internal/emit -run TestWrite_GoldenJS to accept\n--- got ---\n%s", actual)
	}
}

func TestWrite_RoundTripsDefault(t *testing.T) {
	out := filepath.Join(t.TempDir(), ".vitepress")
	for _, format := range []site.Format{site.FormatJSON, site.FormatYAML} {
		path, err := Write(out, "", site.Default(), format)
		require.NoError(t, err)

		f, err := os.Open(path)
		require.NoError(t, err)
		decoded, err := site.Decode(f, format)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		assert.Equal(t, site.Default(), decoded, string(format))
	}
}

func TestWrite_ReplacesAndSkipsUnchanged(t *testing.T) {
	out := t.TempDir()
	s := goldenSite()
	path, err := Write(out, "site.json", s, site.FormatJSON)
	require.NoError(t, err)

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))
	_, err = Write(out, "site.json", s, site.FormatJSON)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "unchanged output must not be rewritten")

	s.Title = "Changed"
	_, err = Write(out, "site.json", s, site.FormatJSON)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Changed"`)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
