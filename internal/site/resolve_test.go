package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocaleFor(t *testing.T) {
	s := Default()
	tests := []struct {
		path string
		want string
	}{
		{"/", RootLocale},
		{"/guide/postgresql/joins", RootLocale},
		{"/km/", "km"},
		{"/km", "km"},
		{"km/guide/postgresql/", "km"},
		{"/kmx/", RootLocale},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			key, entry := s.LocaleFor(tt.path)
			assert.Equal(t, tt.want, key)
			want, _ := s.Locales.Get(tt.want)
			assert.Equal(t, want.Lang, entry.Lang)
		})
	}
}

func TestLocaleFor_MatchesWholeSegments(t *testing.T) {
	s := Default()
	s.Locales[1].Entry.Link = "/km"

	key, _ := s.LocaleFor("/kmx/page")
	assert.Equal(t, RootLocale, key)
	key, _ = s.LocaleFor("/km/page")
	assert.Equal(t, "km", key)
	key, _ = s.LocaleFor("/km")
	assert.Equal(t, "km", key)
}

func TestActiveSidebar_LongestPrefix(t *testing.T) {
	s := Default()
	s.ThemeConfig.Sidebar = append(s.ThemeConfig.Sidebar, SidebarRoute{
		Prefix:   "/guide/",
		Sections: []SidebarSection{{Text: "All guides", Items: []SidebarItem{{Text: "Index", Link: "/guide/"}}}},
	})

	prefix, sections, ok := s.ActiveSidebar("/guide/postgresql/joins")
	require.True(t, ok)
	assert.Equal(t, "/guide/postgresql/", prefix)
	assert.Len(t, sections[0].Items, 11)

	prefix, _, ok = s.ActiveSidebar("/guide/postgresql")
	require.True(t, ok)
	assert.Equal(t, "/guide/postgresql/", prefix)

	prefix, _, ok = s.ActiveSidebar("/guide/golang/intro")
	require.True(t, ok)
	assert.Equal(t, "/guide/", prefix)

	_, _, ok = s.ActiveSidebar("/about")
	assert.False(t, ok)
}

func TestActiveSidebar_LocaleOverride(t *testing.T) {
	s := Default()
	prefix, sections, ok := s.ActiveSidebar("/km/guide/postgresql/indexes")
	require.True(t, ok)
	assert.Equal(t, "/km/guide/postgresql/", prefix)
	assert.Equal(t, "ទិដ្ឋភាពទូទៅ", sections[0].Items[0].Text)
	assert.Len(t, sections[0].Items, 11)

	// Khmer pages without a localized sidebar fall back to the site-wide table.
	s.ThemeConfig.Sidebar = append(s.ThemeConfig.Sidebar, SidebarRoute{Prefix: "/km/guide/webdev/", Sections: []SidebarSection{{Text: "Web"}}})
	prefix, _, ok = s.ActiveSidebar("/km/guide/webdev/html")
	require.True(t, ok)
	assert.Equal(t, "/km/guide/webdev/", prefix)
}

func TestLinks(t *testing.T) {
	s := Default()
	refs := s.Links()

	bySource := map[LinkSource]int{}
	for _, r := range refs {
		require.NotEmpty(t, r.Target, r.Path)
		bySource[r.Source]++
	}
	// root nav: Home, 4 guides, About; km nav: home, 2 guides, about
	assert.Equal(t, 6+4, bySource[SourceNav])
	assert.Equal(t, 11+6+6+5+11+3, bySource[SourceSidebar])
	assert.Equal(t, 1, bySource[SourceLocale])

	assert.Equal(t, LinkRef{Path: "themeConfig.nav[0].link", Source: SourceNav, Target: "/"}, refs[0])
	assert.Equal(t, "themeConfig.nav[1].items[0].link", refs[1].Path)
}
