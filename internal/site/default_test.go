package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_KhmerLocaleLink(t *testing.T) {
	s := Default()
	km, ok := s.Locales.Get("km")
	require.True(t, ok)
	assert.Equal(t, "/km/", km.Link)

	root, ok := s.Locales.Get(RootLocale)
	require.True(t, ok)
	assert.Empty(t, root.Link)
	assert.Equal(t, []string{"root", "km"}, s.Locales.Keys())
}

func TestDefault_PostgresSidebarHasOverviewAndTenChapters(t *testing.T) {
	sections, ok := Default().ThemeConfig.Sidebar.Get("/guide/postgresql/")
	require.True(t, ok)
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Items, 11)
	assert.Equal(t, "Overview", sections[0].Items[0].Text)
	assert.Equal(t, "/guide/postgresql/", sections[0].Items[0].Link)
	assert.Equal(t, "/guide/postgresql/backup", sections[0].Items[10].Link)
}

func TestDefault_PassesCheck(t *testing.T) {
	assert.Empty(t, Check(Default()))
	assert.NoError(t, Validate(Default()))
}

func TestDefault_ReturnsIndependentValues(t *testing.T) {
	a := Default()
	a.ThemeConfig.Nav[0].Text = "changed"
	a.Locales[1].Entry.ThemeConfig.Sidebar[0].Sections[0].Items[0].Link = "/x"

	b := Default()
	assert.Equal(t, "Home", b.ThemeConfig.Nav[0].Text)
	assert.Equal(t, "/km/guide/postgresql/", b.Locales[1].Entry.ThemeConfig.Sidebar[0].Sections[0].Items[0].Link)
}

func TestDefault_SidebarPrefixesAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Default().ThemeConfig.Sidebar {
		require.False(t, seen[r.Prefix], "duplicate prefix %s", r.Prefix)
		seen[r.Prefix] = true
	}
	assert.Len(t, seen, 4)
}
