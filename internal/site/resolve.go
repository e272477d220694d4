package site

import (
	"fmt"
	"strings"
)

// LinkSource names where a link target was declared.
type LinkSource string

const (
	SourceNav     LinkSource = "nav"
	SourceSidebar LinkSource = "sidebar"
	SourceLocale  LinkSource = "locale"
)

// LinkRef is a link target together with the configuration path declaring it.
type LinkRef struct {
	Path   string
	Source LinkSource
	Target string
}

func normalizePagePath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// LocaleFor returns the locale whose link is the longest prefix of pagePath,
// falling back to the root locale.
func (s *Site) LocaleFor(pagePath string) (string, LocaleEntry) {
	p := normalizePagePath(pagePath)
	bestKey, bestLen := "", -1
	var best LocaleEntry
	for _, loc := range s.Locales {
		link := loc.Entry.Link
		if link == "" || !matchesPrefix(p, link) {
			continue
		}
		if len(link) > bestLen {
			bestKey, bestLen, best = loc.Key, len(link), loc.Entry
		}
	}
	if bestLen >= 0 {
		return bestKey, best
	}
	root, _ := s.Locales.Get(RootLocale)
	return RootLocale, root
}

// ActiveSidebar selects the sidebar for pagePath by longest-prefix match. A
// sidebar declared in the page's locale theme override takes precedence over the
// site-wide one.
func (s *Site) ActiveSidebar(pagePath string) (string, []SidebarSection, bool) {
	p := normalizePagePath(pagePath)
	if _, loc := s.LocaleFor(p); loc.ThemeConfig != nil {
		if prefix, sections, ok := longestSidebarMatch(loc.ThemeConfig.Sidebar, p); ok {
			return prefix, sections, true
		}
	}
	return longestSidebarMatch(s.ThemeConfig.Sidebar, p)
}

func longestSidebarMatch(sidebar Sidebar, p string) (string, []SidebarSection, bool) {
	best := -1
	for i, route := range sidebar {
		if route.Prefix == "" || !matchesPrefix(p, route.Prefix) {
			continue
		}
		if best < 0 || len(route.Prefix) > len(sidebar[best].Prefix) {
			best = i
		}
	}
	if best < 0 {
		return "", nil, false
	}
	return sidebar[best].Prefix, sidebar[best].Sections, true
}

// matchesPrefix matches whole path segments. "/a/b" is inside "/a/b/" so
// directory index pages match their own sidebar, and "/km" never matches "/kmx/".
func matchesPrefix(p, prefix string) bool {
	if p+"/" == prefix {
		return true
	}
	if !strings.HasPrefix(p, prefix) {
		return false
	}
	return strings.HasSuffix(prefix, "/") || len(p) == len(prefix) || p[len(prefix)] == '/'
}

// Links lists every link target declared by the navigation, the sidebars and the
// locale prefixes, including locale theme overrides, in document order.
func (s *Site) Links() []LinkRef {
	var refs []LinkRef
	refs = appendThemeLinks(refs, "themeConfig", &s.ThemeConfig)
	for _, loc := range s.Locales {
		path := "locales." + loc.Key
		if loc.Entry.Link != "" {
			refs = append(refs, LinkRef{Path: path + ".link", Source: SourceLocale, Target: loc.Entry.Link})
		}
		if loc.Entry.ThemeConfig != nil {
			refs = appendThemeLinks(refs, path+".themeConfig", loc.Entry.ThemeConfig)
		}
	}
	return refs
}

func appendThemeLinks(refs []LinkRef, path string, t *ThemeConfig) []LinkRef {
	refs = appendNavLinks(refs, path+".nav", t.Nav)
	for _, route := range t.Sidebar {
		for si, sec := range route.Sections {
			for ii, item := range sec.Items {
				if item.Link == "" {
					continue
				}
				refs = append(refs, LinkRef{
					Path:   fmt.Sprintf("%s.sidebar[%q][%d].items[%d].link", path, route.Prefix, si, ii),
					Source: SourceSidebar,
					Target: item.Link,
				})
			}
		}
	}
	return refs
}

func appendNavLinks(refs []LinkRef, path string, items []NavItem) []LinkRef {
	for i, item := range items {
		ipath := fmt.Sprintf("%s[%d]", path, i)
		if item.IsGroup() {
			refs = appendNavLinks(refs, ipath+".items", item.Items)
			continue
		}
		if item.Link != "" {
			refs = append(refs, LinkRef{Path: ipath + ".link", Source: SourceNav, Target: item.Link})
		}
	}
	return refs
}
