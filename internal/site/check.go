package site

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Issue is a single structural problem found in a site configuration.
type Issue struct {
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) String() string { return i.Path + ": " + i.Message }

type checker struct {
	issues []Issue
}

func (c *checker) add(path, format string, args ...any) {
	c.issues = append(c.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// Check runs every structural rule against s and returns all violations in
// document order. A nil result means the configuration is well-formed.
func Check(s *Site) []Issue {
	c := &checker{}
	if s == nil {
		c.add("", "site configuration is nil")
		return c.issues
	}
	c.checkLang("lang", s.Lang, false)
	c.checkHead(s.Head)
	c.checkLocales(s.Locales)
	c.checkTheme("themeConfig", &s.ThemeConfig)
	return c.issues
}

// Validate returns nil when s passes Check, or a validation error whose
// context holds the issues under the "issues" key.
func Validate(s *Site) error {
	issues := Check(s)
	if len(issues) == 0 {
		return nil
	}
	return errors.ValidationError(fmt.Sprintf("site configuration has %d issue(s)", len(issues))).
		WithContext("issues", issues).
		Build()
}

// IssuesFrom extracts the issues carried by an error returned from Validate.
func IssuesFrom(err error) []Issue {
	classified, ok := errors.AsClassified(err)
	if !ok {
		return nil
	}
	v, _ := classified.Context().Get("issues")
	issues, _ := v.([]Issue)
	return issues
}

func (c *checker) checkLang(path, tag string, required bool) {
	if tag == "" {
		if required {
			c.add(path, "language tag is required")
		}
		return
	}
	if _, err := language.Parse(tag); err != nil {
		c.add(path, "invalid language tag %q: %v", tag, err)
	}
}

func (c *checker) checkHead(head []HeadTag) {
	for i, h := range head {
		path := fmt.Sprintf("head[%d]", i)
		if h.Tag == "" {
			c.add(path, "tag name is empty")
			continue
		}
		if atom.Lookup([]byte(strings.ToLower(h.Tag))) == 0 {
			c.add(path, "unknown HTML element %q", h.Tag)
		}
		for _, name := range slices.Sorted(maps.Keys(h.Attrs)) {
			switch h.Attrs[name].(type) {
			case string, bool, int, int64, float64:
			default:
				c.add(path+".attrs."+name, "attribute value must be a string, boolean or number")
			}
		}
	}
}

func (c *checker) checkLocales(locales Locales) {
	if len(locales) == 0 {
		return
	}
	roots := 0
	seen := make(map[string]struct{}, len(locales))
	links := make(map[string]string)
	for _, loc := range locales {
		path := "locales." + loc.Key
		if _, dup := seen[loc.Key]; dup {
			c.add(path, "duplicate locale key")
		}
		seen[loc.Key] = struct{}{}
		if loc.Entry.Label == "" {
			c.add(path+".label", "label is empty")
		}
		c.checkLang(path+".lang", loc.Entry.Lang, true)
		if loc.Key == RootLocale {
			roots++
			if loc.Entry.Link != "" {
				c.add(path+".link", "root locale must not set a link")
			}
		} else {
			switch {
			case loc.Entry.Link == "":
				c.add(path+".link", "non-root locale must set a link")
			case !strings.HasPrefix(loc.Entry.Link, "/"):
				c.add(path+".link", "link %q must start with /", loc.Entry.Link)
			case !strings.HasSuffix(loc.Entry.Link, "/"):
				c.add(path+".link", "link %q must end with /", loc.Entry.Link)
			default:
				if other, dup := links[loc.Entry.Link]; dup {
					c.add(path+".link", "link %q already used by locale %q", loc.Entry.Link, other)
				}
				links[loc.Entry.Link] = loc.Key
			}
		}
		if loc.Entry.ThemeConfig != nil {
			c.checkTheme(path+".themeConfig", loc.Entry.ThemeConfig)
		}
	}
	switch {
	case roots == 0:
		c.add("locales", "missing %q locale", RootLocale)
	case roots > 1:
		c.add("locales", "%d %q locales, want exactly one", roots, RootLocale)
	}
}

func (c *checker) checkTheme(path string, t *ThemeConfig) {
	c.checkNav(path+".nav", t.Nav)
	seen := make(map[string]struct{}, len(t.Sidebar))
	for _, route := range t.Sidebar {
		rpath := fmt.Sprintf("%s.sidebar[%q]", path, route.Prefix)
		if _, dup := seen[route.Prefix]; dup {
			c.add(rpath, "duplicate sidebar prefix")
		}
		seen[route.Prefix] = struct{}{}
		if !strings.HasPrefix(route.Prefix, "/") {
			c.add(rpath, "sidebar prefix must start with /")
		}
		for si, sec := range route.Sections {
			spath := fmt.Sprintf("%s[%d]", rpath, si)
			if len(sec.Items) == 0 {
				c.add(spath+".items", "sidebar section has no items")
			}
			for ii, item := range sec.Items {
				if item.Link == "" {
					c.add(fmt.Sprintf("%s.items[%d].link", spath, ii), "link is empty")
				}
			}
		}
	}
	for i, sl := range t.SocialLinks {
		if sl.Link == "" {
			c.add(fmt.Sprintf("%s.socialLinks[%d].link", path, i), "link is empty")
		}
	}
	if t.EditLink != nil && !strings.Contains(t.EditLink.Pattern, ":path") {
		c.add(path+".editLink.pattern", "pattern must contain the :path placeholder")
	}
}

func (c *checker) checkNav(path string, items []NavItem) {
	for i, item := range items {
		ipath := fmt.Sprintf("%s[%d]", path, i)
		if item.Text == "" {
			c.add(ipath+".text", "text is empty")
		}
		if item.IsGroup() {
			if len(item.Items) == 0 {
				c.add(ipath+".items", "group has no items")
			}
			if item.Link != "" {
				c.add(ipath+".link", "group must not also set a link")
			}
			c.checkNav(ipath+".items", item.Items)
			continue
		}
		if item.Link == "" {
			c.add(ipath+".link", "link is empty")
		}
	}
}
