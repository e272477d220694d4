package site

// Site is the full configuration object consumed by the site generator.
type Site struct {
	Base        string          `json:"base" yaml:"base"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	Lang        string          `json:"lang" yaml:"lang"`
	Head        []HeadTag       `json:"head,omitempty" yaml:"head,omitempty"`
	Locales     Locales         `json:"locales,omitempty" yaml:"locales,omitempty"`
	ThemeConfig ThemeConfig     `json:"themeConfig" yaml:"themeConfig"`
	Markdown    MarkdownOptions `json:"markdown" yaml:"markdown"`
	Build       BuildOptions    `json:"build" yaml:"build"`
}

// RootLocale is the key of the implicit default locale.
const RootLocale = "root"

// LocaleEntry describes one language variant of the site.
// Link is empty for the root locale and the content prefix (e.g. "/km/") for all others.
type LocaleEntry struct {
	Label       string       `json:"label" yaml:"label"`
	Lang        string       `json:"lang" yaml:"lang"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Link        string       `json:"link,omitempty" yaml:"link,omitempty"`
	ThemeConfig *ThemeConfig `json:"themeConfig,omitempty" yaml:"themeConfig,omitempty"`
}

// Locale pairs a locale key with its entry.
type Locale struct {
	Key   string
	Entry LocaleEntry
}

// Locales is an ordered locale table keyed by locale key.
type Locales []Locale

// Get returns the entry for key.
func (l Locales) Get(key string) (LocaleEntry, bool) {
	for _, loc := range l {
		if loc.Key == key {
			return loc.Entry, true
		}
	}
	return LocaleEntry{}, false
}

// Keys returns the locale keys in declaration order.
func (l Locales) Keys() []string {
	keys := make([]string, len(l))
	for i, loc := range l {
		keys[i] = loc.Key
	}
	return keys
}

// NavItem is either a leaf link ({text, link}) or a dropdown group ({text, items}).
type NavItem struct {
	Text        string    `json:"text" yaml:"text"`
	Link        string    `json:"link,omitempty" yaml:"link,omitempty"`
	ActiveMatch string    `json:"activeMatch,omitempty" yaml:"activeMatch,omitempty"`
	Items       []NavItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// IsGroup reports whether the item was declared with an items list, even an empty one.
func (n NavItem) IsGroup() bool { return n.Items != nil }

// SidebarItem is a single sidebar link.
type SidebarItem struct {
	Text string `json:"text" yaml:"text"`
	Link string `json:"link" yaml:"link"`
}

// SidebarSection is a titled group of sidebar links.
type SidebarSection struct {
	Text      string        `json:"text" yaml:"text"`
	Collapsed *bool         `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	Items     []SidebarItem `json:"items" yaml:"items"`
}

// SidebarRoute binds a path prefix to the sections shown for pages under it.
type SidebarRoute struct {
	Prefix   string
	Sections []SidebarSection
}

// Sidebar is an ordered mapping from path prefix to sidebar sections.
type Sidebar []SidebarRoute

// Get returns the sections registered for exactly prefix.
func (s Sidebar) Get(prefix string) ([]SidebarSection, bool) {
	for _, r := range s {
		if r.Prefix == prefix {
			return r.Sections, true
		}
	}
	return nil, false
}

// SocialLink is an icon link shown in the navigation bar.
type SocialLink struct {
	Icon string `json:"icon" yaml:"icon"`
	Link string `json:"link" yaml:"link"`
}

// EditLink configures the "edit this page" link. Pattern contains the :path placeholder.
type EditLink struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
}

// LastUpdated configures the label of the last-updated timestamp.
type LastUpdated struct {
	Text string `json:"text" yaml:"text"`
}

// DocFooter holds the previous/next page labels.
type DocFooter struct {
	Prev string `json:"prev" yaml:"prev"`
	Next string `json:"next" yaml:"next"`
}

// ThemeConfig aggregates the default theme options.
type ThemeConfig struct {
	Nav          []NavItem    `json:"nav,omitempty" yaml:"nav,omitempty"`
	Sidebar      Sidebar      `json:"sidebar,omitempty" yaml:"sidebar,omitempty"`
	SocialLinks  []SocialLink `json:"socialLinks,omitempty" yaml:"socialLinks,omitempty"`
	EditLink     *EditLink    `json:"editLink,omitempty" yaml:"editLink,omitempty"`
	LastUpdated  *LastUpdated `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
	DocFooter    *DocFooter   `json:"docFooter,omitempty" yaml:"docFooter,omitempty"`
	OutlineTitle string       `json:"outlineTitle,omitempty" yaml:"outlineTitle,omitempty"`
}

// MarkdownOptions are passed through to the Markdown renderer.
type MarkdownOptions struct {
	LineNumbers bool   `json:"lineNumbers" yaml:"lineNumbers"`
	Theme       string `json:"theme,omitempty" yaml:"theme,omitempty"`
}

// BuildOptions are passed through to the bundler.
type BuildOptions struct {
	Minify string `json:"minify,omitempty" yaml:"minify,omitempty"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

// HeadTag is an HTML tag injected into every page head.
// It encodes as [tag, attrs] or [tag, attrs, content]. Attribute values are
// strings, booleans (e.g. async) or numbers.
type HeadTag struct {
	Tag     string
	Attrs   map[string]any
	Content string
}
