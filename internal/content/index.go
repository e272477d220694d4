package content

import (
	"path"
	"strings"
)

// Index maps routes to pages.
type Index struct {
	base   string
	pages  []*Page
	routes map[string]*Page
}

func newIndex() *Index {
	return &Index{base: "/", routes: make(map[string]*Page)}
}

// NewIndex builds an index from already loaded pages.
func NewIndex(pages ...*Page) *Index {
	idx := newIndex()
	for _, p := range pages {
		idx.add(p)
	}
	idx.sortPages()
	return idx
}

func (idx *Index) add(p *Page) {
	idx.pages = append(idx.pages, p)
	if _, exists := idx.routes[p.Route]; !exists {
		idx.routes[p.Route] = p
	}
}

// SetBase sets the site base path stripped from link targets before lookup.
func (idx *Index) SetBase(base string) {
	if base == "" {
		base = "/"
	}
	idx.base = base
}

// Len returns the number of indexed pages.
func (idx *Index) Len() int { return len(idx.pages) }

// Pages returns the indexed pages ordered by path.
func (idx *Index) Pages() []*Page { return idx.pages }

// Errors returns pages that failed to parse.
func (idx *Index) Errors() []*Page {
	var out []*Page
	for _, p := range idx.pages {
		if p.Err != nil {
			out = append(out, p)
		}
	}
	return out
}

// StaleFingerprints returns pages whose recorded fingerprint no longer matches
// their content.
func (idx *Index) StaleFingerprints() []*Page {
	var out []*Page
	for _, p := range idx.pages {
		if p.FingerprintStale() {
			out = append(out, p)
		}
	}
	return out
}

// Lookup returns the page a site-absolute link target resolves to.
func (idx *Index) Lookup(target string) (*Page, bool) {
	route, ok := idx.normalize(target)
	if !ok {
		return nil, false
	}
	if p, ok := idx.routes[route]; ok {
		return p, true
	}
	if route == "/" {
		return nil, false
	}
	if strings.HasSuffix(route, "/") {
		p, ok := idx.routes[strings.TrimSuffix(route, "/")]
		return p, ok
	}
	p, ok := idx.routes[route+"/"]
	return p, ok
}

// Has reports whether target resolves to a page. Fragments and queries are
// ignored, a trailing .html or .md is tolerated, and directory routes match
// with or without a trailing slash.
func (idx *Index) Has(target string) bool {
	_, ok := idx.Lookup(target)
	return ok
}

func (idx *Index) normalize(target string) (string, bool) {
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		target = target[:i]
	}
	if !strings.HasPrefix(target, "/") {
		return "", false
	}
	if idx.base != "/" {
		trimmed := strings.TrimSuffix(idx.base, "/")
		if target == trimmed {
			target = "/"
		} else if strings.HasPrefix(target, trimmed+"/") {
			target = strings.TrimPrefix(target, trimmed)
		}
	}
	for _, ext := range []string{".html", ".md"} {
		if strings.HasSuffix(target, ext) {
			target = strings.TrimSuffix(target, ext)
			break
		}
	}
	trailing := strings.HasSuffix(target, "/")
	target = path.Clean(target)
	base := path.Base(target)
	if base == "index" || strings.EqualFold(base, "readme") {
		target, trailing = path.Dir(target), true
	}
	if target != "/" && trailing {
		target += "/"
	}
	return target, true
}

// Resolve turns a link found on the page at route into a site-absolute target.
// Targets that are already absolute are returned unchanged. The boolean is false
// for external links and pure fragments.
func Resolve(route, target string) (string, bool) {
	if target == "" || strings.HasPrefix(target, "#") || IsExternal(target) {
		return "", false
	}
	if strings.HasPrefix(target, "/") {
		return target, true
	}

	dir := route
	if !strings.HasSuffix(dir, "/") {
		dir = path.Dir(dir)
	}
	suffix := ""
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		target, suffix = target[:i], target[i:]
	}
	trailing := strings.HasSuffix(target, "/")
	joined := path.Join(dir, target)
	if trailing && joined != "/" {
		joined += "/"
	}
	return joined + suffix, true
}

// IsExternal reports whether target has a URL scheme or is protocol relative.
func IsExternal(target string) bool {
	if strings.HasPrefix(target, "//") {
		return true
	}
	i := strings.Index(target, ":")
	if i <= 0 {
		return false
	}
	for _, r := range target[:i] {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isAlpha && (r < '0' || r > '9') && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	return strings.IndexAny(target[:i], "/?#") < 0
}
