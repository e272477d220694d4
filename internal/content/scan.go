package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Page is one Markdown file of the content tree.
type Page struct {
	// Path is the file path relative to the content root, slash separated.
	Path        string
	Route       string
	Title       string
	Frontmatter map[string]any
	Links       []Link
	Fingerprint string
	// Err is set when the page could not be parsed. Such pages still own their route.
	Err error
}

// Scan walks root and indexes every file whose extension is in exts.
// Hidden directories and node_modules are skipped. Per-page parse failures are
// recorded on the page and do not stop the scan.
func Scan(root string, exts []string) (*Index, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("content directory not found").WithContext("path", root).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot access content directory").WithContext("path", root).Build()
	}
	if !info.IsDir() {
		return nil, errors.ContentError("content path is not a directory").WithContext("path", root).Build()
	}

	wanted := make(map[string]bool, len(exts))
	for _, ext := range exts {
		wanted[strings.ToLower(ext)] = true
	}

	idx := newIndex()
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && (strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if !wanted[strings.ToLower(filepath.Ext(p))] {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		page := loadPage(p, filepath.ToSlash(rel))
		if page.Err != nil {
			slog.Warn("Failed to parse page", logfields.Path(page.Path), logfields.Error(page.Err))
		}
		idx.add(page)
		return nil
	})
	if walkErr != nil {
		return nil, errors.WrapError(walkErr, errors.CategoryFileSystem, "failed to scan content").WithContext("path", root).Build()
	}
	idx.sortPages()
	slog.Debug("Scanned content", logfields.Path(root), logfields.Count(idx.Len()))
	return idx, nil
}

func loadPage(file, rel string) *Page {
	page := &Page{Path: rel, Route: RouteFor(rel)}

	// #nosec G304 -- file comes from walking the configured content root
	doc, err := os.ReadFile(file)
	if err != nil {
		page.Err = err
		return page
	}
	fm, body, _, err := splitFrontmatter(doc)
	if err != nil {
		page.Err = err
		return page
	}
	fields, err := parseFrontmatter(fm)
	if err != nil {
		page.Err = err
		return page
	}
	page.Frontmatter = fields

	links, heading := analyzeBody(body)
	page.Links = links
	page.Title = heading
	if title, ok := fields["title"].(string); ok && strings.TrimSpace(title) != "" {
		page.Title = title
	}

	fp, err := Fingerprint(fields, body)
	if err != nil {
		page.Err = err
		return page
	}
	page.Fingerprint = fp
	return page
}

// RouteFor maps a content-relative file path to the route it is served at.
// index and README files map to their directory route with a trailing slash.
func RouteFor(rel string) string {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	dir, file := path.Split(rel)
	stem := strings.TrimSuffix(file, path.Ext(file))
	if stem == "index" || strings.EqualFold(stem, "readme") {
		return "/" + dir
	}
	return "/" + dir + stem
}

func (idx *Index) sortPages() {
	sort.Slice(idx.pages, func(i, j int) bool { return idx.pages[i].Path < idx.pages[j].Path })
}
