// Package content indexes the Markdown tree a site configuration points into.
//
// Scan walks the content directory, splits YAML frontmatter, extracts links with
// goldmark and fingerprints every page with mdfp. The resulting Index answers
// whether a site-relative link target resolves to a page.
package content
