// Package linkcheck verifies that the internal links of a site configuration,
// and optionally of the Markdown pages, resolve to pages of the content tree.
//
// Broken links can be published as events through a Publisher (NATS in
// production) and whole reports are persisted by the history package.
package linkcheck
