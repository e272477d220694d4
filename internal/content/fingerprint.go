package content

import (
	"bytes"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

const fieldLastmod = "lastmod"

// Fingerprint computes the mdfp content fingerprint of a page. The fingerprint
// and lastmod fields are excluded so that writing them back is stable.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	hashed := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField || k == fieldLastmod {
			continue
		}
		hashed[k] = v
	}

	fm := ""
	if len(hashed) > 0 {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(hashed); err != nil {
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(buf.String(), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}

// StoredFingerprint returns the fingerprint recorded in the page frontmatter.
func (p *Page) StoredFingerprint() string {
	fp, _ := p.Frontmatter[mdfp.FingerprintField].(string)
	return strings.TrimSpace(fp)
}

// FingerprintStale reports whether the page records a fingerprint that no longer
// matches its content. Pages without a recorded fingerprint are never stale.
func (p *Page) FingerprintStale() bool {
	stored := p.StoredFingerprint()
	return p.Err == nil && stored != "" && stored != p.Fingerprint
}
