package content

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document opened a YAML frontmatter
// block without closing it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// splitFrontmatter separates `---` delimited YAML frontmatter from the body.
// LF and CRLF documents are both accepted.
func splitFrontmatter(doc []byte) (fm []byte, body []byte, had bool, err error) {
	nl := detectNewline(doc)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(doc, open) {
		return nil, doc, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(doc[start:], open) {
		return []byte{}, doc[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(doc[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the final line without a trailing newline.
		if bytes.HasSuffix(doc, []byte(nl+"---")) {
			return doc[start : len(doc)-len("---")], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return doc[start : start+idx+len(nl)], doc[start+idx+len(closeSeq):], true, nil
}

func parseFrontmatter(fm []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(fm)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func detectNewline(doc []byte) string {
	if i := bytes.IndexByte(doc, '\n'); i > 0 && doc[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
