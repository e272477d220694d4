package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a serialization of the site configuration.
type Format string

const (
	FormatJS   Format = "js"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user-supplied name (case-insensitive, "yml" accepted) to a Format.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "js", "mjs", "javascript":
		return FormatJS, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported site format %q (want js, json or yaml)", raw)
	}
}

// Extension is the file extension (without dot) conventionally used for f.
func (f Format) Extension() string {
	return string(f)
}

// FormatFromPath infers the decode format from a file extension.
func FormatFromPath(path string) (Format, error) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "", fmt.Errorf("cannot infer site format from %q", path)
	}
	return ParseFormat(path[i+1:])
}

const jsHeader = "// Code generated by docsite. DO NOT EDIT.\n\n"

// Encode writes s in the given format. The js format is an ES module whose default
// export is the JSON form of the configuration.
func Encode(w io.Writer, s *Site, format Format) error {
	switch format {
	case FormatJSON, FormatJS:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode site: %w", err)
		}
		if format == FormatJS {
			if _, err := io.WriteString(w, jsHeader+"export default "); err != nil {
				return err
			}
		}
		_, err := w.Write(buf.Bytes())
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode site: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported site format %q", format)
	}
}

// Decode reads a site configuration in json or yaml format. Unknown fields are rejected.
func Decode(r io.Reader, format Format) (*Site, error) {
	var s Site
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode site json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode site yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("site format %q cannot be decoded", format)
	}
	return &s, nil
}

// Clone returns a deep copy of s.
func (s *Site) Clone() *Site {
	if s == nil {
		return nil
	}
	out := *s
	if s.Head != nil {
		out.Head = make([]HeadTag, len(s.Head))
		for i, h := range s.Head {
			out.Head[i] = HeadTag{Tag: h.Tag, Attrs: maps.Clone(h.Attrs), Content: h.Content}
		}
	}
	if s.Locales != nil {
		out.Locales = make(Locales, len(s.Locales))
		for i, loc := range s.Locales {
			entry := loc.Entry
			entry.ThemeConfig = loc.Entry.ThemeConfig.clone()
			out.Locales[i] = Locale{Key: loc.Key, Entry: entry}
		}
	}
	out.ThemeConfig = *s.ThemeConfig.clone()
	return &out
}

func (t *ThemeConfig) clone() *ThemeConfig {
	if t == nil {
		return nil
	}
	out := *t
	out.Nav = cloneNav(t.Nav)
	if t.Sidebar != nil {
		out.Sidebar = make(Sidebar, len(t.Sidebar))
		for i, r := range t.Sidebar {
			out.Sidebar[i] = SidebarRoute{Prefix: r.Prefix, Sections: cloneSections(r.Sections)}
		}
	}
	if t.SocialLinks != nil {
		out.SocialLinks = append([]SocialLink{}, t.SocialLinks...)
	}
	if t.EditLink != nil {
		e := *t.EditLink
		out.EditLink = &e
	}
	if t.LastUpdated != nil {
		l := *t.LastUpdated
		out.LastUpdated = &l
	}
	if t.DocFooter != nil {
		d := *t.DocFooter
		out.DocFooter = &d
	}
	return &out
}

func cloneNav(items []NavItem) []NavItem {
	if items == nil {
		return nil
	}
	out := make([]NavItem, len(items))
	for i, it := range items {
		it.Items = cloneNav(it.Items)
		out[i] = it
	}
	return out
}

func cloneSections(sections []SidebarSection) []SidebarSection {
	if sections == nil {
		return nil
	}
	out := make([]SidebarSection, len(sections))
	for i, sec := range sections {
		if sec.Collapsed != nil {
			c := *sec.Collapsed
			sec.Collapsed = &c
		}
		if sec.Items != nil {
			sec.Items = append([]SidebarItem{}, sec.Items...)
		}
		out[i] = sec
	}
	return out
}
