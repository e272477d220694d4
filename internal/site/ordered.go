package site

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DuplicateKeyError is returned when an ordered mapping repeats a key.
type DuplicateKeyError struct {
	Field string
	Key   string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: duplicate key %q", e.Field, e.Key)
}

// MarshalJSON encodes the locale table as an object in declaration order.
func (l Locales) MarshalJSON() ([]byte, error) {
	return marshalOrderedJSON(len(l), func(i int) (string, any) { return l[i].Key, l[i].Entry })
}

// UnmarshalJSON decodes an object into an ordered locale table.
func (l *Locales) UnmarshalJSON(data []byte) error {
	var out Locales
	err := unmarshalOrderedJSON(data, "locales", func(key string, raw json.RawMessage) error {
		var entry LocaleEntry
		if err := decodeJSONStrict(raw, &entry); err != nil {
			return fmt.Errorf("locales.%s: %w", key, err)
		}
		out = append(out, Locale{Key: key, Entry: entry})
		return nil
	})
	if err != nil {
		return err
	}
	*l = out
	return nil
}

// MarshalYAML encodes the locale table as a mapping in declaration order.
func (l Locales) MarshalYAML() (any, error) {
	return marshalOrderedYAML(len(l), func(i int) (string, any) { return l[i].Key, l[i].Entry })
}

// UnmarshalYAML decodes a mapping into an ordered locale table.
func (l *Locales) UnmarshalYAML(node *yaml.Node) error {
	var out Locales
	err := unmarshalOrderedYAML(node, "locales", func(key string, value *yaml.Node) error {
		var entry LocaleEntry
		if err := value.Decode(&entry); err != nil {
			return fmt.Errorf("locales.%s: %w", key, err)
		}
		out = append(out, Locale{Key: key, Entry: entry})
		return nil
	})
	if err != nil {
		return err
	}
	*l = out
	return nil
}

// MarshalJSON encodes the sidebar as an object keyed by path prefix.
func (s Sidebar) MarshalJSON() ([]byte, error) {
	return marshalOrderedJSON(len(s), func(i int) (string, any) { return s[i].Prefix, sectionsOrEmpty(s[i].Sections) })
}

// UnmarshalJSON decodes an object keyed by path prefix.
func (s *Sidebar) UnmarshalJSON(data []byte) error {
	var out Sidebar
	err := unmarshalOrderedJSON(data, "sidebar", func(key string, raw json.RawMessage) error {
		var sections []SidebarSection
		if err := decodeJSONStrict(raw, &sections); err != nil {
			return fmt.Errorf("sidebar[%q]: %w", key, err)
		}
		if len(sections) == 0 {
			sections = nil
		}
		out = append(out, SidebarRoute{Prefix: key, Sections: sections})
		return nil
	})
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// MarshalYAML encodes the sidebar as a mapping keyed by path prefix.
func (s Sidebar) MarshalYAML() (any, error) {
	return marshalOrderedYAML(len(s), func(i int) (string, any) { return s[i].Prefix, sectionsOrEmpty(s[i].Sections) })
}

// UnmarshalYAML decodes a mapping keyed by path prefix.
func (s *Sidebar) UnmarshalYAML(node *yaml.Node) error {
	var out Sidebar
	err := unmarshalOrderedYAML(node, "sidebar", func(key string, value *yaml.Node) error {
		var sections []SidebarSection
		if err := value.Decode(&sections); err != nil {
			return fmt.Errorf("sidebar[%q]: %w", key, err)
		}
		if len(sections) == 0 {
			sections = nil
		}
		out = append(out, SidebarRoute{Prefix: key, Sections: sections})
		return nil
	})
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// sectionsOrEmpty keeps a nil section list encoding as [] rather than null.
func sectionsOrEmpty(s []SidebarSection) []SidebarSection {
	if s == nil {
		return []SidebarSection{}
	}
	return s
}

func marshalOrderedJSON(n int, entry func(i int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, value := entry(i)
		kb, err := encodeJSON(key)
		if err != nil {
			return nil, err
		}
		vb, err := encodeJSON(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalOrderedJSON(data []byte, field string, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%s: expected object, got %v", field, tok)
	}
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		key, _ := tok.(string)
		if _, dup := seen[key]; dup {
			return &DuplicateKeyError{Field: field, Key: key}
		}
		seen[key] = struct{}{}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

func marshalOrderedYAML(n int, entry func(i int) (string, any)) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := range n {
		key, value := entry(i)
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			valueNode)
	}
	return node, nil
}

func unmarshalOrderedYAML(node *yaml.Node, field string, fn func(key string, value *yaml.Node) error) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: expected mapping at line %d", field, node.Line)
	}
	seen := make(map[string]struct{})
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, dup := seen[key]; dup {
			return &DuplicateKeyError{Field: field, Key: key}
		}
		seen[key] = struct{}{}
		if err := fn(key, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func decodeJSONStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
