package site

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

func (h HeadTag) elements() []any {
	attrs := h.Attrs
	if attrs == nil {
		attrs = map[string]any{}
	}
	if h.Content != "" {
		return []any{h.Tag, attrs, h.Content}
	}
	return []any{h.Tag, attrs}
}

// MarshalJSON encodes the tag as [tag, attrs] or [tag, attrs, content].
func (h HeadTag) MarshalJSON() ([]byte, error) {
	return encodeJSON(h.elements())
}

// UnmarshalJSON decodes the array form.
func (h *HeadTag) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("head tag: %w", err)
	}
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("head tag: expected 2 or 3 elements, got %d", len(parts))
	}
	var out HeadTag
	if err := json.Unmarshal(parts[0], &out.Tag); err != nil {
		return fmt.Errorf("head tag name: %w", err)
	}
	if err := json.Unmarshal(parts[1], &out.Attrs); err != nil {
		return fmt.Errorf("head tag %s attributes: %w", out.Tag, err)
	}
	if len(parts) == 3 {
		if err := json.Unmarshal(parts[2], &out.Content); err != nil {
			return fmt.Errorf("head tag %s content: %w", out.Tag, err)
		}
	}
	if len(out.Attrs) == 0 {
		out.Attrs = nil
	}
	*h = out
	return nil
}

// MarshalYAML encodes the tag as a flow sequence.
func (h HeadTag) MarshalYAML() (any, error) {
	node := &yaml.Node{}
	if err := node.Encode(h.elements()); err != nil {
		return nil, err
	}
	node.Style = yaml.FlowStyle
	return node, nil
}

// UnmarshalYAML decodes the sequence form.
func (h *HeadTag) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("head tag: expected sequence at line %d", node.Line)
	}
	if len(node.Content) < 2 || len(node.Content) > 3 {
		return fmt.Errorf("head tag: expected 2 or 3 elements at line %d, got %d", node.Line, len(node.Content))
	}
	var out HeadTag
	if err := node.Content[0].Decode(&out.Tag); err != nil {
		return fmt.Errorf("head tag name: %w", err)
	}
	if err := node.Content[1].Decode(&out.Attrs); err != nil {
		return fmt.Errorf("head tag %s attributes: %w", out.Tag, err)
	}
	if len(node.Content) == 3 {
		if err := node.Content[2].Decode(&out.Content); err != nil {
			return fmt.Errorf("head tag %s content: %w", out.Tag, err)
		}
	}
	if len(out.Attrs) == 0 {
		out.Attrs = nil
	}
	*h = out
	return nil
}
