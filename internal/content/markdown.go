package content

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// LinkKind classifies where a link was found in a Markdown body.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link-like construct extracted from a page body.
type Link struct {
	Kind        LinkKind
	Destination string
}

var markdownParser = goldmark.New().Parser()

// analyzeBody parses body once and returns its links and first level-one heading.
func analyzeBody(body []byte) ([]Link, string) {
	ctx := parser.NewContext()
	root := markdownParser.Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	heading := ""
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			if node.Level == 1 && heading == "" {
				heading = headingText(node, body)
			}
		case *gmast.AutoLink:
			if node.AutoLinkType == gmast.AutoLinkURL {
				links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
			}
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions live in the parse context, not the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links, heading
}

func headingText(h *gmast.Heading, source []byte) string {
	var buf bytes.Buffer
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}
