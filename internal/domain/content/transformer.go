// Package content converts rich-text editor documents into flat,
// render-ready block sequences. Transform is total: malformed input
// degrades to an empty document, never to an error.
package content

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Transform converts a stored post body into renderable blocks.
//
// Accepted shapes, first match wins:
//  1. empty/null input: empty document
//  2. a bare JSON string: a single raw-html block (trusted,
//     pre-rendered markup)
//  3. an already-transformed document ({"blocks": [...]}): returned as-is
//  4. an editor document ({"content": [...]}): each top-level node is
//     mapped to at most one block
//
// Anything else yields an empty document.
func Transform(raw json.RawMessage) Doc {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Doc{Blocks: []Block{}}
	}

	var plain string
	if err := json.Unmarshal(trimmed, &plain); err == nil {
		return Doc{Blocks: []Block{{Type: TypeHTML, Content: HTML(plain)}}}
	}

	var pre struct {
		Blocks []Block `json:"blocks"`
	}
	if err := json.Unmarshal(trimmed, &pre); err == nil && pre.Blocks != nil {
		return Doc{Blocks: pre.Blocks}
	}

	var doc struct {
		Content []Node `json:"content"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil || doc.Content == nil {
		return Doc{Blocks: []Block{}}
	}

	blocks := make([]Block, 0, len(doc.Content))
	for _, node := range doc.Content {
		if block, ok := transformNode(node); ok {
			blocks = append(blocks, block)
		}
	}
	return Doc{Blocks: blocks}
}

// transformNode maps one top-level editor node to a block. Nodes with no
// extractable content and unrecognized node types report ok=false.
func transformNode(node Node) (Block, bool) {
	switch node.Type {
	case "paragraph":
		if node.Content == nil {
			return Block{}, false
		}
		html := serializeInline(node.Content)
		if strings.TrimSpace(html) == "" {
			return Block{}, false
		}
		return Block{
			Type:    TypeParagraph,
			Content: HTML(html),
			IsHTML:  true,
			Align:   alignOf(node.Attrs),
		}, true

	case "heading":
		if node.Content == nil {
			return Block{}, false
		}
		return Block{
			Type:    TypeHeading,
			Content: HTML(serializeInline(node.Content)),
			IsHTML:  true,
			Level:   levelOf(node.Attrs),
			Align:   alignOf(node.Attrs),
		}, true

	case "image":
		src := stringAttr(node.Attrs, "src")
		if src == "" {
			return Block{}, false
		}
		return Block{
			Type:  TypeImage,
			Src:   src,
			Alt:   stringAttr(node.Attrs, "alt"),
			Title: stringAttr(node.Attrs, "title"),
		}, true

	case "bulletList", "orderedList":
		if node.Content == nil {
			return Block{}, false
		}
		items := listItems(node.Content)
		if len(items) == 0 {
			return Block{}, false
		}
		return Block{Type: node.Type, Items: items, IsHTML: true}, true

	case "codeBlock":
		if node.Content == nil {
			return Block{}, false
		}
		// Code is rendered literally: no escaping, no mark processing.
		var code strings.Builder
		for _, child := range node.Content {
			code.WriteString(child.Text)
		}
		return Block{
			Type:     TypeCode,
			Content:  HTML(code.String()),
			Language: stringAttr(node.Attrs, "language"),
		}, true

	case "blockquote":
		if node.Content == nil {
			return Block{}, false
		}
		parts := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			switch {
			case child.Type == "paragraph" && child.Content != nil:
				parts = append(parts, serializeInline(child.Content))
			case child.Text != "":
				parts = append(parts, escapeHTML(child.Text))
			default:
				parts = append(parts, "")
			}
		}
		text := strings.Join(parts, "<br />")
		if strings.TrimSpace(text) == "" {
			return Block{}, false
		}
		return Block{
			Type:    TypeBlockquote,
			Content: HTML(text),
			IsHTML:  true,
			Align:   alignOf(node.Attrs),
		}, true

	case "horizontalRule":
		return Block{Type: TypeDivider}, true

	case "youtube":
		src := stringAttr(node.Attrs, "src")
		if src == "" {
			return Block{}, false
		}
		return Block{Type: TypeYoutube, Src: src}, true

	default:
		// Unknown node kinds are skipped so newer editor features
		// degrade gracefully instead of breaking old posts.
		return Block{}, false
	}
}

// serializeInline walks an inline node sequence and produces escaped,
// mark-wrapped markup. Unrecognized leaves that carry children are
// recursed into; bare unrecognized leaves contribute nothing.
func serializeInline(nodes []Node) string {
	var out strings.Builder
	for _, node := range nodes {
		switch {
		case node.Type == "text":
			out.WriteString(applyMarks(escapeHTML(node.Text), node.Marks))
		case node.Type == "hardBreak":
			out.WriteString("<br />")
		case node.Content != nil:
			out.WriteString(serializeInline(node.Content))
		}
	}
	return out.String()
}

// applyMarks wraps already-escaped markup in the node's marks, in array
// order: each mark wraps everything accumulated so far, so the last mark
// ends up outermost.
func applyMarks(html string, marks []Mark) string {
	for _, mark := range marks {
		switch mark.Type {
		case "bold":
			html = "<strong>" + html + "</strong>"
		case "italic":
			html = "<em>" + html + "</em>"
		case "underline":
			html = "<u>" + html + "</u>"
		case "strike":
			html = "<s>" + html + "</s>"
		case "code":
			html = "<code>" + html + "</code>"
		case "link":
			href := sanitizeURL(stringAttr(mark.Attrs, "href"))
			var attrs strings.Builder
			attrs.WriteString(`<a href="`)
			attrs.WriteString(href)
			attrs.WriteString(`"`)
			if target := stringAttr(mark.Attrs, "target"); target != "" {
				attrs.WriteString(` target="`)
				attrs.WriteString(escapeAttr(target))
				attrs.WriteString(`" rel="noopener noreferrer"`)
			}
			attrs.WriteString(">")
			html = attrs.String() + html + "</a>"
		}
	}
	return html
}

// escapeHTML escapes the three characters that break out of element
// content. Attribute values additionally need escapeAttr.
func escapeHTML(value string) string {
	value = strings.ReplaceAll(value, "&", "&amp;")
	value = strings.ReplaceAll(value, "<", "&lt;")
	value = strings.ReplaceAll(value, ">", "&gt;")
	return value
}

func escapeAttr(value string) string {
	return strings.ReplaceAll(escapeHTML(value), `"`, "&quot;")
}

// sanitizeURL allow-lists link destinations. Only http(s), mailto, tel,
// fragment, and root-relative URLs survive; everything else (notably
// javascript:) collapses to "#". This is the XSS barrier for
// user-authored links.
func sanitizeURL(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "#"
	}
	lower := strings.ToLower(trimmed)
	for _, prefix := range []string{"http:", "https:", "mailto:", "tel:", "#", "/"} {
		if strings.HasPrefix(lower, prefix) {
			return escapeAttr(trimmed)
		}
	}
	return "#"
}

// listItems serializes each list item's children and joins the parts
// with line breaks. Items that reduce to the empty string are dropped.
func listItems(items []Node) []HTML {
	out := make([]HTML, 0, len(items))
	for _, item := range items {
		if item.Content == nil {
			continue
		}
		parts := make([]string, 0, len(item.Content))
		for _, child := range item.Content {
			if part := serializeInline(child.Content); part != "" {
				parts = append(parts, part)
			}
		}
		if joined := strings.Join(parts, "<br />"); joined != "" {
			out = append(out, HTML(joined))
		}
	}
	return out
}

// alignOf accepts only the four known alignment values; anything else
// means no alignment class.
func alignOf(attrs map[string]any) string {
	switch v, _ := attrs["textAlign"].(string); v {
	case "left", "center", "right", "justify":
		return v
	default:
		return ""
	}
}

// levelOf reads the heading level, defaulting to 1 when absent or not a
// usable number. Out-of-range levels are carried through; the renderer
// buckets them into its default heading style.
func levelOf(attrs map[string]any) int {
	if f, ok := attrs["level"].(float64); ok && f != 0 {
		return int(f)
	}
	return 1
}

func stringAttr(attrs map[string]any, key string) string {
	s, _ := attrs[key].(string)
	return s
}
