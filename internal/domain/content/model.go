package content

// HTML is markup produced by the transformer's escaping and URL
// allow-listing, or raw markup from a trusted pre-rendered source.
// A renderer may inject a block's content without re-escaping only when
// the block says so (IsHTML set, or the html/code variants' own rules);
// plain-text content must still be escaped at render time.
type HTML string

// Block type tags. These match the wire format the site's block renderer
// consumes, so the names follow the editor's node vocabulary.
const (
	TypeParagraph   = "paragraph"
	TypeHeading     = "heading"
	TypeImage       = "image"
	TypeBulletList  = "bulletList"
	TypeOrderedList = "orderedList"
	TypeCode        = "code"
	TypeBlockquote  = "blockquote"
	TypeDivider     = "divider"
	TypeYoutube     = "youtube"
	TypeHTML        = "html"
)

// Block is one renderable unit of a post body.
type Block struct {
	Type     string `json:"type"`
	Content  HTML   `json:"content,omitempty"`
	Items    []HTML `json:"items,omitempty"`
	IsHTML   bool   `json:"isHtml,omitempty"`
	Align    string `json:"align,omitempty"`
	Level    int    `json:"level,omitempty"`
	Src      string `json:"src,omitempty"`
	Alt      string `json:"alt,omitempty"`
	Title    string `json:"title,omitempty"`
	Language string `json:"language,omitempty"`
}

// Doc is the transformed, render-ready form of a post body.
type Doc struct {
	Blocks []Block `json:"blocks"`
}

// Node is a single node of the editor's document tree. Which fields are
// meaningful depends on Type; unknown types are skipped during
// transformation, never rejected.
type Node struct {
	Type    string         `json:"type"`
	Content []Node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

// Mark is an inline style annotation on a text leaf.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}
