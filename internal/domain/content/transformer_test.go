package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(nodes string) json.RawMessage {
	return json.RawMessage(`{"type":"doc","content":[` + nodes + `]}`)
}

func TestTransformInputPolicy(t *testing.T) {
	t.Run("nil input yields empty document", func(t *testing.T) {
		out := Transform(nil)
		assert.Empty(t, out.Blocks)
		assert.NotNil(t, out.Blocks)
	})

	t.Run("json null yields empty document", func(t *testing.T) {
		assert.Empty(t, Transform(json.RawMessage(`null`)).Blocks)
	})

	t.Run("plain string becomes a single raw html block", func(t *testing.T) {
		out := Transform(json.RawMessage(`"<p>legacy body</p>"`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, TypeHTML, out.Blocks[0].Type)
		assert.Equal(t, HTML("<p>legacy body</p>"), out.Blocks[0].Content)
	})

	t.Run("already transformed document passes through unchanged", func(t *testing.T) {
		original := Doc{Blocks: []Block{
			{Type: TypeParagraph, Content: "hello", IsHTML: true},
			{Type: TypeDivider},
		}}
		raw, err := json.Marshal(original)
		require.NoError(t, err)

		assert.Equal(t, original, Transform(raw))
	})

	t.Run("transform is idempotent", func(t *testing.T) {
		once := Transform(doc(`{"type":"paragraph","content":[{"type":"text","text":"hi"}]}`))
		raw, err := json.Marshal(once)
		require.NoError(t, err)
		assert.Equal(t, once, Transform(raw))
	})

	t.Run("document without a content array yields empty document", func(t *testing.T) {
		assert.Empty(t, Transform(json.RawMessage(`{"type":"doc"}`)).Blocks)
		assert.Empty(t, Transform(json.RawMessage(`{"foo":1}`)).Blocks)
	})

	t.Run("never fails on malformed input", func(t *testing.T) {
		for _, raw := range []string{``, `   `, `{`, `[1,2,3]`, `42`, `true`, `{"content":"nope"}`, `{"blocks":"nope"}`} {
			assert.Empty(t, Transform(json.RawMessage(raw)).Blocks, "input %q", raw)
		}
	})
}

func TestTransformParagraph(t *testing.T) {
	tests := []struct {
		name string
		node string
		want []Block
	}{
		{
			name: "text is escaped",
			node: `{"type":"paragraph","content":[{"type":"text","text":"a < b & c > d"}]}`,
			want: []Block{{Type: TypeParagraph, Content: "a &lt; b &amp; c &gt; d", IsHTML: true}},
		},
		{
			name: "alignment carried from attributes",
			node: `{"type":"paragraph","attrs":{"textAlign":"center"},"content":[{"type":"text","text":"x"}]}`,
			want: []Block{{Type: TypeParagraph, Content: "x", IsHTML: true, Align: "center"}},
		},
		{
			name: "unknown alignment dropped",
			node: `{"type":"paragraph","attrs":{"textAlign":"middle"},"content":[{"type":"text","text":"x"}]}`,
			want: []Block{{Type: TypeParagraph, Content: "x", IsHTML: true}},
		},
		{
			name: "empty paragraph suppressed",
			node: `{"type":"paragraph","content":[{"type":"text","text":"   "}]}`,
			want: []Block{},
		},
		{
			name: "paragraph without children suppressed",
			node: `{"type":"paragraph"}`,
			want: []Block{},
		},
		{
			name: "hard break contributes a line break",
			node: `{"type":"paragraph","content":[{"type":"text","text":"a"},{"type":"hardBreak"},{"type":"text","text":"b"}]}`,
			want: []Block{{Type: TypeParagraph, Content: "a<br />b", IsHTML: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transform(doc(tt.node)).Blocks)
		})
	}
}

func TestTransformMarks(t *testing.T) {
	t.Run("later marks wrap earlier ones", func(t *testing.T) {
		out := Transform(doc(`{"type":"paragraph","content":[{"type":"text","text":"x","marks":[{"type":"bold"},{"type":"italic"}]}]}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, HTML("<em><strong>x</strong></em>"), out.Blocks[0].Content)
	})

	t.Run("all basic marks", func(t *testing.T) {
		tests := []struct {
			mark string
			want HTML
		}{
			{"bold", "<strong>x</strong>"},
			{"italic", "<em>x</em>"},
			{"underline", "<u>x</u>"},
			{"strike", "<s>x</s>"},
			{"code", "<code>x</code>"},
		}
		for _, tt := range tests {
			out := Transform(doc(`{"type":"paragraph","content":[{"type":"text","text":"x","marks":[{"type":"` + tt.mark + `"}]}]}`))
			require.Len(t, out.Blocks, 1, tt.mark)
			assert.Equal(t, tt.want, out.Blocks[0].Content, tt.mark)
		}
	})

	t.Run("unknown marks are ignored", func(t *testing.T) {
		out := Transform(doc(`{"type":"paragraph","content":[{"type":"text","text":"x","marks":[{"type":"sparkle"},{"type":"bold"}]}]}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, HTML("<strong>x</strong>"), out.Blocks[0].Content)
	})
}

func TestTransformLinks(t *testing.T) {
	link := func(href string) json.RawMessage {
		n, _ := json.Marshal(href)
		return doc(`{"type":"paragraph","content":[{"type":"text","text":"go","marks":[{"type":"link","attrs":{"href":` + string(n) + `}}]}]}`)
	}

	t.Run("allowed schemes pass through", func(t *testing.T) {
		for _, href := range []string{
			"https://example.com/a",
			"http://example.com",
			"HTTPS://EXAMPLE.COM",
			"mailto:me@example.com",
			"tel:+123456",
			"#section",
			"/blog/post",
		} {
			out := Transform(link(href))
			require.Len(t, out.Blocks, 1, href)
			assert.Contains(t, string(out.Blocks[0].Content), `href="`+href+`"`, href)
		}
	})

	t.Run("disallowed schemes collapse to fragment", func(t *testing.T) {
		for _, href := range []string{
			"javascript:alert(1)",
			"JavaScript:alert(1)",
			"  javascript:alert(1)",
			"data:text/html;base64,xxxx",
			"vbscript:evil",
			"ftp://example.com",
			"",
		} {
			out := Transform(link(href))
			require.Len(t, out.Blocks, 1, href)
			assert.Equal(t, HTML(`<a href="#">go</a>`), out.Blocks[0].Content, href)
		}
	})

	t.Run("href quotes are escaped", func(t *testing.T) {
		out := Transform(link(`https://example.com/?q="x"`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, HTML(`<a href="https://example.com/?q=&quot;x&quot;">go</a>`), out.Blocks[0].Content)
	})

	t.Run("target adds rel noopener", func(t *testing.T) {
		out := Transform(doc(`{"type":"paragraph","content":[{"type":"text","text":"go","marks":[{"type":"link","attrs":{"href":"https://example.com","target":"_blank"}}]}]}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, HTML(`<a href="https://example.com" target="_blank" rel="noopener noreferrer">go</a>`), out.Blocks[0].Content)
	})
}

func TestTransformHeading(t *testing.T) {
	t.Run("level from attributes", func(t *testing.T) {
		out := Transform(doc(`{"type":"heading","attrs":{"level":3},"content":[{"type":"text","text":"Title"}]}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, Block{Type: TypeHeading, Content: "Title", IsHTML: true, Level: 3}, out.Blocks[0])
	})

	t.Run("missing level defaults to 1", func(t *testing.T) {
		out := Transform(doc(`{"type":"heading","content":[{"type":"text","text":"Title"}]}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, 1, out.Blocks[0].Level)
	})

	t.Run("non numeric level defaults to 1", func(t *testing.T) {
		out := Transform(doc(`{"type":"heading","attrs":{"level":"big"},"content":[{"type":"text","text":"Title"}]}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, 1, out.Blocks[0].Level)
	})
}

func TestTransformLists(t *testing.T) {
	t.Run("items serialized and joined with line breaks", func(t *testing.T) {
		out := Transform(doc(`{"type":"bulletList","content":[
			{"type":"listItem","content":[
				{"type":"paragraph","content":[{"type":"text","text":"one"}]},
				{"type":"paragraph","content":[{"type":"text","text":"two"}]}
			]},
			{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"three"}]}]}
		]}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, Block{
			Type:   TypeBulletList,
			Items:  []HTML{"one<br />two", "three"},
			IsHTML: true,
		}, out.Blocks[0])
	})

	t.Run("empty items filtered out", func(t *testing.T) {
		out := Transform(doc(`{"type":"orderedList","content":[
			{"type":"listItem","content":[{"type":"paragraph","content":[]}]},
			{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"kept"}]}]}
		]}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, TypeOrderedList, out.Blocks[0].Type)
		assert.Equal(t, []HTML{"kept"}, out.Blocks[0].Items)
	})

	t.Run("list with only empty items suppressed", func(t *testing.T) {
		out := Transform(doc(`{"type":"bulletList","content":[
			{"type":"listItem","content":[{"type":"paragraph","content":[]}]},
			{"type":"listItem"}
		]}`))
		assert.Empty(t, out.Blocks)
	})
}

func TestTransformCodeBlock(t *testing.T) {
	t.Run("code is verbatim, never escaped", func(t *testing.T) {
		out := Transform(doc(`{"type":"codeBlock","attrs":{"language":"go"},"content":[
			{"type":"text","text":"if a < b {"},
			{"type":"text","text":" fmt.Println(\"<>\") }"}
		]}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, Block{
			Type:     TypeCode,
			Content:  `if a < b { fmt.Println("<>") }`,
			Language: "go",
		}, out.Blocks[0])
	})

	t.Run("language optional", func(t *testing.T) {
		out := Transform(doc(`{"type":"codeBlock","content":[{"type":"text","text":"x"}]}`))
		require.Len(t, out.Blocks, 1)
		assert.Empty(t, out.Blocks[0].Language)
	})
}

func TestTransformBlockquote(t *testing.T) {
	t.Run("paragraph children joined with line breaks", func(t *testing.T) {
		out := Transform(doc(`{"type":"blockquote","content":[
			{"type":"paragraph","content":[{"type":"text","text":"first"}]},
			{"type":"paragraph","content":[{"type":"text","text":"second"}]}
		]}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, HTML("first<br />second"), out.Blocks[0].Content)
		assert.True(t, out.Blocks[0].IsHTML)
	})

	t.Run("bare text children escaped", func(t *testing.T) {
		out := Transform(doc(`{"type":"blockquote","content":[{"type":"text","text":"a < b"}]}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, HTML("a &lt; b"), out.Blocks[0].Content)
	})

	t.Run("empty blockquote suppressed", func(t *testing.T) {
		out := Transform(doc(`{"type":"blockquote","content":[{"type":"paragraph","content":[]}]}`))
		assert.Empty(t, out.Blocks)
	})
}

func TestTransformMedia(t *testing.T) {
	t.Run("image requires src", func(t *testing.T) {
		out := Transform(doc(`{"type":"image","attrs":{"src":"https://cdn.example.com/a.png","alt":"cover","title":"Cover"}}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, Block{Type: TypeImage, Src: "https://cdn.example.com/a.png", Alt: "cover", Title: "Cover"}, out.Blocks[0])

		assert.Empty(t, Transform(doc(`{"type":"image","attrs":{"alt":"no source"}}`)).Blocks)
	})

	t.Run("youtube requires src", func(t *testing.T) {
		out := Transform(doc(`{"type":"youtube","attrs":{"src":"https://youtu.be/abc123"}}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, Block{Type: TypeYoutube, Src: "https://youtu.be/abc123"}, out.Blocks[0])

		assert.Empty(t, Transform(doc(`{"type":"youtube"}`)).Blocks)
	})

	t.Run("horizontal rule becomes divider", func(t *testing.T) {
		out := Transform(doc(`{"type":"horizontalRule"}`))
		require.Len(t, out.Blocks, 1)
		assert.Equal(t, Block{Type: TypeDivider}, out.Blocks[0])
	})
}

func TestTransformUnknownNodes(t *testing.T) {
	out := Transform(doc(`{"type":"tableOfContents"},{"type":"paragraph","content":[{"type":"text","text":"kept"}]},{"type":"callout","content":[{"type":"text","text":"gone"}]}`))
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, HTML("kept"), out.Blocks[0].Content)
}

func TestTransformPreservesOrder(t *testing.T) {
	out := Transform(doc(`{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"h"}]},
		{"type":"paragraph","content":[{"type":"text","text":"p"}]},
		{"type":"horizontalRule"},
		{"type":"codeBlock","content":[{"type":"text","text":"c"}]}`))
	require.Len(t, out.Blocks, 4)
	assert.Equal(t, []string{TypeHeading, TypeParagraph, TypeDivider, TypeCode},
		[]string{out.Blocks[0].Type, out.Blocks[1].Type, out.Blocks[2].Type, out.Blocks[3].Type})
}

func TestInlineSerializationRecursesUnknownContainers(t *testing.T) {
	out := Transform(doc(`{"type":"paragraph","content":[
		{"type":"span","content":[{"type":"text","text":"inner"}]},
		{"type":"widget"}
	]}`))
	require.Len(t, out.Blocks, 1)
	assert.Equal(t, HTML("inner"), out.Blocks[0].Content)
}
