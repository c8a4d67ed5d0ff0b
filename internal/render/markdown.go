package render

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MarkdownText returns a TextFunc rendering chunk text as inline Markdown.
// Text that fails to convert is rendered as-is.
//
// The rendered characters can differ from the source characters, so
// selections over markdown output only resolve exactly when the chunk text
// has no markup.
func MarkdownText(md goldmark.Markdown) TextFunc {
	if md == nil {
		md = goldmark.New()
	}
	return func(s string) []*html.Node {
		var buf bytes.Buffer
		if err := md.Convert([]byte(s), &buf); err != nil {
			return PlainText(s)
		}

		// Strip the <p> goldmark wraps around the content
		out := strings.TrimSpace(buf.String())
		out = strings.TrimPrefix(out, "<p>")
		out = strings.TrimSuffix(out, "</p>")

		nodes, err := html.ParseFragment(strings.NewReader(out), &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Span,
			Data:     "span",
		})
		if err != nil || len(nodes) == 0 {
			return PlainText(s)
		}
		return nodes
	}
}
