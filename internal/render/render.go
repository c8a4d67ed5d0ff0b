// Package render turns chunk partitions into HTML that the selection
// resolver can read back: every chunk wrapper carries data-start and
// data-end, and labeled chunks end with a badge per label.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dbh/md-annotate/internal/annotate"
	"github.com/dbh/md-annotate/internal/selection"
)

// ColorFunc picks a color for a set of labels.
type ColorFunc func(annotate.LabelSet) string

// TextFunc turns the text of a chunk into nodes.
type TextFunc func(string) []*html.Node

// PlainText renders text as a single text node.
func PlainText(s string) []*html.Node {
	return []*html.Node{{Type: html.TextNode, Data: s}}
}

// Renderer builds HTML for chunks.
type Renderer struct {
	color ColorFunc
	text  TextFunc
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColor sets the color function. Defaults to PaletteColor.
func WithColor(f ColorFunc) Option {
	return func(r *Renderer) { r.color = f }
}

// WithText sets the text function. Defaults to PlainText.
func WithText(f TextFunc) Option {
	return func(r *Renderer) { r.text = f }
}

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{color: PaletteColor, text: PlainText}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Nodes returns a span holding one element per chunk.
func (r *Renderer) Nodes(chunks []annotate.ChunkUnit) *html.Node {
	root := element(atom.Span)
	for _, c := range chunks {
		root.AppendChild(r.chunk(c))
	}
	return root
}

// Render writes the HTML for chunks to w.
func (r *Renderer) Render(w io.Writer, chunks []annotate.ChunkUnit) error {
	return html.Render(w, r.Nodes(chunks))
}

// RenderString returns the HTML for chunks.
func (r *Renderer) RenderString(chunks []annotate.ChunkUnit) (string, error) {
	var sb strings.Builder
	if err := r.Render(&sb, chunks); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (r *Renderer) chunk(c annotate.ChunkUnit) *html.Node {
	if !c.Mark {
		n := element(atom.Span, offsets(c)...)
		appendAll(n, r.text(c.Text))
		return n
	}

	color := r.color(c.LabelNames)
	attrs := append([]html.Attribute{{Key: "style", Val: style(
		"background-color", color,
		"padding", "0 4px",
		"border-color", color,
		"border-width", "3px",
		"border-style", "solid",
		"cursor", "pointer",
	)}}, offsets(c)...)
	n := element(atom.Mark, attrs...)
	appendAll(n, r.text(c.Text))

	badges := element(atom.Span, html.Attribute{Key: "style", Val: style(
		"font-size", "0.7em",
		"font-weight", "500",
		"margin-left", "6px",
	)})
	for _, name := range c.LabelNames.Names() {
		badge := element(atom.Span,
			html.Attribute{Key: "class", Val: selection.BadgeClass},
			html.Attribute{Key: "style", Val: style(
				"background-color", r.color(annotate.NewLabelSet(name)),
				"padding", "0 4px",
				"border-color", "black",
				"border-radius", "3px",
				"border-width", "1px",
				"border-style", "solid",
				"cursor", "pointer",
			)},
		)
		badge.AppendChild(&html.Node{Type: html.TextNode, Data: name})
		badges.AppendChild(badge)
	}
	n.AppendChild(badges)
	return n
}

func offsets(c annotate.ChunkUnit) []html.Attribute {
	return []html.Attribute{
		{Key: selection.BaseOffsetAttr, Val: strconv.Itoa(c.Start)},
		{Key: EndOffsetAttr, Val: strconv.Itoa(c.End)},
	}
}

// EndOffsetAttr holds the offset just past a chunk's last character.
const EndOffsetAttr = "data-end"

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func appendAll(parent *html.Node, nodes []*html.Node) {
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		parent.AppendChild(n)
	}
}

// style joins property/value pairs into a CSS declaration list.
func style(pairs ...string) string {
	decls := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		decls = append(decls, fmt.Sprintf("%s: %s", pairs[i], pairs[i+1]))
	}
	return strings.Join(decls, "; ")
}
