package selection

import (
	"strconv"
	"unicode/utf8"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

const (
	// BaseOffsetAttr holds the absolute offset of a chunk's first character.
	BaseOffsetAttr = "data-start"
	// BadgeClass marks inline label-name badges.
	BadgeClass = "labelName"
)

type htmlNode struct {
	n *html.Node
}

// HTMLNode adapts a parsed or rendered HTML node. Chunk wrappers are span or
// mark elements with a data-start attribute; badges carry the labelName
// class. It returns nil for a nil node.
func HTMLNode(n *html.Node) Node {
	if n == nil {
		return nil
	}
	return htmlNode{n: n}
}

func (h htmlNode) PreviousSibling() Node {
	return HTMLNode(h.n.PrevSibling)
}

func (h htmlNode) Parent() Node {
	return HTMLNode(h.n.Parent)
}

func (h htmlNode) NearestAncestorWithBaseOffset() (Node, int, bool) {
	for n := h.n; n != nil; n = n.Parent {
		if offset, ok := baseOffset(n); ok {
			return HTMLNode(n), offset, true
		}
	}
	return nil, 0, false
}

func (h htmlNode) TextLength() int {
	return TextLength(h.n)
}

func (h htmlNode) IsBadge() bool {
	return h.n.Type == html.ElementNode && dom.HasClass(h.n, BadgeClass)
}

func baseOffset(n *html.Node) (int, bool) {
	if n.Type != html.ElementNode {
		return 0, false
	}
	switch dom.NodeName(n) {
	case "span", "mark":
	default:
		return 0, false
	}
	v, ok := dom.GetAttribute(n, BaseOffsetAttr)
	if !ok {
		return 0, false
	}
	offset, err := strconv.Atoi(v)
	if err != nil || offset < 0 {
		return 0, false
	}
	return offset, true
}

// TextLength counts the characters of all text under n.
func TextLength(n *html.Node) int {
	if n.Type == html.TextNode {
		return utf8.RuneCountInString(n.Data)
	}
	total := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += TextLength(c)
	}
	return total
}
