package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"

	"github.com/dbh/md-annotate/internal/annotate"
	"github.com/dbh/md-annotate/internal/selection"
)

// ErrMalformed indicates markup whose chunk offsets do not line up with its
// text.
var ErrMalformed = errors.New("malformed annotation markup")

// Chunks returns the chunk wrapper elements under root in document order.
func Chunks(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if isChunk(n) {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// FindChunk returns the i-th chunk wrapper under root.
func FindChunk(root *html.Node, i int) (*html.Node, bool) {
	chunks := Chunks(root)
	if i < 0 || i >= len(chunks) {
		return nil, false
	}
	return chunks[i], true
}

// PointAt locates the text node holding the offset-th character of a chunk
// and returns it as a selection point. An offset equal to the chunk length
// points just past the last character.
func PointAt(chunk *html.Node, offset int) (selection.Point, bool) {
	var last *html.Node
	remaining := offset
	for _, t := range chunkTexts(chunk) {
		n := utf8.RuneCountInString(t.Data)
		if remaining < n {
			return selection.Point{Node: selection.HTMLNode(t), Offset: remaining}, true
		}
		remaining -= n
		last = t
	}
	if last != nil && remaining == 0 {
		return selection.Point{Node: selection.HTMLNode(last), Offset: utf8.RuneCountInString(last.Data)}, true
	}
	return selection.Point{}, false
}

// Extract recovers the text and canonical label units from markup produced
// with PlainText.
func Extract(root *html.Node) (string, []annotate.LabelUnit, error) {
	var sb strings.Builder
	var units []annotate.LabelUnit
	pos := 0

	for _, c := range Chunks(root) {
		start, _ := attrInt(c, selection.BaseOffsetAttr)
		end, ok := attrInt(c, EndOffsetAttr)

		var text strings.Builder
		for _, t := range chunkTexts(c) {
			text.WriteString(t.Data)
		}
		n := utf8.RuneCountInString(text.String())
		if start != pos || (ok && end != start+n) {
			return "", nil, fmt.Errorf("%w: chunk [%d,%d) holds %d characters at offset %d", ErrMalformed, start, end, n, pos)
		}
		sb.WriteString(text.String())

		for _, name := range badgeNames(c) {
			units = append(units, annotate.LabelUnit{Start: start, End: start + n, LabelName: name})
		}
		pos += n
	}

	text := sb.String()
	units, err := annotate.Normalize(text, units)
	if err != nil {
		return "", nil, err
	}
	return text, units, nil
}

func isChunk(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	self := selection.HTMLNode(n)
	base, _, ok := self.NearestAncestorWithBaseOffset()
	return ok && base == self
}

func attrInt(n *html.Node, key string) (int, bool) {
	v, ok := dom.GetAttribute(n, key)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	return i, err == nil
}

func isBadge(n *html.Node) bool {
	return n.Type == html.ElementNode && dom.HasClass(n, selection.BadgeClass)
}

// holdsBadge reports whether n is or contains a badge.
func holdsBadge(n *html.Node) bool {
	if isBadge(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if holdsBadge(c) {
			return true
		}
	}
	return false
}

// chunkTexts returns the text nodes of a chunk, skipping badge containers.
func chunkTexts(chunk *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				out = append(out, c)
			case c.Type == html.ElementNode && dom.NodeName(c) == "span" && holdsBadge(c):
			default:
				walk(c)
			}
		}
	}
	walk(chunk)
	return out
}

func badgeNames(chunk *html.Node) []string {
	var names []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if isBadge(n) {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			if name := strings.TrimSpace(sb.String()); name != "" {
				names = append(names, name)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(chunk)
	return names
}
