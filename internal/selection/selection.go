// Package selection turns a captured text selection into absolute character
// offsets of the annotated text.
//
// A selection endpoint is a leaf of a rendered tree plus a character offset
// inside that leaf. Every rendered chunk wrapper knows the absolute offset of
// its first character (its base offset); the resolver adds the text length of
// everything preceding the leaf inside the wrapper.
package selection

import "fmt"

// Node is a position in a rendered tree.
//
// Implementations must be comparable and identify nodes by ==, which holds
// for pointer-backed types.
type Node interface {
	PreviousSibling() Node
	Parent() Node
	// NearestAncestorWithBaseOffset returns the closest node, starting with
	// the receiver, that carries a base offset.
	NearestAncestorWithBaseOffset() (Node, int, bool)
	// TextLength is the number of characters of text under the node.
	TextLength() int
	// IsBadge reports whether the node is a label-name badge.
	IsBadge() bool
}

// Point is one end of a selection.
type Point struct {
	Node   Node
	Offset int
}

// Snapshot is the selection captured once per user gesture.
type Snapshot struct {
	Anchor Point
	Focus  Point
}

// Collapsed reports whether anchor and focus are the same position.
func (s Snapshot) Collapsed() bool {
	return s.Anchor.Node == s.Focus.Node && s.Anchor.Offset == s.Focus.Offset
}

// Range is a half-open character range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns End - Start.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range covers no characters.
func (r Range) Empty() bool {
	return r.Start >= r.End
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Resolve converts s into an ordered character range. Every failure is a
// *NoopError; the caller should leave its labels untouched.
func Resolve(s Snapshot) (Range, error) {
	if s.Anchor.Node == nil || s.Focus.Node == nil {
		return Range{}, ErrNoSelection
	}
	if s.Collapsed() {
		return Range{}, ErrCollapsed
	}
	if inBadge(s.Anchor.Node) || inBadge(s.Focus.Node) {
		return Range{}, ErrBadge
	}

	start, err := absolute(s.Anchor)
	if err != nil {
		return Range{}, err
	}
	end, err := absolute(s.Focus)
	if err != nil {
		return Range{}, err
	}

	if backwards(s) {
		start, end = end, start
	}
	if start == end {
		return Range{}, ErrCollapsed
	}
	return Range{Start: start, End: end}, nil
}

func inBadge(n Node) bool {
	for ; n != nil; n = n.Parent() {
		if n.IsBadge() {
			return true
		}
	}
	return false
}

func absolute(p Point) (int, error) {
	base, offset, ok := p.Node.NearestAncestorWithBaseOffset()
	if !ok {
		return 0, ErrNoBaseOffset
	}
	local, ok := localOffset(p.Node, base)
	if !ok {
		return 0, ErrNoBaseOffset
	}
	return offset + local + p.Offset, nil
}

// localOffset sums the text of everything before n inside base.
func localOffset(n, base Node) (int, bool) {
	total := 0
	for n != base {
		if prev := n.PreviousSibling(); prev != nil {
			total += prev.TextLength()
			n = prev
			continue
		}
		n = n.Parent()
		if n == nil {
			return 0, false
		}
	}
	return total, true
}

func backwards(s Snapshot) bool {
	if s.Anchor.Node == s.Focus.Node {
		return s.Focus.Offset < s.Anchor.Offset
	}
	return Compare(s.Focus.Node, s.Anchor.Node) < 0
}

// Compare orders a and b in tree order: -1 if a comes first, 1 if b does,
// 0 if they are the same node or belong to different trees. An ancestor
// precedes its descendants.
func Compare(a, b Node) int {
	if a == b {
		return 0
	}
	pa, ra := path(a)
	pb, rb := path(b)
	if ra != rb {
		return 0
	}
	for i := 0; i < len(pa) && i < len(pb); i++ {
		switch {
		case pa[i] < pb[i]:
			return -1
		case pa[i] > pb[i]:
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

// path returns the sibling indexes from the root down to n, and the root.
func path(n Node) ([]int, Node) {
	var rev []int
	root := n
	for n != nil {
		i := 0
		for p := n.PreviousSibling(); p != nil; p = p.PreviousSibling() {
			i++
		}
		rev = append(rev, i)
		root = n
		n = n.Parent()
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out, root
}
