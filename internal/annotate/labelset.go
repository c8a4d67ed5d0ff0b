package annotate

import (
	"sort"
	"strings"
)

// LabelSet is an immutable, sorted set of label names.
// The zero value is the empty set.
type LabelSet struct {
	names []string
}

// NewLabelSet returns the set of the given names, sorted and deduplicated.
func NewLabelSet(names ...string) LabelSet {
	if len(names) == 0 {
		return LabelSet{}
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	out := sorted[:1]
	for _, n := range sorted[1:] {
		if n != out[len(out)-1] {
			out = append(out, n)
		}
	}
	return LabelSet{names: out}
}

// Len returns the number of names in the set.
func (s LabelSet) Len() int {
	return len(s.names)
}

// Has reports whether name is in the set.
func (s LabelSet) Has(name string) bool {
	i := sort.SearchStrings(s.names, name)
	return i < len(s.names) && s.names[i] == name
}

// Names returns the names in ascending order. The slice is a copy.
func (s LabelSet) Names() []string {
	if len(s.names) == 0 {
		return nil
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// With returns a set that also contains name. s is left unchanged.
func (s LabelSet) With(name string) LabelSet {
	i := sort.SearchStrings(s.names, name)
	if i < len(s.names) && s.names[i] == name {
		return s
	}
	out := make([]string, 0, len(s.names)+1)
	out = append(out, s.names[:i]...)
	out = append(out, name)
	out = append(out, s.names[i:]...)
	return LabelSet{names: out}
}

// Equal reports whether s and other hold the same names.
func (s LabelSet) Equal(other LabelSet) bool {
	if len(s.names) != len(other.names) {
		return false
	}
	for i := range s.names {
		if s.names[i] != other.names[i] {
			return false
		}
	}
	return true
}

func (s LabelSet) String() string {
	return "{" + strings.Join(s.names, ",") + "}"
}
