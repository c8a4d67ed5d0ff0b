package annotate

// Index maps every character of a text to the set of labels covering it.
type Index struct {
	runes []rune
	sets  []LabelSet
}

// BuildIndex projects units onto text. Units may be in any order and may
// overlap. A malformed unit fails the call and no index is returned.
func BuildIndex(text string, units []LabelUnit) (*Index, error) {
	runes := []rune(text)
	if err := Validate(text, units); err != nil {
		return nil, err
	}
	ix := &Index{runes: runes, sets: make([]LabelSet, len(runes))}
	for _, u := range units {
		for i := u.Start; i < u.End; i++ {
			ix.sets[i] = ix.sets[i].With(u.LabelName)
		}
	}
	return ix, nil
}

// Len returns the number of indexed characters.
func (ix *Index) Len() int {
	return len(ix.sets)
}

// At returns the label set at position i.
func (ix *Index) At(i int) LabelSet {
	return ix.sets[i]
}

// Paint adds name to every position in [start, end).
func (ix *Index) Paint(start, end int, name string) error {
	if err := checkRange(start, end, name, len(ix.sets)); err != nil {
		return err
	}
	for i := start; i < end; i++ {
		ix.sets[i] = ix.sets[i].With(name)
	}
	return nil
}

// Equal reports whether both indexes carry the same label set at every
// position.
func (ix *Index) Equal(other *Index) bool {
	if len(ix.sets) != len(other.sets) {
		return false
	}
	for i := range ix.sets {
		if !ix.sets[i].Equal(other.sets[i]) {
			return false
		}
	}
	return true
}
