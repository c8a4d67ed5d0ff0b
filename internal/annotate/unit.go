// Package annotate implements the label algebra behind text annotation:
// labeled ranges that may overlap freely are projected onto a per-character
// index of label sets and compacted back into canonical ranges, either one
// list per label (for storage) or one partition by full label set (for
// rendering).
//
// All offsets count runes and all ranges are half-open [Start, End).
package annotate

// LabelUnit is a contiguous run of characters carrying one label.
// Text caches the covered substring.
type LabelUnit struct {
	Start     int    `yaml:"start" json:"start"`
	End       int    `yaml:"end" json:"end"`
	LabelName string `yaml:"label" json:"labelName"`
	Text      string `yaml:"text" json:"text"`
}

// ChunkUnit is a maximal run of characters sharing the same label set.
// Chunks are derived for rendering and never stored.
type ChunkUnit struct {
	Start      int
	End        int
	LabelNames LabelSet
	Text       string
	Mark       bool
}

// Validate checks every unit against text. The first malformed unit is
// reported as a *RangeError.
func Validate(text string, units []LabelUnit) error {
	n := len([]rune(text))
	for _, u := range units {
		if err := checkRange(u.Start, u.End, u.LabelName, n); err != nil {
			return err
		}
	}
	return nil
}

// Refresh returns a copy of units with every Text recomputed from text.
func Refresh(text string, units []LabelUnit) ([]LabelUnit, error) {
	if err := Validate(text, units); err != nil {
		return nil, err
	}
	runes := []rune(text)
	out := make([]LabelUnit, len(units))
	for i, u := range units {
		u.Text = string(runes[u.Start:u.End])
		out[i] = u
	}
	return out, nil
}

// Normalize returns the canonical form of units: one maximal run per
// contiguous stretch of each label.
func Normalize(text string, units []LabelUnit) ([]LabelUnit, error) {
	ix, err := BuildIndex(text, units)
	if err != nil {
		return nil, err
	}
	return ix.LabelUnits(), nil
}
