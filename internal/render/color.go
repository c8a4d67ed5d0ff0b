package render

import (
	"strings"

	"github.com/zeebo/blake3"

	"github.com/dbh/md-annotate/internal/annotate"
)

// Palette is the set of background colors PaletteColor picks from.
var Palette = []string{
	"#ffd54f",
	"#81d4fa",
	"#a5d6a7",
	"#f48fb1",
	"#ce93d8",
	"#ffab91",
	"#80cbc4",
	"#e6ee9c",
}

// PaletteColor picks a palette entry from a digest of the label names, so a
// given set always gets the same color.
func PaletteColor(set annotate.LabelSet) string {
	sum := blake3.Sum256([]byte(strings.Join(set.Names(), "\x00")))
	return Palette[int(sum[0])%len(Palette)]
}

// Colors maps single labels to configured colors. Sets of several labels use
// Overlap when it is set. Anything else falls back to PaletteColor.
type Colors struct {
	Labels  map[string]string
	Overlap string
}

// Color implements ColorFunc.
func (c Colors) Color(set annotate.LabelSet) string {
	if set.Len() > 1 && c.Overlap != "" {
		return c.Overlap
	}
	if set.Len() == 1 {
		if v, ok := c.Labels[set.Names()[0]]; ok {
			return v
		}
	}
	return PaletteColor(set)
}
