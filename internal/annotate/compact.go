package annotate

// Chunks partitions the text into maximal runs of identical label sets.
// The chunks tile [0, Len()) in order; neighbors always differ in set.
func (ix *Index) Chunks() []ChunkUnit {
	if len(ix.sets) == 0 {
		return []ChunkUnit{}
	}

	var chunks []ChunkUnit
	start := 0
	for i := 1; i <= len(ix.sets); i++ {
		if i < len(ix.sets) && ix.sets[i].Equal(ix.sets[start]) {
			continue
		}
		set := ix.sets[start]
		chunks = append(chunks, ChunkUnit{
			Start:      start,
			End:        i,
			LabelNames: set,
			Text:       string(ix.runes[start:i]),
			Mark:       set.Len() > 0,
		})
		start = i
	}
	return chunks
}

// LabelUnits compacts the index into one maximal run per contiguous stretch
// of each label. Units are ordered by Start, then by label name.
func (ix *Index) LabelUnits() []LabelUnit {
	units := []LabelUnit{}
	// label name -> position in units of its most recent run
	last := make(map[string]int)

	for i, set := range ix.sets {
		for _, name := range set.names {
			if j, ok := last[name]; ok && units[j].End == i {
				units[j].End++
				continue
			}
			last[name] = len(units)
			units = append(units, LabelUnit{Start: i, End: i + 1, LabelName: name})
		}
	}

	for j := range units {
		units[j].Text = string(ix.runes[units[j].Start:units[j].End])
	}
	return units
}
