package region

// Equivalences records which provisional labels belong to the same physical
// region. Classes are pairwise disjoint; a label that appears in no class is
// its own singleton class.
type Equivalences struct {
	classes  [][]int
	lastFrom int
	lastTo   int
}

// NewEquivalences returns an empty table.
func NewEquivalences() *Equivalences {
	return &Equivalences{lastFrom: NoLabel, lastTo: NoLabel}
}

// Add declares from and to connected.
func (e *Equivalences) Add(from, to int) {
	e.lastFrom, e.lastTo = from, to

	fromIdx, toIdx := -1, -1
	for i, class := range e.classes {
		for _, label := range class {
			if label == from {
				fromIdx = i
			}
			if label == to {
				toIdx = i
			}
		}
	}

	switch {
	case fromIdx != -1 && toIdx != -1:
		if fromIdx != toIdx {
			e.classes[fromIdx] = append(e.classes[fromIdx], e.classes[toIdx]...)
			e.classes = append(e.classes[:toIdx], e.classes[toIdx+1:]...)
		}
	case fromIdx == -1 && toIdx == -1:
		if from != to {
			e.classes = append(e.classes, []int{from, to})
		}
	case fromIdx != -1:
		e.classes[fromIdx] = append(e.classes[fromIdx], to)
	default:
		e.classes[toIdx] = append(e.classes[toIdx], from)
	}
}

// Recent reports whether (from, to) was the pair passed to the last Add.
func (e *Equivalences) Recent(from, to int) bool {
	return e.lastFrom == from && e.lastTo == to
}

// Classes returns the classes in discovery order. The slices are owned by
// the table.
func (e *Equivalences) Classes() [][]int { return e.classes }

// Len returns the number of non-singleton classes.
func (e *Equivalences) Len() int { return len(e.classes) }
