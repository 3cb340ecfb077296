// Package edit applies batches of text insertions to a source file.
package edit

import (
	"cmp"
	"slices"
	"strings"
)

// SortKey orders insertions that share an offset. Bands group the
// kinds of insertion; Index orders items within a band.
type SortKey struct {
	Band  int
	Index int
}

// Compare returns -1, 0 or +1 depending on whether k sorts before, with
// or after o.
func (k SortKey) Compare(o SortKey) int {
	if c := cmp.Compare(k.Band, o.Band); c != 0 {
		return c
	}
	return cmp.Compare(k.Index, o.Index)
}

// Less reports whether k sorts before o.
func (k SortKey) Less(o SortKey) bool { return k.Compare(o) < 0 }

// Insertion places Text before the byte at Offset of the original text.
type Insertion struct {
	Offset int
	Text   string
	Key    SortKey
}

// Sort orders insertions by offset, then key. Insertions that compare
// equal keep their relative order.
func Sort(ins []Insertion) {
	slices.SortStableFunc(ins, func(a, b Insertion) int {
		if c := cmp.Compare(a.Offset, b.Offset); c != 0 {
			return c
		}
		return a.Key.Compare(b.Key)
	})
}

// Apply returns text with every insertion applied. Offsets refer to the
// original text, so applying a batch is independent of the order the
// insertions were produced in. Offsets outside the text are clamped.
func Apply(text string, ins []Insertion) string {
	if len(ins) == 0 {
		return text
	}
	sorted := slices.Clone(ins)
	Sort(sorted)

	var b strings.Builder
	size := len(text)
	for _, in := range sorted {
		size += len(in.Text)
	}
	b.Grow(size)

	pos := 0
	for _, in := range sorted {
		at := min(max(in.Offset, pos), len(text))
		b.WriteString(text[pos:at])
		b.WriteString(in.Text)
		pos = at
	}
	b.WriteString(text[pos:])
	return b.String()
}
