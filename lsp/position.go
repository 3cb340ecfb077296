package lsp

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// positions converts byte offsets of a text into LSP positions, whose
// character index counts UTF-16 code units.
type positions struct {
	text       string
	lineStarts []int
}

func newPositions(text string) *positions {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &positions{text: text, lineStarts: starts}
}

// At returns the position of the byte offset off.
func (p *positions) At(off int) (protocol.Position, error) {
	if off < 0 || off > len(p.text) {
		return protocol.Position{}, fmt.Errorf("offset %d out of range [0, %d]", off, len(p.text))
	}

	line := p.lineOf(off)
	col := 0
	for s := p.text[p.lineStarts[line]:off]; s != ""; {
		r, size := utf8.DecodeRuneInString(s)
		if n := utf16.RuneLen(r); n > 0 {
			col += n
		} else {
			col++
		}
		s = s[size:]
	}

	l, err := safecast.Conv[uint32](line)
	if err != nil {
		return protocol.Position{}, fmt.Errorf("line %d: %w", line, err)
	}
	c, err := safecast.Conv[uint32](col)
	if err != nil {
		return protocol.Position{}, fmt.Errorf("character %d: %w", col, err)
	}
	return protocol.Position{Line: l, Character: c}, nil
}

// lineOf returns the index of the line containing off.
func (p *positions) lineOf(off int) int {
	lo, hi := 0, len(p.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if p.lineStarts[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
