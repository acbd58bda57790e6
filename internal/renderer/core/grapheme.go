package core

import (
	"errors"
	"slices"
)

// ErrGraphemeFull is returned when a cell cannot take another zero-width
// codepoint.
var ErrGraphemeFull = errors.New("grapheme cell is full")

// MaxExtra bounds the zero-width codepoints stored past the first mark.
const MaxExtra = 16

// Grapheme is one screen cell: a base codepoint, an optional first
// combining mark and any further zero-width codepoints. A zero base marks
// the filler cell to the right of a double-width character.
type Grapheme struct {
	Rune  rune
	Mark  rune
	extra []rune
}

// Blank is a cell holding a space.
var Blank = Grapheme{Rune: ' '}

// Set replaces the cell with a single base codepoint.
func (g *Grapheme) Set(r rune) {
	g.Rune = r
	g.Mark = 0
	g.extra = g.extra[:0]
}

// Extend attaches a zero-width codepoint. The cell is left unchanged when
// it is full.
func (g *Grapheme) Extend(r rune) error {
	if g.Mark == 0 {
		g.Mark = r
		return nil
	}
	if len(g.extra) >= MaxExtra {
		return ErrGraphemeFull
	}
	g.extra = append(g.extra, r)
	return nil
}

// Extra returns the zero-width codepoints past the first mark. The slice
// must not be modified.
func (g *Grapheme) Extra() []rune { return g.extra }

// Filler reports whether the cell continues a double-width character.
func (g *Grapheme) Filler() bool { return g.Rune == 0 }

// IsSpace reports whether the cell is a plain space.
func (g *Grapheme) IsSpace() bool {
	return g.Rune == ' ' && g.Mark == 0 && len(g.extra) == 0
}

// Equal compares base, mark and every extra codepoint.
func (g *Grapheme) Equal(o *Grapheme) bool {
	return g.Rune == o.Rune && g.Mark == o.Mark && slices.Equal(g.extra, o.extra)
}

// CloneFrom makes g a deep copy of src. The extra codepoints are copied
// into g's own storage so the two cells never share memory.
func (g *Grapheme) CloneFrom(src *Grapheme) {
	g.Rune = src.Rune
	g.Mark = src.Mark
	g.extra = append(g.extra[:0], src.extra...)
}

// Runes returns every codepoint of the cell in output order.
func (g *Grapheme) Runes() []rune {
	out := make([]rune, 0, 2+len(g.extra))
	out = append(out, g.Rune)
	if g.Mark != 0 {
		out = append(out, g.Mark)
	}
	return append(out, g.extra...)
}
