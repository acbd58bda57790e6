package charset

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Category classifies a zero-width codepoint.
type Category int

const (
	NotZeroWidth Category = iota
	SpacingModifier
	CombiningMark
	ZeroWidthJoiner
	DirectionMark
)

type span struct {
	lo, hi rune
	cat    Category
}

// Sorted by lo.
var zeroWidth = []span{
	{0x02B0, 0x02FF, SpacingModifier},
	{0x0300, 0x036F, CombiningMark},
	{0x1AB0, 0x1AFF, CombiningMark},
	{0x1DC0, 0x1DFF, CombiningMark},
	{0x200B, 0x200D, ZeroWidthJoiner},
	{0x200E, 0x200F, DirectionMark},
	{0x202A, 0x202E, DirectionMark},
	{0x2060, 0x206F, ZeroWidthJoiner},
	{0x20D0, 0x20FF, CombiningMark},
	{0xFE20, 0xFE2F, CombiningMark},
}

// Classifier decides display widths. The zero value treats spacing
// modifier letters as ordinary characters.
type Classifier struct {
	// SpacingModifiersZeroWidth makes U+02B0..U+02FF attach to the
	// previous cell.
	SpacingModifiersZeroWidth bool
	// EastAsianWide counts ambiguous-width characters as two columns.
	EastAsianWide bool
}

// ZeroWidth returns the zero-width category of r, NotZeroWidth when r
// occupies a column of its own.
func (c Classifier) ZeroWidth(r rune) Category {
	for _, s := range zeroWidth {
		if r < s.lo {
			return NotZeroWidth
		}
		if r <= s.hi {
			if s.cat == SpacingModifier && !c.SpacingModifiersZeroWidth {
				return NotZeroWidth
			}
			return s.cat
		}
	}
	return NotZeroWidth
}

// Width returns the number of columns r occupies: 0 for zero-width
// codepoints and otherwise 1 or 2. Codepoints runewidth reports as
// invisible still take one column so the cursor can land on them.
func (c Classifier) Width(r rune) int {
	if c.ZeroWidth(r) != NotZeroWidth {
		return 0
	}
	cond := narrow
	if c.EastAsianWide {
		cond = wide
	}
	switch cond.RuneWidth(r) {
	case 2:
		return 2
	default:
		return 1
	}
}

var (
	narrow = &runewidth.Condition{StrictEmojiNeutral: true}
	wide   = &runewidth.Condition{EastAsianWidth: true, StrictEmojiNeutral: true}
)

// Default is the classifier used when no configuration overrides it.
var Default Classifier

// ZeroWidth classifies r with the default classifier.
func ZeroWidth(r rune) Category { return Default.ZeroWidth(r) }

// Width measures r with the default classifier.
func Width(r rune) int { return Default.Width(r) }

// Truncate returns the longest prefix of s that fits in cols columns
// without splitting a grapheme cluster.
func Truncate(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	g := uniseg.NewGraphemes(s)
	used := 0
	end := 0
	for g.Next() {
		w := g.Width()
		if used+w > cols {
			break
		}
		used += w
		_, end = g.Positions()
	}
	return s[:end]
}

// StringWidth returns the column width of s measured by cluster.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}
