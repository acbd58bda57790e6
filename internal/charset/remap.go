package charset

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultReplacement is shown in place of remapped codepoints.
const DefaultReplacement rune = 0xFFFD

// Remap is a sorted table of codepoint ranges displayed as a single
// replacement character. The zero value maps nothing and uses
// DefaultReplacement for codepoints above MaxRune.
type Remap struct {
	ranges []span
	repl   rune
}

// Replacement returns the current replacement character.
func (m *Remap) Replacement() rune {
	if m == nil || m.repl == 0 {
		return DefaultReplacement
	}
	return m.repl
}

// SetReplacement changes the replacement character. Values outside
// 1..MaxRune are ignored.
func (m *Remap) SetReplacement(r rune) {
	if r > 0 && r <= MaxRune {
		m.repl = r
	}
}

// Add maps lo..hi inclusive. A range starting where an existing one starts
// replaces it.
func (m *Remap) Add(lo, hi rune) error {
	if lo <= 0 || hi < lo || hi > MaxRune {
		return fmt.Errorf("invalid range U+%04X-U+%04X", lo, hi)
	}
	i, found := slices.BinarySearchFunc(m.ranges, lo, func(s span, r rune) int {
		return int(s.lo - r)
	})
	if found {
		m.ranges[i].hi = hi
		return nil
	}
	m.ranges = slices.Insert(m.ranges, i, span{lo: lo, hi: hi})
	return nil
}

// Reset clears every range and restores the default replacement.
func (m *Remap) Reset() {
	m.ranges = nil
	m.repl = 0
}

// DisplayFor returns the character to show for r.
func (m *Remap) DisplayFor(r rune) rune {
	if r > MaxRune || r < 0 {
		return m.Replacement()
	}
	if m == nil {
		return r
	}
	for _, s := range m.ranges {
		if r < s.lo {
			return r
		}
		if r <= s.hi {
			return m.Replacement()
		}
	}
	return r
}

// Apply interprets a space separated command string:
//
//	reset              clear all ranges
//	repchar [U+]xxxx   set the replacement character
//	[U+]xxxx[-[U+]xxxx] map a codepoint or range
func (m *Remap) Apply(cmds string) error {
	toks := strings.Fields(cmds)
	for i := 0; i < len(toks); i++ {
		switch tok := toks[i]; tok {
		case "reset":
			m.Reset()
		case "repchar":
			i++
			if i >= len(toks) {
				return fmt.Errorf("repchar: missing value")
			}
			r, err := parseCodepoint(toks[i])
			if err != nil {
				return fmt.Errorf("repchar: %w", err)
			}
			m.SetReplacement(r)
		default:
			lo, hi, err := parseRange(tok)
			if err != nil {
				return err
			}
			if err := m.Add(lo, hi); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseRange(tok string) (rune, rune, error) {
	loStr, hiStr, isRange := strings.Cut(tok, "-")
	lo, err := parseCodepoint(loStr)
	if err != nil {
		return 0, 0, err
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err := parseCodepoint(hiStr)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

func parseCodepoint(s string) (rune, error) {
	s = strings.TrimPrefix(s, "U+")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", s, err)
	}
	return rune(v), nil
}
