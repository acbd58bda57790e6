package renderer

import (
	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/engine/buffer"
)

const hexDigits = "0123456789abcdef"

// vtmove sets the compositor cursor. col may be negative while painting
// a horizontally shifted line.
func (r *Renderer) vtmove(row, col int) {
	r.vtrow, r.vtcol = row, col
}

// vtputc writes one codepoint into the virtual screen at the compositor
// cursor, expanding tabs and control characters and marking overflow
// with '$' in the last column.
func (r *Renderer) vtputc(c rune) {
	if c > charset.MaxRune || c < 0 {
		c = r.remap.DisplayFor(c)
	}
	cells := r.vscreen.Rows[r.vtrow].Cells
	ncol := r.cols

	if r.class.ZeroWidth(c) != charset.NotZeroWidth {
		if r.vtcol > 0 && r.vtcol <= ncol {
			i := r.vtcol - 1
			for i > 0 && cells[i].Filler() {
				i--
			}
			r.noteError(cells[i].Extend(c))
		}
		return
	}

	if r.vtcol >= ncol {
		r.vtcol++
		// A wide character ending in the last column becomes '$' along
		// with its filler.
		for i := ncol - 1; i >= 0; i-- {
			if cells[i].Rune == '$' {
				break
			}
			if !cells[i].Filler() {
				cells[i].Set('$')
				break
			}
		}
		cells[ncol-1].Set('$')
		return
	}

	switch {
	case c == '\t':
		for {
			r.vtputc(' ')
			if (r.vtcol+r.taboff)&r.tabmask == 0 {
				break
			}
		}
		return
	case c < 0x20:
		r.vtputc('^')
		r.vtputc(c ^ 0x40)
		return
	case c == 0x7f:
		r.vtputc('^')
		r.vtputc('?')
		return
	case c >= 0x80 && c <= 0xa0:
		r.vtputc('\\')
		r.vtputc(rune(hexDigits[c>>4]))
		r.vtputc(rune(hexDigits[c&15]))
		return
	}

	cw := r.class.Width(c)
	switch {
	case r.vtcol >= 0 && r.vtcol+cw > ncol:
		// A wide character that does not fit in the last column.
		cells[ncol-1].Set('$')
	case r.vtcol >= 0:
		cells[r.vtcol].Set(c)
		for k := 1; k < cw; k++ {
			cells[r.vtcol+k].Set(0)
		}
	default:
		// Left of the visible area; a wide character straddling
		// column 0 leaves blanks.
		for p := r.vtcol + cw; p > 0; p-- {
			cells[p-1].Set(' ')
		}
	}
	r.vtcol += cw
}

// vtputs writes every codepoint of s.
func (r *Renderer) vtputs(s string) {
	b := []byte(s)
	for i := 0; i < len(b); {
		c, n := charset.Decode(b, i)
		r.vtputc(c)
		i += n
	}
}

// vteeol blanks the rest of the compositor row.
func (r *Renderer) vteeol() {
	cells := r.vscreen.Rows[r.vtrow].Cells
	if r.vtcol < 0 {
		r.vtcol = 0
	}
	for ; r.vtcol < r.cols; r.vtcol++ {
		cells[r.vtcol].Set(' ')
	}
}

// paintLine composes the text of one buffer line at the compositor
// cursor.
func (r *Renderer) paintLine(b *buffer.Buffer, id buffer.LineID) {
	if id == buffer.Header {
		return
	}
	text := b.Text(id)
	for i := 0; i < len(text); {
		c, n := charset.Decode(text, i)
		r.vtputc(c)
		i += n
	}
}

// advance returns the display column after c when c is placed at col.
func (r *Renderer) advance(col int, c rune) int {
	switch {
	case c == '\t':
		return (col | r.tabmask) + 1
	case c < 0x20 || c == 0x7f:
		return col + 2
	case c >= 0x80 && c <= 0xa0:
		return col + 3
	case c > charset.MaxRune || c < 0:
		return col + r.class.Width(r.remap.DisplayFor(c))
	}
	return col + r.class.Width(c)
}
