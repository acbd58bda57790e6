package renderer

import (
	"github.com/dshills/uemacs/internal/renderer/core"
)

// updateLine brings physical row row up to date with its virtual row.
// Only the region between the common prefix and the common suffix is
// written; trailing blanks are cleared with erase-to-end-of-line when
// that is cheaper.
func (r *Renderer) updateLine(row int) {
	vr := &r.vscreen.Rows[row]
	pr := &r.pscreen.Rows[row]
	v, p := vr.Cells, pr.Cells
	ncol := r.cols

	color := r.colorOK()
	if color {
		r.colorer.SetForeground(vr.ReqFG)
		r.colorer.SetBackground(vr.ReqBG)
	}

	rev := vr.Has(core.RowReverse)
	req := vr.Has(core.RowReverseReq)
	recolor := color && vr.Has(core.RowColor) &&
		(!vr.FG.Equals(vr.ReqFG) || !vr.BG.Equals(vr.ReqBG))
	vr.Flags &^= core.RowColor

	// A change of video attributes rewrites the whole row.
	if rev != req || recolor {
		r.moveCursor(row, 0)
		if req {
			r.term.SetReverse(true)
		}
		for i := 0; i < ncol; i++ {
			r.emit(&v[i])
			p[i].CloneFrom(&v[i])
		}
		if req {
			r.term.SetReverse(false)
		}
		vr.Flags &^= core.RowChanged
		if req {
			vr.Flags |= core.RowReverse
		} else {
			vr.Flags &^= core.RowReverse
		}
		vr.FG, vr.BG = vr.ReqFG, vr.ReqBG
		return
	}

	c1 := 0
	for c1 < ncol && v[c1].Equal(&p[c1]) {
		c1++
	}
	if c1 == ncol {
		vr.Flags &^= core.RowChanged
		return
	}
	// Never start output on the right half of a wide character.
	for c1 > 0 && v[c1].Filler() {
		c1--
	}

	nbflag := false
	c3 := ncol
	for c3 > c1 && v[c3-1].Equal(&p[c3-1]) {
		c3--
		if !v[c3].IsSpace() {
			nbflag = true
		}
	}

	c5 := c3
	if !nbflag && r.caps.EraseEOL && !req {
		for c5 > c1 && v[c5-1].IsSpace() {
			c5--
		}
		if c3-c5 <= r.opts.EraseThreshold {
			c5 = c3
		}
	}

	r.moveCursor(row, c1)
	if rev {
		r.term.SetReverse(true)
	}
	for ; c1 < c5; c1++ {
		r.emit(&v[c1])
		p[c1].CloneFrom(&v[c1])
	}
	if c5 != c3 {
		r.term.EraseEOL()
		for ; c1 < c3; c1++ {
			p[c1].CloneFrom(&v[c1])
		}
	}
	if rev {
		r.term.SetReverse(false)
	}
	vr.Flags &^= core.RowChanged
}

// emit writes one cell at the terminal cursor. Filler cells were covered
// by the wide character before them and only advance the column.
func (r *Renderer) emit(g *core.Grapheme) {
	if !g.Filler() {
		if d := r.remap.DisplayFor(g.Rune); d != g.Rune {
			var out core.Grapheme
			out.CloneFrom(g)
			out.Rune = d
			g = &out
		}
		r.term.Put(g)
	}
	r.ttcol++
}

// moveCursor moves the terminal cursor unless it is already there.
func (r *Renderer) moveCursor(row, col int) {
	if row != r.ttrow || col != r.ttcol {
		r.ttrow, r.ttcol = row, col
		r.term.Move(row, col)
	}
}

// repaintAll clears the terminal and the physical model so every row is
// rewritten by the differencer.
func (r *Renderer) repaintAll() {
	for i := range r.vscreen.Rows {
		vr := &r.vscreen.Rows[i]
		vr.Flags |= core.RowChanged | core.RowColor
		vr.Flags &^= core.RowReverse
		vr.FG, vr.BG = r.opts.FG, r.opts.BG
		r.pscreen.Rows[i].Blank()
	}
	r.moveCursor(0, 0)
	if r.colorOK() {
		r.colorer.SetForeground(r.opts.FG)
		r.colorer.SetBackground(r.opts.BG)
	}
	r.term.ErasePage()
	r.garbage = false
	r.messagePresent = false
	r.eraseMessageLine()
}
