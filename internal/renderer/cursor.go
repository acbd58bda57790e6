package renderer

import (
	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/engine/buffer"
	"github.com/dshills/uemacs/internal/engine/window"
	"github.com/dshills/uemacs/internal/renderer/core"
)

// updatePosition computes the cursor row and column of the current
// window and handles lines wider than the screen.
func (r *Renderer) updatePosition() {
	w := r.windows.Current()
	b := w.Buffer()
	if b == nil {
		return
	}

	lp := w.Top
	r.currow = w.TopRow
	for lp != w.Dot.Line {
		r.currow++
		if lp == buffer.Header || r.currow >= w.TopRow+w.Rows {
			// The window was not flagged after dot moved away.
			r.currow = w.TopRow
			r.curcol = 0
			r.lbound = 0
			w.Flags |= window.FlagMove
			return
		}
		lp = b.Next(lp)
	}

	col := 0
	if lp != buffer.Header {
		text := b.Text(lp)
		off := min(max(w.Dot.Offset, 0), len(text))
		text = text[:off]
		for i := 0; i < len(text); {
			c, n := charset.Decode(text, i)
			col = r.advance(col, c)
			i += n
		}
	}
	r.curcol = col - w.FCol

	for r.curcol < 0 {
		if w.FCol >= r.opts.HJump {
			r.curcol += r.opts.HJump
			w.FCol -= r.opts.HJump
		} else {
			r.curcol += w.FCol
			w.FCol = 0
		}
		w.Flags |= window.FlagHard | window.FlagMode
	}

	switch {
	case r.opts.HScroll:
		r.lbound = 0
		for r.curcol >= r.cols-1 {
			r.curcol -= r.opts.HJump
			w.FCol += r.opts.HJump
			w.Flags |= window.FlagHard | window.FlagMode
		}
	case r.curcol >= r.cols-1:
		r.vscreen.Rows[r.currow].Flags |= core.RowExtended | core.RowChanged
		r.updateExtended(w, lp)
	default:
		r.lbound = 0
	}
}

// updateExtended shifts the cursor line left so the cursor is visible
// and marks column 0 with '$'.
func (r *Renderer) updateExtended(w *window.Window, lp buffer.LineID) {
	rcursor := ((r.curcol - r.cols) % r.scrsiz) + r.margin
	r.lbound = r.curcol - rcursor + 1
	r.taboff = r.lbound + w.FCol

	r.vtmove(r.currow, -r.taboff)
	r.paintLine(w.Buffer(), lp)
	r.vteeol()
	r.taboff = 0

	cells := r.vscreen.Rows[r.currow].Cells
	cw := 1
	if !cells[0].Filler() {
		cw = max(r.class.Width(cells[0].Rune), 1)
	}
	cells[0].Set('$')
	for p := cw - 1; p > 0 && p < len(cells); p-- {
		cells[p].Set(' ')
	}
}
