package renderer

import (
	"github.com/dshills/uemacs/internal/engine/buffer"
	"github.com/dshills/uemacs/internal/engine/window"
	"github.com/dshills/uemacs/internal/renderer/core"
)

// updateWindows services every flagged window: reframe, compose the rows
// the flags ask for and redraw the mode line.
func (r *Renderer) updateWindows() {
	for _, w := range r.windows.Windows() {
		if w.Flags == 0 {
			continue
		}
		if !r.checkWindow(w) {
			w.Flags = 0
			continue
		}
		r.reframe(w)

		if w.Has(window.FlagKills | window.FlagInserts) {
			r.scrflags |= w.Flags & (window.FlagKills | window.FlagInserts)
			w.Flags &^= window.FlagKills | window.FlagInserts
		}

		if w.Flags&^window.FlagMode == window.FlagEdit {
			r.updateOne(w)
		} else if w.Flags&^window.FlagMove != 0 {
			r.updateAll(w)
		}
		if r.scrflags != 0 || w.Has(window.FlagMode) {
			r.modeLine(w)
		}
		w.Flags = 0
		w.Force = 0
	}
}

// reframe picks a new top line when dot is outside w or a reframe was
// forced. Dot one line above or below the window turns into a gentle
// scroll that the scroll optimizer can exploit.
func (r *Renderer) reframe(w *window.Window) {
	b := w.Buffer()
	i := 0
	if !w.Has(window.FlagForce) {
		lp := w.Top
		if prev := b.Prev(lp); prev != buffer.Header {
			i = -1
			lp = prev
		}
		for ; i <= w.Rows; i++ {
			if lp == w.Dot.Line {
				if i < 0 || i == w.Rows {
					if !r.canScroll() {
						i = w.Force
					}
					break
				}
				return
			}
			if lp == buffer.Header {
				break
			}
			lp = b.Next(lp)
		}
	}

	switch i {
	case -1:
		i = r.opts.ScrollJump
		r.scrflags |= window.FlagInserts
	case w.Rows:
		i = -r.opts.ScrollJump
		r.scrflags |= window.FlagKills
	default:
		i = w.Force
	}

	w.Flags |= window.FlagMode

	switch {
	case i > 0:
		i--
		if i >= w.Rows {
			i = w.Rows - 1
		}
	case i < 0:
		i += w.Rows
		if i < 0 {
			i = 0
		}
	default:
		i = w.Rows / 2
	}

	lp := w.Dot.Line
	for i != 0 && b.Prev(lp) != buffer.Header {
		i--
		lp = b.Prev(lp)
	}
	w.Top = lp
	w.Flags |= window.FlagHard
	w.Flags &^= window.FlagForce
}

// updateOne recomposes only the row holding dot.
func (r *Renderer) updateOne(w *window.Window) {
	b := w.Buffer()
	lp := w.Top
	sline := w.TopRow
	for lp != w.Dot.Line {
		if lp == buffer.Header || sline+1 >= w.TopRow+w.Rows {
			// Dot is not on screen; repaint the whole window instead.
			r.updateAll(w)
			return
		}
		sline++
		lp = b.Next(lp)
	}

	row := &r.vscreen.Rows[sline]
	row.Flags |= core.RowChanged
	row.Flags &^= core.RowReverseReq
	r.taboff = w.FCol
	r.vtmove(sline, -r.taboff)
	r.paintLine(b, lp)
	row.RequestColors(r.windowColors(w))
	r.vteeol()
	r.taboff = 0
}

// updateAll recomposes every row of w.
func (r *Renderer) updateAll(w *window.Window) {
	b := w.Buffer()
	lp := w.Top
	fg, bg := r.windowColors(w)
	for sline := w.TopRow; sline < w.TopRow+w.Rows; sline++ {
		row := &r.vscreen.Rows[sline]
		row.Flags |= core.RowChanged
		row.Flags &^= core.RowReverseReq
		r.taboff = w.FCol
		r.vtmove(sline, -r.taboff)
		if lp != buffer.Header {
			r.paintLine(b, lp)
			lp = b.Next(lp)
		}
		row.RequestColors(fg, bg)
		r.vteeol()
	}
	r.taboff = 0
}

// deExtend restores rows that were extended for a cursor that has since
// left them.
func (r *Renderer) deExtend() {
	cur := r.windows.Current()
	for _, w := range r.windows.Windows() {
		b := w.Buffer()
		if b == nil {
			continue
		}
		lp := w.Top
		for i := w.TopRow; i < w.TopRow+w.Rows && lp != buffer.Header; i++ {
			row := &r.vscreen.Rows[i]
			if row.Has(core.RowExtended) &&
				(w != cur || lp != w.Dot.Line || r.curcol < r.cols-1) {
				r.taboff = w.FCol
				r.vtmove(i, -r.taboff)
				r.paintLine(b, lp)
				r.vteeol()
				r.taboff = 0
				row.Flags &^= core.RowExtended
				row.Flags |= core.RowChanged
			}
			lp = b.Next(lp)
		}
	}
}
