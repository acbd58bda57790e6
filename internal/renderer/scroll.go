package renderer

import (
	"github.com/dshills/uemacs/internal/engine/window"
	"github.com/dshills/uemacs/internal/renderer/core"
)

// updatePhysical runs the scroll optimizer for pending inserts or kills
// and then differences every changed row onto the terminal.
func (r *Renderer) updatePhysical() {
	if r.scrflags&window.FlagKills != 0 {
		r.scrolls(false)
	}
	if r.scrflags&window.FlagInserts != 0 {
		r.scrolls(true)
	}
	r.scrflags = 0

	for i := 0; i < r.rows; i++ {
		if r.vscreen.Rows[i].Has(core.RowChanged) {
			r.updateLine(i)
		}
	}
}

// texttest reports whether virtual row vrow matches physical row prow.
func (r *Renderer) texttest(vrow, prow int) bool {
	return r.vscreen.Rows[vrow].Equal(&r.pscreen.Rows[prow])
}

// endOfLine returns the column just past the last non-blank cell of a
// virtual row.
func (r *Renderer) endOfLine(row int) int {
	cells := r.vscreen.Rows[row].Cells
	i := len(cells)
	for i > 0 && cells[i-1].IsSpace() {
		i--
	}
	return i
}

// scrolls looks for the longest run of rows that moved down (inserts) or
// up (kills) between the physical and virtual screens and shifts it with
// one terminal scroll. It reports whether a scroll was issued.
func (r *Renderer) scrolls(inserts bool) bool {
	if !r.canScroll() {
		return false
	}
	rows := r.rows

	first := -1
	for i := 0; i < rows; i++ {
		if !r.texttest(i, i) {
			first = i
			break
		}
	}
	if first < 0 {
		return false
	}

	var target int
	if inserts {
		// Skip a partially typed line at the top of the change.
		end := r.endOfLine(first)
		target = first
		if end != 0 && r.prefixMatches(first, end) {
			target = first + 1
		}
	} else {
		target = first + 1
	}

	match, count := -1, 0
	longmatch, longcount := -1, 0
	from := target
	for i := from + 1; i < rows-longcount; i++ {
		if !r.shifted(inserts, i, from) {
			continue
		}
		match, count = i, 1
		for j, k := match+1, from+1; j < rows && k < rows && r.shifted(inserts, j, k); j, k = j+1, k+1 {
			count++
		}
		if longcount < count {
			longcount, longmatch = count, match
		}
	}
	match, count = longmatch, longcount

	// A kill that also removed the first changed row.
	if !inserts && match > 0 && r.texttest(first, match-1) {
		target--
		match--
		count++
	}

	if match <= 0 || count < r.opts.ScrollRunMin {
		return false
	}

	// Move the count rows starting at from to to.
	var to int
	if inserts {
		from, to = target, match
	} else {
		from, to = match, target
	}
	dist := to - from
	if dist < 0 {
		dist = -dist
	}
	if r.opts.ScrollDistanceFactor*count < dist {
		return false
	}

	r.log.Debug("terminal scroll", "from", from, "to", to, "count", count)
	r.ttrow, r.ttcol = -1, -1
	r.scroller.Scroll(from, to, count)

	for i := 0; i < count; i++ {
		r.pscreen.Rows[to+i].CopyFrom(&r.vscreen.Rows[to+i])
	}

	// Rows uncovered by the scroll are blank on the terminal now.
	lo, hi := target, match
	if !inserts {
		lo, hi = target+count, match+count
	}
	for i := lo; i < hi; i++ {
		r.pscreen.Rows[i].Blank()
		r.vscreen.Rows[i].Flags |= core.RowChanged
	}
	return true
}

// shifted compares row a of one screen with row b of the other: for
// inserts the virtual row a against physical row b, for kills the
// virtual row b against physical row a.
func (r *Renderer) shifted(inserts bool, a, b int) bool {
	if inserts {
		return r.texttest(a, b)
	}
	return r.texttest(b, a)
}

// prefixMatches reports whether the first n cells of virtual row row
// equal the same cells of the physical row.
func (r *Renderer) prefixMatches(row, n int) bool {
	v := r.vscreen.Rows[row].Cells
	p := r.pscreen.Rows[row].Cells
	for i := 0; i < n; i++ {
		if !v[i].Equal(&p[i]) {
			return false
		}
	}
	return true
}
