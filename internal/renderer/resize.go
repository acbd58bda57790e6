package renderer

import (
	"fmt"

	"github.com/dshills/uemacs/internal/renderer/core"
)

// NotifyResize records a new terminal size. It is safe to call from any
// goroutine. The size takes effect at the start of the next update, or
// right after the current one finishes.
func (r *Renderer) NotifyResize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	r.pending.Store(uint64(uint32(rows))<<32 | uint64(uint32(cols)))
}

// ResizePending reports whether a size change is waiting to be applied.
func (r *Renderer) ResizePending() bool { return r.pending.Load() != 0 }

func (r *Renderer) applyPendingResize() error {
	if r.displaying {
		return nil
	}
	v := r.pending.Swap(0)
	if v == 0 {
		return nil
	}
	return r.resize(int(v>>32), int(uint32(v)))
}

// resize adopts a terminal of rows by cols. The last terminal row is the
// message line.
func (r *Renderer) resize(rows, cols int) error {
	rows = capSize(capSize(rows, r.caps.MaxRows), r.opts.MaxRows)
	cols = capSize(capSize(cols, r.caps.MaxCols), r.opts.MaxCols)
	if rows < 3 || cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrScreenTooSmall, cols, rows)
	}
	if err := r.windows.Resize(rows - 1); err != nil {
		return err
	}
	if r.vscreen == nil {
		r.vscreen = core.NewScreen(rows-1, cols)
		r.pscreen = core.NewScreen(rows-1, cols)
	} else {
		r.vscreen.Resize(rows-1, cols)
		r.pscreen.Resize(rows-1, cols)
	}
	r.rows, r.cols = rows-1, cols
	r.margin = cols / 10
	r.scrsiz = cols - 2*r.margin
	if r.scrsiz < 1 {
		r.scrsiz = 1
	}
	r.garbage = true
	r.log.Debug("screen resized", "rows", rows, "cols", cols)
	return nil
}

func capSize(n, limit int) int {
	if limit > 0 && n > limit {
		return limit
	}
	return n
}
