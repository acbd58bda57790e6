package window

import (
	"slices"

	"github.com/dshills/uemacs/internal/engine/buffer"
)

// List is the display-ordered sequence of windows sharing the screen.
// Every window occupies its text rows plus one mode line row; the rows of
// all windows tile Height rows from the top of the screen.
type List struct {
	windows []*Window
	current *Window
	height  int
}

// NewList creates a list with one window covering height rows, mode line
// included.
func NewList(height int) *List {
	rows := max(height-1, 1)
	w := New(0, rows)
	return &List{windows: []*Window{w}, current: w, height: height}
}

// Windows returns the windows in display order. The slice must not be
// modified.
func (l *List) Windows() []*Window { return l.windows }

// Len returns the number of windows.
func (l *List) Len() int { return len(l.windows) }

// Height returns the rows shared by the windows.
func (l *List) Height() int { return l.height }

// Current returns the current window.
func (l *List) Current() *Window { return l.current }

// SetCurrent makes w current. The mode lines of the old and new current
// windows are marked for repaint.
func (l *List) SetCurrent(w *Window) error {
	if l.index(w) < 0 {
		return ErrNotInList
	}
	if l.current != nil {
		l.current.Flags |= FlagMode
	}
	l.current = w
	w.Flags |= FlagMode
	return nil
}

func (l *List) index(w *Window) int {
	return slices.Index(l.windows, w)
}

// Next returns the window after w, wrapping to the first.
func (l *List) Next(w *Window) *Window {
	i := l.index(w)
	return l.windows[(i+1)%len(l.windows)]
}

// Prev returns the window before w, wrapping to the last.
func (l *List) Prev(w *Window) *Window {
	i := l.index(w)
	if i <= 0 {
		return l.windows[len(l.windows)-1]
	}
	return l.windows[i-1]
}

// Showing returns the windows displaying b.
func (l *List) Showing(b *buffer.Buffer) []*Window {
	var out []*Window
	for _, w := range l.windows {
		if w.buf == b {
			out = append(out, w)
		}
	}
	return out
}

// MarkBuffer sets f on every window displaying b.
func (l *List) MarkBuffer(b *buffer.Buffer, f Flag) {
	for _, w := range l.windows {
		if w.buf == b {
			w.Flags |= f
		}
	}
}

// MarkAll sets f on every window.
func (l *List) MarkAll(f Flag) {
	for _, w := range l.windows {
		w.Flags |= f
	}
}

// Attach points w at b. When w is the first window on b it takes the
// cursor state saved in the buffer, otherwise it copies the state of a
// window already showing b.
func (l *List) Attach(w *Window, b *buffer.Buffer) {
	if w.buf != nil {
		l.Detach(w)
	}
	w.buf = b
	w.Top = buffer.Header
	w.Flags |= FlagMode | FlagForce | FlagHard
	if b.AddWindow() == 1 {
		w.Dot = b.Dot()
		w.Mark = b.Mark()
		w.FCol = b.FCol()
		return
	}
	for _, o := range l.windows {
		if o != w && o.buf == b {
			w.Dot = o.Dot
			w.Mark = o.Mark
			w.FCol = o.FCol
			break
		}
	}
}

// Detach removes w from its buffer. When w was the last window on the
// buffer its cursor state is saved into the buffer.
func (l *List) Detach(w *Window) {
	b := w.buf
	if b == nil {
		return
	}
	if b.RemoveWindow() == 0 {
		b.SetDot(w.Dot)
		b.SetMark(w.Mark)
		b.SetFCol(w.FCol)
	}
	w.buf = nil
}

// Split divides w into two windows on the same buffer. The upper keeps
// (rows-1)/2 text rows, the new lower window gets the rest and is returned.
func (l *List) Split(w *Window) (*Window, error) {
	i := l.index(w)
	if i < 0 {
		return nil, ErrNotInList
	}
	if w.Rows < 3 {
		return nil, ErrTooSmall
	}
	if w.buf == nil {
		return nil, ErrNoBuffer
	}
	upper := (w.Rows - 1) / 2
	lower := w.Rows - 1 - upper

	nw := New(w.TopRow+upper+1, lower)
	nw.FG, nw.BG = w.FG, w.BG
	l.windows = slices.Insert(l.windows, i+1, nw)
	l.Attach(nw, w.buf)
	nw.Dot = w.Dot
	nw.Mark = w.Mark
	nw.FCol = w.FCol
	nw.Top = w.Top
	nw.Flags &^= FlagForce

	w.Rows = upper
	w.Flags |= FlagHard | FlagMode
	return nw, nil
}

// Delete removes w from the screen and gives its rows to a neighbor: the
// window above when there is one, otherwise the window below.
func (l *List) Delete(w *Window) error {
	i := l.index(w)
	if i < 0 {
		return ErrNotInList
	}
	if len(l.windows) == 1 {
		return ErrOnlyWindow
	}
	var heir *Window
	if i > 0 {
		heir = l.windows[i-1]
		heir.Rows += w.Rows + 1
	} else {
		heir = l.windows[i+1]
		heir.TopRow = w.TopRow
		heir.Rows += w.Rows + 1
	}
	heir.Flags |= FlagHard | FlagMode
	l.Detach(w)
	l.windows = slices.Delete(l.windows, i, i+1)
	if l.current == w {
		l.current = heir
	}
	return nil
}

// Only deletes every window except w and gives it the whole screen.
func (l *List) Only(w *Window) error {
	if l.index(w) < 0 {
		return ErrNotInList
	}
	for _, o := range l.windows {
		if o != w {
			l.Detach(o)
		}
	}
	l.windows = []*Window{w}
	l.current = w
	w.TopRow = 0
	w.Rows = l.height - 1
	w.Flags |= FlagHard | FlagMode
	return nil
}

// Grow adds n text rows to w, taking them from the window below, or from
// the window above when w is last. Negative n shrinks w.
func (l *List) Grow(w *Window, n int) error {
	i := l.index(w)
	if i < 0 {
		return ErrNotInList
	}
	if len(l.windows) == 1 {
		return ErrOnlyWindow
	}
	if i == len(l.windows)-1 {
		o := l.windows[i-1]
		if o.Rows-n < 1 || w.Rows+n < 1 {
			return ErrTooSmall
		}
		o.Rows -= n
		w.TopRow -= n
		w.Rows += n
		o.Flags |= FlagHard | FlagMode
	} else {
		o := l.windows[i+1]
		if o.Rows-n < 1 || w.Rows+n < 1 {
			return ErrTooSmall
		}
		o.TopRow += n
		o.Rows -= n
		w.Rows += n
		o.Flags |= FlagHard | FlagMode
	}
	w.Flags |= FlagHard | FlagMode
	return nil
}

// Resize lays the windows out over a new height. Windows that no longer
// have room for a text row and a mode line are removed; the last remaining
// window absorbs the difference.
func (l *List) Resize(height int) error {
	if height < 2 {
		return ErrScreenSmall
	}
	kept := l.windows[:0:0]
	for _, w := range l.windows {
		if len(kept) == 0 || w.TopRow+2 <= height {
			kept = append(kept, w)
			continue
		}
		l.Detach(w)
	}
	last := kept[len(kept)-1]
	last.Rows = height - last.TopRow - 1
	for _, w := range kept {
		w.Flags |= FlagHard | FlagMode
	}
	l.windows = kept
	if l.index(l.current) < 0 {
		l.current = kept[0]
	}
	l.height = height
	return nil
}
