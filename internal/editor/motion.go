package editor

import (
	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/engine/buffer"
	"github.com/dshills/uemacs/internal/engine/window"
)

func (e *Editor) moved(w *window.Window) {
	w.Set(window.FlagMove)
	e.keepGoal = false
}

// ForwardChar moves dot n characters forward, crossing line ends.
func (e *Editor) ForwardChar(n int) error {
	w := e.Current()
	b := w.Buffer()
	for ; n > 0; n-- {
		dot := w.Dot
		if dot.Line == buffer.Header {
			return ErrEndOfBuffer
		}
		text := b.Text(dot.Line)
		if dot.Offset >= len(text) {
			w.Dot = buffer.Position{Line: b.Next(dot.Line)}
		} else {
			_, size := charset.Decode(text, dot.Offset)
			w.Dot.Offset += size
		}
		e.moved(w)
	}
	return nil
}

// BackwardChar moves dot n characters back, crossing line starts.
func (e *Editor) BackwardChar(n int) error {
	w := e.Current()
	b := w.Buffer()
	for ; n > 0; n-- {
		dot := w.Dot
		if dot.Offset == 0 {
			prev := b.Prev(dot.Line)
			if prev == buffer.Header {
				return ErrBeginningOfBuffer
			}
			w.Dot = buffer.Position{Line: prev, Offset: b.Len(prev)}
		} else {
			w.Dot.Offset = runeStart(b.Text(dot.Line), dot.Offset)
		}
		e.moved(w)
	}
	return nil
}

// runeStart returns the offset of the character that ends at off.
func runeStart(text []byte, off int) int {
	last := 0
	for i := 0; i < off; {
		last = i
		_, n := charset.Decode(text, i)
		i += n
	}
	return last
}

// BeginningOfLine moves dot to the start of its line.
func (e *Editor) BeginningOfLine() {
	w := e.Current()
	w.Dot.Offset = 0
	e.moved(w)
}

// EndOfLine moves dot to the end of its line.
func (e *Editor) EndOfLine() {
	w := e.Current()
	w.Dot.Offset = w.Buffer().Len(w.Dot.Line)
	e.moved(w)
}

// NextLine moves dot n lines down, keeping the goal column. Dot may
// stop on the end of buffer position after the last line.
func (e *Editor) NextLine(n int) error {
	if n < 0 {
		return e.PrevLine(-n)
	}
	w := e.Current()
	b := w.Buffer()
	if w.Dot.Line == buffer.Header {
		return ErrEndOfBuffer
	}
	e.setGoal(w)
	l := w.Dot.Line
	for ; n > 0 && l != buffer.Header; n-- {
		l = b.Next(l)
	}
	e.gotoGoal(w, l)
	return nil
}

// PrevLine moves dot n lines up, keeping the goal column.
func (e *Editor) PrevLine(n int) error {
	if n < 0 {
		return e.NextLine(-n)
	}
	w := e.Current()
	b := w.Buffer()
	if b.Prev(w.Dot.Line) == buffer.Header {
		return ErrBeginningOfBuffer
	}
	e.setGoal(w)
	l := w.Dot.Line
	for ; n > 0 && b.Prev(l) != buffer.Header; n-- {
		l = b.Prev(l)
	}
	e.gotoGoal(w, l)
	return nil
}

func (e *Editor) setGoal(w *window.Window) {
	if !e.keepGoal {
		e.goal = e.column(w.Buffer().Text(w.Dot.Line), w.Dot.Offset)
	}
}

func (e *Editor) gotoGoal(w *window.Window, l buffer.LineID) {
	w.Dot = buffer.Position{Line: l, Offset: e.offsetFor(w.Buffer().Text(l), e.goal)}
	w.Set(window.FlagMove)
	e.keepGoal = true
}

// Column returns the display column of dot in the current window.
func (e *Editor) Column() int {
	w := e.Current()
	return e.column(w.Buffer().Text(w.Dot.Line), w.Dot.Offset)
}

// column returns the display column of byte offset off.
func (e *Editor) column(text []byte, off int) int {
	col := 0
	for i := 0; i < off && i < len(text); {
		r, n := charset.Decode(text, i)
		col = e.advance(col, r)
		i += n
	}
	return col
}

// offsetFor returns the offset of the last character that starts at or
// before display column goal.
func (e *Editor) offsetFor(text []byte, goal int) int {
	col := 0
	i := 0
	for i < len(text) {
		r, n := charset.Decode(text, i)
		next := e.advance(col, r)
		if next > goal {
			break
		}
		col = next
		i += n
	}
	return i
}

func (e *Editor) advance(col int, r rune) int {
	switch {
	case r == '\t':
		return (col/e.tabWidth + 1) * e.tabWidth
	case r < 0x20 || r == 0x7f:
		return col + 2
	case r >= 0x80 && r <= 0xa0:
		return col + 3
	}
	return col + e.class.Width(r)
}

// GotoBeginning moves dot to the first line.
func (e *Editor) GotoBeginning() {
	w := e.Current()
	w.Dot = buffer.Position{Line: w.Buffer().First()}
	w.Set(window.FlagHard)
	e.moved(w)
}

// GotoEnd moves dot past the last line.
func (e *Editor) GotoEnd() {
	w := e.Current()
	w.Dot = buffer.Position{Line: buffer.Header}
	w.Set(window.FlagHard)
	e.moved(w)
}

// GotoLine moves dot to the start of line n, counted from 1. Numbers past
// the last line land on the end of buffer position.
func (e *Editor) GotoLine(n int) error {
	if n < 1 {
		return ErrBadLineNumber
	}
	w := e.Current()
	w.Dot = buffer.Position{Line: w.Buffer().LineAt(n)}
	e.moved(w)
	return nil
}

// pageSize is the number of lines a page motion scrolls, keeping two
// lines of overlap.
func pageSize(w *window.Window) int {
	return max(w.Rows-2, 1)
}

// ForwardPage scrolls the current window one page down and puts dot on
// the new top line.
func (e *Editor) ForwardPage() error {
	w := e.Current()
	b := w.Buffer()
	if w.Top == buffer.Header {
		return ErrEndOfBuffer
	}
	l := w.Top
	for n := pageSize(w); n > 0 && l != buffer.Header; n-- {
		l = b.Next(l)
	}
	w.Top = l
	w.Dot = buffer.Position{Line: l}
	w.Set(window.FlagHard | window.FlagKills)
	e.moved(w)
	return nil
}

// BackwardPage scrolls the current window one page up and puts dot on
// the new top line.
func (e *Editor) BackwardPage() error {
	w := e.Current()
	b := w.Buffer()
	if w.Top == b.First() {
		return ErrBeginningOfBuffer
	}
	l := w.Top
	for n := pageSize(w); n > 0 && b.Prev(l) != buffer.Header; n-- {
		l = b.Prev(l)
	}
	w.Top = l
	w.Dot = buffer.Position{Line: l}
	w.Set(window.FlagHard | window.FlagInserts)
	e.moved(w)
	return nil
}
