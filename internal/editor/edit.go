package editor

import (
	"strings"

	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/engine/buffer"
	"github.com/dshills/uemacs/internal/engine/window"
)

// writable returns the current window and buffer, refusing View mode.
func (e *Editor) writable() (*window.Window, *buffer.Buffer, error) {
	w := e.Current()
	b := w.Buffer()
	if b.HasMode(buffer.ModeView) {
		return nil, nil, ErrReadOnly
	}
	e.keepGoal = false
	return w, b, nil
}

// changed records an edit of b in every window showing it. Buffers shown
// in more than one window always get a hard repaint. The first change
// after a save also repaints the mode lines.
func (e *Editor) changed(b *buffer.Buffer, f window.Flag) {
	if b.Windows() != 1 {
		f = window.FlagHard | f&(window.FlagInserts|window.FlagKills)
	}
	if !b.Changed() {
		f |= window.FlagMode
		b.SetFlag(buffer.FlagChanged)
	}
	e.windows.MarkBuffer(b, f)
}

// Insert inserts s at dot. Newlines in s split the line.
func (e *Editor) Insert(s string) error {
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			if err := e.Newline(); err != nil {
				return err
			}
		}
		if part == "" {
			continue
		}
		if err := e.insertBytes([]byte(part)); err != nil {
			return err
		}
	}
	return nil
}

// InsertRune inserts r at dot, n times.
func (e *Editor) InsertRune(r rune, n int) error {
	if r == '\n' {
		for ; n > 0; n-- {
			if err := e.Newline(); err != nil {
				return err
			}
		}
		return nil
	}
	var p []byte
	for ; n > 0; n-- {
		p = charset.Encode(p, r)
	}
	if len(p) == 0 {
		return nil
	}
	return e.insertBytes(p)
}

func (e *Editor) insertBytes(p []byte) error {
	w, b, err := e.writable()
	if err != nil {
		return err
	}
	dot := w.Dot
	if dot.Line == buffer.Header {
		// At the end of the buffer text goes on a new last line.
		id, err := b.InsertBefore(buffer.Header, p)
		if err != nil {
			return err
		}
		w.Dot = buffer.Position{Line: id, Offset: len(p)}
		e.changed(b, window.FlagHard)
		return nil
	}
	if err := b.InsertBytes(dot.Line, dot.Offset, p); err != nil {
		return err
	}
	n := len(p)
	for _, o := range e.windows.Showing(b) {
		if o.Dot.Line == dot.Line && (o == w || o.Dot.Offset > dot.Offset) {
			o.Dot.Offset += n
		}
		if o.Mark.Line == dot.Line && o.Mark.Offset > dot.Offset {
			o.Mark.Offset += n
		}
	}
	e.changed(b, window.FlagEdit)
	return nil
}

// Newline splits the line at dot. The text before dot moves to a new line
// above and dot stays at the start of the remainder.
func (e *Editor) Newline() error {
	w, b, err := e.writable()
	if err != nil {
		return err
	}
	dot := w.Dot
	if dot.Line == buffer.Header {
		if _, err := b.InsertBefore(buffer.Header, nil); err != nil {
			return err
		}
		e.changed(b, window.FlagHard|window.FlagInserts)
		return nil
	}

	head := b.Text(dot.Line)[:dot.Offset]
	id, err := b.InsertBefore(dot.Line, head)
	if err != nil {
		return err
	}
	if err := b.DeleteBytes(dot.Line, 0, dot.Offset); err != nil {
		return err
	}
	split := func(p *buffer.Position) {
		if p.Line != dot.Line {
			return
		}
		if p.Offset < dot.Offset {
			p.Line = id
		} else {
			p.Offset -= dot.Offset
		}
	}
	for _, o := range e.windows.Showing(b) {
		if o.Top == dot.Line {
			o.Top = id
		}
		if o == w {
			o.Dot.Offset = 0
		} else {
			split(&o.Dot)
		}
		split(&o.Mark)
	}
	e.changed(b, window.FlagHard|window.FlagInserts)
	return nil
}

// OpenLine inserts n newlines after dot without moving it.
func (e *Editor) OpenLine(n int) error {
	w := e.Current()
	if w.Buffer().HasMode(buffer.ModeView) {
		return ErrReadOnly
	}
	dot := w.Dot
	for i := 0; i < n; i++ {
		if err := e.Newline(); err != nil {
			return err
		}
	}
	if dot.Line == buffer.Header {
		return nil
	}
	b := w.Buffer()
	for i := 0; i < n; i++ {
		w.Dot.Line = b.Prev(w.Dot.Line)
	}
	w.Dot.Offset = dot.Offset
	w.Set(window.FlagMove)
	return nil
}

// DeleteChar deletes n characters after dot. Deleting at the end of a
// line joins the next line to it.
func (e *Editor) DeleteChar(n int) error {
	for ; n > 0; n-- {
		if err := e.deleteOne(); err != nil {
			return err
		}
	}
	return nil
}

// DeleteBackward deletes n characters before dot.
func (e *Editor) DeleteBackward(n int) error {
	if e.CurrentBuffer().HasMode(buffer.ModeView) {
		return ErrReadOnly
	}
	for ; n > 0; n-- {
		if err := e.BackwardChar(1); err != nil {
			return err
		}
		if err := e.deleteOne(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Editor) deleteOne() error {
	w, b, err := e.writable()
	if err != nil {
		return err
	}
	dot := w.Dot
	if dot.Line == buffer.Header {
		return ErrEndOfBuffer
	}
	text := b.Text(dot.Line)
	if dot.Offset >= len(text) {
		return e.joinNext(w, b)
	}
	_, size := charset.Decode(text, dot.Offset)
	if err := b.DeleteBytes(dot.Line, dot.Offset, size); err != nil {
		return err
	}
	shrink := func(p *buffer.Position) {
		if p.Line == dot.Line && p.Offset > dot.Offset {
			p.Offset = max(p.Offset-size, dot.Offset)
		}
	}
	for _, o := range e.windows.Showing(b) {
		shrink(&o.Dot)
		shrink(&o.Mark)
	}
	e.changed(b, window.FlagEdit)
	return nil
}

// joinNext appends the line after dot to the dot line. An empty last line
// is removed instead.
func (e *Editor) joinNext(w *window.Window, b *buffer.Buffer) error {
	cur := w.Dot.Line
	next := b.Next(cur)
	if next == buffer.Header {
		if b.Len(cur) != 0 {
			return ErrEndOfBuffer
		}
		e.removeLine(b, cur)
		e.changed(b, window.FlagHard|window.FlagKills)
		return nil
	}

	off := b.Len(cur)
	if err := b.InsertBytes(cur, off, b.Text(next)); err != nil {
		return err
	}
	moved := func(p *buffer.Position) {
		if p.Line == next {
			p.Line = cur
			p.Offset += off
		}
	}
	for _, o := range e.windows.Showing(b) {
		if o.Top == next {
			o.Top = cur
		}
		moved(&o.Dot)
		moved(&o.Mark)
	}
	if _, err := b.Remove(next); err != nil {
		return err
	}
	e.changed(b, window.FlagHard|window.FlagKills)
	return nil
}

// removeLine unlinks id and moves every window reference on it to the
// following line.
func (e *Editor) removeLine(b *buffer.Buffer, id buffer.LineID) {
	next := b.Next(id)
	for _, o := range e.windows.Showing(b) {
		if o.Top == id {
			o.Top = next
		}
		if o.Dot.Line == id {
			o.Dot = buffer.Position{Line: next}
		}
		if o.Mark.Line == id {
			o.Mark = buffer.Position{Line: next}
		}
	}
	_, _ = b.Remove(id)
}

// KillLine deletes from dot to the end of the line, or joins the next line
// when dot is already at the end.
func (e *Editor) KillLine() error {
	w, b, err := e.writable()
	if err != nil {
		return err
	}
	dot := w.Dot
	if dot.Line == buffer.Header {
		return ErrEndOfBuffer
	}
	n := b.Len(dot.Line) - dot.Offset
	if n == 0 {
		return e.joinNext(w, b)
	}
	if err := b.DeleteBytes(dot.Line, dot.Offset, n); err != nil {
		return err
	}
	for _, o := range e.windows.Showing(b) {
		if o.Dot.Line == dot.Line && o.Dot.Offset > dot.Offset {
			o.Dot.Offset = dot.Offset
		}
		if o.Mark.Line == dot.Line && o.Mark.Offset > dot.Offset {
			o.Mark.Offset = dot.Offset
		}
	}
	e.changed(b, window.FlagEdit)
	return nil
}

// SetMark puts the mark at dot.
func (e *Editor) SetMark() {
	w := e.Current()
	w.Mark = w.Dot
}

// SwapDotAndMark exchanges dot and mark. It does nothing without a mark.
func (e *Editor) SwapDotAndMark() {
	w := e.Current()
	if !w.Mark.Valid() {
		return
	}
	w.Dot, w.Mark = w.Mark, w.Dot
	w.Set(window.FlagMove)
	e.keepGoal = false
}
