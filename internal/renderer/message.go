package renderer

import (
	"fmt"

	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/renderer/core"
)

// Messagef formats a message and writes it with Message.
func (r *Renderer) Messagef(format string, args ...any) error {
	return r.Message(fmt.Sprintf(format, args...))
}

// Message writes text on the bottom row of the terminal, cut to the
// screen width on a grapheme boundary.
func (r *Renderer) Message(text string) error {
	text = charset.Truncate(text, r.cols-1)

	if r.colorOK() {
		r.colorer.SetForeground(r.opts.FG)
		r.colorer.SetBackground(r.opts.BG)
	}
	if !r.caps.EraseEOL {
		r.eraseMessageLine()
	}
	r.moveCursor(r.rows, 0)

	var cell core.Grapheme
	have := false
	b := []byte(text)
	for i := 0; i < len(b); {
		c, n := charset.Decode(b, i)
		i += n
		if have && r.class.ZeroWidth(c) != charset.NotZeroWidth {
			r.noteError(cell.Extend(c))
			continue
		}
		if have {
			r.putMessageCell(&cell)
		}
		cell.Set(r.remap.DisplayFor(c))
		have = true
	}
	if have {
		r.putMessageCell(&cell)
	}

	if r.caps.EraseEOL {
		r.term.EraseEOL()
	}
	r.messagePresent = true
	return r.term.Flush()
}

func (r *Renderer) putMessageCell(g *core.Grapheme) {
	r.term.Put(g)
	r.ttcol += max(r.class.Width(g.Rune), 1)
}

// EraseMessage clears the message line.
func (r *Renderer) EraseMessage() error {
	if r.colorOK() {
		r.colorer.SetForeground(r.opts.FG)
		r.colorer.SetBackground(r.opts.BG)
	}
	r.eraseMessageLine()
	r.messagePresent = false
	return r.term.Flush()
}

// MessagePresent reports whether the message line holds text.
func (r *Renderer) MessagePresent() bool { return r.messagePresent }

func (r *Renderer) eraseMessageLine() {
	r.moveCursor(r.rows, 0)
	if r.caps.EraseEOL {
		r.term.EraseEOL()
		return
	}
	blank := core.Blank
	for i := 0; i < r.cols-1; i++ {
		r.term.Put(&blank)
	}
	r.ttcol = -1
	r.moveCursor(r.rows, 0)
}
