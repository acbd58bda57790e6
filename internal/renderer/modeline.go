package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/uemacs/internal/engine/buffer"
	"github.com/dshills/uemacs/internal/engine/window"
	"github.com/dshills/uemacs/internal/renderer/core"
)

// modeLine composes the mode line of w on the row below its text.
//
// The line reads, left to right: the truncated, changed and narrowed
// markers (or fill characters), the program name (with its version when
// no file is attached), the buffer name, the active modes in brackets,
// the file name and a position indicator seven columns from the right
// edge.
func (r *Renderer) modeLine(w *window.Window) {
	b := w.Buffer()
	n := w.ModeLineRow()
	row := &r.vscreen.Rows[n]
	row.Flags |= core.RowChanged | core.RowReverseReq | core.RowColor
	row.RequestColors(r.opts.BG, r.opts.FG)
	r.vtmove(n, 0)

	lchar := '='
	if w != r.windows.Current() {
		lchar = '-'
		if r.caps.Reverse {
			lchar = ' '
		}
	}

	r.flagChar(b.Has(buffer.FlagTruncated), '#', lchar)
	r.flagChar(b.Changed(), '*', lchar)
	r.flagChar(b.Has(buffer.FlagNarrowed), '<', lchar)

	var sb strings.Builder
	sb.WriteString(" " + r.opts.ProgramName + " ")
	if b.FileName() == "" && r.opts.Version != "" {
		sb.WriteString(" " + r.opts.Version)
	}
	sb.WriteString(": ")
	r.vtputs(sb.String())
	r.vtputs(b.Name())

	sb.Reset()
	sb.WriteString(" [")
	if w.FCol > 0 {
		sb.WriteString(strconv.Itoa(w.FCol))
		sb.WriteString("> ")
	}
	names := b.ModeNames()
	if b.Has(buffer.FlagTruncated) {
		names = append([]string{"Truncated"}, names...)
	}
	sb.WriteString(strings.Join(names, " "))
	sb.WriteString("] ")
	r.vtputs(sb.String())

	if fn := b.FileName(); fn != "" && fn != b.Name() {
		r.vtputs(fn)
		r.vtputc(' ')
	}

	for r.vtcol < r.cols {
		r.vtputc(lchar)
	}

	r.vtcol -= 7
	r.vtputs(positionIndicator(w))
}

func (r *Renderer) flagChar(set bool, c, lchar rune) {
	if set {
		r.vtputc(c)
	} else {
		r.vtputc(lchar)
	}
}

// positionIndicator describes where the window sits in its buffer: Emp
// for an empty buffer, All when everything fits, Top or Bot at either
// end and otherwise the percentage of lines above the window.
func positionIndicator(w *window.Window) string {
	b := w.Buffer()

	msg := ""
	lp := w.Top
	for k := 0; k < w.Rows; k++ {
		lp = b.Next(lp)
		if lp == buffer.Header {
			msg = " Bot "
			break
		}
	}

	if b.Prev(w.Top) == buffer.Header {
		switch {
		case msg == "":
			msg = " Top "
		case w.Top == buffer.Header:
			msg = " Emp "
		default:
			msg = " All "
		}
	}
	if msg != "" {
		return msg
	}

	if w.Dot.Line == buffer.Header {
		return " Bot "
	}
	numlines, predlines := 0, 0
	for l := b.First(); l != buffer.Header; l = b.Next(l) {
		if l == w.Top {
			predlines = numlines
		}
		numlines++
	}
	ratio := 0
	if numlines != 0 {
		ratio = min(100*predlines/numlines, 99)
	}
	return fmt.Sprintf(" %2d%% ", ratio)
}
