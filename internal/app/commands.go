package app

import (
	"errors"

	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/editor"
	"github.com/dshills/uemacs/internal/engine/buffer"
)

// repeat runs fn arg.N times. A negative argument runs back instead.
func repeat(arg Arg, fn, back func(int) error) error {
	if arg.N < 0 {
		return back(-arg.N)
	}
	return fn(arg.N)
}

func forwardChar(app *Application, arg Arg) error {
	return repeat(arg, app.ed.ForwardChar, app.ed.BackwardChar)
}

func backwardChar(app *Application, arg Arg) error {
	return repeat(arg, app.ed.BackwardChar, app.ed.ForwardChar)
}

func nextLine(app *Application, arg Arg) error {
	return repeat(arg, app.ed.NextLine, app.ed.PrevLine)
}

func prevLine(app *Application, arg Arg) error {
	return repeat(arg, app.ed.PrevLine, app.ed.NextLine)
}

func beginningOfLine(app *Application, _ Arg) error {
	app.ed.BeginningOfLine()
	return nil
}

func endOfLine(app *Application, _ Arg) error {
	app.ed.EndOfLine()
	return nil
}

func pages(n int, page func() error) error {
	for ; n > 0; n-- {
		if err := page(); err != nil {
			return err
		}
	}
	return nil
}

func forwardPage(app *Application, arg Arg) error {
	if arg.N < 0 {
		return pages(-arg.N, app.ed.BackwardPage)
	}
	return pages(arg.N, app.ed.ForwardPage)
}

func backwardPage(app *Application, arg Arg) error {
	if arg.N < 0 {
		return pages(-arg.N, app.ed.ForwardPage)
	}
	return pages(arg.N, app.ed.BackwardPage)
}

func gotoBeginning(app *Application, _ Arg) error {
	app.ed.GotoBeginning()
	return nil
}

func gotoEnd(app *Application, _ Arg) error {
	app.ed.GotoEnd()
	return nil
}

func gotoLine(app *Application, arg Arg) error {
	if !arg.Set {
		return app.rend.Message("(Line number argument required)")
	}
	return app.ed.GotoLine(arg.N)
}

func reposition(app *Application, arg Arg) error {
	n := 0
	if arg.Set {
		n = arg.N
	}
	app.ed.Reposition(n)
	return nil
}

// redraw clears and repaints the screen. With an argument it moves the
// dot line to that window row instead.
func redraw(app *Application, arg Arg) error {
	if arg.Set {
		app.ed.Reposition(arg.N)
		return nil
	}
	app.rend.ForceFullRedraw()
	return nil
}

func selfInsert(app *Application, r rune, arg Arg) error {
	if arg.N <= 0 {
		return nil
	}
	return app.ed.InsertRune(r, arg.N)
}

func insertTab(app *Application, arg Arg) error {
	return selfInsert(app, '\t', arg)
}

func newline(app *Application, arg Arg) error {
	for n := arg.N; n > 0; n-- {
		if err := app.ed.Newline(); err != nil {
			return err
		}
	}
	return nil
}

func openLine(app *Application, arg Arg) error {
	if arg.N <= 0 {
		return nil
	}
	return app.ed.OpenLine(arg.N)
}

func deleteChar(app *Application, arg Arg) error {
	return repeat(arg, app.ed.DeleteChar, app.ed.DeleteBackward)
}

func deleteBackward(app *Application, arg Arg) error {
	return repeat(arg, app.ed.DeleteBackward, app.ed.DeleteChar)
}

func killLine(app *Application, arg Arg) error {
	for n := max(arg.N, 1); n > 0; n-- {
		if err := app.ed.KillLine(); err != nil {
			return err
		}
	}
	return nil
}

func setMark(app *Application, _ Arg) error {
	app.ed.SetMark()
	return app.rend.Message("(Mark set)")
}

func swapDotAndMark(app *Application, _ Arg) error {
	app.ed.SwapDotAndMark()
	return nil
}

func abort(*Application, Arg) error {
	return ErrAborted
}

func toggleView(app *Application, _ Arg) error {
	app.ed.ToggleMode(buffer.ModeView)
	return nil
}

// quit exits the editor. Modified buffers require the command twice in a
// row.
func quit(app *Application, _ Arg) error {
	armed := app.quitSeq != 0 && app.quitSeq == app.seq-1
	if armed || !app.anyChanged() {
		return ErrQuit
	}
	app.quitSeq = app.seq
	return app.rend.Message("Modified buffers exist; C-x C-c again to exit")
}

func (app *Application) anyChanged() bool {
	for _, b := range app.ed.Buffers() {
		if b.Changed() && !b.Has(buffer.FlagInvisible) {
			return true
		}
	}
	return false
}

func saveFile(app *Application, _ Arg) error {
	b := app.ed.CurrentBuffer()
	wrote, err := app.ed.SaveFile()
	switch {
	case errors.Is(err, editor.ErrNoFileName):
		return app.rend.Message("No file name")
	case err != nil:
		return NewOperationError("save", b.FileName(), err)
	case !wrote:
		return app.rend.Message("(No changes need to be saved)")
	}
	app.log.Info("wrote %s", b.FileName())
	n := b.LineCount()
	if n == 1 {
		return app.rend.Message("(Wrote 1 line)")
	}
	return app.rend.Messagef("(Wrote %d lines)", n)
}

func splitWindow(app *Application, _ Arg) error {
	_, err := app.ed.SplitWindow()
	return err
}

func onlyWindow(app *Application, _ Arg) error {
	return app.ed.OnlyWindow()
}

func deleteWindow(app *Application, _ Arg) error {
	return app.ed.DeleteWindow()
}

func nextWindow(app *Application, _ Arg) error {
	return app.ed.NextWindow()
}

func prevWindow(app *Application, _ Arg) error {
	return app.ed.PrevWindow()
}

func growWindow(app *Application, arg Arg) error {
	return app.ed.GrowWindow(arg.N)
}

func shrinkWindow(app *Application, arg Arg) error {
	return app.ed.GrowWindow(-arg.N)
}

func nextBuffer(app *Application, _ Arg) error {
	return app.ed.NextBuffer()
}

// showPosition reports the dot line, column and the character under dot.
func showPosition(app *Application, _ Arg) error {
	w := app.ed.Current()
	b := w.Buffer()
	ch := rune('\n')
	if text := b.Text(w.Dot.Line); w.Dot.Offset < len(text) {
		ch, _ = charset.Decode(text, w.Dot.Offset)
	}
	return app.rend.Messagef("Line %d/%d Col %d char = 0x%x",
		b.IndexOf(w.Dot.Line), b.LineCount(), app.ed.Column(), ch)
}
