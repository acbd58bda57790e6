package editor

import "github.com/dshills/uemacs/internal/engine/window"

// SplitWindow divides the current window in two. The current window keeps
// the upper half.
func (e *Editor) SplitWindow() (*window.Window, error) {
	return e.windows.Split(e.Current())
}

// DeleteWindow removes the current window and makes its heir current.
func (e *Editor) DeleteWindow() error {
	return e.windows.Delete(e.Current())
}

// OnlyWindow deletes every window except the current one.
func (e *Editor) OnlyWindow() error {
	return e.windows.Only(e.Current())
}

// NextWindow makes the window below current, wrapping to the top.
func (e *Editor) NextWindow() error {
	e.keepGoal = false
	return e.windows.SetCurrent(e.windows.Next(e.Current()))
}

// PrevWindow makes the window above current, wrapping to the bottom.
func (e *Editor) PrevWindow() error {
	e.keepGoal = false
	return e.windows.SetCurrent(e.windows.Prev(e.Current()))
}

// GrowWindow adds n rows to the current window. Negative n shrinks it.
func (e *Editor) GrowWindow(n int) error {
	return e.windows.Grow(e.Current(), n)
}

// Reposition asks for dot to be shown on row n of the current window.
// Zero centers it and negative values count from the bottom.
func (e *Editor) Reposition(n int) {
	e.Current().Reposition(n)
}

// SetWindowColors sets palette indexes for the current window. Use
// window.ColorDefault to follow the global colors.
func (e *Editor) SetWindowColors(fg, bg int) {
	w := e.Current()
	w.FG, w.BG = fg, bg
	w.Set(window.FlagColor)
}
