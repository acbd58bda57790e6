// Package window holds the per-window view state shown by the redisplay
// engine and the ordered list of windows on the screen.
package window

import (
	"errors"

	"github.com/dshills/uemacs/internal/engine/buffer"
)

// Errors returned by window list operations.
var (
	ErrOnlyWindow  = errors.New("cannot delete the only window")
	ErrTooSmall    = errors.New("window too small to split")
	ErrNotInList   = errors.New("window not in list")
	ErrNoBuffer    = errors.New("window has no buffer")
	ErrScreenSmall = errors.New("screen too small for window layout")
)

// Flag is a redisplay hint set by the editing layer and consumed by the
// renderer.
type Flag uint16

const (
	// FlagForce requests a reframe using the Force offset.
	FlagForce Flag = 1 << iota
	// FlagMove means the cursor moved.
	FlagMove
	// FlagEdit means only the cursor line was edited.
	FlagEdit
	// FlagHard requests a repaint of every line in the window.
	FlagHard
	// FlagMode requests a mode line repaint.
	FlagMode
	// FlagColor means the window colors changed.
	FlagColor
	// FlagKills means lines were deleted.
	FlagKills
	// FlagInserts means lines were inserted.
	FlagInserts
)

// ColorDefault leaves the window in the screen's global colors.
const ColorDefault = -1

// Palette indexes used for window colors.
const (
	ColorBlack = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// Window is one view onto a buffer. The buffer pointer is a non-owning
// reference; buffers are owned by the editor.
type Window struct {
	buf *buffer.Buffer

	Top  buffer.LineID
	Dot  buffer.Position
	Mark buffer.Position

	// TopRow is the first screen row and Rows the number of text rows.
	// The mode line sits on row TopRow+Rows.
	TopRow int
	Rows   int

	// Force is the preferred row for dot when FlagForce is set; 0 centers.
	Force int
	Flags Flag
	FCol  int

	FG int
	BG int
}

// New returns a window occupying rows text rows starting at topRow.
func New(topRow, rows int) *Window {
	return &Window{
		Top:    buffer.NoLine,
		Dot:    buffer.Position{Line: buffer.NoLine},
		Mark:   buffer.Position{Line: buffer.NoLine},
		TopRow: topRow,
		Rows:   rows,
		FG:     ColorDefault,
		BG:     ColorDefault,
	}
}

// Buffer returns the displayed buffer.
func (w *Window) Buffer() *buffer.Buffer { return w.buf }

// Set adds redisplay flags.
func (w *Window) Set(f Flag) { w.Flags |= f }

// Has reports whether any bit of f is set.
func (w *Window) Has(f Flag) bool { return w.Flags&f != 0 }

// ModeLineRow returns the screen row of the window's mode line.
func (w *Window) ModeLineRow() int { return w.TopRow + w.Rows }

// Reposition asks the renderer to put dot on row n of the window on the
// next update. Zero centers; negative counts from the bottom.
func (w *Window) Reposition(n int) {
	w.Force = n
	w.Flags |= FlagForce
}
