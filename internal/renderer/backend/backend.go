// Package backend provides the terminal driver abstraction used by the
// redisplay engine, together with a tcell driver, a raw ANSI driver and an
// in-memory recorder for tests.
package backend

import (
	"errors"

	"github.com/dshills/uemacs/internal/renderer/core"
)

// ErrNotTerminal is returned when the ANSI driver is not attached to a tty.
var ErrNotTerminal = errors.New("output is not a terminal")

// EventType identifies the type of terminal event.
type EventType int

const (
	// EventNone is returned once the terminal has been shut down.
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Resize event fields
	Width, Height int
}

// Key represents a keyboard key.
type Key int

// Key constants for special keys.
const (
	KeyNone Key = iota
	KeyRune     // Regular character (use Rune field)
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlSpace
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ
)

// CtrlKey returns the control key for letter c ('a'..'z').
func CtrlKey(c byte) Key {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if c < 'a' || c > 'z' {
		return KeyNone
	}
	return KeyCtrlA + Key(c-'a')
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Caps describes what a terminal can do. Missing capabilities select
// slower output paths; they are never errors.
type Caps struct {
	EraseEOL bool
	Reverse  bool
	Color    bool
	Scroll   bool

	// MaxRows and MaxCols cap the usable screen size; zero means no cap.
	MaxRows int
	MaxCols int
}

// Terminal is the output and input surface the renderer drives. Rows and
// columns are zero based. Put writes one screen cell at the cursor and
// advances the cursor by the cell's display width.
type Terminal interface {
	// Init prepares the terminal. Must be called before any other method.
	Init() error
	// Shutdown restores the terminal. PollEvent returns EventNone after.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (cols, rows int)
	Caps() Caps

	Move(row, col int)
	Put(g *core.Grapheme)
	EraseEOL()
	ErasePage()
	SetReverse(on bool)
	Flush() error
	Beep()

	// PollEvent blocks until the next input or resize event.
	PollEvent() Event
	// PostEvent queues a synthetic event.
	PostEvent(ev Event)
}

// Scroller is implemented by terminals that can move a block of rows.
// Scroll moves count rows starting at from so they start at to. Rows the
// block vacates are left blank.
type Scroller interface {
	Scroll(from, to, count int)
}

// Colorer is implemented by terminals that can set cell colors.
type Colorer interface {
	SetForeground(c core.Color)
	SetBackground(c core.Color)
}
