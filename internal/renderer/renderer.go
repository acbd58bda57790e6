package renderer

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/engine/buffer"
	"github.com/dshills/uemacs/internal/engine/window"
	"github.com/dshills/uemacs/internal/renderer/backend"
	"github.com/dshills/uemacs/internal/renderer/core"
)

// Errors returned by the renderer.
var (
	ErrCannotRender   = errors.New("cannot render")
	ErrScreenTooSmall = errors.New("screen too small")
)

// Logger receives diagnostics from the renderer.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Renderer brings the terminal up to date with the windows on screen.
type Renderer struct {
	term     backend.Terminal
	scroller backend.Scroller
	colorer  backend.Colorer
	caps     backend.Caps
	opts     Options
	remap    *charset.Remap
	class    charset.Classifier
	log      Logger
	windows  *window.List

	// vscreen is composed by the planner; pscreen mirrors the terminal.
	// Both cover the text area and mode lines. The message line is the
	// terminal row just below them and is written directly.
	vscreen *core.Screen
	pscreen *core.Screen
	rows    int
	cols    int

	// Compositor cursor. taboff is the column origin used for tab stops
	// while painting a horizontally shifted line.
	vtrow, vtcol int
	taboff       int
	tabmask      int

	// Last known terminal cursor; -1 when unknown.
	ttrow, ttcol int

	// Cursor of the current window and the left column of an extended
	// cursor line.
	currow, curcol int
	lbound         int

	scrflags       window.Flag
	garbage        bool
	displaying     bool
	messagePresent bool
	margin, scrsiz int

	pending atomic.Uint64
	err     error
}

// New creates a renderer driving term for the windows in list. The
// window list is resized to the terminal.
func New(term backend.Terminal, list *window.List, opts Options) (*Renderer, error) {
	r := &Renderer{
		term:    term,
		caps:    term.Caps(),
		log:     nopLogger{},
		windows: list,
		ttrow:   -1,
		ttcol:   -1,
		garbage: true,
	}
	if s, ok := term.(backend.Scroller); ok {
		r.scroller = s
	}
	if c, ok := term.(backend.Colorer); ok {
		r.colorer = c
	}
	r.setOptions(opts)

	cols, rows := term.Size()
	if err := r.resize(rows, cols); err != nil {
		return nil, err
	}
	return r, nil
}

// SetLogger installs a logger for diagnostics.
func (r *Renderer) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	r.log = l
}

// SetOptions replaces the options and schedules a full repaint.
func (r *Renderer) SetOptions(opts Options) {
	r.setOptions(opts)
	r.ForceFullRedraw()
}

func (r *Renderer) setOptions(opts Options) {
	r.opts = opts.normalize()
	r.remap = r.opts.Remap
	r.class = r.opts.Classifier
	r.tabmask = r.opts.TabWidth - 1
}

// Options returns the active options.
func (r *Renderer) Options() Options { return r.opts }

// Size returns the usable terminal size including the message line.
func (r *Renderer) Size() (rows, cols int) { return r.rows + 1, r.cols }

// Cursor returns the screen position of the cursor after the last update.
func (r *Renderer) Cursor() (row, col int) { return r.currow, r.curcol - r.lbound }

// MarkWindowDirty adds redisplay flags to w.
func (r *Renderer) MarkWindowDirty(w *window.Window, f window.Flag) {
	w.Flags |= f
}

// MoveWindowCursor tells the renderer dot moved in w. The next update
// reframes w if dot left it and repositions the cursor.
func (r *Renderer) MoveWindowCursor(w *window.Window) {
	w.Flags |= window.FlagMove
}

// ForceFullRedraw discards the physical screen model. The next update
// clears the terminal and repaints every row.
func (r *Renderer) ForceFullRedraw() {
	r.garbage = true
	r.windows.MarkAll(window.FlagHard | window.FlagMode)
}

// Update brings the terminal up to date. When force is false and the
// Typeahead hook reports pending input the update is skipped.
func (r *Renderer) Update(force bool) error {
	if !force && r.opts.Typeahead != nil && r.opts.Typeahead() {
		return nil
	}
	if err := r.applyPendingResize(); err != nil {
		return fmt.Errorf("%w: %w", ErrCannotRender, err)
	}

	saved := r.displaying
	r.displaying = true
	r.err = nil

	r.propagateModeFlags()

	// A horizontal shift or a recovered window can flag the current
	// window again; one more planning pass settles it.
	for pass := 0; pass < 2; pass++ {
		r.updateWindows()
		r.updatePosition()
		if r.windows.Current().Flags == 0 {
			break
		}
	}
	r.deExtend()
	if r.garbage {
		r.repaintAll()
	}
	r.updatePhysical()
	r.moveCursor(r.currow, r.curcol-r.lbound)
	flushErr := r.term.Flush()

	r.displaying = saved
	resizeErr := r.applyPendingResize()

	switch {
	case r.err != nil:
		r.log.Warn("redisplay incomplete", "err", r.err)
		return fmt.Errorf("%w: %w", ErrCannotRender, r.err)
	case flushErr != nil:
		return fmt.Errorf("%w: %w", ErrCannotRender, flushErr)
	case resizeErr != nil:
		return fmt.Errorf("%w: %w", ErrCannotRender, resizeErr)
	}
	return nil
}

// propagateModeFlags spreads a mode line request to every window showing
// the same buffer.
func (r *Renderer) propagateModeFlags() {
	for _, w := range r.windows.Windows() {
		b := w.Buffer()
		if b == nil || b.Windows() < 2 || !w.Has(window.FlagMode) {
			continue
		}
		r.windows.MarkBuffer(b, window.FlagMode)
	}
}

// checkWindow verifies that w's top line and dot still belong to its
// buffer. A violation panics in debug mode; otherwise the window is
// reset to the start of the buffer.
func (r *Renderer) checkWindow(w *window.Window) bool {
	b := w.Buffer()
	if b == nil {
		return false
	}
	if (w.Top == buffer.Header || b.Live(w.Top)) &&
		(w.Dot.Line == buffer.Header || b.Live(w.Dot.Line)) {
		return true
	}
	r.windowInvariant(w, "window refers to a line not in its buffer")
	return true
}

func (r *Renderer) windowInvariant(w *window.Window, msg string) {
	if r.opts.Debug {
		panic(fmt.Sprintf("renderer: %s (buffer %q)", msg, w.Buffer().Name()))
	}
	r.log.Warn(msg, "buffer", w.Buffer().Name(), "top_row", w.TopRow)
	b := w.Buffer()
	w.Top = b.First()
	if w.Dot.Line != buffer.Header && !b.Live(w.Dot.Line) {
		w.Dot = buffer.Position{Line: b.First()}
	}
	if w.Mark.Line != buffer.Header && !b.Live(w.Mark.Line) {
		w.Mark = buffer.Position{Line: buffer.NoLine}
	}
	w.Force = 0
	w.Flags |= window.FlagForce | window.FlagHard | window.FlagMode
}

// windowColor maps a window palette index to a color, falling back to
// def for window.ColorDefault.
func windowColor(i int, def core.Color) core.Color {
	if i < 0 {
		return def
	}
	return core.PaletteColor(i)
}

func (r *Renderer) windowColors(w *window.Window) (fg, bg core.Color) {
	return windowColor(w.FG, r.opts.FG), windowColor(w.BG, r.opts.BG)
}

func (r *Renderer) canScroll() bool {
	return r.scroller != nil && r.caps.Scroll
}

func (r *Renderer) colorOK() bool {
	return r.colorer != nil && r.caps.Color
}

func (r *Renderer) noteError(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}
