package backend

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/renderer/core"
)

// Recorder is an in-memory Terminal for tests. It keeps a cell grid that
// mirrors what a real terminal would show and records every call.
type Recorder struct {
	mu sync.Mutex

	cols, rows int
	grid       [][]core.Grapheme
	row, col   int
	reverse    bool
	fg, bg     core.Color
	caps       Caps

	calls  []string
	writes int
	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewRecorder creates a recorder of the given size and capabilities.
func NewRecorder(cols, rows int, caps Caps) *Recorder {
	r := &Recorder{
		cols:   cols,
		rows:   rows,
		caps:   caps,
		events: make(chan Event, 100),
		done:   make(chan struct{}),
	}
	r.grid = blankGrid(rows, cols)
	return r
}

func blankGrid(rows, cols int) [][]core.Grapheme {
	g := make([][]core.Grapheme, rows)
	for i := range g {
		g[i] = make([]core.Grapheme, cols)
		for j := range g[i] {
			g[i][j].Set(' ')
		}
	}
	return g
}

func (r *Recorder) record(method string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf("%s%v", method, args))
}

func (r *Recorder) Init() error { return nil }

func (r *Recorder) Shutdown() {
	r.once.Do(func() { close(r.done) })
}

func (r *Recorder) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cols, r.rows
}

func (r *Recorder) Caps() Caps { return r.caps }

func (r *Recorder) Move(row, col int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Move", row, col)
	r.row, r.col = row, col
}

func (r *Recorder) Put(g *core.Grapheme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Put", string(g.Runes()))
	r.writes++
	if r.row >= 0 && r.row < r.rows && r.col >= 0 && r.col < r.cols {
		r.grid[r.row][r.col].CloneFrom(g)
	}
	w := 1
	if !g.Filler() {
		w = charset.Width(g.Rune)
	}
	for i := 1; i < w && r.col+i < r.cols; i++ {
		r.grid[r.row][r.col+i].Set(0)
	}
	r.col += w
}

func (r *Recorder) EraseEOL() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("EraseEOL")
	r.writes++
	if r.row < 0 || r.row >= r.rows {
		return
	}
	for c := max(r.col, 0); c < r.cols; c++ {
		r.grid[r.row][c].Set(' ')
	}
}

func (r *Recorder) ErasePage() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ErasePage")
	r.writes++
	r.grid = blankGrid(r.rows, r.cols)
	r.row, r.col = 0, 0
}

func (r *Recorder) SetReverse(on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("SetReverse", on)
	r.reverse = on
}

func (r *Recorder) SetForeground(c core.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("SetForeground", c)
	r.fg = c
}

func (r *Recorder) SetBackground(c core.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("SetBackground", c)
	r.bg = c
}

// Scroll moves count rows from from to to the way a scroll region does:
// the rows the block leaves behind become blank.
func (r *Recorder) Scroll(from, to, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Scroll", from, to, count)
	r.writes++

	block := make([][]core.Grapheme, count)
	for i := range block {
		block[i] = r.grid[from+i]
	}
	var vacated []int
	if to < from {
		for i := to + count; i < from+count; i++ {
			vacated = append(vacated, i)
		}
	} else {
		for i := from; i < to; i++ {
			vacated = append(vacated, i)
		}
	}
	for i := range block {
		r.grid[to+i] = block[i]
	}
	for _, i := range vacated {
		r.grid[i] = blankGrid(1, r.cols)[0]
	}
}

func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Flush")
	return nil
}

func (r *Recorder) Beep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Beep")
}

func (r *Recorder) PollEvent() Event {
	select {
	case ev := <-r.events:
		return ev
	case <-r.done:
		return Event{Type: EventNone}
	}
}

func (r *Recorder) PostEvent(ev Event) {
	select {
	case r.events <- ev:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

// SetSize simulates a terminal resize and queues the resize event.
func (r *Recorder) SetSize(cols, rows int) {
	r.mu.Lock()
	old := r.grid
	r.grid = blankGrid(rows, cols)
	for i := 0; i < rows && i < len(old); i++ {
		for j := 0; j < cols && j < len(old[i]); j++ {
			r.grid[i][j].CloneFrom(&old[i][j])
		}
	}
	r.cols, r.rows = cols, rows
	r.mu.Unlock()
	r.PostEvent(Event{Type: EventResize, Width: cols, Height: rows})
}

// Line returns the text shown on a row, filler cells skipped.
func (r *Recorder) Line(row int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var b strings.Builder
	for i := range r.grid[row] {
		g := &r.grid[row][i]
		if g.Filler() {
			continue
		}
		b.WriteString(string(g.Runes()))
	}
	return b.String()
}

// Cell returns a copy of one grid cell.
func (r *Recorder) Cell(row, col int) core.Grapheme {
	r.mu.Lock()
	defer r.mu.Unlock()
	var g core.Grapheme
	g.CloneFrom(&r.grid[row][col])
	return g
}

// Cursor returns the current cursor position.
func (r *Recorder) Cursor() (row, col int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.row, r.col
}

// Calls returns the recorded calls since the last Reset.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// CallsWithPrefix returns the recorded calls whose text starts with p.
func (r *Recorder) CallsWithPrefix(p string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.calls {
		if strings.HasPrefix(c, p) {
			out = append(out, c)
		}
	}
	return out
}

// Writes counts calls that change terminal content: Put, EraseEOL,
// ErasePage and Scroll.
func (r *Recorder) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// Reset clears the recorded calls and the write count.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.writes = 0
}
