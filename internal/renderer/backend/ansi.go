package backend

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"sync"
	"unicode/utf8"

	"golang.org/x/term"
	"golang.org/x/text/encoding/charmap"

	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/renderer/core"
)

// ANSI implements Terminal by writing VT100/xterm escape sequences to a
// tty. Unlike Tcell it supports block scrolling through scroll regions.
type ANSI struct {
	in  *os.File
	out *os.File

	mu     sync.Mutex
	enc    *ansiOutput
	state  *term.State
	events chan Event
	done   chan struct{}
	stop   func()
	once   sync.Once
}

// ANSIOption configures an ANSI driver.
type ANSIOption func(*ANSI)

// WithLatin1 encodes output as ISO 8859-1 instead of UTF-8. Characters
// outside Latin-1 are written as '?'.
func WithLatin1() ANSIOption {
	return func(a *ANSI) { a.enc.latin1 = true }
}

// WithFiles sets the input and output files. Defaults are stdin and stdout.
func WithFiles(in, out *os.File) ANSIOption {
	return func(a *ANSI) {
		a.in = in
		a.out = out
		a.enc.w = bufio.NewWriterSize(out, 16*1024)
	}
}

// NewANSI creates a driver for the process's terminal.
func NewANSI(opts ...ANSIOption) *ANSI {
	a := &ANSI{
		in:     os.Stdin,
		out:    os.Stdout,
		enc:    &ansiOutput{w: bufio.NewWriterSize(os.Stdout, 16*1024)},
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *ANSI) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	fd := int(a.in.Fd())
	if !term.IsTerminal(fd) || !term.IsTerminal(int(a.out.Fd())) {
		return ErrNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	a.state = state
	a.enc.raw("\x1b[?1049h")
	a.stop = notifyResize(a.postResize)
	go a.readLoop()
	return a.enc.flush()
}

func (a *ANSI) Shutdown() {
	a.once.Do(func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		if a.stop != nil {
			a.stop()
		}
		a.enc.raw("\x1b[r\x1b[0m\x1b[?1049l")
		_ = a.enc.flush()
		if a.state != nil {
			_ = term.Restore(int(a.in.Fd()), a.state)
		}
		close(a.done)
	})
}

func (a *ANSI) Size() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sizeLocked()
}

func (a *ANSI) sizeLocked() (int, int) {
	w, h, err := term.GetSize(int(a.out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

func (a *ANSI) Caps() Caps {
	return Caps{EraseEOL: true, Reverse: true, Color: true, Scroll: true}
}

func (a *ANSI) Move(row, col int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enc.move(row, col)
}

func (a *ANSI) Put(g *core.Grapheme) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enc.put(g)
}

func (a *ANSI) EraseEOL() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enc.raw("\x1b[K")
}

func (a *ANSI) ErasePage() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enc.raw("\x1b[H\x1b[2J")
}

func (a *ANSI) SetReverse(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enc.reverse(on)
}

func (a *ANSI) SetForeground(c core.Color) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enc.color(c, false)
}

func (a *ANSI) SetBackground(c core.Color) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enc.color(c, true)
}

func (a *ANSI) Scroll(from, to, count int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enc.scroll(from, to, count)
}

func (a *ANSI) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enc.flush()
}

func (a *ANSI) Beep() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enc.raw("\a")
}

func (a *ANSI) PollEvent() Event {
	select {
	case ev, ok := <-a.events:
		if !ok {
			return Event{Type: EventNone}
		}
		return ev
	case <-a.done:
		return Event{Type: EventNone}
	}
}

func (a *ANSI) PostEvent(ev Event) {
	select {
	case a.events <- ev:
	case <-a.done:
	default:
	}
}

func (a *ANSI) postResize() {
	w, h := a.Size()
	a.PostEvent(Event{Type: EventResize, Width: w, Height: h})
}

func (a *ANSI) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := a.in.Read(buf)
		for p := buf[:n]; len(p) > 0; {
			ev, used := parseInput(p)
			p = p[used:]
			select {
			case a.events <- ev:
			case <-a.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// ansiOutput encodes terminal operations as escape sequences.
type ansiOutput struct {
	w       *bufio.Writer
	latin1  bool
	scratch []byte
}

func (o *ansiOutput) raw(s string) {
	_, _ = o.w.WriteString(s)
}

func (o *ansiOutput) move(row, col int) {
	o.scratch = append(o.scratch[:0], "\x1b["...)
	o.scratch = strconv.AppendInt(o.scratch, int64(row+1), 10)
	o.scratch = append(o.scratch, ';')
	o.scratch = strconv.AppendInt(o.scratch, int64(col+1), 10)
	o.scratch = append(o.scratch, 'H')
	_, _ = o.w.Write(o.scratch)
}

func (o *ansiOutput) put(g *core.Grapheme) {
	if g.Filler() {
		return
	}
	for _, r := range g.Runes() {
		o.rune(r)
	}
}

func (o *ansiOutput) rune(r rune) {
	if o.latin1 {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		_ = o.w.WriteByte(b)
		return
	}
	if !utf8.ValidRune(r) {
		r = charset.DefaultReplacement
	}
	_, _ = o.w.WriteRune(r)
}

func (o *ansiOutput) reverse(on bool) {
	if on {
		o.raw("\x1b[7m")
	} else {
		o.raw("\x1b[27m")
	}
}

func (o *ansiOutput) color(c core.Color, background bool) {
	base := 30
	if background {
		base = 40
	}
	switch {
	case c.IsDefault():
		fmt.Fprintf(o.w, "\x1b[%dm", base+9)
	case c.Indexed && c.R < 8:
		fmt.Fprintf(o.w, "\x1b[%dm", base+int(c.R))
	case c.Indexed && c.R < 16:
		fmt.Fprintf(o.w, "\x1b[%dm", base+60+int(c.R)-8)
	case c.Indexed:
		fmt.Fprintf(o.w, "\x1b[%d;5;%dm", base+8, c.R)
	default:
		fmt.Fprintf(o.w, "\x1b[%d;2;%d;%d;%dm", base+8, c.R, c.G, c.B)
	}
}

// scroll moves a block of rows inside a temporary scroll region. Content
// moving up is pushed with index at the region bottom, content moving
// down with reverse index at the region top.
func (o *ansiOutput) scroll(from, to, count int) {
	if from == to || count <= 0 {
		return
	}
	if to < from {
		fmt.Fprintf(o.w, "\x1b[%d;%dr", to+1, from+count)
		o.move(from+count-1, 0)
		for i := 0; i < from-to; i++ {
			o.raw("\x1bD")
		}
	} else {
		fmt.Fprintf(o.w, "\x1b[%d;%dr", from+1, to+count)
		o.move(from, 0)
		for i := 0; i < to-from; i++ {
			o.raw("\x1bM")
		}
	}
	o.raw("\x1b[r")
}

func (o *ansiOutput) flush() error {
	if err := o.w.Flush(); err != nil {
		return fmt.Errorf("flush terminal: %w", err)
	}
	return nil
}
