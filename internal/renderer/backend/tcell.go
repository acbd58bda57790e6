package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/renderer/core"
)

// Tcell implements Terminal on top of a tcell.Screen. tcell has no block
// scroll primitive, so Tcell does not implement Scroller.
type Tcell struct {
	screen   tcell.Screen
	mu       sync.Mutex
	row, col int
	style    tcell.Style
	fg, bg   core.Color
	reverse  bool
	done     bool
}

// NewTcell creates a driver for the controlling terminal.
func NewTcell() (*Tcell, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTcellScreen(screen), nil
}

// NewTcellScreen wraps an existing screen, such as a simulation screen.
func NewTcellScreen(screen tcell.Screen) *Tcell {
	return &Tcell{
		screen: screen,
		style:  tcell.StyleDefault,
		fg:     core.ColorDefault,
		bg:     core.ColorDefault,
	}
}

func (t *Tcell) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(tcell.StyleDefault)
	return nil
}

func (t *Tcell) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return
	}
	t.done = true
	t.screen.Fini()
}

func (t *Tcell) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Tcell) Caps() Caps {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Caps{
		EraseEOL: true,
		Reverse:  true,
		Color:    t.screen.Colors() >= 8,
	}
}

func (t *Tcell) Move(row, col int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.row, t.col = row, col
	t.screen.ShowCursor(col, row)
}

func (t *Tcell) Put(g *core.Grapheme) {
	t.mu.Lock()
	defer t.mu.Unlock()

	base := g.Rune
	if base == 0 {
		base = ' '
	}
	var comb []rune
	if g.Mark != 0 {
		comb = append(comb, g.Mark)
		comb = append(comb, g.Extra()...)
	}
	t.screen.SetContent(t.col, t.row, base, comb, t.style)
	t.col += charset.Width(base)
}

func (t *Tcell) EraseEOL() {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, _ := t.screen.Size()
	for x := t.col; x < w; x++ {
		t.screen.SetContent(x, t.row, ' ', nil, t.style)
	}
}

func (t *Tcell) ErasePage() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fill(' ', t.style)
	t.row, t.col = 0, 0
}

func (t *Tcell) SetReverse(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reverse = on
	t.restyle()
}

func (t *Tcell) SetForeground(c core.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fg = c
	t.restyle()
}

func (t *Tcell) SetBackground(c core.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.bg = c
	t.restyle()
}

func (t *Tcell) restyle() {
	t.style = tcell.StyleDefault.
		Foreground(convertColor(t.fg)).
		Background(convertColor(t.bg)).
		Reverse(t.reverse)
}

func (t *Tcell) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
	return nil
}

func (t *Tcell) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

func (t *Tcell) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	return convertEvent(ev)
}

func (t *Tcell) PostEvent(event Event) {
	switch event.Type {
	case EventKey:
		_ = t.screen.PostEvent(tcell.NewEventKey(convertToTcellKey(event.Key), event.Rune, tcell.ModNone))
	case EventInterrupt:
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// convertColor converts our Color to tcell.Color.
func convertColor(c core.Color) tcell.Color {
	switch {
	case c.IsDefault():
		return tcell.ColorDefault
	case c.Indexed:
		return tcell.PaletteColor(int(c.R))
	default:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventInterrupt}
	}
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyRune:       KeyRune,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyCtrlSpace:  KeyCtrlSpace,
}

// convertKey converts tcell key to our Key type. tcell reports Ctrl-I, Ctrl-M
// and Ctrl-H as Tab, Enter and Backspace.
func convertKey(k tcell.Key) Key {
	if key, ok := tcellKeys[k]; ok {
		return key
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyCtrlA + Key(k-tcell.KeyCtrlA)
	}
	return KeyNone
}

// convertToTcellKey converts our Key to tcell.Key.
func convertToTcellKey(k Key) tcell.Key {
	if k >= KeyCtrlA && k <= KeyCtrlZ {
		return tcell.KeyCtrlA + tcell.Key(k-KeyCtrlA)
	}
	for tk, key := range tcellKeys {
		if key == k && tk != tcell.KeyBackspace {
			return tk
		}
	}
	return tcell.KeyRune
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	return result
}
