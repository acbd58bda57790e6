package app

import (
	"unicode"

	"github.com/dshills/uemacs/internal/renderer/backend"
)

// keyCode identifies a key press independent of the terminal driver.
type keyCode struct {
	key  backend.Key
	r    rune
	meta bool
}

// keyOf normalizes a key event. Meta letters are case-insensitive.
func keyOf(ev backend.Event) keyCode {
	k := keyCode{key: ev.Key, meta: ev.Mod.Has(backend.ModAlt)}
	if ev.Key == backend.KeyRune {
		k.r = ev.Rune
		if k.meta {
			k.r = unicode.ToLower(k.r)
		}
	}
	return k
}

func ctl(c byte) keyCode          { return keyCode{key: backend.CtrlKey(c)} }
func special(k backend.Key) keyCode { return keyCode{key: k} }
func char(r rune) keyCode         { return keyCode{key: backend.KeyRune, r: r} }
func meta(r rune) keyCode         { return keyCode{key: backend.KeyRune, r: r, meta: true} }

// Arg is the numeric argument typed before a command with C-u or
// Meta-digits.
type Arg struct {
	N   int
	Set bool
}

// command runs one editor command.
type command func(app *Application, arg Arg) error

// keyTable maps keys to commands. ctlx holds the keys that follow C-x.
type keyTable struct {
	global map[keyCode]command
	ctlx   map[keyCode]command
}

func (t *keyTable) bind(cmd command, keys ...keyCode) {
	for _, k := range keys {
		t.global[k] = cmd
	}
}

func (t *keyTable) bindCtlX(cmd command, keys ...keyCode) {
	for _, k := range keys {
		t.ctlx[k] = cmd
	}
}

// defaultKeys returns the fixed uEmacs style key bindings.
func defaultKeys() *keyTable {
	t := &keyTable{
		global: make(map[keyCode]command),
		ctlx:   make(map[keyCode]command),
	}

	t.bind(forwardChar, ctl('f'), special(backend.KeyRight))
	t.bind(backwardChar, ctl('b'), special(backend.KeyLeft))
	t.bind(nextLine, ctl('n'), special(backend.KeyDown))
	t.bind(prevLine, ctl('p'), special(backend.KeyUp))
	t.bind(beginningOfLine, ctl('a'), special(backend.KeyHome))
	t.bind(endOfLine, ctl('e'), special(backend.KeyEnd))
	t.bind(forwardPage, ctl('v'), special(backend.KeyPageDown))
	t.bind(backwardPage, meta('v'), special(backend.KeyPageUp))
	t.bind(gotoBeginning, meta('<'))
	t.bind(gotoEnd, meta('>'))
	t.bind(gotoLine, meta('g'))
	t.bind(reposition, meta('!'))

	t.bind(deleteChar, ctl('d'), special(backend.KeyDelete))
	t.bind(deleteBackward, ctl('h'), special(backend.KeyBackspace))
	t.bind(newline, ctl('m'), ctl('j'), special(backend.KeyEnter))
	t.bind(insertTab, ctl('i'), special(backend.KeyTab))
	t.bind(openLine, ctl('o'))
	t.bind(killLine, ctl('k'))
	t.bind(setMark, special(backend.KeyCtrlSpace))
	t.bind(redraw, ctl('l'))
	t.bind(abort, ctl('g'))

	t.bindCtlX(quit, ctl('c'))
	t.bindCtlX(saveFile, ctl('s'))
	t.bindCtlX(swapDotAndMark, ctl('x'))
	t.bindCtlX(toggleView, ctl('q'))
	t.bindCtlX(splitWindow, char('2'))
	t.bindCtlX(onlyWindow, char('1'))
	t.bindCtlX(deleteWindow, char('0'))
	t.bindCtlX(nextWindow, char('o'), char('n'))
	t.bindCtlX(prevWindow, char('p'))
	t.bindCtlX(growWindow, char('^'), char('z'))
	t.bindCtlX(shrinkWindow, ctl('z'))
	t.bindCtlX(nextBuffer, char('x'), char('b'))
	t.bindCtlX(showPosition, char('='))
	t.bindCtlX(abort, ctl('g'))
	return t
}

// prefixState is the multi-key sequence in progress.
type prefixState int

const (
	prefixNone prefixState = iota
	prefixCtlX
	prefixMeta
)

// keyState collects prefixes and numeric arguments between key events.
type keyState struct {
	prefix prefixState
	arg    Arg
	digits bool // C-u or Meta-digit seen; digits extend the argument
	typed  bool // at least one digit typed
	neg    bool
}

func (s *keyState) reset() {
	*s = keyState{}
}

// takeArg returns the numeric argument and clears it.
func (s *keyState) takeArg() Arg {
	a := s.arg
	if !a.Set {
		a.N = 1
	} else if s.neg {
		a.N = -a.N
	}
	s.arg, s.digits, s.typed, s.neg = Arg{}, false, false, false
	return a
}

// feed consumes k when it is part of a prefix or argument. Otherwise it
// returns the command bound to k, which may be nil.
func (s *keyState) feed(t *keyTable, k keyCode) (cmd command, consumed bool) {
	switch s.prefix {
	case prefixCtlX:
		s.prefix = prefixNone
		return t.ctlx[k], false
	case prefixMeta:
		s.prefix = prefixNone
		k.meta = true
		if k.key == backend.KeyRune {
			k.r = unicode.ToLower(k.r)
		}
	}

	if k.key == backend.KeyRune && s.digits || k.meta && k.key == backend.KeyRune && unicode.IsDigit(k.r) {
		if d := k.r - '0'; d >= 0 && d <= 9 {
			if !s.typed {
				s.arg.N = 0
			}
			s.arg.N = s.arg.N*10 + int(d)
			s.arg.Set, s.digits, s.typed = true, true, true
			return nil, true
		}
		if k.r == '-' && !s.typed && !k.meta {
			s.neg = !s.neg
			return nil, true
		}
	}

	switch k {
	case special(backend.KeyEscape):
		s.prefix = prefixMeta
		return nil, true
	case ctl('x'):
		s.prefix = prefixCtlX
		return nil, true
	case ctl('u'):
		if !s.arg.Set || s.typed {
			s.arg = Arg{N: 4, Set: true}
		} else {
			s.arg.N *= 4
		}
		s.digits, s.typed = true, false
		return nil, true
	}

	if cmd := t.global[k]; cmd != nil {
		return cmd, false
	}
	if k.key == backend.KeyRune && !k.meta && unicode.IsPrint(k.r) {
		r := k.r
		return func(app *Application, arg Arg) error { return selfInsert(app, r, arg) }, false
	}
	return nil, false
}
