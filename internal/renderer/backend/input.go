package backend

import "github.com/dshills/uemacs/internal/charset"

var csiKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var tildeKeys = map[int]Key{
	1: KeyHome,
	3: KeyDelete,
	4: KeyEnd,
	5: KeyPageUp,
	6: KeyPageDown,
	7: KeyHome,
	8: KeyEnd,
}

// parseInput decodes one key from raw terminal input and returns it with
// the number of bytes consumed. p must not be empty.
func parseInput(p []byte) (Event, int) {
	c := p[0]
	switch {
	case c == 0x1b:
		return parseEscape(p)
	case c == '\r' || c == '\n':
		return keyEvent(KeyEnter), 1
	case c == '\t':
		return keyEvent(KeyTab), 1
	case c == 0x7f:
		return keyEvent(KeyBackspace), 1
	case c == 0:
		return keyEvent(KeyCtrlSpace), 1
	case c <= 26:
		return keyEvent(KeyCtrlA + Key(c-1)), 1
	case c < 0x20:
		return Event{Type: EventKey, Key: KeyNone}, 1
	}
	r, n := charset.Decode(p, 0)
	return Event{Type: EventKey, Key: KeyRune, Rune: r}, n
}

func keyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

func parseEscape(p []byte) (Event, int) {
	if len(p) == 1 {
		return keyEvent(KeyEscape), 1
	}
	if p[1] != '[' && p[1] != 'O' {
		ev, n := parseInput(p[1:])
		ev.Mod |= ModAlt
		return ev, n + 1
	}
	if len(p) < 3 {
		return keyEvent(KeyEscape), 1
	}
	if k, ok := csiKeys[p[2]]; ok {
		return keyEvent(k), 3
	}
	num := 0
	for i := 2; i < len(p); i++ {
		switch b := p[i]; {
		case b >= '0' && b <= '9':
			num = num*10 + int(b-'0')
		case b == '~':
			if k, ok := tildeKeys[num]; ok {
				return keyEvent(k), i + 1
			}
			return Event{Type: EventKey, Key: KeyNone}, i + 1
		case b == ';':
			num = 0
		default:
			if k, ok := csiKeys[b]; ok {
				return keyEvent(k), i + 1
			}
			return Event{Type: EventKey, Key: KeyNone}, i + 1
		}
	}
	return keyEvent(KeyEscape), 1
}
