package buffer

import (
	"errors"
	"strings"
)

// Errors returned by buffer operations.
var (
	ErrBadLine          = errors.New("line is not live")
	ErrOffsetOutOfRange = errors.New("offset out of range")
)

// LineID addresses a line inside a buffer's arena.
type LineID int32

const (
	// Header is the sentinel line that links the first and last lines.
	Header LineID = 0
	// NoLine marks an unset line reference, such as an absent mark.
	NoLine LineID = -1
)

// Position is a (line, byte offset) pair.
type Position struct {
	Line   LineID
	Offset int
}

// Valid reports whether the position refers to a line at all.
func (p Position) Valid() bool {
	return p.Line != NoLine
}

// Flag holds buffer state bits.
type Flag uint8

const (
	FlagInvisible Flag = 1 << iota
	FlagChanged
	FlagTruncated
	FlagNarrowed
)

// Mode is the buffer editing mode bitset.
type Mode uint16

const (
	ModeWrap Mode = 1 << iota
	ModeCMode
	ModePhonetic
	ModeExact
	ModeView
	ModeOver
	ModeMagic
	ModeCrypt
	ModeAutoSave
	ModeEquiv
	ModeDOSLineEnd

	numModes = iota
)

var modeNames = [numModes]string{
	"Wrap", "Cmode", "Phon", "Exact", "View", "Over",
	"Magic", "Crypt", "Asave", "Equiv", "DOSLE",
}

// ModeByName returns the mode with the given display name, ignoring case.
func ModeByName(name string) (Mode, bool) {
	for i, n := range modeNames {
		if strings.EqualFold(n, name) {
			return Mode(1) << i, true
		}
	}
	return 0, false
}

type line struct {
	text []byte
	prev LineID
	next LineID
	live bool
}

// Buffer is a named, line-linked text store.
type Buffer struct {
	name     string
	fileName string

	lines []line
	free  []LineID
	count int

	// Cursor state saved while no window displays the buffer.
	dot  Position
	mark Position
	fcol int

	nwnd     int
	active   bool
	flags    Flag
	modes    Mode
	phonetic string
}

// New creates an empty buffer with the given name.
func New(name string) *Buffer {
	b := &Buffer{name: name}
	b.reset()
	return b
}

func (b *Buffer) reset() {
	b.lines = b.lines[:0]
	b.lines = append(b.lines, line{prev: Header, next: Header, live: true})
	b.free = b.free[:0]
	b.count = 0
	b.dot = Position{Line: Header}
	b.mark = Position{Line: NoLine}
	b.fcol = 0
}

// Name returns the buffer name.
func (b *Buffer) Name() string { return b.name }

// SetName renames the buffer.
func (b *Buffer) SetName(name string) { b.name = name }

// FileName returns the associated file name, empty if none.
func (b *Buffer) FileName() string { return b.fileName }

// SetFileName sets the associated file name.
func (b *Buffer) SetFileName(name string) { b.fileName = name }

// First returns the first text line, or Header when the buffer is empty.
func (b *Buffer) First() LineID { return b.lines[Header].next }

// Last returns the last text line, or Header when the buffer is empty.
func (b *Buffer) Last() LineID { return b.lines[Header].prev }

// Next returns the line after id. The line after Last is Header.
func (b *Buffer) Next(id LineID) LineID { return b.lines[id].next }

// Prev returns the line before id. The line before First is Header.
func (b *Buffer) Prev(id LineID) LineID { return b.lines[id].prev }

// Live reports whether id refers to a line currently linked into the buffer.
// The header is live.
func (b *Buffer) Live(id LineID) bool {
	return id >= 0 && int(id) < len(b.lines) && b.lines[id].live
}

// Text returns the bytes of a line. The slice must not be modified.
func (b *Buffer) Text(id LineID) []byte {
	return b.lines[id].text
}

// Len returns the byte length of a line.
func (b *Buffer) Len(id LineID) int {
	return len(b.lines[id].text)
}

// LineCount returns the number of text lines.
func (b *Buffer) LineCount() int { return b.count }

// Empty reports whether the buffer holds no lines.
func (b *Buffer) Empty() bool { return b.count == 0 }

func (b *Buffer) alloc(text []byte) LineID {
	l := line{text: append([]byte(nil), text...), live: true}
	if n := len(b.free); n > 0 {
		id := b.free[n-1]
		b.free = b.free[:n-1]
		b.lines[id] = l
		return id
	}
	b.lines = append(b.lines, l)
	return LineID(len(b.lines) - 1)
}

func (b *Buffer) link(id, prev, next LineID) {
	b.lines[id].prev = prev
	b.lines[id].next = next
	b.lines[prev].next = id
	b.lines[next].prev = id
	b.count++
}

// InsertAfter links a new line holding a copy of text after at.
// Inserting after Header makes the line first.
func (b *Buffer) InsertAfter(at LineID, text []byte) (LineID, error) {
	if !b.Live(at) {
		return NoLine, ErrBadLine
	}
	next := b.lines[at].next
	id := b.alloc(text)
	b.link(id, at, next)
	return id, nil
}

// InsertBefore links a new line holding a copy of text before at.
// Inserting before Header makes the line last.
func (b *Buffer) InsertBefore(at LineID, text []byte) (LineID, error) {
	if !b.Live(at) {
		return NoLine, ErrBadLine
	}
	prev := b.lines[at].prev
	id := b.alloc(text)
	b.link(id, prev, at)
	return id, nil
}

// Append adds a line at the end of the buffer.
func (b *Buffer) Append(text []byte) LineID {
	id, _ := b.InsertBefore(Header, text)
	return id
}

// Remove unlinks a text line, frees its slot and returns the line that
// followed it. Callers must move any references off the line first.
func (b *Buffer) Remove(id LineID) (LineID, error) {
	if id == Header || !b.Live(id) {
		return NoLine, ErrBadLine
	}
	l := b.lines[id]
	b.lines[l.prev].next = l.next
	b.lines[l.next].prev = l.prev
	b.lines[id] = line{prev: NoLine, next: NoLine}
	b.free = append(b.free, id)
	b.count--
	return l.next, nil
}

// SetText replaces the contents of a line.
func (b *Buffer) SetText(id LineID, text []byte) error {
	if id == Header || !b.Live(id) {
		return ErrBadLine
	}
	b.lines[id].text = append(b.lines[id].text[:0], text...)
	return nil
}

// InsertBytes inserts p into a line at byte offset off.
func (b *Buffer) InsertBytes(id LineID, off int, p []byte) error {
	if id == Header || !b.Live(id) {
		return ErrBadLine
	}
	t := b.lines[id].text
	if off < 0 || off > len(t) {
		return ErrOffsetOutOfRange
	}
	nt := make([]byte, 0, len(t)+len(p))
	nt = append(nt, t[:off]...)
	nt = append(nt, p...)
	nt = append(nt, t[off:]...)
	b.lines[id].text = nt
	return nil
}

// DeleteBytes removes n bytes from a line starting at off. The count is
// clipped to the end of the line.
func (b *Buffer) DeleteBytes(id LineID, off, n int) error {
	if id == Header || !b.Live(id) {
		return ErrBadLine
	}
	t := b.lines[id].text
	if off < 0 || off > len(t) || n < 0 {
		return ErrOffsetOutOfRange
	}
	if off+n > len(t) {
		n = len(t) - off
	}
	b.lines[id].text = append(t[:off:off], t[off+n:]...)
	return nil
}

// Clear discards all lines and resets the saved cursor state.
func (b *Buffer) Clear() {
	b.reset()
}

// IndexOf returns the 1-based line number of id. The header counts as one
// past the last line.
func (b *Buffer) IndexOf(id LineID) int {
	n := 1
	for l := b.First(); l != Header; l = b.Next(l) {
		if l == id {
			return n
		}
		n++
	}
	return n
}

// LineAt returns the line with the 1-based number n. Numbers past the end
// yield Header.
func (b *Buffer) LineAt(n int) LineID {
	l := b.First()
	for ; n > 1 && l != Header; n-- {
		l = b.Next(l)
	}
	return l
}

// Dot returns the saved cursor position.
func (b *Buffer) Dot() Position { return b.dot }

// SetDot saves the cursor position.
func (b *Buffer) SetDot(p Position) { b.dot = p }

// Mark returns the saved mark. Mark().Line is NoLine when unset.
func (b *Buffer) Mark() Position { return b.mark }

// SetMark saves the mark.
func (b *Buffer) SetMark(p Position) { b.mark = p }

// FCol returns the saved horizontal scroll column.
func (b *Buffer) FCol() int { return b.fcol }

// SetFCol saves the horizontal scroll column.
func (b *Buffer) SetFCol(c int) { b.fcol = c }

// Windows returns the number of windows displaying the buffer.
func (b *Buffer) Windows() int { return b.nwnd }

// AddWindow records one more window and returns the new count.
func (b *Buffer) AddWindow() int {
	b.nwnd++
	return b.nwnd
}

// RemoveWindow records one window fewer and returns the new count.
func (b *Buffer) RemoveWindow() int {
	if b.nwnd > 0 {
		b.nwnd--
	}
	return b.nwnd
}

// Active reports whether the buffer contents have been loaded.
func (b *Buffer) Active() bool { return b.active }

// SetActive marks the buffer contents as loaded.
func (b *Buffer) SetActive(v bool) { b.active = v }

// Has reports whether all bits of f are set.
func (b *Buffer) Has(f Flag) bool { return b.flags&f == f }

// SetFlag sets the bits of f.
func (b *Buffer) SetFlag(f Flag) { b.flags |= f }

// ClearFlag clears the bits of f.
func (b *Buffer) ClearFlag(f Flag) { b.flags &^= f }

// Changed reports whether the buffer has unsaved changes.
func (b *Buffer) Changed() bool { return b.Has(FlagChanged) }

// Modes returns the mode bitset.
func (b *Buffer) Modes() Mode { return b.modes }

// HasMode reports whether mode m is enabled.
func (b *Buffer) HasMode(m Mode) bool { return b.modes&m != 0 }

// SetMode enables mode m.
func (b *Buffer) SetMode(m Mode) { b.modes |= m }

// ClearMode disables mode m.
func (b *Buffer) ClearMode(m Mode) { b.modes &^= m }

// PhoneticName returns the display name of the phonetic input table.
func (b *Buffer) PhoneticName() string { return b.phonetic }

// SetPhoneticName sets the display name of the phonetic input table.
func (b *Buffer) SetPhoneticName(name string) { b.phonetic = name }

// ModeNames returns the display names of the enabled modes in table
// order. The phonetic mode is shown by its table's display name when set.
func (b *Buffer) ModeNames() []string {
	var names []string
	for i := 0; i < numModes; i++ {
		m := Mode(1) << i
		if b.modes&m == 0 {
			continue
		}
		if m == ModePhonetic && b.phonetic != "" {
			names = append(names, b.phonetic)
			continue
		}
		names = append(names, modeNames[i])
	}
	return names
}
