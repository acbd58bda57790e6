package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/engine/buffer"
	"github.com/dshills/uemacs/internal/engine/window"
	"github.com/dshills/uemacs/internal/renderer/backend"
	"github.com/dshills/uemacs/internal/renderer/core"
)

var basicCaps = backend.Caps{EraseEOL: true, Reverse: true}
var scrollCaps = backend.Caps{EraseEOL: true, Reverse: true, Scroll: true}

type fixture struct {
	r    *Renderer
	rec  *backend.Recorder
	list *window.List
	buf  *buffer.Buffer
	win  *window.Window
}

func newFixture(t *testing.T, cols, rows int, caps backend.Caps, opts Options, lines ...string) *fixture {
	t.Helper()
	rec := backend.NewRecorder(cols, rows, caps)
	list := window.NewList(rows - 1)
	b := buffer.New("main")
	for _, l := range lines {
		b.Append([]byte(l))
	}
	b.SetDot(buffer.Position{Line: b.First()})
	list.Attach(list.Current(), b)

	r, err := New(rec, list, opts)
	require.NoError(t, err)
	return &fixture{r: r, rec: rec, list: list, buf: b, win: list.Current()}
}

func (f *fixture) line(row int) string {
	return strings.TrimRight(f.rec.Line(row), " ")
}

func numbered(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("line%d", i)
	}
	return out
}

func TestNewScreenTooSmall(t *testing.T) {
	rec := backend.NewRecorder(10, 2, basicCaps)
	_, err := New(rec, window.NewList(1), DefaultOptions())
	assert.ErrorIs(t, err, ErrScreenTooSmall)
}

func TestUpdateInitialPaint(t *testing.T) {
	f := newFixture(t, 40, 6, basicCaps, DefaultOptions(), "alpha", "beta")

	require.NoError(t, f.r.Update(true))

	assert.Equal(t, "alpha", f.line(0))
	assert.Equal(t, "beta", f.line(1))
	assert.Equal(t, "", f.line(2))
	assert.Equal(t, "=== uEmacs  4.2: main [] ======== All ==", f.rec.Line(4))
	assert.Equal(t, "", f.line(5))
	assert.NotEmpty(t, f.rec.CallsWithPrefix("ErasePage"))

	row, col := f.rec.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
}

func TestUpdateIdempotent(t *testing.T) {
	f := newFixture(t, 40, 6, basicCaps, DefaultOptions(), "alpha", "beta")
	require.NoError(t, f.r.Update(true))

	f.rec.Reset()
	require.NoError(t, f.r.Update(false))
	assert.Zero(t, f.rec.Writes())
	assert.Empty(t, f.rec.CallsWithPrefix("Move"))
}

func TestTypeaheadSkipsUpdate(t *testing.T) {
	opts := DefaultOptions()
	opts.Typeahead = func() bool { return true }
	f := newFixture(t, 40, 6, basicCaps, opts, "alpha")

	require.NoError(t, f.r.Update(false))
	assert.Empty(t, f.rec.Calls())

	require.NoError(t, f.r.Update(true))
	assert.Equal(t, "alpha", f.line(0))
}

func TestComposeOverflow(t *testing.T) {
	f := newFixture(t, 10, 4, basicCaps, DefaultOptions(), "aaaaaaaaaaaa")
	require.NoError(t, f.r.Update(true))
	assert.Equal(t, "aaaaaaaaa$", f.rec.Line(0))
}

func TestComposeTab(t *testing.T) {
	f := newFixture(t, 20, 4, basicCaps, DefaultOptions(), "abc\tx")
	f.win.Dot.Offset = 4
	f.win.Set(window.FlagMove)
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, "abc     x", f.line(0))
	row, col := f.r.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 8, col)
}

func TestComposeTabWidthFour(t *testing.T) {
	opts := DefaultOptions()
	opts.TabWidth = 4
	f := newFixture(t, 20, 4, basicCaps, opts, "a\tb")
	require.NoError(t, f.r.Update(true))
	assert.Equal(t, "a   b", f.line(0))
}

func TestComposeControlCharacters(t *testing.T) {
	f := newFixture(t, 20, 4, basicCaps, DefaultOptions(), "a\x01b\x7f", "x\u0085y\u009b")
	require.NoError(t, f.r.Update(true))
	assert.Equal(t, "a^Ab^?", f.line(0))
	assert.Equal(t, `x\85y\9b`, f.line(1))
}

func TestComposeWideCharacters(t *testing.T) {
	f := newFixture(t, 10, 4, basicCaps, DefaultOptions(), "日本x")
	f.win.Dot.Offset = 3
	f.win.Set(window.FlagMove)
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, "日本x", f.line(0))
	assert.True(t, f.r.vscreen.Rows[0].Cells[1].Filler())
	assert.Equal(t, 'x', f.r.vscreen.Rows[0].Cells[4].Rune)
	_, col := f.r.Cursor()
	assert.Equal(t, 2, col)
}

func TestComposeWideCharacterAtEdge(t *testing.T) {
	f := newFixture(t, 5, 4, basicCaps, DefaultOptions(), "abcd日")
	require.NoError(t, f.r.Update(true))
	assert.Equal(t, "abcd$", f.rec.Line(0))
}

func TestComposeWideCharacterBeforeOverflow(t *testing.T) {
	f := newFixture(t, 5, 4, basicCaps, DefaultOptions(), "abc日x")
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, "abc$$", f.rec.Line(0))
	cells := f.r.vscreen.Rows[0].Cells
	assert.Equal(t, '$', cells[3].Rune)
	assert.Equal(t, '$', cells[4].Rune)
}

func TestComposeCombiningMark(t *testing.T) {
	f := newFixture(t, 10, 4, basicCaps, DefaultOptions(), "e\u0301x")
	require.NoError(t, f.r.Update(true))

	c := f.rec.Cell(0, 0)
	assert.Equal(t, 'e', c.Rune)
	assert.Equal(t, rune(0x301), c.Mark)
	assert.Equal(t, 'x', f.rec.Cell(0, 1).Rune)
}

func TestComposeGraphemeFull(t *testing.T) {
	line := "e" + strings.Repeat("\u0301", core.MaxExtra+2)
	f := newFixture(t, 10, 4, basicCaps, DefaultOptions(), line)
	err := f.r.Update(true)
	assert.ErrorIs(t, err, ErrCannotRender)
	assert.ErrorIs(t, err, core.ErrGraphemeFull)
}

func TestDifferWritesOnlyChangedCell(t *testing.T) {
	f := newFixture(t, 40, 6, basicCaps, DefaultOptions(), "hello world")
	require.NoError(t, f.r.Update(true))

	require.NoError(t, f.buf.SetText(f.buf.First(), []byte("hello World")))
	f.r.MarkWindowDirty(f.win, window.FlagEdit)
	f.rec.Reset()
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, 1, f.rec.Writes())
	assert.Equal(t, []string{"Put[W]"}, f.rec.CallsWithPrefix("Put"))
	assert.Equal(t, "Move[0 6]", f.rec.Calls()[0])
	assert.Equal(t, "hello World", f.line(0))
}

func TestDifferEraseThreshold(t *testing.T) {
	tests := []struct {
		name      string
		after     string
		wantErase bool
		wantPuts  int
	}{
		{"long tail erased", "abc", true, 0},
		{"short tail written", "abcdefg", false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 40, 6, basicCaps, DefaultOptions(), "abcdefghij")
			require.NoError(t, f.r.Update(true))

			require.NoError(t, f.buf.SetText(f.buf.First(), []byte(tt.after)))
			f.r.MarkWindowDirty(f.win, window.FlagEdit)
			f.rec.Reset()
			require.NoError(t, f.r.Update(true))

			assert.Equal(t, tt.wantErase, len(f.rec.CallsWithPrefix("EraseEOL")) == 1)
			assert.Len(t, f.rec.CallsWithPrefix("Put"), tt.wantPuts)
			assert.Equal(t, tt.after, f.line(0))
		})
	}
}

func TestScrollInsertAtTop(t *testing.T) {
	f := newFixture(t, 20, 7, scrollCaps, DefaultOptions(), numbered(10)...)
	f.buf.SetFlag(buffer.FlagChanged)
	require.NoError(t, f.r.Update(true))
	require.Equal(t, "line0", f.line(0))

	id, err := f.buf.InsertBefore(f.buf.First(), []byte("new"))
	require.NoError(t, err)
	f.win.Dot = buffer.Position{Line: id}
	f.r.MarkWindowDirty(f.win, window.FlagHard)

	f.rec.Reset()
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, []string{"Scroll[0 1 4]"}, f.rec.CallsWithPrefix("Scroll"))
	assert.Equal(t, []string{"Put[n]", "Put[e]", "Put[w]"}, f.rec.CallsWithPrefix("Put"))
	assert.Equal(t, 4, f.rec.Writes())

	want := []string{"new", "line0", "line1", "line2", "line3"}
	for i, w := range want {
		assert.Equal(t, w, f.line(i), "row %d", i)
	}
	assert.Equal(t, id, f.win.Top)
}

func TestScrollKill(t *testing.T) {
	f := newFixture(t, 20, 7, scrollCaps, DefaultOptions(), numbered(10)...)
	f.buf.SetFlag(buffer.FlagChanged)
	require.NoError(t, f.r.Update(true))

	_, err := f.buf.Remove(f.buf.Next(f.buf.First()))
	require.NoError(t, err)
	f.r.MarkWindowDirty(f.win, window.FlagHard|window.FlagKills)

	f.rec.Reset()
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, []string{"Scroll[2 1 3]"}, f.rec.CallsWithPrefix("Scroll"))
	assert.Equal(t, 6, f.rec.Writes())
	want := []string{"line0", "line2", "line3", "line4", "line5"}
	for i, w := range want {
		assert.Equal(t, w, f.line(i), "row %d", i)
	}
}

func TestScrollNotUsedWithoutCapability(t *testing.T) {
	f := newFixture(t, 20, 7, basicCaps, DefaultOptions(), numbered(10)...)
	require.NoError(t, f.r.Update(true))

	id, err := f.buf.InsertBefore(f.buf.First(), []byte("new"))
	require.NoError(t, err)
	f.win.Dot = buffer.Position{Line: id}
	f.r.MoveWindowCursor(f.win)

	require.NoError(t, f.r.Update(true))
	assert.Empty(t, f.rec.CallsWithPrefix("Scroll"))
	assert.Equal(t, "new", f.line(0))
}

func TestReframeCentersOnForce(t *testing.T) {
	f := newFixture(t, 20, 12, basicCaps, DefaultOptions(), numbered(50)...)
	require.NoError(t, f.r.Update(true))

	f.win.Dot = buffer.Position{Line: f.buf.LineAt(31)}
	f.win.Reposition(0)
	require.NoError(t, f.r.Update(true))

	// Ten text rows; dot lands on row five.
	assert.Equal(t, f.buf.LineAt(26), f.win.Top)
	assert.Equal(t, "line30", f.line(5))
	row, _ := f.r.Cursor()
	assert.Equal(t, 5, row)
}

func TestReframeForcedRow(t *testing.T) {
	f := newFixture(t, 20, 12, basicCaps, DefaultOptions(), numbered(50)...)
	require.NoError(t, f.r.Update(true))

	f.win.Dot = buffer.Position{Line: f.buf.LineAt(31)}
	f.win.Reposition(1)
	require.NoError(t, f.r.Update(true))
	assert.Equal(t, "line30", f.line(0))

	f.win.Reposition(-1)
	require.NoError(t, f.r.Update(true))
	assert.Equal(t, "line30", f.line(9))
}

func TestReframeGentleScroll(t *testing.T) {
	f := newFixture(t, 20, 7, scrollCaps, DefaultOptions(), numbered(10)...)
	require.NoError(t, f.r.Update(true))

	// Dot one line below the window scrolls it up by one row.
	f.win.Dot = buffer.Position{Line: f.buf.LineAt(6)}
	f.r.MoveWindowCursor(f.win)
	f.rec.Reset()
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, []string{"Scroll[1 0 4]"}, f.rec.CallsWithPrefix("Scroll"))
	assert.Equal(t, f.buf.LineAt(2), f.win.Top)
	for i := 0; i < 5; i++ {
		assert.Equal(t, fmt.Sprintf("line%d", i+1), f.line(i), "row %d", i)
	}

	// Dot one line above scrolls it back down.
	f.win.Dot = buffer.Position{Line: f.buf.First()}
	f.r.MoveWindowCursor(f.win)
	f.rec.Reset()
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, []string{"Scroll[0 1 4]"}, f.rec.CallsWithPrefix("Scroll"))
	assert.Equal(t, f.buf.First(), f.win.Top)
	assert.Equal(t, "line0", f.line(0))
	assert.Equal(t, "line4", f.line(4))
}

func TestReframeScrollJumpZeroRecenters(t *testing.T) {
	opts := DefaultOptions()
	opts.ScrollJump = 0
	f := newFixture(t, 20, 7, scrollCaps, opts, numbered(10)...)
	require.NoError(t, f.r.Update(true))

	f.win.Dot = buffer.Position{Line: f.buf.LineAt(6)}
	f.r.MoveWindowCursor(f.win)
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, f.buf.LineAt(4), f.win.Top)
	assert.Equal(t, "line5", f.line(2))
}

func TestExtendedLine(t *testing.T) {
	text := strings.Repeat("0123456789", 10)
	f := newFixture(t, 80, 4, basicCaps, DefaultOptions(), text)
	f.win.Dot.Offset = 85
	f.win.Set(window.FlagMove)
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, "$"+text[74:], f.line(0))
	row, col := f.r.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 12, col)
	rrow, rcol := f.rec.Cursor()
	assert.Equal(t, 0, rrow)
	assert.Equal(t, 12, rcol)

	f.win.Dot.Offset = 0
	f.r.MoveWindowCursor(f.win)
	require.NoError(t, f.r.Update(true))
	assert.Equal(t, text[:79]+"$", f.rec.Line(0))
	assert.False(t, f.r.vscreen.Rows[0].Has(core.RowExtended))
}

func TestHorizontalScroll(t *testing.T) {
	text := strings.Repeat("0123456789", 10)
	opts := DefaultOptions()
	opts.HScroll = true
	opts.HJump = 10
	f := newFixture(t, 80, 4, basicCaps, opts, text)
	f.win.Dot.Offset = 85
	f.win.Set(window.FlagMove)
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, 10, f.win.FCol)
	assert.Equal(t, text[10:89]+"$", f.rec.Line(0))
	_, col := f.r.Cursor()
	assert.Equal(t, 75, col)
	assert.Contains(t, f.rec.Line(2), "[10> ]")

	f.win.Dot.Offset = 2
	f.r.MoveWindowCursor(f.win)
	require.NoError(t, f.r.Update(true))
	assert.Equal(t, 0, f.win.FCol)
	_, col = f.r.Cursor()
	assert.Equal(t, 2, col)
}

func TestModeLineFlagsAndFileName(t *testing.T) {
	f := newFixture(t, 60, 6, basicCaps, DefaultOptions(), "x")
	f.buf.SetFlag(buffer.FlagChanged)
	f.buf.SetFileName("/tmp/notes.txt")
	f.buf.SetMode(buffer.ModeWrap | buffer.ModeView)
	f.r.MarkWindowDirty(f.win, window.FlagMode)
	require.NoError(t, f.r.Update(true))

	ml := f.rec.Line(4)
	assert.True(t, strings.HasPrefix(ml, "=*= uEmacs : main [Wrap View] /tmp/notes.txt =="), ml)
	assert.Equal(t, " All ==", ml[53:])
	assert.True(t, f.r.vscreen.Rows[4].Has(core.RowReverse))
}

func TestModeLineInactiveWindow(t *testing.T) {
	tests := []struct {
		name string
		caps backend.Caps
		fill string
	}{
		{"reverse video", basicCaps, "    uEmacs"},
		{"no reverse video", backend.Caps{EraseEOL: true}, "--- uEmacs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 40, 12, tt.caps, DefaultOptions(), numbered(20)...)
			lower, err := f.list.Split(f.win)
			require.NoError(t, err)
			require.NoError(t, f.r.Update(true))

			assert.True(t, strings.HasPrefix(f.rec.Line(f.win.ModeLineRow()), "=== uEmacs"))
			assert.True(t, strings.HasPrefix(f.rec.Line(lower.ModeLineRow()), tt.fill))
		})
	}
}

func TestWindowColorRewritesRows(t *testing.T) {
	caps := basicCaps
	caps.Color = true
	f := newFixture(t, 20, 6, caps, DefaultOptions(), "alpha")
	require.NoError(t, f.r.Update(true))

	f.win.FG = 2
	f.r.MarkWindowDirty(f.win, window.FlagHard)
	f.rec.Reset()
	require.NoError(t, f.r.Update(true))

	// Every text row is rewritten in full even where the text is the same.
	assert.Len(t, f.rec.CallsWithPrefix("Put"), 4*20)
	assert.False(t, f.r.vscreen.Rows[0].Has(core.RowColor))
	assert.True(t, f.r.vscreen.Rows[0].FG.Equals(core.PaletteColor(2)))

	f.r.MarkWindowDirty(f.win, window.FlagHard)
	f.rec.Reset()
	require.NoError(t, f.r.Update(true))
	assert.Zero(t, f.rec.Writes())
}

func TestPositionIndicator(t *testing.T) {
	list := window.NewList(6)
	w := list.Current()

	empty := buffer.New("empty")
	list.Attach(w, empty)
	assert.Equal(t, " Emp ", positionIndicator(w))

	b := buffer.New("lines")
	for _, l := range numbered(100) {
		b.Append([]byte(l))
	}
	list.Attach(w, b)

	w.Top = b.First()
	w.Dot = buffer.Position{Line: b.First()}
	assert.Equal(t, " Top ", positionIndicator(w))

	w.Top = b.LineAt(51)
	w.Dot = buffer.Position{Line: b.LineAt(53)}
	assert.Equal(t, " 50% ", positionIndicator(w))

	w.Top = b.LineAt(98)
	assert.Equal(t, " Bot ", positionIndicator(w))

	w.Top = b.LineAt(11)
	w.Dot = buffer.Position{Line: buffer.Header}
	assert.Equal(t, " Bot ", positionIndicator(w))

	small := buffer.New("small")
	small.Append([]byte("one"))
	list.Attach(w, small)
	w.Top = small.First()
	assert.Equal(t, " All ", positionIndicator(w))
}

func TestResizeDeferredWhileDisplaying(t *testing.T) {
	f := newFixture(t, 40, 6, basicCaps, DefaultOptions(), "alpha")
	require.NoError(t, f.r.Update(true))

	f.r.displaying = true
	f.r.NotifyResize(10, 30)
	require.NoError(t, f.r.applyPendingResize())
	rows, cols := f.r.Size()
	assert.Equal(t, 6, rows)
	assert.Equal(t, 40, cols)
	assert.True(t, f.r.ResizePending())

	f.r.displaying = false
	f.rec.SetSize(30, 10)
	f.rec.Reset()
	require.NoError(t, f.r.Update(true))

	rows, cols = f.r.Size()
	assert.Equal(t, 10, rows)
	assert.Equal(t, 30, cols)
	assert.False(t, f.r.ResizePending())
	assert.Equal(t, 9, f.list.Height())
	assert.Equal(t, 8, f.win.Rows)
	assert.NotEmpty(t, f.rec.CallsWithPrefix("ErasePage"))
	assert.Equal(t, "alpha", f.line(0))
}

func TestResizeHonorsMaxSize(t *testing.T) {
	caps := basicCaps
	caps.MaxRows = 8
	caps.MaxCols = 20
	f := newFixture(t, 40, 6, caps, DefaultOptions(), "alpha")

	f.r.NotifyResize(50, 100)
	require.NoError(t, f.r.Update(true))
	rows, cols := f.r.Size()
	assert.Equal(t, 8, rows)
	assert.Equal(t, 20, cols)
}

func TestOptionsMaxSize(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxRows = 5
	f := newFixture(t, 40, 10, basicCaps, opts, "alpha")

	rows, cols := f.r.Size()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 40, cols)
	assert.Equal(t, 3, f.win.Rows)
}

func TestWindowInvariantRecovery(t *testing.T) {
	f := newFixture(t, 20, 6, basicCaps, DefaultOptions(), numbered(5)...)
	require.NoError(t, f.r.Update(true))

	gone := f.buf.LineAt(2)
	_, err := f.buf.Remove(gone)
	require.NoError(t, err)
	f.win.Top = gone
	f.win.Set(window.FlagHard)

	require.NoError(t, f.r.Update(true))
	assert.True(t, f.buf.Live(f.win.Top))
	assert.Equal(t, "line0", f.line(0))
}

func TestWindowInvariantPanicsInDebug(t *testing.T) {
	opts := DefaultOptions()
	opts.Debug = true
	f := newFixture(t, 20, 6, basicCaps, opts, numbered(5)...)
	require.NoError(t, f.r.Update(true))

	gone := f.buf.LineAt(2)
	_, err := f.buf.Remove(gone)
	require.NoError(t, err)
	f.win.Top = gone
	f.win.Set(window.FlagHard)

	assert.Panics(t, func() { _ = f.r.Update(true) })
}

func TestForceFullRedraw(t *testing.T) {
	f := newFixture(t, 20, 6, basicCaps, DefaultOptions(), "alpha")
	require.NoError(t, f.r.Update(true))

	f.r.ForceFullRedraw()
	f.rec.Reset()
	require.NoError(t, f.r.Update(true))
	assert.Len(t, f.rec.CallsWithPrefix("ErasePage"), 1)
	assert.Equal(t, "alpha", f.line(0))
}

func TestMessageLine(t *testing.T) {
	f := newFixture(t, 20, 6, basicCaps, DefaultOptions(), "alpha")
	require.NoError(t, f.r.Update(true))

	require.NoError(t, f.r.Messagef("saved %d lines", 42))
	assert.Equal(t, "saved 42 lines", f.line(5))
	assert.True(t, f.r.MessagePresent())

	require.NoError(t, f.r.Message("100%"))
	assert.Equal(t, "100%", f.line(5))

	require.NoError(t, f.r.Message(strings.Repeat("x", 40)))
	assert.Equal(t, strings.Repeat("x", 19), f.line(5))

	require.NoError(t, f.r.EraseMessage())
	assert.Equal(t, "", f.line(5))
	assert.False(t, f.r.MessagePresent())
}

func TestMessageLineWithoutEraseEOL(t *testing.T) {
	f := newFixture(t, 20, 6, backend.Caps{Reverse: true}, DefaultOptions(), "alpha")
	require.NoError(t, f.r.Update(true))

	require.NoError(t, f.r.Message("a long message here"))
	require.NoError(t, f.r.Message("short"))
	assert.Equal(t, "short", f.line(5))
	assert.Empty(t, f.rec.CallsWithPrefix("EraseEOL"))
}

func TestRemapReplacesCodepoints(t *testing.T) {
	opts := DefaultOptions()
	opts.Remap = &charset.Remap{}
	require.NoError(t, opts.Remap.Apply("repchar U+003F U+263A"))
	f := newFixture(t, 20, 4, basicCaps, opts, "a☺b")
	require.NoError(t, f.r.Update(true))

	assert.Equal(t, "a?b", f.line(0))
	// The virtual screen keeps the real codepoint.
	assert.Equal(t, rune(0x263A), f.r.vscreen.Rows[0].Cells[1].Rune)
}
