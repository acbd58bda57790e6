package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/uemacs/internal/engine/buffer"
)

func newBuffer(name string, n int) *buffer.Buffer {
	b := buffer.New(name)
	for i := 0; i < n; i++ {
		b.Append([]byte{byte('a' + i%26)})
	}
	b.SetDot(buffer.Position{Line: b.First()})
	return b
}

func TestAttachFirstUseCopiesBufferState(t *testing.T) {
	l := NewList(24)
	w := l.Current()
	b := newBuffer("a", 5)
	third := b.LineAt(3)
	b.SetDot(buffer.Position{Line: third, Offset: 0})
	b.SetFCol(4)

	l.Attach(w, b)

	assert.Equal(t, 1, b.Windows())
	assert.Equal(t, third, w.Dot.Line)
	assert.Equal(t, 4, w.FCol)
	assert.True(t, w.Has(FlagForce))
	assert.True(t, w.Has(FlagHard))
	assert.True(t, w.Has(FlagMode))
}

func TestAttachSecondUseCopiesWindowState(t *testing.T) {
	l := NewList(24)
	w := l.Current()
	b := newBuffer("a", 10)
	l.Attach(w, b)
	w.Dot = buffer.Position{Line: b.LineAt(7), Offset: 0}
	w.FCol = 2

	nw, err := l.Split(w)
	require.NoError(t, err)

	other := newBuffer("b", 3)
	l.Attach(nw, other)
	assert.Equal(t, 1, b.Windows())

	w.Dot = buffer.Position{Line: b.LineAt(9)}
	l.Attach(nw, b)
	assert.Equal(t, 2, b.Windows())
	assert.Equal(t, b.LineAt(9), nw.Dot.Line)
	assert.Equal(t, 2, nw.FCol)
	assert.Equal(t, 0, other.Windows())
}

func TestDetachLastUseSavesState(t *testing.T) {
	l := NewList(24)
	w := l.Current()
	b := newBuffer("a", 10)
	l.Attach(w, b)
	w.Dot = buffer.Position{Line: b.LineAt(6), Offset: 0}
	w.FCol = 3

	l.Attach(w, newBuffer("b", 1))

	assert.Equal(t, 0, b.Windows())
	assert.Equal(t, b.LineAt(6), b.Dot().Line)
	assert.Equal(t, 3, b.FCol())
}

func TestSplitAndDelete(t *testing.T) {
	l := NewList(24)
	w := l.Current()
	l.Attach(w, newBuffer("a", 3))
	require.Equal(t, 23, w.Rows)

	nw, err := l.Split(w)
	require.NoError(t, err)
	assert.Equal(t, 11, w.Rows)
	assert.Equal(t, 12, nw.TopRow)
	assert.Equal(t, 11, nw.Rows)
	assert.Equal(t, 23, nw.ModeLineRow())
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, nw, l.Next(w))
	assert.Equal(t, w, l.Next(nw))

	require.NoError(t, l.Delete(w))
	assert.Equal(t, 0, nw.TopRow)
	assert.Equal(t, 23, nw.Rows)
	assert.Equal(t, nw, l.Current())
	assert.ErrorIs(t, l.Delete(nw), ErrOnlyWindow)
}

func TestSplitTooSmall(t *testing.T) {
	l := NewList(3)
	w := l.Current()
	l.Attach(w, newBuffer("a", 1))
	_, err := l.Split(w)
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestGrow(t *testing.T) {
	l := NewList(24)
	w := l.Current()
	l.Attach(w, newBuffer("a", 1))
	nw, err := l.Split(w)
	require.NoError(t, err)

	require.NoError(t, l.Grow(w, 2))
	assert.Equal(t, 13, w.Rows)
	assert.Equal(t, 14, nw.TopRow)
	assert.Equal(t, 9, nw.Rows)

	require.NoError(t, l.Grow(nw, 1))
	assert.Equal(t, 12, w.Rows)
	assert.Equal(t, 13, nw.TopRow)
	assert.Equal(t, 10, nw.Rows)

	assert.ErrorIs(t, l.Grow(w, 20), ErrTooSmall)
}

func TestOnly(t *testing.T) {
	l := NewList(24)
	w := l.Current()
	b := newBuffer("a", 1)
	l.Attach(w, b)
	nw, err := l.Split(w)
	require.NoError(t, err)

	require.NoError(t, l.Only(nw))
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 0, nw.TopRow)
	assert.Equal(t, 23, nw.Rows)
	assert.Equal(t, 1, b.Windows())
}

func TestResize(t *testing.T) {
	l := NewList(24)
	w := l.Current()
	b := newBuffer("a", 1)
	l.Attach(w, b)
	nw, err := l.Split(w)
	require.NoError(t, err)

	t.Run("grow", func(t *testing.T) {
		require.NoError(t, l.Resize(30))
		assert.Equal(t, 2, l.Len())
		assert.Equal(t, 11, w.Rows)
		assert.Equal(t, 17, nw.Rows)
		assert.Equal(t, 29, nw.ModeLineRow())
	})

	t.Run("shrink drops windows", func(t *testing.T) {
		l.SetCurrent(nw)
		require.NoError(t, l.Resize(10))
		assert.Equal(t, 1, l.Len())
		assert.Equal(t, w, l.Current())
		assert.Equal(t, 9, w.Rows)
		assert.Equal(t, 1, b.Windows())
	})

	assert.ErrorIs(t, l.Resize(1), ErrScreenSmall)
}

func TestReposition(t *testing.T) {
	w := New(0, 10)
	w.Reposition(-1)
	assert.Equal(t, -1, w.Force)
	assert.True(t, w.Has(FlagForce))
}
