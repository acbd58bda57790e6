package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want rune
		n    int
	}{
		{"ascii", []byte("a"), 'a', 1},
		{"two byte", []byte("é"), 'é', 2},
		{"three byte", []byte("世"), '世', 3},
		{"four byte", []byte("😀"), '😀', 4},
		{"continuation byte as latin1", []byte{0xa9}, 0xa9, 1},
		{"truncated sequence", []byte{0xe4, 0xb8}, 0xe4, 1},
		{"bad continuation", []byte{0xc3, 0x41}, 0xc3, 1},
		{"too long lead", []byte{0xf8, 0x88, 0x80, 0x80, 0x80}, 0xf8, 1},
		{"overlong accepted", []byte{0xc0, 0xaf}, '/', 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, n := Decode(tt.in, 0)
			assert.Equal(t, tt.want, r)
			assert.Equal(t, tt.n, n)
		})
	}
}

func TestRunesTolerant(t *testing.T) {
	in := []byte{'a', 0xff, 'b'}
	assert.Equal(t, []rune{'a', 0xff, 'b'}, Runes(in))
	assert.Equal(t, "x€", string(Encode([]byte("x"), '€')))
}

func TestZeroWidth(t *testing.T) {
	assert.Equal(t, CombiningMark, ZeroWidth(0x0301))
	assert.Equal(t, ZeroWidthJoiner, ZeroWidth(0x200D))
	assert.Equal(t, DirectionMark, ZeroWidth(0x202B))
	assert.Equal(t, CombiningMark, ZeroWidth(0xFE20))
	assert.Equal(t, NotZeroWidth, ZeroWidth('a'))
	assert.Equal(t, NotZeroWidth, ZeroWidth(0x02B0))

	c := Classifier{SpacingModifiersZeroWidth: true}
	assert.Equal(t, SpacingModifier, c.ZeroWidth(0x02B0))
	assert.Equal(t, 0, c.Width(0x02B0))
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 1, Width('a'))
	assert.Equal(t, 2, Width('世'))
	assert.Equal(t, 0, Width(0x0301))
	assert.Equal(t, 1, Width('é'))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "世", Truncate("世界", 3))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "éx", Truncate("éxyz", 2))
	assert.Equal(t, 4, StringWidth("世界"))
}

func TestRemap(t *testing.T) {
	var m Remap
	assert.Equal(t, rune(0x2500), m.DisplayFor(0x2500))
	assert.Equal(t, DefaultReplacement, m.DisplayFor(0x110000))

	require.NoError(t, m.Apply("U+2500-U+257F 00a0 repchar 2591"))
	assert.Equal(t, rune(0x2591), m.DisplayFor(0x2510))
	assert.Equal(t, rune(0x2591), m.DisplayFor(0xa0))
	assert.Equal(t, rune(0x2580), m.DisplayFor(0x2580))
	assert.Equal(t, 'a', m.DisplayFor('a'))

	require.NoError(t, m.Apply("2500-2501"))
	assert.Equal(t, rune(0x2510), m.DisplayFor(0x2510), "same start replaces the range")

	require.NoError(t, m.Apply("reset"))
	assert.Equal(t, rune(0xa0), m.DisplayFor(0xa0))
	assert.Equal(t, DefaultReplacement, m.Replacement())

	assert.Error(t, m.Apply("repchar"))
	assert.Error(t, m.Apply("zz"))
	assert.Error(t, m.Apply("30-20"))

	var nilMap *Remap
	assert.Equal(t, 'q', nilMap.DisplayFor('q'))
}
