package charset

import "unicode/utf8"

// MaxRune is the largest codepoint the decoder accepts.
const MaxRune = 0x10FFFF

const maxSeqLen = 4

// Decode returns the codepoint starting at b[i] and the number of bytes it
// spans. Invalid or truncated sequences and overlong values above MaxRune
// decode as the single byte b[i]. Overlong encodings are accepted.
func Decode(b []byte, i int) (rune, int) {
	c := b[i]
	if c < 0xc0 {
		return rune(c), 1
	}

	mask := byte(0x20)
	n := 2
	for c&mask != 0 {
		n++
		mask >>= 1
	}
	if n > maxSeqLen || i+n > len(b) {
		return rune(c), 1
	}

	v := rune(c & (mask - 1))
	for k := 1; k < n; k++ {
		cc := b[i+k]
		if cc&0xc0 != 0x80 {
			return rune(c), 1
		}
		v = v<<6 | rune(cc&0x3f)
	}
	if v > MaxRune {
		return rune(c), 1
	}
	return v, n
}

// Encode appends the UTF-8 encoding of r to dst.
func Encode(dst []byte, r rune) []byte {
	return utf8.AppendRune(dst, r)
}

// Runes decodes a whole line.
func Runes(b []byte) []rune {
	out := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		r, n := Decode(b, i)
		out = append(out, r)
		i += n
	}
	return out
}
