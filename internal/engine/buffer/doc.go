// Package buffer provides the line-linked text storage displayed by the
// redisplay engine.
//
// A Buffer keeps its lines in an arena. Each line is addressed by a stable
// LineID which stays valid until the line is removed. Slot 0 is the header
// line: it never holds text and links the first and last lines into a
// circular list, so walking forward from any line eventually returns to the
// header.
//
// Buffers are owned by the editor layer and are not safe for concurrent use.
// Windows reference a buffer without owning it; the buffer keeps a count of
// the windows that display it and the editor refuses to discard a buffer
// while that count is non-zero.
//
// Basic usage:
//
//	b := buffer.New("main")
//	first := b.Append([]byte("hello"))
//	b.InsertAfter(first, []byte("world"))
//	for id := b.First(); id != buffer.Header; id = b.Next(id) {
//	    fmt.Println(string(b.Text(id)))
//	}
package buffer
