package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ReadFrom replaces the buffer contents with the lines read from r.
// Lines ending in CR LF switch the buffer into DOS line end mode and are
// stored without the CR.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	b.reset()
	b.ClearMode(ModeDOSLineEnd)

	br := bufio.NewReader(r)
	var (
		total int64
		dos   int
	)
	for {
		data, err := br.ReadBytes('\n')
		total += int64(len(data))
		if len(data) > 0 {
			if data[len(data)-1] == '\n' {
				data = data[:len(data)-1]
				if n := len(data); n > 0 && data[n-1] == '\r' {
					data = data[:n-1]
					dos++
				}
			}
			b.Append(data)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return total, fmt.Errorf("read buffer %s: %w", b.name, err)
		}
	}
	if dos > 0 && dos == b.count {
		b.SetMode(ModeDOSLineEnd)
	}
	b.dot = Position{Line: b.First()}
	b.active = true
	b.ClearFlag(FlagChanged)
	return total, nil
}

// WriteTo writes every line to w, terminating each with LF, or CR LF in DOS
// line end mode.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	eol := []byte{'\n'}
	if b.HasMode(ModeDOSLineEnd) {
		eol = []byte{'\r', '\n'}
	}
	var buf bytes.Buffer
	for id := b.First(); id != Header; id = b.Next(id) {
		buf.Write(b.Text(id))
		buf.Write(eol)
	}
	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("write buffer %s: %w", b.name, err)
	}
	return int64(n), nil
}
