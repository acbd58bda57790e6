package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/engine/buffer"
	"github.com/dshills/uemacs/internal/engine/window"
)

// DefaultBufferName is the name of the buffer created with the editor.
const DefaultBufferName = "main"

// Option configures an Editor during creation.
type Option func(*Editor)

// WithTabWidth sets the tab width used for goal columns.
func WithTabWidth(width int) Option {
	return func(e *Editor) {
		e.SetTabWidth(width)
	}
}

// WithClassifier sets the width classifier used for goal columns.
func WithClassifier(c charset.Classifier) Option {
	return func(e *Editor) {
		e.class = c
	}
}

// Editor holds the buffers and windows of one editing session.
type Editor struct {
	buffers []*buffer.Buffer
	windows *window.List

	tabWidth int
	class    charset.Classifier

	// goal is the display column vertical motion tries to keep.
	goal     int
	keepGoal bool
}

// New creates an editor whose windows share height rows, mode lines
// included, showing an empty buffer named "main".
func New(height int, opts ...Option) *Editor {
	e := &Editor{
		windows:  window.NewList(height),
		tabWidth: 8,
	}
	for _, opt := range opts {
		opt(e)
	}
	b := buffer.New(DefaultBufferName)
	b.SetActive(true)
	e.buffers = append(e.buffers, b)
	e.windows.Attach(e.windows.Current(), b)
	return e
}

// Windows returns the window list.
func (e *Editor) Windows() *window.List { return e.windows }

// Current returns the current window.
func (e *Editor) Current() *window.Window { return e.windows.Current() }

// CurrentBuffer returns the buffer shown in the current window.
func (e *Editor) CurrentBuffer() *buffer.Buffer { return e.Current().Buffer() }

// SetTabWidth changes the tab width. Values other than 4 and 8 are ignored.
func (e *Editor) SetTabWidth(width int) {
	if width == 4 || width == 8 {
		e.tabWidth = width
	}
}

// SetClassifier changes the width classifier.
func (e *Editor) SetClassifier(c charset.Classifier) { e.class = c }

// Buffers returns the buffers in creation order. The slice must not be
// modified.
func (e *Editor) Buffers() []*buffer.Buffer { return e.buffers }

// FindBuffer returns the buffer called name, or nil.
func (e *Editor) FindBuffer(name string) *buffer.Buffer {
	for _, b := range e.buffers {
		if b.Name() == name {
			return b
		}
	}
	return nil
}

// CreateBuffer adds an empty buffer called name.
func (e *Editor) CreateBuffer(name string) (*buffer.Buffer, error) {
	if e.FindBuffer(name) != nil {
		return nil, fmt.Errorf("%w: %s", ErrBufferExists, name)
	}
	b := buffer.New(name)
	e.buffers = append(e.buffers, b)
	return b, nil
}

// uniqueName derives a buffer name from base that no buffer uses yet.
func (e *Editor) uniqueName(base string) string {
	name := base
	for n := 2; e.FindBuffer(name) != nil; n++ {
		name = base + "<" + strconv.Itoa(n) + ">"
	}
	return name
}

// SwitchBuffer shows b in the current window. A buffer that was never
// shown is read from its file first.
func (e *Editor) SwitchBuffer(b *buffer.Buffer) error {
	if !b.Active() {
		if b.FileName() != "" {
			if _, err := e.readInto(b, b.FileName()); err != nil {
				return err
			}
		}
		b.SetActive(true)
	}
	e.windows.Attach(e.Current(), b)
	e.keepGoal = false
	return nil
}

// NextBuffer switches to the buffer after the current one in the list,
// skipping invisible buffers.
func (e *Editor) NextBuffer() error {
	cur := slices.Index(e.buffers, e.CurrentBuffer())
	for i := 1; i < len(e.buffers); i++ {
		b := e.buffers[(cur+i)%len(e.buffers)]
		if !b.Has(buffer.FlagInvisible) {
			return e.SwitchBuffer(b)
		}
	}
	return nil
}

// KillBuffer discards b. Buffers shown in a window are refused.
func (e *Editor) KillBuffer(b *buffer.Buffer) error {
	if b.Windows() != 0 {
		return fmt.Errorf("%w: %s", ErrBufferInUse, b.Name())
	}
	i := slices.Index(e.buffers, b)
	if i < 0 {
		return nil
	}
	b.Clear()
	e.buffers = slices.Delete(e.buffers, i, i+1)
	return nil
}

// VisitFile shows the buffer holding path, creating and reading it when
// no buffer has that file yet.
func (e *Editor) VisitFile(path string) error {
	for _, b := range e.buffers {
		if b.FileName() == path {
			return e.SwitchBuffer(b)
		}
	}
	return e.SwitchBuffer(e.AddFileBuffer(path))
}

// AddFileBuffer creates a buffer for path without reading it. The file is
// read when the buffer is first shown.
func (e *Editor) AddFileBuffer(path string) *buffer.Buffer {
	b := buffer.New(e.uniqueName(filepath.Base(path)))
	b.SetFileName(path)
	e.buffers = append(e.buffers, b)
	return b
}

// ReadFile replaces the current buffer with the contents of path and
// makes path its file name. It reports whether the file did not exist.
func (e *Editor) ReadFile(path string) (bool, error) {
	b := e.CurrentBuffer()
	newFile, err := e.readInto(b, path)
	if err != nil {
		return false, err
	}
	b.SetFileName(path)
	return newFile, nil
}

// readInto loads path into b and resets every window showing it. A
// missing file leaves b empty.
func (e *Editor) readInto(b *buffer.Buffer, path string) (bool, error) {
	newFile := false
	f, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		b.Clear()
		b.SetActive(true)
		b.ClearFlag(buffer.FlagChanged)
		newFile = true
	case err != nil:
		return false, fmt.Errorf("read %s: %w", path, err)
	default:
		defer f.Close()
		if _, err := b.ReadFrom(f); err != nil {
			return false, err
		}
	}

	first := b.First()
	for _, w := range e.windows.Showing(b) {
		w.Top = first
		w.Dot = buffer.Position{Line: first}
		w.Mark = buffer.Position{Line: buffer.NoLine}
		w.FCol = 0
		w.Set(window.FlagMode | window.FlagHard)
	}
	e.keepGoal = false
	return newFile, nil
}

// SaveFile writes the current buffer to its file when it has changes. It
// reports whether anything was written.
func (e *Editor) SaveFile() (bool, error) {
	b := e.CurrentBuffer()
	if b.FileName() == "" {
		return false, ErrNoFileName
	}
	if !b.Changed() {
		return false, nil
	}
	if err := e.writeBuffer(b, b.FileName()); err != nil {
		return false, err
	}
	return true, nil
}

// WriteFile writes the current buffer to path and makes path its file
// name.
func (e *Editor) WriteFile(path string) error {
	b := e.CurrentBuffer()
	if err := e.writeBuffer(b, path); err != nil {
		return err
	}
	b.SetFileName(path)
	return nil
}

func (e *Editor) writeBuffer(b *buffer.Buffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if _, err := b.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	b.ClearFlag(buffer.FlagChanged)
	e.windows.MarkBuffer(b, window.FlagMode)
	return nil
}

// ToggleMode flips mode m on the current buffer.
func (e *Editor) ToggleMode(m buffer.Mode) {
	b := e.CurrentBuffer()
	if b.HasMode(m) {
		b.ClearMode(m)
	} else {
		b.SetMode(m)
	}
	e.windows.MarkBuffer(b, window.FlagMode)
}
