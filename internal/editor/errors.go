package editor

import "errors"

// Errors returned by editor operations.
var (
	// ErrReadOnly indicates an edit was attempted in a View mode buffer.
	ErrReadOnly = errors.New("buffer is read-only")

	// ErrBufferInUse indicates a buffer shown in a window cannot be killed.
	ErrBufferInUse = errors.New("buffer is being displayed")

	// ErrBufferExists indicates a buffer with the name already exists.
	ErrBufferExists = errors.New("buffer already exists")

	// ErrNoFileName indicates the buffer has no associated file.
	ErrNoFileName = errors.New("no file name")

	// ErrBeginningOfBuffer indicates a motion ran into the buffer start.
	ErrBeginningOfBuffer = errors.New("beginning of buffer")

	// ErrEndOfBuffer indicates a motion ran into the buffer end.
	ErrEndOfBuffer = errors.New("end of buffer")

	// ErrBadLineNumber indicates a line number below 1.
	ErrBadLineNumber = errors.New("line number out of range")
)
