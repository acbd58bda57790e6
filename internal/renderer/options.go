package renderer

import (
	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/renderer/core"
)

// Options configures the renderer.
type Options struct {
	// Text layout
	TabWidth int // Tab stop interval, 4 or 8

	// Vertical scrolling
	ScrollJump int // Rows to jump when dot leaves the window by one line (0 = recenter)

	// Horizontal scrolling
	HScroll bool // Shift the whole window instead of extending the cursor line
	HJump   int  // Columns to shift per step when HScroll is set

	// Scroll optimizer
	ScrollRunMin         int // Shortest run of matching rows worth a terminal scroll
	ScrollDistanceFactor int // Largest distance allowed per matching row

	// Differencer
	EraseThreshold int // Trailing blanks below this are written, not erased

	// Mode line
	ProgramName string
	Version     string

	// Global colors
	FG core.Color
	BG core.Color

	// MaxRows and MaxCols cap the screen below the terminal's own limits;
	// zero means no cap.
	MaxRows int
	MaxCols int

	// Debug panics on window invariant violations instead of recovering.
	Debug bool

	// Remap lists codepoints shown as a replacement character.
	Remap *charset.Remap

	// Classifier measures codepoint widths.
	Classifier charset.Classifier

	// Typeahead reports pending input. When it returns true a non-forced
	// Update is skipped.
	Typeahead func() bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		TabWidth:             8,
		ScrollJump:           1,
		HScroll:              false,
		HJump:                1,
		ScrollRunMin:         3,
		ScrollDistanceFactor: 2,
		EraseThreshold:       3,
		ProgramName:          "uEmacs",
		Version:              "4.2",
		FG:                   core.ColorDefault,
		BG:                   core.ColorDefault,
	}
}

// normalize fills in values that would break the layout arithmetic.
func (o Options) normalize() Options {
	if o.TabWidth != 4 && o.TabWidth != 8 {
		o.TabWidth = 8
	}
	if o.HJump < 1 {
		o.HJump = 1
	}
	if o.ScrollRunMin < 1 {
		o.ScrollRunMin = 1
	}
	if o.ScrollDistanceFactor < 1 {
		o.ScrollDistanceFactor = 1
	}
	if o.EraseThreshold < 0 {
		o.EraseThreshold = 0
	}
	if o.ProgramName == "" {
		o.ProgramName = "uEmacs"
	}
	return o
}
