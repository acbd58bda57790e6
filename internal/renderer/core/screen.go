package core

// RowFlags describe the state of a screen row.
type RowFlags uint8

const (
	// RowChanged marks a virtual row that differs from the physical one.
	RowChanged RowFlags = 1 << iota
	// RowExtended marks a row scrolled horizontally around the cursor.
	RowExtended
	// RowReverse records that the row is shown in reverse video.
	RowReverse
	// RowReverseReq requests reverse video for the row.
	RowReverseReq
	// RowColor marks a row whose requested colors may differ from the
	// ones it is shown in.
	RowColor
)

// Row is one line of a screen model.
type Row struct {
	Cells []Grapheme
	Flags RowFlags

	FG, BG       Color
	ReqFG, ReqBG Color
}

// Has reports whether any bit of f is set.
func (r *Row) Has(f RowFlags) bool { return r.Flags&f != 0 }

// RequestColors sets the colors the row should be shown in and flags the
// row when they differ from the current ones.
func (r *Row) RequestColors(fg, bg Color) {
	r.ReqFG, r.ReqBG = fg, bg
	if !fg.Equals(r.FG) || !bg.Equals(r.BG) {
		r.Flags |= RowColor
	}
}

// Blank fills the row with spaces.
func (r *Row) Blank() {
	for i := range r.Cells {
		r.Cells[i].Set(' ')
	}
}

// CopyFrom deep-copies the cells of src into r.
func (r *Row) CopyFrom(src *Row) {
	for i := range r.Cells {
		if i < len(src.Cells) {
			r.Cells[i].CloneFrom(&src.Cells[i])
		} else {
			r.Cells[i].Set(' ')
		}
	}
}

// Equal compares the cells of two rows.
func (r *Row) Equal(o *Row) bool {
	if len(r.Cells) != len(o.Cells) {
		return false
	}
	for i := range r.Cells {
		if !r.Cells[i].Equal(&o.Cells[i]) {
			return false
		}
	}
	return true
}

// Text returns the row as a string. Filler cells are skipped.
func (r *Row) Text() string {
	var out []rune
	for i := range r.Cells {
		c := &r.Cells[i]
		if c.Filler() {
			continue
		}
		out = append(out, c.Runes()...)
	}
	return string(out)
}

// Screen is a grid of rows. The renderer keeps two: the virtual screen it
// composes into and the physical screen mirroring the terminal.
type Screen struct {
	Rows []Row
	cols int
}

// NewScreen allocates a blank screen.
func NewScreen(rows, cols int) *Screen {
	s := &Screen{}
	s.Resize(rows, cols)
	return s
}

// Size returns the screen dimensions.
func (s *Screen) Size() (rows, cols int) { return len(s.Rows), s.cols }

// Cols returns the width of the screen.
func (s *Screen) Cols() int { return s.cols }

// Resize reallocates the screen. Content in the overlapping area is kept;
// new cells are blank.
func (s *Screen) Resize(rows, cols int) {
	old := s.Rows
	s.Rows = make([]Row, rows)
	for i := range s.Rows {
		r := &s.Rows[i]
		r.Cells = make([]Grapheme, cols)
		r.FG, r.BG = ColorDefault, ColorDefault
		r.ReqFG, r.ReqBG = ColorDefault, ColorDefault
		if i < len(old) {
			o := &old[i]
			for j := range r.Cells {
				if j < len(o.Cells) {
					r.Cells[j].CloneFrom(&o.Cells[j])
				} else {
					r.Cells[j].Set(' ')
				}
			}
			r.Flags = o.Flags
			r.FG, r.BG, r.ReqFG, r.ReqBG = o.FG, o.BG, o.ReqFG, o.ReqBG
			continue
		}
		r.Blank()
	}
	s.cols = cols
}
