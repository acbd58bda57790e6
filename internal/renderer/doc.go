// Package renderer implements incremental redisplay for a text editor on
// a character-cell terminal.
//
// The renderer keeps two screen models. The virtual screen is what the
// terminal should show; the physical screen is what it shows now. An
// update runs in phases:
//
//  1. Planning: windows flagged by the editing layer are reframed so dot
//     is visible, and their changed rows are composed into the virtual
//     screen. Mode lines are redrawn when requested.
//  2. Cursor: the cursor column is computed. Lines too wide for the
//     screen are shifted, either for the whole window (HScroll) or for
//     the cursor line only, marked with '$' in column 0.
//  3. Scroll: when lines were inserted or killed, a run of rows that
//     merely moved is shifted with one terminal scroll.
//  4. Differencing: every changed row is compared with its physical
//     counterpart and only the middle region that differs is written.
//
// The renderer is not safe for concurrent use except for NotifyResize,
// which may be called from any goroutine.
package renderer
