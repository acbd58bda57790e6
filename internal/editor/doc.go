// Package editor is the editing layer between key commands and the
// redisplay engine.
//
// An Editor owns the buffer list and the window list. Every operation acts
// on the current window and records what it changed in the window flags
// (FlagMove, FlagEdit, FlagHard, FlagInserts, FlagKills, FlagMode) so the
// renderer can choose the cheapest repaint on its next update. The editor
// never draws anything itself.
//
// Buffer switching follows the cursor copy discipline of the window list:
// the first window on a buffer takes the cursor state saved in the buffer,
// later windows copy it from a window already showing the buffer, and the
// last window to leave a buffer saves its state back.
//
// An Editor is not safe for concurrent use.
package editor
