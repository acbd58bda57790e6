package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name       string
		prev, next Operation
		havePrev   bool
		want       Operation
	}{
		{"first event", OpWrite, OpCreate, false, OpCreate},
		{"create then write", OpCreate, OpWrite, true, OpCreate},
		{"write then write", OpWrite, OpWrite, true, OpWrite},
		{"write then remove", OpWrite, OpRemove, true, OpRemove},
		{"remove then create", OpRemove, OpCreate, true, OpCreate},
		{"create then rename", OpCreate, OpRename, true, OpRename},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coalesce(tt.prev, tt.next, tt.havePrev))
		})
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")
	require.NoError(t, w.Watch(a))
	require.NoError(t, w.Watch(b))
	require.NoError(t, w.Watch(a))
	assert.Len(t, w.WatchedFiles(), 2)
	assert.Equal(t, 1, len(w.dirs))

	require.NoError(t, w.Unwatch(a))
	assert.Equal(t, []string{b}, w.WatchedFiles())
	require.NoError(t, w.Unwatch(b))
	assert.Empty(t, w.dirs)
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0o644))

	w, err := New(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)
	defer w.Stop()

	events := make(chan Event, 10)
	w.OnChange(func(ev Event) { events <- ev })
	require.NoError(t, w.Watch(path))
	w.Start()
	assert.True(t, w.IsRunning())

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("a = 2\n"), 0o644))

	select {
	case ev := <-events:
		assert.Equal(t, path, ev.Path)
		assert.Contains(t, []Operation{OpWrite, OpCreate}, ev.Op)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for config write")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	w.Start()
	w.Stop()
	w.Stop()
	assert.False(t, w.IsRunning())
}
