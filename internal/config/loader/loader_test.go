package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[display]
tabWidth = 4
hscroll = false

[terminal]
driver = "ansi"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	require.NoError(t, err)

	tab, ok := getByPath(config, "display", "tabWidth")
	require.True(t, ok)
	assert.EqualValues(t, 4, tab)
	driver, _ := getByPath(config, "terminal", "driver")
	assert.Equal(t, "ansi", driver)
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	assert.NoError(t, err)
	assert.Nil(t, config)
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[display\ntabWidth = 4\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "/bad.toml", pe.Path)
	assert.Positive(t, pe.Line)
	assert.Contains(t, pe.Error(), "parse error in /bad.toml at line")
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[logging]\nlevel = \"debug\"\n"))
	require.NoError(t, err)
	level, _ := getByPath(config, "logging", "level")
	assert.Equal(t, "debug", level)
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
display:
  tabWidth: 4
  foreground: green
logging:
  level: warn
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/config.yaml").Load()
	require.NoError(t, err)

	tab, _ := getByPath(config, "display", "tabWidth")
	assert.EqualValues(t, 4, tab)
	fg, _ := getByPath(config, "display", "foreground")
	assert.Equal(t, "green", fg)
}

func TestYAMLLoader_EmptyAndInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yml", "")
	memfs.AddFile("/bad.yml", "display: [1, 2\n")

	config, err := NewYAMLLoaderWithFS(memfs, "/empty.yml").Load()
	require.NoError(t, err)
	assert.Empty(t, config)

	_, err = NewYAMLLoaderWithFS(memfs, "/bad.yml").Load()
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestForPath(t *testing.T) {
	memfs := NewMemFS()

	l, err := ForPath(memfs, "/a/config.TOML")
	require.NoError(t, err)
	assert.IsType(t, &TOMLLoader{}, l)

	l, err = ForPath(memfs, "/a/config.yml")
	require.NoError(t, err)
	assert.IsType(t, &YAMLLoader{}, l)

	_, err = ForPath(memfs, "/a/config.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"display": map[string]any{"tabWidth": 8, "hscroll": true},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"display":  map[string]any{"tabWidth": 4},
		"terminal": map[string]any{"driver": "ansi"},
	}

	got := DeepMerge(dst, src)
	assert.Equal(t, map[string]any{
		"display":  map[string]any{"tabWidth": 4, "hscroll": true},
		"logging":  map[string]any{"level": "info"},
		"terminal": map[string]any{"driver": "ansi"},
	}, got)

	assert.Equal(t, map[string]any{"a": 1}, DeepMerge(nil, map[string]any{"a": 1}))
}
