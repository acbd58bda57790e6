package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/uemacs/internal/charset"
	"github.com/dshills/uemacs/internal/config/loader"
	"github.com/dshills/uemacs/internal/config/watcher"
	"github.com/dshills/uemacs/internal/renderer/core"
)

// Settings is the complete editor configuration.
type Settings struct {
	Display  DisplaySettings  `toml:"display"`
	Terminal TerminalSettings `toml:"terminal"`
	Logging  LoggingSettings  `toml:"logging"`
}

// DisplaySettings control redisplay.
type DisplaySettings struct {
	// TabWidth is the tab stop interval, 4 or 8.
	TabWidth int `toml:"tabWidth"`

	// ScrollJump is the number of rows to jump when dot leaves the
	// window by one line. Zero recenters.
	ScrollJump int `toml:"scrollJump"`

	// HScroll shifts whole windows horizontally instead of extending
	// only the cursor line.
	HScroll bool `toml:"hscroll"`

	// HJump is the horizontal shift step in columns.
	HJump int `toml:"hjump"`

	// ScrollRunMin and ScrollDistanceFactor tune the scroll optimizer.
	ScrollRunMin         int `toml:"scrollRunMin"`
	ScrollDistanceFactor int `toml:"scrollDistanceFactor"`

	// EraseThreshold is the number of trailing blanks written literally
	// before erase-to-end-of-line is used instead.
	EraseThreshold int `toml:"eraseThreshold"`

	// Foreground and Background are color names, "%N" palette indexes
	// or hex values.
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`

	// EastAsianWide counts ambiguous-width characters as two columns.
	EastAsianWide bool `toml:"eastAsianWide"`

	// SpacingModifiersZeroWidth attaches U+02B0..U+02FF to the previous
	// cell.
	SpacingModifiersZeroWidth bool `toml:"spacingModifiersZeroWidth"`

	// CharReplace lists codepoints shown as a replacement character,
	// for example "repchar U+003F U+0080-U+009F".
	CharReplace string `toml:"charReplace"`

	// Debug turns window invariant violations into panics.
	Debug bool `toml:"debug"`
}

// TerminalSettings select and tune the terminal driver.
type TerminalSettings struct {
	// Driver is "tcell" or "ansi".
	Driver string `toml:"driver"`

	// Latin1 makes the ansi driver encode output as ISO-8859-1.
	Latin1 bool `toml:"latin1"`

	// MaxRows and MaxCols cap the screen size; zero means no cap.
	MaxRows int `toml:"maxRows"`
	MaxCols int `toml:"maxCols"`
}

// LoggingSettings configure the diagnostic log.
type LoggingSettings struct {
	// Level is debug, info, warn, error or off.
	Level string `toml:"level"`

	// File is the log file path. Empty disables logging.
	File string `toml:"file"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Display: DisplaySettings{
			TabWidth:             8,
			ScrollJump:           1,
			HScroll:              true,
			HJump:                1,
			ScrollRunMin:         3,
			ScrollDistanceFactor: 2,
			EraseThreshold:       3,
			Foreground:           "default",
			Background:           "default",
		},
		Terminal: TerminalSettings{
			Driver: "tcell",
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}

// DefaultPath returns the settings file in the user configuration
// directory, or an empty string when there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "uemacs", "config.toml")
}

var (
	drivers   = []string{"tcell", "ansi"}
	logLevels = []string{"debug", "info", "warn", "error", "off"}
)

// Validate checks every setting.
func (s Settings) Validate() error {
	d := s.Display
	switch {
	case d.TabWidth != 4 && d.TabWidth != 8:
		return &ValidationError{Path: "display.tabWidth", Value: d.TabWidth, Message: "must be 4 or 8"}
	case d.ScrollJump < 0:
		return &ValidationError{Path: "display.scrollJump", Value: d.ScrollJump, Message: "must not be negative"}
	case d.HJump < 1:
		return &ValidationError{Path: "display.hjump", Value: d.HJump, Message: "must be at least 1"}
	case d.ScrollRunMin < 1:
		return &ValidationError{Path: "display.scrollRunMin", Value: d.ScrollRunMin, Message: "must be at least 1"}
	case d.ScrollDistanceFactor < 1:
		return &ValidationError{Path: "display.scrollDistanceFactor", Value: d.ScrollDistanceFactor, Message: "must be at least 1"}
	case d.EraseThreshold < 0:
		return &ValidationError{Path: "display.eraseThreshold", Value: d.EraseThreshold, Message: "must not be negative"}
	}
	if _, err := core.ParseColor(d.Foreground); err != nil {
		return &ValidationError{Path: "display.foreground", Value: d.Foreground, Message: err.Error()}
	}
	if _, err := core.ParseColor(d.Background); err != nil {
		return &ValidationError{Path: "display.background", Value: d.Background, Message: err.Error()}
	}
	if _, err := d.Remap(); err != nil {
		return &ValidationError{Path: "display.charReplace", Value: d.CharReplace, Message: err.Error()}
	}

	t := s.Terminal
	if !slices.Contains(drivers, t.Driver) {
		return &ValidationError{Path: "terminal.driver", Value: t.Driver, Message: "must be tcell or ansi"}
	}
	if t.MaxRows < 0 || t.MaxCols < 0 {
		return &ValidationError{Path: "terminal.maxRows", Value: fmt.Sprintf("%dx%d", t.MaxCols, t.MaxRows), Message: "must not be negative"}
	}
	if !slices.Contains(logLevels, s.Logging.Level) {
		return &ValidationError{Path: "logging.level", Value: s.Logging.Level, Message: "unknown level"}
	}
	return nil
}

// Colors parses the global colors.
func (d DisplaySettings) Colors() (fg, bg core.Color, err error) {
	if fg, err = core.ParseColor(d.Foreground); err != nil {
		return fg, bg, err
	}
	bg, err = core.ParseColor(d.Background)
	return fg, bg, err
}

// Remap builds the character replacement table. It returns nil when no
// replacement is configured.
func (d DisplaySettings) Remap() (*charset.Remap, error) {
	if d.CharReplace == "" {
		return nil, nil
	}
	m := &charset.Remap{}
	if err := m.Apply(d.CharReplace); err != nil {
		return nil, err
	}
	return m, nil
}

// Classifier returns the width classifier the settings describe.
func (d DisplaySettings) Classifier() charset.Classifier {
	return charset.Classifier{
		SpacingModifiersZeroWidth: d.SpacingModifiersZeroWidth,
		EastAsianWide:             d.EastAsianWide,
	}
}

// Decode applies a generic settings map over the defaults.
func Decode(m map[string]any) (Settings, error) {
	s := Default()
	if len(m) == 0 {
		return s, nil
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return s, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return s, nil
}

// Config holds the active settings and their sources.
type Config struct {
	mu       sync.RWMutex
	path     string
	fs       loader.FileSystem
	env      *loader.EnvLoader
	settings Settings
	watcher  *watcher.Watcher
	debounce time.Duration
}

// Option configures a Config.
type Option func(*Config)

// WithFileSystem reads the settings file through fsys.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fsys
	}
}

// WithEnvLoader replaces the environment loader. A nil loader disables
// environment overrides.
func WithEnvLoader(l *loader.EnvLoader) Option {
	return func(c *Config) {
		c.env = l
	}
}

// WithDebounce sets how long Watch waits for writes to settle.
func WithDebounce(d time.Duration) Option {
	return func(c *Config) {
		c.debounce = d
	}
}

// New creates a configuration reading path. An empty path uses only the
// defaults and the environment.
func New(path string, opts ...Option) *Config {
	c := &Config{
		path:     path,
		fs:       loader.DefaultFS(),
		env:      loader.NewEnvLoader(loader.DefaultEnvPrefix),
		settings: Default(),
		debounce: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the settings file path.
func (c *Config) Path() string { return c.path }

// Settings returns a snapshot of the active settings.
func (c *Config) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Load reads the settings file and environment. On error the previous
// settings stay active.
func (c *Config) Load() error {
	s, err := c.read()
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.settings = s
	c.mu.Unlock()
	return nil
}

func (c *Config) read() (Settings, error) {
	var merged map[string]any
	if c.path != "" {
		l, err := loader.ForPath(c.fs, c.path)
		if err != nil {
			return Settings{}, err
		}
		m, err := l.Load()
		if err != nil {
			return Settings{}, err
		}
		merged = loader.DeepMerge(merged, m)
	}
	if c.env != nil {
		m, err := c.env.Load()
		if err != nil {
			return Settings{}, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	s, err := Decode(merged)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", c.path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Watch reloads the settings whenever the file changes and calls
// onChange from the watcher goroutine with the new settings, or with the
// error that kept the old ones. A removed file is ignored.
func (c *Config) Watch(onChange func(Settings, error)) error {
	if c.path == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watcher != nil {
		return ErrWatcherRunning
	}

	w, err := watcher.New(
		watcher.WithDebounce(c.debounce),
		watcher.WithErrorHandler(func(err error) { onChange(Settings{}, err) }),
	)
	if err != nil {
		return err
	}
	if err := w.Watch(c.path); err != nil {
		w.Stop()
		return err
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		s, err := c.read()
		if err == nil {
			c.mu.Lock()
			c.settings = s
			c.mu.Unlock()
		}
		onChange(s, err)
	})
	w.Start()
	c.watcher = w
	return nil
}

// Close stops the watcher.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}
