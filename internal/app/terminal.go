package app

import (
	"fmt"

	"github.com/dshills/uemacs/internal/config"
	"github.com/dshills/uemacs/internal/renderer"
	"github.com/dshills/uemacs/internal/renderer/backend"
)

// newTerminal creates the terminal driver named in the settings.
func newTerminal(s config.TerminalSettings) (backend.Terminal, error) {
	switch s.Driver {
	case "", "tcell":
		t, err := backend.NewTcell()
		if err != nil {
			return nil, err
		}
		return t, nil
	case "ansi":
		var opts []backend.ANSIOption
		if s.Latin1 {
			opts = append(opts, backend.WithLatin1())
		}
		return backend.NewANSI(opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, s.Driver)
	}
}

// rendererOptions translates settings into renderer options.
func rendererOptions(s config.Settings, typeahead func() bool) (renderer.Options, error) {
	d := s.Display
	fg, bg, err := d.Colors()
	if err != nil {
		return renderer.Options{}, err
	}
	remap, err := d.Remap()
	if err != nil {
		return renderer.Options{}, err
	}

	opts := renderer.DefaultOptions()
	opts.TabWidth = d.TabWidth
	opts.ScrollJump = d.ScrollJump
	opts.HScroll = d.HScroll
	opts.HJump = d.HJump
	opts.ScrollRunMin = d.ScrollRunMin
	opts.ScrollDistanceFactor = d.ScrollDistanceFactor
	opts.EraseThreshold = d.EraseThreshold
	opts.FG = fg
	opts.BG = bg
	opts.Remap = remap
	opts.Classifier = d.Classifier()
	opts.Debug = d.Debug
	opts.MaxRows = s.Terminal.MaxRows
	opts.MaxCols = s.Terminal.MaxCols
	opts.Typeahead = typeahead
	return opts, nil
}

// applyOverrides lays the command line options over loaded settings.
func applyOverrides(s config.Settings, opts Options) config.Settings {
	if opts.Driver != "" {
		s.Terminal.Driver = opts.Driver
	}
	if opts.Debug {
		s.Display.Debug = true
		s.Logging.Level = "debug"
	}
	if opts.LogFile != "" {
		s.Logging.File = opts.LogFile
	}
	if opts.LogLevel != "" {
		s.Logging.Level = opts.LogLevel
	}
	return s
}
