// Package app wires the editor, the redisplay engine, the terminal driver
// and the configuration into a running uEmacs session, and owns the main
// event loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/dshills/uemacs/internal/config"
	"github.com/dshills/uemacs/internal/editor"
	"github.com/dshills/uemacs/internal/engine/buffer"
	"github.com/dshills/uemacs/internal/renderer"
	"github.com/dshills/uemacs/internal/renderer/backend"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file. Empty means defaults and
	// environment only.
	ConfigPath string

	// Files are visited on startup. The first one is shown.
	Files []string

	// Driver overrides the configured terminal driver.
	Driver string

	// Debug turns on debug logging and renderer invariant panics.
	Debug bool

	// ReadOnly opens the startup files in View mode.
	ReadOnly bool

	// LogFile and LogLevel override the logging settings.
	LogFile  string
	LogLevel string

	// Terminal replaces the configured driver, mainly for tests.
	Terminal backend.Terminal

	// ConfigOptions are passed to config.New.
	ConfigOptions []config.Option
}

// reloadResult carries a configuration change to the main goroutine.
type reloadResult struct {
	settings config.Settings
	err      error
}

// Application is one editor session.
type Application struct {
	opts     Options
	cfg      *config.Config
	settings config.Settings

	log      *Logger
	logClose io.Closer

	term backend.Terminal
	ed   *editor.Editor
	rend *renderer.Renderer

	keys  *keyTable
	state keyState

	// seq counts executed commands; quitSeq is the command that armed
	// the modified-buffer exit prompt.
	seq     int
	quitSeq int

	events chan backend.Event
	reload chan reloadResult
	done   chan struct{}

	running    atomic.Bool
	startupMsg string
}

// New creates an application. Configuration errors are not fatal: the
// defaults are used and the error is shown once the screen is up.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:   opts,
		keys:   defaultKeys(),
		events: make(chan backend.Event, 64),
		reload: make(chan reloadResult, 1),
	}

	app.cfg = config.New(opts.ConfigPath, opts.ConfigOptions...)
	if err := app.cfg.Load(); err != nil {
		app.startupMsg = fmt.Sprintf("[Configuration error: %v]", err)
	}
	app.settings = applyOverrides(app.cfg.Settings(), opts)

	log, closer, err := OpenLogFile(app.settings.Logging)
	if err != nil {
		return nil, &InitError{Component: "logging", Err: err}
	}
	app.log, app.logClose = log, closer
	if app.startupMsg != "" {
		app.log.Warn("%s", app.startupMsg)
	}

	app.term = opts.Terminal
	if app.term == nil {
		t, err := newTerminal(app.settings.Terminal)
		if err != nil {
			app.logClose.Close()
			return nil, &InitError{Component: "terminal", Err: err}
		}
		app.term = t
	}
	return app, nil
}

// Editor returns the editor. It is nil until Run has set up the screen.
func (app *Application) Editor() *editor.Editor { return app.ed }

// Renderer returns the renderer. It is nil until Run has set up the
// screen.
func (app *Application) Renderer() *renderer.Renderer { return app.rend }

// Settings returns the active settings.
func (app *Application) Settings() config.Settings { return app.settings }

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool { return app.running.Load() }

// Run takes over the terminal and processes input until the user quits
// or ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.term.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}
	app.done = make(chan struct{})
	defer app.shutdown()

	if err := app.setup(); err != nil {
		return err
	}

	go app.readInput()
	if err := app.cfg.Watch(app.onConfigChange); err != nil {
		app.log.Warn("config watch: %v", err)
	}
	app.log.Info("session started")
	return app.loop(ctx)
}

// setup creates the editor and renderer for the terminal and visits the
// startup files.
func (app *Application) setup() error {
	_, rows := app.term.Size()
	app.ed = editor.New(max(rows-1, 2),
		editor.WithTabWidth(app.settings.Display.TabWidth),
		editor.WithClassifier(app.settings.Display.Classifier()),
	)

	opts, err := rendererOptions(app.settings, app.typeahead)
	if err != nil {
		// Settings were validated; keep the defaults if they still fail.
		app.log.Warn("renderer options: %v", err)
		opts = renderer.DefaultOptions()
		opts.Typeahead = app.typeahead
	}
	rend, err := renderer.New(app.term, app.ed.Windows(), opts)
	if err != nil {
		return &InitError{Component: "renderer", Err: err}
	}
	rend.SetLogger(app.log.WithComponent("renderer").KV())
	app.rend = rend

	var visitErr error
	for i, path := range app.opts.Files {
		if i == 0 {
			visitErr = WrapError(app.ed.VisitFile(path), "visit %s", path)
			if app.opts.ReadOnly && visitErr == nil {
				app.ed.ToggleMode(buffer.ModeView)
			}
			continue
		}
		b := app.ed.AddFileBuffer(path)
		if app.opts.ReadOnly {
			b.SetMode(buffer.ModeView)
		}
	}

	app.redisplay(true)
	switch {
	case visitErr != nil:
		app.log.Error("%v", visitErr)
		app.message("[%v]", visitErr)
	case app.startupMsg != "":
		app.message("%s", app.startupMsg)
	}
	return nil
}

func (app *Application) typeahead() bool { return len(app.events) > 0 }

// shutdown releases the terminal, the watcher and the log.
func (app *Application) shutdown() {
	close(app.done)
	app.cfg.Close()
	app.term.Shutdown()
	app.log.Info("session ended")
	app.logClose.Close()
}

// readInput forwards terminal events to the main loop. Resizes are
// recorded at once so an update in progress picks them up.
func (app *Application) readInput() {
	for {
		ev := app.term.PollEvent()
		switch ev.Type {
		case backend.EventNone:
			select {
			case <-app.done:
				return
			default:
				continue
			}
		case backend.EventResize:
			app.rend.NotifyResize(ev.Height, ev.Width)
		}
		select {
		case app.events <- ev:
		case <-app.done:
			return
		}
	}
}

// onConfigChange is called from the watcher goroutine.
func (app *Application) onConfigChange(s config.Settings, err error) {
	select {
	case app.reload <- reloadResult{settings: s, err: err}:
	case <-app.done:
	}
}

// loop is the main event loop.
func (app *Application) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-app.events:
			if err := app.handleEvent(ev); errors.Is(err, ErrQuit) {
				return nil
			}
		case r := <-app.reload:
			app.applyReload(r)
		}
		app.redisplay(app.rend.ResizePending())
	}
}

// redisplay updates the screen. A failed update is reported on the
// message line with a beep.
func (app *Application) redisplay(force bool) {
	if err := app.rend.Update(force); err != nil {
		app.log.Error("redisplay: %v", err)
		app.term.Beep()
		app.message("[%v]", err)
	}
}

func (app *Application) message(format string, args ...any) {
	if err := app.rend.Messagef(format, args...); err != nil {
		app.log.Error("message line: %v", err)
	}
}

// handleEvent processes one terminal event. It returns ErrQuit when the
// session should end.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventResize:
		app.log.Debug("terminal resized to %dx%d", ev.Width, ev.Height)
	}
	return nil
}

// handleKey feeds a key to the prefix state and runs the command it
// completes.
func (app *Application) handleKey(ev backend.Event) error {
	if app.rend.MessagePresent() {
		if err := app.rend.EraseMessage(); err != nil {
			app.log.Error("message line: %v", err)
		}
	}

	cmd, consumed := app.state.feed(app.keys, keyOf(ev))
	if consumed {
		return nil
	}
	arg := app.state.takeArg()
	app.seq++
	if cmd == nil {
		app.term.Beep()
		return nil
	}
	return app.commandError(cmd(app, arg))
}

// commandError reports a failed command to the user. Only ErrQuit is
// passed on.
func (app *Application) commandError(err error) error {
	switch {
	case err == nil:
	case errors.Is(err, ErrQuit):
		return err
	case errors.Is(err, ErrAborted):
		app.state.reset()
		app.term.Beep()
		app.message("(Aborted)")
	case errors.Is(err, editor.ErrBeginningOfBuffer), errors.Is(err, editor.ErrEndOfBuffer):
		app.term.Beep()
	case errors.Is(err, editor.ErrReadOnly):
		app.term.Beep()
		app.message("(Key illegal in VIEW mode)")
	default:
		app.log.Error("command: %v", err)
		app.message("[%v]", err)
	}
	return nil
}

// applyReload installs settings from the watcher. Invalid settings keep
// the current ones.
func (app *Application) applyReload(r reloadResult) {
	if r.err == nil {
		r.err = app.applySettings(r.settings)
	}
	if r.err != nil {
		app.log.Warn("config reload: %v", r.err)
		app.message("[Configuration error: %v]", r.err)
		return
	}
	app.log.Info("configuration reloaded")
	// The repaint clears the message line, so it comes first.
	app.redisplay(true)
	app.message("[Configuration reloaded]")
}

// applySettings makes s the active settings. Terminal driver changes take
// effect on the next start.
func (app *Application) applySettings(s config.Settings) error {
	s = applyOverrides(s, app.opts)
	opts, err := rendererOptions(s, app.typeahead)
	if err != nil {
		return err
	}
	old := app.settings
	if s.Terminal.Driver != old.Terminal.Driver {
		app.log.Info("terminal driver %q takes effect on restart", s.Terminal.Driver)
	}
	app.settings = s
	app.ed.SetTabWidth(s.Display.TabWidth)
	app.ed.SetClassifier(s.Display.Classifier())
	app.log.SetLevel(ParseLogLevel(s.Logging.Level))
	app.rend.SetOptions(opts)

	if s.Terminal.MaxRows != old.Terminal.MaxRows || s.Terminal.MaxCols != old.Terminal.MaxCols {
		cols, rows := app.term.Size()
		app.rend.NotifyResize(rows, cols)
	}
	return nil
}
