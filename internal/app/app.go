// Package app hosts the engine in a terminal. It maps key presses to
// operations, paints the buffer and a status line, and repaints when the
// buffer changes.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/engine"
	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/history"
	"github.com/dshills/keyline/internal/engine/macro"
	"github.com/dshills/keyline/internal/event"
	"github.com/dshills/keyline/internal/event/events"
	"github.com/dshills/keyline/internal/logging"
)

// Options configures the application.
type Options struct {
	// Path is the file to edit. It need not exist yet.
	Path string

	// Config holds the resolved settings. Nil means defaults.
	Config *config.Config

	// Logger receives lifecycle and error logs.
	Logger *logging.Logger

	// Screen replaces the terminal, for example with a simulation screen.
	// It must already be initialized. Run finalizes it.
	Screen tcell.Screen
}

// Application is one editing session in a terminal.
type Application struct {
	engine *engine.Engine
	bus    *event.Bus
	macros *macro.Recorder
	screen tcell.Screen
	cfg    *config.Config
	logger *logging.Logger

	path      string
	status    string
	quitArmed bool

	top, left int
}

// repaint is posted to the screen to wake the event loop.
type repaint struct{}

// New creates the application and opens opts.Path if it exists.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Null()
	}

	a := &Application{
		bus:    event.NewBus(),
		macros: macro.NewRecorder(),
		screen: opts.Screen,
		cfg:    cfg,
		logger: logger.WithComponent("app"),
		path:   opts.Path,
	}

	if cfg.Macro.File != "" {
		if err := macro.Load(a.macros, cfg.Macro.File); err != nil {
			a.logger.Warn("loading macros from %s: %v", cfg.Macro.File, err)
		}
	}

	a.engine = engine.New(
		engine.WithHistoryLimit(cfg.Editor.HistorySize),
		engine.WithLogger(logger),
		engine.WithEventBus(a.bus),
		engine.WithMacroRecorder(a.macros),
	)

	if opts.Path != "" {
		err := a.engine.Open(opts.Path)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist):
			a.status = fmt.Sprintf("new file %s", filepath.Base(opts.Path))
		default:
			return nil, &OperationError{Op: "open", Target: opts.Path, Err: err}
		}
	}

	if err := a.subscribe(); err != nil {
		return nil, err
	}
	return a, nil
}

// Engine returns the engine driven by the application.
func (a *Application) Engine() *engine.Engine {
	return a.engine
}

// Bus returns the application event bus.
func (a *Application) Bus() *event.Bus {
	return a.bus
}

// Status returns the status line message.
func (a *Application) Status() string {
	return a.status
}

func (a *Application) subscribe() error {
	if _, err := a.bus.SubscribeFunc("buffer.**", func(context.Context, any) error {
		a.post(repaint{})
		return nil
	}); err != nil {
		return err
	}

	_, err := a.bus.SubscribeFunc(events.TopicConfigReloaded, func(_ context.Context, ev any) error {
		e, ok := ev.(event.Event[events.ConfigReloaded])
		if !ok {
			return nil
		}
		a.post(e.Payload)
		return nil
	})
	return err
}

// post wakes the event loop with data. It is a no-op before Run.
func (a *Application) post(data any) {
	if a.screen == nil {
		return
	}
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(data)) // best-effort; a full queue repaints anyway
}

// WatchConfig reloads settings from path while ctx is live and publishes
// config.reloaded events.
func (a *Application) WatchConfig(ctx context.Context, path string) error {
	return config.Watch(ctx, path, config.DefaultDebounce, func(cfg *config.Config, err error) {
		payload := events.ConfigReloaded{Path: path, Err: err}
		if err == nil {
			a.applyConfig(cfg)
		}
		if pubErr := a.bus.Publish(ctx, event.NewEvent(events.TopicConfigReloaded, payload, "config")); pubErr != nil {
			a.logger.Warn("publish %s: %v", events.TopicConfigReloaded, pubErr)
		}
	})
}

// applyConfig applies the settings that can change at runtime.
func (a *Application) applyConfig(cfg *config.Config) {
	a.engine.SetHistoryLimit(cfg.Editor.HistorySize)
	a.logger.Info("configuration reloaded, history limit %s", cfg.Editor.HistorySize)
}

// Run drives the terminal until the user quits or ctx is done.
func (a *Application) Run(ctx context.Context) error {
	if a.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return &OperationError{Op: "screen", Err: err}
		}
		if err := s.Init(); err != nil {
			return &OperationError{Op: "screen", Err: err}
		}
		a.screen = s
	}
	defer a.shutdown()

	stop := context.AfterFunc(ctx, func() { a.post(ErrQuit) })
	defer stop()

	a.logger.Info("editing %q", a.path)
	for {
		a.draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := a.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

func (a *Application) shutdown() {
	a.screen.Fini()
	if a.cfg.Macro.File != "" {
		if err := macro.Save(a.macros, a.cfg.Macro.File); err != nil {
			a.logger.Warn("saving macros to %s: %v", a.cfg.Macro.File, err)
		}
	}
	a.logger.Info("session closed")
}

func (a *Application) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case error:
			return data
		case events.ConfigReloaded:
			if data.Err != nil {
				a.status = data.Err.Error()
			} else {
				a.status = "configuration reloaded"
			}
		}
	}
	return nil
}

func (a *Application) handleKey(ev *tcell.EventKey) error {
	act := keyAction(ev)
	if act.kind != actionQuit {
		a.quitArmed = false
	}
	if act.kind == actionNone {
		return nil
	}
	a.status = ""

	err := a.apply(act)
	switch {
	case errors.Is(err, ErrQuit):
		return err
	case err != nil:
		a.status = err.Error()
		a.logger.Debug("%v", err)
	}
	return nil
}

// apply performs act against the engine.
func (a *Application) apply(act action) error {
	at := a.engine.Cursor().Absolute

	switch act.kind {
	case actionInsert:
		return a.engine.Execute(history.Insert{Pos: at, Char: act.char})
	case actionRemove:
		return a.engine.Execute(history.Remove{Pos: at})
	case actionDelete:
		return a.engine.Execute(history.Delete{Pos: at})
	case actionMove:
		a.engine.MoveCursor(act.move)
	case actionUndo:
		return a.engine.Execute(history.Undo{})
	case actionRedo:
		return a.engine.Execute(history.Redo{})
	case actionSave:
		return a.save()
	case actionQuit:
		if a.engine.IsDirty() && !a.quitArmed {
			a.quitArmed = true
			return fmt.Errorf("%w, press Ctrl-Q again to quit", ErrUnsavedChanges)
		}
		return ErrQuit
	case actionMacroRecord:
		if err := a.engine.Execute(history.MacroRecord{Register: MacroRegister}); err != nil {
			return err
		}
		a.status = fmt.Sprintf("recording @%c", MacroRegister)
	case actionMacroStop:
		return a.engine.Execute(history.MacroStop{})
	case actionMacroPlay:
		return a.engine.Execute(history.MacroPlay{Register: MacroRegister})
	case actionMacroCancel:
		if a.macros.IsRecording() {
			a.macros.Cancel()
			a.status = "recording cancelled"
		}
	}
	return nil
}

func (a *Application) save() error {
	if a.path == "" {
		return ErrNoFilePath
	}
	n, err := a.engine.Save(a.path, buffer.Overwrite)
	if err != nil {
		return &OperationError{Op: "save", Target: a.path, Err: err}
	}
	a.status = fmt.Sprintf("wrote %d bytes to %s", n, filepath.Base(a.path))
	return nil
}
