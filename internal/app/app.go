// Package app wires the pieces into the running program: configuration,
// the mode registry with its deriver overrides, the puzzle, the editing
// session, the renderer, and the blocking event loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/cluemark/internal/annotate"
	"github.com/dshills/cluemark/internal/assist"
	"github.com/dshills/cluemark/internal/config"
	"github.com/dshills/cluemark/internal/deriver"
	"github.com/dshills/cluemark/internal/editor"
	"github.com/dshills/cluemark/internal/puzzle"
	"github.com/dshills/cluemark/internal/renderer"
	"github.com/dshills/cluemark/internal/renderer/backend"
)

// Options configures the application.
type Options struct {
	// PuzzlePath is the puzzle file to open. Required.
	PuzzlePath string

	// ConfigPath overrides the default config file location.
	ConfigPath string

	// ReadOnly disables saving.
	ReadOnly bool

	// Backend overrides the terminal backend. Nil uses tcell. Tests
	// inject a NullBackend here.
	Backend backend.Backend

	// Logger overrides the default logger.
	Logger *Logger
}

// Application owns the full program state. All model mutation happens on
// the event loop goroutine; the config watcher hands its result over
// through pending fields and wakes the loop with a synthetic event.
type Application struct {
	opts Options
	log  *Logger

	cfg     config.Config
	reg     annotate.Registry
	engine  *deriver.Engine
	backend backend.Backend
	rend    *renderer.Renderer
	puz     *puzzle.Puzzle
	session *editor.Session

	assistant *assist.Client
	watcher   *config.Watcher

	// Transient status line message, cleared by Escape.
	message string

	// Mouse drag origin, -1 when no button is down.
	dragOrigin int

	mu         sync.Mutex
	pendingCfg *config.Config
	pendingErr error
}

// New builds an application from options. The terminal is not touched
// until Run.
func New(opts Options) (*Application, error) {
	if opts.PuzzlePath == "" {
		return nil, fmt.Errorf("no puzzle file given")
	}

	log := opts.Logger
	if log == nil {
		log = NewLogger(DefaultLoggerConfig())
	}

	a := &Application{opts: opts, log: log, dragOrigin: -1}

	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, NewComponentError("config", "resolve path", err)
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, NewComponentError("config", "load", err)
	}
	a.cfg = cfg

	reg, err := a.buildRegistry(cfg)
	if err != nil {
		return nil, NewComponentError("config", "apply", err)
	}
	a.reg = reg

	puz, dropped, err := puzzle.Load(opts.PuzzlePath, reg)
	if err != nil {
		return nil, NewComponentError("puzzle", "load", err)
	}
	if dropped > 0 {
		log.Warn("dropped %d invalid segments from %s", dropped, opts.PuzzlePath)
	}
	a.puz = puz

	session, err := editor.NewSession(reg, puz.Current().Clue)
	if err != nil {
		return nil, NewComponentError("editor", "create session", err)
	}
	a.session = session

	theme, err := cfg.ApplyTheme(renderer.DefaultTheme())
	if err != nil {
		return nil, NewComponentError("config", "theme", err)
	}

	b := opts.Backend
	if b == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return nil, NewComponentError("renderer", "create terminal", err)
		}
		b = term
	}
	a.backend = b
	a.rend = renderer.New(b, theme)

	if cfg.Assistant.Enabled() {
		client, err := assist.New(context.Background(), assist.Options{
			Project:  cfg.Assistant.Project,
			Location: cfg.Assistant.Location,
			Model:    cfg.Assistant.Model,
		})
		if err != nil {
			log.Warn("assistant disabled: %v", err)
		} else {
			a.assistant = client
		}
	}

	watcher, err := config.WatchFile(cfgPath, a.onConfigReload)
	if err != nil {
		log.Warn("config watch disabled: %v", err)
	} else {
		a.watcher = watcher
	}

	return a, nil
}

// buildRegistry assembles the mode registry: defaults, config key rebinds,
// then deriver overrides from the Lua script. A broken script logs and
// falls back to the built-in derivers; broken rebinds are hard errors.
func (a *Application) buildRegistry(cfg config.Config) (annotate.Registry, error) {
	reg, err := cfg.ApplyKeys(annotate.DefaultRegistry())
	if err != nil {
		return annotate.Registry{}, err
	}

	if a.engine != nil {
		a.engine.Close()
		a.engine = nil
	}
	if cfg.Deriver.Script != "" {
		engine, err := deriver.LoadFile(cfg.Deriver.Script)
		if err != nil {
			a.log.Warn("deriver script: %v", err)
		} else {
			engine.Logf = a.log.Warn
			reg, err = engine.Install(reg)
			if err != nil {
				engine.Close()
				return annotate.Registry{}, err
			}
			a.engine = engine
		}
	}
	return reg, nil
}

// Run initializes the terminal and blocks on the event loop until quit.
func (a *Application) Run() error {
	if err := a.backend.Init(); err != nil {
		return NewComponentError("renderer", "init terminal", err)
	}
	defer a.shutdown()

	a.backend.EnableMouse()
	a.redraw()

	for {
		ev := a.backend.PollEvent()

		a.applyPendingConfig()

		if err := a.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		a.redraw()
	}
}

func (a *Application) shutdown() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.engine != nil {
		a.engine.Close()
	}
	a.backend.Shutdown()
}

func (a *Application) redraw() {
	entry := a.puz.Current()
	a.rend.Draw(renderer.View{
		Title:      a.puz.Title,
		EntryLabel: entry.Label(),
		Session:    a.session,
		Message:    a.message,
		ReadOnly:   a.opts.ReadOnly,
	})
}

// onConfigReload runs on the watcher goroutine. The result is parked and a
// synthetic event wakes the loop so the swap happens on its goroutine.
func (a *Application) onConfigReload(cfg config.Config, err error) {
	a.mu.Lock()
	if err != nil {
		a.pendingCfg = nil
		a.pendingErr = err
	} else {
		a.pendingCfg = &cfg
		a.pendingErr = nil
	}
	a.mu.Unlock()

	a.backend.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune})
}

func (a *Application) applyPendingConfig() {
	a.mu.Lock()
	cfg, err := a.pendingCfg, a.pendingErr
	a.pendingCfg, a.pendingErr = nil, nil
	a.mu.Unlock()

	if err != nil {
		a.log.Warn("config reload: %v", err)
		a.message = "config reload failed: " + err.Error()
		return
	}
	if cfg == nil {
		return
	}

	reg, err := a.buildRegistry(*cfg)
	if err != nil {
		a.log.Warn("config reload: %v", err)
		a.message = "config reload failed: " + err.Error()
		return
	}
	theme, err := cfg.ApplyTheme(renderer.DefaultTheme())
	if err != nil {
		a.log.Warn("config reload: %v", err)
		a.message = "config reload failed: " + err.Error()
		return
	}
	if err := a.session.SetRegistry(reg); err != nil {
		a.log.Warn("config reload: %v", err)
		a.message = "config reload failed: " + err.Error()
		return
	}

	a.cfg = *cfg
	a.reg = reg
	a.rend.SetTheme(theme)
	a.message = "config reloaded"
	a.log.Info("config reloaded")
}
