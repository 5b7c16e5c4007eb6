// Package shell hosts the web view application: it installs the menu bar,
// registers the main window and forwards menu clicks to the router.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/wailsapp/wails/v2"
	wmenu "github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/mchmarny/menubridge/pkg/config"
	"github.com/mchmarny/menubridge/pkg/menu"
	"github.com/mchmarny/menubridge/pkg/metric"
	"github.com/mchmarny/menubridge/pkg/router"
)

// ErrAlreadyInstalled is returned when the menu bar is installed more than once.
var ErrAlreadyInstalled = errors.New("menu already installed")

// EmitFunc delivers an event to the web view bound to ctx.
type EmitFunc func(ctx context.Context, event string, payload ...any)

// App is the desktop shell around the web content.
type App struct {
	cfg     *config.Config
	tree    *menu.Menu
	assets  fs.FS
	windows *Windows
	router  *router.Router
	logger  *slog.Logger
	counter metric.IncrementalCounter
	emit    EmitFunc
	quit    func(ctx context.Context)

	mu        sync.RWMutex
	ctx       context.Context
	installed bool
	onStart   []func(ctx context.Context)
}

// Option is a functional option for configuring the App.
type Option func(*App)

// WithLogger sets the logger for the shell and its router.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCounter sets the router's activation counter.
func WithCounter(c metric.IncrementalCounter) Option {
	return func(a *App) { a.counter = c }
}

// WithEmitFunc replaces the toolkit event emitter.
func WithEmitFunc(fn EmitFunc) Option {
	return func(a *App) {
		if fn != nil {
			a.emit = fn
		}
	}
}

// WithQuitFunc replaces the toolkit quit action.
func WithQuitFunc(fn func(ctx context.Context)) Option {
	return func(a *App) {
		if fn != nil {
			a.quit = fn
		}
	}
}

// WithStartupHook registers fn to run after the main window is registered.
func WithStartupHook(fn func(ctx context.Context)) Option {
	return func(a *App) {
		if fn != nil {
			a.onStart = append(a.onStart, fn)
		}
	}
}

// New creates the shell. The menu tree is owned by the returned App and
// installed once, by Options or Run.
func New(cfg *config.Config, tree *menu.Menu, assets fs.FS, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if tree == nil {
		return nil, errors.New("menu is required")
	}

	a := &App{
		cfg:     cfg,
		tree:    tree,
		assets:  assets,
		windows: NewWindows(),
		logger:  slog.Default(),
		counter: metric.Noop{},
		emit:    runtime.EventsEmit,
		quit:    runtime.Quit,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.router = router.New(a.windows,
		router.WithLogger(a.logger),
		router.WithCounter(a.counter),
	)

	return a, nil
}

// Router returns the router menu clicks are forwarded to.
func (a *App) Router() *router.Router {
	return a.router
}

// Windows returns the window registry.
func (a *App) Windows() *Windows {
	return a.windows
}

// Menu returns the installed menu tree.
func (a *App) Menu() *menu.Menu {
	return a.tree
}

// Options builds the toolkit options with the menu bar installed.
// It may be called only once.
func (a *App) Options() (*options.App, error) {
	bar, err := a.install()
	if err != nil {
		return nil, err
	}

	return &options.App{
		Title:  a.cfg.AppName(),
		Width:  a.cfg.Width,
		Height: a.cfg.Height,
		AssetServer: &assetserver.Options{
			Assets: a.assets,
		},
		Menu:       bar,
		Logger:     newToolkitLogger(a.logger),
		OnStartup:  a.startup,
		OnShutdown: a.shutdown,
	}, nil
}

// Run installs the menu and blocks until the application exits.
func (a *App) Run() error {
	opts, err := a.Options()
	if err != nil {
		return err
	}

	a.logger.Info("starting application", "title", opts.Title)

	if err := wails.Run(opts); err != nil {
		return fmt.Errorf("application error: %w", err)
	}

	return nil
}

func (a *App) install() (*wmenu.Menu, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.installed {
		return nil, ErrAlreadyInstalled
	}

	if err := a.tree.Validate(); err != nil {
		return nil, fmt.Errorf("failed to install menu: %w", err)
	}

	bar := Translate(a.tree, a.quitFromMenu, a.activate)
	a.installed = true

	a.logger.Debug("menu installed", "submenus", len(a.tree.Submenus))

	return bar, nil
}

func (a *App) activate(id string) {
	ctx := a.context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.router.HandleID(ctx, id)
}

func (a *App) quitFromMenu() {
	if ctx := a.context(); ctx != nil {
		a.quit(ctx)
	}
}

func (a *App) startup(ctx context.Context) {
	a.mu.Lock()
	a.ctx = ctx
	hooks := a.onStart
	a.mu.Unlock()

	a.windows.Register(router.MainWindow, &webview{ctx: ctx, emit: a.emit})
	a.logger.Info("main window ready", "window", router.MainWindow)

	for _, fn := range hooks {
		fn(ctx)
	}
}

func (a *App) shutdown(_ context.Context) {
	a.windows.Unregister(router.MainWindow)

	a.mu.Lock()
	a.ctx = nil
	a.mu.Unlock()

	a.logger.Info("application shutting down")
}

func (a *App) context() context.Context {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ctx
}

// webview emits events through the toolkit context captured at startup.
type webview struct {
	ctx  context.Context
	emit EmitFunc
}

func (w *webview) Emit(_ context.Context, event string, payload ...any) error {
	w.emit(w.ctx, event, payload...)
	return nil
}
