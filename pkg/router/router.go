// Package router dispatches menu activations to the application's web content.
package router

import (
	"context"
	"log/slog"

	"github.com/mchmarny/menubridge/pkg/menu"
	"github.com/mchmarny/menubridge/pkg/metric"
)

const (
	// MainWindow is the name the host registers the primary window under.
	MainWindow = "main"

	// EventFileOpen is emitted to the main window when Open File is selected.
	EventFileOpen = "menu://file-open"
)

// Dispatch outcomes recorded by the activation counter.
const (
	OutcomeEmitted      = "emitted"
	OutcomeIgnored      = "ignored"
	OutcomeNoWindow     = "no_window"
	OutcomeEmitFailed   = "emit_failed"
	outcomeLabelUnknown = "unknown"
)

// Emitter delivers a named event to a window's content layer.
type Emitter interface {
	Emit(ctx context.Context, event string, payload ...any) error
}

// WindowLookup resolves windows by their registered name.
type WindowLookup interface {
	Window(name string) (Emitter, bool)
}

// Router handles menu activations. It is stateless; every call is independent.
type Router struct {
	windows WindowLookup
	logger  *slog.Logger
	counter metric.IncrementalCounter
}

// Option is a functional option for configuring the Router.
type Option func(*Router)

// WithLogger sets the logger used for soft failures. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithCounter sets the activation counter. Defaults to a no-op counter.
func WithCounter(c metric.IncrementalCounter) Option {
	return func(r *Router) {
		if c != nil {
			r.counter = c
		}
	}
}

// New creates a router that resolves target windows through windows.
func New(windows WindowLookup, opts ...Option) *Router {
	r := &Router{
		windows: windows,
		logger:  slog.Default(),
		counter: metric.Noop{},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// HandleID classifies id and handles the resulting activation.
func (r *Router) HandleID(ctx context.Context, id string) {
	r.Handle(ctx, menu.Classify(id))
}

// Handle dispatches a single activation. It never returns an error: a missing
// main window or a failed emission is logged and counted only.
func (r *Router) Handle(ctx context.Context, a menu.Activation) {
	outcome := outcomeLabelUnknown
	defer func() {
		r.counter.Increment(a.Kind.String(), outcome)
	}()

	switch a.Kind {
	case menu.KindOpenFileRequested:
		outcome = r.openFile(ctx)
	case menu.KindAboutRequested, menu.KindOther:
		outcome = OutcomeIgnored
		r.logger.Debug("menu activation ignored", "id", a.ID, "kind", a.Kind.String())
	}
}

func (r *Router) openFile(ctx context.Context) string {
	if r.windows == nil {
		r.logger.Debug("no window registry, dropping event", "event", EventFileOpen)
		return OutcomeNoWindow
	}

	win, ok := r.windows.Window(MainWindow)
	if !ok || win == nil {
		r.logger.Debug("window not found, dropping event",
			"window", MainWindow,
			"event", EventFileOpen)
		return OutcomeNoWindow
	}

	if err := win.Emit(ctx, EventFileOpen); err != nil {
		r.logger.Warn("failed to emit menu event",
			"window", MainWindow,
			"event", EventFileOpen,
			"error", err)
		return OutcomeEmitFailed
	}

	r.logger.Debug("menu event emitted", "window", MainWindow, "event", EventFileOpen)
	return OutcomeEmitted
}
