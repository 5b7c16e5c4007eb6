package shell

import (
	"sync"

	"github.com/mchmarny/menubridge/pkg/router"
)

// Windows is a concurrency-safe registry of named windows.
type Windows struct {
	mu      sync.RWMutex
	windows map[string]router.Emitter
}

// NewWindows returns an empty registry.
func NewWindows() *Windows {
	return &Windows{windows: make(map[string]router.Emitter)}
}

// Register adds or replaces the window known as name.
func (w *Windows) Register(name string, e router.Emitter) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.windows[name] = e
}

// Unregister removes the window known as name.
func (w *Windows) Unregister(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.windows, name)
}

// Window implements router.WindowLookup.
func (w *Windows) Window(name string) (router.Emitter, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.windows[name]
	return e, ok
}
