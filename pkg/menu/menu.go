package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

var (
	// ErrDuplicateID is returned when two items in the tree share an identifier.
	ErrDuplicateID = errors.New("duplicate menu item id")

	// ErrEmptyLabel is returned when a submenu or item has no label.
	ErrEmptyLabel = errors.New("empty menu label")
)

// Menu represents the menu bar installed on the application window.
type Menu struct {
	// Title is the application display name
	Title string `json:"title"`

	// Version of the application
	Version string `json:"version,omitempty"`

	// Submenus attached to the menu bar, in display order
	Submenus []Submenu `json:"submenus,omitempty"`
}

// ToJSON returns a JSON-serializable representation of the menu.
func (m *Menu) ToJSON() interface{} {
	return m
}

// Walk calls fn for every item in the tree, in display order.
func (m *Menu) Walk(fn func(sub *Submenu, item *Item)) {
	for i := range m.Submenus {
		sub := &m.Submenus[i]
		for j := range sub.Items {
			fn(sub, &sub.Items[j])
		}
	}
}

// Find returns the item with the given identifier.
func (m *Menu) Find(id string) (Item, bool) {
	var (
		found Item
		ok    bool
	)

	m.Walk(func(_ *Submenu, item *Item) {
		if !ok && item.ID != "" && item.ID == id {
			found, ok = *item, true
		}
	})

	return found, ok
}

// Validate checks that every submenu and item is labeled and that
// item identifiers are unique within the tree.
func (m *Menu) Validate() error {
	seen := make(map[string]string)

	for _, sub := range m.Submenus {
		if sub.Label == "" {
			return fmt.Errorf("submenu: %w", ErrEmptyLabel)
		}

		for _, item := range sub.Items {
			if item.Label == "" {
				return fmt.Errorf("item %q in %q: %w", item.ID, sub.Label, ErrEmptyLabel)
			}

			if item.ID == "" {
				continue
			}

			if prev, exists := seen[item.ID]; exists {
				return fmt.Errorf("%q in %q and %q: %w", item.ID, prev, sub.Label, ErrDuplicateID)
			}
			seen[item.ID] = sub.Label
		}
	}

	return nil
}

// Handler returns an HTTP handler that responds with the menu structure as JSON.
func (m *Menu) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("handling menu request",
			"method", r.Method,
			"url", r.URL.Path,
		)

		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(m.ToJSON()); err != nil {
			slog.Error("failed to encode menu", "error", err)
			return
		}
	})
}
