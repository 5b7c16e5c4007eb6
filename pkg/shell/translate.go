package shell

import (
	"strings"

	wmenu "github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"

	"github.com/mchmarny/menubridge/pkg/menu"
)

// Translate converts the menu tree into the toolkit's menu bar.
// Items with an ID call activate with that ID; RoleQuit items call quit and never reach activate.
func Translate(m *menu.Menu, quit func(), activate func(id string)) *wmenu.Menu {
	bar := wmenu.NewMenu()

	for _, sub := range m.Submenus {
		target := bar.AddSubmenu(sub.Label)

		for _, item := range sub.Items {
			target.AddText(item.Label, accelerator(item.Accelerator), callback(item, quit, activate))
		}
	}

	return bar
}

func callback(item menu.Item, quit func(), activate func(id string)) wmenu.Callback {
	switch {
	case item.Role == menu.RoleQuit:
		return func(_ *wmenu.CallbackData) {
			if quit != nil {
				quit()
			}
		}
	case item.ID != "":
		id := item.ID
		return func(_ *wmenu.CallbackData) {
			if activate != nil {
				activate(id)
			}
		}
	default:
		return nil
	}
}

// accelerator parses "Modifier+Key" shortcuts; anything unrecognized yields no shortcut.
func accelerator(s string) *keys.Accelerator {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, "+")
	key := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	if key == "" {
		return nil
	}

	if len(parts) == 1 {
		return keys.Key(key)
	}

	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case "cmdorctrl":
		return keys.CmdOrCtrl(key)
	case "optionoralt", "alt":
		return keys.OptionOrAlt(key)
	case "shift":
		return keys.Shift(key)
	case "ctrl", "control":
		return keys.Control(key)
	default:
		return nil
	}
}
