package menu

// Role identifies a menu entry whose behavior is supplied by the host toolkit
// rather than by the application.
type Role string

const (
	// RoleNone marks a regular application entry dispatched by ID.
	RoleNone Role = ""

	// RoleQuit terminates the application using the host's default behavior.
	RoleQuit Role = "quit"
)

// Item represents an individual entry in a submenu.
type Item struct {
	// ID is the stable identifier delivered to the router when the item is activated.
	// Predefined items have no ID.
	ID string `json:"id,omitempty"`

	// Label is the text displayed for the item.
	Label string `json:"label"`

	// Role is set for host-predefined items such as Quit.
	Role Role `json:"role,omitempty"`

	// Accelerator is the keyboard shortcut in host notation, e.g. "CmdOrCtrl+Q".
	Accelerator string `json:"accelerator,omitempty"`
}

// Predefined reports whether the item is handled by the host and never reaches the router.
func (i Item) Predefined() bool {
	return i.Role != RoleNone
}

// Submenu is a named, ordered group of items attached to the menu bar.
type Submenu struct {
	// Label is the title shown in the menu bar.
	Label string `json:"label"`

	// Items are the entries of this submenu, in display order.
	Items []Item `json:"items,omitempty"`
}
