package menu

import (
	"fmt"
	"strings"
)

const (
	// DefaultAppName labels the application submenu when no display name is configured.
	DefaultAppName = "App"

	// FileMenuLabel is the title of the File submenu.
	FileMenuLabel = "File"

	// IDAbout identifies the About entry.
	IDAbout = "app_about"

	// IDOpenFile identifies the Open File entry.
	IDOpenFile = "file_open"

	// QuitAccelerator is the conventional quit shortcut bound to the predefined Quit entry.
	QuitAccelerator = "CmdOrCtrl+Q"
)

// Build constructs the application menu bar:
//
//	<appName>: About, Quit
//	File:      Open File
//
// An empty appName falls back to DefaultAppName. Any error is a startup error;
// callers are not expected to retry.
func Build(appName, version string) (*Menu, error) {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = DefaultAppName
	}

	m := &Menu{
		Title:   name,
		Version: version,
		Submenus: []Submenu{
			{
				Label: name,
				Items: []Item{
					{ID: IDAbout, Label: "About"},
					{Label: "Quit", Role: RoleQuit, Accelerator: QuitAccelerator},
				},
			},
			{
				Label: FileMenuLabel,
				Items: []Item{
					{ID: IDOpenFile, Label: "Open File"},
				},
			},
		},
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid menu: %w", err)
	}

	return m, nil
}
