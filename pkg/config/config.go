// Package config loads the application settings from the project file,
// environment and command line.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/mchmarny/menubridge/pkg/menu"
)

const (
	// DefaultFile is the project file read when no path is given.
	DefaultFile = "wails.json"

	// DefaultWidth is the initial main window width.
	DefaultWidth = 1024

	// DefaultHeight is the initial main window height.
	DefaultHeight = 768

	// EnvVarProductName overrides the display name from the project file.
	EnvVarProductName = "APP_PRODUCT_NAME"

	// EnvVarDiagnosticsPort enables the local diagnostics server.
	EnvVarDiagnosticsPort = "APP_DIAGNOSTICS_PORT"
)

// Config holds the settings needed at startup.
type Config struct {
	// Name is the project name.
	Name string `json:"name"`

	// Info carries the product metadata.
	Info Info `json:"info"`

	// Width of the main window.
	Width int `json:"width,omitempty"`

	// Height of the main window.
	Height int `json:"height,omitempty"`

	// DiagnosticsPort is the localhost port of the diagnostics server; 0 disables it.
	DiagnosticsPort int `json:"diagnosticsPort,omitempty"`
}

// Info is the product section of the project file.
type Info struct {
	ProductName    string `json:"productName,omitempty"`
	ProductVersion string `json:"productVersion,omitempty"`
}

// Default returns a configuration with no project file applied.
func Default() *Config {
	return &Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Load reads the project file at path on top of the defaults.
// A missing file is not an error unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultFile
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}

	return cfg, nil
}

// ApplyEnv overrides settings from the environment using getenv (os.Getenv in production).
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvVarProductName)); v != "" {
		c.Info.ProductName = v
	}

	if v := strings.TrimSpace(getenv(EnvVarDiagnosticsPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 0 || port > 65535 {
			return fmt.Errorf("invalid %s %q", EnvVarDiagnosticsPort, v)
		}
		c.DiagnosticsPort = port
	}

	return nil
}

// AppName returns the display name of the application: the product name,
// then the project name, then menu.DefaultAppName.
func (c *Config) AppName() string {
	for _, n := range []string{c.Info.ProductName, c.Name} {
		if n = strings.TrimSpace(n); n != "" {
			return n
		}
	}
	return menu.DefaultAppName
}
