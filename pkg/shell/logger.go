package shell

import (
	"log/slog"
	"os"

	wlogger "github.com/wailsapp/wails/v2/pkg/logger"
)

// toolkitLogger routes the toolkit's own log output into slog.
type toolkitLogger struct {
	l *slog.Logger
}

var _ wlogger.Logger = (*toolkitLogger)(nil)

func newToolkitLogger(l *slog.Logger) *toolkitLogger {
	return &toolkitLogger{l: l.With("component", "wails")}
}

func (t *toolkitLogger) Print(message string)   { t.l.Info(message) }
func (t *toolkitLogger) Trace(message string)   { t.l.Debug(message) }
func (t *toolkitLogger) Debug(message string)   { t.l.Debug(message) }
func (t *toolkitLogger) Info(message string)    { t.l.Info(message) }
func (t *toolkitLogger) Warning(message string) { t.l.Warn(message) }
func (t *toolkitLogger) Error(message string)   { t.l.Error(message) }

func (t *toolkitLogger) Fatal(message string) {
	t.l.Error(message, "fatal", true)
	os.Exit(1)
}
