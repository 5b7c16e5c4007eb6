package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mchmarny/menubridge/pkg/config"
	"github.com/mchmarny/menubridge/pkg/logger"
	"github.com/mchmarny/menubridge/pkg/menu"
	"github.com/mchmarny/menubridge/pkg/metric"
	"github.com/mchmarny/menubridge/pkg/server"
	"github.com/mchmarny/menubridge/pkg/shell"
)

const module = "menubridge"

var (
	version = "v0.0.0"  // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=date"

	configPath = flag.String("config", "", "Path to the project file (default wails.json, optional)")
	diagPort   = flag.Int("diagnostics-port", -1, "Localhost port of the diagnostics server, 0 disables (default from config)")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")
	logFile    = flag.String("log-file", "", "Rotating log file path (default from LOG_FILE, stderr when unset)")
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	flag.Parse()

	if err := run(); err != nil {
		slog.Error("startup failed", "error", err)
		fmt.Fprintf(os.Stderr, "error while running %s: %v\n", module, err)
		os.Exit(1)
	}
}

func run() error {
	level := firstNonEmpty(*logLevel, os.Getenv(logger.EnvVarLogLevel))
	file := firstNonEmpty(*logFile, os.Getenv(logger.EnvVarLogFile))

	closer := logger.SetDefaultLoggerWithConfig(module, version, level, file)
	defer closer.Close()

	slog.Info("starting", "commit", commit, "date", date)

	cfg, err := config.Load(*configPath, *configPath != "")
	if err != nil {
		return err
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}

	if *diagPort >= 0 {
		cfg.DiagnosticsPort = *diagPort
	}

	tree, err := menu.Build(cfg.AppName(), version)
	if err != nil {
		return fmt.Errorf("failed to build menu: %w", err)
	}

	content, err := fs.Sub(assets, "frontend/dist")
	if err != nil {
		return fmt.Errorf("failed to load frontend assets: %w", err)
	}

	reg := prometheus.NewRegistry()
	counter := metric.NewActivationCounter(reg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	app, err := shell.New(cfg, tree, content,
		shell.WithLogger(slog.Default()),
		shell.WithCounter(counter),
		shell.WithStartupHook(func(context.Context) {
			startDiagnostics(gCtx, g, cfg.DiagnosticsPort, tree, reg)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// the toolkit owns the main thread until the window closes
	runErr := app.Run()
	cancel()

	waitDiagnostics(g)

	return runErr
}

func startDiagnostics(ctx context.Context, g *errgroup.Group, port int, tree *menu.Menu, reg *prometheus.Registry) {
	if port <= 0 {
		return
	}

	srv := server.New(
		server.WithPort(port),
		server.WithErrorLog(logger.NewLogLogger(slog.LevelWarn, false)),
		server.WithMenu(tree.Handler()),
		server.WithMetrics(reg),
		server.WithSimpleHealth(),
	)

	g.Go(func() error {
		if err := srv.Serve(ctx); err != nil {
			slog.Error("diagnostics server stopped", "error", err)
			return err
		}
		return nil
	})
}

// waitDiagnostics blocks until the diagnostics goroutines exit. Their errors
// are already logged where they occur and never fail the application.
func waitDiagnostics(g *errgroup.Group) error {
	err := g.Wait()
	if err != nil {
		slog.Debug("diagnostics finished with error", "error", err)
	}
	return err
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
