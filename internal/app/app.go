package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/vk/loom/internal/compiler"
	"github.com/vk/loom/internal/config"
	"github.com/vk/loom/internal/ctxlog"
)

// App ties the CLI configuration to build execution.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
	}
}

// Run executes one build, then enters the watch loop when configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if err := a.build(ctx); err != nil {
		if !a.config.Watch {
			return err
		}
		// In watch mode a failing first build is reported but not fatal: a
		// source edit can fix it.
		a.reportFailure(err)
	}

	if a.config.Watch {
		return a.watch(ctx)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// build runs one full graph construction over a fresh compiler. The module
// graph is scoped to a single build invocation, so every rebuild starts from
// an empty graph.
func (a *App) build(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	projectConfig, err := config.Load(ctx, a.config.Root)
	if err != nil {
		return fmt.Errorf("load project config: %w", err)
	}

	logger.Info("🧵 Building module graph...", "root", a.config.Root)
	comp := compiler.New(a.config.Root, projectConfig, a.config.MaxWorkers)
	if err := comp.Build(ctx); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(a.outW, "✔ %d modules\n", comp.Graph().ModuleCount())
	return nil
}

// reportFailure surfaces a build failure to the user without terminating.
func (a *App) reportFailure(err error) {
	a.logger.Error("Build failed.", "error", err)
	color.New(color.FgRed).Fprintf(a.outW, "✘ %v\n", err)
}
