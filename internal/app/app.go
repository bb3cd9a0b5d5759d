package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/arbenchgo/internal/config"
	"github.com/vk/arbenchgo/internal/ctxlog"
	"github.com/vk/arbenchgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	model    *config.Model
}

// NewApp constructs the application: it configures an isolated logger, loads
// the bench through the provided loader, registers the component modules and
// validates that the bench only uses registered kinds. A failure to load or
// validate is a fatal startup error and panics; the CLI boundary recovers it
// into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.BenchPath)
	if err != nil {
		panic(fmt.Errorf("failed to load bench: %w", err))
	}
	logger.Debug("Bench loaded into agnostic model.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Component modules registered.", "count", len(modules))

	if err := reg.Validate(ctx, model); err != nil {
		panic(err)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   appConfig,
		model:    model,
	}
}

// Model returns the loaded bench model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
