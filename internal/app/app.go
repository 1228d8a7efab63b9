package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/towerstrike/synthesis.game/internal/backend"
	"github.com/towerstrike/synthesis.game/internal/classify"
	"github.com/towerstrike/synthesis.game/internal/config"
	"github.com/towerstrike/synthesis.game/internal/ctxlog"
)

// App encapsulates the planner's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	model   *config.Model
	backend backend.Backend
}

// NewApp is the constructor for the main application. It loads the build
// manifest through the provided loader and applies CLI-side overrides. A
// manifest that cannot be loaded is a fatal startup error and panics; the
// caller recovers to produce a clean exit message.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.RootPath)
	if err != nil {
		panic(fmt.Errorf("failed to load build manifest: %w", err))
	}
	logger.Debug("Build manifest loaded into unified model.")

	if err := applyOverrides(model, appConfig); err != nil {
		panic(err)
	}
	if err := model.Validate(); err != nil {
		panic(fmt.Errorf("invalid build configuration: %w", err))
	}
	logger.Debug("Build configuration validated.",
		"target", model.Target.String(),
		"emit_format", model.Emit.Format,
	)

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		model:  model,
	}
}

// applyOverrides layers non-empty CLI values over the manifest model.
func applyOverrides(model *config.Model, appConfig *Config) error {
	if appConfig.Target != "" {
		target, err := classify.ParsePlatform(appConfig.Target)
		if err != nil {
			return err
		}
		model.Target = target
	}
	if appConfig.Format != "" {
		model.Emit.Format = appConfig.Format
	}
	if appConfig.Output != "" {
		model.Emit.Output = appConfig.Output
	}
	return nil
}

// Model returns the resolved build manifest. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// SetBackend attaches a build backend to hand the emitted plan to. The
// planner runs without one; compilation is the backend's concern.
func (a *App) SetBackend(b backend.Backend) {
	a.backend = b
}
