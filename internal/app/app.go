package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/reflectgo/internal/ctxlog"
	"github.com/specialistvlad/reflectgo/internal/handlers"
	"github.com/specialistvlad/reflectgo/internal/manifest"
	"github.com/specialistvlad/reflectgo/internal/registry"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	ctx      context.Context
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	handlers *handlers.Handlers
}

// NewApp builds an App with its own logger, registry and handler table,
// registers the modules (coreModules when none are given) and loads the
// configured manifests. Results go to outW and logs to logW.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New(logger)
	h := handlers.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		if err := mod.Register(ctx, reg, h); err != nil {
			return nil, fmt.Errorf("failed to register module %T: %w", mod, err)
		}
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if len(cfg.ManifestPaths) > 0 {
		ids, err := manifest.Load(ctx, reg, h, cfg.ManifestPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifests: %w", err)
		}
		logger.Debug("Manifests loaded.", "types", len(ids))
	}

	return &App{
		ctx:      ctx,
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		handlers: h,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Handlers returns the application's handler table.
func (a *App) Handlers() *handlers.Handlers {
	return a.handlers
}
