package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/bayesgridgo/internal/bayes"
	"github.com/specialistvlad/bayesgridgo/internal/config"
	"github.com/specialistvlad/bayesgridgo/internal/ctxlog"
	"github.com/specialistvlad/bayesgridgo/internal/dot"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	loader   config.Loader
	renderer dot.Renderer
	builder  bayes.Builder

	network *config.Network
}

// Option customizes an App.
type Option func(*App)

// WithLoader replaces the loader picked from the network path.
func WithLoader(l config.Loader) Option {
	return func(a *App) { a.loader = l }
}

// WithRenderer replaces the renderer picked from the output format.
func WithRenderer(r dot.Renderer) Option {
	return func(a *App) { a.renderer = r }
}

// WithBuilder replaces the default model builder.
func WithBuilder(b bayes.Builder) Option {
	return func(a *App) { a.builder = b }
}

// NewApp is the constructor for the main application. Results go to outW and
// logs to logW. The network is loaded and validated before NewApp returns,
// and a renderer whose external tool is missing fails here.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		builder: bayes.DefaultBuilder{},
	}
	for _, opt := range opts {
		opt(a)
	}

	if cfg.Graph && a.renderer == nil {
		r, err := dot.NewRenderer(cfg.Format)
		if err != nil {
			return nil, err
		}
		a.renderer = r
	}
	if a.loader == nil {
		l, err := loaderFor(cfg.NetworkPath)
		if err != nil {
			return nil, err
		}
		a.loader = l
	}

	if err := a.load(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Network returns the loaded network description.
func (a *App) Network() *config.Network {
	return a.network
}

// load reads and validates the network. On failure the previously loaded
// network is kept.
func (a *App) load(ctx context.Context) error {
	net, err := a.loader.Load(ctx, a.config.NetworkPath)
	if err != nil {
		return fmt.Errorf("failed to load network: %w", err)
	}
	if err := net.Validate(); err != nil {
		return err
	}
	a.network = net
	a.logger.Debug("Network loaded and validated.", "network", net.Name, "variables", len(net.Variables), "edges", len(net.Edges))
	return nil
}
