package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/bayesgridgo/internal/bayes"
	"github.com/specialistvlad/bayesgridgo/internal/ctxlog"
	"github.com/specialistvlad/bayesgridgo/internal/dot"
)

// Stdout is the output path that selects the app's output writer.
const Stdout = "-"

// Run renders the graph and builds the model, as configured.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.Graph {
		if err := a.Render(ctx); err != nil {
			return err
		}
	}
	if a.config.Model {
		if _, err := a.BuildModel(ctx); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// Render assembles the graph and writes it through the renderer.
func (a *App) Render(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	g := dot.AssembleStructure(ctx, a.network)
	if a.config.Tables {
		if err := dot.AddProbabilities(ctx, g, a.network); err != nil {
			return fmt.Errorf("failed to build probability tables: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := a.renderer.Render(ctx, g, &buf); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}

	path := a.outputPath()
	if err := a.write(path, buf.Bytes()); err != nil {
		return err
	}
	a.logger.Info("Graph rendered.", "format", a.renderer.Format(), "output", path, "nodes", len(g.Nodes()))
	return nil
}

// BuildModel builds and checks the model, prints its CPDs and exports it
// when a model path is configured.
func (a *App) BuildModel(ctx context.Context) (*bayes.Model, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	m, err := a.builder.Build(ctx, a.network)
	if err != nil {
		return nil, fmt.Errorf("failed to build model: %w", err)
	}
	a.logger.Info("Model built and checked.", "variables", len(m.Nodes()), "edges", len(m.Edges()))

	if err := m.Summary(a.outW); err != nil {
		return nil, err
	}

	if a.config.ModelPath != "" {
		var buf bytes.Buffer
		if err := m.WriteYAML(&buf); err != nil {
			return nil, err
		}
		if err := a.write(a.config.ModelPath, buf.Bytes()); err != nil {
			return nil, err
		}
		a.logger.Info("Model exported.", "output", a.config.ModelPath)
	}
	return m, nil
}

// outputPath defaults to the network path with the format as extension.
func (a *App) outputPath() string {
	if a.config.OutputPath != "" {
		return a.config.OutputPath
	}
	base := filepath.Clean(a.config.NetworkPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + a.renderer.Format()
}

func (a *App) write(path string, data []byte) error {
	if path == Stdout {
		_, err := a.outW.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
