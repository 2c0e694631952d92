package dot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrRendererUnavailable is returned when a renderer's external
// collaborator cannot be found.
var ErrRendererUnavailable = errors.New("graph renderer unavailable")

// ErrUnsupportedFormat is returned for an output format no renderer handles.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formats lists every output format NewRenderer accepts.
var Formats = []string{"dot", "svg", "png", "pdf"}

// GraphvizBinary is the executable GraphvizRenderer runs.
const GraphvizBinary = "dot"

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Renderer turns a graph into an artifact written to w.
type Renderer interface {
	Render(ctx context.Context, g *Graph, w io.Writer) error
	Format() string
}

// NewRenderer returns the renderer for format: DOT text is produced in
// process, every other format requires Graphviz.
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "dot":
		return DOTRenderer{}, nil
	case "svg", "png", "pdf":
		return NewGraphvizRenderer(format)
	default:
		return nil, fmt.Errorf("%w %q, expected one of %s", ErrUnsupportedFormat, format, strings.Join(Formats, ", "))
	}
}

// DOTRenderer writes DOT text.
type DOTRenderer struct{}

// Render implements Renderer.
func (DOTRenderer) Render(_ context.Context, g *Graph, w io.Writer) error {
	return WriteDOT(w, g)
}

// Format implements Renderer.
func (DOTRenderer) Format() string { return "dot" }

// GraphvizRenderer pipes DOT text through the Graphviz `dot` executable.
type GraphvizRenderer struct {
	binary string
	format string
}

// NewGraphvizRenderer locates the `dot` executable. It fails immediately,
// naming the executable, when Graphviz is not installed.
func NewGraphvizRenderer(format string) (*GraphvizRenderer, error) {
	bin, err := lookPath(GraphvizBinary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s output needs the Graphviz %q executable on PATH: %v", ErrRendererUnavailable, format, GraphvizBinary, err)
	}
	return &GraphvizRenderer{binary: bin, format: format}, nil
}

// Format implements Renderer.
func (r *GraphvizRenderer) Format() string { return r.format }

// Render implements Renderer.
func (r *GraphvizRenderer) Render(ctx context.Context, g *Graph, w io.Writer) error {
	var in bytes.Buffer
	if err := WriteDOT(&in, g); err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, "-T"+r.format)
	cmd.Stdin = &in
	cmd.Stdout = w
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("graphviz %s -T%s failed: %w: %s", r.binary, r.format, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
