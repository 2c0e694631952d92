package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/specialistvlad/bayesgridgo/internal/bayes"
	"github.com/specialistvlad/bayesgridgo/internal/config"
	"github.com/specialistvlad/bayesgridgo/internal/dot"
	"github.com/specialistvlad/bayesgridgo/internal/hcl"
	"github.com/specialistvlad/bayesgridgo/internal/yamlcfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sprinklerHCL = `
network "sprinkler" {
  description = "Rain and wet grass"
}

variable "RAIN" {
  desc   = "Rain"
  legend = { 0 = "No", 1 = "Yes" }
  cpd    = { 0 = 0.8, 1 = 0.2 }
}

variable "WET" {
  desc   = "Wet grass"
  legend = { 0 = "Dry", 1 = "Wet" }
  cpd = {
    0 = { RAIN = { No = 0.9, Yes = 0.2 } }
    1 = { RAIN = { No = 0.1, Yes = 0.8 } }
  }
}

edge "RAIN" "WET" {}
`

const sprinklerYAML = `
name: sprinkler
structure: [[RAIN, WET]]
variables:
  RAIN: {desc: Rain, legend: {0: "No", 1: "Yes"}, cpd: {0: 0.8, 1: 0.2}}
  WET:
    desc: Wet grass
    cpd:
      0: {RAIN: {"No": 0.9, "Yes": 0.2}}
      1: {RAIN: {"No": 0.1, "Yes": 0.8}}
`

func writeNetwork(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func baseConfig(path string) *Config {
	return &Config{
		NetworkPath: path,
		OutputPath:  Stdout,
		Format:      "dot",
		Graph:       true,
		Tables:      true,
		LogFormat:   "text",
		LogLevel:    "info",
	}
}

type recordingRenderer struct {
	graphs []*dot.Graph
	err    error
}

func (r *recordingRenderer) Render(_ context.Context, g *dot.Graph, w io.Writer) error {
	r.graphs = append(r.graphs, g)
	if r.err != nil {
		return r.err
	}
	_, err := io.WriteString(w, "rendered\n")
	return err
}

func (r *recordingRenderer) Format() string { return "svg" }

type failingBuilder struct{}

func (failingBuilder) Build(context.Context, *config.Network) (*bayes.Model, error) {
	return nil, errors.New("builder exploded")
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing path", mutate: func(c *Config) { c.NetworkPath = "" }, wantErr: "NetworkPath is required"},
		{name: "bad format", mutate: func(c *Config) { c.Format = "jpeg" }, wantErr: `Format must be one of [dot svg png pdf], got "jpeg"`},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "LogLevel must be one of"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "LogFormat must be one of"},
		{name: "nothing to do", mutate: func(c *Config) { c.Graph = false }, wantErr: "nothing to do"},
		{name: "model path without model", mutate: func(c *Config) { c.ModelPath = "m.yaml" }, wantErr: "model output path"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := baseConfig("net.hcl")
			tc.mutate(cfg)
			got, err := NewConfig(*cfg)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, cfg, got)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoaderFor(t *testing.T) {
	t.Parallel()

	hclPath := writeNetwork(t, "net.hcl", sprinklerHCL)
	l, err := loaderFor(hclPath)
	require.NoError(t, err)
	assert.IsType(t, hcl.NewLoader(), l)

	yamlDir := filepath.Dir(writeNetwork(t, "net.yml", sprinklerYAML))
	l, err = loaderFor(yamlDir)
	require.NoError(t, err)
	assert.IsType(t, yamlcfg.NewLoader(), l)

	_, err = loaderFor(writeNetwork(t, "net.txt", "x"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = loaderFor(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApp_RenderDOT(t *testing.T) {
	t.Parallel()

	a, out, logs := SetupAppTest(t, baseConfig(writeNetwork(t, "net.hcl", sprinklerHCL)))
	require.NoError(t, a.Run(context.Background()))

	got := out.String()
	assert.True(t, strings.HasPrefix(got, `digraph "sprinkler" {`), got)
	assert.Contains(t, got, `"RAIN" -> "WET";`)
	assert.Contains(t, got, `"cpd_WET" [color="gray", label=<<FONT`)
	assert.Contains(t, logs.String(), "Graph rendered.")
}

func TestApp_RenderWithoutTables(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(writeNetwork(t, "net.yaml", sprinklerYAML))
	cfg.Tables = false
	a, out, _ := SetupAppTest(t, cfg)
	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), `"RAIN" -> "WET";`)
	assert.NotContains(t, out.String(), "cpd_")
}

func TestApp_DefaultOutputPath(t *testing.T) {
	t.Parallel()

	path := writeNetwork(t, "sprinkler.hcl", sprinklerHCL)
	cfg := baseConfig(path)
	cfg.OutputPath = ""
	a, out, _ := SetupAppTest(t, cfg)
	require.NoError(t, a.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), "sprinkler.dot"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")
	assert.Empty(t, out.String())
}

func TestApp_InjectedRenderer(t *testing.T) {
	t.Parallel()

	r := &recordingRenderer{}
	cfg := baseConfig(writeNetwork(t, "net.hcl", sprinklerHCL))
	cfg.Format = "svg"
	a, out, _ := SetupAppTest(t, cfg, WithRenderer(r))
	require.NoError(t, a.Run(context.Background()))

	require.Len(t, r.graphs, 1)
	_, ok := r.graphs[0].Node(dot.CPDNodeID("RAIN"))
	assert.True(t, ok)
	assert.Equal(t, "rendered\n", out.String())

	r.err = errors.New("boom")
	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render graph: boom")
}

func TestApp_BuildModel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := baseConfig(writeNetwork(t, "net.hcl", sprinklerHCL))
	cfg.Graph = false
	cfg.Model = true
	cfg.ModelPath = filepath.Join(dir, "model.yaml")
	a, out, _ := SetupAppTest(t, cfg)

	m, err := a.BuildModel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"RAIN", "WET"}, m.Nodes())
	assert.Contains(t, out.String(), "P(WET | RAIN)")

	data, err := os.ReadFile(cfg.ModelPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "evidence_card:")
}

func TestApp_BuildModelFailure(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(writeNetwork(t, "net.hcl", sprinklerHCL))
	cfg.Model = true
	a, _, _ := SetupAppTest(t, cfg, WithBuilder(failingBuilder{}))

	err := a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build model: builder exploded")
}

func TestNewApp_Failures(t *testing.T) {
	t.Parallel()

	t.Run("invalid network", func(t *testing.T) {
		t.Parallel()
		bad := strings.Replace(sprinklerHCL, `edge "RAIN" "WET" {}`, `edge "RAIN" "SUN" {}`, 1)
		_, err := NewApp(io.Discard, io.Discard, baseConfig(writeNetwork(t, "net.hcl", bad)))
		require.ErrorIs(t, err, config.ErrInvalidNetwork)
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()
		_, err := NewApp(io.Discard, io.Discard, baseConfig(writeNetwork(t, "net.hcl", `variable "A" {`)))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load network")
	})

	t.Run("unsupported format", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig(writeNetwork(t, "net.hcl", sprinklerHCL))
		cfg.Format = "gif"
		_, err := NewApp(io.Discard, io.Discard, cfg)
		assert.ErrorIs(t, err, dot.ErrUnsupportedFormat)
	})
}

func TestApp_Watch(t *testing.T) {
	t.Parallel()

	path := writeNetwork(t, "net.hcl", sprinklerHCL)
	cfg := baseConfig(path)
	cfg.Watch = true
	a, out, logs := SetupAppTest(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "Watching network for changes.")
	}, 5*time.Second, 10*time.Millisecond)

	updated := strings.Replace(sprinklerHCL, `desc   = "Rain"`, `desc   = "Heavy rain"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Heavy rain")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestApp_BundledExamples(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path      string
		variables int
		edges     int
	}{
		{path: "../../examples/sprinkler", variables: 4, edges: 4},
		{path: "../../examples/student.yaml", variables: 5, edges: 4},
	}

	for _, tc := range testCases {
		t.Run(filepath.Base(tc.path), func(t *testing.T) {
			t.Parallel()
			cfg := baseConfig(tc.path)
			cfg.Model = true
			a, out, _ := SetupAppTest(t, cfg)
			require.NoError(t, a.Run(context.Background()))

			assert.Len(t, a.Network().Variables, tc.variables)
			assert.Len(t, a.Network().Edges, tc.edges)
			assert.Contains(t, out.String(), "digraph")
			assert.Contains(t, out.String(), "P(")
		})
	}
}
