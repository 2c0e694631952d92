package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/bayesgridgo/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Output is everything the app wrote to its result writer: the DOT graph
	// followed by the model summary.
	Output    string
	LogOutput string
	Err       error
	App       *app.App
	// Dir is the temporary directory the network files were written to.
	Dir string
}

// ConfigOption adjusts the harness configuration before the app starts.
type ConfigOption func(cfg *app.Config)

// WriteFiles writes each file under dir, creating subdirectories as needed.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		filePath := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}
}

// RunIntegrationTest provides a standardized harness for running integration
// tests using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, opts ...ConfigOption) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts...)
}

// RunIntegrationTestWithContext writes files into a temporary network
// directory, starts the app on it and runs it once. The graph goes to the
// result writer as DOT text and the model is always built.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts ...ConfigOption) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	networkDir := filepath.Join(tmpDir, "network")
	require.NoError(t, os.Mkdir(networkDir, 0o755))
	WriteFiles(t, networkDir, files)

	cfg := &app.Config{
		NetworkPath: networkDir,
		OutputPath:  app.Stdout,
		Format:      "dot",
		Graph:       true,
		Tables:      true,
		Model:       true,
		LogLevel:    "debug",
		LogFormat:   "text",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	out := &SafeBuffer{}
	logBuffer := &SafeBuffer{}

	result := &HarnessResult{Dir: tmpDir}
	testApp, err := app.NewApp(out, logBuffer, cfg)
	if err == nil {
		result.App = testApp
		err = testApp.Run(ctx)
	}

	if os.Getenv("BGGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	result.Output = out.String()
	result.LogOutput = logBuffer.String()
	result.Err = err
	return result
}
