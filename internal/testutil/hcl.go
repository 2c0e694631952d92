package testutil

import "testing"

// RunHCLNetworkTest runs the harness on a single network HCL string.
func RunHCLNetworkTest(t *testing.T, networkHCL string, opts ...ConfigOption) *HarnessResult {
	t.Helper()
	return RunIntegrationTest(t, map[string]string{"main.hcl": networkHCL}, opts...)
}

// RunYAMLNetworkTest runs the harness on a single network YAML string.
func RunYAMLNetworkTest(t *testing.T, networkYAML string, opts ...ConfigOption) *HarnessResult {
	t.Helper()
	return RunIntegrationTest(t, map[string]string{"network.yaml": networkYAML}, opts...)
}
