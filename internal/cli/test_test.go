package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `name: bump
description: "setting count re-renders"
manifest: ../counter.yaml
component: counter
steps:
  - action: mount
  - action: set
    key: count
    value: 5
assertions:
  - type: final_data
    expect:
      count: 5
  - type: final_render
    render: "<p>Count: 5</p>"
`

const failingScenario = `name: wrong
description: "expects a count the component never reaches"
manifest: ../counter.yaml
component: counter
steps:
  - action: mount
assertions:
  - type: final_data
    expect:
      count: 99
`

// scenarioDir lays out a manifest plus the given scenario files.
func scenarioDir(t *testing.T, scenarios map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "counter.yaml", counterYAML)
	for name, content := range scenarios {
		writeFile(t, dir, filepath.Join("scenarios", name), content)
	}
	return filepath.Join(dir, "scenarios")
}

func TestTestCommandRepositoryScenarios(t *testing.T) {
	out, _, err := execute(t, "test", scenariosDir)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ counter_increments")
	assert.Contains(t, out, "✓ todo_lifecycle")
	assert.Contains(t, out, "Test Summary: 2 passed, 0 failed, 2 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandFilter(t *testing.T) {
	out, _, err := execute(t, "test", scenariosDir, "--filter", "todo_*")
	require.NoError(t, err)

	assert.NotContains(t, out, "counter_increments")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommandFailure(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"bump.yaml": passingScenario, "wrong.yaml": failingScenario})

	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✓ bump")
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "count")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
	assert.NotContains(t, out, "All scenarios passed")
}

func TestTestCommandJSON(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"wrong.yaml": failingScenario})

	out, _, err := execute(t, "--format", "json", "test", dir)
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, errCodeScenarioFailed, resp.Error.Code)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "wrong", resp.Data.Scenarios[0].Name)
	assert.NotEmpty(t, resp.Data.Scenarios[0].Errors)
}

func TestTestCommandGoldenLifecycle(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"bump.yaml": passingScenario})
	golden := filepath.Join(dir, "golden", "bump.golden")

	out, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ bump (golden updated)")

	snapshot, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(snapshot), `"scenario_name":"bump"`)
	assert.Contains(t, string(snapshot), `"render":"<p>Count: 5</p>"`)

	out, _, err = execute(t, "--format", "json", "test", dir)
	require.NoError(t, err)
	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "match", resp.Data.Scenarios[0].Golden)

	require.NoError(t, os.WriteFile(golden, []byte(`{"scenario_name":"bump"}`), 0o644))
	out, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ bump")
	assert.Contains(t, out, "run with --update to regenerate")
}

func TestTestCommandMissingPath(t *testing.T) {
	_, _, err := execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestTestCommandNoScenarios(t *testing.T) {
	out, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("a", "b", "golden", "flow.golden"),
		goldenFilePath(filepath.Join("a", "b", "flow.yaml")))
}
