package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// componentsDir is the shared demo manifest at the project root.
var componentsDir = filepath.Join("..", "..", "testdata", "components")

// writeManifest creates a YAML manifest in dir and returns its path.
func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "components.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// writeScenario writes a scenario file next to the manifest and returns
// its path.
func writeScenario(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const counterManifest = `
components:
  - name: counter
    props: [label]
    propsData:
      label: Clicks
    data:
      count: 0
    watch:
      count: changed
    emit:
      mounted: ready
    render:
      tag: p
      text: "Count: "
      bind: count
    plugins: [counter, inspect]
`

// counterScenario builds a scenario over counterManifest in a temp dir.
func counterScenario(t *testing.T, steps []Step, assertions ...Assertion) *Scenario {
	t.Helper()
	dir := t.TempDir()
	return &Scenario{
		Name:        "counter",
		Description: "counter scenario",
		Manifest:    writeManifest(t, dir, counterManifest),
		Component:   "counter",
		Steps:       steps,
		Assertions:  assertions,
	}
}
