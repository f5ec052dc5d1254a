package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	componentsDir = filepath.Join("..", "..", "testdata", "components")
	scenariosDir  = filepath.Join("..", "..", "testdata", "scenarios")
)

// execute runs the full command tree with args and returns stdout, stderr
// and the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const counterYAML = `components:
  - name: counter
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
