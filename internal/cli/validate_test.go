package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidManifest(t *testing.T) {
	out, _, err := execute(t, "validate", componentsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ All components valid")
}

func TestValidateValidManifestJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "validate", componentsDir)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.Valid)
	assert.Equal(t, []string{"counter", "todo-item"}, resp.Data.Components)
}

func TestValidateYAMLManifest(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.yaml", counterYAML)

	out, _, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ All components valid")
}

func TestValidateVerboseListsComponents(t *testing.T) {
	_, errOut, err := execute(t, "-v", "validate", componentsDir)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Loaded 2 component(s)")
	assert.Contains(t, errOut, "todo-item")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", `components:
  - name: widget
    data:
      $secret: 1
    plugins: [teleport]
  - name: widget
`)

	out, _, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "validation failed with 3 error(s)")

	assert.Contains(t, out, "✗ Validation failed")
	assert.Contains(t, out, "E204")
	assert.Contains(t, out, "E206")
	assert.Contains(t, out, "E201")
	assert.Contains(t, out, "bad.yaml")
}

func TestValidateProblemsJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", `components:
  - name: slot
`)

	out, _, err := execute(t, "--format", "json", "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string           `json:"status"`
		Data   ValidationResult `json:"data"`
		Error  *CLIError        `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.Len(t, resp.Data.Errors, 1)
	assert.Equal(t, "E203", resp.Data.Errors[0].Code)
	assert.Equal(t, "E203", resp.Error.Code)
}

func TestValidateNonExistentPath(t *testing.T) {
	out, _, err := execute(t, "validate", "/nonexistent/manifest/path")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E005")
	assert.Contains(t, out, "not found")
}

func TestValidateEmptyDirectory(t *testing.T) {
	_, _, err := execute(t, "validate", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E003")
}

func TestValidateBrokenCUE(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.cue", "package app\n\ncomponent: counter: data: count: 0\ncomponent: counter: data: count: 1\n")

	_, _, err := execute(t, "validate", filepath.Join(dir, "app.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "E006")
}

func TestValidateMissingArg(t *testing.T) {
	_, _, err := execute(t, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
