package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeText(t *testing.T) {
	out, _, err := execute(t, "compose")
	require.NoError(t, err)

	assert.Contains(t, out, "Capabilities: [init state events lifecycle render]")
	assert.Contains(t, out, "METHOD")
	assert.Regexp(t, `\$mount\s+lifecycle`, out)
	assert.Regexp(t, `\$emit\s+events`, out)
	assert.NotContains(t, out, "Plugins:")
}

func TestComposeJSONWithPlugins(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "compose", "--plugin", "counter", "--plugin", "toggle")
	require.NoError(t, err)

	var resp struct {
		Status string        `json:"status"`
		Data   ComposeResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []string{"counter", "toggle"}, resp.Data.Plugins)
	assert.Equal(t, []string{"init", "state", "events", "lifecycle", "render"}, resp.Data.Capabilities)

	sources := make(map[string]string, len(resp.Data.Methods))
	for _, m := range resp.Data.Methods {
		sources[m.Name] = m.Source
	}
	assert.Equal(t, "init", sources["_init"])
	assert.Equal(t, "state", sources["$set"])
	assert.Equal(t, "plugin", sources["$increment"])
	assert.Equal(t, "plugin", sources["$toggle"])
	assert.NotContains(t, sources, "$inspect")

	// Capability methods come first, plugin methods after.
	assert.Equal(t, "_init", resp.Data.Methods[0].Name)
}

func TestComposeUnknownPlugin(t *testing.T) {
	out, _, err := execute(t, "compose", "--plugin", "teleport")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E206]")
	assert.Contains(t, out, "teleport")
}
