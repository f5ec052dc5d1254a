package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/facet/internal/ir"
)

func writeCUE(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.cue"), []byte(src), 0o644))
	return dir
}

func TestLoadDir_Valid(t *testing.T) {
	result, errs := LoadDir(filepath.Join("testdata", "valid"), LoadModeCollectAll)
	require.Empty(t, errs)
	require.NotNil(t, result)

	assert.Equal(t, 2, result.FileCount)
	assert.ElementsMatch(t, []string{"counter", "todo-item"}, result.Names())

	counter, ok := result.Lookup("counter")
	require.True(t, ok)
	assert.Equal(t, ir.Object{"count": ir.Int(0), "step": ir.Int(1)}, counter.Data)
	assert.Equal(t, map[string]string{"count": "changed"}, counter.Watch)
	assert.Equal(t, map[string]string{"mounted": "ready"}, counter.Emit)
	assert.Equal(t, &RenderSpec{Tag: "p", Text: "Count: ", Bind: "count"}, counter.Render)
	assert.Equal(t, []string{"counter"}, counter.Plugins)
	assert.True(t, counter.Pos.IsValid())
	assert.Contains(t, counter.File, "counter.cue")

	todo, ok := result.Lookup("todo-item")
	require.True(t, ok)
	assert.Equal(t, []string{"label", "done"}, todo.Props)
	assert.Equal(t, ir.Object{"label": ir.String("write tests")}, todo.PropsData)
	assert.Equal(t, ir.Object{"expanded": ir.Bool(false)}, todo.Data)
	assert.Equal(t, "", todo.Render.Text)
	assert.Equal(t, []string{"toggle", "inspect"}, todo.Plugins)
}

func TestLoadDir_FailFast(t *testing.T) {
	_, errs := LoadDir(filepath.Join("testdata", "invalid"), LoadModeFailFast)
	require.Len(t, errs, 1)

	var le *LoadError
	require.True(t, errors.As(errs[0], &le))
	assert.Equal(t, ErrCodeUnknownField, le.Code)
	assert.Contains(t, le.Message, `"colour"`)
	assert.True(t, le.Pos.IsValid())
}

func TestLoadDir_CollectAll(t *testing.T) {
	result, errs := LoadDir(filepath.Join("testdata", "invalid"), LoadModeCollectAll)
	require.Len(t, errs, 2)
	require.NotNil(t, result)
	assert.Equal(t, []string{"fine"}, result.Names())

	codes := make([]string, 0, len(errs))
	for _, err := range errs {
		var le *LoadError
		require.True(t, errors.As(err, &le))
		codes = append(codes, le.Code)
	}
	assert.ElementsMatch(t, []string{ErrCodeUnknownField, ErrCodeInvalidType}, codes)
}

func TestLoadDir_Errors(t *testing.T) {
	tests := []struct {
		name string
		dir  func(t *testing.T) string
		code string
	}{
		{
			name: "missing directory",
			dir:  func(*testing.T) string { return "/nonexistent/manifest/dir" },
			code: ErrCodeNotFound,
		},
		{
			name: "empty directory",
			dir:  func(t *testing.T) string { return t.TempDir() },
			code: ErrCodeNoFiles,
		},
		{
			name: "no component field",
			dir:  func(t *testing.T) string { return writeCUE(t, "package app\n\nname: \"x\"\n") },
			code: ErrCodeNoComponents,
		},
		{
			name: "conflicting values",
			dir: func(t *testing.T) string {
				return writeCUE(t, "package app\n\ncomponent: a: data: n: 1\ncomponent: a: data: n: 2\n")
			},
			code: ErrCodeBuildFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := LoadDir(tt.dir(t), LoadModeFailFast)
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0].Error(), tt.code)
		})
	}
}

func TestCompileDefinition(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
component: badge: {
	data: {
		label: "new"
		ratio: 1.5
		tags: ["a", "b"]
		meta: {seen: true}
	}
}
`)
	require.NoError(t, v.Err())

	def, err := CompileDefinition("badge", v.LookupPath(cue.ParsePath("component.badge")))
	require.NoError(t, err)
	assert.Equal(t, "badge", def.Name)
	assert.Equal(t, ir.Object{
		"label": ir.String("new"),
		"ratio": ir.Float(1.5),
		"tags":  ir.Array{ir.String("a"), ir.String("b")},
		"meta":  ir.Object{"seen": ir.Bool(true)},
	}, def.Data)
	assert.Nil(t, def.Render)
	assert.Nil(t, def.Watch)
}

func TestCompileDefinition_DataMustBeStruct(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`component: badge: data: [1, 2]`)
	require.NoError(t, v.Err())

	_, err := CompileDefinition("badge", v.LookupPath(cue.ParsePath("component.badge")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeInvalidType)
	assert.Contains(t, err.Error(), "data must be a struct")
}

func TestLoadError_Format(t *testing.T) {
	assert.Equal(t, "E005: gone", (&LoadError{Code: ErrCodeNotFound, Message: "gone"}).Error())
	assert.Equal(t, "app.yaml: E101: bad", (&LoadError{Code: ErrCodeUnknownField, Message: "bad", File: "app.yaml"}).Error())
}

func TestFindCUEFiles(t *testing.T) {
	files, err := FindCUEFiles(filepath.Join("testdata", "valid"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
