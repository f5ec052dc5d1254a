package core

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilities_Order(t *testing.T) {
	caps := Capabilities()
	require.Len(t, caps, 5)

	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"init", "state", "events", "lifecycle", "render"}, names)

	assert.Empty(t, caps[0].Requires, "init has no requirements")
	for _, c := range caps[1:] {
		assert.Equal(t, []string{CapabilityInit}, c.Requires, "%s requires init", c.Name)
	}
}

func TestNewConstructor_ComposesStandardCapabilities(t *testing.T) {
	f := newFixture(t)
	c := f.ctor

	assert.True(t, c.Composed())
	assert.Equal(t, []string{"init", "state", "events", "lifecycle", "render"}, c.Capabilities())

	tests := []struct {
		method string
		source string
	}{
		{"_init", "init"},
		{"$data", "state"},
		{"$set", "state"},
		{"$watch", "state"},
		{"$on", "events"},
		{"$emit", "events"},
		{"$mount", "lifecycle"},
		{"$destroy", "lifecycle"},
		{"_render", "render"},
		{"$nextTick", "render"},
		{"_s", "render"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.True(t, c.Prototype().Has(tt.method))
			assert.Equal(t, tt.source, c.Prototype().Source(tt.method))
		})
	}

	// _init is the first method ever defined.
	assert.Equal(t, "_init", c.Prototype().Names()[0])
}

func TestCompose_Idempotent(t *testing.T) {
	f := newFixture(t)
	before := f.ctor.Prototype().Len()

	Compose(f.ctor)
	Compose(f.ctor)

	assert.Equal(t, before, f.ctor.Prototype().Len())
	assert.Len(t, f.ctor.Capabilities(), 5)
}

func TestComposeWith_RejectsMissingRequirement(t *testing.T) {
	c := newConstructor("bare", WithLogger(slog.New(slog.DiscardHandler)))
	caps := Capabilities()

	err := ComposeWith(c, caps[1]) // state before init
	require.Error(t, err)
	assert.True(t, IsCapabilityOrder(err))
	assert.Contains(t, err.Error(), `"state" requires init`)

	assert.False(t, c.Prototype().Has("$set"), "nothing from a rejected capability is applied")
	assert.Equal(t, 0, c.Prototype().Len())
	assert.False(t, c.Composed())
}

func TestComposeWith_StopsAtFirstViolation(t *testing.T) {
	c := newConstructor("bare", WithLogger(slog.New(slog.DiscardHandler)))
	caps := Capabilities()
	applied := false
	late := Capability{
		Name:     "devtools",
		Requires: []string{CapabilityRender},
		Apply:    func(*Constructor) { applied = true },
	}

	err := ComposeWith(c, caps[0], caps[2], late, caps[4])
	require.Error(t, err)
	assert.True(t, IsCapabilityOrder(err))

	assert.False(t, applied)
	assert.Equal(t, []string{"init", "events"}, c.Capabilities())
	assert.True(t, c.Prototype().Has("$emit"))
	assert.False(t, c.Prototype().Has("_render"))

	// Completing the order afterwards succeeds.
	require.NoError(t, ComposeWith(c, caps...))
	require.NoError(t, ComposeWith(c, late))
	assert.True(t, applied)
	assert.True(t, c.Composed())
}

func TestWithExtraCapabilities(t *testing.T) {
	inspect := Capability{
		Name:     "inspect",
		Requires: []string{CapabilityState, CapabilityRender},
		Apply: func(c *Constructor) {
			c.mustDefine("$inspect", func(vm *Component, _ ...any) (any, error) {
				return vm.Name() + "#" + vm.UID(), nil
			})
		},
	}
	f := newFixture(t, WithExtraCapabilities(inspect))

	assert.Equal(t, "inspect", f.ctor.Prototype().Source("$inspect"))
	assert.Equal(t, []string{"init", "state", "events", "lifecycle", "render", "inspect"}, f.ctor.Capabilities())

	vm := f.ctor.New(Options{Name: "widget"})
	got, err := vm.Call("$inspect")
	require.NoError(t, err)
	assert.Equal(t, "widget#vm-1", got)
}

func TestNewConstructor_PanicsOnUnmetExtraRequirement(t *testing.T) {
	bad := Capability{Name: "bad", Requires: []string{"missing"}, Apply: func(*Constructor) {}}
	assert.Panics(t, func() {
		NewConstructor("x", WithLogger(slog.New(slog.DiscardHandler)), WithExtraCapabilities(bad))
	})
}

func TestNew_OnBareConstructorReportsUnknownInit(t *testing.T) {
	var errs []error
	c := newConstructor("bare",
		WithLogger(slog.New(slog.DiscardHandler)),
		WithErrorHandler(func(err error, _ *Component, _ string) { errs = append(errs, err) }),
	)

	vm := c.New(Options{})

	require.Len(t, errs, 1)
	assert.True(t, IsUnknownMethod(errs[0]))
	assert.NotNil(t, vm)
}
