package manifest

import (
	"fmt"
	"slices"

	"github.com/roach88/facet/internal/core"
	"github.com/roach88/facet/internal/ir"
)

// BuiltinPlugin is a named plugin a manifest can list under "plugins".
// Each catalog entry is a single package-level value, so installing it from
// several definitions registers it once per constructor.
type BuiltinPlugin struct {
	name        string
	description string
	install     func(c *core.Constructor) error
}

// Install implements plugin.Installer.
func (p *BuiltinPlugin) Install(c *core.Constructor, _ ...any) error {
	return p.install(c)
}

// PluginName implements core.Named.
func (p *BuiltinPlugin) PluginName() string { return p.name }

// Description is a one-line summary for the CLI.
func (p *BuiltinPlugin) Description() string { return p.description }

var (
	// CounterPlugin defines $increment(key[, by]).
	CounterPlugin = &BuiltinPlugin{
		name:        "counter",
		description: "$increment(key[, by]) adds by (default 1) to a numeric data key",
		install: func(c *core.Constructor) error {
			return c.Define("$increment", incrementMethod)
		},
	}

	// TogglePlugin defines $toggle(key).
	TogglePlugin = &BuiltinPlugin{
		name:        "toggle",
		description: "$toggle(key) flips a boolean data key",
		install: func(c *core.Constructor) error {
			return c.Define("$toggle", toggleMethod)
		},
	}

	// InspectPlugin defines $inspect().
	InspectPlugin = &BuiltinPlugin{
		name:        "inspect",
		description: "$inspect() returns the instance state as canonical JSON",
		install: func(c *core.Constructor) error {
			return c.Define("$inspect", inspectMethod)
		},
	}
)

var builtins = []*BuiltinPlugin{CounterPlugin, InspectPlugin, TogglePlugin}

// Builtins returns the catalog sorted by name.
func Builtins() []*BuiltinPlugin {
	return slices.Clone(builtins)
}

// LookupPlugin returns the catalog entry called name.
func LookupPlugin(name string) (*BuiltinPlugin, bool) {
	for _, p := range builtins {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Install installs every plugin the definitions list on c, in the order they
// first appear.
func Install(c *core.Constructor, defs ...Definition) error {
	for _, d := range defs {
		for _, name := range d.Plugins {
			p, ok := LookupPlugin(name)
			if !ok {
				return &LoadError{Code: ErrCodeUnknownPlugin, Message: fmt.Sprintf("component %s: unknown plugin %q", d.Name, name), Pos: d.Pos, File: d.File}
			}
			if _, err := c.Use(p); err != nil {
				return fmt.Errorf("installing plugin %s: %w", name, err)
			}
		}
	}
	return nil
}

func keyArg(method string, args []any) (string, error) {
	if len(args) == 0 {
		return "", &core.RuntimeError{Code: core.ErrCodeBadArgument, Method: method, Message: "missing data key"}
	}
	key, ok := args[0].(string)
	if !ok {
		return "", &core.RuntimeError{Code: core.ErrCodeBadArgument, Method: method, Message: fmt.Sprintf("data key must be a string, got %T", args[0])}
	}
	return key, nil
}

func incrementMethod(vm *core.Component, args ...any) (any, error) {
	key, err := keyArg("$increment", args)
	if err != nil {
		return nil, err
	}
	var by ir.Value = ir.Int(1)
	if len(args) > 1 {
		if by, err = ir.FromGo(args[1]); err != nil {
			return nil, &core.RuntimeError{Code: core.ErrCodeBadArgument, Method: "$increment", Message: err.Error()}
		}
	}

	cur, _ := vm.Get(key)
	if cur == nil {
		cur = ir.Int(0)
	}
	next, err := addNumbers(cur, by)
	if err != nil {
		return nil, &core.RuntimeError{Code: core.ErrCodeBadArgument, Method: "$increment", Message: fmt.Sprintf("%s: %v", key, err)}
	}
	if err := vm.Set(key, next); err != nil {
		return nil, err
	}
	return next, nil
}

func addNumbers(a, b ir.Value) (ir.Value, error) {
	switch x := a.(type) {
	case ir.Int:
		switch y := b.(type) {
		case ir.Int:
			return x + y, nil
		case ir.Float:
			return ir.Float(float64(x) + float64(y)), nil
		}
	case ir.Float:
		switch y := b.(type) {
		case ir.Int:
			return x + ir.Float(y), nil
		case ir.Float:
			return x + y, nil
		}
	default:
		return nil, fmt.Errorf("cannot increment %s", ir.TypeName(a))
	}
	return nil, fmt.Errorf("cannot increment by %s", ir.TypeName(b))
}

func toggleMethod(vm *core.Component, args ...any) (any, error) {
	key, err := keyArg("$toggle", args)
	if err != nil {
		return nil, err
	}
	cur, _ := vm.Get(key)
	var next ir.Bool
	switch v := cur.(type) {
	case nil, ir.Null:
		next = true
	case ir.Bool:
		next = !v
	default:
		return nil, &core.RuntimeError{Code: core.ErrCodeBadArgument, Method: "$toggle", Message: fmt.Sprintf("%s: cannot toggle %s", key, ir.TypeName(cur))}
	}
	if err := vm.Set(key, next); err != nil {
		return nil, err
	}
	return next, nil
}

func inspectMethod(vm *core.Component, _ ...any) (any, error) {
	data, err := vm.Data()
	if err != nil {
		return nil, err
	}
	props, err := vm.Props()
	if err != nil {
		return nil, err
	}
	out, err := ir.MarshalCanonical(ir.Object{
		"name":  ir.String(core.FormatComponentName(vm)),
		"data":  data,
		"props": props,
	})
	if err != nil {
		return nil, err
	}
	return string(out), nil
}
