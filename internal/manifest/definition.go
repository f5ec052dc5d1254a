package manifest

import (
	"maps"
	"slices"

	"cuelang.org/go/cue/token"

	"github.com/roach88/facet/internal/core"
	"github.com/roach88/facet/internal/ir"
)

// Definition is one declarative component.
type Definition struct {
	Name      string
	Props     []string
	PropsData ir.Object
	Data      ir.Object

	// Watch maps a data key to the event emitted when it changes.
	// The event carries (new, old).
	Watch map[string]string

	// Emit maps a lifecycle hook name to the event emitted when it runs.
	Emit map[string]string

	Render *RenderSpec

	// Plugins names entries of the builtin catalog to install.
	Plugins []string

	// Pos is the CUE position of the definition, if loaded from CUE.
	Pos  token.Pos
	File string
}

// RenderSpec renders a single <Tag>Text + display(data[Bind])</Tag> node.
type RenderSpec struct {
	Tag  string `json:"tag" yaml:"tag"`
	Text string `json:"text" yaml:"text"`
	Bind string `json:"bind" yaml:"bind"`
}

// Body returns the definition as a dynamic object, excluding its name and
// source location. Used for hashing and JSON output.
func (d Definition) Body() ir.Object {
	body := ir.Object{
		"props":     stringsValue(d.Props),
		"propsData": d.PropsData.Clone(),
		"data":      d.Data.Clone(),
		"watch":     stringMapValue(d.Watch),
		"emit":      stringMapValue(d.Emit),
		"plugins":   stringsValue(d.Plugins),
	}
	if d.Render != nil {
		body["render"] = ir.Object{
			"tag":  ir.String(d.Render.Tag),
			"text": ir.String(d.Render.Text),
			"bind": ir.String(d.Render.Bind),
		}
	} else {
		body["render"] = ir.Null{}
	}
	return body
}

// Hash returns the content-addressed identity of the definition.
func (d Definition) Hash() (string, error) {
	return ir.DefinitionHash(d.Name, d.Body())
}

// Options builds the core options for one instance of d.
//
// Hooks and watchers are installed in sorted key order so two instances of
// the same definition produce the same timeline.
func (d Definition) Options() core.Options {
	opts := core.Options{
		Name:      d.Name,
		Props:     slices.Clone(d.Props),
		PropsData: d.PropsData.Clone(),
		Data:      d.Data.Clone(),
	}

	if len(d.Watch) > 0 {
		opts.Watch = make(map[string][]core.WatchFunc, len(d.Watch))
		for _, key := range slices.Sorted(maps.Keys(d.Watch)) {
			event := d.Watch[key]
			opts.Watch[key] = []core.WatchFunc{func(vm *core.Component, newVal, oldVal ir.Value) error {
				return vm.Emit(event, orNull(newVal), orNull(oldVal))
			}}
		}
	}

	if len(d.Emit) > 0 {
		opts.Hooks = make(map[core.Hook][]core.HookFunc, len(d.Emit))
		for _, hook := range slices.Sorted(maps.Keys(d.Emit)) {
			event := d.Emit[hook]
			opts.Hooks[core.Hook(hook)] = []core.HookFunc{func(vm *core.Component) error {
				return vm.Emit(event)
			}}
		}
	}

	if d.Render != nil {
		spec := *d.Render
		opts.Render = func(vm *core.Component) (*core.VNode, error) {
			tag := spec.Tag
			if tag == "" {
				tag = "div"
			}
			text := spec.Text
			if spec.Bind != "" {
				v, _ := vm.Get(spec.Bind)
				text += vm.Display(v)
			}
			return &core.VNode{Tag: tag, Text: text}, nil
		}
	}
	return opts
}

func orNull(v ir.Value) ir.Value {
	if v == nil {
		return ir.Null{}
	}
	return v
}

func stringsValue(ss []string) ir.Array {
	out := make(ir.Array, len(ss))
	for i, s := range ss {
		out[i] = ir.String(s)
	}
	return out
}

func stringMapValue(m map[string]string) ir.Object {
	out := make(ir.Object, len(m))
	for k, v := range m {
		out[k] = ir.String(v)
	}
	return out
}
