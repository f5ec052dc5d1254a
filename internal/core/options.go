package core

import (
	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/shared"
)

// Method is one entry of the behaviour table, or a per-instance method from
// Options.Methods.
type Method func(vm *Component, args ...any) (any, error)

// HookFunc is a lifecycle hook body.
type HookFunc func(vm *Component) error

// Handler is an event handler registered through $on or $once.
type Handler func(vm *Component, args ...any) error

// WatchFunc observes a data key. newVal is nil when the key was deleted.
type WatchFunc func(vm *Component, newVal, oldVal ir.Value) error

// RenderFunc produces the component's virtual node tree.
type RenderFunc func(vm *Component) (*VNode, error)

// Hook names a lifecycle hook.
type Hook string

const (
	HookBeforeCreate  Hook = "beforeCreate"
	HookCreated       Hook = "created"
	HookBeforeMount   Hook = "beforeMount"
	HookMounted       Hook = "mounted"
	HookBeforeUpdate  Hook = "beforeUpdate"
	HookUpdated       Hook = "updated"
	HookBeforeDestroy Hook = "beforeDestroy"
	HookDestroyed     Hook = "destroyed"
)

// LifecycleHooks lists every hook in the order a full lifecycle calls them.
var LifecycleHooks = []Hook{
	HookBeforeCreate,
	HookCreated,
	HookBeforeMount,
	HookMounted,
	HookBeforeUpdate,
	HookUpdated,
	HookBeforeDestroy,
	HookDestroyed,
}

// IsLifecycleHook reports whether name is one of LifecycleHooks.
func IsLifecycleHook(name string) bool {
	for _, h := range LifecycleHooks {
		if string(h) == name {
			return true
		}
	}
	return false
}

// Options describe one component instance (or, through Mixin, every
// instance of a constructor).
type Options struct {
	// Name is used in warnings and traces. Optional.
	Name string

	// Props declares the keys a parent may pass.
	Props []string

	// PropsData holds the values the parent passed for Props.
	PropsData ir.Object

	// Data is the initial reactive state. Each instance gets a deep copy.
	Data ir.Object

	Methods map[string]Method
	Watch   map[string][]WatchFunc
	Hooks   map[Hook][]HookFunc
	Render  RenderFunc

	// Parent links the instance into a component tree.
	Parent *Component

	// Listeners are attached to the instance's events during init.
	Listeners map[string][]Handler
}

// mergeOptions merges instance options over parent (global mixin) options.
//
// Hooks and watchers concatenate with parent entries first. Methods and
// data merge key by key with the child winning. Everything else comes from
// the child.
func mergeOptions(parent, child Options) Options {
	out := child

	out.Hooks = make(map[Hook][]HookFunc, len(parent.Hooks)+len(child.Hooks))
	for h, fns := range parent.Hooks {
		out.Hooks[h] = append(out.Hooks[h], fns...)
	}
	for h, fns := range child.Hooks {
		out.Hooks[h] = append(out.Hooks[h], fns...)
	}

	out.Watch = make(map[string][]WatchFunc, len(parent.Watch)+len(child.Watch))
	for k, fns := range parent.Watch {
		out.Watch[k] = append(out.Watch[k], fns...)
	}
	for k, fns := range child.Watch {
		out.Watch[k] = append(out.Watch[k], fns...)
	}

	out.Methods = shared.Extend(shared.Extend(map[string]Method{}, parent.Methods), child.Methods)

	if parent.Data != nil {
		data := parent.Data.Clone()
		for k, v := range child.Data {
			data[k] = v
		}
		out.Data = data
	}

	if out.Render == nil {
		out.Render = parent.Render
	}
	return out
}
