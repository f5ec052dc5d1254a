package core

import (
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/shared"
)

// WatchOptions tune $watch.
type WatchOptions struct {
	// Immediate runs the watcher once with the current value on registration.
	Immediate bool
}

type watcher struct {
	key    string
	fn     WatchFunc
	active bool
}

// applyState contributes the data, props and watcher methods.
//
// Watchers run synchronously inside $set and $delete; there is no
// dependency-tracking graph, only per-key subscriptions.
func applyState(c *Constructor) {
	c.mustDefine("$data", func(vm *Component, _ ...any) (any, error) {
		return vm.data, nil
	})
	c.mustDefine("$props", func(vm *Component, _ ...any) (any, error) {
		return vm.props, nil
	})
	c.mustDefine("$set", setMethod)
	c.mustDefine("$delete", deleteMethod)
	c.mustDefine("$watch", watchMethod)
}

// IsReservedKey reports whether key starts with $ or _, the prefixes kept
// for instance methods.
func IsReservedKey(key string) bool {
	return strings.HasPrefix(key, "$") || strings.HasPrefix(key, "_")
}

func (vm *Component) declaresProp(key string) bool {
	return slices.Contains(vm.options.Props, key)
}

func initProps(vm *Component) {
	c := vm.ctor
	vm.props = ir.Object{}
	for _, key := range vm.options.Props {
		hyphenated := shared.Hyphenate(key)
		if shared.IsReservedAttribute(hyphenated) {
			c.warnf(vm, "%q is a reserved attribute and cannot be used as component prop.", hyphenated)
		}
		if v, ok := vm.options.PropsData[key]; ok {
			vm.props[key] = v
		} else if v, ok := vm.options.PropsData[hyphenated]; ok {
			vm.props[key] = v
		}
	}
}

func initMethods(vm *Component) {
	c := vm.ctor
	vm.methods = make(map[string]Method, len(vm.options.Methods))
	for _, key := range slices.Sorted(maps.Keys(vm.options.Methods)) {
		m := vm.options.Methods[key]
		if m == nil {
			c.warnf(vm, "Method %q has type nil in the component definition. Did you reference the function correctly?", key)
			continue
		}
		if vm.declaresProp(key) {
			c.warnf(vm, "Method %q has already been defined as a prop.", key)
		}
		if c.proto.Has(key) && IsReservedKey(key) {
			c.warnf(vm, "Method %q conflicts with an existing instance method. Avoid defining component methods that start with _ or $.", key)
			continue
		}
		vm.methods[key] = m
	}
}

func initData(vm *Component) {
	c := vm.ctor
	data := vm.options.Data.Clone()
	for _, key := range data.SortedKeys() {
		if _, ok := vm.methods[key]; ok {
			c.warnf(vm, "Method %q has already been defined as a data property.", key)
		}
		switch {
		case vm.declaresProp(key):
			c.warnf(vm, "The data property %q is already declared as a prop. Use prop default value instead.", key)
		case IsReservedKey(key):
			c.warnf(vm, "Data property %q starts with a reserved prefix ($ or _).", key)
		case shared.IsReservedAttribute(shared.Hyphenate(key)):
			c.warnf(vm, "Data property %q is a reserved attribute name.", key)
		}
	}
	vm.data = data
}

func initWatch(vm *Component) {
	for _, key := range slices.Sorted(maps.Keys(vm.options.Watch)) {
		for _, fn := range vm.options.Watch[key] {
			if fn == nil {
				continue
			}
			createWatcher(vm, key, fn, WatchOptions{})
		}
	}
}

func createWatcher(vm *Component, key string, fn WatchFunc, opts WatchOptions) func() {
	w := &watcher{key: key, fn: fn, active: true}
	vm.watchers[key] = append(vm.watchers[key], w)
	if opts.Immediate {
		current, _ := vm.Get(key)
		vm.runWatcher(w, current, nil)
	}
	return func() {
		if !w.active {
			return
		}
		w.active = false
		vm.watchers[key] = shared.Remove(vm.watchers[key], w)
	}
}

func (vm *Component) runWatcher(w *watcher, newVal, oldVal ir.Value) {
	vm.ctor.invokeWithErrorHandling(vm, `callback for watcher "`+w.key+`"`, func() error {
		return w.fn(vm, newVal, oldVal)
	})
}

func (vm *Component) notify(key string, newVal, oldVal ir.Value) {
	// Copy: a watcher may unwatch itself.
	for _, w := range slices.Clone(vm.watchers[key]) {
		if w.active {
			vm.runWatcher(w, newVal, oldVal)
		}
	}
	if vm.isMounted && !vm.isDestroyed {
		vm.ctor.sched.queueUpdate(vm)
	}
}

// sameValue reports a no-op write: same dynamic type and loosely equal.
func sameValue(a, b ir.Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return shared.LooseEqual(a, b)
}

func setMethod(vm *Component, args ...any) (any, error) {
	key, err := argAt[string]("$set", args, 0)
	if err != nil {
		return nil, err
	}
	if len(args) < 2 {
		return nil, badArgument("$set", "missing value for %q", key)
	}
	if vm.declaresProp(key) {
		vm.ctor.warnf(vm, "Avoid mutating a prop directly since the value will be overwritten whenever the parent component re-renders. Prop being mutated: %q", key)
		return nil, &RuntimeError{
			Code:      ErrCodeReadOnly,
			Message:   "props are read-only",
			Component: formatComponentName(vm),
			Method:    "$set",
		}
	}
	value, err := ir.FromGo(args[1])
	if err != nil {
		return nil, badArgument("$set", "value for %q: %v", key, err)
	}

	old, existed := vm.data[key]
	if existed && sameValue(old, value) {
		return nil, nil
	}
	vm.data[key] = value
	vm.notify(key, value, old)
	return nil, nil
}

func deleteMethod(vm *Component, args ...any) (any, error) {
	key, err := argAt[string]("$delete", args, 0)
	if err != nil {
		return nil, err
	}
	if vm.declaresProp(key) {
		vm.ctor.warnf(vm, "Avoid deleting a prop directly. Prop being deleted: %q", key)
		return nil, &RuntimeError{
			Code:      ErrCodeReadOnly,
			Message:   "props are read-only",
			Component: formatComponentName(vm),
			Method:    "$delete",
		}
	}
	old, ok := vm.data[key]
	if !ok {
		return nil, nil
	}
	delete(vm.data, key)
	vm.notify(key, nil, old)
	return nil, nil
}

func watchMethod(vm *Component, args ...any) (any, error) {
	key, err := argAt[string]("$watch", args, 0)
	if err != nil {
		return nil, err
	}
	fn, err := argAt[WatchFunc]("$watch", args, 1)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, badArgument("$watch", "nil callback for %q", key)
	}
	var opts WatchOptions
	if len(args) > 2 {
		if opts, err = argAt[WatchOptions]("$watch", args, 2); err != nil {
			return nil, err
		}
	}
	return createWatcher(vm, key, fn, opts), nil
}

// teardownWatchers deactivates every watcher of vm.
func teardownWatchers(vm *Component) {
	for _, ws := range vm.watchers {
		for _, w := range ws {
			w.active = false
		}
	}
	vm.watchers = make(map[string][]*watcher)
}
