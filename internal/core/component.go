package core

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/roach88/facet/internal/ir"
)

// Component is one entity instance. Create it with Constructor.New.
//
// The zero value is not usable: Init on a zero Component only warns and
// marks it degraded, and every method call on it fails with NOT_CONSTRUCTED.
type Component struct {
	ctor     *Constructor
	uid      string
	order    int64
	options  Options
	degraded bool
	inited   bool

	// lifecycle
	parent           *Component
	root             *Component
	children         []*Component
	isMounted        bool
	isDestroyed      bool
	isBeingDestroyed bool

	// events
	events       map[string][]*Listener
	hasHookEvent bool

	// state
	props    ir.Object
	data     ir.Object
	methods  map[string]Method
	watchers map[string][]*watcher

	// render
	vnode       *VNode
	renderCount int
}

// Init initialises a component value. Components from New are already
// initialised; Init on anything else leaves the value degraded.
func (vm *Component) Init(opts Options) {
	if vm.ctor == nil {
		slog.Default().Warn("[facet warn] Component is a constructor and should be created with Constructor.New")
		vm.options = opts
		vm.degraded = true
		return
	}
	if vm.inited {
		vm.ctor.warn("Component is already initialized.", vm)
		return
	}
	if _, err := vm.Call("_init", opts); err != nil {
		vm.ctor.handleError(err, vm, "init")
	}
}

// Call invokes a behaviour-table method by name. Per-instance methods from
// Options.Methods shadow table methods of the same name.
func (vm *Component) Call(name string, args ...any) (any, error) {
	if vm.ctor == nil {
		return nil, &RuntimeError{
			Code:    ErrCodeNotConstructed,
			Message: "component was not created by Constructor.New",
			Method:  name,
		}
	}
	if m, ok := vm.methods[name]; ok {
		return m(vm, args...)
	}
	m, ok := vm.ctor.proto.Lookup(name)
	if !ok {
		return nil, &RuntimeError{
			Code:      ErrCodeUnknownMethod,
			Message:   "no such method",
			Component: formatComponentName(vm),
			Method:    name,
		}
	}
	return m(vm, args...)
}

// UID returns the component uid. Empty for degraded components.
func (vm *Component) UID() string { return vm.uid }

// Name returns the component name from its options.
func (vm *Component) Name() string { return vm.options.Name }

// Constructor returns the constructor that created vm.
func (vm *Component) Constructor() *Constructor { return vm.ctor }

// Options returns the merged options.
func (vm *Component) Options() Options { return vm.options }

// Degraded reports whether vm was initialised without its constructor.
func (vm *Component) Degraded() bool { return vm.degraded }

func (vm *Component) Parent() *Component { return vm.parent }
func (vm *Component) Root() *Component   { return vm.root }

// Children returns a copy of the child list.
func (vm *Component) Children() []*Component {
	out := make([]*Component, len(vm.children))
	copy(out, vm.children)
	return out
}

func (vm *Component) IsMounted() bool   { return vm.isMounted }
func (vm *Component) IsDestroyed() bool { return vm.isDestroyed }

// VNode returns the last rendered tree.
func (vm *Component) VNode() *VNode { return vm.vnode }

// RenderCount returns how many trees have been rendered.
func (vm *Component) RenderCount() int { return vm.renderCount }

// Get reads a data key, falling back to props.
func (vm *Component) Get(key string) (ir.Value, bool) {
	if v, ok := vm.data[key]; ok {
		return v, true
	}
	v, ok := vm.props[key]
	return v, ok
}

// Data returns the live data object.
func (vm *Component) Data() (ir.Object, error) {
	return callAs[ir.Object](vm, "$data")
}

// Props returns the resolved props.
func (vm *Component) Props() (ir.Object, error) {
	return callAs[ir.Object](vm, "$props")
}

// Set writes a data key and notifies its watchers.
func (vm *Component) Set(key string, value any) error {
	_, err := vm.Call("$set", key, value)
	return err
}

// Delete removes a data key and notifies its watchers.
func (vm *Component) Delete(key string) error {
	_, err := vm.Call("$delete", key)
	return err
}

// Watch observes key. The returned func stops watching.
func (vm *Component) Watch(key string, fn WatchFunc, opts ...WatchOptions) (func(), error) {
	args := []any{key, fn}
	if len(opts) > 0 {
		args = append(args, opts[0])
	}
	return callAs[func()](vm, "$watch", args...)
}

// On registers fn for event.
func (vm *Component) On(event string, fn Handler) (*Listener, error) {
	return callAs[*Listener](vm, "$on", event, fn)
}

// Once registers fn for the next emission of event only.
func (vm *Component) Once(event string, fn Handler) (*Listener, error) {
	return callAs[*Listener](vm, "$once", event, fn)
}

// Off removes listeners. With no arguments every listener goes; with an
// event every listener of that event; with both only l.
func (vm *Component) Off(event string, l *Listener) error {
	var err error
	switch {
	case event == "" && l == nil:
		_, err = vm.Call("$off")
	case l == nil:
		_, err = vm.Call("$off", event)
	default:
		_, err = vm.Call("$off", event, l)
	}
	return err
}

// Emit runs the listeners of event with args.
func (vm *Component) Emit(event string, args ...any) error {
	_, err := vm.Call("$emit", append([]any{event}, args...)...)
	return err
}

// Mount renders the component for the first time.
func (vm *Component) Mount() error {
	_, err := vm.Call("$mount")
	return err
}

// ForceUpdate queues a re-render.
func (vm *Component) ForceUpdate() error {
	_, err := vm.Call("$forceUpdate")
	return err
}

// Destroy tears the component down.
func (vm *Component) Destroy() error {
	_, err := vm.Call("$destroy")
	return err
}

// NextTick defers fn until the next Flush.
func (vm *Component) NextTick(fn func()) error {
	_, err := vm.Call("$nextTick", fn)
	return err
}

func callAs[T any](vm *Component, name string, args ...any) (T, error) {
	var zero T
	res, err := vm.Call(name, args...)
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	out, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("%s returned %T", name, res)
	}
	return out, nil
}

// argAt extracts args[i] as T. Values of an unnamed func type with the same
// signature as T are converted.
func argAt[T any](method string, args []any, i int) (T, error) {
	var zero T
	if i >= len(args) {
		return zero, badArgument(method, "missing argument %d", i)
	}
	if v, ok := args[i].(T); ok {
		return v, nil
	}
	want := reflect.TypeOf((*T)(nil)).Elem()
	rv := reflect.ValueOf(args[i])
	if rv.IsValid() && rv.Kind() == want.Kind() && rv.Type().ConvertibleTo(want) {
		return rv.Convert(want).Interface().(T), nil
	}
	return zero, badArgument(method, "argument %d: want %s, got %T", i, want, args[i])
}
