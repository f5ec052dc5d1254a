package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/facet/internal/ir"
)

func TestData_CopiedPerInstance(t *testing.T) {
	f := newFixture(t)
	opts := Options{Data: ir.Object{"count": ir.Int(0), "tags": ir.Array{ir.String("a")}}}

	vm1 := f.ctor.New(opts)
	vm2 := f.ctor.New(opts)

	require.NoError(t, vm1.Set("count", 5))
	data1, err := vm1.Data()
	require.NoError(t, err)
	data1["tags"] = append(data1["tags"].(ir.Array), ir.String("b"))

	v, ok := vm2.Get("count")
	require.True(t, ok)
	assert.Equal(t, ir.Int(0), v)
	assert.Equal(t, ir.Int(0), opts.Data["count"])
	assert.Equal(t, ir.Array{ir.String("a")}, opts.Data["tags"])
}

func TestSet_ConvertsValues(t *testing.T) {
	f := newFixture(t)
	vm := f.ctor.New(Options{})

	require.NoError(t, vm.Set("n", 3))
	require.NoError(t, vm.Set("f", 1.5))
	require.NoError(t, vm.Set("whole", 2.0))
	require.NoError(t, vm.Set("list", []string{"x", "y"}))
	require.NoError(t, vm.Set("nothing", nil))

	data, err := vm.Data()
	require.NoError(t, err)
	assert.Equal(t, ir.Object{
		"n":       ir.Int(3),
		"f":       ir.Float(1.5),
		"whole":   ir.Int(2),
		"list":    ir.Array{ir.String("x"), ir.String("y")},
		"nothing": ir.Null{},
	}, data)

	err = vm.Set("ch", make(chan int))
	assert.True(t, IsBadArgument(err))
}

func TestWatch_NotifiesWithNewAndOld(t *testing.T) {
	f := newFixture(t)
	vm := f.ctor.New(Options{Data: ir.Object{"count": ir.Int(0)}})

	type change struct{ newVal, oldVal ir.Value }
	var changes []change
	unwatch, err := vm.Watch("count", func(_ *Component, newVal, oldVal ir.Value) error {
		changes = append(changes, change{newVal, oldVal})
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, vm.Set("count", 1))
	require.NoError(t, vm.Set("count", 1)) // no-op
	require.NoError(t, vm.Set("count", "1")) // different type, not a no-op
	unwatch()
	unwatch()
	require.NoError(t, vm.Set("count", 2))

	assert.Equal(t, []change{
		{ir.Int(1), ir.Int(0)},
		{ir.String("1"), ir.Int(1)},
	}, changes)
}

func TestWatch_StructuralNoOp(t *testing.T) {
	f := newFixture(t)
	vm := f.ctor.New(Options{Data: ir.Object{"user": ir.Object{"name": ir.String("ann")}}})
	calls := 0
	_, err := vm.Watch("user", func(*Component, ir.Value, ir.Value) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, vm.Set("user", map[string]any{"name": "ann"}))
	assert.Equal(t, 0, calls)

	require.NoError(t, vm.Set("user", map[string]any{"name": "bob"}))
	assert.Equal(t, 1, calls)
}

func TestWatch_Immediate(t *testing.T) {
	f := newFixture(t)
	vm := f.ctor.New(Options{Data: ir.Object{"count": ir.Int(7)}})

	var gotNew, gotOld ir.Value
	_, err := vm.Watch("count", func(_ *Component, newVal, oldVal ir.Value) error {
		gotNew, gotOld = newVal, oldVal
		return nil
	}, WatchOptions{Immediate: true})
	require.NoError(t, err)

	assert.Equal(t, ir.Int(7), gotNew)
	assert.Nil(t, gotOld)
}

func TestWatch_FromOptions(t *testing.T) {
	f := newFixture(t)
	var seen []ir.Value
	vm := f.ctor.New(Options{
		Data: ir.Object{"q": ir.String("")},
		Watch: map[string][]WatchFunc{
			"q": {func(_ *Component, newVal, _ ir.Value) error {
				seen = append(seen, newVal)
				return nil
			}},
		},
	})

	require.NoError(t, vm.Set("q", "go"))
	assert.Equal(t, []ir.Value{ir.String("go")}, seen)
}

func TestWatch_ErrorRoutedToHandler(t *testing.T) {
	f := newFixture(t)
	vm := f.ctor.New(Options{})
	_, err := vm.Watch("k", func(*Component, ir.Value, ir.Value) error {
		return errors.New("watch failed")
	})
	require.NoError(t, err)

	assert.NoError(t, vm.Set("k", 1))
	require.Len(t, f.errs, 1)
	assert.EqualError(t, f.errs[0], `callback for watcher "k": watch failed`)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	vm := f.ctor.New(Options{Data: ir.Object{"a": ir.Int(1)}})
	var gotNew, gotOld ir.Value
	calls := 0
	_, err := vm.Watch("a", func(_ *Component, newVal, oldVal ir.Value) error {
		calls++
		gotNew, gotOld = newVal, oldVal
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, vm.Delete("a"))
	require.NoError(t, vm.Delete("a"))

	assert.Equal(t, 1, calls)
	assert.Nil(t, gotNew)
	assert.Equal(t, ir.Int(1), gotOld)
	_, ok := vm.Get("a")
	assert.False(t, ok)
}

func TestProps(t *testing.T) {
	f := newFixture(t)
	vm := f.ctor.New(Options{
		Props:     []string{"title", "maxItems", "missing"},
		PropsData: ir.Object{"title": ir.String("Todos"), "max-items": ir.Int(3)},
	})

	props, err := vm.Props()
	require.NoError(t, err)
	assert.Equal(t, ir.Object{"title": ir.String("Todos"), "maxItems": ir.Int(3)}, props)

	v, ok := vm.Get("title")
	require.True(t, ok)
	assert.Equal(t, ir.String("Todos"), v)

	err = vm.Set("title", "changed")
	assert.True(t, IsReadOnly(err))
	err = vm.Delete("title")
	assert.True(t, IsReadOnly(err))
	require.Len(t, f.warns, 2)
	assert.Contains(t, f.warns[0], `Prop being mutated: "title"`)
}

func TestInitState_Warnings(t *testing.T) {
	f := newFixture(t)
	f.ctor.New(Options{
		Props: []string{"key", "title"},
		Data: ir.Object{
			"title":  ir.String("dup"),
			"$hid":   ir.Bool(true),
			"ref":    ir.Null{},
			"toggle": ir.Bool(false),
		},
		Methods: map[string]Method{
			"toggle": func(*Component, ...any) (any, error) { return nil, nil },
			"broken": nil,
		},
	})

	assert.Equal(t, []string{
		`"key" is a reserved attribute and cannot be used as component prop.`,
		`Method "broken" has type nil in the component definition. Did you reference the function correctly?`,
		`Data property "$hid" starts with a reserved prefix ($ or _).`,
		`Data property "ref" is a reserved attribute name.`,
		`The data property "title" is already declared as a prop. Use prop default value instead.`,
		`Method "toggle" has already been defined as a data property.`,
	}, f.warns)
}

func TestSet_QueuesRerenderWhenMounted(t *testing.T) {
	f := newFixture(t)
	vm := f.ctor.New(Options{
		Data:   ir.Object{"count": ir.Int(0)},
		Render: textRender("Count: ", "count"),
	})

	require.NoError(t, vm.Set("count", 1)) // not mounted: no render queued
	require.NoError(t, vm.Mount())
	assert.Equal(t, "<p>Count: 1</p>", vm.VNode().String())

	require.NoError(t, vm.Set("count", 2))
	require.NoError(t, vm.Set("count", 3))
	assert.Equal(t, "<p>Count: 1</p>", vm.VNode().String(), "re-render waits for Flush")

	f.ctor.Flush()
	assert.Equal(t, "<p>Count: 3</p>", vm.VNode().String())
	assert.Equal(t, 2, vm.RenderCount())
}
