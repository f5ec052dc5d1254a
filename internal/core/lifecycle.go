package core

import (
	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/shared"
)

// applyLifecycle contributes mounting, updating and destruction.
func applyLifecycle(c *Constructor) {
	c.mustDefine("$mount", mountMethod)
	c.mustDefine("_update", updateMethod)
	c.mustDefine("$forceUpdate", forceUpdateMethod)
	c.mustDefine("$destroy", destroyMethod)
}

// callHook records hook, runs its handlers and emits "hook:<name>"
// when the instance listens for hook events.
func (c *Constructor) callHook(vm *Component, hook Hook) {
	c.record(ir.EventHook, vm, string(hook), nil)
	info := string(hook) + " hook"
	for _, fn := range vm.options.Hooks[hook] {
		if fn == nil {
			continue
		}
		c.invokeWithErrorHandling(vm, info, func() error {
			return fn(vm)
		})
	}
	if vm.hasHookEvent {
		_, _ = emitMethod(vm, hookEventPrefix+string(hook))
	}
}

func mountMethod(vm *Component, _ ...any) (any, error) {
	c := vm.ctor
	if vm.isDestroyed {
		c.warn("Cannot mount a destroyed component.", vm)
		return nil, nil
	}
	if vm.isMounted {
		return nil, nil
	}
	if vm.options.Render == nil {
		c.warn("Failed to mount component: render function not defined.", vm)
	}
	c.callHook(vm, HookBeforeMount)
	if err := vm.rerender(); err != nil {
		return nil, err
	}
	vm.isMounted = true
	c.callHook(vm, HookMounted)
	return nil, nil
}

// rerender runs _render and hands the tree to _update.
func (vm *Component) rerender() error {
	vnode, err := callAs[*VNode](vm, "_render")
	if err != nil {
		return err
	}
	_, err = vm.Call("_update", vnode)
	return err
}

func updateMethod(vm *Component, args ...any) (any, error) {
	vnode, err := argAt[*VNode]("_update", args, 0)
	if err != nil {
		return nil, err
	}
	vm.vnode = vnode
	vm.renderCount++
	return nil, nil
}

func forceUpdateMethod(vm *Component, _ ...any) (any, error) {
	if vm.isMounted && !vm.isDestroyed {
		vm.ctor.sched.queueUpdate(vm)
	}
	return nil, nil
}

func destroyMethod(vm *Component, _ ...any) (any, error) {
	if vm.isBeingDestroyed {
		return nil, nil
	}
	c := vm.ctor
	c.callHook(vm, HookBeforeDestroy)
	vm.isBeingDestroyed = true

	parent := vm.parent
	if parent != nil && !parent.isBeingDestroyed {
		parent.children = shared.Remove(parent.children, vm)
	}
	teardownWatchers(vm)
	vm.isDestroyed = true

	// Children go down with the tree they were rendered into.
	for _, child := range vm.Children() {
		_, _ = child.Call("$destroy")
	}
	vm.children = nil
	vm.vnode = nil

	c.callHook(vm, HookDestroyed)
	_, _ = offMethod(vm)
	return nil, nil
}
