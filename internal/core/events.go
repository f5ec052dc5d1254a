package core

import (
	"fmt"
	"strings"

	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/shared"
)

// Listener is a registered event handler. Removal is by pointer identity.
type Listener struct {
	fn Handler
}

const hookEventPrefix = "hook:"

// applyEvents contributes $on, $once, $off and $emit.
func applyEvents(c *Constructor) {
	c.mustDefine("$on", onMethod)
	c.mustDefine("$once", onceMethod)
	c.mustDefine("$off", offMethod)
	c.mustDefine("$emit", emitMethod)
}

// eventNames accepts a single event name or a list of them.
func eventNames(method string, args []any) ([]string, error) {
	if len(args) == 0 {
		return nil, badArgument(method, "missing event name")
	}
	switch ev := args[0].(type) {
	case string:
		return []string{ev}, nil
	case []string:
		return ev, nil
	}
	return nil, badArgument(method, "event must be string or []string, got %T", args[0])
}

func (vm *Component) on(event string, l *Listener) {
	vm.events[event] = append(vm.events[event], l)
	if strings.HasPrefix(event, hookEventPrefix) {
		vm.hasHookEvent = true
	}
}

func (vm *Component) off(event string, l *Listener) {
	if l == nil {
		delete(vm.events, event)
		return
	}
	vm.events[event] = shared.Remove(vm.events[event], l)
}

func onMethod(vm *Component, args ...any) (any, error) {
	events, err := eventNames("$on", args)
	if err != nil {
		return nil, err
	}
	fn, err := argAt[Handler]("$on", args, 1)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, badArgument("$on", "nil handler")
	}
	l := &Listener{fn: fn}
	for _, event := range events {
		vm.on(event, l)
	}
	return l, nil
}

func onceMethod(vm *Component, args ...any) (any, error) {
	event, err := argAt[string]("$once", args, 0)
	if err != nil {
		return nil, err
	}
	fn, err := argAt[Handler]("$once", args, 1)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, badArgument("$once", "nil handler")
	}

	var (
		l       *Listener
		callErr error
	)
	fire := shared.Once(func(args ...any) {
		vm.off(event, l)
		callErr = fn(vm, args...)
	})
	l = &Listener{fn: func(vm *Component, args ...any) error {
		callErr = nil
		fire(args...)
		return callErr
	}}
	vm.on(event, l)
	return l, nil
}

func offMethod(vm *Component, args ...any) (any, error) {
	if len(args) == 0 {
		vm.events = make(map[string][]*Listener)
		return nil, nil
	}
	events, err := eventNames("$off", args)
	if err != nil {
		return nil, err
	}
	var l *Listener
	if len(args) > 1 && args[1] != nil {
		if l, err = argAt[*Listener]("$off", args, 1); err != nil {
			return nil, err
		}
	}
	for _, event := range events {
		vm.off(event, l)
	}
	return nil, nil
}

func emitMethod(vm *Component, args ...any) (any, error) {
	event, err := argAt[string]("$emit", args, 0)
	if err != nil {
		return nil, err
	}
	c := vm.ctor
	payload := args[1:]

	if !c.cfg.Production {
		lower := strings.ToLower(event)
		if lower != event && len(vm.events[lower]) > 0 {
			c.tip(fmt.Sprintf(
				"Event %q is emitted in component %s but the handler is registered for %q. "+
					"Event names are case-sensitive; you should probably use %q instead of %q.",
				lower, formatComponentName(vm), event, shared.Hyphenate(event), event,
			), vm)
		}
	}

	if !strings.HasPrefix(event, hookEventPrefix) {
		c.record(ir.EventEmit, vm, event, toPayload(payload))
	}

	listeners := shared.ToSlice[*Listener](shared.Slice[*Listener](vm.events[event]), 0)
	info := fmt.Sprintf("event handler for %q", event)
	for _, l := range listeners {
		c.invokeWithErrorHandling(vm, info, func() error {
			return l.fn(vm, payload...)
		})
	}
	return nil, nil
}
