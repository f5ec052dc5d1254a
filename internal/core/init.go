package core

// applyInit contributes _init, the entry point New delegates to.
func applyInit(c *Constructor) {
	c.mustDefine("_init", initMethod)
}

func initMethod(vm *Component, args ...any) (any, error) {
	opts, err := argAt[Options]("_init", args, 0)
	if err != nil {
		return nil, err
	}
	c := vm.ctor

	vm.uid = c.cfg.UIDs.Generate()
	vm.options = mergeOptions(c.globalOptions(), opts)
	vm.inited = true

	if vm.options.Name != "" {
		c.validateComponentName(vm.options.Name, vm)
	}

	initLifecycle(vm)
	initEvents(vm)
	initRender(vm)
	c.callHook(vm, HookBeforeCreate)
	initState(vm)
	c.callHook(vm, HookCreated)

	c.cfg.Logger.Debug("component created",
		"uid", vm.uid,
		"component", formatComponentName(vm),
	)
	return nil, nil
}

func initLifecycle(vm *Component) {
	parent := vm.options.Parent
	if parent != nil {
		parent.children = append(parent.children, vm)
		vm.parent = parent
		vm.root = parent.root
	} else {
		vm.root = vm
	}
	vm.children = nil
	vm.isMounted = false
	vm.isDestroyed = false
	vm.isBeingDestroyed = false
}

func initEvents(vm *Component) {
	vm.events = make(map[string][]*Listener)
	vm.hasHookEvent = false
	for event, handlers := range vm.options.Listeners {
		for _, h := range handlers {
			vm.on(event, &Listener{fn: h})
		}
	}
}

func initRender(vm *Component) {
	vm.vnode = nil
	vm.renderCount = 0
}

func initState(vm *Component) {
	vm.watchers = make(map[string][]*watcher)
	initProps(vm)
	initMethods(vm)
	initData(vm)
	initWatch(vm)
}
