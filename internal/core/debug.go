package core

import (
	"fmt"
	"regexp"

	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/shared"
)

var classifyName = shared.Cached(func(s string) string {
	return shared.Capitalize(shared.Camelize(s))
})

// formatComponentName renders vm for warnings: "<Root>", "<Counter>" or
// "<Anonymous>".
func formatComponentName(vm *Component) string {
	if vm == nil {
		return "<Anonymous>"
	}
	if vm.root == vm && vm.options.Name == "" {
		return "<Root>"
	}
	if vm.options.Name == "" {
		return "<Anonymous>"
	}
	return "<" + classifyName(vm.options.Name) + ">"
}

// FormatComponentName is the exported form used by handlers and the CLI.
func FormatComponentName(vm *Component) string { return formatComponentName(vm) }

func (c *Constructor) warn(msg string, vm *Component) {
	if c.cfg.Production {
		return
	}
	trace := formatComponentName(vm)
	c.record(ir.EventWarn, vm, msg, nil)
	if c.cfg.WarnHandler != nil {
		c.cfg.WarnHandler(msg, vm, trace)
		return
	}
	if c.cfg.Silent {
		return
	}
	c.cfg.Logger.Warn("[facet warn] "+msg, "component", trace)
}

func (c *Constructor) warnf(vm *Component, format string, args ...any) {
	if c.cfg.Production {
		return
	}
	c.warn(fmt.Sprintf(format, args...), vm)
}

func (c *Constructor) tip(msg string, vm *Component) {
	if c.cfg.Production || c.cfg.Silent {
		return
	}
	c.cfg.Logger.Info("[facet tip] "+msg, "component", formatComponentName(vm))
}

// handleError routes err to the configured error handler, or logs it.
func (c *Constructor) handleError(err error, vm *Component, info string) {
	c.record(ir.EventError, vm, info, ir.Array{ir.String(err.Error())})
	if c.cfg.ErrorHandler != nil {
		c.cfg.ErrorHandler(err, vm, info)
		return
	}
	c.cfg.Logger.Error("error in "+info,
		"component", formatComponentName(vm),
		"error", err,
	)
}

// invokeWithErrorHandling runs fn and routes a returned error or panic to
// handleError.
func (c *Constructor) invokeWithErrorHandling(vm *Component, info string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			c.handleError(fmt.Errorf("panic: %v", r), vm, info)
		}
	}()
	if err := fn(); err != nil {
		c.handleError(err, vm, info)
	}
}

var validComponentName = regexp.MustCompile(`^[a-zA-Z][\-.0-9_a-zA-Z]*$`)

// ValidComponentName reports whether name is usable as a component name: a
// letter followed by letters, digits, '-', '.' or '_'.
func ValidComponentName(name string) bool {
	return validComponentName.MatchString(name)
}

func (c *Constructor) validateComponentName(name string, vm *Component) {
	if !ValidComponentName(name) {
		c.warnf(vm, "Invalid component name: %q. Component names should conform to valid custom element name in html5 specification.", name)
	}
	if shared.IsBuiltInTag(name) {
		c.warnf(vm, "Do not use built-in or reserved HTML elements as component id: %s", name)
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
