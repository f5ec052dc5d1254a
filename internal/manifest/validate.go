package manifest

import (
	"fmt"
	"maps"
	"slices"

	"github.com/roach88/facet/internal/core"
	"github.com/roach88/facet/internal/shared"
)

// Validate checks definitions for problems the runtime would only warn
// about. Every problem is reported; the slice is empty when defs are clean.
func Validate(defs []Definition) []error {
	var errs []error
	seen := make(map[string]bool, len(defs))

	for _, d := range defs {
		fail := func(code, format string, args ...any) {
			errs = append(errs, &LoadError{
				Code:    code,
				Message: fmt.Sprintf("component %s: ", d.Name) + fmt.Sprintf(format, args...),
				Pos:     d.Pos,
				File:    d.File,
			})
		}

		if seen[d.Name] {
			fail(ErrCodeDuplicateName, "defined more than once")
		}
		seen[d.Name] = true

		if !core.ValidComponentName(d.Name) {
			fail(ErrCodeInvalidName, "name must start with a letter and contain only letters, digits, '-', '.' or '_'")
		}
		if shared.IsBuiltInTag(d.Name) {
			fail(ErrCodeReservedName, "%q is a built-in or reserved tag", d.Name)
		}

		for _, key := range d.Data.SortedKeys() {
			switch {
			case core.IsReservedKey(key):
				fail(ErrCodeReservedKey, "data key %q starts with a reserved prefix ($ or _)", key)
			case shared.IsReservedAttribute(shared.Hyphenate(key)):
				fail(ErrCodeReservedKey, "data key %q is a reserved attribute name", key)
			case slices.Contains(d.Props, key):
				fail(ErrCodeReservedKey, "data key %q is also declared as a prop", key)
			}
		}
		for _, key := range d.Props {
			if shared.IsReservedAttribute(shared.Hyphenate(key)) {
				fail(ErrCodeReservedKey, "prop %q is a reserved attribute name", key)
			}
		}

		for _, key := range slices.Sorted(maps.Keys(d.Watch)) {
			if !d.declares(key) {
				fail(ErrCodeUnknownKey, "watch refers to undeclared key %q", key)
			}
			if d.Watch[key] == "" {
				fail(ErrCodeInvalidType, "watch %q has an empty event name", key)
			}
		}

		for _, hook := range slices.Sorted(maps.Keys(d.Emit)) {
			if !core.IsLifecycleHook(hook) {
				fail(ErrCodeUnknownHook, "emit refers to unknown lifecycle hook %q", hook)
			}
			if d.Emit[hook] == "" {
				fail(ErrCodeInvalidType, "emit %q has an empty event name", hook)
			}
		}

		if d.Render != nil && d.Render.Bind != "" && !d.declares(d.Render.Bind) {
			fail(ErrCodeUnknownKey, "render binds undeclared key %q", d.Render.Bind)
		}

		for _, name := range d.Plugins {
			if _, ok := LookupPlugin(name); !ok {
				fail(ErrCodeUnknownPlugin, "unknown plugin %q", name)
			}
		}
	}
	return errs
}

func (d Definition) declares(key string) bool {
	if _, ok := d.Data[key]; ok {
		return true
	}
	return slices.Contains(d.Props, key)
}
