package core

import (
	"fmt"
	"strings"
)

// Capability is one composable behaviour module. Apply installs methods on
// the constructor's behaviour table through Constructor.Define.
type Capability struct {
	Name     string
	Requires []string
	Apply    func(c *Constructor)
}

// Standard capability names, in composition order.
const (
	CapabilityInit      = "init"
	CapabilityState     = "state"
	CapabilityEvents    = "events"
	CapabilityLifecycle = "lifecycle"
	CapabilityRender    = "render"
)

// Capabilities returns the standard capability modules in the order they
// must be applied.
func Capabilities() []Capability {
	return []Capability{
		{Name: CapabilityInit, Apply: applyInit},
		{Name: CapabilityState, Requires: []string{CapabilityInit}, Apply: applyState},
		{Name: CapabilityEvents, Requires: []string{CapabilityInit}, Apply: applyEvents},
		{Name: CapabilityLifecycle, Requires: []string{CapabilityInit}, Apply: applyLifecycle},
		{Name: CapabilityRender, Requires: []string{CapabilityInit}, Apply: applyRender},
	}
}

// Compose applies the standard capabilities to c. Calling it again is a
// no-op.
func Compose(c *Constructor) {
	if err := ComposeWith(c, Capabilities()...); err != nil {
		// The standard list is ordered; a failure here is a programming error.
		panic(err)
	}
}

// ComposeWith applies caps to c in order. A capability that was applied
// before is skipped. A capability whose Requires are not all applied yet
// stops composition with a CAPABILITY_ORDER error; capabilities applied
// before it stay applied.
func ComposeWith(c *Constructor, caps ...Capability) error {
	c.composeMu.Lock()
	defer c.composeMu.Unlock()

	for _, capability := range caps {
		if c.applied[capability.Name] {
			continue
		}
		var missing []string
		for _, req := range capability.Requires {
			if !c.applied[req] {
				missing = append(missing, req)
			}
		}
		if len(missing) > 0 {
			return &RuntimeError{
				Code:    ErrCodeCapabilityOrder,
				Message: fmt.Sprintf("capability %q requires %s", capability.Name, strings.Join(missing, ", ")),
			}
		}

		name := capability.Name
		c.applying.Store(&name)
		capability.Apply(c)
		c.applying.Store(nil)

		c.applied[capability.Name] = true
		c.appliedOrder = append(c.appliedOrder, capability.Name)
		c.cfg.Logger.Debug("capability applied",
			"constructor", c.name,
			"capability", capability.Name,
		)
	}
	return nil
}
