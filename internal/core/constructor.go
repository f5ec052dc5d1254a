package core

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/roach88/facet/internal/ir"
	"github.com/roach88/facet/internal/plugin"
)

// Plugin is the object form of a constructor plugin.
type Plugin = plugin.Installer[*Constructor]

// PluginFunc is the function form of a constructor plugin.
type PluginFunc = plugin.Func[*Constructor]

// Constructor creates components and owns everything they share: the
// behaviour table, global mixin options, installed plugins, the update
// scheduler and the logical clock.
type Constructor struct {
	name  string
	cfg   Config
	extra []Capability

	proto *Prototype

	composeMu    sync.Mutex
	applied      map[string]bool
	appliedOrder []string
	applying     atomic.Pointer[string]

	globalMu sync.RWMutex
	global   Options

	pluginsOnce sync.Once
	plugins     *plugin.Registry[*Constructor]

	clock Sequencer
	order atomic.Int64
	sched *scheduler
}

// NewConstructor creates a constructor and composes the standard
// capabilities onto it, followed by any WithExtraCapabilities.
// Panics if an extra capability's requirements are not met.
func NewConstructor(name string, opts ...Option) *Constructor {
	c := newConstructor(name, opts...)
	Compose(c)
	if len(c.extra) > 0 {
		if err := ComposeWith(c, c.extra...); err != nil {
			panic(err)
		}
	}
	return c
}

// newConstructor returns a constructor with an empty behaviour table.
func newConstructor(name string, opts ...Option) *Constructor {
	c := &Constructor{
		name:    name,
		proto:   newPrototype(),
		applied: make(map[string]bool),
		sched:   newScheduler(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cfg.Logger == nil {
		c.cfg.Logger = slog.Default()
	}
	if c.clock == nil {
		c.clock = NewClock()
	}
	if c.cfg.UIDs == nil {
		c.cfg.UIDs = UUIDv7Generator{}
	}
	return c
}

// Name returns the constructor name.
func (c *Constructor) Name() string { return c.name }

// Config returns a copy of the constructor configuration.
func (c *Constructor) Config() Config { return c.cfg }

// Prototype returns the behaviour table.
func (c *Constructor) Prototype() *Prototype { return c.proto }

// Clock returns the sequencer stamping timeline events.
func (c *Constructor) Clock() Sequencer { return c.clock }

// Capabilities returns applied capability names in the order they were applied.
func (c *Constructor) Capabilities() []string {
	c.composeMu.Lock()
	defer c.composeMu.Unlock()
	out := make([]string, len(c.appliedOrder))
	copy(out, c.appliedOrder)
	return out
}

// Composed reports whether every standard capability has been applied.
func (c *Constructor) Composed() bool {
	c.composeMu.Lock()
	defer c.composeMu.Unlock()
	for _, capability := range Capabilities() {
		if !c.applied[capability.Name] {
			return false
		}
	}
	return true
}

// Define adds a method to the behaviour table. Methods defined while a
// capability is being applied are attributed to it; all others to "plugin".
// Existing methods are never replaced.
func (c *Constructor) Define(name string, m Method) error {
	source := "plugin"
	if p := c.applying.Load(); p != nil {
		source = *p
	}
	return c.proto.define(name, source, m)
}

func (c *Constructor) mustDefine(name string, m Method) {
	if err := c.Define(name, m); err != nil {
		panic(err)
	}
}

// Mixin merges opts into the options every later instance starts from.
func (c *Constructor) Mixin(opts Options) *Constructor {
	c.globalMu.Lock()
	defer c.globalMu.Unlock()
	c.global = mergeOptions(c.global, opts)
	return c
}

func (c *Constructor) globalOptions() Options {
	c.globalMu.RLock()
	defer c.globalMu.RUnlock()
	return c.global
}

// Use installs p unless it was installed before, forwarding args after the
// constructor. It returns c so calls can be chained:
//
//	if _, err := ctor.Use(a); err != nil { ... }
//
// A plugin whose body fails is not recorded and the error is returned as-is.
func (c *Constructor) Use(p any, args ...any) (*Constructor, error) {
	if err := c.registry().Use(c, p, args...); err != nil {
		return c, err
	}
	return c, nil
}

// MustUse is like Use but panics on error.
func (c *Constructor) MustUse(p any, args ...any) *Constructor {
	if _, err := c.Use(p, args...); err != nil {
		panic(err)
	}
	return c
}

// Plugins returns installed plugins in installation order.
func (c *Constructor) Plugins() []any {
	return c.registry().Installed()
}

// HasPlugin reports whether p is installed.
func (c *Constructor) HasPlugin(p any) bool {
	return c.registry().Has(p)
}

// registry creates the plugin registry on first use.
func (c *Constructor) registry() *plugin.Registry[*Constructor] {
	c.pluginsOnce.Do(func() {
		c.plugins = plugin.NewRegistry[*Constructor](
			plugin.WithLogger(c.cfg.Logger),
			plugin.WithInstallHook(func(p any, kind plugin.Kind) {
				c.record(ir.EventPlugin, nil, pluginName(p), ir.Array{ir.String(kind.String())})
			}),
		)
	})
	return c.plugins
}

// Named plugins report their own name in the timeline.
type Named interface {
	PluginName() string
}

func pluginName(p any) string {
	if n, ok := p.(Named); ok {
		return n.PluginName()
	}
	return fmt.Sprintf("%T", p)
}

// New creates and initialises a component.
func (c *Constructor) New(opts Options) *Component {
	vm := &Component{ctor: c, order: c.order.Add(1)}
	if _, err := vm.Call("_init", opts); err != nil {
		c.handleError(err, vm, "init")
	}
	return vm
}

// Flush runs queued re-renders and nextTick callbacks until both queues are
// empty.
func (c *Constructor) Flush() {
	c.sched.flush(c)
}
