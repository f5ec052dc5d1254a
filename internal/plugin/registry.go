package plugin

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/roach88/facet/internal/shared"
)

type entryState int

const (
	stateInstalling entryState = iota + 1
	stateInstalled
)

// InstallHook observes every successful registration, malformed ones included.
type InstallHook func(p any, kind Kind)

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	onInstall InstallHook
}

// WithLogger sets the registry logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithInstallHook registers a callback run after each registration.
func WithInstallHook(fn InstallHook) Option {
	return func(o *options) {
		o.onInstall = fn
	}
}

// Registry is the ordered, append-only list of plugins installed on one
// target.
//
// Thread-safety: the index is guarded by a mutex that is never held while a
// plugin body runs, so a plugin may register other plugins from Install.
// A concurrent Use of a plugin that is still installing returns immediately.
type Registry[T any] struct {
	mu        sync.Mutex
	installed []any
	index     map[any]entryState
	opts      options
}

// NewRegistry creates an empty registry.
func NewRegistry[T any](opts ...Option) *Registry[T] {
	r := &Registry[T]{
		index: make(map[any]entryState),
		opts:  options{logger: slog.Default()},
	}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

// Use installs p on target unless p was registered before.
//
// The plugin body receives target first, followed by args. An error returned
// by the body is passed back unmodified and p is not marked installed; a
// panic propagates the same way. Malformed plugins are never invoked but are
// marked installed.
func (r *Registry[T]) Use(target T, p any, args ...any) error {
	key, keyed := identityOf(p)

	r.mu.Lock()
	if keyed {
		if _, seen := r.index[key]; seen {
			r.mu.Unlock()
			return nil
		}
		r.index[key] = stateInstalling
	}
	r.mu.Unlock()

	shape := Resolve[T](p)
	completed := false
	defer func() {
		// A failed or panicking body leaves p unregistered so it can be retried.
		if !completed && keyed {
			r.mu.Lock()
			delete(r.index, key)
			r.mu.Unlock()
		}
	}()

	if shape.Kind == KindMalformed {
		r.opts.logger.Debug("plugin accepted without install capability",
			"plugin_type", fmt.Sprintf("%T", p))
	}

	forwarded := shared.ToSlice[any](shared.Slice[any](args), 0)
	if err := shape.Invoke(target, forwarded...); err != nil {
		return err
	}
	completed = true

	r.mu.Lock()
	if keyed {
		r.index[key] = stateInstalled
	}
	r.installed = append(r.installed, p)
	r.mu.Unlock()

	if r.opts.onInstall != nil {
		r.opts.onInstall(p, shape.Kind)
	}
	return nil
}

// Has reports whether p is registered (or currently installing).
//
// Values without an identity (non-comparable structs, empty slices) are
// never deduplicated by Use; for them Has reports whether an equal value
// sits in Installed.
func (r *Registry[T]) Has(p any) bool {
	key, keyed := identityOf(p)
	r.mu.Lock()
	defer r.mu.Unlock()
	if keyed {
		_, ok := r.index[key]
		return ok
	}
	for _, q := range r.installed {
		if reflect.DeepEqual(p, q) {
			return true
		}
	}
	return false
}

// Installed returns the registered plugins in installation order.
func (r *Registry[T]) Installed() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]any, len(r.installed))
	copy(out, r.installed)
	return out
}

// Len returns the number of registered plugins.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.installed)
}
