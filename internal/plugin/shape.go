package plugin

import "fmt"

// Kind is the resolved shape of a plugin reference.
type Kind int

const (
	// KindMalformed is neither an Installer nor a callable. Accepted, never invoked.
	KindMalformed Kind = iota
	// KindInstaller exposes an Install method.
	KindInstaller
	// KindFunc is itself callable.
	KindFunc
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindInstaller:
		return "installer"
	case KindFunc:
		return "func"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Installer is a plugin that exposes an install capability.
// target is always the first argument; args are the extra Use arguments.
type Installer[T any] interface {
	Install(target T, args ...any) error
}

// Func is a plugin that is itself callable.
type Func[T any] func(target T, args ...any) error

// Shape is the tagged variant of a plugin reference.
type Shape[T any] struct {
	Kind    Kind
	install func(target T, args ...any) error
}

// Resolve inspects p once and returns its shape. An Install method wins over
// p being callable.
func Resolve[T any](p any) Shape[T] {
	switch v := p.(type) {
	case Installer[T]:
		return Shape[T]{Kind: KindInstaller, install: v.Install}
	case Func[T]:
		if v != nil {
			return Shape[T]{Kind: KindFunc, install: v}
		}
	case func(T, ...any) error:
		if v != nil {
			return Shape[T]{Kind: KindFunc, install: v}
		}
	case func(T, ...any):
		if v != nil {
			return Shape[T]{Kind: KindFunc, install: func(target T, args ...any) error {
				v(target, args...)
				return nil
			}}
		}
	}
	return Shape[T]{Kind: KindMalformed}
}

// Invoke runs the plugin body. Malformed shapes do nothing.
func (s Shape[T]) Invoke(target T, args ...any) error {
	if s.install == nil {
		return nil
	}
	return s.install(target, args...)
}
