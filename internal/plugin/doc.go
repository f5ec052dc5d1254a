// Package plugin implements install-once plugin registration.
//
// A Registry belongs to exactly one target (a core.Constructor in practice)
// and remembers every plugin reference ever passed to Use. Registration is
// permanent: there is no unregistration.
//
// Plugin shapes are resolved once per call into a tagged Kind:
//
//	KindInstaller  value with Install(target, args...) error
//	KindFunc       plugin.Func[T], func(T, ...any) error or func(T, ...any)
//	KindMalformed  anything else, including nil
//
// Malformed plugins are accepted silently and marked installed, so a later
// Use with the same reference is a no-op. This is a compatibility contract,
// not an oversight.
//
// Identity is by reference: pointers, maps and channels by address, funcs by
// closure, comparable values by ==. Non-comparable values (slices aside)
// never match a previous registration.
package plugin
