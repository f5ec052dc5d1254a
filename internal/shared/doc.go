// Package shared provides the generic primitives every other facet package
// depends on for correctness.
//
// This package imports nothing internal. The capabilities in internal/core,
// the plugin registry and the manifest loader all build on it.
//
// Key primitives:
//   - MakeClassifier: set-membership predicate over a comma-separated list
//   - Cached: memoize a pure single-string-argument function
//   - LooseEqual / LooseIndexOf: structural, string-coercive equality
//   - Once: idempotent invocation
//   - ToSlice: array-like coercion
//   - Camelize / Capitalize / Hyphenate: memoized string-case transforms
//
// Caches and classifiers are process-scoped and never evicted. Correctness of
// Cached depends on the wrapped function being pure.
package shared
