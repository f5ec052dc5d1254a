package shared

import "sync/atomic"

// Once returns a wrapper that invokes fn on its first call only.
//
// The called flag is set before fn runs, so a re-entrant call made from inside
// fn is a no-op, and a panicking fn is still considered called. Every later
// call does nothing and returns nothing, regardless of its arguments.
//
// Unlike sync.Once, later callers do not wait for the first call to finish.
func Once(fn func(args ...any)) func(args ...any) {
	var called atomic.Bool
	return func(args ...any) {
		if called.CompareAndSwap(false, true) {
			fn(args...)
		}
	}
}
