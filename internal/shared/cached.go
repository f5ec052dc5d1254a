package shared

import "sync"

// Cached wraps a pure single-string-argument function with a private cache.
//
// Each distinct argument is computed at most once per winning writer and the
// result is kept for the lifetime of the returned function. There is no
// eviction or invalidation.
//
// Thread-safety: the cache map is guarded by a mutex, but fn runs outside the
// lock. Two goroutines racing on the same new argument may both call fn; the
// first stored result wins and is returned to both.
func Cached[T any](fn func(string) T) func(string) T {
	var mu sync.Mutex
	cache := make(map[string]T)

	return func(s string) T {
		mu.Lock()
		hit, ok := cache[s]
		mu.Unlock()
		if ok {
			return hit
		}

		v := fn(s)

		mu.Lock()
		defer mu.Unlock()
		if prev, ok := cache[s]; ok {
			return prev
		}
		cache[s] = v
		return v
	}
}
