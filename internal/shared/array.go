package shared

// ArrayLike is a sized, indexable value.
type ArrayLike[T any] interface {
	Len() int
	Index(i int) T
}

// Slice adapts a Go slice to ArrayLike.
type Slice[T any] []T

// Len returns the number of elements.
func (s Slice[T]) Len() int { return len(s) }

// Index returns the element at i.
func (s Slice[T]) Index(i int) T { return s[i] }

// ToSlice copies list[start:] into a new slice.
//
// start is clamped to [0, list.Len()]; a start past the end yields an empty,
// non-nil slice.
func ToSlice[T any](list ArrayLike[T], start int) []T {
	n := list.Len()
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	out := make([]T, n-start)
	for i := range out {
		out[i] = list.Index(i + start)
	}
	return out
}
