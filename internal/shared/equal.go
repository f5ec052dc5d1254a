package shared

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
	"unsafe"
)

// Nuller is implemented by values that stand for an explicit null, as
// opposed to an absent (nil) value.
type Nuller interface {
	IsNull() bool
}

var timeType = reflect.TypeOf(time.Time{})

// LooseEqual reports whether a and b are loosely equal.
//
// Rules, in order:
//   - identical values (same comparable value, same map, same slice window,
//     same pointer) are equal;
//   - two composites are compared by shape: sequences (slices, arrays)
//     element-wise in order, dates (time.Time) by instant, mappings
//     (string-keyed maps, structs) by identical key sets and loosely equal
//     values; any other pairing of shapes is unequal;
//   - two primitives are equal iff their string forms match, so 1 and "1" are
//     equal; nil reads as "undefined" and an explicit null as "null";
//   - a composite never equals a primitive.
//
// Structs compare by their exported fields only. A struct whose fields are
// all unexported (big.Int, sync.Mutex) has no loose form: it equals only an
// identical value.
//
// A panic raised while traversing (for example reading an unexported field)
// is recovered and reported as false. So is a cycle: two distinct
// self-referencing values are unequal, a value is still equal to itself.
func LooseEqual(a, b any) bool {
	var w walk
	return w.equal(a, b)
}

// walk carries the pairs of references on the current traversal path.
type walk struct {
	path map[visit]struct{}
}

type visit struct {
	a, b   unsafe.Pointer
	ta, tb reflect.Type
	n      int
}

// enter marks the pair (a, b) as being compared. It reports false when the
// pair is already on the path, i.e. the traversal has looped.
func (w *walk) enter(a, b any) (key visit, tracked, ok bool) {
	pa, okA := refPointer(a)
	pb, okB := refPointer(b)
	if !okA || !okB {
		return visit{}, false, true
	}
	key = visit{a: pa, b: pb, ta: reflect.TypeOf(a), tb: reflect.TypeOf(b)}
	if reflect.ValueOf(a).Kind() == reflect.Slice {
		key.n = reflect.ValueOf(a).Len()
	}
	if _, seen := w.path[key]; seen {
		return key, false, false
	}
	if w.path == nil {
		w.path = make(map[visit]struct{})
	}
	w.path[key] = struct{}{}
	return key, true, true
}

// refPointer returns the address behind maps, non-empty slices and pointers,
// the only kinds through which a value can reach itself.
func refPointer(x any) (unsafe.Pointer, bool) {
	if x == nil {
		return nil, false
	}
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Map, reflect.Pointer:
		if v.IsNil() {
			return nil, false
		}
	case reflect.Slice:
		if v.Len() == 0 {
			return nil, false
		}
	default:
		return nil, false
	}
	return v.UnsafePointer(), true
}

func (w *walk) equal(a, b any) bool {
	if identical(a, b) {
		return true
	}

	va, vb := deref(reflect.ValueOf(a)), deref(reflect.ValueOf(b))
	compositeA, compositeB := isComposite(a, va), isComposite(b, vb)

	switch {
	case compositeA && compositeB:
		key, tracked, ok := w.enter(a, b)
		if !ok {
			return false
		}
		if tracked {
			defer delete(w.path, key)
		}
		return w.compositeEqual(va, vb)
	case !compositeA && !compositeB:
		return primitiveString(a, va) == primitiveString(b, vb)
	default:
		return false
	}
}

// LooseIndexOf returns the first index i such that LooseEqual(list[i], v),
// or -1.
func LooseIndexOf[T any](list []T, v any) int {
	for i := range list {
		if LooseEqual(list[i], v) {
			return i
		}
	}
	return -1
}

func identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		// Comparable types can still hold non-comparable dynamic values
		// (an interface-typed struct field); treat that panic as "not identical".
		defer func() { _ = recover() }()
		return a == b
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.Len() == vb.Len() && va.UnsafePointer() == vb.UnsafePointer()
	}
	return false
}

// deref unwraps interfaces and non-nil pointers.
func deref(v reflect.Value) reflect.Value {
	for v.IsValid() {
		switch v.Kind() {
		case reflect.Interface, reflect.Pointer:
			if v.IsNil() {
				return v
			}
			v = v.Elem()
		default:
			return v
		}
	}
	return v
}

func isNull(raw any, v reflect.Value) bool {
	if n, ok := raw.(Nuller); ok && n.IsNull() {
		return true
	}
	if v.IsValid() && v.CanInterface() {
		if n, ok := v.Interface().(Nuller); ok && n.IsNull() {
			return true
		}
	}
	return v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil()
}

func isComposite(raw any, v reflect.Value) bool {
	if !v.IsValid() || isNull(raw, v) {
		return false
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return true
	}
	return false
}

func isSequence(v reflect.Value) bool {
	return v.Kind() == reflect.Slice || v.Kind() == reflect.Array
}

func isDate(v reflect.Value) bool {
	return v.Type() == timeType
}

func (w *walk) compositeEqual(va, vb reflect.Value) (eq bool) {
	defer func() {
		if r := recover(); r != nil {
			eq = false
		}
	}()

	seqA, seqB := isSequence(va), isSequence(vb)
	switch {
	case seqA && seqB:
		if va.Len() != vb.Len() {
			return false
		}
		for i := 0; i < va.Len(); i++ {
			if !w.equal(va.Index(i).Interface(), vb.Index(i).Interface()) {
				return false
			}
		}
		return true

	case isDate(va) && isDate(vb):
		return va.Interface().(time.Time).Equal(vb.Interface().(time.Time))

	case !seqA && !seqB && !isDate(va) && !isDate(vb):
		if opaque(va) || opaque(vb) {
			return false
		}
		fa, fb := fields(va), fields(vb)
		if len(fa) != len(fb) {
			return false
		}
		for k, x := range fa {
			y, ok := fb[k]
			if !ok || !w.equal(x, y) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// opaque reports whether v is a struct with fields, none of them exported.
func opaque(v reflect.Value) bool {
	if v.Kind() != reflect.Struct {
		return false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			return false
		}
	}
	return t.NumField() > 0
}

// fields flattens a map or struct into key -> value. Map keys go through the
// primitive string form so map[int]T and map[string]T compare by key text.
func fields(v reflect.Value) map[string]any {
	switch v.Kind() {
	case reflect.Map:
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			k := iter.Key()
			out[primitiveString(k.Interface(), deref(k))] = iter.Value().Interface()
		}
		return out
	case reflect.Struct:
		t := v.Type()
		out := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			out[t.Field(i).Name] = v.Field(i).Interface()
		}
		return out
	}
	panic(fmt.Sprintf("shared: %s is not a mapping", v.Kind()))
}

// primitiveString is the string form used to compare two primitives.
func primitiveString(raw any, v reflect.Value) string {
	if raw == nil || !v.IsValid() {
		return "undefined"
	}
	if isNull(raw, v) {
		return "null"
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return FormatNumber(v.Float())
	}
	return fmt.Sprint(raw)
}
