package plugin

import (
	"reflect"
	"unsafe"
)

type refKey struct {
	typ reflect.Type
	ptr unsafe.Pointer
}

type sliceKey struct {
	typ reflect.Type
	ptr unsafe.Pointer
	len int
}

// identityOf returns the map key that identifies p by reference. ok is false
// when p has no stable identity, in which case it never matches anything.
func identityOf(p any) (key any, ok bool) {
	if p == nil {
		return nil, true
	}
	rv := reflect.ValueOf(p)
	switch rv.Kind() {
	case reflect.Func:
		return refKey{typ: rv.Type(), ptr: closurePointer(rv)}, true
	case reflect.Map:
		return refKey{typ: rv.Type(), ptr: rv.UnsafePointer()}, true
	case reflect.Slice:
		// Zero-capacity slices share the runtime's empty base address.
		if rv.Cap() == 0 {
			return nil, false
		}
		return sliceKey{typ: rv.Type(), ptr: rv.UnsafePointer(), len: rv.Len()}, true
	}
	if rv.Comparable() {
		return p, true
	}
	return nil, false
}

// closurePointer returns the address of the closure object behind a func
// value. Two func values share it only when they are the same closure (or
// the same top-level function), unlike reflect.Value.Pointer which returns
// the code address shared by every closure of one literal.
func closurePointer(fn reflect.Value) unsafe.Pointer {
	if fn.IsNil() {
		return nil
	}
	holder := reflect.New(fn.Type())
	holder.Elem().Set(fn)
	return *(*unsafe.Pointer)(holder.UnsafePointer())
}
