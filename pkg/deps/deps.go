// Package deps compares hook dependency lists.
//
// Dependencies are compared element by element using identity rather than
// structural equality: two values match when they are the same value
// (comparable types), the same closure (funcs), or share the same backing
// storage (slices and maps).
package deps

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unsafe"
)

type funcIdentity struct {
	typ reflect.Type
	ptr unsafe.Pointer
}

type sliceIdentity struct {
	typ      reflect.Type
	ptr      uintptr
	len, cap int
}

type mapIdentity struct {
	typ reflect.Type
	ptr uintptr
}

type valueIdentity struct {
	typ  reflect.Type
	repr string
}

// Identity returns a comparable token for v such that Identity(a) ==
// Identity(b) exactly when a and b are the same dependency.
//
// Funcs are identified by their closure, so a func literal evaluated twice
// yields two identities while a func value that is passed around keeps one.
// Non-comparable values that carry no address of their own (for example a
// struct holding a slice) are identified by walking their fields, where each
// func, slice, map, pointer and channel contributes its own identity.
func Identity(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		// func values are pointer shaped, the interface data word is the closure.
		return funcIdentity{
			typ: rv.Type(),
			ptr: (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1],
		}
	case reflect.Slice:
		return sliceIdentity{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len(), cap: rv.Cap()}
	case reflect.Map:
		return mapIdentity{typ: rv.Type(), ptr: rv.Pointer()}
	}
	if rv.Comparable() {
		return v
	}
	root := reflect.New(rv.Type()).Elem()
	root.Set(rv)
	var b strings.Builder
	walk(&b, root)
	return valueIdentity{typ: rv.Type(), repr: b.String()}
}

// walk writes the identity of rv, which must be addressable.
func walk(b *strings.Builder, rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Func:
		fmt.Fprintf(b, "func(%p)", *(*unsafe.Pointer)(unsafe.Pointer(rv.UnsafeAddr())))
	case reflect.Slice:
		fmt.Fprintf(b, "slice(%#x,%d,%d)", rv.Pointer(), rv.Len(), rv.Cap())
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		fmt.Fprintf(b, "%s(%#x)", rv.Kind(), rv.Pointer())
	case reflect.Interface:
		if rv.IsNil() {
			b.WriteString("nil")
			return
		}
		elem := rv.Elem()
		inner := reflect.New(elem.Type()).Elem()
		inner.Set(elem)
		fmt.Fprintf(b, "%s:", elem.Type())
		walk(b, inner)
	case reflect.Struct:
		b.WriteByte('{')
		for i := range rv.NumField() {
			if i > 0 {
				b.WriteByte(',')
			}
			walk(b, exported(rv.Field(i)))
		}
		b.WriteByte('}')
	case reflect.Array:
		b.WriteByte('[')
		for i := range rv.Len() {
			if i > 0 {
				b.WriteByte(',')
			}
			walk(b, rv.Index(i))
		}
		b.WriteByte(']')
	case reflect.String:
		b.WriteString(strconv.Quote(rv.String()))
	default:
		fmt.Fprintf(b, "%#v", rv.Interface())
	}
}

// exported returns an addressable view of a struct field that may be read
// through Interface and Set, even when the field is unexported.
func exported(field reflect.Value) reflect.Value {
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
}

// Equal reports whether a and b are the same dependency.
func Equal(a, b any) bool {
	return Identity(a) == Identity(b)
}

// Match reports whether two dependency lists are equivalent: both empty (nil
// and empty are the same), or the same length with every positional pair
// Equal.
func Match(left, right []any) bool {
	if len(left) == 0 {
		return len(right) == 0
	}
	if len(left) != len(right) {
		return false
	}
	for i, v := range left {
		if !Equal(v, right[i]) {
			return false
		}
	}
	return true
}
