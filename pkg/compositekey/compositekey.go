// Package compositekey derives a stable cache key from a variadic list of
// arbitrary values.
package compositekey

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/delaneyj/hookparty/pkg/deps"
)

// Key addresses a cache entry by the identities of a dependency list.
type Key uint64

// Func derives a Key from its arguments. Two argument lists produce the same
// Key when they have the same length and every positional pair is the same
// dependency in the sense of [deps.Equal].
type Func func(args ...any) Key

// New returns a Func with its own scratch state. A Func is not safe for
// concurrent use.
func New() Func {
	d := xxhash.New()
	var buf [8]byte
	writeInt := func(n uint64) {
		binary.LittleEndian.PutUint64(buf[:], n)
		d.Write(buf[:])
	}
	writeString := func(s string) {
		writeInt(uint64(len(s)))
		d.WriteString(s)
	}

	return func(args ...any) Key {
		d.Reset()
		writeInt(uint64(len(args)))
		for _, arg := range args {
			id := deps.Identity(arg)
			if id == nil {
				writeString("<nil>")
				continue
			}
			writeString(reflect.TypeOf(arg).String())
			switch v := id.(type) {
			case string:
				writeString(v)
			case bool:
				if v {
					writeInt(1)
				} else {
					writeInt(0)
				}
			case int:
				writeInt(uint64(v))
			case int64:
				writeInt(uint64(v))
			case uint64:
				writeInt(v)
			case float64:
				writeInt(math.Float64bits(v))
			default:
				rv := reflect.ValueOf(v)
				switch rv.Kind() {
				case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
					writeInt(uint64(rv.Pointer()))
				default:
					// nested pointers print as addresses under %#v.
					writeString(fmt.Sprintf("%#v", v))
				}
			}
		}
		return Key(d.Sum64())
	}
}
