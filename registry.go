package detach

import (
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/oy3o/detach/de"
)

// funcCache maps a target type to its decode function. A concurrent map
// keeps Register/Unmarshal safe to call from multiple goroutines without a
// global mutex.
var funcCache = xsync.NewMap[reflect.Type, de.DecodeFunc]()

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// Register associates fn as the decode logic for T, replacing any previous
// registration. The basic Go types, de.Str, de.Bytes and any are registered
// out of the box.
func Register[T any](fn de.DecodeFunc) {
	funcCache.Store(typeOf[T](), fn)
}

// Unmarshal decodes a fully owned T from d using T's registered decode
// function. It is shorthand for Decode[T] with the registry lookup done for
// the caller.
func Unmarshal[T any](d de.Decoder) (T, error) {
	fn, ok := funcCache.Load(typeOf[T]())
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrNotRegistered, typeOf[T]())
	}
	return Decode[T](d, fn)
}

func init() {
	Register[bool](de.BoolFunc)
	Register[string](de.StringFunc)
	Register[[]byte](de.BytesFunc)

	Register[int8](de.IntFunc[int8]())
	Register[int16](de.IntFunc[int16]())
	Register[int32](de.IntFunc[int32]())
	Register[int64](de.IntFunc[int64]())
	Register[int](de.IntFunc[int]())

	Register[uint8](de.UintFunc[uint8]())
	Register[uint16](de.UintFunc[uint16]())
	Register[uint32](de.UintFunc[uint32]())
	Register[uint64](de.UintFunc[uint64]())
	Register[uint](de.UintFunc[uint]())

	Register[float32](de.FloatFunc[float32]())
	Register[float64](de.FloatFunc[float64]())

	Register[de.Str](de.StrFunc)
	Register[de.Bytes](de.BytesValueFunc)
	Register[any](de.AnyFunc)
}
