package detach

import (
	"fmt"

	"github.com/oy3o/detach/de"
)

// Owned holds a decode result that is guaranteed independent of the
// decoder's input buffer. It is the value produced by the decode functions
// returned from Func; Unwrap extracts the plain value.
type Owned[T any] struct {
	Value T
}

// Func returns a decode function equivalent to fn except that it decodes
// through the detaching adapter and boxes the result in Owned[T]. The
// wrapped function reports ErrTargetType when fn produces something other
// than a T.
func Func[T any](fn de.DecodeFunc) de.DecodeFunc {
	return func(d de.Decoder) (any, error) {
		v, err := fn(NewDecoder(d))
		if err != nil {
			return nil, err
		}
		t, ok := v.(T)
		if !ok && v != nil {
			return nil, fmt.Errorf("%w: got %T", ErrTargetType, v)
		}
		return Owned[T]{Value: t}, nil
	}
}

// Unwrap returns the plain value from an already-obtained Owned result.
func Unwrap[T any](o Owned[T]) T { return o.Value }

// Decode decodes one value from d using fn, with every zero-copy
// notification downgraded to its copying form for the entire decode tree.
// Errors from the underlying decoder and from fn are passed through
// unchanged.
func Decode[T any](d de.Decoder, fn de.DecodeFunc) (T, error) {
	var zero T
	if d == nil {
		return zero, de.ErrNilDecoder
	}
	v, err := Func[T](fn)(d)
	if err != nil {
		return zero, err
	}
	return Unwrap(v.(Owned[T])), nil
}
