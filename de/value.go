package de

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Str is a borrow-polymorphic string value: either a view that may alias the
// decode input, or an independently owned copy. Which one a decode produces
// depends on whether the decoder took the zero-copy or the copying
// notification path.
type Str struct {
	s     string
	owned bool
}

// BorrowedStr wraps a string that may alias a decode input buffer.
func BorrowedStr(s string) Str { return Str{s: s} }

// OwnedStr wraps an independently owned string.
func OwnedStr(s string) Str { return Str{s: s, owned: true} }

// String returns the underlying string. For borrowed values it is only valid
// while the originating input buffer is alive and unmodified.
func (s Str) String() string { return s.s }

// Owned reports whether the value is independent of the decode input.
func (s Str) Owned() bool { return s.owned }

// Bytes is the byte-sequence counterpart of Str.
type Bytes struct {
	b     []byte
	owned bool
}

// BorrowedBytes wraps a slice that may alias a decode input buffer.
func BorrowedBytes(b []byte) Bytes { return Bytes{b: b} }

// OwnedBytes wraps an independently owned slice.
func OwnedBytes(b []byte) Bytes { return Bytes{b: b, owned: true} }

// Raw returns the underlying slice. For borrowed values it is only valid
// while the originating input buffer is alive and unmodified.
func (b Bytes) Raw() []byte { return b.b }

// Owned reports whether the value is independent of the decode input.
func (b Bytes) Owned() bool { return b.owned }

// View is a borrow-only byte view: it always aliases the decode input and
// has no owned representation. Decoding a View succeeds only when the
// decoder can take the zero-copy path; a copying notification is rejected
// with ErrUnexpected.
type View []byte

// MapEntry is one key/value pair produced by AnyFunc for map shapes.
// Entries preserve the input's order.
type MapEntry struct {
	Key   any
	Value any
}

// Variant pairs an enum variant identifier with its decoded payload.
type Variant struct {
	Name  any
	Value any
}

// --- Canonical decode functions ---

// BoolFunc decodes a boolean.
func BoolFunc(d Decoder) (any, error) {
	return d.DecodeBool(boolVisitor{Base{Expect: "a boolean"}})
}

// StringFunc decodes an owned string. The visitor takes no part in the
// zero-copy protocol, so the result never aliases the input.
func StringFunc(d Decoder) (any, error) {
	return d.DecodeString(stringVisitor{Base{Expect: "a string"}})
}

// BytesFunc decodes an owned byte slice.
func BytesFunc(d Decoder) (any, error) {
	return d.DecodeBytes(ownedBytesVisitor{Base{Expect: "a byte sequence"}})
}

// RuneFunc decodes a single character.
func RuneFunc(d Decoder) (any, error) {
	return d.DecodeRune(runeVisitor{Base{Expect: "a character"}})
}

// StrFunc decodes a borrow-polymorphic Str: borrowed when the decoder offers
// a zero-copy string, owned otherwise.
func StrFunc(d Decoder) (any, error) {
	return d.DecodeString(strVisitor{Base{Expect: "a string"}})
}

// BytesValueFunc decodes a borrow-polymorphic Bytes.
func BytesValueFunc(d Decoder) (any, error) {
	return d.DecodeBytes(bytesVisitor{Base{Expect: "a byte sequence"}})
}

// ViewFunc decodes a borrow-only View. It fails with ErrUnexpected whenever
// the decoder cannot hand out a reference into its input.
func ViewFunc(d Decoder) (any, error) {
	return d.DecodeBytes(viewVisitor{Base{Expect: "a borrowed byte view"}})
}

// AnyFunc decodes whatever shape the input holds into plain Go values:
// scalars at their native width, strings as Str, byte sequences as Bytes,
// sequences as []any, maps as []MapEntry, enums as Variant, absent options
// and units as nil. Ownership of every nested Str/Bytes reflects the
// notification path the decoder took for it.
func AnyFunc(d Decoder) (any, error) { return d.DecodeAny(anyVisitor{}) }

// IntFunc returns a decode function for a signed integer of type T. Inputs
// of any integer width are accepted; values that do not fit T fail with
// ErrOutOfRange.
func IntFunc[T constraints.Signed]() DecodeFunc {
	return func(d Decoder) (any, error) {
		return d.DecodeInt64(intVisitor[T]{Base{Expect: "an integer"}})
	}
}

// UintFunc returns a decode function for an unsigned integer of type T.
func UintFunc[T constraints.Unsigned]() DecodeFunc {
	return func(d Decoder) (any, error) {
		return d.DecodeUint64(uintVisitor[T]{Base{Expect: "an unsigned integer"}})
	}
}

// FloatFunc returns a decode function for a float of type T.
func FloatFunc[T constraints.Float]() DecodeFunc {
	return func(d Decoder) (any, error) {
		return d.DecodeFloat64(floatVisitor[T]{Base{Expect: "a float"}})
	}
}

// --- Visitors ---

type boolVisitor struct{ Base }

func (boolVisitor) VisitBool(b bool) (any, error) { return b, nil }

type stringVisitor struct{ Base }

func (stringVisitor) VisitString(s string) (any, error) { return s, nil }

type ownedBytesVisitor struct{ Base }

func (ownedBytesVisitor) VisitBytes(b []byte) (any, error) { return b, nil }

type runeVisitor struct{ Base }

func (runeVisitor) VisitRune(r rune) (any, error) { return r, nil }

type strVisitor struct{ Base }

var _ BorrowedVisitor = strVisitor{}

func (strVisitor) VisitString(s string) (any, error) { return OwnedStr(s), nil }
func (v strVisitor) VisitBorrowedString(s string) (any, error) {
	return BorrowedStr(s), nil
}
func (v strVisitor) VisitBorrowedBytes(b []byte) (any, error) {
	return nil, Unexpected(v, "a byte sequence")
}

type bytesVisitor struct{ Base }

var _ BorrowedVisitor = bytesVisitor{}

func (bytesVisitor) VisitBytes(b []byte) (any, error)  { return OwnedBytes(b), nil }
func (bytesVisitor) VisitString(s string) (any, error) { return OwnedBytes([]byte(s)), nil }
func (v bytesVisitor) VisitBorrowedBytes(b []byte) (any, error) {
	return BorrowedBytes(b), nil
}
func (v bytesVisitor) VisitBorrowedString(s string) (any, error) {
	return OwnedBytes([]byte(s)), nil
}

type viewVisitor struct{ Base }

var _ BorrowedVisitor = viewVisitor{}

func (v viewVisitor) VisitBorrowedBytes(b []byte) (any, error) {
	return View(b), nil
}
func (v viewVisitor) VisitBorrowedString(s string) (any, error) {
	return nil, Unexpected(v, "a string")
}

type intVisitor[T constraints.Signed] struct{ Base }

func (v intVisitor[T]) VisitInt8(n int8) (any, error)   { return v.signed(int64(n)) }
func (v intVisitor[T]) VisitInt16(n int16) (any, error) { return v.signed(int64(n)) }
func (v intVisitor[T]) VisitInt32(n int32) (any, error) { return v.signed(int64(n)) }
func (v intVisitor[T]) VisitInt64(n int64) (any, error) { return v.signed(n) }

func (v intVisitor[T]) VisitUint8(n uint8) (any, error)   { return v.unsigned(uint64(n)) }
func (v intVisitor[T]) VisitUint16(n uint16) (any, error) { return v.unsigned(uint64(n)) }
func (v intVisitor[T]) VisitUint32(n uint32) (any, error) { return v.unsigned(uint64(n)) }
func (v intVisitor[T]) VisitUint64(n uint64) (any, error) { return v.unsigned(n) }

func (intVisitor[T]) signed(n int64) (any, error) {
	t := T(n)
	if int64(t) != n {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return t, nil
}

func (v intVisitor[T]) unsigned(n uint64) (any, error) {
	if n > math.MaxInt64 {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return v.signed(int64(n))
}

type uintVisitor[T constraints.Unsigned] struct{ Base }

func (v uintVisitor[T]) VisitUint8(n uint8) (any, error)   { return v.unsigned(uint64(n)) }
func (v uintVisitor[T]) VisitUint16(n uint16) (any, error) { return v.unsigned(uint64(n)) }
func (v uintVisitor[T]) VisitUint32(n uint32) (any, error) { return v.unsigned(uint64(n)) }
func (v uintVisitor[T]) VisitUint64(n uint64) (any, error) { return v.unsigned(n) }

func (v uintVisitor[T]) VisitInt8(n int8) (any, error)   { return v.signed(int64(n)) }
func (v uintVisitor[T]) VisitInt16(n int16) (any, error) { return v.signed(int64(n)) }
func (v uintVisitor[T]) VisitInt32(n int32) (any, error) { return v.signed(int64(n)) }
func (v uintVisitor[T]) VisitInt64(n int64) (any, error) { return v.signed(n) }

func (uintVisitor[T]) unsigned(n uint64) (any, error) {
	t := T(n)
	if uint64(t) != n {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return t, nil
}

func (v uintVisitor[T]) signed(n int64) (any, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return v.unsigned(uint64(n))
}

type floatVisitor[T constraints.Float] struct{ Base }

func (floatVisitor[T]) VisitFloat32(f float32) (any, error) { return T(f), nil }
func (floatVisitor[T]) VisitFloat64(f float64) (any, error) { return T(f), nil }
func (floatVisitor[T]) VisitInt64(n int64) (any, error)     { return T(n), nil }
func (floatVisitor[T]) VisitUint64(n uint64) (any, error)   { return T(n), nil }

type anyVisitor struct{}

var _ BorrowedVisitor = anyVisitor{}

func (anyVisitor) Expecting() string { return "any value" }

func (anyVisitor) VisitBool(b bool) (any, error) { return b, nil }

func (anyVisitor) VisitInt8(n int8) (any, error)   { return n, nil }
func (anyVisitor) VisitInt16(n int16) (any, error) { return n, nil }
func (anyVisitor) VisitInt32(n int32) (any, error) { return n, nil }
func (anyVisitor) VisitInt64(n int64) (any, error) { return n, nil }

func (anyVisitor) VisitUint8(n uint8) (any, error)   { return n, nil }
func (anyVisitor) VisitUint16(n uint16) (any, error) { return n, nil }
func (anyVisitor) VisitUint32(n uint32) (any, error) { return n, nil }
func (anyVisitor) VisitUint64(n uint64) (any, error) { return n, nil }

func (anyVisitor) VisitFloat32(f float32) (any, error) { return f, nil }
func (anyVisitor) VisitFloat64(f float64) (any, error) { return f, nil }

func (anyVisitor) VisitRune(r rune) (any, error) { return r, nil }

func (anyVisitor) VisitString(s string) (any, error)         { return OwnedStr(s), nil }
func (anyVisitor) VisitBorrowedString(s string) (any, error) { return BorrowedStr(s), nil }
func (anyVisitor) VisitBytes(b []byte) (any, error)          { return OwnedBytes(b), nil }
func (anyVisitor) VisitBorrowedBytes(b []byte) (any, error)  { return BorrowedBytes(b), nil }

func (anyVisitor) VisitNone() (any, error) { return nil, nil }
func (anyVisitor) VisitUnit() (any, error) { return nil, nil }

func (anyVisitor) VisitSome(d Decoder) (any, error)    { return AnyFunc(d) }
func (anyVisitor) VisitNewtype(d Decoder) (any, error) { return AnyFunc(d) }

func (anyVisitor) VisitSeq(a SeqAccess) (any, error) {
	out := []any{}
	if n := a.SizeHint(); n > 0 {
		out = make([]any, 0, n)
	}
	for {
		v, ok, err := a.NextElement(DecodeFunc(AnyFunc))
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

func (anyVisitor) VisitMap(a MapAccess) (any, error) {
	out := []MapEntry{}
	if n := a.SizeHint(); n > 0 {
		out = make([]MapEntry, 0, n)
	}
	for {
		k, v, ok, err := a.NextEntry(DecodeFunc(AnyFunc), DecodeFunc(AnyFunc))
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, MapEntry{Key: k, Value: v})
	}
}

func (anyVisitor) VisitEnum(a EnumAccess) (any, error) {
	name, va, err := a.Variant(DecodeFunc(AnyFunc))
	if err != nil {
		return nil, err
	}
	payload, err := va.NewtypeVariant(DecodeFunc(AnyFunc))
	if err != nil {
		return nil, err
	}
	return Variant{Name: name, Value: payload}, nil
}
