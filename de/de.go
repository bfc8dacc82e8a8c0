// Package de defines the structured decoding protocol: a push-style contract
// in which a Decoder inspects serialized input and drives a Visitor through
// notifications describing the shape it found. Decode logic is written once
// per target type as a DecodeFunc and works with every Decoder implementation.
//
// Variable-length data (strings, byte sequences) can be delivered two ways:
// an owned notification (VisitString, VisitBytes) hands the visitor a freshly
// allocated value, while the zero-copy notifications on BorrowedVisitor hand
// it a reference that may alias the decoder's input buffer. Decoders deliver
// borrowed data through VisitBorrowedString/VisitBorrowedBytes, which fall
// back to the owned notification (cloning first) when the visitor does not
// implement BorrowedVisitor.
package de

// Decoder drives decoding of a single value from some serialized input.
// Each Decode method is a hint about the shape the caller expects; the
// decoder dispatches on the input's actual shape and notifies the visitor.
// A Decoder is single-use per value and is not safe for concurrent use.
type Decoder interface {
	// DecodeAny decodes whatever shape the input holds next.
	DecodeAny(v Visitor) (any, error)

	DecodeBool(v Visitor) (any, error)

	DecodeInt8(v Visitor) (any, error)
	DecodeInt16(v Visitor) (any, error)
	DecodeInt32(v Visitor) (any, error)
	DecodeInt64(v Visitor) (any, error)

	DecodeUint8(v Visitor) (any, error)
	DecodeUint16(v Visitor) (any, error)
	DecodeUint32(v Visitor) (any, error)
	DecodeUint64(v Visitor) (any, error)

	DecodeFloat32(v Visitor) (any, error)
	DecodeFloat64(v Visitor) (any, error)

	DecodeRune(v Visitor) (any, error)

	DecodeString(v Visitor) (any, error)
	DecodeBytes(v Visitor) (any, error)

	DecodeOption(v Visitor) (any, error)
	DecodeUnit(v Visitor) (any, error)
	DecodeUnitStruct(name string, v Visitor) (any, error)
	DecodeNewtypeStruct(name string, v Visitor) (any, error)
	DecodeSeq(v Visitor) (any, error)
	DecodeTuple(arity int, v Visitor) (any, error)
	DecodeTupleStruct(name string, arity int, v Visitor) (any, error)
	DecodeMap(v Visitor) (any, error)
	DecodeStruct(name string, fields []string, v Visitor) (any, error)
	DecodeEnum(name string, variants []string, v Visitor) (any, error)

	// DecodeIdentifier decodes a struct field name or enum variant name.
	DecodeIdentifier(v Visitor) (any, error)

	// DecodeIgnored decodes and discards one value of any shape.
	DecodeIgnored(v Visitor) (any, error)

	// IsHumanReadable reports whether the decoder's format is meant for
	// human consumption (affects how some types choose to decode).
	IsHumanReadable() bool
}

// Visitor receives shape notifications from a Decoder and builds the decoded
// value. Implementations usually embed Base and override only the
// notifications their target type accepts.
type Visitor interface {
	// Expecting describes what the visitor can accept, for error messages.
	// E.g. "a string" or "a map of string to integer".
	Expecting() string

	VisitBool(b bool) (any, error)

	VisitInt8(n int8) (any, error)
	VisitInt16(n int16) (any, error)
	VisitInt32(n int32) (any, error)
	VisitInt64(n int64) (any, error)

	VisitUint8(n uint8) (any, error)
	VisitUint16(n uint16) (any, error)
	VisitUint32(n uint32) (any, error)
	VisitUint64(n uint64) (any, error)

	VisitFloat32(f float32) (any, error)
	VisitFloat64(f float64) (any, error)

	VisitRune(r rune) (any, error)

	// VisitString receives an owned string, independent of the input buffer.
	VisitString(s string) (any, error)

	// VisitBytes receives an owned byte slice. The caller relinquishes the
	// slice; the visitor may retain it without copying.
	VisitBytes(b []byte) (any, error)

	VisitNone() (any, error)

	// VisitSome receives a decoder positioned at the present option's value.
	VisitSome(d Decoder) (any, error)

	VisitUnit() (any, error)

	// VisitNewtype receives a decoder positioned at a newtype wrapper's
	// inner value.
	VisitNewtype(d Decoder) (any, error)

	VisitSeq(a SeqAccess) (any, error)
	VisitMap(a MapAccess) (any, error)
	VisitEnum(a EnumAccess) (any, error)
}

// BorrowedVisitor is the zero-copy extension of Visitor. The string and byte
// slice arguments may alias the decoder's input buffer and are only valid
// while that buffer is alive and unmodified.
//
// Decoders must never call these methods directly; they go through
// VisitBorrowedString and VisitBorrowedBytes, which clone and fall back to
// the owned notifications when the visitor has not opted in.
type BorrowedVisitor interface {
	Visitor

	VisitBorrowedString(s string) (any, error)
	VisitBorrowedBytes(b []byte) (any, error)
}

// SeqAccess is the cursor a visitor receives for a sequence. It is valid only
// for the duration of the VisitSeq call that produced it.
type SeqAccess interface {
	// NextElement decodes the next element using seed. It reports ok=false
	// when the sequence is exhausted.
	NextElement(seed Seed) (v any, ok bool, err error)

	// SizeHint returns the number of remaining elements, or -1 if unknown.
	SizeHint() int
}

// MapAccess is the cursor a visitor receives for a map. Keys and values must
// be pulled alternately, key first.
type MapAccess interface {
	// NextKey decodes the next key using seed. It reports ok=false when the
	// map is exhausted.
	NextKey(seed Seed) (k any, ok bool, err error)

	// NextValue decodes the value for the key returned by the preceding
	// NextKey call.
	NextValue(seed Seed) (v any, err error)

	// NextEntry decodes the next key/value pair in one step.
	NextEntry(kseed, vseed Seed) (k, v any, ok bool, err error)

	// SizeHint returns the number of remaining entries, or -1 if unknown.
	SizeHint() int
}

// EnumAccess is the cursor a visitor receives for an enum value.
type EnumAccess interface {
	// Variant decodes which variant was selected using seed and returns a
	// cursor for the variant's payload.
	Variant(seed Seed) (v any, va VariantAccess, err error)
}

// VariantAccess decodes the payload of the variant identified by
// EnumAccess.Variant. Exactly one of its methods is called, matching the
// variant's payload shape.
type VariantAccess interface {
	// UnitVariant consumes a payload-less variant.
	UnitVariant() error

	// NewtypeVariant decodes a single-value payload using seed.
	NewtypeVariant(seed Seed) (any, error)

	// TupleVariant decodes a fixed-arity payload through v.
	TupleVariant(arity int, v Visitor) (any, error)

	// StructVariant decodes a named-field payload through v.
	StructVariant(fields []string, v Visitor) (any, error)
}

// Seed is a one-shot continuation representing a pending decode of the next
// value. It is consumed by exactly one DecodeValue call.
type Seed interface {
	DecodeValue(d Decoder) (any, error)
}

// DecodeFunc is decode logic for one target type: given a decoder positioned
// at a value, it produces the decoded value or the decoder's error. It is the
// function form of Seed.
type DecodeFunc func(d Decoder) (any, error)

// DecodeValue implements Seed, making every DecodeFunc usable as a seed.
func (fn DecodeFunc) DecodeValue(d Decoder) (any, error) { return fn(d) }

var _ Seed = (DecodeFunc)(nil)

// FuncSeed adapts fn into a Seed. Kept for call sites that want the
// conversion to be visible; DecodeFunc itself already implements Seed.
func FuncSeed(fn DecodeFunc) Seed { return fn }
