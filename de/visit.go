package de

import (
	"bytes"
	"strings"
)

// VisitBorrowedString delivers s to v through the zero-copy path when v
// implements BorrowedVisitor. s may alias the decoder's input buffer.
// Visitors that have not opted in receive a fresh copy through VisitString
// instead; the clone happens here, on the decoder's side of the call.
//
// This is the protocol's fallback rule. Decoders must route every borrowed
// string through this helper rather than calling VisitBorrowedString
// directly, so that omission of the BorrowedVisitor methods is always enough
// to keep borrowed references away from a visitor.
func VisitBorrowedString(v Visitor, s string) (any, error) {
	if bv, ok := v.(BorrowedVisitor); ok {
		return bv.VisitBorrowedString(s)
	}
	return v.VisitString(strings.Clone(s))
}

// VisitBorrowedBytes is the byte-sequence counterpart of
// VisitBorrowedString. b may alias the decoder's input buffer; visitors
// without BorrowedVisitor receive a fresh copy through VisitBytes.
func VisitBorrowedBytes(v Visitor, b []byte) (any, error) {
	if bv, ok := v.(BorrowedVisitor); ok {
		return bv.VisitBorrowedBytes(b)
	}
	return v.VisitBytes(bytes.Clone(b))
}

// Base provides a default implementation for every Visitor notification,
// each reporting an ErrUnexpected mismatch. Visitors embed Base and override
// the notifications their target type accepts.
type Base struct {
	// Expect is the description returned by Expecting. Leave empty for the
	// generic "a value".
	Expect string
}

var _ Visitor = Base{}

func (b Base) Expecting() string {
	if b.Expect == "" {
		return "a value"
	}
	return b.Expect
}

func (b Base) VisitBool(bool) (any, error)    { return nil, Unexpected(b, "a boolean") }
func (b Base) VisitInt8(int8) (any, error)    { return nil, Unexpected(b, "an integer") }
func (b Base) VisitInt16(int16) (any, error)  { return nil, Unexpected(b, "an integer") }
func (b Base) VisitInt32(int32) (any, error)  { return nil, Unexpected(b, "an integer") }
func (b Base) VisitInt64(int64) (any, error)  { return nil, Unexpected(b, "an integer") }
func (b Base) VisitUint8(uint8) (any, error)  { return nil, Unexpected(b, "an unsigned integer") }
func (b Base) VisitUint16(uint16) (any, error) {
	return nil, Unexpected(b, "an unsigned integer")
}
func (b Base) VisitUint32(uint32) (any, error) {
	return nil, Unexpected(b, "an unsigned integer")
}
func (b Base) VisitUint64(uint64) (any, error) {
	return nil, Unexpected(b, "an unsigned integer")
}
func (b Base) VisitFloat32(float32) (any, error) { return nil, Unexpected(b, "a float") }
func (b Base) VisitFloat64(float64) (any, error) { return nil, Unexpected(b, "a float") }
func (b Base) VisitRune(rune) (any, error)       { return nil, Unexpected(b, "a character") }
func (b Base) VisitString(string) (any, error)   { return nil, Unexpected(b, "a string") }
func (b Base) VisitBytes([]byte) (any, error)    { return nil, Unexpected(b, "a byte sequence") }
func (b Base) VisitNone() (any, error)           { return nil, Unexpected(b, "an absent option") }
func (b Base) VisitSome(Decoder) (any, error)    { return nil, Unexpected(b, "a present option") }
func (b Base) VisitUnit() (any, error)           { return nil, Unexpected(b, "a unit") }
func (b Base) VisitNewtype(d Decoder) (any, error) {
	return nil, Unexpected(b, "a newtype wrapper")
}
func (b Base) VisitSeq(SeqAccess) (any, error)   { return nil, Unexpected(b, "a sequence") }
func (b Base) VisitMap(MapAccess) (any, error)   { return nil, Unexpected(b, "a map") }
func (b Base) VisitEnum(EnumAccess) (any, error) { return nil, Unexpected(b, "an enum") }
