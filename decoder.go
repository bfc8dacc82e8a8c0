package detach

import "github.com/oy3o/detach/de"

// Decoder wraps a de.Decoder so that every visitor handed to it loses its
// zero-copy capability. All dispatch methods forward to the identically
// named method on the wrapped decoder, passing names, field lists and
// arities through unchanged and wrapping only the visitor argument. The
// adapter holds no state beyond the wrapped decoder and introduces no error
// values of its own.
type Decoder struct {
	d de.Decoder
}

var _ de.Decoder = Decoder{}

// NewDecoder wraps d. The returned decoder is single-use per value, exactly
// like the decoder it wraps.
func NewDecoder(d de.Decoder) Decoder { return Decoder{d: d} }

// Inner returns the wrapped decoder.
func (d Decoder) Inner() de.Decoder { return d.d }

func (d Decoder) DecodeAny(v de.Visitor) (any, error)  { return d.d.DecodeAny(visitor{v}) }
func (d Decoder) DecodeBool(v de.Visitor) (any, error) { return d.d.DecodeBool(visitor{v}) }

func (d Decoder) DecodeInt8(v de.Visitor) (any, error)  { return d.d.DecodeInt8(visitor{v}) }
func (d Decoder) DecodeInt16(v de.Visitor) (any, error) { return d.d.DecodeInt16(visitor{v}) }
func (d Decoder) DecodeInt32(v de.Visitor) (any, error) { return d.d.DecodeInt32(visitor{v}) }
func (d Decoder) DecodeInt64(v de.Visitor) (any, error) { return d.d.DecodeInt64(visitor{v}) }

func (d Decoder) DecodeUint8(v de.Visitor) (any, error)  { return d.d.DecodeUint8(visitor{v}) }
func (d Decoder) DecodeUint16(v de.Visitor) (any, error) { return d.d.DecodeUint16(visitor{v}) }
func (d Decoder) DecodeUint32(v de.Visitor) (any, error) { return d.d.DecodeUint32(visitor{v}) }
func (d Decoder) DecodeUint64(v de.Visitor) (any, error) { return d.d.DecodeUint64(visitor{v}) }

func (d Decoder) DecodeFloat32(v de.Visitor) (any, error) { return d.d.DecodeFloat32(visitor{v}) }
func (d Decoder) DecodeFloat64(v de.Visitor) (any, error) { return d.d.DecodeFloat64(visitor{v}) }

func (d Decoder) DecodeRune(v de.Visitor) (any, error) { return d.d.DecodeRune(visitor{v}) }

func (d Decoder) DecodeString(v de.Visitor) (any, error) { return d.d.DecodeString(visitor{v}) }
func (d Decoder) DecodeBytes(v de.Visitor) (any, error)  { return d.d.DecodeBytes(visitor{v}) }

func (d Decoder) DecodeOption(v de.Visitor) (any, error) { return d.d.DecodeOption(visitor{v}) }
func (d Decoder) DecodeUnit(v de.Visitor) (any, error)   { return d.d.DecodeUnit(visitor{v}) }

func (d Decoder) DecodeUnitStruct(name string, v de.Visitor) (any, error) {
	return d.d.DecodeUnitStruct(name, visitor{v})
}

func (d Decoder) DecodeNewtypeStruct(name string, v de.Visitor) (any, error) {
	return d.d.DecodeNewtypeStruct(name, visitor{v})
}

func (d Decoder) DecodeSeq(v de.Visitor) (any, error) { return d.d.DecodeSeq(visitor{v}) }

func (d Decoder) DecodeTuple(arity int, v de.Visitor) (any, error) {
	return d.d.DecodeTuple(arity, visitor{v})
}

func (d Decoder) DecodeTupleStruct(name string, arity int, v de.Visitor) (any, error) {
	return d.d.DecodeTupleStruct(name, arity, visitor{v})
}

func (d Decoder) DecodeMap(v de.Visitor) (any, error) { return d.d.DecodeMap(visitor{v}) }

func (d Decoder) DecodeStruct(name string, fields []string, v de.Visitor) (any, error) {
	return d.d.DecodeStruct(name, fields, visitor{v})
}

func (d Decoder) DecodeEnum(name string, variants []string, v de.Visitor) (any, error) {
	return d.d.DecodeEnum(name, variants, visitor{v})
}

func (d Decoder) DecodeIdentifier(v de.Visitor) (any, error) {
	return d.d.DecodeIdentifier(visitor{v})
}

func (d Decoder) DecodeIgnored(v de.Visitor) (any, error) { return d.d.DecodeIgnored(visitor{v}) }

// IsHumanReadable reports the wrapped decoder's format property unchanged;
// it has nothing to do with ownership.
func (d Decoder) IsHumanReadable() bool { return d.d.IsHumanReadable() }
