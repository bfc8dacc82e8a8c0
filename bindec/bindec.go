// Package bindec implements the de protocol over a compact self-describing
// binary format held in a byte slice. It is the module's borrow-capable
// decoder: strings and byte sequences are delivered through the zero-copy
// path as references into the input buffer, so visitors that opt in via
// de.BorrowedVisitor decode without copying, and visitors that do not are
// served fresh copies by the protocol's fallback rule.
//
// The format is one tag byte per value, uvarint lengths and counts, and
// big-endian fixed-width numbers. Byte sequences may optionally be stored
// zstd-compressed; decompressed output is freshly allocated and therefore
// always delivered through the owned notification.
package bindec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"unsafe"

	"github.com/klauspost/compress/zstd"

	"github.com/oy3o/detach/de"
)

// Order is the byte order of all fixed-width values in the format.
var Order = binary.BigEndian

// Value tags. One per shape; a value is its tag followed by its payload.
const (
	tagUnit byte = iota
	tagFalse
	tagTrue
	tagI8
	tagI16
	tagI32
	tagI64
	tagU8
	tagU16
	tagU32
	tagU64
	tagF32
	tagF64
	tagRune
	tagStr     // uvarint length + UTF-8 bytes
	tagBin     // uvarint length + raw bytes
	tagBinZ    // uvarint length + zstd frame
	tagNone
	tagSome    // followed by the present value
	tagSeq     // uvarint count + count values
	tagMap     // uvarint count + count key/value pairs
	tagVariant // identifier value + payload value
)

var (
	// ErrTruncated indicates the input ended before the value it
	// describes.
	ErrTruncated = errors.New("bindec: truncated input")

	// ErrUnknownTag indicates a tag byte outside the format.
	ErrUnknownTag = errors.New("bindec: unknown tag")

	// ErrTrailingData is returned by Decode when bytes remain after the
	// decoded value, indicating a malformed or concatenated payload.
	ErrTrailingData = errors.New("bindec: trailing data after value")

	// ErrLength indicates a length or count prefix that cannot be
	// satisfied by the remaining input.
	ErrLength = errors.New("bindec: invalid length prefix")

	// ErrCompression indicates a compressed payload was found but the
	// decoder was built without WithCompression.
	ErrCompression = errors.New("bindec: compressed payload with compression disabled")

	// ErrVariantPayload indicates a unit variant carried a payload.
	ErrVariantPayload = errors.New("bindec: unexpected payload for unit variant")
)

// zstdReader is shared: zstd.Decoder.DecodeAll is safe for concurrent use.
var zstdReader = sync.OnceValues(func() (*zstd.Decoder, error) {
	return zstd.NewReader(nil)
})

// Decoder decodes one value from a byte slice. It never writes to the
// slice; borrowed results remain valid only while the caller keeps the
// slice alive and unmodified. A Decoder is single-use and not safe for
// concurrent use.
type Decoder struct {
	buf  []byte
	pos  int
	zstd bool
}

var _ de.Decoder = (*Decoder)(nil)

// NewDecoder returns a decoder positioned at the start of buf.
func NewDecoder(buf []byte) *Decoder { return &Decoder{buf: buf} }

// WithCompression enables zstd-compressed byte payloads and returns the
// decoder for chaining.
func (d *Decoder) WithCompression() *Decoder {
	d.zstd = true
	return d
}

// Available returns the number of unread bytes.
func (d *Decoder) Available() int { return len(d.buf) - d.pos }

func (d *Decoder) readByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, ErrTruncated
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// readN returns the next n input bytes without copying.
func (d *Decoder) readN(n int) ([]byte, error) {
	if n > d.Available() {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncated, n, d.Available())
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// readLen reads a uvarint length/count prefix and sanity-checks it against
// the remaining input, since every encoded item takes at least one byte.
func (d *Decoder) readLen() (int, error) {
	v, n := binary.Uvarint(d.buf[d.pos:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad uvarint", ErrLength)
	}
	d.pos += n
	if v > uint64(d.Available()) {
		return 0, fmt.Errorf("%w: %d exceeds %d remaining bytes", ErrLength, v, d.Available())
	}
	return int(v), nil
}

// alias reinterprets b as a string without copying. The result shares b's
// backing array; it stays read-only because the decoder never writes to its
// input, but it is only valid while the input buffer is alive and
// unmodified. Visitors receive it exclusively through the borrowed path.
func alias(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// value reads one tagged value and notifies v of its shape. The format is
// self-describing, so every shape hint funnels through here.
func (d *Decoder) value(v de.Visitor) (any, error) {
	if v == nil {
		return nil, de.ErrNilVisitor
	}
	t, err := d.readByte()
	if err != nil {
		return nil, err
	}
	switch t {
	case tagUnit:
		return v.VisitUnit()
	case tagFalse:
		return v.VisitBool(false)
	case tagTrue:
		return v.VisitBool(true)

	case tagI8:
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		return v.VisitInt8(int8(b))
	case tagI16:
		b, err := d.readN(2)
		if err != nil {
			return nil, err
		}
		return v.VisitInt16(int16(Order.Uint16(b)))
	case tagI32:
		b, err := d.readN(4)
		if err != nil {
			return nil, err
		}
		return v.VisitInt32(int32(Order.Uint32(b)))
	case tagI64:
		b, err := d.readN(8)
		if err != nil {
			return nil, err
		}
		return v.VisitInt64(int64(Order.Uint64(b)))

	case tagU8:
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		return v.VisitUint8(b)
	case tagU16:
		b, err := d.readN(2)
		if err != nil {
			return nil, err
		}
		return v.VisitUint16(Order.Uint16(b))
	case tagU32:
		b, err := d.readN(4)
		if err != nil {
			return nil, err
		}
		return v.VisitUint32(Order.Uint32(b))
	case tagU64:
		b, err := d.readN(8)
		if err != nil {
			return nil, err
		}
		return v.VisitUint64(Order.Uint64(b))

	case tagF32:
		b, err := d.readN(4)
		if err != nil {
			return nil, err
		}
		return v.VisitFloat32(math.Float32frombits(Order.Uint32(b)))
	case tagF64:
		b, err := d.readN(8)
		if err != nil {
			return nil, err
		}
		return v.VisitFloat64(math.Float64frombits(Order.Uint64(b)))

	case tagRune:
		b, err := d.readN(4)
		if err != nil {
			return nil, err
		}
		return v.VisitRune(rune(Order.Uint32(b)))

	case tagStr:
		n, err := d.readLen()
		if err != nil {
			return nil, err
		}
		b, err := d.readN(n)
		if err != nil {
			return nil, err
		}
		// Zero-copy: the string aliases the input buffer.
		return de.VisitBorrowedString(v, alias(b))
	case tagBin:
		n, err := d.readLen()
		if err != nil {
			return nil, err
		}
		b, err := d.readN(n)
		if err != nil {
			return nil, err
		}
		return de.VisitBorrowedBytes(v, b)
	case tagBinZ:
		if !d.zstd {
			return nil, ErrCompression
		}
		n, err := d.readLen()
		if err != nil {
			return nil, err
		}
		frame, err := d.readN(n)
		if err != nil {
			return nil, err
		}
		zr, err := zstdReader()
		if err != nil {
			return nil, err
		}
		raw, err := zr.DecodeAll(frame, nil)
		if err != nil {
			return nil, fmt.Errorf("bindec: %w", err)
		}
		// Decompressed output is freshly allocated: always owned.
		return v.VisitBytes(raw)

	case tagNone:
		return v.VisitNone()
	case tagSome:
		return v.VisitSome(d)

	case tagSeq:
		n, err := d.readLen()
		if err != nil {
			return nil, err
		}
		return v.VisitSeq(&seqAccess{d: d, rem: n})
	case tagMap:
		n, err := d.readLen()
		if err != nil {
			return nil, err
		}
		return v.VisitMap(&mapAccess{d: d, rem: n})
	case tagVariant:
		return v.VisitEnum(enumAccess{d: d})

	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, t)
	}
}

func (d *Decoder) DecodeAny(v de.Visitor) (any, error)  { return d.value(v) }
func (d *Decoder) DecodeBool(v de.Visitor) (any, error) { return d.value(v) }

func (d *Decoder) DecodeInt8(v de.Visitor) (any, error)  { return d.value(v) }
func (d *Decoder) DecodeInt16(v de.Visitor) (any, error) { return d.value(v) }
func (d *Decoder) DecodeInt32(v de.Visitor) (any, error) { return d.value(v) }
func (d *Decoder) DecodeInt64(v de.Visitor) (any, error) { return d.value(v) }

func (d *Decoder) DecodeUint8(v de.Visitor) (any, error)  { return d.value(v) }
func (d *Decoder) DecodeUint16(v de.Visitor) (any, error) { return d.value(v) }
func (d *Decoder) DecodeUint32(v de.Visitor) (any, error) { return d.value(v) }
func (d *Decoder) DecodeUint64(v de.Visitor) (any, error) { return d.value(v) }

func (d *Decoder) DecodeFloat32(v de.Visitor) (any, error) { return d.value(v) }
func (d *Decoder) DecodeFloat64(v de.Visitor) (any, error) { return d.value(v) }

func (d *Decoder) DecodeRune(v de.Visitor) (any, error) { return d.value(v) }

func (d *Decoder) DecodeString(v de.Visitor) (any, error) { return d.value(v) }
func (d *Decoder) DecodeBytes(v de.Visitor) (any, error)  { return d.value(v) }

func (d *Decoder) DecodeOption(v de.Visitor) (any, error) { return d.value(v) }
func (d *Decoder) DecodeUnit(v de.Visitor) (any, error)   { return d.value(v) }

func (d *Decoder) DecodeUnitStruct(name string, v de.Visitor) (any, error) {
	return d.value(v)
}

func (d *Decoder) DecodeNewtypeStruct(name string, v de.Visitor) (any, error) {
	return d.value(v)
}

func (d *Decoder) DecodeSeq(v de.Visitor) (any, error) { return d.value(v) }

func (d *Decoder) DecodeTuple(arity int, v de.Visitor) (any, error) { return d.value(v) }

func (d *Decoder) DecodeTupleStruct(name string, arity int, v de.Visitor) (any, error) {
	return d.value(v)
}

func (d *Decoder) DecodeMap(v de.Visitor) (any, error) { return d.value(v) }

func (d *Decoder) DecodeStruct(name string, fields []string, v de.Visitor) (any, error) {
	return d.value(v)
}

func (d *Decoder) DecodeEnum(name string, variants []string, v de.Visitor) (any, error) {
	return d.value(v)
}

func (d *Decoder) DecodeIdentifier(v de.Visitor) (any, error) { return d.value(v) }
func (d *Decoder) DecodeIgnored(v de.Visitor) (any, error)    { return d.value(v) }

func (d *Decoder) IsHumanReadable() bool { return false }

// Decode decodes exactly one value from buf using fn. Bytes left over after
// the value fail with ErrTrailingData, which catches truncated writers and
// concatenated payloads early.
func Decode(buf []byte, fn de.DecodeFunc) (any, error) {
	d := NewDecoder(buf)
	v, err := fn(d)
	if err != nil {
		return nil, err
	}
	if d.Available() > 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, d.Available())
	}
	return v, nil
}

type seqAccess struct {
	d   *Decoder
	rem int
}

var _ de.SeqAccess = (*seqAccess)(nil)

func (a *seqAccess) NextElement(seed de.Seed) (any, bool, error) {
	if a.rem == 0 {
		return nil, false, nil
	}
	a.rem--
	v, err := seed.DecodeValue(a.d)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (a *seqAccess) SizeHint() int { return a.rem }

type mapAccess struct {
	d   *Decoder
	rem int
}

var _ de.MapAccess = (*mapAccess)(nil)

func (a *mapAccess) NextKey(seed de.Seed) (any, bool, error) {
	if a.rem == 0 {
		return nil, false, nil
	}
	a.rem--
	k, err := seed.DecodeValue(a.d)
	if err != nil {
		return nil, false, err
	}
	return k, true, nil
}

func (a *mapAccess) NextValue(seed de.Seed) (any, error) {
	return seed.DecodeValue(a.d)
}

func (a *mapAccess) NextEntry(kseed, vseed de.Seed) (any, any, bool, error) {
	k, ok, err := a.NextKey(kseed)
	if err != nil || !ok {
		return nil, nil, false, err
	}
	v, err := a.NextValue(vseed)
	if err != nil {
		return nil, nil, false, err
	}
	return k, v, true, nil
}

func (a *mapAccess) SizeHint() int { return a.rem }

type enumAccess struct {
	d *Decoder
}

var _ de.EnumAccess = enumAccess{}

func (a enumAccess) Variant(seed de.Seed) (any, de.VariantAccess, error) {
	v, err := seed.DecodeValue(a.d)
	if err != nil {
		return nil, nil, err
	}
	return v, variantAccess{d: a.d}, nil
}

type variantAccess struct {
	d *Decoder
}

var _ de.VariantAccess = variantAccess{}

func (a variantAccess) UnitVariant() error {
	t, err := a.d.readByte()
	if err != nil {
		return err
	}
	if t != tagUnit {
		return fmt.Errorf("%w: tag 0x%02x", ErrVariantPayload, t)
	}
	return nil
}

func (a variantAccess) NewtypeVariant(seed de.Seed) (any, error) {
	return seed.DecodeValue(a.d)
}

func (a variantAccess) TupleVariant(arity int, v de.Visitor) (any, error) {
	return a.d.value(v)
}

func (a variantAccess) StructVariant(fields []string, v de.Visitor) (any, error) {
	return a.d.value(v)
}
