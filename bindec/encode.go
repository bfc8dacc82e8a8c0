package bindec

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Append* functions build values in the bindec format, appending to b and
// returning the extended slice in the manner of the strconv.Append family.
// Compound shapes are open-ended: AppendSeq and AppendMap write the header
// and the caller appends the announced number of values (key/value pairs for
// maps) afterwards; AppendSome and AppendVariant are followed by their inner
// values the same way.

var zstdWriter = sync.OnceValues(func() (*zstd.Encoder, error) {
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
})

// AppendUnit appends the unit value.
func AppendUnit(b []byte) []byte { return append(b, tagUnit) }

// AppendBool appends a boolean.
func AppendBool(b []byte, v bool) []byte {
	if v {
		return append(b, tagTrue)
	}
	return append(b, tagFalse)
}

func AppendInt8(b []byte, n int8) []byte { return append(b, tagI8, byte(n)) }

func AppendInt16(b []byte, n int16) []byte {
	return Order.AppendUint16(append(b, tagI16), uint16(n))
}

func AppendInt32(b []byte, n int32) []byte {
	return Order.AppendUint32(append(b, tagI32), uint32(n))
}

func AppendInt64(b []byte, n int64) []byte {
	return Order.AppendUint64(append(b, tagI64), uint64(n))
}

func AppendUint8(b []byte, n uint8) []byte { return append(b, tagU8, n) }

func AppendUint16(b []byte, n uint16) []byte {
	return Order.AppendUint16(append(b, tagU16), n)
}

func AppendUint32(b []byte, n uint32) []byte {
	return Order.AppendUint32(append(b, tagU32), n)
}

func AppendUint64(b []byte, n uint64) []byte {
	return Order.AppendUint64(append(b, tagU64), n)
}

func AppendFloat32(b []byte, f float32) []byte {
	return Order.AppendUint32(append(b, tagF32), math.Float32bits(f))
}

func AppendFloat64(b []byte, f float64) []byte {
	return Order.AppendUint64(append(b, tagF64), math.Float64bits(f))
}

func AppendRune(b []byte, r rune) []byte {
	return Order.AppendUint32(append(b, tagRune), uint32(r))
}

// AppendString appends a string value.
func AppendString(b []byte, s string) []byte {
	b = append(b, tagStr)
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

// AppendBytes appends a raw byte-sequence value.
func AppendBytes(b []byte, p []byte) []byte {
	b = append(b, tagBin)
	b = binary.AppendUvarint(b, uint64(len(p)))
	return append(b, p...)
}

// AppendCompressedBytes appends a zstd-compressed byte-sequence value.
// Decoding it requires a Decoder built WithCompression.
func AppendCompressedBytes(b []byte, p []byte) ([]byte, error) {
	zw, err := zstdWriter()
	if err != nil {
		return b, err
	}
	frame := zw.EncodeAll(p, nil)
	b = append(b, tagBinZ)
	b = binary.AppendUvarint(b, uint64(len(frame)))
	return append(b, frame...), nil
}

// AppendNone appends the absent option.
func AppendNone(b []byte) []byte { return append(b, tagNone) }

// AppendSome appends the present-option header; the value follows.
func AppendSome(b []byte) []byte { return append(b, tagSome) }

// AppendSeq appends a sequence header announcing count elements.
func AppendSeq(b []byte, count int) []byte {
	return binary.AppendUvarint(append(b, tagSeq), uint64(count))
}

// AppendMap appends a map header announcing count key/value pairs.
func AppendMap(b []byte, count int) []byte {
	return binary.AppendUvarint(append(b, tagMap), uint64(count))
}

// AppendVariant appends the enum header; the identifier value and the
// payload value follow.
func AppendVariant(b []byte) []byte { return append(b, tagVariant) }
