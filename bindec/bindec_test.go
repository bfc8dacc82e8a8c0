package bindec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oy3o/detach/de"
)

func TestWireLayout(t *testing.T) {
	assert.Equal(t, []byte{tagStr, 2, 'h', 'i'}, AppendString(nil, "hi"))
	assert.Equal(t, []byte{tagBin, 3, 1, 2, 3}, AppendBytes(nil, []byte{1, 2, 3}))
	assert.Equal(t, []byte{tagTrue}, AppendBool(nil, true))
	assert.Equal(t, []byte{tagU16, 0xBB, 0xCC}, AppendUint16(nil, 0xBBCC)) // Big Endian
	assert.Equal(t, []byte{tagI64, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		AppendInt64(nil, 0x0102030405060708))
	assert.Equal(t, []byte{tagSeq, 2, tagUnit, tagNone}, AppendNone(AppendUnit(AppendSeq(nil, 2))))
}

func TestScalarRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		fn   de.DecodeFunc
		want any
	}{
		{"Bool", AppendBool(nil, true), de.BoolFunc, true},
		{"Int8", AppendInt8(nil, -5), de.IntFunc[int8](), int8(-5)},
		{"Int16", AppendInt16(nil, -300), de.IntFunc[int16](), int16(-300)},
		{"Int32", AppendInt32(nil, 1 << 20), de.IntFunc[int32](), int32(1 << 20)},
		{"Int64", AppendInt64(nil, -1 << 40), de.IntFunc[int64](), int64(-1 << 40)},
		{"Uint8", AppendUint8(nil, 0xAA), de.UintFunc[uint8](), uint8(0xAA)},
		{"Uint16", AppendUint16(nil, 0xBBCC), de.UintFunc[uint16](), uint16(0xBBCC)},
		{"Uint32", AppendUint32(nil, 0xDDEEFF00), de.UintFunc[uint32](), uint32(0xDDEEFF00)},
		{"Uint64", AppendUint64(nil, 1 << 50), de.UintFunc[uint64](), uint64(1 << 50)},
		{"Float32", AppendFloat32(nil, 1.5), de.AnyFunc, float32(1.5)},
		{"Float64", AppendFloat64(nil, -2.25), de.FloatFunc[float64](), -2.25},
		{"Rune", AppendRune(nil, '☃'), de.RuneFunc, '☃'},
		{"String", AppendString(nil, "gopher"), de.StringFunc, "gopher"},
		{"Unit", AppendUnit(nil), de.AnyFunc, nil},
		{"None", AppendNone(nil), de.AnyFunc, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.buf, tt.fn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBorrowedString(t *testing.T) {
	buf := AppendString(nil, "value")

	v, err := Decode(buf, de.StrFunc)
	require.NoError(t, err)
	str := v.(de.Str)
	assert.False(t, str.Owned())
	assert.Equal(t, "value", str.String())

	// The borrowed string aliases the input: overwriting the buffer is
	// visible through it.
	copy(buf[2:], "XXXXX")
	assert.Equal(t, "XXXXX", str.String())
}

func TestBorrowedBytes(t *testing.T) {
	buf := AppendBytes(nil, []byte{1, 2, 3})

	v, err := Decode(buf, de.BytesValueFunc)
	require.NoError(t, err)
	b := v.(de.Bytes)
	assert.False(t, b.Owned())
	assert.Same(t, &buf[2], &b.Raw()[0])

	// An owned-only decode of the same input gets an independent copy.
	v, err = Decode(buf, de.BytesFunc)
	require.NoError(t, err)
	assert.NotSame(t, &buf[2], &v.([]byte)[0])
	assert.Equal(t, []byte{1, 2, 3}, v)
}

func TestCompressedBytes(t *testing.T) {
	payload := []byte("compressible compressible compressible")
	buf, err := AppendCompressedBytes(nil, payload)
	require.NoError(t, err)

	t.Run("Disabled", func(t *testing.T) {
		_, err := de.BytesValueFunc(NewDecoder(buf))
		assert.ErrorIs(t, err, ErrCompression)
	})

	t.Run("Enabled", func(t *testing.T) {
		v, err := de.BytesValueFunc(NewDecoder(buf).WithCompression())
		require.NoError(t, err)
		b := v.(de.Bytes)
		assert.Equal(t, payload, b.Raw())
		// Decompressed output never aliases the input.
		assert.True(t, b.Owned())
	})
}

func TestCompound(t *testing.T) {
	t.Run("Seq", func(t *testing.T) {
		buf := AppendSeq(nil, 3)
		buf = AppendInt64(buf, 1)
		buf = AppendInt64(buf, 2)
		buf = AppendInt64(buf, 3)

		v, err := Decode(buf, de.AnyFunc)
		require.NoError(t, err)
		assert.Equal(t, []any{int64(1), int64(2), int64(3)}, v)
	})

	t.Run("Map", func(t *testing.T) {
		buf := AppendMap(nil, 2)
		buf = AppendString(buf, "a")
		buf = AppendUint8(buf, 1)
		buf = AppendString(buf, "b")
		buf = AppendUint8(buf, 2)

		v, err := Decode(buf, de.AnyFunc)
		require.NoError(t, err)
		entries := v.([]de.MapEntry)
		require.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].Key.(de.Str).String())
		assert.Equal(t, uint8(1), entries[0].Value)
		assert.Equal(t, "b", entries[1].Key.(de.Str).String())
	})

	t.Run("Some", func(t *testing.T) {
		buf := AppendInt64(AppendSome(nil), 9)
		v, err := Decode(buf, de.AnyFunc)
		require.NoError(t, err)
		assert.Equal(t, int64(9), v)
	})

	t.Run("Variant", func(t *testing.T) {
		buf := AppendVariant(nil)
		buf = AppendString(buf, "Celsius")
		buf = AppendInt64(buf, 21)

		v, err := Decode(buf, de.AnyFunc)
		require.NoError(t, err)
		variant := v.(de.Variant)
		assert.Equal(t, "Celsius", variant.Name.(de.Str).String())
		assert.Equal(t, int64(21), variant.Value)
	})
}

func TestUnitVariant(t *testing.T) {
	build := func(payload []byte) []byte {
		buf := AppendVariant(nil)
		buf = AppendString(buf, "Off")
		return append(buf, payload...)
	}

	t.Run("Accepted", func(t *testing.T) {
		_, err := Decode(build(AppendUnit(nil)), func(d de.Decoder) (any, error) {
			return d.DecodeEnum("Switch", []string{"Off"}, unitEnumVisitor{})
		})
		require.NoError(t, err)
	})

	t.Run("RejectedWithPayload", func(t *testing.T) {
		_, err := Decode(build(AppendInt64(nil, 1)), func(d de.Decoder) (any, error) {
			return d.DecodeEnum("Switch", []string{"Off"}, unitEnumVisitor{})
		})
		assert.ErrorIs(t, err, ErrVariantPayload)
	})
}

type unitEnumVisitor struct{ de.Base }

func (unitEnumVisitor) VisitEnum(a de.EnumAccess) (any, error) {
	name, va, err := a.Variant(de.DecodeFunc(de.StringFunc))
	if err != nil {
		return nil, err
	}
	return name, va.UnitVariant()
}

func TestMalformedInput(t *testing.T) {
	t.Run("EmptyInput", func(t *testing.T) {
		_, err := Decode(nil, de.AnyFunc)
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("TruncatedPayload", func(t *testing.T) {
		buf := AppendInt64(nil, 1)
		_, err := Decode(buf[:5], de.AnyFunc)
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("TruncatedString", func(t *testing.T) {
		buf := AppendString(nil, "hello")
		_, err := Decode(buf[:3], de.AnyFunc)
		require.Error(t, err)
	})

	t.Run("UnknownTag", func(t *testing.T) {
		_, err := Decode([]byte{0xFF}, de.AnyFunc)
		assert.ErrorIs(t, err, ErrUnknownTag)
	})

	t.Run("OverlongLength", func(t *testing.T) {
		// Length prefix claims more bytes than remain.
		buf := []byte{tagStr, 0x7F, 'x'}
		_, err := Decode(buf, de.AnyFunc)
		assert.ErrorIs(t, err, ErrLength)
	})

	t.Run("TrailingData", func(t *testing.T) {
		buf := AppendBool(nil, true)
		buf = append(buf, 0x00)
		_, err := Decode(buf, de.BoolFunc)
		assert.ErrorIs(t, err, ErrTrailingData)
	})

	t.Run("TruncatedSeqElements", func(t *testing.T) {
		buf := AppendSeq(nil, 2)
		buf = AppendUint8(buf, 1)
		_, err := Decode(buf, de.AnyFunc)
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("OverlongCount", func(t *testing.T) {
		buf := AppendSeq(nil, 100)
		buf = AppendUint8(buf, 1)
		_, err := Decode(buf, de.AnyFunc)
		assert.ErrorIs(t, err, ErrLength)
	})
}

func TestIsHumanReadable(t *testing.T) {
	assert.False(t, NewDecoder(nil).IsHumanReadable())
}
