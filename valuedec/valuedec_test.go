package valuedec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oy3o/detach/de"
	"github.com/oy3o/detach/valuedec"
)

func TestScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		fn   de.DecodeFunc
		want any
	}{
		{"Bool", true, de.BoolFunc, true},
		{"String", "hello", de.StringFunc, "hello"},
		{"Int", int64(-12), de.IntFunc[int64](), int64(-12)},
		{"IntNative", 5, de.IntFunc[int](), 5},
		{"Uint", uint16(99), de.UintFunc[uint16](), uint16(99)},
		{"Float", 2.25, de.FloatFunc[float64](), 2.25},
		{"Any", int8(7), de.AnyFunc, int8(7)},
		{"Rune", int32('☃'), de.AnyFunc, int32('☃')},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(valuedec.NewDecoder(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOption(t *testing.T) {
	d := valuedec.NewDecoder(nil)
	v, err := de.AnyFunc(d)
	require.NoError(t, err)
	assert.Nil(t, v)

	// Through the option hint, nil is the absent case and anything else is
	// a present value.
	some := &optionVisitor{}
	_, err = valuedec.NewDecoder("x").DecodeOption(some)
	require.NoError(t, err)
	assert.True(t, some.some)

	none := &optionVisitor{}
	_, err = valuedec.NewDecoder(nil).DecodeOption(none)
	require.NoError(t, err)
	assert.True(t, none.none)
}

type optionVisitor struct {
	de.Base
	some bool
	none bool
}

func (v *optionVisitor) VisitSome(d de.Decoder) (any, error) {
	v.some = true
	return de.AnyFunc(d)
}

func (v *optionVisitor) VisitNone() (any, error) {
	v.none = true
	return nil, nil
}

func TestNewtypeStruct(t *testing.T) {
	nt := &newtypeVisitor{}
	v, err := valuedec.NewDecoder(int64(4)).DecodeNewtypeStruct("Meters", nt)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)
	assert.True(t, nt.called)
}

type newtypeVisitor struct {
	de.Base
	called bool
}

func (v *newtypeVisitor) VisitNewtype(d de.Decoder) (any, error) {
	v.called = true
	return de.AnyFunc(d)
}

func TestMapOrderIsDeterministic(t *testing.T) {
	tree := map[string]any{"b": int64(2), "a": int64(1), "c": int64(3)}
	for i := 0; i < 8; i++ {
		v, err := de.AnyFunc(valuedec.NewDecoder(tree))
		require.NoError(t, err)
		entries := v.([]de.MapEntry)
		require.Len(t, entries, 3)
		assert.Equal(t, "a", entries[0].Key.(de.Str).String())
		assert.Equal(t, "b", entries[1].Key.(de.Str).String())
		assert.Equal(t, "c", entries[2].Key.(de.Str).String())
	}
}

func TestEnumVariants(t *testing.T) {
	t.Run("Newtype", func(t *testing.T) {
		v, err := de.AnyFunc(valuedec.NewDecoder(de.Variant{Name: "Some", Value: int64(1)}))
		require.NoError(t, err)
		assert.Equal(t, int64(1), v.(de.Variant).Value)
	})

	t.Run("Unit", func(t *testing.T) {
		ev := &enumVisitor{mode: "unit"}
		_, err := valuedec.NewDecoder(de.Variant{Name: "Off"}).DecodeEnum("Switch", []string{"Off", "On"}, ev)
		require.NoError(t, err)
	})

	t.Run("UnitWithPayload", func(t *testing.T) {
		ev := &enumVisitor{mode: "unit"}
		_, err := valuedec.NewDecoder(de.Variant{Name: "Off", Value: int64(1)}).DecodeEnum("Switch", []string{"Off", "On"}, ev)
		assert.ErrorIs(t, err, valuedec.ErrVariantPayload)
	})

	t.Run("Tuple", func(t *testing.T) {
		ev := &enumVisitor{mode: "tuple"}
		v, err := valuedec.NewDecoder(de.Variant{
			Name:  "Point",
			Value: []any{int64(3), int64(4)},
		}).DecodeEnum("Shape", []string{"Point"}, ev)
		require.NoError(t, err)
		assert.Equal(t, []any{int64(3), int64(4)}, v)
	})

	t.Run("Struct", func(t *testing.T) {
		ev := &enumVisitor{mode: "struct"}
		v, err := valuedec.NewDecoder(de.Variant{
			Name:  "Circle",
			Value: map[string]any{"r": int64(2)},
		}).DecodeEnum("Shape", []string{"Circle"}, ev)
		require.NoError(t, err)
		entries := v.([]de.MapEntry)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(2), entries[0].Value)
	})
}

// enumVisitor decodes the variant payload according to mode, standing in for
// per-type enum decode logic.
type enumVisitor struct {
	de.Base
	mode string
}

func (v *enumVisitor) VisitEnum(a de.EnumAccess) (any, error) {
	_, va, err := a.Variant(de.DecodeFunc(de.StringFunc))
	if err != nil {
		return nil, err
	}
	switch v.mode {
	case "unit":
		return nil, va.UnitVariant()
	case "tuple":
		return va.TupleVariant(2, seqCollector{})
	default:
		return va.StructVariant([]string{"r"}, mapCollector{})
	}
}

type seqCollector struct{ de.Base }

func (seqCollector) VisitSeq(a de.SeqAccess) (any, error) {
	var out []any
	for {
		v, ok, err := a.NextElement(de.DecodeFunc(de.AnyFunc))
		if err != nil || !ok {
			return out, err
		}
		out = append(out, v)
	}
}

type mapCollector struct{ de.Base }

func (mapCollector) VisitMap(a de.MapAccess) (any, error) {
	var out []de.MapEntry
	for {
		k, v, ok, err := a.NextEntry(de.DecodeFunc(de.AnyFunc), de.DecodeFunc(de.AnyFunc))
		if err != nil || !ok {
			return out, err
		}
		out = append(out, de.MapEntry{Key: k, Value: v})
	}
}

func TestBorrowedData(t *testing.T) {
	src := []byte{9, 8, 7}
	v, err := de.ViewFunc(valuedec.NewDecoder(src))
	require.NoError(t, err)
	assert.Same(t, &src[0], &v.(de.View)[0])

	// An owned-only visitor gets a copy of the same data.
	b, err := de.BytesFunc(valuedec.NewDecoder(src))
	require.NoError(t, err)
	assert.Equal(t, src, b)
	assert.NotSame(t, &src[0], &b.([]byte)[0])
}

func TestErrors(t *testing.T) {
	t.Run("UnsupportedType", func(t *testing.T) {
		_, err := de.AnyFunc(valuedec.NewDecoder(make(chan int)))
		assert.ErrorIs(t, err, valuedec.ErrUnsupported)
	})

	t.Run("NilVisitor", func(t *testing.T) {
		_, err := valuedec.NewDecoder(1).DecodeAny(nil)
		assert.ErrorIs(t, err, de.ErrNilVisitor)
	})

	t.Run("NestedErrorPropagates", func(t *testing.T) {
		tree := []any{int64(1), "oops", int64(3)}
		_, err := de.IntFunc[int64]()(valuedec.NewDecoder(tree))
		assert.ErrorIs(t, err, de.ErrUnexpected)
	})
}

func TestSizeHints(t *testing.T) {
	hintV := &hintVisitor{}
	_, err := valuedec.NewDecoder([]any{1, 2, 3}).DecodeSeq(hintV)
	require.NoError(t, err)
	assert.Equal(t, 3, hintV.seqHint)

	_, err = valuedec.NewDecoder(map[string]any{"a": 1}).DecodeMap(hintV)
	require.NoError(t, err)
	assert.Equal(t, 1, hintV.mapHint)
}

type hintVisitor struct {
	de.Base
	seqHint int
	mapHint int
}

func (v *hintVisitor) VisitSeq(a de.SeqAccess) (any, error) {
	v.seqHint = a.SizeHint()
	return nil, nil
}

func (v *hintVisitor) VisitMap(a de.MapAccess) (any, error) {
	v.mapHint = a.SizeHint()
	return nil, nil
}

func TestIsHumanReadable(t *testing.T) {
	assert.True(t, valuedec.NewDecoder(nil).IsHumanReadable())
}
