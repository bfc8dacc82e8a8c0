// Package valuedec implements the de protocol over in-memory Go values.
// It is the protocol's value decoder: decode logic can be driven from data
// that has already been parsed (tests, defaults, config trees) exactly as it
// would be from a serialized input.
//
// Supported value types: nil, bool, every integer and float width, string,
// []byte, []any, map[string]any and de.Variant. Strings and byte slices are
// delivered through the zero-copy path, so they alias the tree they came
// from unless the visitor declines borrowed data.
package valuedec

import (
	"errors"
	"fmt"
	"slices"

	"github.com/oy3o/detach/de"
)

var (
	// ErrUnsupported indicates the tree holds a value of a type the
	// decoder has no shape for.
	ErrUnsupported = errors.New("valuedec: unsupported value type")

	// ErrVariantPayload indicates a unit variant carried a payload.
	ErrVariantPayload = errors.New("valuedec: unexpected payload for unit variant")
)

// Decoder decodes one in-memory value. It is single-use and not safe for
// concurrent use.
type Decoder struct {
	v any
}

var _ de.Decoder = (*Decoder)(nil)

// NewDecoder returns a decoder positioned at v.
func NewDecoder(v any) *Decoder { return &Decoder{v: v} }

// value dispatches on the dynamic type of the held value. The format is
// self-describing, so every shape hint funnels through here.
func (d *Decoder) value(v de.Visitor) (any, error) {
	if v == nil {
		return nil, de.ErrNilVisitor
	}
	switch x := d.v.(type) {
	case nil:
		return v.VisitUnit()
	case bool:
		return v.VisitBool(x)
	case int8:
		return v.VisitInt8(x)
	case int16:
		return v.VisitInt16(x)
	case int32:
		return v.VisitInt32(x)
	case int64:
		return v.VisitInt64(x)
	case int:
		return v.VisitInt64(int64(x))
	case uint8:
		return v.VisitUint8(x)
	case uint16:
		return v.VisitUint16(x)
	case uint32:
		return v.VisitUint32(x)
	case uint64:
		return v.VisitUint64(x)
	case uint:
		return v.VisitUint64(uint64(x))
	case float32:
		return v.VisitFloat32(x)
	case float64:
		return v.VisitFloat64(x)
	case string:
		// The string aliases the tree; the helper clones for visitors
		// that have not opted into borrowed data.
		return de.VisitBorrowedString(v, x)
	case []byte:
		return de.VisitBorrowedBytes(v, x)
	case []any:
		return v.VisitSeq(&seqAccess{items: x})
	case map[string]any:
		return v.VisitMap(newMapAccess(x))
	case de.Variant:
		return v.VisitEnum(enumAccess{v: x})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, d.v)
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

// DecodeOption treats nil as the absent option and anything else as a
// present value.
func (d *Decoder) DecodeOption(v de.Visitor) (any, error) {
	if v == nil {
		return nil, de.ErrNilVisitor
	}
	if d.v == nil {
		return v.VisitNone()
	}
	return v.VisitSome(NewDecoder(d.v))
}

func (d *Decoder) DecodeUnit(v de.Visitor) (any, error) { return d.value(v) }

func (d *Decoder) DecodeUnitStruct(name string, v de.Visitor) (any, error) {
	return d.value(v)
}

func (d *Decoder) DecodeNewtypeStruct(name string, v de.Visitor) (any, error) {
	if v == nil {
		return nil, de.ErrNilVisitor
	}
	return v.VisitNewtype(NewDecoder(d.v))
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

func (d *Decoder) IsHumanReadable() bool { return true }

type seqAccess struct {
	items []any
	i     int
}

var _ de.SeqAccess = (*seqAccess)(nil)

func (a *seqAccess) NextElement(seed de.Seed) (any, bool, error) {
	if a.i >= len(a.items) {
		return nil, false, nil
	}
	item := a.items[a.i]
	a.i++
	v, err := seed.DecodeValue(NewDecoder(item))
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (a *seqAccess) SizeHint() int { return len(a.items) - a.i }

type mapAccess struct {
	m    map[string]any
	keys []string
	i    int
}

var _ de.MapAccess = (*mapAccess)(nil)

// newMapAccess sorts the keys so iteration order is stable across runs.
func newMapAccess(m map[string]any) *mapAccess {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return &mapAccess{m: m, keys: keys}
}

func (a *mapAccess) NextKey(seed de.Seed) (any, bool, error) {
	if a.i >= len(a.keys) {
		return nil, false, nil
	}
	k, err := seed.DecodeValue(NewDecoder(a.keys[a.i]))
	if err != nil {
		return nil, false, err
	}
	return k, true, nil
}

func (a *mapAccess) NextValue(seed de.Seed) (any, error) {
	v := a.m[a.keys[a.i]]
	a.i++
	return seed.DecodeValue(NewDecoder(v))
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

func (a *mapAccess) SizeHint() int { return len(a.keys) - a.i }

type enumAccess struct {
	v de.Variant
}

var _ de.EnumAccess = enumAccess{}

func (a enumAccess) Variant(seed de.Seed) (any, de.VariantAccess, error) {
	name, err := seed.DecodeValue(NewDecoder(a.v.Name))
	if err != nil {
		return nil, nil, err
	}
	return name, variantAccess{payload: a.v.Value}, nil
}

type variantAccess struct {
	payload any
}

var _ de.VariantAccess = variantAccess{}

func (a variantAccess) UnitVariant() error {
	if a.payload != nil {
		return fmt.Errorf("%w: %T", ErrVariantPayload, a.payload)
	}
	return nil
}

func (a variantAccess) NewtypeVariant(seed de.Seed) (any, error) {
	return seed.DecodeValue(NewDecoder(a.payload))
}

func (a variantAccess) TupleVariant(arity int, v de.Visitor) (any, error) {
	items, ok := a.payload.([]any)
	if !ok {
		return nil, de.Unexpected(v, fmt.Sprintf("%T", a.payload))
	}
	return v.VisitSeq(&seqAccess{items: items})
}

func (a variantAccess) StructVariant(fields []string, v de.Visitor) (any, error) {
	m, ok := a.payload.(map[string]any)
	if !ok {
		return nil, de.Unexpected(v, fmt.Sprintf("%T", a.payload))
	}
	return v.VisitMap(newMapAccess(m))
}
