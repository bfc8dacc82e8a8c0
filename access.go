package detach

import "github.com/oy3o/detach/de"

// The four cursor adapters. Each forwards pulls to the wrapped cursor,
// wrapping every seed going in and, for enums, the payload cursor coming
// out. Size hints, arities and field lists pass through unchanged; no new
// failure modes are introduced.

type seqAccess struct {
	a de.SeqAccess
}

var _ de.SeqAccess = seqAccess{}

func (w seqAccess) NextElement(s de.Seed) (any, bool, error) {
	return w.a.NextElement(seed{s})
}

func (w seqAccess) SizeHint() int { return w.a.SizeHint() }

type mapAccess struct {
	a de.MapAccess
}

var _ de.MapAccess = mapAccess{}

func (w mapAccess) NextKey(s de.Seed) (any, bool, error) {
	return w.a.NextKey(seed{s})
}

func (w mapAccess) NextValue(s de.Seed) (any, error) {
	return w.a.NextValue(seed{s})
}

func (w mapAccess) NextEntry(ks, vs de.Seed) (any, any, bool, error) {
	return w.a.NextEntry(seed{ks}, seed{vs})
}

func (w mapAccess) SizeHint() int { return w.a.SizeHint() }

type enumAccess struct {
	a de.EnumAccess
}

var _ de.EnumAccess = enumAccess{}

func (w enumAccess) Variant(s de.Seed) (any, de.VariantAccess, error) {
	v, va, err := w.a.Variant(seed{s})
	if err != nil {
		return nil, nil, err
	}
	return v, variantAccess{va}, nil
}

type variantAccess struct {
	a de.VariantAccess
}

var _ de.VariantAccess = variantAccess{}

func (w variantAccess) UnitVariant() error { return w.a.UnitVariant() }

func (w variantAccess) NewtypeVariant(s de.Seed) (any, error) {
	return w.a.NewtypeVariant(seed{s})
}

func (w variantAccess) TupleVariant(arity int, v de.Visitor) (any, error) {
	return w.a.TupleVariant(arity, visitor{v})
}

func (w variantAccess) StructVariant(fields []string, v de.Visitor) (any, error) {
	return w.a.StructVariant(fields, visitor{v})
}
