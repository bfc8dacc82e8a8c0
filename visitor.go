package detach

import "github.com/oy3o/detach/de"

// visitor forwards every notification to the wrapped visitor. Terminal
// values pass through verbatim; continuation objects (option/newtype
// decoders, sequence/map/enum cursors) are wrapped in the matching adapter
// so the downgrade applies at every depth.
//
// visitor deliberately does not implement de.BorrowedVisitor. With the
// zero-copy notifications absent, de.VisitBorrowedString and
// de.VisitBorrowedBytes clone on the decoder's side and deliver the owned
// forms instead. That omission is the entire erasure mechanism; nothing here
// intercepts anything actively.
type visitor struct {
	v de.Visitor
}

var _ de.Visitor = visitor{}

func (w visitor) Expecting() string { return w.v.Expecting() }

func (w visitor) VisitBool(b bool) (any, error) { return w.v.VisitBool(b) }

func (w visitor) VisitInt8(n int8) (any, error)   { return w.v.VisitInt8(n) }
func (w visitor) VisitInt16(n int16) (any, error) { return w.v.VisitInt16(n) }
func (w visitor) VisitInt32(n int32) (any, error) { return w.v.VisitInt32(n) }
func (w visitor) VisitInt64(n int64) (any, error) { return w.v.VisitInt64(n) }

func (w visitor) VisitUint8(n uint8) (any, error)   { return w.v.VisitUint8(n) }
func (w visitor) VisitUint16(n uint16) (any, error) { return w.v.VisitUint16(n) }
func (w visitor) VisitUint32(n uint32) (any, error) { return w.v.VisitUint32(n) }
func (w visitor) VisitUint64(n uint64) (any, error) { return w.v.VisitUint64(n) }

func (w visitor) VisitFloat32(f float32) (any, error) { return w.v.VisitFloat32(f) }
func (w visitor) VisitFloat64(f float64) (any, error) { return w.v.VisitFloat64(f) }

func (w visitor) VisitRune(r rune) (any, error) { return w.v.VisitRune(r) }

func (w visitor) VisitString(s string) (any, error) { return w.v.VisitString(s) }
func (w visitor) VisitBytes(b []byte) (any, error)  { return w.v.VisitBytes(b) }

func (w visitor) VisitNone() (any, error) { return w.v.VisitNone() }
func (w visitor) VisitUnit() (any, error) { return w.v.VisitUnit() }

func (w visitor) VisitSome(d de.Decoder) (any, error)    { return w.v.VisitSome(Decoder{d}) }
func (w visitor) VisitNewtype(d de.Decoder) (any, error) { return w.v.VisitNewtype(Decoder{d}) }

func (w visitor) VisitSeq(a de.SeqAccess) (any, error)   { return w.v.VisitSeq(seqAccess{a}) }
func (w visitor) VisitMap(a de.MapAccess) (any, error)   { return w.v.VisitMap(mapAccess{a}) }
func (w visitor) VisitEnum(a de.EnumAccess) (any, error) { return w.v.VisitEnum(enumAccess{a}) }
