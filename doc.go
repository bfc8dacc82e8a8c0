// Package detach forces decode logic written against the de protocol to
// produce fully owned results, independent of the decoder's input buffer.
//
// This matters for borrow-polymorphic targets such as [de.Str] and
// [de.Bytes]: decoded directly, a decoder backed by a byte slice may hand
// them a zero-copy reference into its input, so the result silently stops
// being valid once that buffer is reused or overwritten. Decoding through
// this package downgrades every zero-copy notification to its copying form,
// at every nesting depth, without changing any other decode semantics.
//
// The mechanism is a family of transparent proxies, one per protocol role.
// The visitor proxy forwards every notification verbatim but deliberately
// does not implement [de.BorrowedVisitor]; the protocol's fallback rule then
// makes the decoder clone before notifying. Every continuation object
// (option/newtype decoders, sequence/map/enum cursors, seeds) is wrapped in
// the matching proxy on the way through, so the downgrade holds for the
// entire decode tree.
//
// Targets with no owned representation (such as [de.View]) cannot be decoded
// through this package: their decode logic only accepts the zero-copy
// notification and fails with a type-mismatch error. This is a documented
// limitation, reported at decode time rather than compile time.
//
// For most purposes, calling [Decode] or [Unmarshal] is enough; the proxy
// types are exposed through [NewDecoder] for composition with other
// adapters.
package detach
