package de

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpected indicates that a visitor received a notification for a
	// shape it cannot use. The wrapped message names what the visitor was
	// expecting and what the decoder delivered.
	ErrUnexpected = errors.New("de: unexpected type")

	// ErrNilDecoder indicates that a decode entry point was called with a
	// nil Decoder.
	ErrNilDecoder = errors.New("de: nil decoder")

	// ErrNilVisitor indicates that a Decode method was called with a nil
	// Visitor.
	ErrNilVisitor = errors.New("de: nil visitor")

	// ErrOutOfRange indicates that a decoded number does not fit the
	// requested width.
	ErrOutOfRange = errors.New("de: value out of range")
)

// Unexpected builds the canonical type-mismatch error: the decoder delivered
// got, but v was expecting something else. Decoders and visitor defaults use
// it so mismatch errors read the same across formats.
func Unexpected(v Visitor, got string) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrUnexpected, v.Expecting(), got)
}
