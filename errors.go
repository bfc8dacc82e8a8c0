package detach

import "errors"

var (
	// ErrTargetType indicates that a decode function produced a value of a
	// different type than the one the caller asked for. This is an API
	// usage error at the entry point, not a protocol error; the adapter
	// layer itself never manufactures errors.
	ErrTargetType = errors.New("detach: decoded value has unexpected type")

	// ErrNotRegistered indicates that Unmarshal was called for a type with
	// no registered decode function.
	ErrNotRegistered = errors.New("detach: no decode function registered")
)
