package detach

import "github.com/oy3o/detach/de"

// seed wraps a one-shot continuation so that whatever decoder eventually
// serves it is itself wrapped. This is the recursive closure point of the
// adapter graph: every nested value decoded anywhere in the tree passes back
// through Decoder, so the downgrade holds at every depth, not just the top
// level.
type seed struct {
	s de.Seed
}

var _ de.Seed = seed{}

func (w seed) DecodeValue(d de.Decoder) (any, error) {
	return w.s.DecodeValue(Decoder{d})
}
