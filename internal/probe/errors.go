package probe

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvariant        = errors.New("invariant violated")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// Err summarizes a failed run as an ErrInvariant error, or returns nil.
func (s *Summary) Err() error {
	if s.OK() {
		return nil
	}
	return fmt.Errorf("%w: %d violations, %d failed requests", ErrInvariant, len(s.Violations), s.Failed)
}
