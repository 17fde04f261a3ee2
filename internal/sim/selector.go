package sim

import (
	"fmt"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Selector is the cyclic attractor state machine. It starts at 0 and has no
// terminal state.
type Selector struct {
	index int
	n     int
}

func NewSelector(n int) *Selector {
	return &Selector{n: n}
}

func (s *Selector) Index() int { return s.index }
func (s *Selector) Len() int   { return s.n }

// Next advances to (index + 1) mod n.
func (s *Selector) Next() int {
	if s.n > 0 {
		s.index = (s.index + 1) % s.n
	}
	return s.index
}

// Set jumps directly to i.
func (s *Selector) Set(i int) error {
	if i < 0 || i >= s.n {
		return fmt.Errorf("%w: %d not in [0, %d)", dynamo.ErrSelectionRange, i, s.n)
	}
	s.index = i
	return nil
}
