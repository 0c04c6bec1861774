package stack

import (
	"fmt"
	"strings"
)

// MaxFours is the number of 4s every complete derivation uses.
const MaxFours = 4

// State is the operand stack of a partial derivation plus the number of 4s
// pushed so far. Only four pushes exist, so the stack never holds more than
// MaxFours operands and State can be a plain comparable value: copying it is
// enough to branch the search.
type State struct {
	FoursUsed int
	n         int
	values    [MaxFours]float64
}

// Len returns the number of operands on the stack.
func (s State) Len() int { return s.n }

// Push returns s with v on top.
// Pushing onto a full stack is a programming error.
func (s State) Push(v float64) State {
	if s.n == MaxFours {
		panic("stack overflow: more than four operands")
	}
	s.values[s.n] = v
	s.n++
	return s
}

// Pop returns s without its top operand, and that operand.
// Popping an empty stack is a programming error.
func (s State) Pop() (State, float64) {
	if s.n == 0 {
		panic("stack underflow")
	}
	s.n--
	v := s.values[s.n]
	s.values[s.n] = 0
	return s, v
}

// Top returns the top operand without removing it.
func (s State) Top() (float64, bool) {
	if s.n == 0 {
		return 0, false
	}
	return s.values[s.n-1], true
}

// Values returns a copy of the operands, bottom first.
func (s State) Values() []float64 {
	out := make([]float64, s.n)
	copy(out, s.values[:s.n])
	return out
}

// Complete reports whether all four 4s have been used and exactly one value
// remains.
func (s State) Complete() bool {
	return s.FoursUsed == MaxFours && s.n == 1
}

func (s State) String() string {
	parts := make([]string, s.n)
	for i := 0; i < s.n; i++ {
		parts[i] = fmt.Sprintf("%g", s.values[i])
	}
	return fmt.Sprintf("{fours=%d stack=[%s]}", s.FoursUsed, strings.Join(parts, " "))
}
