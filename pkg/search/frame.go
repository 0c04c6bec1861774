package search

import (
	"math"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/stack"
)

// Frame is one committed step of a derivation: the state before the action,
// the action, the value it produced and the state after pushing that value.
type Frame struct {
	Prior  stack.State
	Action catalog.Action
	Result float64
	State  stack.State
}

type outcome int

const (
	stepOK outcome = iota
	stepRejected
	stepNonFinite
	stepNoOp
)

func step(c catalog.Catalog, s stack.State, a catalog.Action) (Frame, outcome) {
	next, v, ok := c.Apply(s, a)
	if !ok {
		return Frame{}, stepRejected
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Frame{}, stepNonFinite
	}
	next = next.Push(v)
	if next == s {
		return Frame{}, stepNoOp
	}
	return Frame{Prior: s, Action: a, Result: v, State: next}, stepOK
}

// Step applies a to s and pushes the result. It fails when the guard rejects
// the action, the result is not finite, or the step would leave the state
// exactly as it was.
func Step(c catalog.Catalog, s stack.State, a catalog.Action) (Frame, bool) {
	f, o := step(c, s, a)
	return f, o == stepOK
}

// Actions returns the action sequence of a path.
func Actions(path []Frame) []catalog.Action {
	out := make([]catalog.Action, len(path))
	for i, f := range path {
		out[i] = f.Action
	}
	return out
}

// minStepsToComplete is the fewest further actions that can turn s into a
// complete state: the remaining pushes plus one binary action per operand
// beyond the last.
func minStepsToComplete(s stack.State) int {
	pushes := stack.MaxFours - s.FoursUsed
	return pushes + s.Len() + pushes - 1
}
