package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/wildfunctions/fourfours/pkg/stack"
)

// ErrIllegalAction means a replayed action was rejected by its guard.
var ErrIllegalAction = errors.New("illegal action")

// Replay runs an action sequence through the catalog from the empty state and
// returns the final state.
func Replay(c Catalog, path []Action) (stack.State, error) {
	var s stack.State
	for i, a := range path {
		next, v, ok := c.Apply(s, a)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return s, fmt.Errorf("%w: %s at step %d on %s", ErrIllegalAction, a, i, s)
		}
		s = next.Push(v)
	}
	return s, nil
}
