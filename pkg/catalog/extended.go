package catalog

import (
	"math"

	"github.com/wildfunctions/fourfours/pkg/stack"
)

func init() {
	Register("extended", func() Catalog {
		return newFloatCatalog("extended",
			"float arithmetic with powers, modulo, roots, rounding, abs, negation and factorial",
			extendedActions)
	})
}

var extendedActions = []Action{
	Push4,
	Add, Sub, Mul, Pow, Div, Mod,
	Sqrt, FourthRoot, Floor, Ceil, Abs, Neg, Factorial,
}

// FloatCatalog evaluates its actions in float64. Non-finite results are
// returned as-is; the explorer rejects them.
type FloatCatalog struct {
	name        string
	description string
	actions     []Action
	allowed     map[Action]bool
}

func newFloatCatalog(name, description string, actions []Action) *FloatCatalog {
	return &FloatCatalog{
		name:        name,
		description: description,
		actions:     actions,
		allowed:     allowedSet(actions),
	}
}

func (c *FloatCatalog) Name() string        { return c.name }
func (c *FloatCatalog) Description() string { return c.description }
func (c *FloatCatalog) Actions() []Action   { return c.actions }

func (c *FloatCatalog) Apply(s stack.State, a Action) (stack.State, float64, bool) {
	if !c.allowed[a] {
		return s, 0, false
	}
	switch a.Arity() {
	case 0:
		return push4(s)
	case 2:
		next, left, right, ok := popBinary(s)
		if !ok {
			return s, 0, false
		}
		v, ok := floatBinary(a, left, right)
		if !ok {
			return s, 0, false
		}
		return next, v, true
	default:
		next, x, ok := popUnary(s)
		if !ok {
			return s, 0, false
		}
		v, ok := floatUnary(a, x)
		if !ok {
			return s, 0, false
		}
		return next, v, true
	}
}

func floatBinary(a Action, left, right float64) (float64, bool) {
	switch a {
	case Add:
		return left + right, true
	case Sub:
		return left - right, true
	case Mul:
		return left * right, true
	case Pow:
		return math.Pow(left, right), true
	case Div:
		if right == 0 {
			return 0, false
		}
		return left / right, true
	case Mod:
		if right == 0 {
			return 0, false
		}
		return math.Mod(left, right), true
	default:
		return 0, false
	}
}

func floatUnary(a Action, x float64) (float64, bool) {
	switch a {
	case Sqrt:
		if !(x > 0) {
			return 0, false
		}
		return math.Sqrt(x), true
	case FourthRoot:
		if !(x > 0) {
			return 0, false
		}
		return math.Sqrt(math.Sqrt(x)), true
	case Floor:
		if nearInteger(x) {
			return 0, false
		}
		return math.Floor(x), true
	case Ceil:
		if nearInteger(x) {
			return 0, false
		}
		return math.Ceil(x), true
	case Abs:
		if !(x < 0) {
			return 0, false
		}
		return -x, true
	case Neg:
		return -x, true
	case Factorial:
		return factorial(x)
	default:
		return 0, false
	}
}
