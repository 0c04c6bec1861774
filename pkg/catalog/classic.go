package catalog

import (
	"math"

	"github.com/wildfunctions/fourfours/pkg/stack"
)

func init() {
	Register("classic", func() Catalog { return &ClassicCatalog{allowed: allowedSet(classicActions)} })
}

var classicActions = []Action{
	Push4,
	Add, Sub, Mul, Pow, Div,
	Sqrt, FourthRoot, Factorial,
}

// ClassicCatalog keeps every operand an exact integer: division must be exact,
// roots must be perfect, powers take non-negative exponents and any result
// beyond 2^53 is rejected as an overflow.
type ClassicCatalog struct {
	allowed map[Action]bool
}

func (c *ClassicCatalog) Name() string { return "classic" }
func (c *ClassicCatalog) Description() string {
	return "exact integer arithmetic with powers, perfect roots and factorial"
}
func (c *ClassicCatalog) Actions() []Action { return classicActions }

func (c *ClassicCatalog) Apply(s stack.State, a Action) (stack.State, float64, bool) {
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
		v, ok := classicBinary(a, left, right)
		if !ok {
			return s, 0, false
		}
		return next, v, true
	default:
		next, x, ok := popUnary(s)
		if !ok {
			return s, 0, false
		}
		v, ok := classicUnary(a, x)
		if !ok {
			return s, 0, false
		}
		return next, v, true
	}
}

func classicBinary(a Action, left, right float64) (float64, bool) {
	switch a {
	case Add:
		return checkedInt(left + right)
	case Sub:
		return checkedInt(left - right)
	case Mul:
		return checkedInt(left * right)
	case Pow:
		return intPow(left, right)
	case Div:
		if right == 0 || math.Mod(left, right) != 0 {
			return 0, false
		}
		return left / right, true
	default:
		return 0, false
	}
}

func classicUnary(a Action, x float64) (float64, bool) {
	switch a {
	case Sqrt:
		return perfectRoot(x, 2)
	case FourthRoot:
		return perfectRoot(x, 4)
	case Factorial:
		return factorial(x)
	default:
		return 0, false
	}
}
