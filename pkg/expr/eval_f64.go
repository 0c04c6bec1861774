package expr

import "math"

// factorialF64 is a fixed lookup table; 170! is the last finite float64 factorial.
var factorialF64 [171]float64

func init() {
	factorialF64[0] = 1
	for i := 1; i < len(factorialF64); i++ {
		factorialF64[i] = factorialF64[i-1] * float64(i)
	}
}

// EvalF64 for ConstNode returns the literal.
func (c *ConstNode) EvalF64() (float64, bool) {
	return float64(c.Val), true
}

// EvalF64 for UnaryNode dispatches on op.
func (u *UnaryNode) EvalF64() (float64, bool) {
	child, ok := u.Child.EvalF64()
	if !ok {
		return 0, false
	}

	switch u.Op {
	case OpNeg:
		return -child, true

	case OpFactorial:
		r := math.Round(child)
		if math.Abs(child-r) > 1e-9 || r < 0 || r >= float64(len(factorialF64)) {
			return 0, false
		}
		return factorialF64[int(r)], true

	case OpSqrt:
		if child < 0 || math.IsNaN(child) {
			return 0, false
		}
		return math.Sqrt(child), true

	case OpFourthRoot:
		if child < 0 || math.IsNaN(child) {
			return 0, false
		}
		return math.Sqrt(math.Sqrt(child)), true

	case OpFloor:
		if math.IsInf(child, 0) || math.IsNaN(child) {
			return 0, false
		}
		return math.Floor(child), true

	case OpCeil:
		if math.IsInf(child, 0) || math.IsNaN(child) {
			return 0, false
		}
		return math.Ceil(child), true

	case OpAbs:
		return math.Abs(child), true

	default:
		return 0, false
	}
}

// EvalF64 for BinaryNode dispatches on op.
func (b *BinaryNode) EvalF64() (float64, bool) {
	left, ok := b.Left.EvalF64()
	if !ok {
		return 0, false
	}
	right, ok := b.Right.EvalF64()
	if !ok {
		return 0, false
	}

	var r float64
	switch b.Op {
	case OpAdd:
		r = left + right
	case OpSub:
		r = left - right
	case OpMul:
		r = left * right
	case OpDiv:
		if right == 0 {
			return 0, false
		}
		r = left / right
	case OpMod:
		if right == 0 {
			return 0, false
		}
		r = math.Mod(left, right)
	case OpPow:
		r = math.Pow(left, right)
	default:
		return 0, false
	}
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	return r, true
}
