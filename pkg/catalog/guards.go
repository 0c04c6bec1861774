package catalog

import "math"

const (
	// integerEpsilon decides when a float operand counts as an integer.
	integerEpsilon = 1e-9

	// maxExactInt is the largest magnitude at which float64 still represents
	// every integer exactly.
	maxExactInt = 1 << 53
)

func nearInteger(x float64) bool {
	return math.Abs(x-math.Round(x)) <= integerEpsilon
}

// factorial accepts integers strictly between 2 and 10; 0!, 1! and 2! would be
// no-ops and larger values only blow the search up.
func factorial(x float64) (float64, bool) {
	if x <= 2 || x >= 10 || !nearInteger(x) {
		return 0, false
	}
	n := int64(math.Round(x))
	if n <= 2 || n >= 10 {
		return 0, false
	}
	p := int64(1)
	for i := int64(2); i <= n; i++ {
		if p > maxExactInt/i {
			return 0, false
		}
		p *= i
	}
	return float64(p), true
}

func checkedInt(v float64) (float64, bool) {
	return v, math.Abs(v) <= maxExactInt
}

// intPow raises an integer base to a non-negative integer power, failing on
// overflow.
func intPow(base, power float64) (float64, bool) {
	switch {
	case power < 0:
		return 0, false
	case power == 0:
		return 1, true
	case base == 0 || base == 1:
		return base, true
	case base == -1:
		if math.Mod(power, 2) == 0 {
			return 1, true
		}
		return -1, true
	}
	p := 1.0
	for i := 0.0; i < power; i++ {
		p *= base
		if math.Abs(p) > maxExactInt {
			return 0, false
		}
	}
	return p, true
}

// perfectRoot returns the integer k with k^degree == n for n > 1.
func perfectRoot(n float64, degree int) (float64, bool) {
	if n <= 1 {
		return 0, false
	}
	r := n
	for d := degree; d > 1; d /= 2 {
		r = math.Sqrt(r)
	}
	k := math.Round(r)
	p := 1.0
	for i := 0; i < degree; i++ {
		p *= k
	}
	if p != n {
		return 0, false
	}
	return k, true
}
