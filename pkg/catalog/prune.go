package catalog

// redundantPairs lists (previous, next) action pairs that are no-ops or cancel
// each other whatever the operands are. Unary actions always act on the value
// the previous action left on top, so the pair alone decides.
var redundantPairs = map[[2]Action]bool{
	{Abs, Abs}:        true,
	{Sqrt, Abs}:       true,
	{FourthRoot, Abs}: true,
	{Factorial, Abs}:  true,
	{Floor, Floor}:    true,
	{Floor, Ceil}:     true,
	{Ceil, Floor}:     true,
	{Ceil, Ceil}:      true,
	{Abs, Neg}:        true,
	{Neg, Abs}:        true,
	{Neg, Neg}:        true,
}

// Pruned reports whether next is redundant right after prev.
func Pruned(prev, next Action) bool {
	return redundantPairs[[2]Action{prev, next}]
}

// PrunedPairs returns a copy of the pruning table.
func PrunedPairs() [][2]Action {
	out := make([][2]Action, 0, len(redundantPairs))
	for p := range redundantPairs {
		out = append(out, p)
	}
	return out
}
