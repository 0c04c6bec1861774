package registry

// Rank orders derivations: fewer actions first, then fewer characters in the
// rendered expression. Equal ranks are ties and the incumbent keeps its slot.
type Rank struct {
	PathLen int `json:"path_length"`
	ExprLen int `json:"expression_length"`
}

// Better reports whether r strictly beats other.
func (r Rank) Better(other Rank) bool {
	if r.PathLen != other.PathLen {
		return r.PathLen < other.PathLen
	}
	return r.ExprLen < other.ExprLen
}
