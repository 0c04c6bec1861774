package registry

import (
	"unicode/utf8"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/expr"
)

// Candidate is a completed derivation offered to the registry.
type Candidate struct {
	Value      float64
	Path       []catalog.Action
	Tree       expr.ExprNode
	Expression string
}

// NewCandidate renders tree and takes its own copy of path, so the caller may
// keep mutating its search path afterwards.
func NewCandidate(value float64, path []catalog.Action, tree expr.ExprNode) Candidate {
	p := make([]catalog.Action, len(path))
	copy(p, path)
	return Candidate{
		Value:      value,
		Path:       p,
		Tree:       tree,
		Expression: tree.String(),
	}
}

// Rank returns the candidate's position under the tie-break policy.
func (c Candidate) Rank() Rank {
	return Rank{PathLen: len(c.Path), ExprLen: utf8.RuneCountInString(c.Expression)}
}
