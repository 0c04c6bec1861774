package catalog

import (
	"errors"
	"fmt"

	"github.com/wildfunctions/fourfours/pkg/expr"
)

// ErrUnbalancedPath means an action sequence does not reduce to exactly one
// expression.
var ErrUnbalancedPath = errors.New("unbalanced action path")

// Build reconstructs the expression tree of an action sequence by replaying it
// on a stack of nodes. Binary actions pop the right operand first.
func Build(path []Action) (expr.ExprNode, error) {
	nodes := make([]expr.ExprNode, 0, 4)
	for i, a := range path {
		switch a.Arity() {
		case 0:
			nodes = append(nodes, &expr.ConstNode{Val: 4})
		case 1:
			if len(nodes) < 1 {
				return nil, fmt.Errorf("%w: %s underflows at step %d", ErrUnbalancedPath, a, i)
			}
			top := len(nodes) - 1
			nodes[top] = &expr.UnaryNode{Op: unaryOps[a], Child: nodes[top]}
		case 2:
			if len(nodes) < 2 {
				return nil, fmt.Errorf("%w: %s underflows at step %d", ErrUnbalancedPath, a, i)
			}
			right := nodes[len(nodes)-1]
			left := nodes[len(nodes)-2]
			nodes = nodes[:len(nodes)-2]
			nodes = append(nodes, &expr.BinaryNode{Op: binaryOps[a], Left: left, Right: right})
		}
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("%w: %d expressions remain", ErrUnbalancedPath, len(nodes))
	}
	return nodes[0], nil
}
