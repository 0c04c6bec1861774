package expr

func (c *ConstNode) NodeCount() int { return 1 }
func (u *UnaryNode) NodeCount() int { return 1 + u.Child.NodeCount() }
func (b *BinaryNode) NodeCount() int {
	return 1 + b.Left.NodeCount() + b.Right.NodeCount()
}

func (c *ConstNode) Depth() int { return 1 }
func (u *UnaryNode) Depth() int { return 1 + u.Child.Depth() }
func (b *BinaryNode) Depth() int {
	ld := b.Left.Depth()
	rd := b.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}

// CountConst returns how many literals equal to val appear in the tree.
func CountConst(node ExprNode, val int64) int {
	switch n := node.(type) {
	case *ConstNode:
		if n.Val == val {
			return 1
		}
		return 0
	case *UnaryNode:
		return CountConst(n.Child, val)
	case *BinaryNode:
		return CountConst(n.Left, val) + CountConst(n.Right, val)
	default:
		return 0
	}
}
