package expr

// ExprNode is the interface for all expression tree nodes.
type ExprNode interface {
	EvalF64() (float64, bool)
	String() string
	LaTeX() string
	Clone() ExprNode
	NodeCount() int
	Depth() int
}

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpFactorial
	OpSqrt
	OpFourthRoot
	OpFloor
	OpCeil
	OpAbs
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

// ConstNode represents an integer literal. Trees built from a derivation only
// ever contain the literal 4.
type ConstNode struct {
	Val int64
}

// UnaryNode applies a unary operation to a child expression.
type UnaryNode struct {
	Op    UnaryOp
	Child ExprNode
}

// BinaryNode applies a binary operation to two child expressions.
type BinaryNode struct {
	Op          BinaryOp
	Left, Right ExprNode
}
