package expr

import (
	"strconv"
	"strings"
)

// Precedence levels used for minimal parenthesization. Power is right
// associative; every other binary operator is left associative.
const (
	precAdditive = iota + 1
	precMultiplicative
	precNeg
	precPow
	precPostfix // factorial and radicals
	precAtom    // literals and self-delimiting brackets
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpPow: "^",
}

var binaryOpLaTeX = map[BinaryOp]string{
	OpAdd: " + ",
	OpSub: " - ",
	OpMul: " \\cdot ",
	OpMod: " \\bmod ",
	OpPow: "^",
}

// bracket glyphs for the self-delimiting unary constructs.
var unaryBrackets = map[UnaryOp][2]string{
	OpFloor: {"⌊", "⌋"},
	OpCeil:  {"⌈", "⌉"},
	OpAbs:   {"|", "|"},
}

var unaryBracketsLaTeX = map[UnaryOp][2]string{
	OpFloor: {"\\lfloor ", " \\rfloor"},
	OpCeil:  {"\\lceil ", " \\rceil"},
	OpAbs:   {"\\left|", "\\right|"},
}

func binaryPrec(op BinaryOp) int {
	switch op {
	case OpAdd, OpSub:
		return precAdditive
	case OpPow:
		return precPow
	default:
		return precMultiplicative
	}
}

func commutative(op BinaryOp) bool {
	return op == OpAdd || op == OpMul
}

func isRadical(op UnaryOp) bool {
	return op == OpSqrt || op == OpFourthRoot
}

func precedence(node ExprNode) int {
	switch n := node.(type) {
	case *BinaryNode:
		return binaryPrec(n.Op)
	case *UnaryNode:
		switch {
		case n.Op == OpNeg:
			return precNeg
		case n.Op == OpFactorial || isRadical(n.Op):
			return precPostfix
		default:
			return precAtom
		}
	default:
		return precAtom
	}
}

// needsParens reports whether child must be wrapped when rendered under parent.
// right is true for the right operand of a binary parent.
func needsParens(child, parent ExprNode, right bool) bool {
	cp := precedence(child)
	switch p := parent.(type) {
	case *BinaryNode:
		if u, ok := child.(*UnaryNode); ok && u.Op == OpNeg && right {
			return true
		}
		pp := binaryPrec(p.Op)
		if cp != pp {
			return cp < pp
		}
		if p.Op == OpPow {
			return !right
		}
		if !right {
			return false
		}
		b, ok := child.(*BinaryNode)
		return !ok || b.Op != p.Op || !commutative(p.Op)
	case *UnaryNode:
		switch {
		case p.Op == OpNeg:
			return cp < precNeg
		case p.Op == OpFactorial:
			return cp < precAtom
		case isRadical(p.Op):
			if u, ok := child.(*UnaryNode); ok && isRadical(u.Op) {
				return false
			}
			return cp < precAtom
		default:
			return false
		}
	default:
		return false
	}
}

// String methods

func (c *ConstNode) String() string {
	return strconv.FormatInt(c.Val, 10)
}

func (u *UnaryNode) String() string {
	var sb strings.Builder
	writeText(&sb, u)
	return sb.String()
}

func (b *BinaryNode) String() string {
	var sb strings.Builder
	writeText(&sb, b)
	return sb.String()
}

// writeTextChild renders child under parent. bracketed is true when parent
// already delimits the child, in which case no parentheses are added.
func writeTextChild(sb *strings.Builder, child, parent ExprNode, right, bracketed bool) {
	if !bracketed && needsParens(child, parent, right) {
		sb.WriteByte('(')
		writeText(sb, child)
		sb.WriteByte(')')
		return
	}
	writeText(sb, child)
}

func writeText(sb *strings.Builder, node ExprNode) {
	switch n := node.(type) {
	case *ConstNode:
		sb.WriteString(n.String())
	case *UnaryNode:
		switch n.Op {
		case OpNeg:
			sb.WriteByte('-')
			writeTextChild(sb, n.Child, n, false, false)
		case OpFactorial:
			writeTextChild(sb, n.Child, n, false, false)
			sb.WriteByte('!')
		case OpSqrt:
			sb.WriteString("√")
			writeTextChild(sb, n.Child, n, false, false)
		case OpFourthRoot:
			sb.WriteString("∜")
			writeTextChild(sb, n.Child, n, false, false)
		default:
			br := unaryBrackets[n.Op]
			sb.WriteString(br[0])
			writeTextChild(sb, n.Child, n, false, true)
			sb.WriteString(br[1])
		}
	case *BinaryNode:
		writeTextChild(sb, n.Left, n, false, false)
		sb.WriteString(binaryOpSymbols[n.Op])
		writeTextChild(sb, n.Right, n, true, false)
	}
}

// LaTeX methods

func (c *ConstNode) LaTeX() string {
	return strconv.FormatInt(c.Val, 10)
}

func (u *UnaryNode) LaTeX() string {
	var sb strings.Builder
	writeLaTeX(&sb, u)
	return sb.String()
}

func (b *BinaryNode) LaTeX() string {
	var sb strings.Builder
	writeLaTeX(&sb, b)
	return sb.String()
}

func writeLaTeXChild(sb *strings.Builder, child, parent ExprNode, right, bracketed bool) {
	if !bracketed && needsParens(child, parent, right) {
		sb.WriteString("\\left(")
		writeLaTeX(sb, child)
		sb.WriteString("\\right)")
		return
	}
	writeLaTeX(sb, child)
}

func writeLaTeX(sb *strings.Builder, node ExprNode) {
	switch n := node.(type) {
	case *ConstNode:
		sb.WriteString(n.LaTeX())
	case *UnaryNode:
		switch n.Op {
		case OpNeg:
			sb.WriteByte('-')
			writeLaTeXChild(sb, n.Child, n, false, false)
		case OpFactorial:
			writeLaTeXChild(sb, n.Child, n, false, false)
			sb.WriteByte('!')
		case OpSqrt:
			sb.WriteString("\\sqrt{")
			writeLaTeX(sb, n.Child)
			sb.WriteByte('}')
		case OpFourthRoot:
			sb.WriteString("\\sqrt[4]{")
			writeLaTeX(sb, n.Child)
			sb.WriteByte('}')
		default:
			br := unaryBracketsLaTeX[n.Op]
			sb.WriteString(br[0])
			writeLaTeXChild(sb, n.Child, n, false, true)
			sb.WriteString(br[1])
		}
	case *BinaryNode:
		if n.Op == OpDiv {
			sb.WriteString("\\frac{")
			writeLaTeX(sb, n.Left)
			sb.WriteString("}{")
			writeLaTeX(sb, n.Right)
			sb.WriteByte('}')
			return
		}
		writeLaTeXChild(sb, n.Left, n, false, false)
		if n.Op == OpPow {
			sb.WriteString("^{")
			writeLaTeX(sb, n.Right)
			sb.WriteByte('}')
			return
		}
		sb.WriteString(binaryOpLaTeX[n.Op])
		writeLaTeXChild(sb, n.Right, n, true, false)
	}
}
