package catalog

import (
	"fmt"
	"strings"

	"github.com/wildfunctions/fourfours/pkg/expr"
)

// Action is one move of the stack machine: pushing a 4 or applying an operator.
type Action int

const (
	Push4 Action = iota
	Add
	Sub
	Mul
	Pow
	Div
	Mod
	Sqrt
	FourthRoot
	Floor
	Ceil
	Abs
	Neg
	Factorial
)

var actionNames = map[Action]string{
	Push4:      "4",
	Add:        "+",
	Sub:        "-",
	Mul:        "*",
	Pow:        "^",
	Div:        "/",
	Mod:        "%",
	Sqrt:       "√",
	FourthRoot: "∜",
	Floor:      "⌊⌋",
	Ceil:       "⌈⌉",
	Abs:        "||",
	Neg:        "neg",
	Factorial:  "!",
}

var binaryOps = map[Action]expr.BinaryOp{
	Add: expr.OpAdd,
	Sub: expr.OpSub,
	Mul: expr.OpMul,
	Pow: expr.OpPow,
	Div: expr.OpDiv,
	Mod: expr.OpMod,
}

var unaryOps = map[Action]expr.UnaryOp{
	Sqrt:       expr.OpSqrt,
	FourthRoot: expr.OpFourthRoot,
	Floor:      expr.OpFloor,
	Ceil:       expr.OpCeil,
	Abs:        expr.OpAbs,
	Neg:        expr.OpNeg,
	Factorial:  expr.OpFactorial,
}

// Arity returns how many operands the action consumes.
func (a Action) Arity() int {
	if a == Push4 {
		return 0
	}
	if _, ok := binaryOps[a]; ok {
		return 2
	}
	return 1
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// MarshalText lets paths serialize as their glyphs in JSON reports.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// FormatPath renders an action sequence the way progress lines show it,
// e.g. "[4 4 + 4 - 4 +]".
func FormatPath(path []Action) string {
	parts := make([]string, len(path))
	for i, a := range path {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
