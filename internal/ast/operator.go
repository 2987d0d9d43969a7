package ast

// Operator tags a unary/binary/n-ary node's runtime dispatch (spec.md §4.5).
// The C++ original models this as virtual dispatch per shape class; here it
// is a plain enum switched on inside Node.Value, the tagged-sum-type
// realization the design notes call for instead of RTTI pattern matching.
type Operator int

const (
	OpNone Operator = iota

	// Arithmetic / comparison (binary).
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpLT
	OpLTE
	OpGT
	OpGTE
	OpEQ
	OpNE

	// Boolean (binary, full evaluation — not short-circuited).
	OpAnd
	OpOr
	OpXor
	OpNand
	OpNor
	OpXnor

	// Boolean (unary).
	OpNot

	// Bit-ish (binary).
	OpShr
	OpShl

	// Trinary named semantics (fixed 3-ary, dispatched through the n-ary node).
	OpClamp
	OpIClamp
	OpInRange

	// Variadic aggregates (n-ary, 1..N children).
	OpSum
	OpMulAgg
	OpAvg
	OpMin
	OpMax
	OpMand
	OpMor
	OpMulti

	// Unary named functions.
	OpAbs
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
	OpSinh
	OpCosh
	OpTanh
	OpLog
	OpLog2
	OpLog10
	OpLog1p
	OpExp
	OpExpm1
	OpSqrt
	OpErf
	OpErfc
	OpFrac
	OpTrunc
	OpRound
	OpCeil
	OpFloor
	OpSgn
	OpD2R
	OpR2D
	OpIsInteger

	// Binary named functions (non-operator-syntax).
	OpRoot
	OpLogn
	OpAtan2
	OpHypot
	OpRoundn

	// Short-circuit word-operator synonyms ('&', '|'); distinct from
	// OpAnd/OpOr, which always fully evaluate both operands.
	OpScAnd
	OpScOr

	// String operators.
	OpStrConcat
	OpStrLT
	OpStrLTE
	OpStrGT
	OpStrGTE
	OpStrEQ
	OpStrNE
	OpStrIn
	OpStrLike
	OpStrILike

	// Assignment.
	OpAssign
)

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpPow:
		return "^"
	case OpLT:
		return "<"
	case OpLTE:
		return "<="
	case OpGT:
		return ">"
	case OpGTE:
		return ">="
	case OpEQ:
		return "=="
	case OpNE:
		return "!="
	case OpAssign:
		return ":="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	case OpNand:
		return "nand"
	case OpNor:
		return "nor"
	case OpXnor:
		return "xnor"
	case OpNot:
		return "not"
	case OpShr:
		return ">>"
	case OpShl:
		return "<<"
	case OpScAnd:
		return "&"
	case OpScOr:
		return "|"
	case OpClamp:
		return "clamp"
	case OpIClamp:
		return "iclamp"
	case OpInRange:
		return "inrange"
	case OpSum:
		return "sum"
	case OpMulAgg:
		return "mul"
	case OpAvg:
		return "avg"
	case OpMin:
		return "min"
	case OpMax:
		return "max"
	case OpMand:
		return "mand"
	case OpMor:
		return "mor"
	case OpMulti:
		return "multi"
	case OpStrConcat:
		return "+"
	case OpStrLT:
		return "<"
	case OpStrLTE:
		return "<="
	case OpStrGT:
		return ">"
	case OpStrGTE:
		return ">="
	case OpStrEQ:
		return "=="
	case OpStrNE:
		return "!="
	case OpStrIn:
		return "in"
	case OpStrLike:
		return "like"
	case OpStrILike:
		return "ilike"
	case OpAbs, OpSin, OpCos, OpTan, OpAsin, OpAcos, OpAtan, OpSinh, OpCosh,
		OpTanh, OpLog, OpLog2, OpLog10, OpLog1p, OpExp, OpExpm1, OpSqrt,
		OpErf, OpErfc, OpFrac, OpTrunc, OpRound, OpCeil, OpFloor, OpSgn,
		OpD2R, OpR2D, OpIsInteger, OpRoot, OpLogn, OpAtan2, OpHypot, OpRoundn:
		return namedOpStrings[o]
	default:
		return "op"
	}
}

var namedOpStrings = map[Operator]string{
	OpAbs: "abs", OpSin: "sin", OpCos: "cos", OpTan: "tan",
	OpAsin: "asin", OpAcos: "acos", OpAtan: "atan",
	OpSinh: "sinh", OpCosh: "cosh", OpTanh: "tanh",
	OpLog: "log", OpLog2: "log2", OpLog10: "log10", OpLog1p: "log1p",
	OpExp: "exp", OpExpm1: "expm1", OpSqrt: "sqrt",
	OpErf: "erf", OpErfc: "erfc", OpFrac: "frac", OpTrunc: "trunc",
	OpRound: "round", OpCeil: "ceil", OpFloor: "floor", OpSgn: "sgn",
	OpD2R: "d2r", OpR2D: "r2d", OpIsInteger: "is_integer",
	OpRoot: "root", OpLogn: "logn", OpAtan2: "atan2", OpHypot: "hypot",
	OpRoundn: "roundn",
}

// IsCommutative reports whether operator order doesn't affect the result.
// The optimizer does not consult it; its rewrites match both operand
// orders directly.
func (o Operator) IsCommutative() bool {
	switch o {
	case OpAdd, OpMul, OpEQ, OpNE, OpAnd, OpOr, OpXor, OpNand, OpNor, OpXnor:
		return true
	default:
		return false
	}
}
