// Package ast implements the expression-node family (C5): a tagged sum
// type realizing the node catalog spec.md §3/§4.5 describes, in place of
// the original's virtual-dispatch-plus-RTTI hierarchy (spec.md §9). The
// large shape-specialized catalog (vov, covoc, vovovov, …) is collapsed
// into this single generic Node carrying a ShapeHint string in which the
// optimizer records the node's operand pattern, rather than one Go type per
// shape — the catalog is an optimization tuning knob, not a semantic
// requirement (spec.md §9).
package ast

import (
	"math"
	"strings"

	"github.com/exprtk-go/exprtk/internal/numeric"
)

// Kind discriminates the node variants of spec.md §3.
type Kind int

const (
	KindNull Kind = iota
	KindConstant
	KindVariable
	KindStringConst
	KindStringVar
	KindStringRange
	KindConstStringRange
	KindUnary
	KindBinary
	KindNAry // clamp/iclamp/inrange (3) and the variadic aggregates (1..n)
	KindConditional
	KindWhile
	KindRepeatUntil
	KindSwitch      // Children: [cond0, cons0, cond1, cons1, ..., default] (odd count)
	KindMultiSwitch // Children: [cond0, cons0, cond1, cons1, ...] (even count)
	KindFunctionCall
	KindVarargFunctionCall
	KindAssignment
	KindShortCircuitAnd
	KindShortCircuitOr
	KindSpecialFunc3
	KindSpecialFunc4
	KindIPow
)

// Node is the single generic AST node type. Only the fields relevant to
// Kind are populated; see the New* constructors for the intended shape of
// each variant.
type Node[N Number] struct {
	Kind     Kind
	Op       Operator
	Children []*Node[N]

	// Borrowed is true when this node is a bare reference into symbol-table
	// storage (a variable or string-variable leaf): the parent never frees
	// it (spec.md §3's node-lifetime invariant).
	Borrowed bool

	// ReadOnly marks a variable leaf resolved from a symtab entry registered
	// as a constant (is_constant=true, spec.md §3/§4.2): the optimizer and
	// parser consult this to reject the leaf as an assignment target.
	ReadOnly bool

	Const    N
	VarRef   *N
	StrConst string
	StrRef   *string
	Range    *RangePack[N]

	Func       Func[N]
	VarargFunc VarargFunc[N]
	Args       []*Node[N] // children evaluated and passed to Func/VarargFunc

	Exp     int  // ipow exponent, 1..60
	Inverse bool // ipow_inv

	SFTag int // special-function catalog index (sf3/sf4)

	// ShapeHint records the branch_to_id pattern (e.g. "(v)o(c)") the
	// synthesizer matched when it built this node, purely for
	// introspection/dump (internal/dump) — it does not affect Value.
	ShapeHint string
}

// NewNull returns the empty/no-op node: Value is 0, nothing to free.
func NewNull[N Number]() *Node[N] { return &Node[N]{Kind: KindNull} }

func NewConstant[N Number](v N) *Node[N] { return &Node[N]{Kind: KindConstant, Const: v} }

// NewVariable wraps a borrowed reference into symbol-table storage.
func NewVariable[N Number](ref *N) *Node[N] {
	return &Node[N]{Kind: KindVariable, VarRef: ref, Borrowed: true}
}

func NewStringConst[N Number](s string) *Node[N] { return &Node[N]{Kind: KindStringConst, StrConst: s} }

func NewStringVar[N Number](ref *string) *Node[N] {
	return &Node[N]{Kind: KindStringVar, StrRef: ref, Borrowed: true}
}

func NewStringRange[N Number](ref *string, r *RangePack[N]) *Node[N] {
	return &Node[N]{Kind: KindStringRange, StrRef: ref, Range: r, Borrowed: true}
}

func NewConstStringRange[N Number](s string, r *RangePack[N]) *Node[N] {
	return &Node[N]{Kind: KindConstStringRange, StrConst: s, Range: r}
}

func NewUnary[N Number](op Operator, child *Node[N]) *Node[N] {
	return &Node[N]{Kind: KindUnary, Op: op, Children: []*Node[N]{child}}
}

func NewBinary[N Number](op Operator, left, right *Node[N]) *Node[N] {
	return &Node[N]{Kind: KindBinary, Op: op, Children: []*Node[N]{left, right}}
}

func NewNAry[N Number](op Operator, children []*Node[N]) *Node[N] {
	return &Node[N]{Kind: KindNAry, Op: op, Children: children}
}

func NewConditional[N Number](test, then, els *Node[N]) *Node[N] {
	return &Node[N]{Kind: KindConditional, Children: []*Node[N]{test, then, els}}
}

func NewWhile[N Number](test, body *Node[N]) *Node[N] {
	return &Node[N]{Kind: KindWhile, Children: []*Node[N]{test, body}}
}

func NewRepeatUntil[N Number](body, test *Node[N]) *Node[N] {
	return &Node[N]{Kind: KindRepeatUntil, Children: []*Node[N]{body, test}}
}

// NewSwitch builds a switch node: pairs is a flattened (cond, consequent)
// list; def is the required default branch. Children length is always
// odd (invariant 2 of spec.md §3).
func NewSwitch[N Number](pairs []*Node[N], def *Node[N]) *Node[N] {
	children := append(append([]*Node[N]{}, pairs...), def)
	return &Node[N]{Kind: KindSwitch, Children: children}
}

// NewMultiSwitch builds a [*] node: pairs only, no default. Children
// length is always even.
func NewMultiSwitch[N Number](pairs []*Node[N]) *Node[N] {
	return &Node[N]{Kind: KindMultiSwitch, Children: append([]*Node[N]{}, pairs...)}
}

func NewFunctionCall[N Number](f Func[N], args []*Node[N]) *Node[N] {
	return &Node[N]{Kind: KindFunctionCall, Func: f, Args: args}
}

func NewVarargFunctionCall[N Number](f VarargFunc[N], args []*Node[N]) *Node[N] {
	return &Node[N]{Kind: KindVarargFunctionCall, VarargFunc: f, Args: args}
}

// NewAssignment stores target (must be a borrowed variable leaf per
// spec.md §4.5) and the value expression.
func NewAssignment[N Number](target *Node[N], value *Node[N]) *Node[N] {
	return &Node[N]{Kind: KindAssignment, Children: []*Node[N]{target, value}}
}

func NewShortCircuitAnd[N Number](left, right *Node[N]) *Node[N] {
	return &Node[N]{Kind: KindShortCircuitAnd, Children: []*Node[N]{left, right}}
}

func NewShortCircuitOr[N Number](left, right *Node[N]) *Node[N] {
	return &Node[N]{Kind: KindShortCircuitOr, Children: []*Node[N]{left, right}}
}

func NewSpecialFunc3[N Number](tag int, a, b, c *Node[N]) *Node[N] {
	return &Node[N]{Kind: KindSpecialFunc3, SFTag: tag, Children: []*Node[N]{a, b, c}}
}

func NewSpecialFunc4[N Number](tag int, a, b, c, d *Node[N]) *Node[N] {
	return &Node[N]{Kind: KindSpecialFunc4, SFTag: tag, Children: []*Node[N]{a, b, c, d}}
}

// NewIPow builds the collapsed ipow<k>/ipow_inv<k> node: a single
// parameterized node standing in for the original's 120 generated
// specializations (one Go generic per exponent would add nothing — the
// exponent is a plain runtime field, not a distinct shape).
func NewIPow[N Number](base *Node[N], exp int, inverse bool) *Node[N] {
	return &Node[N]{Kind: KindIPow, Children: []*Node[N]{base}, Exp: exp, Inverse: inverse}
}

// IsConstant reports whether this subtree has no free variables and can
// be folded to a literal at synthesis time.
func (n *Node[N]) IsConstant() bool {
	switch n.Kind {
	case KindConstant, KindStringConst:
		return true
	case KindVariable, KindStringVar, KindStringRange, KindConstStringRange,
		KindFunctionCall, KindVarargFunctionCall, KindAssignment:
		return false
	default:
		for _, c := range n.Children {
			if !c.IsConstant() {
				return false
			}
		}
		return true
	}
}

// IsStringValued reports whether n produces a value on the string channel
// (spec.md §4.5/§4.6: a string literal/var/range, or a concat result),
// which the parser consults to pick '+' between OpAdd and OpStrConcat.
func (n *Node[N]) IsStringValued() bool {
	switch n.Kind {
	case KindStringConst, KindStringVar, KindStringRange, KindConstStringRange:
		return true
	case KindBinary:
		return n.Op == OpStrConcat
	default:
		return false
	}
}

// ShapeID computes the branch_to_id pattern string spec.md §4.7 keys its
// synthesis dispatch table on, e.g. "v", "c", "b" for leaves.
func (n *Node[N]) ShapeID() string {
	if n == nil {
		return "n"
	}
	switch n.Kind {
	case KindConstant:
		return "c"
	case KindVariable:
		return "v"
	default:
		return "b"
	}
}

// Value performs the synchronous tree walk spec.md §5 requires: no
// suspension points, deterministic left-to-right child evaluation.
func (n *Node[N]) Value(k Kernel[N]) N {
	switch n.Kind {
	case KindNull:
		var zero N
		return zero
	case KindConstant:
		return n.Const
	case KindVariable:
		return *n.VarRef
	case KindStringConst, KindStringVar, KindStringRange, KindConstStringRange:
		return stringChannelNaN[N](k)
	case KindUnary:
		return n.valueUnary(k)
	case KindBinary:
		return n.valueBinary(k)
	case KindNAry:
		return n.valueNAry(k)
	case KindConditional:
		if k.IsTrue(n.Children[0].Value(k)) {
			return n.Children[1].Value(k)
		}
		return n.Children[2].Value(k)
	case KindWhile:
		var last N
		ran := false
		for k.IsTrue(n.Children[0].Value(k)) {
			last = n.Children[1].Value(k)
			ran = true
		}
		if !ran {
			var zero N
			return zero
		}
		return last
	case KindRepeatUntil:
		var last N
		for {
			last = n.Children[0].Value(k)
			if k.IsTrue(n.Children[1].Value(k)) {
				break
			}
		}
		return last
	case KindSwitch:
		pairs := n.Children[:len(n.Children)-1]
		for i := 0; i+1 < len(pairs); i += 2 {
			if k.IsTrue(pairs[i].Value(k)) {
				return pairs[i+1].Value(k)
			}
		}
		return n.Children[len(n.Children)-1].Value(k)
	case KindMultiSwitch:
		var last N
		matched := false
		for i := 0; i+1 < len(n.Children); i += 2 {
			if k.IsTrue(n.Children[i].Value(k)) {
				last = n.Children[i+1].Value(k)
				matched = true
			}
		}
		if !matched {
			var zero N
			return zero
		}
		return last
	case KindFunctionCall:
		return n.Func(evalAll(n.Args, k))
	case KindVarargFunctionCall:
		return n.VarargFunc(evalAll(n.Args, k))
	case KindAssignment:
		v := n.Children[1].Value(k)
		*n.Children[0].VarRef = v
		return v
	case KindShortCircuitAnd:
		if !k.IsTrue(n.Children[0].Value(k)) {
			var zero N
			return zero
		}
		return boolN[N](k.IsTrue(n.Children[1].Value(k)))
	case KindShortCircuitOr:
		if k.IsTrue(n.Children[0].Value(k)) {
			return boolN[N](true)
		}
		return boolN[N](k.IsTrue(n.Children[1].Value(k)))
	case KindSpecialFunc3:
		return evalSF3(n.SFTag, n.Children[0].Value(k), n.Children[1].Value(k), n.Children[2].Value(k), k)
	case KindSpecialFunc4:
		return evalSF4(n.SFTag, n.Children[0].Value(k), n.Children[1].Value(k), n.Children[2].Value(k), n.Children[3].Value(k), k)
	case KindIPow:
		v := n.Children[0].Value(k)
		r := k.FastExp(v, n.Exp)
		if n.Inverse {
			return N(1) / r
		}
		return r
	default:
		var zero N
		return zero
	}
}

func boolN[N Number](b bool) N {
	if b {
		return N(1)
	}
	var zero N
	return zero
}

func stringChannelNaN[N Number](k Kernel[N]) N {
	if k.Kind() == numeric.KindInteger {
		var zero N
		return zero
	}
	return N(math.NaN())
}

func evalAll[N Number](nodes []*Node[N], k Kernel[N]) []N {
	out := make([]N, len(nodes))
	for i, c := range nodes {
		out[i] = c.Value(k)
	}
	return out
}

func (n *Node[N]) valueUnary(k Kernel[N]) N {
	v := n.Children[0].Value(k)
	switch n.Op {
	case OpNot:
		return k.Not(v)
	case OpAbs:
		return k.Abs(v)
	case OpSin:
		return k.Sin(v)
	case OpCos:
		return k.Cos(v)
	case OpTan:
		return k.Tan(v)
	case OpAsin:
		return k.Asin(v)
	case OpAcos:
		return k.Acos(v)
	case OpAtan:
		return k.Atan(v)
	case OpSinh:
		return k.Sinh(v)
	case OpCosh:
		return k.Cosh(v)
	case OpTanh:
		return k.Tanh(v)
	case OpLog:
		return k.Log(v)
	case OpLog2:
		return k.Log2(v)
	case OpLog10:
		return k.Log10(v)
	case OpLog1p:
		return k.Log1p(v)
	case OpExp:
		return k.Exp(v)
	case OpExpm1:
		return k.Expm1(v)
	case OpSqrt:
		return k.Sqrt(v)
	case OpErf:
		return k.Erf(v)
	case OpErfc:
		return k.Erfc(v)
	case OpFrac:
		return k.Frac(v)
	case OpTrunc:
		return k.Trunc(v)
	case OpRound:
		return k.Round(v)
	case OpCeil:
		return k.Ceil(v)
	case OpFloor:
		return k.Floor(v)
	case OpSgn:
		return k.Sgn(v)
	case OpD2R:
		return k.D2R(v)
	case OpR2D:
		return k.R2D(v)
	case OpIsInteger:
		return boolN[N](k.IsInteger(v))
	case OpSub:
		return -v
	case OpAdd:
		return v
	default:
		var zero N
		return zero
	}
}

func (n *Node[N]) valueBinary(k Kernel[N]) N {
	a := n.Children[0].Value(k)
	op := n.Op
	if isStringOp(op) {
		return n.valueStringBinary(k)
	}
	b := n.Children[1].Value(k)
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	case OpMod:
		return k.Modulus(a, b)
	case OpPow:
		return k.Pow(a, b)
	case OpLT:
		return boolN[N](a < b)
	case OpLTE:
		return boolN[N](a <= b)
	case OpGT:
		return boolN[N](a > b)
	case OpGTE:
		return boolN[N](a >= b)
	case OpEQ:
		return boolN[N](k.Equal(a, b))
	case OpNE:
		return boolN[N](k.NEqual(a, b))
	case OpAnd:
		return k.And(a, b)
	case OpOr:
		return k.Or(a, b)
	case OpXor:
		return k.Xor(a, b)
	case OpNand:
		return k.Nand(a, b)
	case OpNor:
		return k.Nor(a, b)
	case OpXnor:
		return k.Xnor(a, b)
	case OpShr:
		return k.Shr(a, b)
	case OpShl:
		return k.Shl(a, b)
	case OpRoot:
		return k.Root(a, b)
	case OpLogn:
		return k.Logn(a, b)
	case OpAtan2:
		return k.Atan2(a, b)
	case OpHypot:
		return k.Hypot(a, b)
	case OpRoundn:
		return k.Roundn(a, int(b))
	default:
		var zero N
		return zero
	}
}

func isStringOp(op Operator) bool {
	switch op {
	case OpStrConcat, OpStrLT, OpStrLTE, OpStrGT, OpStrGTE, OpStrEQ, OpStrNE,
		OpStrIn, OpStrLike, OpStrILike:
		return true
	default:
		return false
	}
}

// valueStringBinary evaluates a string operator (spec.md §4.5); the
// numeric channel of the result is boolean-as-N except for concat, which
// has no numeric meaning and returns the string-channel sentinel.
func (n *Node[N]) valueStringBinary(k Kernel[N]) N {
	a, aok := n.Children[0].strValue(k)
	b, bok := n.Children[1].strValue(k)
	if !aok || !bok {
		return stringChannelNaN[N](k)
	}
	switch n.Op {
	case OpStrConcat:
		return stringChannelNaN[N](k)
	case OpStrLT:
		return boolN[N](a < b)
	case OpStrLTE:
		return boolN[N](a <= b)
	case OpStrGT:
		return boolN[N](a > b)
	case OpStrGTE:
		return boolN[N](a >= b)
	case OpStrEQ:
		return boolN[N](a == b)
	case OpStrNE:
		return boolN[N](a != b)
	case OpStrIn:
		return boolN[N](strings.Contains(b, a))
	case OpStrLike:
		return boolN[N](wildcardMatch(b, a, true))
	case OpStrILike:
		return boolN[N](wildcardMatch(b, a, false))
	default:
		var zero N
		return zero
	}
}

// Str returns the string-channel value of a node that carries one: the
// concat operator, string literals/vars/ranges. Non-string nodes report ok=false.
func (n *Node[N]) Str(k Kernel[N]) (string, bool) {
	return n.strValue(k)
}

func (n *Node[N]) strValue(k Kernel[N]) (string, bool) {
	switch n.Kind {
	case KindStringConst:
		return n.StrConst, true
	case KindStringVar:
		return *n.StrRef, true
	case KindStringRange:
		s := *n.StrRef
		lo, hi := n.Range.Resolve(k, len(s))
		if hi < lo {
			return "", true
		}
		return s[lo : hi+1], true
	case KindConstStringRange:
		lo, hi := n.Range.Resolve(k, len(n.StrConst))
		if hi < lo {
			return "", true
		}
		return n.StrConst[lo : hi+1], true
	case KindBinary:
		if n.Op == OpStrConcat {
			a, aok := n.Children[0].strValue(k)
			b, bok := n.Children[1].strValue(k)
			if !aok || !bok {
				return "", false
			}
			return a + b, true
		}
		return "", false
	default:
		return "", false
	}
}

func (n *Node[N]) valueNAry(k Kernel[N]) N {
	switch n.Op {
	case OpClamp:
		a := n.Children[0].Value(k)
		x := n.Children[1].Value(k)
		b := n.Children[2].Value(k)
		return k.Clamp(a, x, b)
	case OpIClamp:
		a := n.Children[0].Value(k)
		x := n.Children[1].Value(k)
		b := n.Children[2].Value(k)
		return k.IClamp(a, x, b)
	case OpInRange:
		if as, aok := n.Children[0].strValue(k); aok {
			if xs, xok := n.Children[1].strValue(k); xok {
				if bs, bok := n.Children[2].strValue(k); bok {
					return boolN[N](as <= xs && xs <= bs)
				}
			}
		}
		a := n.Children[0].Value(k)
		x := n.Children[1].Value(k)
		b := n.Children[2].Value(k)
		return boolN[N](k.InRange(a, x, b))
	case OpSum:
		var total N
		for _, c := range n.Children {
			total += c.Value(k)
		}
		return total
	case OpMulAgg:
		if len(n.Children) == 0 {
			var zero N
			return zero
		}
		total := n.Children[0].Value(k)
		for _, c := range n.Children[1:] {
			total *= c.Value(k)
		}
		return total
	case OpAvg:
		if len(n.Children) == 0 {
			var zero N
			return zero
		}
		var total N
		for _, c := range n.Children {
			total += c.Value(k)
		}
		return total / N(len(n.Children))
	case OpMin:
		return n.foldExtreme(k, true)
	case OpMax:
		return n.foldExtreme(k, false)
	case OpMand:
		for _, c := range n.Children {
			if !k.IsTrue(c.Value(k)) {
				return boolN[N](false)
			}
		}
		return boolN[N](true)
	case OpMor:
		for _, c := range n.Children {
			if k.IsTrue(c.Value(k)) {
				return boolN[N](true)
			}
		}
		return boolN[N](false)
	case OpMulti:
		var last N
		for _, c := range n.Children {
			last = c.Value(k)
		}
		return last
	default:
		var zero N
		return zero
	}
}

func (n *Node[N]) foldExtreme(k Kernel[N], wantMin bool) N {
	if len(n.Children) == 0 {
		var zero N
		return zero
	}
	best := n.Children[0].Value(k)
	for _, c := range n.Children[1:] {
		v := c.Value(k)
		if (wantMin && v < best) || (!wantMin && v > best) {
			best = v
		}
	}
	return best
}

// wildcardMatch implements '*' (any run) and '?' (single char) globbing for
// the string like/ilike operators (spec.md §4.5, §8).
func wildcardMatch(pattern, s string, caseSensitive bool) bool {
	if !caseSensitive {
		pattern = strings.ToLower(pattern)
		s = strings.ToLower(s)
	}
	return globMatch(pattern, s)
}

func globMatch(pat, s string) bool {
	if pat == "" {
		return s == ""
	}
	if pat[0] == '*' {
		if globMatch(pat[1:], s) {
			return true
		}
		for i := 0; i < len(s); i++ {
			if globMatch(pat[1:], s[i+1:]) {
				return true
			}
		}
		return false
	}
	if s == "" {
		return false
	}
	if pat[0] == '?' || pat[0] == s[0] {
		return globMatch(pat[1:], s[1:])
	}
	return false
}
