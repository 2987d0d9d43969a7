// Package optimize implements the expression generator/optimizer (C7):
// the single entry point every synthesized binary operation flows
// through, performing null rejection, assignment validation,
// short-circuit constant folding, full constant folding, and algebraic
// strength reduction (spec.md §4.7).
package optimize

import (
	"github.com/exprtk-go/exprtk/internal/ast"
)

// Options configures the synthesizer. StrengthReduction defaults to true
// per spec.md §4.7 ("Strength reduction is gated by a configurable flag;
// the default is ON").
type Options struct {
	StrengthReduction bool
}

func DefaultOptions() Options { return Options{StrengthReduction: true} }

// Synthesize builds a binary node for op over left/right, applying the
// five-step pipeline of spec.md §4.7. The caller passes a Kernel so
// constant folding can evaluate the provisional node once.
func Synthesize[N ast.Number](k ast.Kernel[N], opts Options, op ast.Operator, left, right *ast.Node[N]) *ast.Node[N] {
	// 1. Null rejection: either side null collapses the whole node to null.
	if left == nil || left.Kind == ast.KindNull || right == nil || right.Kind == ast.KindNull {
		return ast.NewNull[N]()
	}

	// 2. Assignment: left must be a variable leaf, and not one resolved
	// from a constant (spec.md §4.2) — the parser is expected to reject
	// that case itself with a symtab-kind compile error before calling
	// Synthesize; this is a second line of defense for direct callers.
	if op == ast.OpAssign {
		if left.Kind != ast.KindVariable || left.ReadOnly {
			return ast.NewNull[N]()
		}
		return ast.NewAssignment[N](left, right)
	}

	// 3. Short-circuit and/or: fold constant operands before building the
	// short-circuit node.
	if op == ast.OpScAnd || op == ast.OpScOr {
		if left.IsConstant() {
			lv := left.Value(k)
			if op == ast.OpScAnd && !k.IsTrue(lv) {
				return ast.NewConstant[N](0)
			}
			if op == ast.OpScOr && k.IsTrue(lv) {
				return ast.NewConstant[N](1)
			}
		}
		if op == ast.OpScAnd {
			return ast.NewShortCircuitAnd[N](left, right)
		}
		return ast.NewShortCircuitOr[N](left, right)
	}

	provisional := ast.NewBinary[N](op, left, right)

	// 4. Constant folding: both children constant → evaluate once, return
	// a literal.
	if left.IsConstant() && right.IsConstant() {
		return ast.NewConstant[N](provisional.Value(k))
	}

	// 5. Record the pattern branch_to_id(left)+"o"+branch_to_id(right) as the
	// node's ShapeHint and apply strength reduction; reduce matches node
	// shapes directly and does not dispatch on the pattern string.
	shape := left.ShapeID() + "o" + right.ShapeID()
	result := provisional
	if opts.StrengthReduction {
		result = reduce(k, op, left, right, provisional)
	}
	result.ShapeHint = shape
	return result
}

// reduce applies the canonical algebraic rewrites of spec.md §4.7. Each
// case either returns a cheaper equivalent tree or falls through to the
// unmodified provisional node.
func reduce[N ast.Number](k ast.Kernel[N], op ast.Operator, left, right *ast.Node[N], provisional *ast.Node[N]) *ast.Node[N] {
	// x^k for small integer k -> ipow<k> (or ipow_inv<k> for negative k).
	if op == ast.OpPow && right.Kind == ast.KindConstant {
		if ik, ok := asSmallInt(right.Const); ok {
			if ik >= 1 && ik <= 60 {
				return ast.NewIPow[N](left, ik, false)
			}
			if ik <= -1 && ik >= -60 {
				return ast.NewIPow[N](left, -ik, true)
			}
		}
	}

	// (c0*v)*c1 -> v*(c0*c1); (c0+v)+c1 -> v+(c0+c1); symmetric for the
	// commutative operand order the parser may have produced.
	if op == ast.OpMul || op == ast.OpAdd {
		if c0, v, ok := asConstOpVar(left, op); ok && right.Kind == ast.KindConstant {
			return ast.NewBinary[N](op, v, ast.NewConstant[N](combine(op, c0, right.Const)))
		}
		if c1, v, ok := asConstOpVar(right, op); ok && left.Kind == ast.KindConstant {
			return ast.NewBinary[N](op, v, ast.NewConstant[N](combine(op, left.Const, c1)))
		}
	}

	// (a/b)/c -> a/(b*c)
	if op == ast.OpDiv && left.Kind == ast.KindBinary && left.Op == ast.OpDiv {
		a, b := left.Children[0], left.Children[1]
		return ast.NewBinary[N](ast.OpDiv, a, ast.NewBinary[N](ast.OpMul, b, right))
	}

	return provisional
}

// asConstOpVar matches a node of the shape (const op var) — returns the
// constant and the variable leaf on match.
func asConstOpVar[N ast.Number](n *ast.Node[N], op ast.Operator) (c N, v *ast.Node[N], ok bool) {
	if n.Kind != ast.KindBinary || n.Op != op {
		return c, nil, false
	}
	l, r := n.Children[0], n.Children[1]
	if l.Kind == ast.KindConstant && r.Kind == ast.KindVariable {
		return l.Const, r, true
	}
	if r.Kind == ast.KindConstant && l.Kind == ast.KindVariable {
		return r.Const, l, true
	}
	return c, nil, false
}

func combine[N ast.Number](op ast.Operator, a, b N) N {
	if op == ast.OpMul {
		return a * b
	}
	return a + b
}

// asSmallInt reports whether v is an exact small integer suitable for the
// ipow/ipow_inv fast path.
func asSmallInt[N ast.Number](v N) (int, bool) {
	f := float64(v)
	i := int(f)
	if float64(i) != f {
		return 0, false
	}
	return i, true
}
