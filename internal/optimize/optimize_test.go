package optimize

import (
	"testing"

	"github.com/kr/pretty"

	"github.com/exprtk-go/exprtk/internal/ast"
	"github.com/exprtk-go/exprtk/internal/numeric"
)

func k64() ast.Kernel[float64] { return numeric.NewKernel[float64]() }

// dumpNode pretty-prints a node's full struct shape for failure messages,
// the pack's preferred alternative to %+v on nested structs.
func dumpNode[N ast.Number](n *ast.Node[N]) string {
	return pretty.Sprint(n)
}

func TestConstantFoldingProducesLiteral(t *testing.T) {
	k := k64()
	n := Synthesize[float64](k, DefaultOptions(), ast.OpAdd, ast.NewConstant[float64](1), ast.NewConstant[float64](2))
	if n.Kind != ast.KindConstant || n.Value(k) != 3 {
		t.Fatalf("expected folded constant 3, got kind=%v value=%v", n.Kind, n.Value(k))
	}
}

func TestStrengthReductionCombinesConstants(t *testing.T) {
	k := k64()
	x := 5.0
	v := ast.NewVariable[float64](&x)

	step1 := Synthesize[float64](k, DefaultOptions(), ast.OpMul, ast.NewConstant[float64](2), v) // 2*x
	step2 := Synthesize[float64](k, DefaultOptions(), ast.OpMul, step1, ast.NewConstant[float64](3))
	step3 := Synthesize[float64](k, DefaultOptions(), ast.OpMul, step2, ast.NewConstant[float64](4))

	if step3.Kind != ast.KindBinary {
		t.Fatalf("expected a single binary node, got:\n%s", dumpNode(step3))
	}
	if got := step3.Value(k); got != 120 {
		t.Fatalf("got %v want 120", got)
	}
	x = 2.5
	if got := step3.Value(k); got != 60 {
		t.Fatalf("got %v want 60", got)
	}
}

func TestIntegerPowerBecomesIPow(t *testing.T) {
	k := k64()
	x := 2.0
	v := ast.NewVariable[float64](&x)
	n := Synthesize[float64](k, DefaultOptions(), ast.OpPow, v, ast.NewConstant[float64](7))
	if n.Kind != ast.KindIPow || n.Exp != 7 {
		t.Fatalf("expected ipow<7>, got kind=%v exp=%v", n.Kind, n.Exp)
	}
	if got := n.Value(k); got != 128 {
		t.Fatalf("got %v want 128", got)
	}

	neg := Synthesize[float64](k, DefaultOptions(), ast.OpPow, v, ast.NewConstant[float64](-3))
	if !neg.Inverse {
		t.Fatal("expected ipow_inv for negative exponent")
	}
	if got := neg.Value(k); got < 0.1249999 || got > 0.1250001 {
		t.Fatalf("got %v want 0.125", got)
	}
}

func TestDivisionChainStrengthReduced(t *testing.T) {
	k := k64()
	a, b, c := 100.0, 5.0, 2.0
	av, bv, cv := ast.NewVariable[float64](&a), ast.NewVariable[float64](&b), ast.NewVariable[float64](&c)
	step1 := Synthesize[float64](k, DefaultOptions(), ast.OpDiv, av, bv)
	step2 := Synthesize[float64](k, DefaultOptions(), ast.OpDiv, step1, cv)
	if got := step2.Value(k); got != 10 {
		t.Fatalf("got %v want 10", got)
	}
}

func TestNullPropagation(t *testing.T) {
	k := k64()
	n := Synthesize[float64](k, DefaultOptions(), ast.OpAdd, ast.NewNull[float64](), ast.NewConstant[float64](2))
	if n.Kind != ast.KindNull {
		t.Fatalf("expected null propagation, got %v", n.Kind)
	}
}

func TestShortCircuitAndFoldsFalseLeft(t *testing.T) {
	k := k64()
	n := Synthesize[float64](k, DefaultOptions(), ast.OpScAnd, ast.NewConstant[float64](0), ast.NewConstant[float64](1))
	if n.Kind != ast.KindConstant || n.Value(k) != 0 {
		t.Fatalf("expected folded 0, got %v/%v", n.Kind, n.Value(k))
	}
}

func TestAssignmentRejectsNonVariableTarget(t *testing.T) {
	k := k64()
	n := Synthesize[float64](k, DefaultOptions(), ast.OpAssign, ast.NewConstant[float64](1), ast.NewConstant[float64](2))
	if n.Kind != ast.KindNull {
		t.Fatal("assigning to a non-variable must synthesize to null")
	}
}
