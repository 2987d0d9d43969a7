package dump

import (
	"strings"
	"testing"

	"github.com/exprtk-go/exprtk/internal/ast"
)

func TestTreeRendersConstantAndVariable(t *testing.T) {
	x := 2.0
	n := ast.NewBinary[float64](ast.OpAdd, ast.NewConstant[float64](1), ast.NewVariable[float64](&x))
	out := Tree[float64](n)

	if !strings.Contains(out, "binary +") {
		t.Fatalf("expected a binary + line, got %q", out)
	}
	if !strings.Contains(out, "const 1") {
		t.Fatalf("expected a const line, got %q", out)
	}
	if !strings.Contains(out, "var 2 (borrowed)") {
		t.Fatalf("expected a borrowed var line, got %q", out)
	}
}

func TestTreeIndentsChildren(t *testing.T) {
	n := ast.NewUnary[float64](ast.OpNot, ast.NewConstant[float64](0))
	out := Tree[float64](n)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "  ") {
		t.Fatalf("expected the child line to be indented, got %q", lines[1])
	}
}
