package poly

import (
	"testing"

	"github.com/exprtk-go/exprtk/internal/symtab"
)

func TestEvalHorner(t *testing.T) {
	// p(x) = 2x^2 + 3x + 4, at x=5 -> 50+15+4 = 69
	if got := Eval(5.0, 2.0, 3.0, 4.0); got != 69 {
		t.Fatalf("got %v want 69", got)
	}
}

func TestEvalEmptyCoeffsIsZero(t *testing.T) {
	if got := Eval(5.0); got != 0 {
		t.Fatalf("got %v want 0", got)
	}
}

func TestRegisterInstallsVariadicFunction(t *testing.T) {
	st := symtab.New[float64]()
	if !Register(st, "p") {
		t.Fatal("expected Register to succeed")
	}
	fn, ok := st.GetVarargFunction("p")
	if !ok {
		t.Fatal("expected p to be registered")
	}
	if got := fn([]float64{5, 2, 3, 4}); got != 69 {
		t.Fatalf("got %v want 69", got)
	}
}
