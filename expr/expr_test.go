package expr

import (
	"testing"

	"github.com/exprtk-go/exprtk/internal/resolver"
	"github.com/exprtk-go/exprtk/internal/symtab"
)

func TestCompileAndValue(t *testing.T) {
	st := symtab.New[float64]()
	x := 3.0
	st.AddVariable("x", &x, false)

	e, errs := Compile("2*x+1", st)
	if len(errs) > 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}
	defer e.Close()

	if got := e.Value(); got != 7 {
		t.Fatalf("got %v want 7", got)
	}

	x = 10
	if got := e.Value(); got != 21 {
		t.Fatalf("got %v want 21 after mutation", got)
	}
}

func TestCompileSharesTableRefcount(t *testing.T) {
	st := symtab.New[float64]()
	before := st.RefCount()

	e, errs := Compile("1+1", st)
	if len(errs) > 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}
	if st.RefCount() != before+1 {
		t.Fatalf("expected refcount to bump by one, got %d want %d", st.RefCount(), before+1)
	}
	e.Close()
	if st.RefCount() != before {
		t.Fatalf("expected refcount to drop back to %d, got %d", before, st.RefCount())
	}
}

func TestCompileReportsErrors(t *testing.T) {
	st := symtab.New[float64]()
	_, errs := Compile("1 + + ", st)
	if len(errs) == 0 {
		t.Fatal("expected compile errors for malformed source")
	}
}

func TestCompileWithResolverAutoRegisters(t *testing.T) {
	st := symtab.New[float64]()
	resolved := resolver.Func[float64](func(name string) (resolver.SymbolKind, float64, bool, string) {
		return resolver.Variable, 5, true, ""
	})
	e, errs := Compile[float64]("y*2", st, WithResolver[float64](resolved))
	if len(errs) > 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}
	defer e.Close()
	if got := e.Value(); got != 10 {
		t.Fatalf("got %v want 10", got)
	}
}

func TestCompileWithSymbolCache(t *testing.T) {
	st := symtab.New[float64]()
	x, y := 1.0, 2.0
	st.AddVariable("x", &x, false)
	st.AddVariable("y", &y, false)

	e, errs := Compile[float64]("x+y", st, WithSymbolCache[float64](true))
	if len(errs) > 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}
	defer e.Close()

	syms := e.Symbols()
	if len(syms) != 2 || syms[0] != "x" || syms[1] != "y" {
		t.Fatalf("got %v want [x y]", syms)
	}
}

func TestCompileWithStrengthReductionDisabled(t *testing.T) {
	st := symtab.New[float64]()
	x := 2.0
	st.AddVariable("x", &x, false)

	e, errs := Compile[float64]("x^7", st, WithStrengthReduction[float64](false))
	if len(errs) > 0 {
		t.Fatalf("unexpected compile errors: %v", errs)
	}
	defer e.Close()
	if got := e.Value(); got != 128 {
		t.Fatalf("got %v want 128", got)
	}
}
