package parser

import (
	"math"
	"testing"

	"github.com/kr/pretty"

	"github.com/exprtk-go/exprtk/internal/ast"
	"github.com/exprtk-go/exprtk/internal/cerr"
	"github.com/exprtk-go/exprtk/internal/lexer"
	"github.com/exprtk-go/exprtk/internal/numeric"
	"github.com/exprtk-go/exprtk/internal/optimize"
	"github.com/exprtk-go/exprtk/internal/resolver"
	"github.com/exprtk-go/exprtk/internal/symtab"
	"github.com/exprtk-go/exprtk/internal/tokenpipe"
)

func compile(t *testing.T, src string, st *symtab.Table[float64]) *ast.Node[float64] {
	t.Helper()
	toks := lexer.New(src).ScanTokens()
	toks, errs := tokenpipe.Run(toks)
	if len(errs) > 0 {
		t.Fatalf("token pipeline errors for %q: %v", src, errs)
	}
	p := New[float64](toks, st, numeric.NewKernel[float64](), optimize.DefaultOptions())
	n := p.Parse()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors for %q: %v", src, p.Errors())
	}
	return n
}

func TestArithmeticPrecedenceAndFolding(t *testing.T) {
	st := symtab.New[float64]()
	n := compile(t, "2+3*4", st)
	if n.Kind != ast.KindConstant || n.Value(numeric.NewKernel[float64]()) != 14 {
		t.Fatalf("expected folded constant 14, got kind=%v value=%v", n.Kind, n.Value(numeric.NewKernel[float64]()))
	}
}

func TestImplicitMultiplicationCanonicalized(t *testing.T) {
	k := numeric.NewKernel[float64]()
	x := 3.0
	st := symtab.New[float64]()
	st.AddVariable("x", &x, false)
	n := compile(t, "2x", st)
	if got := n.Value(k); got != 6 {
		t.Fatalf("got %v want 6", got)
	}
}

func TestVariableReferenceIsBorrowed(t *testing.T) {
	k := numeric.NewKernel[float64]()
	x := 10.0
	st := symtab.New[float64]()
	st.AddVariable("x", &x, false)
	n := compile(t, "x+1", st)
	if got := n.Value(k); got != 11 {
		t.Fatalf("got %v want 11", got)
	}
	x = 41
	if got := n.Value(k); got != 42 {
		t.Fatalf("got %v want 42 after mutation", got)
	}
}

func TestAssignmentWritesThroughVariable(t *testing.T) {
	k := numeric.NewKernel[float64]()
	x := 0.0
	st := symtab.New[float64]()
	st.AddVariable("x", &x, false)
	n := compile(t, "x := 5 + 2", st)
	if got := n.Value(k); got != 7 {
		t.Fatalf("got %v want 7", got)
	}
	if x != 7 {
		t.Fatalf("expected x to be written through, got %v", x)
	}
}

func TestIfConditional(t *testing.T) {
	k := numeric.NewKernel[float64]()
	st := symtab.New[float64]()
	n := compile(t, "if(1 < 2, 10, 20)", st)
	if got := n.Value(k); got != 10 {
		t.Fatalf("got %v want 10", got)
	}
}

func TestWhileLoopAccumulates(t *testing.T) {
	k := numeric.NewKernel[float64]()
	a, i := 0.0, 0.0
	st := symtab.New[float64]()
	st.AddVariable("a", &a, false)
	st.AddVariable("i", &i, false)
	n := compile(t, "while(i<10){ a := a+i; i := i+1 }", st)
	n.Value(k)
	if a != 45 || i != 10 {
		t.Fatalf("got a=%v i=%v want a=45 i=10", a, i)
	}
}

func TestRepeatUntil(t *testing.T) {
	k := numeric.NewKernel[float64]()
	i := 0.0
	st := symtab.New[float64]()
	st.AddVariable("i", &i, false)
	n := compile(t, "repeat i := i+1 until(i>=5)", st)
	n.Value(k)
	if i != 5 {
		t.Fatalf("got i=%v want 5", i)
	}
}

func TestSwitchFirstTruthyWins(t *testing.T) {
	k := numeric.NewKernel[float64]()
	x := 0.0
	st := symtab.New[float64]()
	st.AddVariable("x", &x, false)
	n := compile(t, "switch{ case x<0: -1; case x==0: 0; default: 1; }", st)
	cases := []struct {
		x, want float64
	}{{-5, -1}, {0, 0}, {7, 1}}
	for _, c := range cases {
		x = c.x
		if got := n.Value(k); got != c.want {
			t.Fatalf("x=%v: got %v want %v", c.x, got, c.want)
		}
	}
}

func TestMultiSwitchLastTruthyWins(t *testing.T) {
	k := numeric.NewKernel[float64]()
	x := 0.0
	st := symtab.New[float64]()
	st.AddVariable("x", &x, false)
	n := compile(t, "[*]{ case x>0: 1; case x>5: 2; }", st)
	x = 7
	if got := n.Value(k); got != 2 {
		t.Fatalf("got %v want 2", got)
	}
}

func TestIntegerPowerOptimized(t *testing.T) {
	k := numeric.NewKernel[float64]()
	x := 2.0
	st := symtab.New[float64]()
	st.AddVariable("x", &x, false)
	n := compile(t, "x^7", st)
	if n.Kind != ast.KindIPow {
		t.Fatalf("expected ipow node, got:\n%s", pretty.Sprint(n))
	}
	if got := n.Value(k); got != 128 {
		t.Fatalf("got %v want 128", got)
	}
}

func TestStringSlicingAndIn(t *testing.T) {
	k := numeric.NewKernel[float64]()
	st := symtab.New[float64]()
	n := compile(t, "'ell' in 'hello'[0:4]", st)
	if got := n.Value(k); got != 1 {
		t.Fatalf("got %v want 1 (true)", got)
	}
}

func TestLikeWildcard(t *testing.T) {
	k := numeric.NewKernel[float64]()
	st := symtab.New[float64]()
	n := compile(t, "'hello' like 'h*o'", st)
	if got := n.Value(k); got != 1 {
		t.Fatalf("got %v want 1 (true)", got)
	}
}

func TestClampBuiltin(t *testing.T) {
	k := numeric.NewKernel[float64]()
	st := symtab.New[float64]()
	n := compile(t, "clamp(0, 15, 10)", st)
	if got := n.Value(k); got != 10 {
		t.Fatalf("got %v want 10", got)
	}
}

func TestSumVariadic(t *testing.T) {
	k := numeric.NewKernel[float64]()
	st := symtab.New[float64]()
	n := compile(t, "sum(1,2,3,4)", st)
	if got := n.Value(k); got != 10 {
		t.Fatalf("got %v want 10", got)
	}
}

func TestUserFunctionArityChecked(t *testing.T) {
	st := symtab.New[float64]()
	st.AddFunction("twice", 1, func(args []float64) float64 { return args[0] * 2 })

	toks := lexer.New("twice(3,4)").ScanTokens()
	toks, errs := tokenpipe.Run(toks)
	if len(errs) > 0 {
		t.Fatalf("unexpected token errors: %v", errs)
	}
	p := New[float64](toks, st, numeric.NewKernel[float64](), optimize.DefaultOptions())
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an arity mismatch error")
	}
}

func TestUserFunctionCallEvaluates(t *testing.T) {
	k := numeric.NewKernel[float64]()
	st := symtab.New[float64]()
	st.AddFunction("twice", 1, func(args []float64) float64 { return args[0] * 2 })
	n := compile(t, "twice(21)", st)
	if got := n.Value(k); got != 42 {
		t.Fatalf("got %v want 42", got)
	}
}

func TestUndefinedSymbolReportsSymtabError(t *testing.T) {
	toks := lexer.New("nosuchvar+1").ScanTokens()
	toks, _ = tokenpipe.Run(toks)
	st := symtab.New[float64]()
	p := New[float64](toks, st, numeric.NewKernel[float64](), optimize.DefaultOptions())
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an undefined-symbol error")
	}
	if got := p.Errors()[0].Kind; got != cerr.Symtab {
		t.Fatalf("error kind = %s, want %s", got, cerr.Symtab)
	}
}

func TestResolverAutoRegistersUnknownVariable(t *testing.T) {
	k := numeric.NewKernel[float64]()
	toks := lexer.New("y+1").ScanTokens()
	toks, _ = tokenpipe.Run(toks)
	st := symtab.New[float64]()
	resolved := resolver.Func[float64](func(name string) (resolver.SymbolKind, float64, bool, string) {
		return resolver.Variable, 9, true, ""
	})
	p := New[float64](toks, st, k, optimize.DefaultOptions()).WithResolver(resolved)
	n := p.Parse()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", p.Errors())
	}
	if got := n.Value(k); got != 10 {
		t.Fatalf("got %v want 10", got)
	}
}

func TestConstantsResolveAndFold(t *testing.T) {
	k := numeric.NewKernel[float64]()
	st := symtab.New[float64]()
	st.AddConstants(3.141592653589793, 2.220446049250313e-16, math.Inf(1))
	n := compile(t, "pi*2", st)
	if got, want := n.Value(k), 2*3.141592653589793; got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestAssignmentToConstantRejected(t *testing.T) {
	st := symtab.New[float64]()
	st.AddConstants(3.141592653589793, 2.220446049250313e-16, math.Inf(1))
	toks := lexer.New("pi := 4").ScanTokens()
	toks, _ = tokenpipe.Run(toks)
	p := New[float64](toks, st, numeric.NewKernel[float64](), optimize.DefaultOptions())
	p.Parse()
	if len(p.Errors()) == 0 {
		t.Fatal("expected an error assigning to a constant")
	}
}

func TestStringConcatenation(t *testing.T) {
	k := numeric.NewKernel[float64]()
	st := symtab.New[float64]()
	n := compile(t, "'foo' + 'bar'", st)
	if n.Kind != ast.KindBinary || n.Op != ast.OpStrConcat {
		t.Fatalf("expected a strconcat binary node, got kind=%v op=%v", n.Kind, n.Op)
	}
	s, ok := n.Str(k)
	if !ok || s != "foobar" {
		t.Fatalf("got %q ok=%v want \"foobar\"", s, ok)
	}
}

func TestSymbolCacheCollectsSortedNames(t *testing.T) {
	x, y := 1.0, 2.0
	st := symtab.New[float64]()
	st.AddVariable("x", &x, false)
	st.AddVariable("y", &y, false)
	toks := lexer.New("y+x+y").ScanTokens()
	toks, _ = tokenpipe.Run(toks)
	p := New[float64](toks, st, numeric.NewKernel[float64](), optimize.DefaultOptions()).WithSymbolCache(true)
	p.Parse()
	syms := p.Symbols()
	if len(syms) != 2 || syms[0] != "x" || syms[1] != "y" {
		t.Fatalf("got %v want [x y]", syms)
	}
}
