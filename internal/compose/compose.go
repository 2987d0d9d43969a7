// Package compose implements the function-compositor helper (spec.md §6):
// it builds expression trees programmatically by compiling a template
// expression against a private local variable, then mangling that local
// variable into a freshly named slot in a shared symbol table and
// splicing the compiled tree over via the parser's replace_symbol API,
// rather than re-parsing the template text once per instantiation target.
package compose

import (
	"fmt"

	"github.com/exprtk-go/exprtk/internal/ast"
	"github.com/exprtk-go/exprtk/internal/cerr"
	"github.com/exprtk-go/exprtk/internal/lexer"
	"github.com/exprtk-go/exprtk/internal/numeric"
	"github.com/exprtk-go/exprtk/internal/optimize"
	"github.com/exprtk-go/exprtk/internal/parser"
	"github.com/exprtk-go/exprtk/internal/symtab"
	"github.com/exprtk-go/exprtk/internal/tokenpipe"
)

// Compositor instantiates one compiled template against many distinct
// backing variables, wiring each instantiation into a single shared
// symbol table under a mangled name so the instances can be combined
// into one larger tree (e.g. f(a)+f(b)+f(c)).
type Compositor[N ast.Number] struct {
	shared *symtab.Table[N]
	kernel ast.Kernel[N]
	opts   optimize.Options
	next   int
}

func New[N ast.Number](shared *symtab.Table[N]) *Compositor[N] {
	return &Compositor[N]{shared: shared, kernel: numeric.NewKernel[N](), opts: optimize.DefaultOptions()}
}

// Instantiate compiles template once against a private table where
// localVar is bound to a placeholder slot, then mangles localVar into a
// uniquely named variable in the shared table bound to backing, rewiring
// every reference to the placeholder so the returned tree reads through
// backing instead of the private table's throwaway storage.
func (c *Compositor[N]) Instantiate(template, localVar string, backing *N) (*ast.Node[N], []*cerr.Error) {
	local := symtab.New[N]()
	var placeholder N
	local.AddVariable(localVar, &placeholder, false)

	toks := lexer.New(template).ScanTokens()
	toks, errs := tokenpipe.Run(toks)
	if len(errs) > 0 {
		return nil, errs
	}

	p := parser.New[N](toks, local, c.kernel, c.opts)
	root := p.Parse()
	if len(p.Errors()) > 0 {
		return nil, p.Errors()
	}

	mangled := fmt.Sprintf("__compose_%s_%d", localVar, c.next)
	c.next++
	c.shared.AddVariable(mangled, backing, false)

	parser.ReplaceSymbol(root, &placeholder, backing)
	return root, nil
}

// Combine folds nodes left-to-right through op via the C7 synthesizer,
// e.g. op=ast.OpAdd to build f(a)+f(b)+f(c) from three Instantiate calls.
func (c *Compositor[N]) Combine(op ast.Operator, nodes ...*ast.Node[N]) *ast.Node[N] {
	if len(nodes) == 0 {
		return ast.NewNull[N]()
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		acc = optimize.Synthesize(c.kernel, c.opts, op, acc, n)
	}
	return acc
}
