// Package expr is the public entry point of the expression-compiler
// library: it wires the lexer (C3), token pipeline (C4), parser (C6,
// which itself drives C7's optimizer and consults C2's symbol table)
// into a single Compile call, and hands back a reference-counted
// Expression handle (C8).
package expr

import (
	"github.com/exprtk-go/exprtk/internal/ast"
	"github.com/exprtk-go/exprtk/internal/cerr"
	"github.com/exprtk-go/exprtk/internal/lexer"
	"github.com/exprtk-go/exprtk/internal/numeric"
	"github.com/exprtk-go/exprtk/internal/optimize"
	"github.com/exprtk-go/exprtk/internal/parser"
	"github.com/exprtk-go/exprtk/internal/resolver"
	"github.com/exprtk-go/exprtk/internal/symtab"
	"github.com/exprtk-go/exprtk/internal/tokenpipe"
)

// Option configures a single Compile call.
type Option[N ast.Number] func(*config[N])

type config[N ast.Number] struct {
	opts        optimize.Options
	resolver    resolver.Resolver[N]
	symbolCache bool
}

// Expression is the compiled, reference-counted handle spec.md §3/§9
// describes: the root node plus the symbol table it was compiled
// against, released together so a caller can share one table across
// several compiled expressions (C2's refcounting).
type Expression[N ast.Number] struct {
	root   *ast.Node[N]
	kernel ast.Kernel[N]
	st     *symtab.Table[N]
	syms   []string
}

// Compile lexes, tokenizes, parses and optimizes source against st,
// returning the compiled handle and any accumulated compile errors. st's
// refcount is bumped on success; call Expression.Close to release it.
func Compile[N ast.Number](source string, st *symtab.Table[N], options ...Option[N]) (*Expression[N], []*cerr.Error) {
	cfg := config[N]{opts: optimize.DefaultOptions()}
	for _, o := range options {
		o(&cfg)
	}

	toks := lexer.New(source).ScanTokens()
	toks, errs := tokenpipe.Run(toks)
	if len(errs) > 0 {
		return nil, errs
	}

	k := numeric.NewKernel[N]()
	p := parser.New[N](toks, st, k, cfg.opts)
	if cfg.resolver != nil {
		p = p.WithResolver(cfg.resolver)
	}
	if cfg.symbolCache {
		p = p.WithSymbolCache(true)
	}

	root := p.Parse()
	if len(p.Errors()) > 0 {
		return nil, p.Errors()
	}

	handle := st.Clone()
	return &Expression[N]{root: root, kernel: k, st: handle, syms: p.Symbols()}, nil
}

// WithStrengthReduction toggles C7's algebraic strength-reduction pass.
func WithStrengthReduction[N ast.Number](on bool) Option[N] {
	return func(c *config[N]) { c.opts.StrengthReduction = on }
}

// WithResolver installs an unknown-symbol resolver (spec.md §6).
func WithResolver[N ast.Number](r resolver.Resolver[N]) Option[N] {
	return func(c *config[N]) { c.resolver = r }
}

// WithSymbolCache enables expression_symbols() collection during parse.
func WithSymbolCache[N ast.Number](on bool) Option[N] {
	return func(c *config[N]) { c.symbolCache = on }
}

// Value evaluates the compiled tree once, reading current symbol-table
// storage for every borrowed variable leaf it touches.
func (e *Expression[N]) Value() N {
	return e.root.Value(e.kernel)
}

// SymbolTable returns the table this expression was compiled against.
func (e *Expression[N]) SymbolTable() *symtab.Table[N] { return e.st }

// Symbols returns the sorted, deduplicated symbol-name list collected when
// the expression was compiled with WithSymbolCache(true); an empty list
// otherwise.
func (e *Expression[N]) Symbols() []string { return e.syms }

// Close releases this expression's reference on its symbol table.
func (e *Expression[N]) Close() {
	e.st.Release()
}
