package ast

import (
	"github.com/exprtk-go/exprtk/internal/numeric"
	"github.com/exprtk-go/exprtk/internal/symtab"
)

// Number is the numeric-type contract of spec.md §3, re-exported so callers
// of this package don't need to import internal/numeric directly.
type Number = numeric.Number

// Kernel is the per-N primitive set (C1) every node's Value walk consults.
type Kernel[N Number] = numeric.Kernel[N]

// Func and VarargFunc mirror the symbol table's callable shapes (C2) so a
// function-call node can hold one without importing symtab at call sites.
type Func[N any] = symtab.Func[N]
type VarargFunc[N any] = symtab.VarargFunc[N]
