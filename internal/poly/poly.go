// Package poly implements the polynomial helper (spec.md §6 external
// collaborator): p(x, c_k, ..., c_0) evaluates Σ c_i x^i via Horner's
// rule. It exposes a single-value callable and consumes the symbol
// table's function-registration contract only, never the parser or AST
// directly.
package poly

import (
	"github.com/exprtk-go/exprtk/internal/numeric"
	"github.com/exprtk-go/exprtk/internal/symtab"
)

// Eval evaluates the polynomial with coefficients coeffs (highest degree
// first, constant term last) at x using Horner's rule: ((c_k*x+c_k-1)*x+...)+c_0.
// An empty coeffs evaluates to zero.
func Eval[N numeric.Number](x N, coeffs ...N) N {
	var acc N
	for _, c := range coeffs {
		acc = acc*x + c
	}
	return acc
}

// Register installs the polynomial helper into st as a variadic function
// named fnName, taking the evaluation point as its first argument
// followed by the coefficients (highest degree first), matching the
// `p(x, c_k, ..., c_0)` calling convention spec.md §6 describes.
func Register[N numeric.Number](st *symtab.Table[N], fnName string) bool {
	return st.AddVarargFunction(fnName, func(args []N) N {
		if len(args) == 0 {
			return 0
		}
		return Eval(args[0], args[1:]...)
	})
}
