// Package commands implements the exprtk CLI's subcommand bodies
// (spec.md §6 expansion CLI surface), replacing the teacher's
// init/build/watch/clean project-scaffolding commands with
// eval/check/symbols/repl — this module has no on-disk project to
// scaffold, only expressions to compile and run.
package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/exprtk-go/exprtk/expr"
	"github.com/exprtk-go/exprtk/internal/cerr"
	"github.com/exprtk-go/exprtk/internal/repl"
	"github.com/exprtk-go/exprtk/internal/resolver"
	"github.com/exprtk-go/exprtk/internal/symtab"
)

// EvalCommand compiles source against a table seeded from "name=value"
// var assignments and prints the resulting value.
func EvalCommand(out io.Writer, source string, vars []string) error {
	st := symtab.New[float64]()
	backing, err := bindVars(st, vars)
	if err != nil {
		return err
	}
	_ = backing // kept alive by st's references

	e, errs := expr.Compile(source, st)
	if len(errs) > 0 {
		return renderErrors(out, errs)
	}
	defer e.Close()

	fmt.Fprintln(out, e.Value())
	return nil
}

// CheckCommand compiles source only, printing every collected compile
// error (spec.md's "continues lexical-phase error collection"
// requirement) and reporting whether compilation succeeded.
func CheckCommand(out io.Writer, source string) error {
	st := symtab.New[float64]()
	_, errs := expr.Compile(source, st)
	if len(errs) > 0 {
		return renderErrors(out, errs)
	}
	fmt.Fprintln(out, "ok")
	return nil
}

// SymbolsCommand prints the sorted, deduplicated free-symbol list
// expression_symbols() collects for source (spec.md §4.6).
func SymbolsCommand(out io.Writer, source string) error {
	st := symtab.New[float64]()
	autoVar := resolver.Func[float64](func(name string) (resolver.SymbolKind, float64, bool, string) {
		return resolver.Variable, 0, true, ""
	})
	e, errs := expr.Compile(source, st, expr.WithSymbolCache[float64](true), expr.WithResolver[float64](autoVar))
	if len(errs) > 0 {
		return renderErrors(out, errs)
	}
	defer e.Close()

	fmt.Fprintln(out, strings.Join(e.Symbols(), "\n"))
	return nil
}

// ReplCommand hands stdin/stdout to the persistent-symtab REPL loop.
func ReplCommand() error {
	repl.Start(os.Stdin, os.Stdout)
	return nil
}

// bindVars parses "name=value" strings and registers each as a mutable
// variable in st, returning the backing slice so callers can keep it
// reachable for the lifetime of the compiled expression.
func bindVars(st *symtab.Table[float64], vars []string) ([]float64, error) {
	backing := make([]float64, len(vars))
	for i, kv := range vars {
		name, valStr, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --var %q: expected name=value", kv)
		}
		v, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --var %q: %w", kv, err)
		}
		backing[i] = v
		st.AddVariable(name, &backing[i], false)
	}
	return backing, nil
}

func renderErrors(out io.Writer, errs []*cerr.Error) error {
	for _, e := range errs {
		fmt.Fprintln(out, e.Render())
	}
	return fmt.Errorf("%d compile error(s)", len(errs))
}
