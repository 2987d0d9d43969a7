// Package repl implements the interactive calculator loop (spec.md §6
// expansion): a persistent symbol table carried across lines, compiling
// and evaluating one expression per line, adapted from the teacher's
// read-eval loop shape but swapping VM-chunk execution for
// compile-and-evaluate against expr.Compile.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/exprtk-go/exprtk/expr"
	"github.com/exprtk-go/exprtk/internal/lexer"
	"github.com/exprtk-go/exprtk/internal/symtab"
)

// Start runs the REPL against in/out, reading one expression per line
// until EOF or an "exit"/"quit" line. The symbol table persists across
// lines, so an assignment on one line is visible on the next.
func Start(in io.Reader, out io.Writer) {
	st := symtab.New[float64]()
	st.AddConstants(3.141592653589793, 2.220446049250313e-16, math.Inf(1))

	scanner := bufio.NewScanner(in)
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd())
	}
	lines := 0

	for {
		if interactive {
			fmt.Fprint(out, ">>> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		lines++
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}

		// An assignment to a name the table does not hold yet creates that
		// variable first, so "x := 5" needs no prior declaration.
		if toks := lexer.New(line).ScanTokens(); len(toks) >= 2 &&
			toks[0].Kind == lexer.KindSymbol && toks[1].Kind == lexer.KindAssign && !st.Has(toks[0].Lexeme) {
			st.CreateVariable(toks[0].Lexeme, 0)
		}
		e, errs := expr.Compile(line, st)
		if len(errs) > 0 {
			for _, err := range errs {
				fmt.Fprintln(out, err.Render())
			}
			continue
		}
		fmt.Fprintln(out, e.Value())
		e.Close()
	}

	if interactive {
		fmt.Fprintf(out, "evaluated %s line%s\n", humanize.Comma(int64(lines)), plural(lines))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
