// Command exprtk is the CLI surface of the expression-compiler library
// (spec.md §6 expansion), adapted from the teacher's cmd/sentra
// command-alias-map dispatcher: a short alias table resolved before the
// main switch, falling through to usage/help for anything unrecognized.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/exprtk-go/exprtk/internal/commands"
)

const version = "0.1.0"

var commandAliases = map[string]string{
	"e": "eval",
	"c": "check",
	"s": "symbols",
	"i": "repl",
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one CLI invocation and returns the process exit code,
// factored out of main so testscript's RunMain can drive it in-process.
func run(args []string) int {
	if len(args) == 0 {
		showUsage()
		return 0
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	switch cmd {
	case "--help", "-h", "help":
		showUsage()
		return 0
	case "--version", "-v", "version":
		fmt.Println("exprtk", version)
		return 0
	case "eval":
		source, vars, err := parseEvalArgs(args[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if err := commands.EvalCommand(os.Stdout, source, vars); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	case "check":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Error: check requires an expression argument")
			return 1
		}
		if err := commands.CheckCommand(os.Stdout, args[1]); err != nil {
			return 1
		}
		return 0
	case "symbols":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Error: symbols requires an expression argument")
			return 1
		}
		if err := commands.SymbolsCommand(os.Stdout, args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	case "repl":
		if err := commands.ReplCommand(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		showUsage()
		return 1
	}
}

// parseEvalArgs pulls the expression and any --var name=value flags out
// of eval's argument list.
func parseEvalArgs(args []string) (source string, vars []string, err error) {
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--var":
			if i+1 >= len(args) {
				return "", nil, fmt.Errorf("--var requires a name=value argument")
			}
			i++
			vars = append(vars, args[i])
		case strings.HasPrefix(args[i], "--var="):
			vars = append(vars, strings.TrimPrefix(args[i], "--var="))
		case source == "":
			source = args[i]
		default:
			return "", nil, fmt.Errorf("unexpected argument: %s", args[i])
		}
	}
	if source == "" {
		return "", nil, fmt.Errorf("eval requires an expression argument")
	}
	return source, vars, nil
}

func showUsage() {
	fmt.Println(`exprtk - embeddable expression compiler CLI

Usage:
  exprtk eval '<expr>' [--var name=value ...]   compile and evaluate once
  exprtk check '<expr>'                         compile only, report errors
  exprtk symbols '<expr>'                       list free symbol names
  exprtk repl                                   persistent symbol-table REPL

Aliases: e=eval c=check s=symbols i=repl`)
}
