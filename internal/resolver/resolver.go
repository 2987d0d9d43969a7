// Package resolver defines the unknown-symbol-resolver contract (spec.md
// §6): an external collaborator the parser consults when a symbol lookup
// in the symbol table misses, letting a host application auto-register
// variables/constants on first reference instead of failing compilation.
package resolver

// SymbolKind is the kind of symbol a Resolver may vend.
type SymbolKind int

const (
	Variable SymbolKind = iota
	Constant
)

// Resolver resolves an unknown symbol name encountered during parsing.
// On success (ok==true) the parser auto-registers name in the live symbol
// table as the given kind with defaultValue as its initial value. On
// failure, errMsg is surfaced as a symtab-kind compile error.
type Resolver[N any] interface {
	Resolve(name string) (kind SymbolKind, defaultValue N, ok bool, errMsg string)
}

// Func adapts a plain function into a Resolver, mirroring the teacher's
// preference for small functional adapters over single-method interfaces
// wherever a caller just wants to pass a closure.
type Func[N any] func(name string) (SymbolKind, N, bool, string)

func (f Func[N]) Resolve(name string) (SymbolKind, N, bool, string) { return f(name) }
