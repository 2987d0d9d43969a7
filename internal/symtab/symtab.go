// Package symtab implements the symbol table (C2): named storage for
// variables, string variables, constants, vectors, and unary/variadic
// functions, with case-insensitive reserved-name filtering and
// reference-counted sharing.
package symtab

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Func is a user-registered callable of a fixed parameter count (0..20).
type Func[N any] func(args []N) N

// VarargFunc is a user-registered callable accepting an ordered sequence
// of N of any length.
type VarargFunc[N any] func(args []N) N

type kind int

const (
	kindVariable kind = iota
	kindStringVar
	kindConstant
	kindVector
	kindFunction
	kindVarargFunction
)

type entry[N any] struct {
	kind       kind
	value      *N      // variable / constant: pointer into backing storage
	strValue   *string // string variable backing storage
	vector     []N     // vector view
	fn         Func[N]
	fnArity    int
	varargFn   VarargFunc[N]
	isConstant bool
	internal   bool // true if Table allocated the storage (create_*), false if caller-owned
}

// Table is the symbol table. It is shared by reference count: Clone
// returns a handle to the same backing entries map, and the last Release
// frees it. Tables are not safe for concurrent mutation from multiple
// goroutines without external synchronization (spec.md §5: single
// threaded per expression, mutation is the caller's responsibility), but
// the refcount itself is guarded so Clone/Release are safe to call from
// a finalizer or a deliberately-concurrent owner.
type Table[N any] struct {
	id uuid.UUID

	mu      *sync.Mutex // shared by every Clone, like count
	count   *int32
	entries map[string]*entry[N]
	order   []string // insertion order, for GetVariableList

	// fastPath indexes single-character names by tolower(name[0]);
	// checked before the map for 1-char lookups (spec.md §4.2).
	fastPath [256]*entry[N]
	fastName [256]string
}

var reserved = buildReservedSet()

func buildReservedSet() map[string]bool {
	words := []string{
		"if", "else", "while", "until", "repeat", "switch", "case", "default",
		"and", "or", "xor", "nand", "nor", "xnor", "not", "in", "like", "ilike",
		"true", "false", "null", "mand", "mor", "multi", "sum", "mul", "avg",
		"min", "max", "clamp", "iclamp", "inrange", "abs", "sin", "cos", "tan",
		"asin", "acos", "atan", "sinh", "cosh", "tanh", "log", "log2", "log10",
		"logn", "log1p", "exp", "expm1", "sqrt", "root", "pow", "frac", "sgn",
		"notl", "d2r", "r2d", "round", "roundn", "ceil", "floor", "trunc",
		"hypot", "atan2", "erf", "erfc",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// IsReserved reports whether name (case-insensitively) is a reserved word
// or reserved symbol name that cannot be registered in a table.
func IsReserved(name string) bool {
	return reserved[strings.ToLower(name)]
}

func fold(name string) string { return strings.ToLower(name) }

// New creates an empty table.
func New[N any]() *Table[N] {
	c := int32(1)
	return &Table[N]{
		id:      uuid.New(),
		mu:      new(sync.Mutex),
		count:   &c,
		entries: make(map[string]*entry[N]),
	}
}

// ID returns a stable identity for this table's backing storage, shared
// by every Clone, so callers can tell whether several expressions share
// one table (spec.md §3/§9, reference-counted sharing).
func (t *Table[N]) ID() string { return t.id.String() }

// Clone returns a new handle sharing this table's storage and lifetime;
// the reference count is incremented.
func (t *Table[N]) Clone() *Table[N] {
	t.mu.Lock()
	defer t.mu.Unlock()
	*t.count++
	clone := *t
	return &clone
}

// Release decrements the reference count. When it reaches zero the
// backing storage becomes eligible for garbage collection once every
// handle has been released (Go has no manual free; this models the
// refcount contract from spec.md §9 without requiring one).
func (t *Table[N]) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	*t.count--
}

// RefCount returns the current number of live handles to this table's
// storage.
func (t *Table[N]) RefCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int(*t.count)
}

func (t *Table[N]) register(name string, e *entry[N]) bool {
	key := fold(name)
	if IsReserved(key) {
		return false
	}
	if _, exists := t.entries[key]; exists {
		return false
	}
	t.entries[key] = e
	t.order = append(t.order, key)
	if len(key) == 1 {
		c := key[0]
		t.fastPath[c] = e
		t.fastName[c] = key
	}
	return true
}

func (t *Table[N]) lookup(name string) *entry[N] {
	if len(name) == 1 {
		c := fold(name)[0]
		if t.fastPath[c] != nil && t.fastName[c] == fold(name) {
			return t.fastPath[c]
		}
	}
	return t.entries[fold(name)]
}

// AddVariable registers a caller-owned variable reference. Fails if name
// exists or is reserved.
func (t *Table[N]) AddVariable(name string, ref *N, isConstant bool) bool {
	return t.register(name, &entry[N]{kind: kindVariable, value: ref, isConstant: isConstant})
}

// AddStringVar registers a caller-owned string-variable reference.
func (t *Table[N]) AddStringVar(name string, ref *string, isConstant bool) bool {
	return t.register(name, &entry[N]{kind: kindStringVar, strValue: ref, isConstant: isConstant})
}

// AddFunction registers a fixed-arity (0..20) user function.
func (t *Table[N]) AddFunction(name string, arity int, fn Func[N]) bool {
	if arity < 0 || arity > 20 {
		return false
	}
	return t.register(name, &entry[N]{kind: kindFunction, fn: fn, fnArity: arity})
}

// AddVarargFunction registers a variadic user function.
func (t *Table[N]) AddVarargFunction(name string, fn VarargFunc[N]) bool {
	return t.register(name, &entry[N]{kind: kindVarargFunction, varargFn: fn})
}

// AddVector registers a view over caller-owned contiguous storage.
func (t *Table[N]) AddVector(name string, storage []N) bool {
	return t.register(name, &entry[N]{kind: kindVector, vector: storage})
}

// CreateVariable allocates internally-owned storage for value and
// delegates to AddVariable.
func (t *Table[N]) CreateVariable(name string, value N) bool {
	v := value
	if !t.register(name, &entry[N]{kind: kindVariable, value: &v, internal: true}) {
		return false
	}
	return true
}

// CreateStringVar allocates internally-owned storage for text.
func (t *Table[N]) CreateStringVar(name string, text string) bool {
	s := text
	return t.register(name, &entry[N]{kind: kindStringVar, strValue: &s, internal: true})
}

// AddConstant registers an internally-owned, read-only constant.
func (t *Table[N]) AddConstant(name string, value N) bool {
	v := value
	return t.register(name, &entry[N]{kind: kindConstant, value: &v, isConstant: true, internal: true})
}

// AddConstants adds pi, epsilon and inf as read-only constants
// (spec.md §4.2). piVal/epsVal/infVal are supplied by the caller since
// their concrete N representation depends on the numeric kernel in use.
func (t *Table[N]) AddConstants(piVal, epsVal, infVal N) {
	t.AddConstant("pi", piVal)
	t.AddConstant("epsilon", epsVal)
	t.AddConstant("inf", infVal)
}

// GetVariable returns the storage pointer for a registered variable, or
// nil if name does not resolve to one. A constant (spec.md §3 models it
// as "a variable with is_constant=true") resolves here too; callers that
// need to distinguish the two should also consult IsConstant.
func (t *Table[N]) GetVariable(name string) *N {
	e := t.lookup(name)
	if e == nil || (e.kind != kindVariable && e.kind != kindConstant) {
		return nil
	}
	return e.value
}

// GetStringVar returns the storage pointer for a registered string
// variable, or nil.
func (t *Table[N]) GetStringVar(name string) *string {
	e := t.lookup(name)
	if e == nil || e.kind != kindStringVar {
		return nil
	}
	return e.strValue
}

// GetVector returns the backing slice for a registered vector, or nil.
func (t *Table[N]) GetVector(name string) []N {
	e := t.lookup(name)
	if e == nil || e.kind != kindVector {
		return nil
	}
	return e.vector
}

// GetFunction returns the callable and its declared arity, or ok=false.
func (t *Table[N]) GetFunction(name string) (fn Func[N], arity int, ok bool) {
	e := t.lookup(name)
	if e == nil || e.kind != kindFunction {
		return nil, 0, false
	}
	return e.fn, e.fnArity, true
}

// GetVarargFunction returns the variadic callable, or ok=false.
func (t *Table[N]) GetVarargFunction(name string) (fn VarargFunc[N], ok bool) {
	e := t.lookup(name)
	if e == nil || e.kind != kindVarargFunction {
		return nil, false
	}
	return e.varargFn, true
}

// IsConstant reports whether name resolves to a variable or string
// variable registered as read-only. Used by the parser/optimizer to
// reject assignment to a constant at compile time (spec.md §4.2).
func (t *Table[N]) IsConstant(name string) bool {
	e := t.lookup(name)
	return e != nil && e.isConstant
}

// Has reports whether name resolves to any entry.
func (t *Table[N]) Has(name string) bool { return t.lookup(name) != nil }

// RemoveVariable removes name if it names a variable, freeing internal
// storage (the Go GC does the freeing; this just drops the table's
// reference to it).
func (t *Table[N]) RemoveVariable(name string) bool { return t.remove(name, kindVariable) }

// RemoveStringVar removes name if it names a string variable.
func (t *Table[N]) RemoveStringVar(name string) bool { return t.remove(name, kindStringVar) }

func (t *Table[N]) remove(name string, k kind) bool {
	key := fold(name)
	e, ok := t.entries[key]
	if !ok || e.kind != k {
		return false
	}
	delete(t.entries, key)
	for i, n := range t.order {
		if n == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	if len(key) == 1 && t.fastName[key[0]] == key {
		t.fastPath[key[0]] = nil
		t.fastName[key[0]] = ""
	}
	return true
}

// VariableInfo describes one entry for GetVariableList.
type VariableInfo struct {
	Name       string
	IsConstant bool
}

// GetVariableList enumerates variable and string-variable entries in
// insertion order (spec.md §4.2: "after fast-path entries" — fast-path
// single-character entries are ordinary registrations here too, so
// insertion order already reflects that; no separate bucket is needed).
func (t *Table[N]) GetVariableList() []VariableInfo {
	out := make([]VariableInfo, 0, len(t.order))
	for _, key := range t.order {
		e := t.entries[key]
		if e.kind == kindVariable || e.kind == kindStringVar {
			out = append(out, VariableInfo{Name: key, IsConstant: e.isConstant})
		}
	}
	return out
}
