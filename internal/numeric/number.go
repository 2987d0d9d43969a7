// Package numeric holds the per-numeric-type primitives the rest of the
// library is written against (C1): tolerant equality, the modulus/pow/
// trig/erf family with real-vs-integer dispatch, the fast compile-time
// integer-power template, and the hot-path numeric string scanner.
package numeric

import (
	"reflect"

	"golang.org/x/exp/constraints"
)

// Number is the contract a caller's numeric type N must satisfy: any
// ordered float or signed-integer kind. constraints.Float/Integer supply
// the type-set vocabulary; Number narrows it to the kinds the kernel
// actually dispatches real-vs-integer behavior on.
type Number interface {
	constraints.Float | ~int | ~int32 | ~int64
}

// Kind tags whether a Number instantiation behaves as a real (has NaN/Inf,
// fmod-based modulus, transcendentals) or as an integer (exact equality,
// '%'-based modulus, transcendentals undefined).
type Kind int

const (
	KindReal Kind = iota
	KindInteger
)

func (k Kind) String() string {
	if k == KindInteger {
		return "integer"
	}
	return "real"
}

// kindOf is computed once per Kernel construction from the underlying
// reflect.Kind of N's zero value, so a defined type such as
// `type Meters float64` (still satisfying constraints.Float, and thus
// Number) classifies as real rather than falling through to integer; it
// is never on the evaluation hot path.
func kindOf[N Number]() Kind {
	var zero N
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Float32, reflect.Float64:
		return KindReal
	default:
		return KindInteger
	}
}

// defaultEpsilon mirrors spec.md §4.1: 1e-10 for double, 1e-6 for single
// precision, unused (left at zero) for integer kinds.
func defaultEpsilon[N Number]() float64 {
	var zero N
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Float32:
		return 1e-6
	case reflect.Float64:
		return 1e-10
	default:
		return 0
	}
}
