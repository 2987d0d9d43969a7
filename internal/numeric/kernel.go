package numeric

import (
	"math"

	"modernc.org/mathutil"
)

// Kernel dispatches the primitives of spec.md §4.1 for one instantiation
// of N, branching once (at construction) on whether N behaves as a real
// or an integer rather than re-deriving that on every call.
type Kernel[N Number] struct {
	kind    Kind
	epsilon float64
}

// NewKernel builds a Kernel for N. The kind check runs exactly once.
func NewKernel[N Number]() Kernel[N] {
	return Kernel[N]{kind: kindOf[N](), epsilon: defaultEpsilon[N]()}
}

func (k Kernel[N]) Kind() Kind { return k.kind }

// Epsilon returns the tolerance Equal/NEqual use for real kinds.
func (k Kernel[N]) Epsilon() float64 { return k.epsilon }

func (k Kernel[N]) toFloat(v N) float64 { return float64(v) }

// Equal implements spec.md's tolerant comparison: exact for integer
// kinds, relative-tolerance for real kinds.
func (k Kernel[N]) Equal(a, b N) bool {
	if k.kind == KindInteger {
		return a == b
	}
	af, bf := k.toFloat(a), k.toFloat(b)
	if math.IsNaN(af) || math.IsNaN(bf) {
		return false
	}
	diff := math.Abs(af - bf)
	scale := math.Max(1, math.Max(math.Abs(af), math.Abs(bf)))
	return diff <= scale*k.epsilon
}

func (k Kernel[N]) NEqual(a, b N) bool { return !k.Equal(a, b) }

// Modulus: fmod for reals, '%' for integers.
func (k Kernel[N]) Modulus(a, b N) N {
	if k.kind == KindInteger {
		if b == 0 {
			return 0
		}
		return a - (a/b)*b
	}
	if b == 0 {
		return N(math.NaN())
	}
	return N(math.Mod(k.toFloat(a), k.toFloat(b)))
}

// Pow: real path uses math.Pow; integer path uses fast exponentiation by
// squaring for non-negative exponents and returns 0 for negative ones
// (exprtk's integer domain has no reciprocal).
func (k Kernel[N]) Pow(base, exp N) N {
	if k.kind == KindInteger {
		e := int64(exp)
		if e < 0 {
			return 0
		}
		return intPow(base, e)
	}
	return N(math.Pow(k.toFloat(base), k.toFloat(exp)))
}

func intPow[N Number](base N, e int64) N {
	result := N(1)
	b := base
	for e > 0 {
		if e&1 == 1 {
			result *= b
		}
		b *= b
		e >>= 1
	}
	return result
}

// Root computes base^(1/n); undefined (NaN) for integer kinds.
func (k Kernel[N]) Root(base, n N) N {
	if k.kind == KindInteger {
		return N(math.NaN())
	}
	return N(math.Pow(k.toFloat(base), 1/k.toFloat(n)))
}

func (k Kernel[N]) Logn(v, base N) N {
	if k.kind == KindInteger {
		return N(math.NaN())
	}
	return N(math.Log(k.toFloat(v)) / math.Log(k.toFloat(base)))
}

func (k Kernel[N]) Log1p(v N) N {
	if k.kind == KindInteger {
		return N(math.NaN())
	}
	return N(math.Log1p(k.toFloat(v)))
}

func (k Kernel[N]) Expm1(v N) N {
	if k.kind == KindInteger {
		return N(math.NaN())
	}
	return N(math.Expm1(k.toFloat(v)))
}

func (k Kernel[N]) Atan2(y, x N) N {
	if k.kind == KindInteger {
		return N(math.NaN())
	}
	return N(math.Atan2(k.toFloat(y), k.toFloat(x)))
}

func (k Kernel[N]) Erf(v N) N {
	if k.kind == KindInteger {
		return N(math.NaN())
	}
	return N(math.Erf(k.toFloat(v)))
}

func (k Kernel[N]) Erfc(v N) N {
	if k.kind == KindInteger {
		return N(math.NaN())
	}
	return N(math.Erfc(k.toFloat(v)))
}

func (k Kernel[N]) Hypot(a, b N) N {
	if k.kind == KindInteger {
		return N(math.NaN())
	}
	return N(math.Hypot(k.toFloat(a), k.toFloat(b)))
}

func (k Kernel[N]) Roundn(v N, places int) N {
	if k.kind == KindInteger {
		return v
	}
	scale := math.Pow(10, float64(places))
	return N(math.Round(k.toFloat(v)*scale) / scale)
}

// Transcendental unary functions: real path delegates to math; integer
// kinds yield NaN per spec.md §4.1 ("transcendental unary functions ...
// return NaN" on integer types). NaN is represented as N(math.NaN()),
// which for an integer-backed N truncates to an implementation-defined
// sentinel value — callers embedding an integer N accept that tradeoff,
// spelled out in spec.md §3's numeric-type contract.
type unaryFn func(float64) float64

func (k Kernel[N]) transcendental(v N, f unaryFn) N {
	if k.kind == KindInteger {
		return N(math.NaN())
	}
	return N(f(k.toFloat(v)))
}

func (k Kernel[N]) Sin(v N) N   { return k.transcendental(v, math.Sin) }
func (k Kernel[N]) Cos(v N) N   { return k.transcendental(v, math.Cos) }
func (k Kernel[N]) Tan(v N) N   { return k.transcendental(v, math.Tan) }
func (k Kernel[N]) Asin(v N) N  { return k.transcendental(v, math.Asin) }
func (k Kernel[N]) Acos(v N) N  { return k.transcendental(v, math.Acos) }
func (k Kernel[N]) Atan(v N) N  { return k.transcendental(v, math.Atan) }
func (k Kernel[N]) Sinh(v N) N  { return k.transcendental(v, math.Sinh) }
func (k Kernel[N]) Cosh(v N) N  { return k.transcendental(v, math.Cosh) }
func (k Kernel[N]) Tanh(v N) N  { return k.transcendental(v, math.Tanh) }
func (k Kernel[N]) Log(v N) N   { return k.transcendental(v, math.Log) }
func (k Kernel[N]) Log2(v N) N  { return k.transcendental(v, math.Log2) }
func (k Kernel[N]) Log10(v N) N { return k.transcendental(v, math.Log10) }
func (k Kernel[N]) Exp(v N) N   { return k.transcendental(v, math.Exp) }
func (k Kernel[N]) Sqrt(v N) N  { return k.transcendental(v, math.Sqrt) }

func (k Kernel[N]) D2R(v N) N {
	if k.kind == KindInteger {
		return N(math.NaN())
	}
	return N(k.toFloat(v) * math.Pi / 180)
}

func (k Kernel[N]) R2D(v N) N {
	if k.kind == KindInteger {
		return N(math.NaN())
	}
	return N(k.toFloat(v) * 180 / math.Pi)
}

// Shr/Shl: multiplication/division by 2^k for reals, bit shifts for
// integers.
func (k Kernel[N]) Shr(v, n N) N {
	if k.kind == KindInteger {
		return N(int64(v) >> uint(int64(n)))
	}
	return N(k.toFloat(v) / math.Pow(2, math.Floor(k.toFloat(n))))
}

func (k Kernel[N]) Shl(v, n N) N {
	if k.kind == KindInteger {
		return N(int64(v) << uint(int64(n)))
	}
	return N(k.toFloat(v) * math.Pow(2, math.Floor(k.toFloat(n))))
}

func (k Kernel[N]) Sgn(v N) N {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func (k Kernel[N]) Frac(v N) N {
	if k.kind == KindInteger {
		return 0
	}
	f := k.toFloat(v)
	return N(f - math.Trunc(f))
}

func (k Kernel[N]) Trunc(v N) N {
	if k.kind == KindInteger {
		return v
	}
	return N(math.Trunc(k.toFloat(v)))
}

func (k Kernel[N]) Round(v N) N {
	if k.kind == KindInteger {
		return v
	}
	return N(math.Round(k.toFloat(v)))
}

func (k Kernel[N]) Ceil(v N) N {
	if k.kind == KindInteger {
		return v
	}
	return N(math.Ceil(k.toFloat(v)))
}

func (k Kernel[N]) Floor(v N) N {
	if k.kind == KindInteger {
		return v
	}
	return N(math.Floor(k.toFloat(v)))
}

func (k Kernel[N]) Abs(v N) N {
	if v < 0 {
		return -v
	}
	return v
}

// IsTrue: v is "true" iff v != 0 (spec.md §4.1 boolean semantics).
func (k Kernel[N]) IsTrue(v N) bool { return v != 0 }

func b2n[N Number](b bool) N {
	if b {
		return 1
	}
	return 0
}

func (k Kernel[N]) And(a, b N) N  { return b2n[N](k.IsTrue(a) && k.IsTrue(b)) }
func (k Kernel[N]) Or(a, b N) N   { return b2n[N](k.IsTrue(a) || k.IsTrue(b)) }
func (k Kernel[N]) Xor(a, b N) N  { return b2n[N](k.IsTrue(a) != k.IsTrue(b)) }
func (k Kernel[N]) Nand(a, b N) N { return b2n[N](!(k.IsTrue(a) && k.IsTrue(b))) }
func (k Kernel[N]) Nor(a, b N) N  { return b2n[N](!(k.IsTrue(a) || k.IsTrue(b))) }
func (k Kernel[N]) Xnor(a, b N) N { return b2n[N](k.IsTrue(a) == k.IsTrue(b)) }
func (k Kernel[N]) Not(a N) N     { return b2n[N](!k.IsTrue(a)) }

// IsInteger: true for integer-kind N, or a whole-valued real.
func (k Kernel[N]) IsInteger(v N) bool {
	if k.kind == KindInteger {
		return true
	}
	return math.Mod(k.toFloat(v), 1) == 0
}

// Clamp/IClamp/InRange implement spec.md §4.5's trinary operators. The
// integer path reduces through modernc.org/mathutil's Min/Max rather than
// a hand-rolled comparison, per the pack's "use the ecosystem's helper"
// convention.
func (k Kernel[N]) Clamp(lo, v, hi N) N {
	if k.kind == KindInteger {
		return N(mathutil.Max(int(lo), mathutil.Min(int(v), int(hi))))
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (k Kernel[N]) IClamp(lo, v, hi N) N {
	if v < lo || v > hi {
		return k.Clamp(lo, v, hi)
	}
	return v
}

func (k Kernel[N]) InRange(lo, v, hi N) bool { return v >= lo && v <= hi }

// FastExp computes v^e for a compile-time-known small exponent e∈[0,60]
// by repeated squaring (spec.md §4.1 fast_exp<N>). Negative e computes
// the reciprocal on real kinds (ipow_inv); on integer kinds it returns 0,
// matching Pow's integer-domain convention.
func (k Kernel[N]) FastExp(v N, e int) N {
	if e >= 0 {
		return intPow(v, int64(e))
	}
	if k.kind == KindInteger {
		return 0
	}
	return 1 / intPow(v, int64(-e))
}
