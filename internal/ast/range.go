package ast

// RangePack is the (lo, hi) string-slice bound pair of spec.md §3. Either
// side is a literal bound, a deferred expression evaluated at access time,
// or absent (defaulting to 0 / length-1).
type RangePack[N Number] struct {
	LoLiteral  bool
	Lo         int
	LoExpr     *Node[N]
	LoAbsent   bool
	HiLiteral  bool
	Hi         int
	HiExpr     *Node[N]
	HiAbsent   bool
}

// Resolve computes the concrete [lo:hi] bounds against a string of the
// given length, clamping hi to len-1 per spec.md §8's range-clamping
// property and evaluating any deferred bound expressions.
func (r *RangePack[N]) Resolve(k Kernel[N], length int) (lo, hi int) {
	switch {
	case r.LoAbsent:
		lo = 0
	case r.LoExpr != nil:
		lo = int(r.LoExpr.Value(k))
	default:
		lo = r.Lo
	}
	switch {
	case r.HiAbsent:
		hi = length - 1
	case r.HiExpr != nil:
		hi = int(r.HiExpr.Value(k))
	default:
		hi = r.Hi
	}
	if lo < 0 {
		lo = 0
	}
	if hi > length-1 {
		hi = length - 1
	}
	if hi < lo {
		hi = lo - 1 // empty slice
	}
	return lo, hi
}

// Constant reports whether both bounds are fixed at parse time, letting the
// parser validate non-negativity and lo<=hi immediately (spec.md §4.6).
func (r *RangePack[N]) Constant() bool {
	return (r.LoAbsent || (r.LoExpr == nil)) && (r.HiAbsent || (r.HiExpr == nil))
}
