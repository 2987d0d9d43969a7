package numeric

import (
	"math"
	"testing"
)

func TestEqualTolerance(t *testing.T) {
	k := NewKernel[float64]()
	if !k.Equal(1.0, 1.0) {
		t.Fatal("equal(x,x) must hold")
	}
	if !k.Equal(1.0, 1.0+1e-12) {
		t.Fatal("values within tolerance must compare equal")
	}
	if k.Equal(1.0, 1.1) {
		t.Fatal("values outside tolerance must not compare equal")
	}
	if k.Equal(2.0, 3.0) != k.Equal(3.0, 2.0) {
		t.Fatal("equal must be symmetric")
	}
}

func TestIntegerKernelModulus(t *testing.T) {
	k := NewKernel[int64]()
	if k.Kind() != KindInteger {
		t.Fatal("expected integer kind")
	}
	if got := k.Modulus(7, 3); got != 1 {
		t.Fatalf("7 %% 3 = %d, want 1", got)
	}
	if got := k.Sin(1); got != int64(math.NaN()) {
		t.Fatalf("integer transcendental should be the NaN sentinel %d, got %v", int64(math.NaN()), got)
	}
}

// meters is a defined float64 type, exercising kindOf's classification of
// named types rather than the concrete float64/float32 literals.
type meters float64

func TestKindOfClassifiesDefinedFloatType(t *testing.T) {
	k := NewKernel[meters]()
	if k.Kind() != KindReal {
		t.Fatalf("expected a defined float64 type to classify as real, got %v", k.Kind())
	}
}

func TestFastExpMatchesPow(t *testing.T) {
	k := NewKernel[float64]()
	for e := 0; e <= 20; e++ {
		v := 1.0007
		got := k.FastExp(v, e)
		want := math.Pow(v, float64(e))
		if math.Abs(float64(got)-want) > math.Max(1, math.Abs(want))*1e-9 {
			t.Fatalf("FastExp(%v,%d)=%v want %v", v, e, got, want)
		}
	}
}

func TestClampAndInRange(t *testing.T) {
	k := NewKernel[float64]()
	if k.Clamp(0, -5, 10) != 0 {
		t.Fatal("clamp below range")
	}
	if k.Clamp(0, 15, 10) != 10 {
		t.Fatal("clamp above range")
	}
	if !k.InRange(0, 5, 10) || k.InRange(0, 15, 10) {
		t.Fatal("inrange mismatch")
	}
}

func TestBooleanTruthTables(t *testing.T) {
	k := NewKernel[float64]()
	if k.And(1, 0) != 0 || k.And(1, 1) != 1 {
		t.Fatal("and truth table")
	}
	if k.Nand(1, 1) != 0 || k.Nand(0, 0) != 1 {
		t.Fatal("nand truth table")
	}
}
