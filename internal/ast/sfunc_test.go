package ast

import "testing"

func TestSpecialFunc3AxnbFamily(t *testing.T) {
	k := k64()
	// axnb<k>: a*x^k+b, tag = 15+k. a=2, x=3, b=1.
	cases := []struct {
		tag  int
		want float64
	}{
		{17, 2*9 + 1},     // k=2: 2*3^2+1 = 19
		{18, 2*27 + 1},    // k=3: 2*3^3+1 = 55
		{24, 2*19683 + 1}, // k=9: 2*3^9+1 = 39367
	}
	for _, c := range cases {
		n := NewSpecialFunc3[float64](c.tag, NewConstant[float64](2), NewConstant[float64](3), NewConstant[float64](1))
		if got := n.Value(k); got != c.want {
			t.Fatalf("tag %d: got %v want %v", c.tag, got, c.want)
		}
	}
}

func TestSpecialFunc3IsTrueTernary(t *testing.T) {
	k := k64()
	n := NewSpecialFunc3[float64](25, NewConstant[float64](1), NewConstant[float64](10), NewConstant[float64](20))
	if got := n.Value(k); got != 10 {
		t.Fatalf("got %v want 10 when predicate is true", got)
	}
	n = NewSpecialFunc3[float64](25, NewConstant[float64](0), NewConstant[float64](10), NewConstant[float64](20))
	if got := n.Value(k); got != 20 {
		t.Fatalf("got %v want 20 when predicate is false", got)
	}
}
