package numeric

import (
	"math"
	"testing"
)

func TestParseDoubleBasic(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"123", 123},
		{"123.456", 123.456},
		{"-42", -42},
		{"+3.5", 3.5},
		{"1e3", 1000},
		{"1.5e-2", 0.015},
		{"0007", 7},
		{"2.5f", 2.5},
	}
	for _, c := range cases {
		r := ParseDouble(c.in)
		if !r.Valid {
			t.Fatalf("%q: expected valid parse", c.in)
		}
		if math.Abs(r.Value-c.want) > 1e-9 {
			t.Fatalf("%q: got %v want %v", c.in, r.Value, c.want)
		}
	}
}

func TestParseDoubleSentinels(t *testing.T) {
	for _, in := range []string{"inf", "Infinity", "-inf", "NAN", "nan"} {
		r := ParseDouble(in)
		if !r.Valid {
			t.Fatalf("%q should parse", in)
		}
	}
}

func TestParseDoubleRejectsGarbage(t *testing.T) {
	r := ParseDouble("")
	if r.Valid {
		t.Fatal("empty string must not parse")
	}
	r = ParseDouble("abc")
	if r.Valid {
		t.Fatal("non-numeric text must not parse")
	}
}

func TestParseDoubleStopsBeforeTrailingSymbol(t *testing.T) {
	r := ParseDouble("12x")
	if !r.Valid || r.Value != 12 || r.Consumed != 2 {
		t.Fatalf("expected to consume only the numeric prefix, got %+v", r)
	}
}
