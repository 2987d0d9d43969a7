package lexer

import "testing"

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, want ...Kind) {
	t.Helper()
	got := kinds(New(src).ScanTokens())
	if len(got) != len(want) {
		t.Fatalf("%q: got %v want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d got %s want %s", src, i, got[i], want[i])
		}
	}
}

func TestTwoCharOperators(t *testing.T) {
	assertKinds(t, "a:=1", KindSymbol, KindAssign, KindNumber, KindEOF)
	assertKinds(t, "a<=b", KindSymbol, KindLTE, KindSymbol, KindEOF)
	assertKinds(t, "a>=b", KindSymbol, KindGTE, KindSymbol, KindEOF)
	assertKinds(t, "a<>b", KindSymbol, KindNE, KindSymbol, KindEOF)
	assertKinds(t, "a!=b", KindSymbol, KindNE, KindSymbol, KindEOF)
	assertKinds(t, "a<<b", KindSymbol, KindShl, KindSymbol, KindEOF)
	assertKinds(t, "a>>b", KindSymbol, KindShr, KindSymbol, KindEOF)
}

func TestCommentsSkipped(t *testing.T) {
	assertKinds(t, "1 // trailing\n+2", KindNumber, KindAdd, KindNumber, KindEOF)
	assertKinds(t, "1 # shell style\n+2", KindNumber, KindAdd, KindNumber, KindEOF)
	assertKinds(t, "1 /* block\ncomment */ + 2", KindNumber, KindAdd, KindNumber, KindEOF)
}

func TestNumberLiterals(t *testing.T) {
	toks := New("3.14e-2").ScanTokens()
	if toks[0].Kind != KindNumber || toks[0].Lexeme != "3.14e-2" {
		t.Fatalf("got %+v", toks[0])
	}
	toks = New("2.").ScanTokens()
	if toks[0].Kind != KindNumber || toks[0].Lexeme != "2." {
		t.Fatalf("trailing dot should be part of the number literal: %+v", toks[0])
	}
	toks = New("1e").ScanTokens()
	if toks[0].Kind != KindNumber || toks[0].Lexeme != "1" {
		t.Fatalf("dangling exponent marker must back off: %+v", toks[0])
	}
	toks = New("1.2.3").ScanTokens()
	if toks[0].Kind != KindErrNumber {
		t.Fatalf("second decimal point should error, got %+v", toks[0])
	}
}

func TestSpecialFunctionRecognition(t *testing.T) {
	toks := New("$f08(x,y)").ScanTokens()
	if toks[0].Kind != KindSymbol || toks[0].Lexeme != "$f08" {
		t.Fatalf("got %+v", toks[0])
	}
	toks = New("$f1(x)").ScanTokens()
	if toks[0].Kind != KindErrSFunc {
		t.Fatalf("single digit must be rejected, got %+v", toks[0])
	}
	toks = New("$zz").ScanTokens()
	if toks[0].Kind != KindErrSFunc {
		t.Fatalf("missing 'f' must be rejected, got %+v", toks[0])
	}
}

func TestStringEscapes(t *testing.T) {
	toks := New(`'a\nb\'c'`).ScanTokens()
	if toks[0].Kind != KindString || toks[0].Lexeme != "a\nb'c" {
		t.Fatalf("got %+v", toks[0])
	}
	toks = New("'unterminated").ScanTokens()
	if toks[0].Kind != KindErrString {
		t.Fatalf("unterminated string must error, got %+v", toks[0])
	}
}

func TestBracketsAndSymbols(t *testing.T) {
	assertKinds(t, "foo(1,2)", KindSymbol, KindLBracket, KindNumber, KindComma, KindNumber, KindRBracket, KindEOF)
	assertKinds(t, "v[1:2]", KindSymbol, KindLSqr, KindNumber, KindColon, KindNumber, KindRSqr, KindEOF)
}
