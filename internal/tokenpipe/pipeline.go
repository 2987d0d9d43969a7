// Package tokenpipe implements the token pipeline (C4): a fixed-order
// sequence of passes over the token deque the lexer produced — inserters,
// joiners, modifiers, then scanners — each either rewriting the deque or
// recording a structured diagnostic against the offending token.
package tokenpipe

import (
	"github.com/exprtk-go/exprtk/internal/cerr"
	"github.com/exprtk-go/exprtk/internal/lexer"
	"github.com/exprtk-go/exprtk/internal/numeric"
)

// ignoreSet holds the symbols the commutative inserter must not fire
// before or after (word operators that already separate operands).
var ignoreSet = map[string]bool{
	"and": true, "or": true, "not": true, "xor": true, "nand": true,
	"nor": true, "xnor": true, "mod": true, "in": true, "like": true,
	"ilike": true, "and_assign": true, "for": true, "while": true,
	"if": true, "then": true, "else": true, "repeat": true, "until": true,
	"switch": true, "case": true, "default": true, "return": true,
	"break": true, "continue": true, "var": true, "null": true,
}

// Run applies inserters, joiners, modifiers, and scanners over toks in
// that fixed order and returns the rewritten deque plus any diagnostics
// the scanner stage collected. A bracket mismatch stops the pipeline
// early per spec.md §4.4.
func Run(toks []lexer.Token) ([]lexer.Token, []*cerr.Error) {
	toks = insertImplicitMultiplication(toks)
	toks = joinOperators(toks)
	toks = replaceSymbols(toks)

	var errs []*cerr.Error
	if err := checkBrackets(toks); err != nil {
		return toks, []*cerr.Error{err}
	}
	errs = append(errs, checkNumerics(toks)...)
	errs = append(errs, checkSequence(toks)...)
	return toks, errs
}

func pos(t lexer.Token) cerr.Position { return cerr.Position{Offset: t.Pos} }

// insertImplicitMultiplication is the commutative inserter (stride 2):
// idioms like "2x" or "2(x+1)" get an implicit '*' spliced between the
// two tokens, unless the left operand is a $-special-function symbol or
// either operand is a word in the ignore set (spec.md §4.4).
func insertImplicitMultiplication(toks []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(toks))
	for i, cur := range toks {
		out = append(out, cur)
		if i+1 >= len(toks) {
			continue
		}
		next := toks[i+1]
		if !commutativePair(cur, next) {
			continue
		}
		out = append(out, lexer.Token{Kind: lexer.KindMul, Lexeme: "*", Pos: next.Pos})
	}
	return out
}

func commutativePair(left, right lexer.Token) bool {
	if left.Kind == lexer.KindSymbol && len(left.Lexeme) > 0 && left.Lexeme[0] == '$' {
		return false
	}
	if left.Kind == lexer.KindSymbol && ignoreSet[lowerASCII(left.Lexeme)] {
		return false
	}
	if right.Kind == lexer.KindSymbol && ignoreSet[lowerASCII(right.Lexeme)] {
		return false
	}
	switch {
	case left.Kind == lexer.KindNumber && right.Kind == lexer.KindSymbol:
		return true
	case left.Kind == lexer.KindNumber && right.Kind == lexer.KindLBracket:
		return true
	case left.Kind == lexer.KindSymbol && right.Kind == lexer.KindNumber:
		return true
	case left.Kind == lexer.KindRBracket && right.Kind == lexer.KindNumber:
		return true
	case left.Kind == lexer.KindRBracket && right.Kind == lexer.KindSymbol:
		return true
	case left.Kind == lexer.KindRBracket && right.Kind == lexer.KindLBracket:
		return true
	case left.Kind == lexer.KindNumber && right.Kind == lexer.KindNumber:
		return false // two adjacent number tokens are a sequence error, not a product
	default:
		return false
	}
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

type joinRule struct {
	kinds  []lexer.Kind
	result lexer.Kind
	lexeme string
}

// strideTwoJoins mirrors spec.md §4.4's operator joiner. The lexer already
// recognizes these inline, so these rules are mostly defensive/idempotent;
// they matter when an upstream rewrite (e.g. a future inserter) produces
// adjacent single-character tokens that should be read as one operator.
var strideTwoJoins = []joinRule{
	{[]lexer.Kind{lexer.KindColon, lexer.KindEQ}, lexer.KindAssign, ":="},
	{[]lexer.Kind{lexer.KindLT, lexer.KindEQ}, lexer.KindLTE, "<="},
	{[]lexer.Kind{lexer.KindGT, lexer.KindEQ}, lexer.KindGTE, ">="},
	{[]lexer.Kind{lexer.KindLT, lexer.KindGT}, lexer.KindNE, "<>"},
}

// joinOperators applies the stride-2 defensive joins above plus the
// stride-3 "[*]" wildcard-slice marker spec.md §4.4 calls out explicitly.
func joinOperators(toks []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(toks))
	i := 0
	for i < len(toks) {
		if i+2 < len(toks) &&
			toks[i].Kind == lexer.KindLSqr && toks[i+1].Kind == lexer.KindMul && toks[i+2].Kind == lexer.KindRSqr {
			out = append(out, lexer.Token{Kind: lexer.KindSymbol, Lexeme: "[*]", Pos: toks[i].Pos})
			i += 3
			continue
		}
		if i+1 < len(toks) {
			if rule, ok := matchStrideTwo(toks[i], toks[i+1]); ok {
				out = append(out, lexer.Token{Kind: rule.result, Lexeme: rule.lexeme, Pos: toks[i].Pos})
				i += 2
				continue
			}
		}
		out = append(out, toks[i])
		i++
	}
	return out
}

func matchStrideTwo(a, b lexer.Token) (joinRule, bool) {
	for _, r := range strideTwoJoins {
		if a.Kind == r.kinds[0] && b.Kind == r.kinds[1] {
			return r, true
		}
	}
	return joinRule{}, false
}

// replaceSymbols is the symbol replacer: bare boolean literals fold into
// numeric tokens immediately so downstream stages never special-case them.
func replaceSymbols(toks []lexer.Token) []lexer.Token {
	for i, t := range toks {
		if t.Kind != lexer.KindSymbol {
			continue
		}
		switch lowerASCII(t.Lexeme) {
		case "true":
			toks[i] = lexer.Token{Kind: lexer.KindNumber, Lexeme: "1", Pos: t.Pos}
		case "false":
			toks[i] = lexer.Token{Kind: lexer.KindNumber, Lexeme: "0", Pos: t.Pos}
		}
	}
	return toks
}

var closerFor = map[lexer.Kind]lexer.Kind{
	lexer.KindLBracket: lexer.KindRBracket,
	lexer.KindLSqr:     lexer.KindRSqr,
	lexer.KindLCrl:     lexer.KindRCrl,
}

var openerNames = map[lexer.Kind]string{
	lexer.KindLBracket: "(", lexer.KindLSqr: "[", lexer.KindLCrl: "{",
}

// checkBrackets is the bracket-balance scanner: a stack of expected
// closers, reporting the first mismatch or the first unclosed opener.
func checkBrackets(toks []lexer.Token) *cerr.Error {
	var stack []lexer.Token
	for _, t := range toks {
		switch t.Kind {
		case lexer.KindLBracket, lexer.KindLSqr, lexer.KindLCrl:
			stack = append(stack, t)
		case lexer.KindRBracket, lexer.KindRSqr, lexer.KindRCrl:
			if len(stack) == 0 {
				return cerr.New(cerr.Syntax, pos(t), t.Lexeme, "unmatched closing bracket %q", t.Lexeme)
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if closerFor[open.Kind] != t.Kind {
				return cerr.New(cerr.Syntax, pos(t), t.Lexeme,
					"expected closer for %q but found %q", openerNames[open.Kind], t.Lexeme)
			}
		}
	}
	if len(stack) > 0 {
		open := stack[len(stack)-1]
		return cerr.New(cerr.Syntax, pos(open), openerNames[open.Kind], "unclosed %q", openerNames[open.Kind])
	}
	return nil
}

// checkNumerics re-validates every number token through the same hot-path
// parser the kernel will eventually use, surfacing malformed literals the
// scanner let through structurally (e.g. an exponent backed off to a bare
// digit run is fine; a literal with no parseable digits at all is not).
func checkNumerics(toks []lexer.Token) []*cerr.Error {
	var errs []*cerr.Error
	for _, t := range toks {
		if t.Kind != lexer.KindNumber {
			continue
		}
		if !looksNumeric(t.Lexeme) {
			errs = append(errs, cerr.New(cerr.Numeric, pos(t), t.Lexeme, "malformed numeric literal %q", t.Lexeme))
		}
	}
	return errs
}

func looksNumeric(s string) bool {
	r := numeric.ParseDouble(s)
	return r.Valid && r.Consumed == len(s)
}

type kindPair struct{ a, b lexer.Kind }

// forbiddenAdjacent is the sequence validator's table of token-kind pairs
// that can never legally sit next to each other (spec.md §4.4).
var forbiddenAdjacent = map[kindPair]bool{
	{lexer.KindNumber, lexer.KindNumber}: true,
	{lexer.KindString, lexer.KindColon}:  true,
	{lexer.KindColon, lexer.KindColon}:   true,
	{lexer.KindComma, lexer.KindComma}:   true,
	{lexer.KindComma, lexer.KindRBracket}: true,
	{lexer.KindLBracket, lexer.KindComma}: true,
}

// checkSequence is the sequence validator (scanner stride 2).
func checkSequence(toks []lexer.Token) []*cerr.Error {
	var errs []*cerr.Error
	for i := 0; i+1 < len(toks); i++ {
		pair := kindPair{toks[i].Kind, toks[i+1].Kind}
		if forbiddenAdjacent[pair] {
			errs = append(errs, cerr.New(cerr.Syntax, pos(toks[i+1]), toks[i+1].Lexeme,
				"illegal adjacency: %s followed by %s", toks[i].Kind, toks[i+1].Kind))
		}
	}
	return errs
}
