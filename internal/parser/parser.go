// Package parser implements the recursive-descent, precedence-climbing
// expression parser (C6): token stream to expression tree, consulting the
// symbol table (C2) and routing every synthesized node through the
// optimizer (C7). Structurally adapted from the teacher's parser.go: a
// precedence-level cascade of methods over a token cursor, generalized
// from statement parsing to expression parsing.
package parser

import (
	"strconv"
	"strings"

	"github.com/exprtk-go/exprtk/internal/ast"
	"github.com/exprtk-go/exprtk/internal/cerr"
	"github.com/exprtk-go/exprtk/internal/lexer"
	"github.com/exprtk-go/exprtk/internal/numeric"
	"github.com/exprtk-go/exprtk/internal/optimize"
	"github.com/exprtk-go/exprtk/internal/resolver"
	"github.com/exprtk-go/exprtk/internal/symtab"
)

// Parser turns a token deque into an expression tree for numeric type N.
// The grammar levels (spec.md §4.6) run low to high: parseAssign (L00),
// parseAndWord (L01), parseOrWord (L03), parseCompare (L05/06),
// parseAdditive (L07/08), parseMultiplicative (L10/11), parseUnary (L09),
// parsePow (L12), parsePostfix/parsePrimary (L13).
type Parser[N ast.Number] struct {
	toks []lexer.Token
	pos  int

	st     *symtab.Table[N]
	kernel ast.Kernel[N]
	opts   optimize.Options
	errs   cerr.List

	resolver resolver.Resolver[N]

	cacheSymbols bool
	symbolsSeen  map[string]bool
}

// New constructs a parser over toks, resolving free symbols against st.
func New[N ast.Number](toks []lexer.Token, st *symtab.Table[N], k ast.Kernel[N], opts optimize.Options) *Parser[N] {
	return &Parser[N]{toks: toks, st: st, kernel: k, opts: opts, symbolsSeen: map[string]bool{}}
}

// WithResolver installs the unknown-symbol resolver (spec.md §6).
func (p *Parser[N]) WithResolver(r resolver.Resolver[N]) *Parser[N] { p.resolver = r; return p }

// WithSymbolCache enables expression_symbols() tracking.
func (p *Parser[N]) WithSymbolCache(on bool) *Parser[N] { p.cacheSymbols = on; return p }

// Errors returns every diagnostic collected during Parse.
func (p *Parser[N]) Errors() []*cerr.Error { return p.errs.All() }

// ReplaceSymbol rewrites every bound reference to oldRef within n to
// newRef, the function-compositor helper's name-mangling primitive
// (spec.md §6: "consumes the parser's replace_symbol API").
func ReplaceSymbol[N ast.Number](n *ast.Node[N], oldRef, newRef *N) {
	if n == nil {
		return
	}
	if n.VarRef == oldRef {
		n.VarRef = newRef
	}
	for _, c := range n.Children {
		ReplaceSymbol(c, oldRef, newRef)
	}
	for _, a := range n.Args {
		ReplaceSymbol(a, oldRef, newRef)
	}
}

// Symbols returns the sorted unique list of symbols referenced during
// parsing, when symbol-name caching was enabled.
func (p *Parser[N]) Symbols() []string {
	out := make([]string, 0, len(p.symbolsSeen))
	for s := range p.symbolsSeen {
		out = append(out, s)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Parse consumes the whole token deque: a ';'-separated sequence of
// expressions, whose value is the last expression's value (spec.md
// §4.6's "multi" semantics). On an unrecoverable parse failure it
// returns a null tree; callers must check Errors().
func (p *Parser[N]) Parse() *ast.Node[N] {
	var stmts []*ast.Node[N]
	for !p.isAtEOF() {
		if p.check(lexer.KindSemicolon) {
			p.advance()
			continue
		}
		e := p.parseAssign()
		if e == nil {
			return ast.NewNull[N]()
		}
		stmts = append(stmts, e)
		if p.check(lexer.KindSemicolon) {
			p.advance()
		}
	}
	if len(stmts) == 0 {
		return ast.NewNull[N]()
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	return ast.NewNAry[N](ast.OpMulti, stmts)
}

// parseAssign is L00: right-associative ':='.
func (p *Parser[N]) parseAssign() *ast.Node[N] {
	left := p.parseAndWord()
	if left == nil {
		return nil
	}
	if p.check(lexer.KindAssign) {
		if left.Kind == ast.KindVariable && left.ReadOnly {
			p.fail(cerr.Symtab, p.peek().Lexeme, "cannot assign to a constant")
			return nil
		}
		p.advance()
		right := p.parseAssign()
		if right == nil {
			return nil
		}
		return optimize.Synthesize[N](p.kernel, p.opts, ast.OpAssign, left, right)
	}
	return left
}

// parseAndWord is L01/L02: 'and'/'&' (short-circuit), 'nand', left-associative.
func (p *Parser[N]) parseAndWord() *ast.Node[N] {
	left := p.parseOrWord()
	for left != nil {
		switch {
		case p.checkWord("and"):
			p.advance()
			right := p.parseOrWord()
			if right == nil {
				return nil
			}
			left = optimize.Synthesize[N](p.kernel, p.opts, ast.OpAnd, left, right)
		case p.checkWord("nand"):
			p.advance()
			right := p.parseOrWord()
			if right == nil {
				return nil
			}
			left = optimize.Synthesize[N](p.kernel, p.opts, ast.OpNand, left, right)
		case p.check(lexer.KindSymbol) && p.peek().Lexeme == "&":
			p.advance()
			right := p.parseOrWord()
			if right == nil {
				return nil
			}
			left = optimize.Synthesize[N](p.kernel, p.opts, ast.OpScAnd, left, right)
		default:
			return left
		}
	}
	return left
}

// parseOrWord is L03/L04: 'or'/'|' (short-circuit), 'nor'/'xor'/'xnor',
// plus the string relational words 'in'/'like'/'ilike'.
func (p *Parser[N]) parseOrWord() *ast.Node[N] {
	left := p.parseCompare()
	for left != nil {
		switch {
		case p.checkWord("or"):
			p.advance()
			right := p.parseCompare()
			if right == nil {
				return nil
			}
			left = optimize.Synthesize[N](p.kernel, p.opts, ast.OpOr, left, right)
		case p.checkWord("nor"):
			p.advance()
			right := p.parseCompare()
			if right == nil {
				return nil
			}
			left = optimize.Synthesize[N](p.kernel, p.opts, ast.OpNor, left, right)
		case p.checkWord("xor"):
			p.advance()
			right := p.parseCompare()
			if right == nil {
				return nil
			}
			left = optimize.Synthesize[N](p.kernel, p.opts, ast.OpXor, left, right)
		case p.checkWord("xnor"):
			p.advance()
			right := p.parseCompare()
			if right == nil {
				return nil
			}
			left = optimize.Synthesize[N](p.kernel, p.opts, ast.OpXnor, left, right)
		case p.checkWord("in"):
			p.advance()
			right := p.parseCompare()
			if right == nil {
				return nil
			}
			left = ast.NewBinary[N](ast.OpStrIn, left, right)
		case p.checkWord("like"):
			p.advance()
			right := p.parseCompare()
			if right == nil {
				return nil
			}
			left = ast.NewBinary[N](ast.OpStrLike, left, right)
		case p.checkWord("ilike"):
			p.advance()
			right := p.parseCompare()
			if right == nil {
				return nil
			}
			left = ast.NewBinary[N](ast.OpStrILike, left, right)
		case p.check(lexer.KindSymbol) && p.peek().Lexeme == "|":
			p.advance()
			right := p.parseCompare()
			if right == nil {
				return nil
			}
			left = optimize.Synthesize[N](p.kernel, p.opts, ast.OpScOr, left, right)
		default:
			return left
		}
	}
	return left
}

var compareOps = map[lexer.Kind]ast.Operator{
	lexer.KindLT: ast.OpLT, lexer.KindLTE: ast.OpLTE,
	lexer.KindGT: ast.OpGT, lexer.KindGTE: ast.OpGTE,
	lexer.KindEQ: ast.OpEQ, lexer.KindNE: ast.OpNE,
	lexer.KindShr: ast.OpShr, lexer.KindShl: ast.OpShl,
}

// parseCompare is L05/L06, also where the bit-shift operators ('>>'/'<<')
// slot in — they share the comparison tier rather than the arithmetic one
// in spec.md §4.6's precedence table.
func (p *Parser[N]) parseCompare() *ast.Node[N] {
	left := p.parseAdditive()
	for left != nil {
		op, ok := compareOps[p.peek().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		left = optimize.Synthesize[N](p.kernel, p.opts, op, left, right)
	}
	return left
}

// parseAdditive is L07/L08.
func (p *Parser[N]) parseAdditive() *ast.Node[N] {
	left := p.parseMultiplicative()
	for left != nil {
		var op ast.Operator
		switch p.peek().Kind {
		case lexer.KindAdd:
			op = ast.OpAdd
		case lexer.KindSub:
			op = ast.OpSub
		default:
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		if op == ast.OpAdd && (left.IsStringValued() || right.IsStringValued()) {
			left = ast.NewBinary[N](ast.OpStrConcat, left, right)
			continue
		}
		left = optimize.Synthesize[N](p.kernel, p.opts, op, left, right)
	}
	return left
}

// parseMultiplicative is L10/L11.
func (p *Parser[N]) parseMultiplicative() *ast.Node[N] {
	left := p.parseUnary()
	for left != nil {
		var op ast.Operator
		switch p.peek().Kind {
		case lexer.KindMul:
			op = ast.OpMul
		case lexer.KindDiv:
			op = ast.OpDiv
		case lexer.KindMod:
			op = ast.OpMod
		default:
			return left
		}
		p.advance()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = optimize.Synthesize[N](p.kernel, p.opts, op, left, right)
	}
	return left
}

// parseUnary is L09: a leading '+'/'-'/'not' binds to an L12 (parsePow)
// sub-expression so "-x^2" parses as "-(x^2)" (spec.md §4.6).
func (p *Parser[N]) parseUnary() *ast.Node[N] {
	switch {
	case p.check(lexer.KindSub):
		p.advance()
		operand := p.parsePow()
		if operand == nil {
			return nil
		}
		return ast.NewUnary[N](ast.OpSub, operand)
	case p.check(lexer.KindAdd):
		p.advance()
		return p.parsePow()
	case p.checkWord("not"):
		p.advance()
		operand := p.parsePow()
		if operand == nil {
			return nil
		}
		return ast.NewUnary[N](ast.OpNot, operand)
	default:
		return p.parsePow()
	}
}

// parsePow is L12: right-associative '^'.
func (p *Parser[N]) parsePow() *ast.Node[N] {
	left := p.parsePostfix()
	if left == nil {
		return nil
	}
	if p.check(lexer.KindPow) {
		p.advance()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		return optimize.Synthesize[N](p.kernel, p.opts, ast.OpPow, left, right)
	}
	return left
}

// parsePostfix is L13: primary plus an optional [lo:hi] range suffix for
// string-valued primaries.
func (p *Parser[N]) parsePostfix() *ast.Node[N] {
	n := p.parsePrimary()
	if n == nil {
		return nil
	}
	if p.check(lexer.KindLSqr) {
		return p.parseRangeSuffix(n)
	}
	return n
}

func (p *Parser[N]) parseRangeSuffix(n *ast.Node[N]) *ast.Node[N] {
	p.advance() // '['
	r := &ast.RangePack[N]{}
	if p.check(lexer.KindColon) {
		r.LoAbsent = true
	} else {
		lo := p.parseAssign()
		if lo == nil {
			return nil
		}
		if lo.Kind == ast.KindConstant {
			r.Lo = int(lo.Const)
			r.LoLiteral = true
		} else {
			r.LoExpr = lo
		}
	}
	if !p.expect(lexer.KindColon, "missing ':' in range expression") {
		return nil
	}
	if p.check(lexer.KindRSqr) {
		r.HiAbsent = true
	} else {
		hi := p.parseAssign()
		if hi == nil {
			return nil
		}
		if hi.Kind == ast.KindConstant {
			r.Hi = int(hi.Const)
			r.HiLiteral = true
		} else {
			r.HiExpr = hi
		}
	}
	if !p.expect(lexer.KindRSqr, "missing closing ']' in range expression") {
		return nil
	}
	if r.Constant() && !r.LoAbsent && !r.HiAbsent && (r.Lo < 0 || r.Lo > r.Hi) {
		p.fail(cerr.Syntax, "", "invalid range bounds [%d:%d]", r.Lo, r.Hi)
		return nil
	}
	switch n.Kind {
	case ast.KindStringConst:
		return ast.NewConstStringRange[N](n.StrConst, r)
	case ast.KindStringVar:
		return ast.NewStringRange[N](n.StrRef, r)
	default:
		p.fail(cerr.Syntax, "", "range suffix only applies to string expressions")
		return nil
	}
}

// parsePrimary dispatches on the current token (spec.md §4.6).
func (p *Parser[N]) parsePrimary() *ast.Node[N] {
	tok := p.peek()
	switch tok.Kind {
	case lexer.KindNumber:
		p.advance()
		return p.parseNumberLiteral(tok)
	case lexer.KindString:
		p.advance()
		return ast.NewStringConst[N](tok.Lexeme)
	case lexer.KindLBracket, lexer.KindLCrl:
		closer := lexer.KindRBracket
		if tok.Kind == lexer.KindLCrl {
			closer = lexer.KindRCrl
		}
		p.advance()
		e := p.parseAssign()
		if e == nil {
			return nil
		}
		if !p.expect(closer, "missing closing bracket") {
			return nil
		}
		return e
	case lexer.KindSymbol:
		return p.parseSymbolPrimary(tok)
	case lexer.KindError, lexer.KindErrSymbol, lexer.KindErrNumber, lexer.KindErrString, lexer.KindErrSFunc:
		p.advance()
		p.fail(cerr.Lexer, tok.Lexeme, "%s", tok.Message)
		return nil
	default:
		p.fail(cerr.Syntax, tok.Lexeme, "unexpected token %q", tok.Lexeme)
		return nil
	}
}

func (p *Parser[N]) parseNumberLiteral(tok lexer.Token) *ast.Node[N] {
	res := numeric.ParseDouble(tok.Lexeme)
	if !res.Valid {
		p.fail(cerr.Numeric, tok.Lexeme, "malformed numeric literal %q", tok.Lexeme)
		return nil
	}
	return ast.NewConstant[N](N(res.Value))
}

func (p *Parser[N]) parseSymbolPrimary(tok lexer.Token) *ast.Node[N] {
	name := tok.Lexeme
	lower := strings.ToLower(name)

	switch {
	case lower == "null":
		p.advance()
		return ast.NewNull[N]()
	case lower == "if":
		p.advance()
		return p.parseIf()
	case lower == "while":
		p.advance()
		return p.parseWhile()
	case lower == "repeat":
		p.advance()
		return p.parseRepeatUntil()
	case lower == "switch":
		p.advance()
		return p.parseSwitch()
	case name == "[*]":
		p.advance()
		return p.parseMultiSwitch()
	case name == "~":
		p.advance()
		return p.parseMultiSeq()
	case strings.HasPrefix(name, "$f"):
		p.advance()
		return p.parseSpecialFunction(tok)
	}

	if b, ok := builtins[lower]; ok {
		p.advance()
		return p.parseBuiltinCall(tok, b)
	}

	p.advance()
	if p.cacheSymbols {
		p.symbolsSeen[lower] = true
	}
	return p.resolveSymbol(tok, name)
}

// resolveSymbol looks name up against the symbol table; a user-defined
// function call is recognized by a following '(' and is arity-checked
// against the registered callable.
func (p *Parser[N]) resolveSymbol(tok lexer.Token, name string) *ast.Node[N] {
	if p.check(lexer.KindLBracket) {
		if fn, arity, ok := p.st.GetFunction(name); ok {
			return p.parseUserFunctionCall(tok, fn, arity)
		}
		if vf, ok := p.st.GetVarargFunction(name); ok {
			return p.parseVarargUserCall(vf)
		}
	}
	if v := p.st.GetVariable(name); v != nil {
		n := ast.NewVariable[N](v)
		n.ReadOnly = p.st.IsConstant(name)
		return n
	}
	if sv := p.st.GetStringVar(name); sv != nil {
		return ast.NewStringVar[N](sv)
	}
	if p.resolver != nil {
		kind, def, ok, errMsg := p.resolver.Resolve(name)
		if ok {
			switch kind {
			case resolver.Constant:
				p.st.AddConstant(name, def)
			default:
				p.st.CreateVariable(name, def)
			}
			if v := p.st.GetVariable(name); v != nil {
				n := ast.NewVariable[N](v)
				n.ReadOnly = p.st.IsConstant(name)
				return n
			}
		}
		if errMsg != "" {
			p.fail(cerr.Symtab, name, "%s", errMsg)
			return nil
		}
	}
	p.fail(cerr.Symtab, name, "undefined symbol %q", name)
	return nil
}

func (p *Parser[N]) parseUserFunctionCall(tok lexer.Token, fn symtab.Func[N], arity int) *ast.Node[N] {
	args := p.parseArgList()
	if args == nil {
		return nil
	}
	if len(args) != arity {
		p.fail(cerr.Syntax, tok.Lexeme, "%q expects %d argument(s), got %d", tok.Lexeme, arity, len(args))
		return nil
	}
	return ast.NewFunctionCall[N](fn, args)
}

func (p *Parser[N]) parseVarargUserCall(f symtab.VarargFunc[N]) *ast.Node[N] {
	args := p.parseArgList()
	if args == nil {
		return nil
	}
	return ast.NewVarargFunctionCall[N](f, args)
}

// parseArgList consumes "(a, b, c)" and returns the parsed children.
func (p *Parser[N]) parseArgList() []*ast.Node[N] {
	if !p.expect(lexer.KindLBracket, "expected '(' in function call") {
		return nil
	}
	var args []*ast.Node[N]
	if !p.check(lexer.KindRBracket) {
		for {
			e := p.parseAssign()
			if e == nil {
				return nil
			}
			args = append(args, e)
			if p.check(lexer.KindComma) {
				p.advance()
				continue
			}
			break
		}
	}
	if !p.expect(lexer.KindRBracket, "missing closing ')' in function call") {
		return nil
	}
	return args
}

func (p *Parser[N]) parseBuiltinCall(tok lexer.Token, b builtin) *ast.Node[N] {
	args := p.parseArgList()
	if args == nil {
		return nil
	}
	switch b.class {
	case arityUnary:
		if len(args) != 1 {
			p.fail(cerr.Syntax, tok.Lexeme, "%q expects 1 argument, got %d", tok.Lexeme, len(args))
			return nil
		}
		return ast.NewUnary[N](b.op, args[0])
	case arityBinary:
		if len(args) != 2 {
			p.fail(cerr.Syntax, tok.Lexeme, "%q expects 2 arguments, got %d", tok.Lexeme, len(args))
			return nil
		}
		return ast.NewBinary[N](b.op, args[0], args[1])
	case arityTrinary:
		if len(args) != 3 {
			p.fail(cerr.Syntax, tok.Lexeme, "%q expects 3 arguments, got %d", tok.Lexeme, len(args))
			return nil
		}
		return ast.NewNAry[N](b.op, args)
	default: // arityVariadic
		if len(args) == 0 {
			p.fail(cerr.Syntax, tok.Lexeme, "%q expects at least 1 argument", tok.Lexeme)
			return nil
		}
		return ast.NewNAry[N](b.op, args)
	}
}

// parseSpecialFunction dispatches a $fNN token to the sf3/sf4 catalog; 3
// arguments select the 3-ary table, 4 arguments the 4-ary table
// (spec.md §4.5).
func (p *Parser[N]) parseSpecialFunction(tok lexer.Token) *ast.Node[N] {
	digits := tok.Lexeme[2:]
	tag, err := strconv.Atoi(digits)
	if err != nil || len(digits) != 2 {
		p.fail(cerr.Token, tok.Lexeme, "malformed special function %q", tok.Lexeme)
		return nil
	}
	args := p.parseArgList()
	if args == nil {
		return nil
	}
	switch len(args) {
	case 3:
		return ast.NewSpecialFunc3[N](tag, args[0], args[1], args[2])
	case 4:
		return ast.NewSpecialFunc4[N](tag, args[0], args[1], args[2], args[3])
	default:
		p.fail(cerr.Syntax, tok.Lexeme, "special function %q expects 3 or 4 arguments, got %d", tok.Lexeme, len(args))
		return nil
	}
}

// parseIf parses "if(cond, then, else)".
func (p *Parser[N]) parseIf() *ast.Node[N] {
	if !p.expect(lexer.KindLBracket, "expected '(' after 'if'") {
		return nil
	}
	cond := p.parseAssign()
	if cond == nil {
		return nil
	}
	if !p.expect(lexer.KindComma, "expected ',' after if-condition") {
		return nil
	}
	then := p.parseAssign()
	if then == nil {
		return nil
	}
	if !p.expect(lexer.KindComma, "expected ',' after if-then-branch") {
		return nil
	}
	els := p.parseAssign()
	if els == nil {
		return nil
	}
	if !p.expect(lexer.KindRBracket, "missing closing ')' in if-expression") {
		return nil
	}
	return ast.NewConditional[N](cond, then, els)
}

// parseWhile parses "while(cond){body}" or "while(cond)(body, body, ...)".
func (p *Parser[N]) parseWhile() *ast.Node[N] {
	if !p.expect(lexer.KindLBracket, "expected '(' after 'while'") {
		return nil
	}
	cond := p.parseAssign()
	if cond == nil {
		return nil
	}
	if !p.expect(lexer.KindRBracket, "missing closing ')' in while-condition") {
		return nil
	}
	body := p.parseBraceOrParenSequence()
	if body == nil {
		return nil
	}
	return ast.NewWhile[N](cond, body)
}

// parseRepeatUntil parses "repeat body... until(cond)" where body is a
// ';'-separated statement sequence.
func (p *Parser[N]) parseRepeatUntil() *ast.Node[N] {
	var stmts []*ast.Node[N]
	for !p.checkWord("until") {
		if p.isAtEOF() {
			p.fail(cerr.Syntax, "", "unterminated repeat-until block")
			return nil
		}
		e := p.parseAssign()
		if e == nil {
			return nil
		}
		stmts = append(stmts, e)
		if p.check(lexer.KindSemicolon) {
			p.advance()
		}
	}
	p.advance() // 'until'
	if !p.expect(lexer.KindLBracket, "expected '(' after 'until'") {
		return nil
	}
	cond := p.parseAssign()
	if cond == nil {
		return nil
	}
	if !p.expect(lexer.KindRBracket, "missing closing ')' in until-condition") {
		return nil
	}
	var body *ast.Node[N]
	if len(stmts) == 1 {
		body = stmts[0]
	} else {
		body = ast.NewNAry[N](ast.OpMulti, stmts)
	}
	return ast.NewRepeatUntil[N](body, cond)
}

// parseBraceOrParenSequence parses "{ e; e; ... }" or "(e, e, ...)" into a
// single node (a multi node when more than one statement is present).
func (p *Parser[N]) parseBraceOrParenSequence() *ast.Node[N] {
	var closer lexer.Kind
	var sep lexer.Kind
	switch {
	case p.check(lexer.KindLCrl):
		closer, sep = lexer.KindRCrl, lexer.KindSemicolon
	case p.check(lexer.KindLBracket):
		closer, sep = lexer.KindRBracket, lexer.KindComma
	default:
		p.fail(cerr.Syntax, p.peek().Lexeme, "expected '{' or '(' to start a block")
		return nil
	}
	p.advance()
	var stmts []*ast.Node[N]
	for !p.check(closer) {
		e := p.parseAssign()
		if e == nil {
			return nil
		}
		stmts = append(stmts, e)
		if p.check(sep) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(closer, "missing closing delimiter in block") {
		return nil
	}
	if len(stmts) == 1 {
		return stmts[0]
	}
	if len(stmts) == 0 {
		return ast.NewNull[N]()
	}
	return ast.NewNAry[N](ast.OpMulti, stmts)
}

// parseMultiSeq parses "~(e1, e2, ...)" or "~{e1; e2; ...}".
func (p *Parser[N]) parseMultiSeq() *ast.Node[N] {
	return p.parseBraceOrParenSequence()
}

// parseSwitch parses "switch { case C: E; case C: E; ... default: E; }".
func (p *Parser[N]) parseSwitch() *ast.Node[N] {
	if !p.expect(lexer.KindLCrl, "expected '{' after 'switch'") {
		return nil
	}
	var pairs []*ast.Node[N]
	var def *ast.Node[N]
	sawDefault := false
	for !p.check(lexer.KindRCrl) {
		switch {
		case p.checkWord("case"):
			p.advance()
			cond := p.parseAssign()
			if cond == nil {
				return nil
			}
			if !p.expect(lexer.KindColon, "expected ':' after case condition") {
				return nil
			}
			cons := p.parseAssign()
			if cons == nil {
				return nil
			}
			if !p.expect(lexer.KindSemicolon, "expected ';' terminating case") {
				return nil
			}
			pairs = append(pairs, cond, cons)
		case p.checkWord("default"):
			p.advance()
			if !p.expect(lexer.KindColon, "expected ':' after default") {
				return nil
			}
			def = p.parseAssign()
			if def == nil {
				return nil
			}
			if !p.expect(lexer.KindSemicolon, "expected ';' terminating default") {
				return nil
			}
			sawDefault = true
		default:
			p.fail(cerr.Syntax, p.peek().Lexeme, "expected 'case' or 'default' in switch body")
			return nil
		}
	}
	if !sawDefault {
		p.fail(cerr.Syntax, "", "switch requires a default branch")
		return nil
	}
	if !p.expect(lexer.KindRCrl, "missing closing '}' in switch") {
		return nil
	}
	return ast.NewSwitch[N](pairs, def)
}

// parseMultiSwitch parses "[*] { case C: E; case C: E; }" — no default.
func (p *Parser[N]) parseMultiSwitch() *ast.Node[N] {
	if !p.expect(lexer.KindLCrl, "expected '{' after '[*]'") {
		return nil
	}
	var pairs []*ast.Node[N]
	for !p.check(lexer.KindRCrl) {
		if !p.checkWord("case") {
			p.fail(cerr.Syntax, p.peek().Lexeme, "expected 'case' in [*] body")
			return nil
		}
		p.advance()
		cond := p.parseAssign()
		if cond == nil {
			return nil
		}
		if !p.expect(lexer.KindColon, "expected ':' after case condition") {
			return nil
		}
		cons := p.parseAssign()
		if cons == nil {
			return nil
		}
		if !p.expect(lexer.KindSemicolon, "expected ';' terminating case") {
			return nil
		}
		pairs = append(pairs, cond, cons)
	}
	if !p.expect(lexer.KindRCrl, "missing closing '}' in [*]") {
		return nil
	}
	return ast.NewMultiSwitch[N](pairs)
}

// --- cursor helpers ---

func (p *Parser[N]) peek() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Kind: lexer.KindEOF}
	}
	return p.toks[p.pos]
}

func (p *Parser[N]) advance() lexer.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser[N]) isAtEOF() bool { return p.peek().Kind == lexer.KindEOF }

func (p *Parser[N]) check(k lexer.Kind) bool { return p.peek().Kind == k }

func (p *Parser[N]) checkWord(word string) bool {
	t := p.peek()
	return t.Kind == lexer.KindSymbol && strings.EqualFold(t.Lexeme, word)
}

func (p *Parser[N]) expect(k lexer.Kind, msg string) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	p.fail(cerr.Syntax, p.peek().Lexeme, "%s", msg)
	return false
}

func (p *Parser[N]) fail(kind cerr.Kind, lexeme string, format string, args ...interface{}) {
	p.errs.Add(cerr.New(kind, cerr.Position{Offset: p.peek().Pos}, lexeme, format, args...))
}
