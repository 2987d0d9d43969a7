// Package dump renders a compiled expression tree as an indented,
// human-readable listing, for debugging and test assertions.
package dump

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/exprtk-go/exprtk/internal/ast"
)

var kindNames = map[ast.Kind]string{
	ast.KindNull:               "null",
	ast.KindConstant:           "const",
	ast.KindVariable:           "var",
	ast.KindStringConst:        "str-const",
	ast.KindStringVar:          "str-var",
	ast.KindStringRange:        "str-range",
	ast.KindConstStringRange:   "str-const-range",
	ast.KindUnary:              "unary",
	ast.KindBinary:             "binary",
	ast.KindNAry:               "nary",
	ast.KindConditional:        "if",
	ast.KindWhile:              "while",
	ast.KindRepeatUntil:        "repeat-until",
	ast.KindSwitch:             "switch",
	ast.KindMultiSwitch:        "multi-switch",
	ast.KindFunctionCall:       "call",
	ast.KindVarargFunctionCall: "vararg-call",
	ast.KindAssignment:         "assign",
	ast.KindShortCircuitAnd:    "sc-and",
	ast.KindShortCircuitOr:     "sc-or",
	ast.KindSpecialFunc3:       "sf3",
	ast.KindSpecialFunc4:       "sf4",
	ast.KindIPow:               "ipow",
}

// Dumper accumulates a tree dump, mirroring the teacher's formatter's
// indent-accumulating strings.Builder idiom.
type Dumper[N ast.Number] struct {
	indent    int
	indentStr string
	output    strings.Builder
}

func New[N ast.Number]() *Dumper[N] {
	return &Dumper[N]{indentStr: "  "}
}

// Tree renders n and its descendants, one line per node.
func Tree[N ast.Number](n *ast.Node[N]) string {
	d := New[N]()
	d.write(n)
	return d.output.String()
}

func (d *Dumper[N]) writeIndent() {
	for i := 0; i < d.indent; i++ {
		d.output.WriteString(d.indentStr)
	}
}

func (d *Dumper[N]) write(n *ast.Node[N]) {
	if n == nil {
		d.writeIndent()
		d.output.WriteString("<nil>\n")
		return
	}

	d.writeIndent()
	d.output.WriteString(kindNames[n.Kind])

	switch n.Kind {
	case ast.KindConstant:
		d.output.WriteString(" ")
		d.output.WriteString(fmt.Sprintf("%v", n.Const))
	case ast.KindVariable:
		d.output.WriteString(" ")
		d.output.WriteString(fmt.Sprintf("%v", *n.VarRef))
		d.output.WriteString(" (borrowed)")
	case ast.KindStringConst:
		d.output.WriteString(" ")
		d.output.WriteString(strconv.Quote(n.StrConst))
	case ast.KindStringVar:
		d.output.WriteString(" ")
		d.output.WriteString(strconv.Quote(*n.StrRef))
		d.output.WriteString(" (borrowed)")
	case ast.KindUnary, ast.KindBinary, ast.KindNAry:
		d.output.WriteString(" ")
		d.output.WriteString(n.Op.String())
		if n.ShapeHint != "" {
			d.output.WriteString(" shape=")
			d.output.WriteString(n.ShapeHint)
		}
	case ast.KindIPow:
		d.output.WriteString(fmt.Sprintf(" exp=%d inverse=%v", n.Exp, n.Inverse))
	case ast.KindSpecialFunc3, ast.KindSpecialFunc4:
		d.output.WriteString(fmt.Sprintf(" tag=%02d", n.SFTag))
	case ast.KindFunctionCall, ast.KindVarargFunctionCall:
		d.output.WriteString(fmt.Sprintf(" argc=%d", len(n.Args)))
	}
	d.output.WriteString("\n")

	d.indent++
	for _, c := range n.Children {
		d.write(c)
	}
	for _, a := range n.Args {
		d.write(a)
	}
	d.indent--
}
