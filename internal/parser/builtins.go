package parser

import "github.com/exprtk-go/exprtk/internal/ast"

// arityClass groups built-ins by how the parser consumes their argument
// list, mirroring spec.md §4.5/§4.6's named-function catalog.
type arityClass int

const (
	arityUnary arityClass = iota
	arityBinary
	arityTrinary
	arityVariadic
)

type builtin struct {
	op    ast.Operator
	class arityClass
}

// builtins is the reserved-word/base-function table spec.md §4.6 calls
// out in the primary-expression dispatch ("reserved operator ... base
// functions like abs/sin/...").
var builtins = map[string]builtin{
	"abs":        {ast.OpAbs, arityUnary},
	"sin":        {ast.OpSin, arityUnary},
	"cos":        {ast.OpCos, arityUnary},
	"tan":        {ast.OpTan, arityUnary},
	"asin":       {ast.OpAsin, arityUnary},
	"acos":       {ast.OpAcos, arityUnary},
	"atan":       {ast.OpAtan, arityUnary},
	"sinh":       {ast.OpSinh, arityUnary},
	"cosh":       {ast.OpCosh, arityUnary},
	"tanh":       {ast.OpTanh, arityUnary},
	"log":        {ast.OpLog, arityUnary},
	"log2":       {ast.OpLog2, arityUnary},
	"log10":      {ast.OpLog10, arityUnary},
	"log1p":      {ast.OpLog1p, arityUnary},
	"exp":        {ast.OpExp, arityUnary},
	"expm1":      {ast.OpExpm1, arityUnary},
	"sqrt":       {ast.OpSqrt, arityUnary},
	"erf":        {ast.OpErf, arityUnary},
	"erfc":       {ast.OpErfc, arityUnary},
	"frac":       {ast.OpFrac, arityUnary},
	"trunc":      {ast.OpTrunc, arityUnary},
	"round":      {ast.OpRound, arityUnary},
	"ceil":       {ast.OpCeil, arityUnary},
	"floor":      {ast.OpFloor, arityUnary},
	"sgn":        {ast.OpSgn, arityUnary},
	"d2r":        {ast.OpD2R, arityUnary},
	"r2d":        {ast.OpR2D, arityUnary},
	"notl":       {ast.OpNot, arityUnary},
	"is_integer": {ast.OpIsInteger, arityUnary},

	"root":   {ast.OpRoot, arityBinary},
	"logn":   {ast.OpLogn, arityBinary},
	"atan2":  {ast.OpAtan2, arityBinary},
	"hypot":  {ast.OpHypot, arityBinary},
	"roundn": {ast.OpRoundn, arityBinary},
	"shr":    {ast.OpShr, arityBinary},
	"shl":    {ast.OpShl, arityBinary},

	"clamp":   {ast.OpClamp, arityTrinary},
	"iclamp":  {ast.OpIClamp, arityTrinary},
	"inrange": {ast.OpInRange, arityTrinary},

	"sum":   {ast.OpSum, arityVariadic},
	"mul":   {ast.OpMulAgg, arityVariadic},
	"avg":   {ast.OpAvg, arityVariadic},
	"min":   {ast.OpMin, arityVariadic},
	"max":   {ast.OpMax, arityVariadic},
	"mand":  {ast.OpMand, arityVariadic},
	"mor":   {ast.OpMor, arityVariadic},
	"multi": {ast.OpMulti, arityVariadic},
}

// keywords are the reserved control-structure words, never usable as a
// symbol name (spec.md §4.6/§4.2's reserved-name filter).
var keywords = map[string]bool{
	"if": true, "while": true, "repeat": true, "until": true,
	"switch": true, "case": true, "default": true, "null": true,
	"and": true, "or": true, "nand": true, "nor": true, "xor": true, "xnor": true,
	"not": true, "in": true, "like": true, "ilike": true,
	"true": true, "false": true,
}
