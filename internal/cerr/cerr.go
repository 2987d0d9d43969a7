// Package cerr is the structured error type shared by the lexer, token
// pipeline, parser, and synthesis stages (spec.md §7): {kind, token
// position, diagnostic}, rendered as "Position: NN  Type: [KIND]  Msg: …".
package cerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is one of the error kinds named in spec.md §6/§7.
type Kind string

const (
	Unknown Kind = "unknown"
	Syntax  Kind = "syntax"
	Token   Kind = "token"
	Numeric Kind = "numeric"
	Symtab  Kind = "symtab"
	Lexer   Kind = "lexer"
	Helper  Kind = "helper"
)

// Position locates the offending token in the source text.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Error is one collected diagnostic. Multiple Errors accumulate across a
// single Compile call so a caller can display them all at once
// (spec.md §7's propagation policy).
type Error struct {
	Kind     Kind
	Pos      Position
	Msg      string
	Lexeme   string
	cause    error
}

func (e *Error) Error() string { return e.Render() }

// Render produces the human-readable form spec.md §6 specifies.
func (e *Error) Render() string {
	s := fmt.Sprintf("Position: %d  Type: [%s]  Msg: %s", e.Pos.Offset, string(e.Kind), e.Msg)
	if e.Lexeme != "" {
		s += fmt.Sprintf("  Near: %q", e.Lexeme)
	}
	return s
}

// Cause returns the wrapped underlying error, if any (github.com/pkg/errors
// interop); it is nil for an Error built with New.
func (e *Error) Cause() error { return e.cause }

// Unwrap returns the same cause as Cause, for errors.Unwrap/errors.Is.
func (e *Error) Unwrap() error { return e.cause }

// New constructs a diagnostic with no wrapped cause.
func New(kind Kind, pos Position, lexeme, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Lexeme: lexeme, Msg: fmt.Sprintf(msg, args...)}
}

// Wrap attaches cause to a new diagnostic using pkg/errors so the chain
// remains introspectable via Cause()/errors.Unwrap.
func Wrap(cause error, kind Kind, pos Position, lexeme, msg string, args ...interface{}) *Error {
	return &Error{
		Kind:   kind,
		Pos:    pos,
		Lexeme: lexeme,
		Msg:    fmt.Sprintf(msg, args...),
		cause:  errors.Wrap(cause, "compile"),
	}
}

// List is an accumulator used by the lexer, token pipeline, and parser so
// callers can surface every diagnostic from one Compile call.
type List struct {
	errs []*Error
}

func (l *List) Add(e *Error) { l.errs = append(l.errs, e) }

func (l *List) Count() int { return len(l.errs) }

func (l *List) Get(i int) *Error {
	if i < 0 || i >= len(l.errs) {
		return nil
	}
	return l.errs[i]
}

func (l *List) All() []*Error { return l.errs }

func (l *List) Empty() bool { return len(l.errs) == 0 }
