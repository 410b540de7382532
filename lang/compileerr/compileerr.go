// Package compileerr defines the fatal error kinds a Cimple compile run can
// produce. All of them abort the run immediately: there is no error
// recovery anywhere in the pipeline (spec.md §7).
package compileerr

import (
	"fmt"

	"github.com/Triantafullenia-Doumani/cimple-compiler-2025/lang/token"
)

// Kind distinguishes the stage that raised the error.
type Kind uint8

const (
	// Lex is an unknown character or an unterminated operator lexeme.
	Lex Kind = iota
	// Syntax is an unexpected token family or lexeme while parsing.
	Syntax
	// Semantic is a duplicate declaration inside one scope.
	Semantic
	// IO is a source file that couldn't be read or an output path that
	// couldn't be written.
	IO
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "lex error"
	case Syntax:
		return "syntax error"
	case Semantic:
		return "semantic error"
	case IO:
		return "io error"
	default:
		return "error"
	}
}

// Error is the single error type used throughout the compiler. It carries
// the position of the offending token (when known) and the kind of failure.
type Error struct {
	Kind Kind
	Pos  token.Position
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos.Line == 0 && e.Pos.Filename == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

// Is reports whether target is one of the ErrLex/ErrSyntax/ErrSemantic/ErrIO
// sentinels and shares e's Kind, so errors.Is(err, compileerr.ErrSyntax)
// works regardless of the offending position or message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// ErrLex, ErrSyntax, ErrSemantic, and ErrIO are sentinels for use with
// errors.Is — one per Kind, matching any *Error of that Kind regardless of
// position or message.
var (
	ErrLex      = &Error{Kind: Lex}
	ErrSyntax   = &Error{Kind: Syntax}
	ErrSemantic = &Error{Kind: Semantic}
	ErrIO       = &Error{Kind: IO}
)

// New constructs an *Error. Use Lexf/Syntaxf/Semanticf/IOf for the common
// cases.
func New(kind Kind, pos token.Position, msg string) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: msg}
}

// Lexf builds a Lex *Error with a formatted message.
func Lexf(pos token.Position, format string, args ...any) error {
	return New(Lex, pos, fmt.Sprintf(format, args...))
}

// Syntaxf builds a Syntax *Error with a formatted message.
func Syntaxf(pos token.Position, format string, args ...any) error {
	return New(Syntax, pos, fmt.Sprintf(format, args...))
}

// Semanticf builds a Semantic *Error with a formatted message.
func Semanticf(pos token.Position, format string, args ...any) error {
	return New(Semantic, pos, fmt.Sprintf(format, args...))
}

// IOf builds an IO *Error with a formatted message, for an error that has no
// associated source position.
func IOf(format string, args ...any) error {
	return New(IO, token.Position{}, fmt.Sprintf(format, args...))
}
