// Package fault implements the error taxonomy shared by the lexer, the
// parser and the runtime. Every fault aborts the run that raised it.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a fault by the stage that detected it.
type Kind uint8

const (
	_ Kind = iota
	Lex
	Parse
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "lex"
	case Parse:
		return "parse"
	case Runtime:
		return "runtime"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Pos is a 1-based line and column in program text.
// The zero value means no position is known.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Error is a fault of some Kind, optionally attributed to a source position
// and an operation name.
type Error struct {
	Kind Kind
	Pos  Pos
	Op   string
	Err  error
}

func (err *Error) Error() string {
	mess := err.Kind.String() + " error"
	if err.Pos.IsValid() {
		mess += " at " + err.Pos.String()
	}
	if err.Op != "" {
		mess += " in " + err.Op
	}
	if err.Err != nil {
		mess += ": " + err.Err.Error()
	}
	return mess
}

func (err *Error) Unwrap() error { return err.Err }

// Causes for runtime faults; match them with errors.Is.
var (
	ErrUnderflow     = errors.New("stack underflow")
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrDivideByZero  = errors.New("division by zero")
	ErrWordNotFound  = errors.New("word not found")
	ErrNotVariable   = errors.New("not a variable")
	ErrLoopDepth     = errors.New("loop nesting too deep")
	ErrNoLoop        = errors.New("no enclosing loop")
	ErrCallDepth     = errors.New("word expansion too deep")
	ErrInvalidRune   = errors.New("invalid character code")
	ErrInvalidLength = errors.New("invalid length")
	ErrNotOperation  = errors.New("not an operation")
)

// Lexf builds a lex fault at pos.
func Lexf(pos Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: Lex, Pos: pos, Err: fmt.Errorf(format, args...)}
}

// Parsef builds a parse fault at pos.
func Parsef(pos Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: Parse, Pos: pos, Err: fmt.Errorf(format, args...)}
}

// Runtimef wraps cause as a runtime fault raised by op.
func Runtimef(op string, cause error, format string, args ...interface{}) *Error {
	err := cause
	if format != "" {
		err = fmt.Errorf("%w: "+format, append([]interface{}{cause}, args...)...)
	}
	return &Error{Kind: Runtime, Op: op, Err: err}
}

// KindOf returns the Kind of the first fault in err's chain, or 0 if err
// carries none.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
