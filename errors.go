package stacky

import (
	"github.com/jcorbin/stacky/internal/fault"
	"github.com/jcorbin/stacky/internal/panicerr"
)

// Error is the failure of a run: its Kind tells which stage failed, Pos
// locates lex and parse faults in the source, and Op names the operation
// or word that a runtime fault occurred in.
type Error = fault.Error

// FaultKind classifies an Error.
type FaultKind = fault.Kind

// Pos is a 1-based line and column in program source.
type Pos = fault.Pos

const (
	LexFault     = fault.Lex
	ParseFault   = fault.Parse
	RuntimeFault = fault.Runtime
)

// Causes of runtime faults, for use with errors.Is.
var (
	ErrUnderflow     = fault.ErrUnderflow
	ErrTypeMismatch  = fault.ErrTypeMismatch
	ErrDivideByZero  = fault.ErrDivideByZero
	ErrWordNotFound  = fault.ErrWordNotFound
	ErrNotVariable   = fault.ErrNotVariable
	ErrLoopDepth     = fault.ErrLoopDepth
	ErrNoLoop        = fault.ErrNoLoop
	ErrCallDepth     = fault.ErrCallDepth
	ErrInvalidRune   = fault.ErrInvalidRune
	ErrInvalidLength = fault.ErrInvalidLength
)

// KindOf returns the kind of fault err is, or zero if err isn't one.
func KindOf(err error) FaultKind { return fault.KindOf(err) }

// PanicStack returns the goroutine stack of a runtime fault caused by a Go
// panic, or the empty string for any other error.
func PanicStack(err error) string { return panicerr.Stack(err) }

// isolate runs f so that a panic or runtime.Goexit inside it is returned as a
// RuntimeFault rather than taking down the host.
func isolate(name string, f func() error) error {
	err := panicerr.Recover(name, f)
	if panicerr.IsPanic(err) || panicerr.IsExit(err) {
		return &Error{Kind: RuntimeFault, Op: name, Err: err}
	}
	return err
}
