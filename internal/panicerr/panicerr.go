// Package panicerr runs a function on its own goroutine and reports a Go
// panic or runtime.Goexit inside it as an *Abort error.
package panicerr

import (
	"errors"
	"fmt"
	"io"
	"runtime/debug"
)

// Abort is the error for a function that never returned: it either paniced
// with Value or called runtime.Goexit.
type Abort struct {
	Name  string
	Value interface{}
	Trace []byte

	goexit bool
}

func (a *Abort) Error() string {
	prefix := ""
	if a.Name != "" {
		prefix = a.Name + " "
	}
	if a.goexit {
		return prefix + "called runtime.Goexit"
	}
	return fmt.Sprintf("%vpaniced: %v", prefix, a.Value)
}

// Format appends the goroutine stack under %+v.
func (a *Abort) Format(f fmt.State, c rune) {
	io.WriteString(f, a.Error())
	if c == 'v' && f.Flag('+') && len(a.Trace) > 0 {
		fmt.Fprintf(f, "\nPanic stack: %s", a.Trace)
	}
}

// Unwrap returns the panic value when it is an error.
func (a *Abort) Unwrap() error {
	err, _ := a.Value.(error)
	return err
}

// Recover calls f on a new goroutine and waits for it. A normal return
// passes f's error through; a panic or runtime.Goexit becomes an *Abort.
func Recover(name string, f func() error) error {
	result := make(chan error, 1)
	go func() {
		returned := false
		defer func() {
			if returned {
				return
			}
			a := &Abort{Name: name}
			if a.Value = recover(); a.Value != nil {
				a.Trace = debug.Stack()
			} else {
				a.goexit = true
			}
			result <- a
		}()
		err := f()
		returned = true
		result <- err
	}()
	return <-result
}

func asAbort(err error) *Abort {
	var a *Abort
	if errors.As(err, &a) {
		return a
	}
	return nil
}

// IsExit reports whether err records a runtime.Goexit.
func IsExit(err error) bool {
	a := asAbort(err)
	return a != nil && a.goexit
}

// IsPanic reports whether err records a panic.
func IsPanic(err error) bool {
	a := asAbort(err)
	return a != nil && !a.goexit
}

// Stack returns the goroutine stack captured with a panic, if err records
// one.
func Stack(err error) string {
	if a := asAbort(err); a != nil {
		return string(a.Trace)
	}
	return ""
}
