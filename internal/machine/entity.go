// Package machine implements the stack machine: the data stack of Entity
// values, the loop-counter stack and the primitive operations.
package machine

import (
	"fmt"
	"strconv"

	"github.com/jcorbin/stacky/internal/ast"
)

// Entity is a value held on the data stack. Its String method gives the
// text that Emit writes.
type Entity interface {
	String() string
	entity()
}

// Number is a 32-bit integer.
type Number int32

// String is a text value.
type String string

// Pointer is an address into the data stack.
type Pointer uint32

// Function is a captured word body; it prints but can't be called.
type Function struct {
	Name string
	Body []ast.Node
}

func (Number) entity()            {}
func (String) entity()            {}
func (Pointer) entity()           {}
func (Function) entity()          {}
func (n Number) String() string   { return strconv.Itoa(int(n)) }
func (s String) String() string   { return string(s) }
func (p Pointer) String() string  { return fmt.Sprintf("#%x", uint32(p)) }
func (f Function) String() string { return "FUNC: " + f.Name }

// Repr formats an entity unambiguously for dumps and traces: strings are
// quoted, everything else prints as Emit would.
func Repr(e Entity) string {
	if s, ok := e.(String); ok {
		return strconv.Quote(string(s))
	}
	if e == nil {
		return "<nil>"
	}
	return e.String()
}

// Equal compares two entities: numbers and pointers compare numerically
// with each other, strings compare with strings, and every other pairing is
// unequal.
func Equal(a, b Entity) bool {
	switch a := a.(type) {
	case Number:
		if n, ok := numeric(b); ok {
			return int64(a) == n
		}
	case Pointer:
		if n, ok := numeric(b); ok {
			return int64(a) == n
		}
	case String:
		if b, ok := b.(String); ok {
			return a == b
		}
	}
	return false
}

func numeric(e Entity) (int64, bool) {
	switch e := e.(type) {
	case Number:
		return int64(e), true
	case Pointer:
		return int64(e), true
	}
	return 0, false
}

func typeName(e Entity) string {
	switch e.(type) {
	case Number:
		return "number"
	case String:
		return "string"
	case Pointer:
		return "pointer"
	case Function:
		return "function"
	}
	return fmt.Sprintf("%T", e)
}
