package machine

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/stacky/internal/ast"
	"github.com/jcorbin/stacky/internal/fault"
	"github.com/jcorbin/stacky/internal/lexer"
)

type machineTest struct {
	name    string
	stack   []Entity
	ops     []lexer.Kind
	want    []Entity
	output  string
	wantErr error
	errStr  string
}

func (mt machineTest) run(t *testing.T) {
	var out strings.Builder
	m := New(&out)
	for _, e := range mt.stack {
		m.Push(e)
	}
	var err error
	for _, op := range mt.ops {
		if err = m.Execute(op); err != nil {
			break
		}
	}
	if mt.wantErr != nil {
		assert.True(t, errors.Is(err, mt.wantErr), "expected error: %v\ngot: %+v", mt.wantErr, err)
		assert.Equal(t, fault.Runtime, fault.KindOf(err))
		if mt.errStr != "" {
			assert.EqualError(t, err, mt.errStr)
		}
	} else {
		require.NoError(t, err)
		assert.Equal(t, mt.want, m.Stack(), "expected stack")
	}
	assert.Equal(t, mt.output, out.String(), "expected output")
}

func nums(ns ...int32) []Entity {
	es := make([]Entity, len(ns))
	for i, n := range ns {
		es[i] = Number(n)
	}
	return es
}

func codes(s string) []Entity {
	var es []Entity
	for _, r := range s {
		es = append(es, Number(r))
	}
	return append(es, Number(len(es)))
}

func TestExecute(t *testing.T) {
	for _, mt := range []machineTest{
		{name: "add", stack: nums(1, 2), ops: []lexer.Kind{lexer.Add}, want: nums(3)},
		{name: "add wraps", stack: nums(2147483647, 1), ops: []lexer.Kind{lexer.Add}, want: nums(-2147483648)},
		{name: "concat", stack: []Entity{String("ab"), String("cd")}, ops: []lexer.Kind{lexer.Add}, want: []Entity{String("abcd")}},
		{name: "sub", stack: nums(1, 2), ops: []lexer.Kind{lexer.Sub}, want: nums(-1)},
		{name: "mul", stack: nums(3, -2), ops: []lexer.Kind{lexer.Mul}, want: nums(-6)},
		{name: "div", stack: nums(4, 2), ops: []lexer.Kind{lexer.Div}, want: nums(2)},
		{name: "div truncates", stack: nums(3, 2), ops: []lexer.Kind{lexer.Div}, want: nums(1)},
		{name: "div truncates toward zero", stack: nums(-7, 2), ops: []lexer.Kind{lexer.Div}, want: nums(-3)},
		{name: "mod", stack: nums(7, 3), ops: []lexer.Kind{lexer.Mod}, want: nums(1)},
		{name: "mod sign follows dividend", stack: nums(-7, 3), ops: []lexer.Kind{lexer.Mod}, want: nums(-1)},
		{name: "and or", stack: nums(12, 10, 1), ops: []lexer.Kind{lexer.Or, lexer.And}, want: nums(8)},
		{name: "invert", stack: nums(0), ops: []lexer.Kind{lexer.Invert}, want: nums(-1)},
		{name: "lt", stack: nums(1, 2), ops: []lexer.Kind{lexer.Lt}, want: nums(1)},
		{name: "lt false", stack: nums(2, 1), ops: []lexer.Kind{lexer.Lt}, want: nums(0)},
		{name: "comparisons", stack: nums(1, 2), ops: []lexer.Kind{lexer.Gt}, want: nums(0)},
		{name: "lte reflexive", stack: nums(2, 2), ops: []lexer.Kind{lexer.Lte}, want: nums(1)},
		{name: "gte reflexive", stack: nums(2, 2), ops: []lexer.Kind{lexer.Gte}, want: nums(1)},
		{name: "gte false", stack: nums(1, 2), ops: []lexer.Kind{lexer.Gte}, want: nums(0)},
		{name: "eq", stack: nums(1, 1), ops: []lexer.Kind{lexer.Eq}, want: nums(1)},
		{name: "double eq", stack: nums(1, 2), ops: []lexer.Kind{lexer.DoubleEq}, want: nums(0)},
		{name: "eq strings", stack: []Entity{String("a"), String("a")}, ops: []lexer.Kind{lexer.Eq}, want: nums(1)},
		{name: "eq number pointer", stack: []Entity{Number(3), Pointer(3)}, ops: []lexer.Kind{lexer.Eq}, want: nums(1)},
		{name: "eq pointer number", stack: []Entity{Pointer(3), Number(4)}, ops: []lexer.Kind{lexer.Eq}, want: nums(0)},
		{name: "eq mixed is unequal", stack: []Entity{String("1"), Number(1)}, ops: []lexer.Kind{lexer.Eq}, want: nums(0)},
		{name: "eq function is unequal", stack: []Entity{Function{Name: "f"}, Function{Name: "f"}}, ops: []lexer.Kind{lexer.Eq}, want: nums(0)},
		{name: "dup", stack: nums(2), ops: []lexer.Kind{lexer.Dup}, want: nums(2, 2)},
		{name: "swap", stack: nums(1, 2), ops: []lexer.Kind{lexer.Swap}, want: nums(1, 2)},
		{name: "swap leaves rest", stack: nums(7, 1, 2), ops: []lexer.Kind{lexer.Swap, lexer.Drop}, want: nums(7, 1)},
		{name: "drop", stack: nums(1, 2), ops: []lexer.Kind{lexer.Drop}, want: nums(1)},

		{name: "emit number", stack: nums(-12), ops: []lexer.Kind{lexer.Emit}, output: "-12"},
		{name: "emit string", stack: []Entity{String("hi")}, ops: []lexer.Kind{lexer.Emit}, output: "hi"},
		{name: "emit pointer", stack: []Entity{Pointer(255)}, ops: []lexer.Kind{lexer.Emit}, output: "#ff"},
		{name: "emit function", stack: []Entity{Function{Name: "sq", Body: []ast.Node{&ast.Operation{Op: lexer.Dup}}}}, ops: []lexer.Kind{lexer.Emit}, output: "FUNC: sq"},
		{name: "emit order", stack: nums(1, 2), ops: []lexer.Kind{lexer.Swap, lexer.Emit, lexer.Emit}, output: "21"},
		{name: "puts", stack: codes("TRUE"), ops: []lexer.Kind{lexer.Puts}, output: "TRUE"},
		{name: "puts leaves rest", stack: append(nums(7), codes("ok")...), ops: []lexer.Kind{lexer.Puts}, want: nums(7), output: "ok"},
		{name: "puts unicode", stack: codes("né✓"), ops: []lexer.Kind{lexer.Puts}, output: "né✓"},
		{name: "puts empty", stack: codes(""), ops: []lexer.Kind{lexer.Puts}, output: ""},
		{name: "cr", ops: []lexer.Kind{lexer.Cr}, output: "\n"},

		{name: "underflow add", stack: nums(1), ops: []lexer.Kind{lexer.Add}, wantErr: fault.ErrUnderflow,
			errStr: "runtime error in +: stack underflow: need 2, have 1"},
		{name: "underflow emit", ops: []lexer.Kind{lexer.Emit}, wantErr: fault.ErrUnderflow},
		{name: "underflow dup", ops: []lexer.Kind{lexer.Dup}, wantErr: fault.ErrUnderflow},
		{name: "underflow swap", stack: nums(1), ops: []lexer.Kind{lexer.Swap}, wantErr: fault.ErrUnderflow},
		{name: "underflow drop", ops: []lexer.Kind{lexer.Drop}, wantErr: fault.ErrUnderflow},
		{name: "underflow eq", stack: nums(1), ops: []lexer.Kind{lexer.Eq}, wantErr: fault.ErrUnderflow},
		{name: "underflow puts count", ops: []lexer.Kind{lexer.Puts}, wantErr: fault.ErrUnderflow},
		{name: "underflow puts codes", stack: nums(65, 2), ops: []lexer.Kind{lexer.Puts}, wantErr: fault.ErrUnderflow,
			errStr: "runtime error in PUTS: stack underflow: need 2, have 1"},
		{name: "div by zero", stack: nums(1, 0), ops: []lexer.Kind{lexer.Div}, wantErr: fault.ErrDivideByZero,
			errStr: "runtime error in /: division by zero"},
		{name: "mod by zero", stack: nums(1, 0), ops: []lexer.Kind{lexer.Mod}, wantErr: fault.ErrDivideByZero},
		{name: "sub strings", stack: []Entity{String("a"), String("b")}, ops: []lexer.Kind{lexer.Sub}, wantErr: fault.ErrTypeMismatch,
			errStr: "runtime error in -: type mismatch: string and string"},
		{name: "add mixed", stack: []Entity{String("a"), Number(1)}, ops: []lexer.Kind{lexer.Add}, wantErr: fault.ErrTypeMismatch},
		{name: "compare pointer", stack: []Entity{Pointer(1), Number(1)}, ops: []lexer.Kind{lexer.Lt}, wantErr: fault.ErrTypeMismatch},
		{name: "puts string count", stack: []Entity{String("x")}, ops: []lexer.Kind{lexer.Puts}, wantErr: fault.ErrTypeMismatch,
			errStr: "runtime error in PUTS: type mismatch: expected number, got string"},
		{name: "puts negative count", stack: nums(-1), ops: []lexer.Kind{lexer.Puts}, wantErr: fault.ErrInvalidLength},
		{name: "puts invalid code", stack: nums(-5, 1), ops: []lexer.Kind{lexer.Puts}, wantErr: fault.ErrInvalidRune},
		{name: "not an operation", ops: []lexer.Kind{lexer.Colon}, wantErr: fault.ErrNotOperation},
	} {
		t.Run(mt.name, mt.run)
	}
}

func TestLoopCounters(t *testing.T) {
	m := New(nil)
	require.NoError(t, m.EnterLoop(3, 1))
	require.NoError(t, m.EnterLoop(10, 7))

	idx, err := m.LoopIndex(0)
	require.NoError(t, err)
	assert.Equal(t, int32(7), idx)
	idx, err = m.LoopIndex(1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), idx)

	_, err = m.LoopIndex(2)
	assert.True(t, errors.Is(err, fault.ErrNoLoop))
	assert.EqualError(t, err, "runtime error in K: no enclosing loop: 2 active")

	for i := 0; i < 3; i++ {
		assert.False(t, m.LoopDone())
		m.StepLoop()
	}
	assert.True(t, m.LoopDone())
	m.ExitLoop()
	assert.Equal(t, []LoopCounter{{Limit: 3, Index: 1}}, m.Loops())
	m.ExitLoop()
	assert.True(t, m.LoopDone(), "no loops is done")
	assert.Empty(t, m.Loops())
}

func TestLoopDepthLimit(t *testing.T) {
	m := New(nil)
	for i := 0; i < MaxLoopDepth; i++ {
		require.NoError(t, m.EnterLoop(1, 0))
	}
	err := m.EnterLoop(1, 0)
	assert.True(t, errors.Is(err, fault.ErrLoopDepth))
	assert.Len(t, m.Loops(), 5)
}

func TestPopEmpty(t *testing.T) {
	m := New(nil)
	e, ok := m.Pop()
	assert.False(t, ok)
	assert.Nil(t, e)
	_, err := m.PopNumber("IF")
	assert.EqualError(t, err, "runtime error in IF: stack underflow")
}

func TestRepr(t *testing.T) {
	assert.Equal(t, `"a b"`, Repr(String("a b")))
	assert.Equal(t, "5", Repr(Number(5)))
	assert.Equal(t, "#10", Repr(Pointer(16)))
	assert.Equal(t, "<nil>", Repr(nil))
}
