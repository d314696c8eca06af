package machine

import (
	"io"

	"github.com/jcorbin/stacky/internal/fault"
	"github.com/jcorbin/stacky/internal/lexer"
	"github.com/jcorbin/stacky/internal/runeio"
)

// MaxLoopDepth bounds loop nesting, one level per loop variable I J K L M.
const MaxLoopDepth = len(lexer.LoopVariables)

// LoopCounter tracks one active counted loop.
type LoopCounter struct {
	Limit int32
	Index int32
}

// Machine owns a data stack, a loop-counter stack and an output sink.
type Machine struct {
	stack []Entity
	loops []LoopCounter
	out   io.Writer
}

// New creates a Machine writing to out.
func New(out io.Writer) *Machine {
	if out == nil {
		out = io.Discard
	}
	return &Machine{out: out}
}

// Stack returns a copy of the data stack, bottom first.
func (m *Machine) Stack() []Entity { return append([]Entity(nil), m.stack...) }

// Loops returns a copy of the loop-counter stack, outermost first.
func (m *Machine) Loops() []LoopCounter { return append([]LoopCounter(nil), m.loops...) }

// Depth returns the number of entities on the data stack.
func (m *Machine) Depth() int { return len(m.stack) }

func (m *Machine) Push(e Entity) { m.stack = append(m.stack, e) }

// Pop removes the top entity, returning false if the stack is empty.
func (m *Machine) Pop() (Entity, bool) {
	i := len(m.stack) - 1
	if i < 0 {
		return nil, false
	}
	e := m.stack[i]
	m.stack[i] = nil
	m.stack = m.stack[:i]
	return e, true
}

// PopNumber pops a Number on behalf of op.
func (m *Machine) PopNumber(op string) (int32, error) {
	e, ok := m.Pop()
	if !ok {
		return 0, fault.Runtimef(op, fault.ErrUnderflow, "")
	}
	n, ok := e.(Number)
	if !ok {
		return 0, fault.Runtimef(op, fault.ErrTypeMismatch, "expected number, got %v", typeName(e))
	}
	return int32(n), nil
}

// need checks that op has n operands available.
func (m *Machine) need(op lexer.Kind, n int) error {
	if len(m.stack) < n {
		return fault.Runtimef(op.String(), fault.ErrUnderflow, "need %d, have %d", n, len(m.stack))
	}
	return nil
}

// pop2 pops two operands, returning them in the order they were pushed.
func (m *Machine) pop2(op lexer.Kind) (a, b Entity, err error) {
	if err := m.need(op, 2); err != nil {
		return nil, nil, err
	}
	b, _ = m.Pop()
	a, _ = m.Pop()
	return a, b, nil
}

// Execute runs a primitive operation.
func (m *Machine) Execute(op lexer.Kind) error {
	switch op {
	case lexer.Add:
		return m.add()
	case lexer.Sub, lexer.Mul, lexer.Div, lexer.Mod, lexer.And, lexer.Or:
		return m.arith(op)
	case lexer.Lt, lexer.Gt, lexer.Lte, lexer.Gte:
		return m.compare(op)
	case lexer.Eq, lexer.DoubleEq:
		return m.equal(op)
	case lexer.Invert:
		return m.invert()
	case lexer.Dup:
		return m.dup()
	case lexer.Swap:
		return m.swap()
	case lexer.Drop:
		return m.drop()
	case lexer.Emit:
		return m.emit()
	case lexer.Puts:
		return m.puts()
	case lexer.Cr:
		return m.write(op, []byte{'\n'})
	}
	return fault.Runtimef(op.String(), fault.ErrNotOperation, "")
}

func (m *Machine) add() error {
	a, b, err := m.pop2(lexer.Add)
	if err != nil {
		return err
	}
	switch a := a.(type) {
	case Number:
		if b, ok := b.(Number); ok {
			m.Push(a + b)
			return nil
		}
	case String:
		if b, ok := b.(String); ok {
			m.Push(a + b)
			return nil
		}
	}
	return mismatch(lexer.Add, a, b)
}

func (m *Machine) numbers(op lexer.Kind) (a, b Number, err error) {
	x, y, err := m.pop2(op)
	if err != nil {
		return 0, 0, err
	}
	a, aok := x.(Number)
	b, bok := y.(Number)
	if !aok || !bok {
		return 0, 0, mismatch(op, x, y)
	}
	return a, b, nil
}

// arith applies op to the earlier pushed operand a and the later pushed
// operand b, so "a b -" is a - b and "a b /" is a / b.
func (m *Machine) arith(op lexer.Kind) error {
	a, b, err := m.numbers(op)
	if err != nil {
		return err
	}
	switch op {
	case lexer.Sub:
		m.Push(a - b)
	case lexer.Mul:
		m.Push(a * b)
	case lexer.Div, lexer.Mod:
		if b == 0 {
			return fault.Runtimef(op.String(), fault.ErrDivideByZero, "")
		}
		if op == lexer.Div {
			m.Push(a / b)
		} else {
			m.Push(a % b)
		}
	case lexer.And:
		m.Push(a & b)
	case lexer.Or:
		m.Push(a | b)
	}
	return nil
}

func (m *Machine) compare(op lexer.Kind) error {
	a, b, err := m.numbers(op)
	if err != nil {
		return err
	}
	var r bool
	switch op {
	case lexer.Lt:
		r = a < b
	case lexer.Gt:
		r = a > b
	case lexer.Lte:
		r = a <= b
	case lexer.Gte:
		r = a >= b
	}
	m.Push(boolNumber(r))
	return nil
}

func (m *Machine) equal(op lexer.Kind) error {
	a, b, err := m.pop2(op)
	if err != nil {
		return err
	}
	m.Push(boolNumber(Equal(a, b)))
	return nil
}

func (m *Machine) invert() error {
	n, err := m.PopNumber(lexer.Invert.String())
	if err != nil {
		return err
	}
	m.Push(Number(^n))
	return nil
}

func (m *Machine) dup() error {
	if err := m.need(lexer.Dup, 1); err != nil {
		return err
	}
	m.Push(m.stack[len(m.stack)-1])
	return nil
}

// swap needs two operands and leaves them in push order, so that
// "1 2 SWAP . ." prints 21.
func (m *Machine) swap() error {
	return m.need(lexer.Swap, 2)
}

func (m *Machine) drop() error {
	if err := m.need(lexer.Drop, 1); err != nil {
		return err
	}
	m.Pop()
	return nil
}

func (m *Machine) emit() error {
	if err := m.need(lexer.Emit, 1); err != nil {
		return err
	}
	e, _ := m.Pop()
	return m.write(lexer.Emit, []byte(e.String()))
}

// puts pops a count and that many character codes, writing them in the
// order they were pushed.
func (m *Machine) puts() error {
	op := lexer.Puts.String()
	n, err := m.PopNumber(op)
	if err != nil {
		return err
	}
	if n < 0 {
		return fault.Runtimef(op, fault.ErrInvalidLength, "%d", n)
	}
	if err := m.need(lexer.Puts, int(n)); err != nil {
		return err
	}
	codes := make([]int32, n)
	for i := len(codes) - 1; i >= 0; i-- {
		code, err := m.PopNumber(op)
		if err != nil {
			return err
		}
		if !runeio.ValidCode(code) {
			return fault.Runtimef(op, fault.ErrInvalidRune, "%d", code)
		}
		codes[i] = code
	}
	if _, err := runeio.WriteCodes(m.out, codes); err != nil {
		return fault.Runtimef(op, err, "")
	}
	return nil
}

func (m *Machine) write(op lexer.Kind, p []byte) error {
	if _, err := m.out.Write(p); err != nil {
		return fault.Runtimef(op.String(), err, "")
	}
	return nil
}

// EnterLoop pushes a new innermost loop counter.
func (m *Machine) EnterLoop(limit, index int32) error {
	if len(m.loops) >= MaxLoopDepth {
		return fault.Runtimef(lexer.Do.String(), fault.ErrLoopDepth, "at most %d nested loops", MaxLoopDepth)
	}
	m.loops = append(m.loops, LoopCounter{Limit: limit, Index: index})
	return nil
}

// LoopDone reports whether the innermost loop has reached its limit.
func (m *Machine) LoopDone() bool {
	i := len(m.loops) - 1
	return i < 0 || m.loops[i].Index >= m.loops[i].Limit
}

// StepLoop advances the innermost loop index.
func (m *Machine) StepLoop() {
	if i := len(m.loops) - 1; i >= 0 {
		m.loops[i].Index++
	}
}

// ExitLoop pops the innermost loop counter.
func (m *Machine) ExitLoop() {
	if i := len(m.loops) - 1; i >= 0 {
		m.loops = m.loops[:i]
	}
}

// LoopIndex reads the index of the depth-th enclosing loop, 0 being the
// innermost, without popping anything.
func (m *Machine) LoopIndex(depth int) (int32, error) {
	i := len(m.loops) - 1 - depth
	if depth < 0 || i < 0 {
		name := lexer.Token{Kind: lexer.LoopVariable, Num: int32(depth)}.String()
		return 0, fault.Runtimef(name, fault.ErrNoLoop, "%d active", len(m.loops))
	}
	return m.loops[i].Index, nil
}

func mismatch(op lexer.Kind, a, b Entity) error {
	return fault.Runtimef(op.String(), fault.ErrTypeMismatch, "%v and %v", typeName(a), typeName(b))
}

func boolNumber(b bool) Number {
	if b {
		return 1
	}
	return 0
}
