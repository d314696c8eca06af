// Package interp walks a parse tree, driving a stack machine and resolving
// words and variables through a scope chain.
package interp

import (
	"io"
	"strings"

	"github.com/jcorbin/stacky/internal/ast"
	"github.com/jcorbin/stacky/internal/env"
	"github.com/jcorbin/stacky/internal/fault"
	"github.com/jcorbin/stacky/internal/lexer"
	"github.com/jcorbin/stacky/internal/machine"
)

const (
	// DefaultMaxCallDepth bounds nested word expansion.
	DefaultMaxCallDepth = 10000

	// MaxCallDepthLimit caps any configured MaxCallDepth, keeping runaway
	// recursion well short of exhausting the goroutine stack.
	MaxCallDepthLimit = 100000
)

// Interpreter runs parse trees against one machine and one root scope;
// state persists across calls to Run.
type Interpreter struct {
	m     *machine.Machine
	scope *env.Context

	// Logf, if set, receives a trace line for every executed node.
	Logf func(mess string, args ...interface{})

	// MaxCallDepth bounds nested word expansion; 0 means the default, and
	// anything above MaxCallDepthLimit means MaxCallDepthLimit.
	MaxCallDepth int

	depth int
}

// New creates an Interpreter writing program output to out.
func New(out io.Writer) *Interpreter {
	return &Interpreter{
		m:     machine.New(out),
		scope: env.New(nil),
	}
}

// Machine returns the stack machine, for inspection.
func (in *Interpreter) Machine() *machine.Machine { return in.m }

// Scope returns the root scope, for inspection.
func (in *Interpreter) Scope() *env.Context { return in.scope }

// Run interprets node, stopping at the first fault.
func (in *Interpreter) Run(node ast.Node) error {
	err := node.Accept(in)
	if err != nil {
		in.logf("halt error: %v", err)
	}
	return err
}

func (in *Interpreter) logf(mess string, args ...interface{}) {
	if in.Logf != nil {
		in.Logf(mess, args...)
	}
}

func (in *Interpreter) trace(node ast.Node) {
	if in.Logf == nil {
		return
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range in.m.Stack() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(machine.Repr(e))
	}
	sb.WriteByte(']')
	in.Logf("exec %v -- s:%v l:%v", node, sb.String(), in.m.Loops())
}

func (in *Interpreter) runAll(nodes []ast.Node) error {
	for _, node := range nodes {
		if err := node.Accept(in); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) VisitNumber(n *ast.Number) error {
	in.trace(n)
	in.m.Push(machine.Number(n.Value))
	return nil
}

// VisitStringLiteral pushes each character code, first character first,
// followed by the character count, ready for PUTS.
func (in *Interpreter) VisitStringLiteral(n *ast.StringLiteral) error {
	in.trace(n)
	count := 0
	for _, r := range n.Text {
		in.m.Push(machine.Number(r))
		count++
	}
	in.m.Push(machine.Number(count))
	return nil
}

func (in *Interpreter) VisitOperation(n *ast.Operation) error {
	in.trace(n)
	return in.m.Execute(n.Op)
}

func (in *Interpreter) VisitExpressions(n *ast.Expressions) error {
	return in.runAll(n.Nodes)
}

// VisitFunctionCall expands a word in the current scope, or pushes the value
// of a variable called by name.
func (in *Interpreter) VisitFunctionCall(n *ast.FunctionCall) error {
	in.trace(n)
	b, err := in.scope.Get(n.Name)
	if err != nil {
		return err
	}
	switch b := b.(type) {
	case env.Variable:
		in.m.Push(b.Value)
		return nil
	case env.Word:
		limit := in.callDepthLimit()
		if in.depth >= limit {
			return fault.Runtimef(n.Name, fault.ErrCallDepth, "more than %d nested calls", limit)
		}
		in.depth++
		defer func() { in.depth-- }()
		return in.runAll(b.Body)
	}
	return fault.Runtimef(n.Name, fault.ErrTypeMismatch, "unexpected binding %T", b)
}

func (in *Interpreter) callDepthLimit() int {
	switch limit := in.MaxCallDepth; {
	case limit <= 0:
		return DefaultMaxCallDepth
	case limit > MaxCallDepthLimit:
		return MaxCallDepthLimit
	default:
		return limit
	}
}

func (in *Interpreter) VisitWordDefinition(n *ast.WordDefinition) error {
	in.logf("define %v", n.Name)
	in.scope.Set(n.Name, env.Word{Body: n.Body})
	return nil
}

func (in *Interpreter) VisitIf(n *ast.If) error {
	in.trace(n)
	op := lexer.If.String()
	cond, err := in.m.PopNumber(op)
	if err != nil {
		return err
	}
	if cond == 1 {
		return in.runAll(n.IfBody)
	}
	return in.runAll(n.ElseBody)
}

// VisitLoop pops a start index and, beneath it, a limit, then runs the body
// once for every index from start up to but excluding limit.
func (in *Interpreter) VisitLoop(n *ast.Loop) error {
	in.trace(n)
	op := lexer.Do.String()
	start, err := in.m.PopNumber(op)
	if err != nil {
		return err
	}
	limit, err := in.m.PopNumber(op)
	if err != nil {
		return err
	}
	if err := in.m.EnterLoop(limit, start); err != nil {
		return err
	}
	defer in.m.ExitLoop()
	for !in.m.LoopDone() {
		if err := in.runAll(n.Body); err != nil {
			return err
		}
		in.m.StepLoop()
	}
	return nil
}

func (in *Interpreter) VisitLoopVariable(n *ast.LoopVariable) error {
	in.trace(n)
	index, err := in.m.LoopIndex(n.Depth)
	if err != nil {
		return err
	}
	in.m.Push(machine.Number(index))
	return nil
}

func (in *Interpreter) VisitSetVariable(n *ast.SetVariable) error {
	in.trace(n)
	value, ok := in.m.Pop()
	if !ok {
		return fault.Runtimef(n.String(), fault.ErrUnderflow, "")
	}
	in.scope.Set(n.Name, env.Variable{Value: value})
	return nil
}

func (in *Interpreter) VisitGetVariable(n *ast.GetVariable) error {
	in.trace(n)
	b, err := in.scope.Get(n.Name)
	if err != nil {
		return err
	}
	v, ok := b.(env.Variable)
	if !ok {
		return fault.Runtimef(n.String(), fault.ErrNotVariable, "%q is a word", n.Name)
	}
	in.m.Push(v.Value)
	return nil
}
