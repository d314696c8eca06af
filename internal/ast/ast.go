// Package ast defines the parse tree of a program.
//
// The node set is closed: every node implements Accept by calling the one
// Visitor method for its kind, so adding a kind breaks every Visitor until
// it handles the new kind.
package ast

import (
	"strconv"
	"strings"

	"github.com/jcorbin/stacky/internal/lexer"
)

// Node is any node of the parse tree.
type Node interface {
	Accept(v Visitor) error
	String() string
}

// Visitor receives one call per visited node, by kind.
type Visitor interface {
	VisitNumber(n *Number) error
	VisitStringLiteral(n *StringLiteral) error
	VisitOperation(n *Operation) error
	VisitExpressions(n *Expressions) error
	VisitFunctionCall(n *FunctionCall) error
	VisitWordDefinition(n *WordDefinition) error
	VisitIf(n *If) error
	VisitLoop(n *Loop) error
	VisitLoopVariable(n *LoopVariable) error
	VisitSetVariable(n *SetVariable) error
	VisitGetVariable(n *GetVariable) error
}

// Number is an integer literal.
type Number struct{ Value int32 }

// StringLiteral is a quoted string literal.
type StringLiteral struct{ Text string }

// Operation is a primitive executed by the stack machine.
type Operation struct{ Op lexer.Kind }

// Expressions is a sequence run in order; every program and body is one.
type Expressions struct{ Nodes []Node }

// FunctionCall names a word (or variable) resolved when it runs.
type FunctionCall struct{ Name string }

// WordDefinition binds Name to Body when it runs; definitions aren't hoisted.
type WordDefinition struct {
	Name string
	Body []Node
}

// If branches on the number on top of the stack: 1 runs IfBody, anything
// else runs ElseBody.
type If struct {
	IfBody   []Node
	ElseBody []Node
}

// Loop runs Body once per index from a start up to a limit.
type Loop struct{ Body []Node }

// LoopVariable reads the index of the Depth-th enclosing loop, 0 being the
// innermost.
type LoopVariable struct{ Depth int }

// SetVariable pops the stack into a variable.
type SetVariable struct{ Name string }

// GetVariable pushes a variable's value.
type GetVariable struct{ Name string }

func (n *Number) Accept(v Visitor) error         { return v.VisitNumber(n) }
func (n *StringLiteral) Accept(v Visitor) error  { return v.VisitStringLiteral(n) }
func (n *Operation) Accept(v Visitor) error      { return v.VisitOperation(n) }
func (n *Expressions) Accept(v Visitor) error    { return v.VisitExpressions(n) }
func (n *FunctionCall) Accept(v Visitor) error   { return v.VisitFunctionCall(n) }
func (n *WordDefinition) Accept(v Visitor) error { return v.VisitWordDefinition(n) }
func (n *If) Accept(v Visitor) error             { return v.VisitIf(n) }
func (n *Loop) Accept(v Visitor) error           { return v.VisitLoop(n) }
func (n *LoopVariable) Accept(v Visitor) error   { return v.VisitLoopVariable(n) }
func (n *SetVariable) Accept(v Visitor) error    { return v.VisitSetVariable(n) }
func (n *GetVariable) Accept(v Visitor) error    { return v.VisitGetVariable(n) }

// String methods render nodes back into source form.

func (n *Number) String() string        { return strconv.Itoa(int(n.Value)) }
func (n *StringLiteral) String() string { return `"` + n.Text + `"` }
func (n *Operation) String() string     { return n.Op.String() }
func (n *Expressions) String() string   { return join(n.Nodes) }
func (n *FunctionCall) String() string  { return n.Name }
func (n *SetVariable) String() string   { return "-> " + n.Name }
func (n *GetVariable) String() string   { return "@ " + n.Name }

func (n *LoopVariable) String() string {
	return lexer.Token{Kind: lexer.LoopVariable, Num: int32(n.Depth)}.String()
}

func (n *WordDefinition) String() string {
	return enclose(": "+n.Name, n.Body, ";")
}

func (n *If) String() string {
	if len(n.ElseBody) == 0 {
		return enclose("IF", n.IfBody, "THEN")
	}
	return enclose(enclose("IF", n.IfBody, "ELSE"), n.ElseBody, "THEN")
}

func (n *Loop) String() string {
	return enclose("DO", n.Body, "LOOP")
}

func enclose(open string, nodes []Node, close string) string {
	if len(nodes) == 0 {
		return open + " " + close
	}
	return open + " " + join(nodes) + " " + close
}

func join(nodes []Node) string {
	var sb strings.Builder
	for i, node := range nodes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(node.String())
	}
	return sb.String()
}
