// Package env implements the chained scopes that bind names to words and
// variables.
package env

import (
	"sort"

	"github.com/jcorbin/stacky/internal/ast"
	"github.com/jcorbin/stacky/internal/fault"
	"github.com/jcorbin/stacky/internal/machine"
)

// Binding is what a name resolves to: a Word or a Variable.
type Binding interface{ binding() }

// Word is a callable sequence of nodes.
type Word struct{ Body []ast.Node }

// Variable holds a stored value.
type Variable struct{ Value machine.Entity }

func (Word) binding()     {}
func (Variable) binding() {}

// Context is one scope. It owns its bindings and only reads through its
// parent; writes never reach the parent.
type Context struct {
	parent *Context
	names  map[string]Binding
}

// New creates a scope under parent, which may be nil for the root scope.
func New(parent *Context) *Context {
	return &Context{parent: parent, names: make(map[string]Binding)}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (ctx *Context) Parent() *Context { return ctx.parent }

// Lookup walks from this scope outward and returns the first binding of
// name.
func (ctx *Context) Lookup(name string) (Binding, bool) {
	for c := ctx; c != nil; c = c.parent {
		if b, ok := c.names[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Get is Lookup that faults when name isn't bound in any scope.
func (ctx *Context) Get(name string) (Binding, error) {
	if b, ok := ctx.Lookup(name); ok {
		return b, nil
	}
	return nil, fault.Runtimef(name, fault.ErrWordNotFound, "%q", name)
}

// Set binds name in this scope, replacing any binding it had here and
// shadowing any binding in the enclosing scopes.
func (ctx *Context) Set(name string, b Binding) {
	ctx.names[name] = b
}

// Names returns the names bound in this scope, sorted.
func (ctx *Context) Names() []string {
	names := make([]string, 0, len(ctx.names))
	for name := range ctx.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
