// Package dump formats tokens, parse trees and interpreter state for
// debugging.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/stacky/internal/ast"
	"github.com/jcorbin/stacky/internal/env"
	"github.com/jcorbin/stacky/internal/lexer"
	"github.com/jcorbin/stacky/internal/machine"
)

// Tokens writes one line per token, the closing EOF included: its position,
// kind and text.
func Tokens(w io.Writer, toks []lexer.Token) error {
	for _, tok := range toks {
		if _, err := fmt.Fprintf(w, "%v\t%v\t%v\n", tok.Pos, tok.Kind, tok); err != nil {
			return err
		}
	}
	return nil
}

// State writes the data stack, any active loop counters, and every binding
// of scope.
func State(w io.Writer, m *machine.Machine, scope *env.Context) error {
	var buf strings.Builder
	buf.WriteString("# Stacky Dump\n")
	buf.WriteString("  stack: [")
	for i, e := range m.Stack() {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(machine.Repr(e))
	}
	buf.WriteString("]\n")
	if loops := m.Loops(); len(loops) > 0 {
		fmt.Fprintf(&buf, "  loops: %v\n", loops)
	}

	names := scope.Names()
	fmt.Fprintf(&buf, "  dict: %v\n", names)
	for _, name := range names {
		b, _ := scope.Lookup(name)
		switch b := b.(type) {
		case env.Word:
			def := ast.WordDefinition{Name: name, Body: b.Body}
			fmt.Fprintf(&buf, "    %v\n", def.String())
		case env.Variable:
			fmt.Fprintf(&buf, "    %v = %v\n", name, machine.Repr(b.Value))
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}
