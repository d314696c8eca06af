package stacky

import (
	"io"

	"github.com/jcorbin/stacky/internal/ast"
	"github.com/jcorbin/stacky/internal/dump"
	"github.com/jcorbin/stacky/internal/interp"
	"github.com/jcorbin/stacky/internal/lexer"
	"github.com/jcorbin/stacky/internal/machine"
	"github.com/jcorbin/stacky/internal/parser"
	"github.com/jcorbin/stacky/internal/sink"
)

type (
	// Token is a lexical unit of program source.
	Token = lexer.Token

	// Node is a parse tree node.
	Node = ast.Node

	// Program is the root of a parse tree: a top level sequence of nodes.
	Program = ast.Expressions

	// Entity is a value on the data stack.
	Entity = machine.Entity
)

// Lex splits program source into tokens, ending with an EOF token.
func Lex(src string) ([]Token, error) { return lexer.Lex(src) }

// Parse builds a parse tree from tokens.
func Parse(toks []Token) (*Program, error) { return parser.Parse(toks) }

// Run interprets a parse tree in a fresh runtime, writing output to out.
func Run(prog Node, out io.Writer) error { return New(WithOutput(out)).Run(prog) }

// Exec lexes, parses and runs program source in a fresh runtime, writing
// output to out.
func Exec(src string, out io.Writer) error { return New(WithOutput(out)).Exec(src) }

// DumpTokens writes one line per token, giving its position, kind and text.
func DumpTokens(w io.Writer, toks []Token) error { return dump.Tokens(w, toks) }

// DumpAST writes a parse tree as YAML.
func DumpAST(w io.Writer, prog Node) error { return dump.AST(w, prog) }

// Stacky is a runtime: a data stack, loop counters and a dictionary of words
// and variables that persist across runs. It isn't safe for concurrent use.
type Stacky struct {
	out      sink.Sink
	logfn    func(mess string, args ...interface{})
	maxDepth int

	in *interp.Interpreter
}

// New creates a runtime configured by opts.
func New(opts ...Option) *Stacky {
	var s Stacky
	Options(opts...).apply(&s)
	if s.out == nil {
		s.out = sink.New(nil)
	}
	s.in = interp.New(s.out)
	s.in.Logf = s.logfn
	s.in.MaxCallDepth = s.maxDepth
	return &s
}

// Run interprets a parse tree, stopping at the first fault. Output is
// flushed however the run ends.
func (s *Stacky) Run(prog Node) error {
	err := isolate("stacky", func() error {
		return s.in.Run(prog)
	})
	if ferr := s.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

// Exec lexes, parses and runs program source.
func (s *Stacky) Exec(src string) error {
	toks, err := Lex(src)
	if err != nil {
		s.logf("halt error: %v", err)
		return err
	}
	prog, err := Parse(toks)
	if err != nil {
		s.logf("halt error: %v", err)
		return err
	}
	return s.Run(prog)
}

// Stack returns a copy of the data stack, bottom first.
func (s *Stacky) Stack() []Entity { return s.in.Machine().Stack() }

// Names returns the defined words and variables, sorted.
func (s *Stacky) Names() []string { return s.in.Scope().Names() }

// Dump writes the data stack and dictionary.
func (s *Stacky) Dump(w io.Writer) error {
	return dump.State(w, s.in.Machine(), s.in.Scope())
}

func (s *Stacky) logf(mess string, args ...interface{}) {
	if s.logfn != nil {
		s.logfn(mess, args...)
	}
}
