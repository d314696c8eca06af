// Package parser builds the parse tree of a program from its tokens.
package parser

import (
	"github.com/jcorbin/stacky/internal/ast"
	"github.com/jcorbin/stacky/internal/fault"
	"github.com/jcorbin/stacky/internal/lexer"
)

// Parse builds the program's root node from toks, which should end in an
// EOF token; a missing EOF is treated as if one followed the last token.
func Parse(toks []lexer.Token) (*ast.Expressions, error) {
	p := Parser{toks: toks}
	nodes, _, err := p.parseBody(lexer.EOF)
	if err != nil {
		return nil, err
	}
	return &ast.Expressions{Nodes: nodes}, nil
}

// Parser is a recursive-descent parser consuming one token at a time.
type Parser struct {
	toks []lexer.Token
	pos  int
}

func (p *Parser) next() lexer.Token {
	if p.pos >= len(p.toks) {
		var eof lexer.Token
		if n := len(p.toks); n > 0 {
			eof.Pos = p.toks[n-1].Pos
		}
		return eof
	}
	tok := p.toks[p.pos]
	p.pos++
	return tok
}

// parseBody collects nodes until one of the given delimiters, returning the
// delimiter that ended the body. Any other delimiter is a fault.
func (p *Parser) parseBody(ends ...lexer.Kind) (nodes []ast.Node, end lexer.Token, err error) {
	nodes = []ast.Node{}
	for {
		tok := p.next()
		if isDelimiter(tok.Kind) {
			for _, kind := range ends {
				if tok.Kind == kind {
					return nodes, tok, nil
				}
			}
			if tok.Kind == lexer.EOF {
				return nil, tok, fault.Parsef(tok.Pos, "unexpected end of input, expected %v", expected(ends))
			}
			return nil, tok, fault.Parsef(tok.Pos, "unexpected %v", tok.Kind)
		}
		node, err := p.parseNode(tok)
		if err != nil {
			return nil, tok, err
		}
		nodes = append(nodes, node)
	}
}

func (p *Parser) parseNode(tok lexer.Token) (ast.Node, error) {
	switch kind := tok.Kind; {
	case kind == lexer.Number:
		return &ast.Number{Value: tok.Num}, nil
	case kind == lexer.StringLiteral:
		return &ast.StringLiteral{Text: tok.Text}, nil
	case kind == lexer.Identifier:
		return &ast.FunctionCall{Name: tok.Text}, nil
	case kind == lexer.LoopVariable:
		return &ast.LoopVariable{Depth: int(tok.Num)}, nil
	case kind.IsOperation():
		return &ast.Operation{Op: kind}, nil
	case kind == lexer.Colon:
		return p.parseDefinition(tok)
	case kind == lexer.If:
		return p.parseIf()
	case kind == lexer.Do:
		return p.parseLoop()
	case kind == lexer.Arrow:
		name, err := p.expectName(tok)
		if err != nil {
			return nil, err
		}
		return &ast.SetVariable{Name: name}, nil
	case kind == lexer.At:
		name, err := p.expectName(tok)
		if err != nil {
			return nil, err
		}
		return &ast.GetVariable{Name: name}, nil
	}
	return nil, fault.Parsef(tok.Pos, "unexpected %v", tok.Kind)
}

func (p *Parser) parseDefinition(colon lexer.Token) (ast.Node, error) {
	name, err := p.expectName(colon)
	if err != nil {
		return nil, err
	}
	body, _, err := p.parseBody(lexer.SemiColon)
	if err != nil {
		return nil, err
	}
	return &ast.WordDefinition{Name: name, Body: body}, nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	ifBody, end, err := p.parseBody(lexer.Else, lexer.Then)
	if err != nil {
		return nil, err
	}
	elseBody := []ast.Node{}
	if end.Kind == lexer.Else {
		if elseBody, _, err = p.parseBody(lexer.Then); err != nil {
			return nil, err
		}
	}
	return &ast.If{IfBody: ifBody, ElseBody: elseBody}, nil
}

func (p *Parser) parseLoop() (ast.Node, error) {
	body, _, err := p.parseBody(lexer.Loop)
	if err != nil {
		return nil, err
	}
	return &ast.Loop{Body: body}, nil
}

// expectName consumes the identifier that must follow after.
func (p *Parser) expectName(after lexer.Token) (string, error) {
	tok := p.next()
	switch {
	case tok.Kind == lexer.Identifier:
		return tok.Text, nil
	case tok.Kind == lexer.EOF:
		return "", fault.Parsef(tok.Pos, "expected identifier after %v, got end of input", after.Kind)
	case tok.Kind == lexer.LoopVariable || lexer.IsKeyword(tok.Kind.String()):
		return "", fault.Parsef(tok.Pos, "expected identifier after %v, got reserved word %v", after.Kind, tok)
	}
	return "", fault.Parsef(tok.Pos, "expected identifier after %v, got %v", after.Kind, tok)
}

func isDelimiter(kind lexer.Kind) bool {
	switch kind {
	case lexer.EOF, lexer.SemiColon, lexer.Else, lexer.Then, lexer.Loop:
		return true
	}
	return false
}

func expected(ends []lexer.Kind) string {
	s := ""
	for i, kind := range ends {
		if i > 0 {
			s += " or "
		}
		s += kind.String()
	}
	return s
}
