package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/jcorbin/stacky/internal/fault"
)

// Lex scans all of src, returning its tokens terminated by an EOF token.
// The first malformed token stops scanning with a lex fault.
func Lex(src string) ([]Token, error) {
	lex := NewLexer(src)
	var toks []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}

// Lexer scans tokens one at a time from program text.
type Lexer struct {
	src       string
	cursor    int
	line, col int
}

// NewLexer creates a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Next scans the next token; after the end of input it keeps returning EOF.
func (lex *Lexer) Next() (Token, error) {
	lex.skipSpace()

	pos := lex.pos()
	r := lex.peek()
	switch {
	case lex.cursor >= len(lex.src):
		return Token{Kind: EOF, Pos: pos}, nil

	case isDigit(r), r == '-' && isDigit(lex.peekAt(1)):
		return lex.scanNumber(pos)

	case isAlpha(r):
		return lex.scanWord(pos)

	case r == '"':
		return lex.scanString(pos), nil
	}

	lex.advance()
	switch r {
	case '-':
		if lex.peek() == '>' {
			lex.advance()
			return Token{Kind: Arrow, Pos: pos}, nil
		}
		return Token{Kind: Sub, Pos: pos}, nil
	case '>':
		return lex.orEqual(pos, Gt, Gte), nil
	case '<':
		return lex.orEqual(pos, Lt, Lte), nil
	case '=':
		return lex.orEqual(pos, Eq, DoubleEq), nil
	case '+':
		return Token{Kind: Add, Pos: pos}, nil
	case '*':
		return Token{Kind: Mul, Pos: pos}, nil
	case '/':
		return Token{Kind: Div, Pos: pos}, nil
	case '.':
		return Token{Kind: Emit, Pos: pos}, nil
	case ':':
		return Token{Kind: Colon, Pos: pos}, nil
	case ';':
		return Token{Kind: SemiColon, Pos: pos}, nil
	case '@':
		return Token{Kind: At, Pos: pos}, nil
	}
	return Token{}, fault.Lexf(pos, "unexpected character %q", r)
}

func (lex *Lexer) orEqual(pos fault.Pos, bare, withEq Kind) Token {
	if lex.peek() == '=' {
		lex.advance()
		return Token{Kind: withEq, Pos: pos}
	}
	return Token{Kind: bare, Pos: pos}
}

func (lex *Lexer) scanNumber(pos fault.Pos) (Token, error) {
	start := lex.cursor
	if lex.peek() == '-' {
		lex.advance()
	}
	for isDigit(lex.peek()) {
		lex.advance()
	}
	text := lex.src[start:lex.cursor]
	n, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return Token{}, fault.Lexf(pos, "invalid number %q: %v", text, err.(*strconv.NumError).Err)
	}
	return Token{Kind: Number, Pos: pos, Num: int32(n)}, nil
}

func (lex *Lexer) scanWord(pos fault.Pos) (Token, error) {
	start := lex.cursor
	for r := lex.peek(); isAlpha(r) || isDigit(r) || r == '_'; r = lex.peek() {
		lex.advance()
	}
	text := lex.src[start:lex.cursor]

	if lex.cursor < len(lex.src) {
		if r := lex.peek(); !unicode.IsSpace(r) {
			return Token{}, fault.Lexf(lex.pos(), "unexpected character %q after %q", r, text)
		}
	}

	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Pos: pos}, nil
	}
	if len(text) == 1 {
		if depth := loopDepth(text[0]); depth >= 0 {
			return Token{Kind: LoopVariable, Pos: pos, Num: int32(depth)}, nil
		}
	}
	return Token{Kind: Identifier, Pos: pos, Text: text}, nil
}

// scanString captures everything up to the closing quote verbatim; an
// unterminated string runs to the end of input.
func (lex *Lexer) scanString(pos fault.Pos) Token {
	lex.advance()
	start := lex.cursor
	for lex.cursor < len(lex.src) && lex.peek() != '"' {
		lex.advance()
	}
	text := lex.src[start:lex.cursor]
	if lex.cursor < len(lex.src) {
		lex.advance()
	}
	return Token{Kind: StringLiteral, Pos: pos, Text: text}
}

func (lex *Lexer) skipSpace() {
	for lex.cursor < len(lex.src) && unicode.IsSpace(lex.peek()) {
		lex.advance()
	}
}

func (lex *Lexer) pos() fault.Pos { return fault.Pos{Line: lex.line, Col: lex.col} }

func (lex *Lexer) peek() rune { return lex.peekAt(0) }

// peekAt decodes the rune n runes past the cursor, or RuneError past the
// end of input.
func (lex *Lexer) peekAt(n int) rune {
	i := lex.cursor
	for ; n > 0 && i < len(lex.src); n-- {
		_, size := utf8.DecodeRuneInString(lex.src[i:])
		i += size
	}
	if i >= len(lex.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(lex.src[i:])
	return r
}

func (lex *Lexer) advance() {
	if lex.cursor >= len(lex.src) {
		return
	}
	r, size := utf8.DecodeRuneInString(lex.src[lex.cursor:])
	lex.cursor += size
	if r == '\n' {
		lex.line++
		lex.col = 1
	} else {
		lex.col++
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlpha(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
