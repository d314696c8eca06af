// Package lexer turns program text into a token sequence.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/jcorbin/stacky/internal/fault"
)

// Kind identifies the type of a token.
type Kind uint8

const (
	EOF Kind = iota

	// literals and names
	Number
	StringLiteral
	Identifier
	LoopVariable

	// arithmetic
	Add // +
	Sub // -
	Mul // *
	Div // /
	Mod // MOD

	// bitwise
	And    // AND
	Or     // OR
	Invert // INVERT

	// comparison
	Lt       // <
	Gt       // >
	Lte      // <=
	Gte      // >=
	Eq       // =
	DoubleEq // ==

	// stack shuffling
	Dup  // DUP
	Swap // SWAP
	Drop // DROP

	// output
	Emit // .
	Puts // PUTS
	Cr   // CR

	// structure
	Colon     // :
	SemiColon // ;
	If        // IF
	Else      // ELSE
	Then      // THEN
	Do        // DO
	Loop      // LOOP
	Arrow     // ->
	At        // @

	maxKind
)

var kindNames = [maxKind]string{
	EOF:           "EOF",
	Number:        "Number",
	StringLiteral: "StringLiteral",
	Identifier:    "Identifier",
	LoopVariable:  "LoopVariable",
	Add:           "+",
	Sub:           "-",
	Mul:           "*",
	Div:           "/",
	Mod:           "MOD",
	And:           "AND",
	Or:            "OR",
	Invert:        "INVERT",
	Lt:            "<",
	Gt:            ">",
	Lte:           "<=",
	Gte:           ">=",
	Eq:            "=",
	DoubleEq:      "==",
	Dup:           "DUP",
	Swap:          "SWAP",
	Drop:          "DROP",
	Emit:          ".",
	Puts:          "PUTS",
	Cr:            "CR",
	Colon:         ":",
	SemiColon:     ";",
	If:            "IF",
	Else:          "ELSE",
	Then:          "THEN",
	Do:            "DO",
	Loop:          "LOOP",
	Arrow:         "->",
	At:            "@",
}

func (k Kind) String() string {
	if k < maxKind {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsOperation reports whether k is a primitive that runs directly on the
// stack machine.
func (k Kind) IsOperation() bool {
	return k >= Add && k <= Cr
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]Kind{
	"IF":     If,
	"ELSE":   Else,
	"THEN":   Then,
	"DUP":    Dup,
	"SWAP":   Swap,
	"DROP":   Drop,
	"DO":     Do,
	"LOOP":   Loop,
	"PUTS":   Puts,
	"MOD":    Mod,
	"AND":    And,
	"OR":     Or,
	"INVERT": Invert,
	"CR":     Cr,
}

// LoopVariables names the loop index readers, innermost first.
const LoopVariables = "IJKLM"

// IsKeyword reports whether name is reserved and can't name a word.
func IsKeyword(name string) bool {
	if _, ok := keywords[name]; ok {
		return true
	}
	return len(name) == 1 && loopDepth(name[0]) >= 0
}

func loopDepth(c byte) int {
	for i := 0; i < len(LoopVariables); i++ {
		if LoopVariables[i] == c {
			return i
		}
	}
	return -1
}

// Token is a single lexical unit. Num holds the value of a Number and the
// depth of a LoopVariable; Text holds the text of a StringLiteral or
// Identifier.
type Token struct {
	Kind Kind
	Pos  fault.Pos
	Text string
	Num  int32
}

func (tok Token) String() string {
	switch tok.Kind {
	case Number:
		return strconv.Itoa(int(tok.Num))
	case StringLiteral:
		return strconv.Quote(tok.Text)
	case Identifier:
		return tok.Text
	case LoopVariable:
		if tok.Num >= 0 && int(tok.Num) < len(LoopVariables) {
			return LoopVariables[tok.Num : tok.Num+1]
		}
		return fmt.Sprintf("LoopVariable(%d)", tok.Num)
	}
	return tok.Kind.String()
}
