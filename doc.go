/*
Package stacky implements a small stack-based, Forth-like language.

A program is a sequence of whitespace separated tokens, evaluated left to
right against a data stack of 32-bit integers. For example, each of these
lines prints something:

	1 2 + .
	1 2 - .
	"hi" PUTS
	: sq DUP * ; 3 sq .
	1 1 = IF "yes" ELSE "no" THEN PUTS
	10 0 DO I . LOOP
	5 -> x @ x .

They print 3, then -1 ("a b op" means a op b), then hi (a string literal
pushes its character codes followed by its length, ready for PUTS), then 9
(after defining the word sq), then yes, then 0123456789, and finally 5 (after
storing, then loading, the variable x).

Primitive words are + - * / MOD AND OR INVERT < > <= >= = == DUP SWAP DROP
. (emit) PUTS and CR. Counted loops nest at most 5 deep; I J K L M read the
index of the innermost through outermost enclosing loop.

Running a program goes through three stages: Lex turns source text into
tokens, Parse turns tokens into a tree, and a Stacky runtime interprets the
tree. Each stage reports failure as an *Error whose Kind says which stage
detected it; any failure aborts the whole run, though output written before it
remains written.

The Stacky runtime keeps its stack and definitions between runs, so a host
may feed it a program in pieces:

	rt := stacky.New(stacky.WithOutput(os.Stdout))
	if err := rt.Exec(": sq DUP * ;"); err != nil {
		...
	}
	if err := rt.Exec("4 sq ."); err != nil {
		...
	}
*/
package stacky
