// Package fileinput loads program sources for the command line, and places
// faults back into the source text they came from.
package fileinput

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jcorbin/stacky/internal/fault"
)

// Source is named program text.
type Source struct {
	Name string
	Text string
}

// Read reads all of r into a Source, named after r if it has a Name method.
func Read(r io.Reader) (Source, error) {
	b, err := io.ReadAll(r)
	return Source{Name: nameOf(r), Text: string(b)}, err
}

// Open reads the named file, or standard input if name is "-".
func Open(name string) (Source, error) {
	if name == "-" {
		src, err := Read(os.Stdin)
		src.Name = "<stdin>"
		return src, err
	}
	f, err := os.Open(name)
	if err != nil {
		return Source{Name: name}, err
	}
	defer f.Close()
	return Read(f)
}

// Line returns the text of the n-th line, counting from 1, without its line
// ending; it returns "" for a line out of range.
func (src Source) Line(n int) string {
	if n < 1 {
		return ""
	}
	text := src.Text
	for ; n > 1; n-- {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			return ""
		}
		text = text[i+1:]
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSuffix(text, "\r")
}

// Locate attributes err to src. A fault that carries a position also gets the
// offending source line.
func (src Source) Locate(err error) error {
	if err == nil {
		return nil
	}
	le := &Error{Name: src.Name, Err: err}
	var fe *fault.Error
	if errors.As(err, &fe) && fe.Pos.IsValid() {
		le.Pos = fe.Pos
		le.Line = src.Line(fe.Pos.Line)
	}
	return le
}

// Error is an error attributed to a named source.
type Error struct {
	Name string
	Pos  fault.Pos
	Line string
	Err  error
}

func (err *Error) Error() string { return err.Name + ": " + err.Err.Error() }

func (err *Error) Unwrap() error { return err.Err }

// Context returns the offending source line followed by a caret line marking
// the fault's column, or "" if the fault has no position.
func (err *Error) Context() string {
	if !err.Pos.IsValid() {
		return ""
	}
	var caret strings.Builder
	col := 1
	for _, r := range err.Line {
		if col >= err.Pos.Col {
			break
		}
		if r == '\t' {
			caret.WriteByte('\t')
		} else {
			caret.WriteByte(' ')
		}
		col++
	}
	caret.WriteByte('^')
	return err.Line + "\n" + caret.String()
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
