package fileinput

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/stacky/internal/fault"
)

type namedReader struct {
	name string
	*strings.Reader
}

func (nr namedReader) Name() string { return nr.name }

func TestRead(t *testing.T) {
	src, err := Read(namedReader{"prog.st", strings.NewReader("1 2 + .")})
	require.NoError(t, err)
	assert.Equal(t, Source{Name: "prog.st", Text: "1 2 + ."}, src)

	src, err = Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "<unnamed *strings.Reader>", src.Name)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sq.st")
	require.NoError(t, os.WriteFile(path, []byte(": sq DUP * ;\n3 sq .\n"), 0o644))

	src, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Name)
	assert.Equal(t, "3 sq .", src.Line(2))

	_, err = Open(filepath.Join(t.TempDir(), "missing.st"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLine(t *testing.T) {
	src := Source{Text: "one\r\ntwo\nthree"}
	assert.Equal(t, "one", src.Line(1))
	assert.Equal(t, "two", src.Line(2))
	assert.Equal(t, "three", src.Line(3))
	assert.Equal(t, "", src.Line(4))
	assert.Equal(t, "", src.Line(0))
}

func TestLocate(t *testing.T) {
	src := Source{Name: "prog.st", Text: "1 2 +\n\t3 $ 4"}
	assert.NoError(t, src.Locate(nil))

	err := src.Locate(fault.Lexf(fault.Pos{Line: 2, Col: 4}, "unexpected character %q", '$'))
	assert.EqualError(t, err, `prog.st: lex error at 2:4: unexpected character '$'`)
	assert.Equal(t, fault.Lex, fault.KindOf(err))

	var le *Error
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "\t3 $ 4\n\t  ^", le.Context())

	err = src.Locate(fault.Runtimef("+", fault.ErrUnderflow, ""))
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "", le.Context())
	assert.True(t, errors.Is(err, fault.ErrUnderflow))
}
