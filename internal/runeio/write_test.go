package runeio

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainWriter hides any WriteByte or WriteRune methods.
type plainWriter struct{ io.Writer }

func TestWriteCodes(t *testing.T) {
	codes := []int32{'h', 0xe9, 0x2713, 0x1f600}
	for _, tc := range []struct {
		name string
		w    func(*bytes.Buffer) io.Writer
	}{
		{"buffer", func(b *bytes.Buffer) io.Writer { return b }},
		{"plain", func(b *bytes.Buffer) io.Writer { return plainWriter{b} }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := WriteCodes(tc.w(&buf), codes)
			require.NoError(t, err)
			assert.Equal(t, "hé✓😀", buf.String())
			assert.Equal(t, buf.Len(), n)
		})
	}
}

func TestValidCode(t *testing.T) {
	assert.True(t, ValidCode('A'))
	assert.True(t, ValidCode(0x10ffff))
	assert.False(t, ValidCode(-1))
	assert.False(t, ValidCode(0xd800), "surrogate")
	assert.False(t, ValidCode(0x110000))
}

type failingWriter struct{ n int }

func (fw *failingWriter) Write(p []byte) (int, error) {
	if fw.n <= 0 {
		return 0, io.ErrClosedPipe
	}
	fw.n--
	return len(p), nil
}

func TestWriteCodesError(t *testing.T) {
	n, err := WriteCodes(&failingWriter{n: 2}, []int32{'a', 'b', 'c'})
	assert.Equal(t, io.ErrClosedPipe, err)
	assert.Equal(t, 2, n)

	var sb strings.Builder
	_, err = WriteCode(&sb, 'z')
	require.NoError(t, err)
	assert.Equal(t, "z", sb.String())
}
