package runeio

import (
	"io"
	"unicode/utf8"
)

// ValidCode reports whether code is a character code that can be written.
func ValidCode(code int32) bool {
	return utf8.ValidRune(rune(code))
}

// WriteCode writes a character code to the given writer:
// - ASCII codes are written directly as bytes
// - all other codes are written in utf8 form
func WriteCode(w io.Writer, code int32) (n int, err error) {
	type runeWriter interface {
		WriteRune(r rune) (n int, err error)
	}
	r := rune(code)
	if r < 0x80 {
		if bw, ok := w.(io.ByteWriter); ok {
			return 1, bw.WriteByte(byte(r))
		}
		return w.Write([]byte{byte(r)})
	}
	if rw, ok := w.(runeWriter); ok {
		return rw.WriteRune(r)
	}
	var buf [utf8.UTFMax]byte
	return w.Write(buf[:utf8.EncodeRune(buf[:], r)])
}

// WriteCodes writes a sequence of character codes, in order, stopping at
// the first write error.
func WriteCodes(w io.Writer, codes []int32) (n int, err error) {
	for _, code := range codes {
		m, err := WriteCode(w, code)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
