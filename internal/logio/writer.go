// Package logio provides the leveled Logger used by the command line, and a
// Writer that turns a byte stream into lines of a printf-style log function.
package logio

import (
	"bytes"
	"sync"
)

// Writer hands every complete line written to it to Logf, such as
// testing.T.Logf, holding back a trailing partial line until Flush.
type Writer struct {
	Logf func(string, ...interface{})

	mu      sync.Mutex
	partial []byte
}

func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n := len(p)
	for {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			break
		}
		lw.line(p[:i])
		p = p[i+1:]
	}
	lw.partial = append(lw.partial, p...)
	return n, nil
}

// line logs rest, completing any partial line held from earlier writes.
func (lw *Writer) line(rest []byte) {
	if len(lw.partial) > 0 {
		rest = append(lw.partial, rest...)
	}
	lw.Logf("%s", rest)
	lw.partial = lw.partial[:0]
}

// Flush logs any partial line, so that a Writer may serve as an output sink.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.Logf("%s", lw.partial)
		lw.partial = lw.partial[:0]
	}
	return nil
}

// Close flushes.
func (lw *Writer) Close() error { return lw.Flush() }
